package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/sitecfg/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Format []string `short:"f" help:"Formats to emit (default: sitecfg.output.formats)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	// Applies the configured logging before the runner takes over.
	if _, err := loadSite(g, root); err != nil {
		return err
	}
	runner, err := watch.NewRunner(watch.Options{
		ConfigPath: root.Config,
		Formats:    w.Format,
		Logger:     g.Logger,
	})
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runner.Run(ctx)
}
