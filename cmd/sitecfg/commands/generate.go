package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/generator"
	"git.home.luguber.info/inful/sitecfg/internal/metrics"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Format []string `short:"f" help:"Formats to emit (default: sitecfg.output.formats)"`
	Output string   `short:"o" help:"Output directory (default: sitecfg.output.directory)" type:"path"`
	Clean  bool     `help:"Remove files of formats that are not emitted"`
}

func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	site, err := loadSite(g, root)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, g, site)
}

func (c *GenerateCmd) run(ctx context.Context, g *Global, site *config.Site) error {
	opts := []generator.Option{generator.WithLogger(g.Logger)}
	if c.Output != "" {
		opts = append(opts, generator.WithOutputDir(c.Output))
	}
	if c.Clean {
		opts = append(opts, generator.WithClean())
	}
	report, err := generator.New(opts...).Generate(ctx, site, c.Format)
	if err != nil {
		return err
	}
	for _, f := range report.Files {
		_, _ = fmt.Fprintf(stdout, "%-9s %s\n", f.Result, f.Path)
	}
	_, _ = fmt.Fprintf(stdout, "%d written, %d unchanged, %d removed\n",
		report.Count(metrics.ResultWritten), report.Count(metrics.ResultUnchanged), report.Count(metrics.ResultRemoved))
	return nil
}
