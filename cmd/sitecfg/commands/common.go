package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitecfg/internal/config"
)

// Global carries state shared by every subcommand.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command with its global flags.
type CLI struct {
	Config  string           `short:"c" help:"Site configuration file" default:"sitecfg.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init     InitCmd     `cmd:"" help:"Write the example site configuration"`
	Validate ValidateCmd `cmd:"" help:"Load and validate the site configuration"`
	Show     ShowCmd     `cmd:"" help:"Print the resolved site configuration"`
	Generate GenerateCmd `cmd:"" help:"Emit the configuration for external site generators"`
	Check    CheckCmd    `cmd:"" help:"Check navbar, footer and doc links under the broken-link policies"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate on config changes and at the start of each day"`
}

// stdout receives command output; tests replace it.
var stdout io.Writer = os.Stdout

// AfterApply sets up logging once flags are parsed. Commands that load the
// site config refine it with the configured level and format.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadSite loads the site configuration and applies its logging settings.
func loadSite(g *Global, root *CLI) (*config.Site, error) {
	site, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	logger := config.NewLogger(site.Tool.Monitoring.Logging, os.Stderr, root.Verbose)
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
	return site, nil
}
