package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/docs"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/linkcheck"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	External   bool `help:"Verify external hrefs even when sitecfg.linkCheck.external.enabled is false"`
	NoExternal bool `name:"no-external" help:"Skip external hrefs"`
	NoPublish  bool `name:"no-publish" help:"Do not publish broken-link events to NATS"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	site, err := loadSite(g, root)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := c.run(ctx, g, site)
	if res != nil {
		printFindings(res)
	}
	return err
}

func (c *CheckCmd) run(ctx context.Context, g *Global, site *config.Site) (*linkcheck.Result, error) {
	tool := site.Tool
	inv, err := docs.Scan(tool.Resolve(tool.Docs.Path))
	if err != nil {
		return nil, err
	}
	pages, err := docs.ScanPages(tool.Resolve(tool.Docs.PagesPath))
	if err != nil {
		return nil, err
	}
	opts := []linkcheck.Option{linkcheck.WithPages(pages), linkcheck.WithLogger(g.Logger)}

	ext := tool.LinkCheck.External
	if (ext.Enabled || c.External) && !c.NoExternal {
		cache, err := linkcheck.OpenSQLiteCache(tool.Resolve(ext.CachePath))
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryCache, "failed to open link cache").
				WithContext("path", tool.Resolve(ext.CachePath)).
				Build()
		}
		defer func() { _ = cache.Close() }()
		opts = append(opts, linkcheck.WithExternalChecker(linkcheck.NewExternalChecker(ext, cache)))
	}

	if nc := tool.LinkCheck.NATS; nc.URL != "" && !c.NoPublish {
		pub, err := linkcheck.NewNATSPublisher(nc)
		if err != nil {
			g.Logger.Warn("Broken-link events disabled", logfields.Error(err))
		} else {
			defer func() { _ = pub.Close() }()
			opts = append(opts, linkcheck.WithPublisher(pub))
		}
	}

	return linkcheck.NewService(site, inv, opts...).Check(ctx)
}

func printFindings(res *linkcheck.Result) {
	linkcheck.SortFindings(res.Findings)
	for _, f := range res.Findings {
		_, _ = fmt.Fprintf(stdout, "%-8s %-5s %s\n", f.Kind, f.Policy, f)
	}
	_, _ = fmt.Fprintf(stdout, "%d links checked, %d broken, %d failing\n", res.Checked, len(res.Findings), len(res.Failing()))
}
