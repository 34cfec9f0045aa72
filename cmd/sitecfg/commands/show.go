package commands

import (
	"git.home.luguber.info/inful/sitecfg/internal/config"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/generator"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Format string `short:"f" help:"Output format" enum:"yaml,json,docusaurus,hugo" default:"yaml"`
}

func (s *ShowCmd) Run(g *Global, root *CLI) error {
	site, err := loadSite(g, root)
	if err != nil {
		return err
	}
	if s.Format == "yaml" {
		data, err := config.Marshal(site)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to render configuration").Build()
		}
		_, err = stdout.Write(data)
		return err
	}
	e, ok := generator.Lookup(generator.Format(s.Format))
	if !ok {
		return ferrors.ValidationError("unknown output format").WithContext("value", s.Format).Build()
	}
	if err := e.Emit(stdout, site); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryOutput, "failed to render configuration").
			WithContext("format", s.Format).
			Build()
	}
	return nil
}
