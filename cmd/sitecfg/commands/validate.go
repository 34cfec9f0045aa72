package commands

import (
	"fmt"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	site, err := loadSite(g, root)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Configuration valid: %s (%s)\n", site.Title, site.SiteURL())
	return nil
}
