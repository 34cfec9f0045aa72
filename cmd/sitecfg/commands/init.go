package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/gitinfo"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force    bool `help:"Overwrite an existing configuration file"`
	NoDetect bool `name:"no-detect" help:"Do not read organization and project from the git origin remote"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	var detect config.OriginDetector
	if !i.NoDetect {
		detect = gitinfo.Detector(filepath.Dir(root.Config))
	}
	if err := config.Init(root.Config, i.Force, detect); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Wrote %s\n", root.Config)
	return nil
}
