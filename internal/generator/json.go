package generator

import (
	"encoding/json"
	"io"

	"git.home.luguber.info/inful/sitecfg/internal/config"
)

type jsonEmitter struct{}

func init() { Register(jsonEmitter{}) }

func (jsonEmitter) Name() Format     { return FormatJSON }
func (jsonEmitter) Filename() string { return "site.config.json" }

func (jsonEmitter) Emit(w io.Writer, site *config.Site) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(site)
}
