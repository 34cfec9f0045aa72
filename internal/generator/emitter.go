// Package generator emits a loaded site record in the formats consumed by
// external site generators. Emitters self-register by format name.
package generator

import (
	"io"
	"sort"

	"git.home.luguber.info/inful/sitecfg/internal/config"
)

// Format names an output format.
type Format string

const (
	FormatDocusaurus Format = "docusaurus"
	FormatJSON       Format = "json"
	FormatHugo       Format = "hugo"
)

// Emitter writes the site record in one external format.
type Emitter interface {
	Name() Format
	// Filename is the file written into the output directory.
	Filename() string
	Emit(w io.Writer, site *config.Site) error
}

var emitters = map[Format]Emitter{}

// Register adds an emitter (idempotent by name). Intended to be called from init().
func Register(e Emitter) {
	if e == nil {
		return
	}
	if _, ok := emitters[e.Name()]; !ok {
		emitters[e.Name()] = e
	}
}

// Lookup returns the emitter registered for f.
func Lookup(f Format) (Emitter, bool) {
	e, ok := emitters[f]
	return e, ok
}

// Formats returns the registered format names, sorted.
func Formats() []Format {
	out := make([]Format, 0, len(emitters))
	for f := range emitters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
