package generator

import (
	"sort"

	"git.home.luguber.info/inful/sitecfg/internal/config"
)

// PresetFeatures describes what a preset contributes to the emitted site.
type PresetFeatures struct {
	Name              string
	HasDocs           bool
	HasBlog           bool
	DocsRouteBasePath string
	BlogRouteBasePath string
	// OptionsType is the type annotation emitted above the preset options.
	OptionsType string
}

// PresetProvider derives the features of a configured preset.
type PresetProvider interface {
	Name() string
	Features(p *config.Preset) PresetFeatures
}

var presets = map[string]PresetProvider{}

// RegisterPreset adds a preset provider (idempotent by name).
func RegisterPreset(p PresetProvider) {
	if p == nil {
		return
	}
	if _, ok := presets[p.Name()]; !ok {
		presets[p.Name()] = p
	}
}

// LookupPreset returns the provider registered under name.
func LookupPreset(name string) (PresetProvider, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames returns the registered preset names, sorted.
func PresetNames() []string {
	out := make([]string, 0, len(presets))
	for n := range presets {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// SiteFeatures merges the features of every registered preset of site.
// Unknown presets contribute nothing.
func SiteFeatures(site *config.Site) PresetFeatures {
	var merged PresetFeatures
	for i := range site.Presets {
		p, ok := LookupPreset(site.Presets[i].Name)
		if !ok {
			continue
		}
		f := p.Features(&site.Presets[i])
		if f.HasDocs && !merged.HasDocs {
			merged.HasDocs = true
			merged.DocsRouteBasePath = f.DocsRouteBasePath
		}
		if f.HasBlog && !merged.HasBlog {
			merged.HasBlog = true
			merged.BlogRouteBasePath = f.BlogRouteBasePath
		}
	}
	return merged
}

type classicPreset struct{}

func init() { RegisterPreset(classicPreset{}) }

func (classicPreset) Name() string { return config.PresetClassic }

func (classicPreset) Features(p *config.Preset) PresetFeatures {
	f := PresetFeatures{
		Name:        config.PresetClassic,
		OptionsType: "import('@docusaurus/preset-classic').Options",
	}
	if docs := p.Options.Docs; docs.Enabled {
		f.HasDocs = true
		f.DocsRouteBasePath = orDefault(docs.Options.RouteBasePath, "docs")
	}
	if blog := p.Options.Blog; blog.Enabled {
		f.HasBlog = true
		f.BlogRouteBasePath = orDefault(blog.Options.RouteBasePath, "blog")
	}
	return f
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
