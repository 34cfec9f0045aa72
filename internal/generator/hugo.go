package generator

import (
	"io"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitecfg/internal/config"
)

// hugoEmitter writes hugo.yaml for sites rendered by Hugo instead of Docusaurus.
type hugoEmitter struct{}

func init() { Register(hugoEmitter{}) }

func (hugoEmitter) Name() Format     { return FormatHugo }
func (hugoEmitter) Filename() string { return "hugo.yaml" }

// HugoMenuEntry is one entry of menu.main.
type HugoMenuEntry struct {
	Name       string         `yaml:"name"`
	URL        string         `yaml:"url"`
	Weight     int            `yaml:"weight"`
	Identifier string         `yaml:"identifier,omitempty"`
	Params     map[string]any `yaml:"params,omitempty"`
}

func (hugoEmitter) Emit(w io.Writer, site *config.Site) error {
	root := hugoConfig(site)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

func hugoConfig(site *config.Site) map[string]any {
	features := SiteFeatures(site)
	tc := site.ThemeConfig

	navbar := map[string]any{"title": tc.Navbar.Title}
	if tc.Navbar.Logo != nil {
		navbar["logo"] = map[string]any{"alt": tc.Navbar.Logo.Alt, "src": tc.Navbar.Logo.Src}
	}
	var footerLinks []map[string]any
	for _, g := range tc.Footer.Links {
		var items []map[string]any
		for _, l := range g.Items {
			items = append(items, map[string]any{"name": l.Label, "url": hugoURL(l.Target())})
		}
		footerLinks = append(footerLinks, map[string]any{"title": g.Title, "items": items})
	}

	params := map[string]any{
		"tagline": site.Tagline,
		"favicon": site.Favicon,
		"navbar":  navbar,
		"footer": map[string]any{
			"style":     string(tc.Footer.Style),
			"copyright": tc.Footer.Copyright,
			"links":     footerLinks,
		},
		"colorMode": map[string]any{
			"defaultMode":               string(tc.ColorMode.DefaultMode),
			"disableSwitch":             tc.ColorMode.DisableSwitch,
			"respectPrefersColorScheme": tc.ColorMode.RespectPrefersColorScheme,
		},
		"prism": map[string]any{
			"theme":               string(tc.Prism.Theme),
			"darkTheme":           string(tc.Prism.DarkTheme),
			"additionalLanguages": tc.Prism.AdditionalLanguages,
		},
	}
	if site.OrganizationName != "" {
		params["organization"] = site.OrganizationName
	}
	if site.ProjectName != "" {
		params["project"] = site.ProjectName
	}

	root := map[string]any{
		"title":                  site.Title,
		"baseURL":                site.SiteURL(),
		"languageCode":           site.I18n.DefaultLocale,
		"defaultContentLanguage": site.I18n.DefaultLocale,
		"markup": map[string]any{
			"goldmark":  map[string]any{"renderer": map[string]any{"unsafe": true}},
			"highlight": map[string]any{"style": chromaStyle(tc.Prism.Theme), "noClasses": false},
		},
		"params": params,
		"menu":   map[string]any{"main": hugoMenu(tc.Navbar.Items, features)},
	}
	if len(site.I18n.Locales) > 1 {
		languages := map[string]any{}
		for i, l := range site.I18n.Locales {
			languages[l] = map[string]any{"weight": i + 1}
		}
		root["languages"] = languages
	}
	if features.HasBlog {
		root["sectionPagesMenu"] = "main"
	}
	return root
}

// hugoMenu converts navbar items into menu.main entries, weighted by position
// in the navbar.
func hugoMenu(items []config.NavItem, features PresetFeatures) []HugoMenuEntry {
	docsBase := features.DocsRouteBasePath
	if docsBase == "" {
		docsBase = "docs"
	}
	out := make([]HugoMenuEntry, 0, len(items))
	for i, item := range items {
		e := HugoMenuEntry{Name: item.Label, Weight: (i + 1) * 10}
		switch item.Kind() {
		case config.NavItemDoc:
			e.URL = hugoURL(path.Join("/", docsBase, item.DocID))
			e.Identifier = "doc-" + strings.ReplaceAll(item.DocID, "/", "-")
		case config.NavItemRoute:
			e.URL = hugoURL(item.To)
		case config.NavItemHref:
			e.URL = item.Href
			e.Params = map[string]any{"external": true}
		}
		if item.Position == config.PositionRight {
			if e.Params == nil {
				e.Params = map[string]any{}
			}
			e.Params["position"] = string(item.Position)
		}
		out = append(out, e)
	}
	return out
}

// hugoURL turns a route into a Hugo-relative URL. pathname:// escapes keep
// their path; absolute URLs pass through.
func hugoURL(target string) string {
	if strings.Contains(target, "://") && !strings.HasPrefix(target, "pathname://") {
		return target
	}
	target = strings.TrimPrefix(target, "pathname://")
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	return target
}

var chromaStyles = map[config.PrismTheme]string{
	"github":               "github",
	"dracula":              "dracula",
	"vsDark":               "github-dark",
	"vsLight":              "vs",
	"okaidia":              "monokai",
	"oneDark":              "onedark",
	"nightOwl":             "github-dark",
	"oceanicNext":          "nord",
	"palenight":            "dracula",
	"gruvboxMaterialDark":  "gruvbox",
	"gruvboxMaterialLight": "gruvbox-light",
}

// chromaStyle maps a prism theme onto the closest Hugo (chroma) style.
func chromaStyle(t config.PrismTheme) string {
	if s, ok := chromaStyles[t]; ok {
		return s
	}
	if t.IsDark() {
		return "github-dark"
	}
	return "github"
}
