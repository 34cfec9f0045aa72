package config

import (
	"strings"
)

// Site is the declarative configuration record of a documentation website.
//
// YAML keys match the field names the external site generator expects so the
// record can be emitted without renaming. The Tool section configures sitecfg
// itself and is never emitted.
type Site struct {
	Title                 string           `yaml:"title" json:"title"`
	Tagline               string           `yaml:"tagline,omitempty" json:"tagline,omitempty"`
	URL                   string           `yaml:"url" json:"url"`
	BaseURL               string           `yaml:"baseUrl" json:"baseUrl"`
	OnBrokenLinks         BrokenLinkPolicy `yaml:"onBrokenLinks,omitempty" json:"onBrokenLinks"`
	OnBrokenMarkdownLinks BrokenLinkPolicy `yaml:"onBrokenMarkdownLinks,omitempty" json:"onBrokenMarkdownLinks"`
	Favicon               string           `yaml:"favicon" json:"favicon"`
	// TrailingSlash is tri-state: nil leaves the generator default in place.
	TrailingSlash    *bool       `yaml:"trailingSlash,omitempty" json:"trailingSlash,omitempty"`
	OrganizationName string      `yaml:"organizationName,omitempty" json:"organizationName,omitempty"`
	ProjectName      string      `yaml:"projectName,omitempty" json:"projectName,omitempty"`
	I18n             I18n        `yaml:"i18n" json:"i18n"`
	Presets          []Preset    `yaml:"presets" json:"presets"`
	ThemeConfig      ThemeConfig `yaml:"themeConfig" json:"themeConfig"`

	Tool ToolConfig `yaml:"sitecfg,omitempty" json:"-"`
}

// I18n holds locale configuration. Locales has set semantics; order is kept for emission.
type I18n struct {
	DefaultLocale string   `yaml:"defaultLocale" json:"defaultLocale"`
	Locales       []string `yaml:"locales" json:"locales"`
}

// HasLocale reports whether locale is configured.
func (i I18n) HasLocale(locale string) bool {
	for _, l := range i.Locales {
		if l == locale {
			return true
		}
	}
	return false
}

// ThemeConfig configures the presentation layer of the classic theme.
type ThemeConfig struct {
	Navbar    Navbar    `yaml:"navbar" json:"navbar"`
	Footer    Footer    `yaml:"footer" json:"footer"`
	Prism     Prism     `yaml:"prism" json:"prism"`
	ColorMode ColorMode `yaml:"colorMode" json:"colorMode"`
}

// Navbar is the top navigation bar.
type Navbar struct {
	Title string    `yaml:"title,omitempty" json:"title,omitempty"`
	Logo  *Logo     `yaml:"logo,omitempty" json:"logo,omitempty"`
	Items []NavItem `yaml:"items,omitempty" json:"items"`
}

// Logo describes the navbar logo image.
type Logo struct {
	Alt string `yaml:"alt,omitempty" json:"alt,omitempty"`
	Src string `yaml:"src" json:"src"`
}

// NavItem is one navbar entry. Exactly one of DocID, To and Href is set.
type NavItem struct {
	Type     string          `yaml:"type,omitempty" json:"type,omitempty"`
	DocID    string          `yaml:"docId,omitempty" json:"docId,omitempty"`
	To       string          `yaml:"to,omitempty" json:"to,omitempty"`
	Href     string          `yaml:"href,omitempty" json:"href,omitempty"`
	Label    string          `yaml:"label" json:"label"`
	Position NavItemPosition `yaml:"position,omitempty" json:"position,omitempty"`
}

// Kind classifies the item by its target. Items with no or several targets
// report NavItemInvalid.
func (n NavItem) Kind() NavItemKind {
	return linkKind(n.DocID, n.To, n.Href)
}

// Target returns the doc id, route or href the item points to.
func (n NavItem) Target() string {
	switch n.Kind() {
	case NavItemDoc:
		return n.DocID
	case NavItemRoute:
		return n.To
	case NavItemHref:
		return n.Href
	default:
		return ""
	}
}

// Footer is the page footer.
type Footer struct {
	Style FooterStyle       `yaml:"style,omitempty" json:"style"`
	Links []FooterLinkGroup `yaml:"links,omitempty" json:"links"`
	// Copyright holds the resolved text after Load; CopyrightTemplate keeps the
	// raw value with its {year} placeholder.
	Copyright         string `yaml:"copyright,omitempty" json:"copyright,omitempty"`
	CopyrightTemplate string `yaml:"-" json:"-"`
}

// FooterLinkGroup is a titled column of footer links.
type FooterLinkGroup struct {
	Title string       `yaml:"title" json:"title"`
	Items []FooterLink `yaml:"items" json:"items"`
}

// FooterLink is a footer entry pointing to a route or an external href.
type FooterLink struct {
	Label string `yaml:"label" json:"label"`
	To    string `yaml:"to,omitempty" json:"to,omitempty"`
	Href  string `yaml:"href,omitempty" json:"href,omitempty"`
}

// Kind classifies the footer link by its target.
func (f FooterLink) Kind() NavItemKind {
	return linkKind("", f.To, f.Href)
}

// Target returns the route or href of the link.
func (f FooterLink) Target() string {
	if f.To != "" {
		return f.To
	}
	return f.Href
}

// Prism configures syntax highlighting.
type Prism struct {
	Theme               PrismTheme `yaml:"theme,omitempty" json:"theme,omitempty"`
	DarkTheme           PrismTheme `yaml:"darkTheme,omitempty" json:"darkTheme,omitempty"`
	AdditionalLanguages []string   `yaml:"additionalLanguages,omitempty" json:"additionalLanguages,omitempty"`
}

// ColorMode configures light/dark selection.
type ColorMode struct {
	DefaultMode               ColorModeKind `yaml:"defaultMode,omitempty" json:"defaultMode"`
	DisableSwitch             bool          `yaml:"disableSwitch,omitempty" json:"disableSwitch"`
	RespectPrefersColorScheme bool          `yaml:"respectPrefersColorScheme" json:"respectPrefersColorScheme"`
}

// SiteURL returns url and baseUrl joined into the absolute address of the site root.
func (s *Site) SiteURL() string {
	return strings.TrimSuffix(s.URL, "/") + s.BaseURL
}

// Preset returns the preset registered under name, or nil.
func (s *Site) Preset(name string) *Preset {
	for i := range s.Presets {
		if s.Presets[i].Name == name {
			return &s.Presets[i]
		}
	}
	return nil
}

func linkKind(docID, to, href string) NavItemKind {
	set := 0
	kind := NavItemInvalid
	if docID != "" {
		set++
		kind = NavItemDoc
	}
	if to != "" {
		set++
		kind = NavItemRoute
	}
	if href != "" {
		set++
		kind = NavItemHref
	}
	if set != 1 {
		return NavItemInvalid
	}
	return kind
}
