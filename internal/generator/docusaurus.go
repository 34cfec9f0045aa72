package generator

import (
	"io"
	"strings"

	"git.home.luguber.info/inful/sitecfg/internal/config"
)

const (
	prismThemeModule = "prism-react-renderer/themes/"
	themeConfigType  = "import('@docusaurus/preset-classic').ThemeConfig"
)

// docusaurusEmitter writes docusaurus.config.js as a CommonJS module.
type docusaurusEmitter struct{}

func init() { Register(docusaurusEmitter{}) }

func (docusaurusEmitter) Name() Format     { return FormatDocusaurus }
func (docusaurusEmitter) Filename() string { return "docusaurus.config.js" }

func (docusaurusEmitter) Emit(w io.Writer, site *config.Site) error {
	var b strings.Builder
	b.WriteString("// @ts-check\n// Generated by sitecfg from the site configuration. Do not edit.\n\n")

	prism := site.ThemeConfig.Prism
	if prism.Theme != "" {
		b.WriteString("const lightCodeTheme = " + string(jsRequire(prismThemeModule+string(prism.Theme))) + ";\n")
	}
	if prism.DarkTheme != "" {
		b.WriteString("const darkCodeTheme = " + string(jsRequire(prismThemeModule+string(prism.DarkTheme))) + ";\n")
	}
	b.WriteString("\n/** @type {import('@docusaurus/types').Config} */\nconst config = ")
	if err := writeJS(&b, docusaurusConfig(site), 0); err != nil {
		return err
	}
	b.WriteString(";\n\nmodule.exports = config;\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func docusaurusConfig(site *config.Site) jsObject {
	var root jsObject
	root.set("title", site.Title)
	root.setString("tagline", site.Tagline)
	root.set("url", site.URL)
	root.set("baseUrl", site.BaseURL)
	root.set("onBrokenLinks", string(site.OnBrokenLinks))
	root.set("onBrokenMarkdownLinks", string(site.OnBrokenMarkdownLinks))
	root.set("favicon", site.Favicon)
	if site.TrailingSlash != nil {
		root.set("trailingSlash", *site.TrailingSlash)
	}
	root.setString("organizationName", site.OrganizationName)
	root.setString("projectName", site.ProjectName)
	root.set("i18n", jsObject{
		{Key: "defaultLocale", Value: site.I18n.DefaultLocale},
		{Key: "locales", Value: jsStrings(site.I18n.Locales)},
	})

	var presetsJS jsArray
	for i := range site.Presets {
		presetsJS = append(presetsJS, presetJS(&site.Presets[i]))
	}
	root.set("presets", presetsJS)
	root.set("themeConfig", jsTyped{Type: themeConfigType, Value: themeConfigJS(site.ThemeConfig)})
	return root
}

func presetJS(p *config.Preset) jsArray {
	var opts jsObject
	if docs := p.Options.Docs; docs.IsSet() {
		if docs.Enabled {
			var o jsObject
			o.setString("path", docs.Options.Path)
			if docs.Options.SidebarPath != "" {
				o.set("sidebarPath", jsRequireResolve(docs.Options.SidebarPath))
			}
			o.setString("routeBasePath", docs.Options.RouteBasePath)
			o.setString("editUrl", docs.Options.EditURL)
			opts.set("docs", o)
		} else {
			opts.set("docs", false)
		}
	}
	if blog := p.Options.Blog; blog.IsSet() {
		if blog.Enabled {
			var o jsObject
			o.setString("path", blog.Options.Path)
			o.setString("routeBasePath", blog.Options.RouteBasePath)
			if blog.Options.ShowReadingTime {
				o.set("showReadingTime", true)
			}
			o.setString("editUrl", blog.Options.EditURL)
			opts.set("blog", o)
		} else {
			opts.set("blog", false)
		}
	}
	if css := p.Options.Theme.CustomCSS; css != "" {
		opts.set("theme", jsObject{{Key: "customCss", Value: jsRequireResolve(css)}})
	}

	var value any = opts
	if provider, ok := LookupPreset(p.Name); ok {
		if t := provider.Features(p).OptionsType; t != "" {
			value = jsTyped{Type: t, Value: opts}
		}
	}
	return jsArray{p.Name, value}
}

func themeConfigJS(tc config.ThemeConfig) jsObject {
	var navbar jsObject
	navbar.setString("title", tc.Navbar.Title)
	if logo := tc.Navbar.Logo; logo != nil {
		var l jsObject
		l.setString("alt", logo.Alt)
		l.set("src", logo.Src)
		navbar.set("logo", l)
	}
	var items jsArray
	for _, item := range tc.Navbar.Items {
		var o jsObject
		o.setString("type", item.Type)
		o.setString("docId", item.DocID)
		o.setString("to", item.To)
		o.setString("href", item.Href)
		o.setString("position", string(item.Position))
		o.set("label", item.Label)
		items = append(items, o)
	}
	navbar.set("items", items)

	var footer jsObject
	footer.set("style", string(tc.Footer.Style))
	var groups jsArray
	for _, g := range tc.Footer.Links {
		var links jsArray
		for _, l := range g.Items {
			var o jsObject
			o.set("label", l.Label)
			o.setString("to", l.To)
			o.setString("href", l.Href)
			links = append(links, o)
		}
		groups = append(groups, jsObject{{Key: "title", Value: g.Title}, {Key: "items", Value: links}})
	}
	footer.set("links", groups)
	footer.set("copyright", tc.Footer.Copyright)

	var prism jsObject
	if tc.Prism.Theme != "" {
		prism.set("theme", jsExpr("lightCodeTheme"))
	}
	if tc.Prism.DarkTheme != "" {
		prism.set("darkTheme", jsExpr("darkCodeTheme"))
	}
	if len(tc.Prism.AdditionalLanguages) > 0 {
		prism.set("additionalLanguages", jsStrings(tc.Prism.AdditionalLanguages))
	}

	return jsObject{
		{Key: "navbar", Value: navbar},
		{Key: "footer", Value: footer},
		{Key: "prism", Value: prism},
		{Key: "colorMode", Value: jsObject{
			{Key: "defaultMode", Value: string(tc.ColorMode.DefaultMode)},
			{Key: "disableSwitch", Value: tc.ColorMode.DisableSwitch},
			{Key: "respectPrefersColorScheme", Value: tc.ColorMode.RespectPrefersColorScheme},
		}},
	}
}
