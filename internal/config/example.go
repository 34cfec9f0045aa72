package config

import (
	"time"
)

// Example returns the Linkit wiki site record with defaults applied and the
// copyright resolved for now.
func Example(now time.Time) *Site {
	site := exampleSite()
	_ = ApplyDefaults(site)
	site.ThemeConfig.Footer.Copyright = ResolveCopyright(site.ThemeConfig.Footer.CopyrightTemplate, now.Year())
	return site
}

// exampleSite is the record as written by Init, before defaults.
func exampleSite() *Site {
	trailingSlash := false
	site := &Site{
		Title:                 "Linkit",
		Tagline:               "Dinosaurs are cool :DDDDD",
		URL:                   "https://linkit-wiki.com",
		BaseURL:               "/Linkit/",
		OnBrokenLinks:         PolicyWarn,
		OnBrokenMarkdownLinks: PolicyWarn,
		Favicon:               "img/favicon.ico",
		TrailingSlash:         &trailingSlash,
		OrganizationName:      "Override",
		ProjectName:           "Linkit",
		I18n: I18n{
			DefaultLocale: "en",
			Locales:       []string{"en"},
		},
		Presets: []Preset{{
			Name: PresetClassic,
			Options: PresetOptions{
				Docs: Enable(DocsPluginOptions{SidebarPath: "./sidebars.js"}),
				Blog: Disable[BlogPluginOptions](),
				Theme: ThemeOptions{
					CustomCSS: "./src/css/custom.css",
				},
			},
		}},
		ThemeConfig: ThemeConfig{
			Navbar: Navbar{
				Title: "Linkit",
				Logo:  &Logo{Alt: "My Site Logo", Src: "img/logo.svg"},
				Items: []NavItem{
					{Type: "doc", DocID: "intro", Position: PositionLeft, Label: "Wiki"},
					{To: "pathname:///scaladoc", Label: "Docs", Position: PositionLeft},
					{To: "roadmap", Label: "Roadmap", Position: PositionLeft},
					{To: "contribute", Label: "Contribute", Position: PositionLeft},
					{Href: "https://github.com/Override-6/Linkit/", Label: "GitHub", Position: PositionRight},
				},
			},
			Footer: Footer{
				Style: FooterDark,
				Links: []FooterLinkGroup{{
					Title: "Community",
					Items: []FooterLink{
						{Label: "Stack Overflow", Href: "https://stackoverflow.com/questions/tagged/docusaurus"},
						{Label: "Discord", Href: "https://discordapp.com/invite/docusaurus"},
						{Label: "Twitter", Href: "https://twitter.com/docusaurus"},
					},
				}},
				CopyrightTemplate: "Copyright © " + YearPlaceholder + " Linkit, Inc.<br>Built with Docusaurus.",
			},
			Prism: Prism{
				Theme:               PrismGithub,
				DarkTheme:           PrismDracula,
				AdditionalLanguages: []string{"java", "scala"},
			},
			ColorMode: ColorMode{
				DefaultMode:               ColorModeLight,
				RespectPrefersColorScheme: true,
			},
		},
		Tool: ToolConfig{
			Output: OutputConfig{
				Formats: []string{"docusaurus", "json"},
			},
			LinkCheck: LinkCheckConfig{
				KnownRoutes: []string{"/roadmap", "/contribute"},
			},
		},
	}
	return site
}
