package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, time.March, 14, 12, 0, 0, 0, time.UTC) }
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sitecfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const linkitYAML = `
title: Linkit
tagline: Dinosaurs are cool :DDDDD
url: https://linkit-wiki.com
baseUrl: /Linkit/
onBrokenLinks: WARN
onBrokenMarkdownLinks: warn
favicon: img/favicon.ico
trailingSlash: false
organizationName: Override
projectName: Linkit
i18n:
  defaultLocale: en
  locales: [en]
presets:
  - - classic
    - docs:
        sidebarPath: ./sidebars.js
      blog: false
      theme:
        customCss: ./src/css/custom.css
themeConfig:
  navbar:
    title: Linkit
    logo: {alt: My Site Logo, src: img/logo.svg}
    items:
      - {type: doc, docId: intro, position: left, label: Wiki}
      - {to: "pathname:///scaladoc", label: Docs, position: left}
      - {to: roadmap, label: Roadmap}
      - {href: "https://github.com/Override-6/Linkit/", label: GitHub, position: Right}
  footer:
    style: dark
    links:
      - title: Community
        items:
          - {label: Discord, href: "https://discordapp.com/invite/docusaurus"}
    copyright: "Copyright © {year} Linkit, Inc.<br>Built with Docusaurus."
  prism:
    theme: github
    darkTheme: Dracula
    additionalLanguages: [java, scala]
  colorMode:
    defaultMode: light
    respectPrefersColorScheme: true
`

func TestLoadWithClock_Linkit(t *testing.T) {
	path := writeConfig(t, linkitYAML)

	site, err := LoadWithClock(path, fixedClock(2031))
	require.NoError(t, err)

	assert.Equal(t, "https://linkit-wiki.com/Linkit/", site.SiteURL())
	assert.Equal(t, PolicyWarn, site.OnBrokenLinks)
	assert.Equal(t, PolicyWarn, site.OnBrokenMarkdownLinks)
	assert.True(t, site.I18n.HasLocale(site.I18n.DefaultLocale))
	assert.Equal(t, "Copyright © 2031 Linkit, Inc.<br>Built with Docusaurus.", site.ThemeConfig.Footer.Copyright)
	assert.Equal(t, "Copyright © {year} Linkit, Inc.<br>Built with Docusaurus.", site.ThemeConfig.Footer.CopyrightTemplate)
	assert.Equal(t, PrismDracula, site.ThemeConfig.Prism.DarkTheme)
	require.NotNil(t, site.TrailingSlash)
	assert.False(t, *site.TrailingSlash)

	classic := site.Preset(PresetClassic)
	require.NotNil(t, classic)
	assert.True(t, classic.Options.Docs.Enabled)
	assert.Equal(t, "./sidebars.js", classic.Options.Docs.Options.SidebarPath)
	assert.Equal(t, "docs", classic.Options.Docs.Options.RouteBasePath)
	assert.False(t, classic.Options.Blog.Enabled)
	assert.True(t, classic.Options.Blog.IsSet())

	items := site.ThemeConfig.Navbar.Items
	require.Len(t, items, 4)
	assert.Equal(t, NavItemDoc, items[0].Kind())
	assert.Equal(t, NavItemRoute, items[1].Kind())
	assert.Equal(t, PositionLeft, items[2].Position)
	assert.Equal(t, PositionRight, items[3].Position)
	assert.Equal(t, NavItemHref, items[3].Kind())

	assert.Equal(t, filepath.Dir(path), site.Tool.Root())
	assert.Equal(t, filepath.Join(filepath.Dir(path), "docs"), site.Tool.Resolve(site.Tool.Docs.Path))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
	assert.Equal(t, ferrors.ExitConfig, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	path := writeConfig(t, "title: x\nurl: https://x.dev\nfavicon: f.ico\nonBrokenLink: throw\n")
	_, err := LoadWithClock(path, fixedClock(2030))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	assert.Contains(t, err.Error(), "onBrokenLink")
}

func TestLoad_UnknownPresetOptionRejected(t *testing.T) {
	tests := []struct {
		name    string
		presets string
		field   string
	}{
		{"docs option typo", "presets: [[classic, {docs: {sidebarPth: ./x.js}}]]\n", "sidebarPth"},
		{"unknown section", "presets: [[classic, {whatever: true}]]\n", "whatever"},
		{"mapping form", "presets:\n  - name: classic\n    options:\n      theme: {customCSS: ./c.css}\n", "customCSS"},
		{"unknown preset key", "presets:\n  - name: classic\n    opts: {}\n", "opts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "title: x\nurl: https://x.dev\nfavicon: f.ico\n"+tt.presets)
			_, err := LoadWithClock(path, fixedClock(2030))
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeConfig(t, "")
	_, err := LoadWithClock(path, fixedClock(2030))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestLoad_Minimal_Defaults(t *testing.T) {
	path := writeConfig(t, "title: Docs\nurl: https://docs.example.org\nfavicon: img/favicon.ico\n")

	site, err := LoadWithClock(path, fixedClock(2029))
	require.NoError(t, err)

	assert.Equal(t, "/", site.BaseURL)
	assert.Equal(t, PolicyThrow, site.OnBrokenLinks)
	assert.Equal(t, PolicyWarn, site.OnBrokenMarkdownLinks)
	assert.Equal(t, []string{"en"}, site.I18n.Locales)
	assert.Equal(t, "Copyright © 2029 Docs.", site.ThemeConfig.Footer.Copyright)
	assert.Equal(t, FooterLight, site.ThemeConfig.Footer.Style)
	assert.Equal(t, PrismPalenight, site.ThemeConfig.Prism.Theme)
	assert.Equal(t, []string{"docusaurus"}, site.Tool.Output.Formats)
	assert.Equal(t, 8, site.Tool.LinkCheck.External.MaxConcurrent)
	assert.Equal(t, 24*time.Hour, site.Tool.LinkCheck.External.CacheTTL)
	assert.Equal(t, RetryConfig{MaxRetries: 2, Backoff: RetryBackoffLinear, InitialDelay: 500 * time.Millisecond, MaxDelay: 5 * time.Second},
		site.Tool.LinkCheck.External.Retry)
	assert.Equal(t, "sitecfg.links.broken", site.Tool.LinkCheck.NATS.Subject)
	assert.Equal(t, ":9464", site.Tool.Monitoring.Metrics.Address)
	assert.Equal(t, LogLevelInfo, site.Tool.Monitoring.Logging.Level)
	require.Len(t, site.Presets, 1)
	assert.Equal(t, PresetClassic, site.Presets[0].Name)
}

func TestLoad_EnvExpansionKeepsYear(t *testing.T) {
	t.Setenv("SITE_HOST", "https://wiki.example.com")
	path := writeConfig(t, `
title: Wiki
url: ${SITE_HOST}
favicon: f.ico
themeConfig:
  footer:
    copyright: "© ${year} Wiki"
`)
	site, err := LoadWithClock(path, fixedClock(2032))
	require.NoError(t, err)
	assert.Equal(t, "https://wiki.example.com", site.URL)
	assert.Equal(t, "© 2032 Wiki", site.ThemeConfig.Footer.Copyright)
}

func TestExpandEnv_BracedOnly(t *testing.T) {
	t.Setenv("SITECFG_TEST_HOST", "docs.example.org")
	t.Setenv("foo", "gone")
	got := expandEnv([]byte("url: https://${SITECFG_TEST_HOST}\nhref: https://example.com/a$foo/b\ncopyright: ${year} $ ${ not-a-var}\n"))
	assert.Equal(t, "url: https://docs.example.org\nhref: https://example.com/a$foo/b\ncopyright: ${year} $ ${ not-a-var}\n", string(got))
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	path := writeConfig(t, "title: ${SITECFG_TEST_TITLE}\nurl: https://x.dev\nfavicon: ${SITECFG_TEST_FAVICON}\n")
	dir := filepath.Dir(path)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("SITECFG_TEST_TITLE=FromFile\nSITECFG_TEST_FAVICON=file.ico\n"), 0o600))
	t.Setenv("SITECFG_TEST_TITLE", "FromEnv")
	t.Cleanup(func() { _ = os.Unsetenv("SITECFG_TEST_FAVICON") })

	site, err := LoadWithClock(path, fixedClock(2030))
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", site.Title)
	assert.Equal(t, "file.ico", site.Favicon)
}

func TestLoad_ValidationErrorCarriesField(t *testing.T) {
	path := writeConfig(t, `
title: Wiki
url: https://wiki.example.com
favicon: f.ico
i18n:
  defaultLocale: fr
  locales: [en]
`)
	_, err := LoadWithClock(path, fixedClock(2030))
	require.Error(t, err)
	ce, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.CategoryValidation, ce.Category())
	field, _ := ce.Context().GetString("field")
	assert.Equal(t, "i18n.defaultLocale", field)
	p, _ := ce.Context().GetString("path")
	assert.Equal(t, path, p)
}

func TestNormalize_DedupesLocales(t *testing.T) {
	site := &Site{I18n: I18n{DefaultLocale: " en ", Locales: []string{"en", "fr", "en "}}}
	res, err := Normalize(site)
	require.NoError(t, err)
	assert.Equal(t, "en", site.I18n.DefaultLocale)
	assert.Equal(t, []string{"en", "fr"}, site.I18n.Locales)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "i18n.locales", res.Warnings[0].Field)
}

func TestNormalize_KeepsUnknownEnum(t *testing.T) {
	site := &Site{OnBrokenLinks: "Explode", OnBrokenMarkdownLinks: " THROW "}
	_, err := Normalize(site)
	require.NoError(t, err)
	assert.Equal(t, BrokenLinkPolicy("Explode"), site.OnBrokenLinks)
	assert.Equal(t, PolicyThrow, site.OnBrokenMarkdownLinks)
}

func TestDefaultApplierChain_Domains(t *testing.T) {
	chain := NewDefaultApplier()
	for _, d := range []string{"site", "i18n", "presets", "theme", "output", "linkCheck", "monitoring"} {
		assert.NotNil(t, chain.Applier(d), d)
	}
	assert.Nil(t, chain.Applier("daemon"))
}

func TestThemeDefaults_DocLabelFromID(t *testing.T) {
	site := &Site{ThemeConfig: ThemeConfig{Navbar: Navbar{Items: []NavItem{{DocID: "guides/getting-started"}}}}}
	require.NoError(t, ApplyDefaults(site))
	item := site.ThemeConfig.Navbar.Items[0]
	assert.Equal(t, "Getting Started", item.Label)
	assert.Equal(t, "doc", item.Type)
	assert.Equal(t, PositionLeft, item.Position)
}
