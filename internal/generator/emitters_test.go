package generator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitecfg/internal/config"
)

func exampleSite() *config.Site {
	return config.Example(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
}

func emit(t *testing.T, f Format, site *config.Site) string {
	t.Helper()
	e, ok := Lookup(f)
	require.True(t, ok)
	var buf bytes.Buffer
	require.NoError(t, e.Emit(&buf, site))
	return buf.String()
}

func TestDocusaurusEmitter(t *testing.T) {
	out := emit(t, FormatDocusaurus, exampleSite())

	for _, want := range []string{
		"const lightCodeTheme = require('prism-react-renderer/themes/github');\n",
		"const darkCodeTheme = require('prism-react-renderer/themes/dracula');\n",
		"  baseUrl: '/Linkit/',\n",
		"  onBrokenLinks: 'warn',\n",
		"  trailingSlash: false,\n",
		"/** @type {import('@docusaurus/preset-classic').Options} */",
		"sidebarPath: require.resolve('./sidebars.js'),\n",
		"blog: false,\n",
		"customCss: require.resolve('./src/css/custom.css'),\n",
		"copyright: 'Copyright © 2026 Linkit, Inc.<br>Built with Docusaurus.',\n",
		"theme: lightCodeTheme,\n",
		"darkTheme: darkCodeTheme,\n",
		"additionalLanguages: [\n",
		"to: 'pathname:///scaladoc',\n",
		"module.exports = config;\n",
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "docId: 'intro'"), strings.Index(out, "href: 'https://github.com/Override-6/Linkit/'"),
		"navbar order is preserved")
}

func TestDocusaurusEmitter_OptionalFields(t *testing.T) {
	site := exampleSite()
	site.TrailingSlash = nil
	site.ThemeConfig.Prism.DarkTheme = ""
	site.Presets[0].Options.Blog = config.Enable(config.BlogPluginOptions{ShowReadingTime: true})

	out := emit(t, FormatDocusaurus, site)
	assert.NotContains(t, out, "trailingSlash")
	assert.NotContains(t, out, "darkCodeTheme")
	assert.Contains(t, out, "showReadingTime: true,")
}

func TestWriteJS(t *testing.T) {
	var b strings.Builder
	v := jsObject{
		{Key: "a", Value: "it's"},
		{Key: "list", Value: jsArray{"x", 2}},
		{Key: "data-x", Value: true},
		{Key: "empty", Value: jsObject{}},
	}
	require.NoError(t, writeJS(&b, v, 0))
	want := "{\n  a: 'it\\'s',\n  list: [\n    'x',\n    2,\n  ],\n  'data-x': true,\n  empty: {},\n}"
	assert.Equal(t, want, b.String())

	assert.Equal(t, `'a\nb\u2028'`, jsString("a\nb\u2028"))
	assert.Error(t, writeJS(&b, struct{}{}, 0))
}

func TestJSONEmitter(t *testing.T) {
	out := emit(t, FormatJSON, exampleSite())

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "/Linkit/", doc["baseUrl"])
	assert.NotContains(t, doc, "sitecfg", "tool settings are never emitted")
	assert.Contains(t, out, "<br>", "HTML is not escaped")

	presets := doc["presets"].([]any)
	options := presets[0].(map[string]any)["options"].(map[string]any)
	assert.Equal(t, false, options["blog"])
}

func TestHugoEmitter(t *testing.T) {
	out := emit(t, FormatHugo, exampleSite())

	var doc struct {
		Title   string `yaml:"title"`
		BaseURL string `yaml:"baseURL"`
		Markup  struct {
			Highlight struct {
				Style string `yaml:"style"`
			} `yaml:"highlight"`
		} `yaml:"markup"`
		Menu struct {
			Main []HugoMenuEntry `yaml:"main"`
		} `yaml:"menu"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Linkit", doc.Title)
	assert.Equal(t, "https://linkit-wiki.com/Linkit/", doc.BaseURL)
	assert.Equal(t, "github", doc.Markup.Highlight.Style)

	want := []HugoMenuEntry{
		{Name: "Wiki", URL: "/docs/intro", Weight: 10, Identifier: "doc-intro"},
		{Name: "Docs", URL: "/scaladoc", Weight: 20},
		{Name: "Roadmap", URL: "/roadmap", Weight: 30},
		{Name: "Contribute", URL: "/contribute", Weight: 40},
		{Name: "GitHub", URL: "https://github.com/Override-6/Linkit/", Weight: 50,
			Params: map[string]any{"external": true, "position": "right"}},
	}
	if diff := cmp.Diff(want, doc.Menu.Main); diff != "" {
		t.Fatalf("menu mismatch (-want +got):\n%s", diff)
	}
}

func TestChromaStyle(t *testing.T) {
	assert.Equal(t, "dracula", chromaStyle(config.PrismDracula))
	assert.Equal(t, "github-dark", chromaStyle("synthwave84"))
	assert.Equal(t, "github", chromaStyle("ultramin"))
}

func TestSiteFeatures(t *testing.T) {
	site := exampleSite()
	f := SiteFeatures(site)
	assert.True(t, f.HasDocs)
	assert.False(t, f.HasBlog)
	assert.Equal(t, "docs", f.DocsRouteBasePath)

	site.Presets = append(site.Presets, config.Preset{Name: "unknown"})
	assert.Equal(t, f, SiteFeatures(site))
}
