package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

const testYear = 2030

func exampleAt(year int) *Site {
	return Example(time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC))
}

func fields(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		ce, ok := ferrors.AsClassified(err)
		if !ok {
			continue
		}
		f, _ := ce.Context().GetString("field")
		out = append(out, f)
	}
	return out
}

func TestExample_IsValid(t *testing.T) {
	site := exampleAt(testYear)
	assert.Empty(t, ValidateAll(site, testYear))
	assert.Equal(t, "https://linkit-wiki.com/Linkit/", site.SiteURL())
	assert.Equal(t, "Copyright © 2030 Linkit, Inc.<br>Built with Docusaurus.", site.ThemeConfig.Footer.Copyright)
	assert.Equal(t, []string{"en"}, site.I18n.Locales)
}

func TestExample_EveryNavItemHasOneTarget(t *testing.T) {
	site := exampleAt(testYear)
	for _, item := range site.ThemeConfig.Navbar.Items {
		assert.NotEqual(t, NavItemInvalid, item.Kind(), item.Label)
		assert.NotEmpty(t, item.Target(), item.Label)
	}
	for _, g := range site.ThemeConfig.Footer.Links {
		for _, link := range g.Items {
			assert.Equal(t, NavItemHref, link.Kind(), link.Label)
		}
	}
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Site)
		field  string
	}{
		{"missing title", func(s *Site) { s.Title = "" }, "title"},
		{"missing favicon", func(s *Site) { s.Favicon = "" }, "favicon"},
		{"url with path", func(s *Site) { s.URL = "https://linkit-wiki.com/Linkit" }, "url"},
		{"relative url", func(s *Site) { s.URL = "linkit-wiki.com" }, "url"},
		{"baseUrl without trailing slash", func(s *Site) { s.BaseURL = "/Linkit" }, "baseUrl"},
		{"bad policy", func(s *Site) { s.OnBrokenLinks = "explode" }, "onBrokenLinks"},
		{"bad markdown policy", func(s *Site) { s.OnBrokenMarkdownLinks = "" }, "onBrokenMarkdownLinks"},
		{"default locale missing", func(s *Site) { s.I18n.DefaultLocale = "fr" }, "i18n.defaultLocale"},
		{"empty locales", func(s *Site) { s.I18n.Locales = nil }, "i18n.locales"},
		{"malformed locale", func(s *Site) { s.I18n.Locales = append(s.I18n.Locales, "not a locale!") }, "i18n.locales"},
		{"two targets", func(s *Site) { s.ThemeConfig.Navbar.Items[1].Href = "https://x.dev" }, "themeConfig.navbar.items[1]"},
		{"no target", func(s *Site) { s.ThemeConfig.Navbar.Items[2].To = "" }, "themeConfig.navbar.items[2]"},
		{"doc item without docId", func(s *Site) {
			s.ThemeConfig.Navbar.Items[0].DocID = ""
		}, "themeConfig.navbar.items[0].docId"},
		{"relative href", func(s *Site) { s.ThemeConfig.Navbar.Items[4].Href = "github.com/x" }, "themeConfig.navbar.items[4].href"},
		{"footer link two targets", func(s *Site) {
			s.ThemeConfig.Footer.Links[0].Items[0].To = "/x"
		}, "themeConfig.footer.links[0].items[0]"},
		{"copyright without year", func(s *Site) { s.ThemeConfig.Footer.Copyright = "Copyright Linkit" }, "themeConfig.footer.copyright"},
		{"copyright empty", func(s *Site) { s.ThemeConfig.Footer.Copyright = " " }, "themeConfig.footer.copyright"},
		{"copyright block html", func(s *Site) {
			s.ThemeConfig.Footer.Copyright = "<div>2030</div>"
		}, "themeConfig.footer.copyright"},
		{"unknown prism theme", func(s *Site) { s.ThemeConfig.Prism.Theme = "solarized" }, "themeConfig.prism.theme"},
		{"duplicate language", func(s *Site) {
			s.ThemeConfig.Prism.AdditionalLanguages = []string{"java", "java"}
		}, "themeConfig.prism.additionalLanguages"},
		{"bad color mode", func(s *Site) { s.ThemeConfig.ColorMode.DefaultMode = "sepia" }, "themeConfig.colorMode.defaultMode"},
		{"bad footer style", func(s *Site) { s.ThemeConfig.Footer.Style = "neon" }, "themeConfig.footer.style"},
		{"unknown preset", func(s *Site) { s.Presets[0].Name = "modern" }, "presets[0].name"},
		{"duplicate preset", func(s *Site) { s.Presets = append(s.Presets, s.Presets[0]) }, "presets[1].name"},
		{"unknown format", func(s *Site) { s.Tool.Output.Formats = []string{"gatsby"} }, "sitecfg.output.formats"},
		{"bad nats url", func(s *Site) { s.Tool.LinkCheck.NATS.URL = "::" }, "sitecfg.linkCheck.nats.url"},
		{"bad retry backoff", func(s *Site) {
			s.Tool.LinkCheck.External.Retry.Backoff = "random"
		}, "sitecfg.linkCheck.external.retry.backoff"},
		{"retry delays inverted", func(s *Site) {
			s.Tool.LinkCheck.External.Retry.InitialDelay = time.Minute
		}, "sitecfg.linkCheck.external.retry.initialDelay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := exampleAt(testYear)
			tt.mutate(site)
			errs := ValidateAll(site, testYear)
			require.NotEmpty(t, errs)
			assert.Contains(t, fields(errs), tt.field)
			for _, err := range errs {
				assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
			}
		})
	}
}

func TestValidate_ReturnsFirst(t *testing.T) {
	site := exampleAt(time.Now().Year())
	site.Title = ""
	site.Favicon = ""
	err := Validate(site)
	require.Error(t, err)
	assert.Equal(t, []string{"title"}, fields([]error{err}))
}

func TestValidate_AllPoliciesAccepted(t *testing.T) {
	for _, p := range []BrokenLinkPolicy{PolicyIgnore, PolicyLog, PolicyWarn, PolicyThrow} {
		site := exampleAt(testYear)
		site.OnBrokenLinks = p
		site.OnBrokenMarkdownLinks = p
		assert.Empty(t, ValidateAll(site, testYear), p)
	}
}

func TestValidate_MailtoHref(t *testing.T) {
	site := exampleAt(testYear)
	site.ThemeConfig.Footer.Links[0].Items[0].Href = "mailto:team@linkit-wiki.com"
	assert.Empty(t, ValidateAll(site, testYear))
}
