package config

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

// OutputFormats lists the emitter names accepted in sitecfg.output.formats.
var OutputFormats = []string{"docusaurus", "json", "hugo"}

// KnownPresets lists the preset names the generator can emit.
var KnownPresets = []string{PresetClassic}

// Validate checks every invariant against the current year and returns the first violation.
func Validate(site *Site) error {
	return validateAt(site, time.Now().Year())
}

// ValidateAll returns every violation.
func ValidateAll(site *Site, year int) []error {
	cv := newConfigurationValidator(site, year)
	cv.validate()
	return cv.problems
}

func validateAt(site *Site, year int) error {
	if errs := ValidateAll(site, year); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	site     *Site
	year     int
	problems []error
}

func newConfigurationValidator(site *Site, year int) *configurationValidator {
	return &configurationValidator{site: site, year: year}
}

func (cv *configurationValidator) fail(field string, value any, format string, args ...any) {
	cv.problems = append(cv.problems, ferrors.ValidationError(fmt.Sprintf(format, args...)).
		WithContext("field", field).
		WithContext("value", value).
		Build())
}

func (cv *configurationValidator) validate() {
	if cv.site == nil {
		cv.fail("", nil, "configuration is empty")
		return
	}
	cv.validateMetadata()
	cv.validateURLs()
	cv.validatePolicies()
	cv.validateI18n()
	cv.validatePresets()
	cv.validateNavbar()
	cv.validateFooter()
	cv.validatePrism()
	cv.validateColorMode()
	cv.validateTool()
}

func (cv *configurationValidator) validateMetadata() {
	if cv.site.Title == "" {
		cv.fail("title", "", "title is required")
	}
	if cv.site.Favicon == "" {
		cv.fail("favicon", "", "favicon is required")
	}
}

func (cv *configurationValidator) validateURLs() {
	s := cv.site
	u, err := url.Parse(s.URL)
	switch {
	case s.URL == "":
		cv.fail("url", "", "url is required")
	case err != nil:
		cv.fail("url", s.URL, "url is not a valid URL: %v", err)
	case u.Scheme != "http" && u.Scheme != "https":
		cv.fail("url", s.URL, "url must be an absolute http(s) URL")
	case u.Host == "":
		cv.fail("url", s.URL, "url must include a host")
	case (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "":
		cv.fail("url", s.URL, "url must not contain a path, query or fragment; put the path in baseUrl")
	}

	if !strings.HasPrefix(s.BaseURL, "/") || !strings.HasSuffix(s.BaseURL, "/") {
		cv.fail("baseUrl", s.BaseURL, "baseUrl must start and end with /")
		return
	}
	if full, err := url.Parse(s.SiteURL()); err != nil || !full.IsAbs() {
		cv.fail("baseUrl", s.SiteURL(), "url and baseUrl do not form an absolute URL")
	}
}

func (cv *configurationValidator) validatePolicies() {
	policies := []struct {
		field  string
		policy BrokenLinkPolicy
	}{
		{"onBrokenLinks", cv.site.OnBrokenLinks},
		{"onBrokenMarkdownLinks", cv.site.OnBrokenMarkdownLinks},
	}
	for _, p := range policies {
		if !brokenLinkPolicyNormalizer.IsValid(p.policy) {
			cv.fail(p.field, string(p.policy), "%s must be one of %s", p.field, strings.Join(ValidPolicies(), "|"))
		}
	}
}

func (cv *configurationValidator) validateI18n() {
	i := cv.site.I18n
	if len(i.Locales) == 0 {
		cv.fail("i18n.locales", "", "at least one locale is required")
		return
	}
	if !i.HasLocale(i.DefaultLocale) {
		cv.fail("i18n.defaultLocale", i.DefaultLocale, "defaultLocale %q is not listed in locales", i.DefaultLocale)
	}
	for _, l := range i.Locales {
		if _, err := language.Parse(l); err != nil {
			cv.fail("i18n.locales", l, "locale %q is not a valid BCP 47 tag", l)
		}
	}
}

func (cv *configurationValidator) validatePresets() {
	seen := make(map[string]bool)
	for idx, p := range cv.site.Presets {
		field := "presets[" + strconv.Itoa(idx) + "]"
		if p.Name == "" {
			cv.fail(field+".name", "", "preset name is required")
			continue
		}
		if seen[p.Name] {
			cv.fail(field+".name", p.Name, "preset %q is configured more than once", p.Name)
		}
		seen[p.Name] = true
		if !slices.Contains(KnownPresets, p.Name) {
			cv.fail(field+".name", p.Name, "unknown preset %q", p.Name)
			continue
		}
		if d := p.Options.Docs; d.Enabled {
			if d.Options.Path == "" {
				cv.fail(field+".options.docs.path", "", "docs path is required when docs are enabled")
			}
			if d.Options.EditURL != "" && !isAbsoluteHTTP(d.Options.EditURL) {
				cv.fail(field+".options.docs.editUrl", d.Options.EditURL, "editUrl must be an absolute http(s) URL")
			}
		}
		if b := p.Options.Blog; b.Enabled && b.Options.EditURL != "" && !isAbsoluteHTTP(b.Options.EditURL) {
			cv.fail(field+".options.blog.editUrl", b.Options.EditURL, "editUrl must be an absolute http(s) URL")
		}
	}
}

func (cv *configurationValidator) validateNavbar() {
	nb := cv.site.ThemeConfig.Navbar
	if nb.Logo != nil && nb.Logo.Src == "" {
		cv.fail("themeConfig.navbar.logo.src", "", "navbar logo requires src")
	}
	for idx, item := range nb.Items {
		field := "themeConfig.navbar.items[" + strconv.Itoa(idx) + "]"
		if item.Label == "" {
			cv.fail(field+".label", "", "navbar item label is required")
		}
		if item.Position != "" && !positionNormalizer.IsValid(item.Position) {
			cv.fail(field+".position", string(item.Position), "position must be left or right")
		}
		if item.Type != "" && item.Type != "doc" {
			cv.fail(field+".type", item.Type, "unsupported navbar item type %q", item.Type)
		}
		if item.Type == "doc" && item.DocID == "" {
			cv.fail(field+".docId", "", "doc navbar item requires docId")
			continue
		}
		cv.validateTarget(field, item.Kind(), item.Href)
	}
}

func (cv *configurationValidator) validateFooter() {
	f := cv.site.ThemeConfig.Footer
	if !footerStyleNormalizer.IsValid(f.Style) {
		cv.fail("themeConfig.footer.style", string(f.Style), "footer style must be dark or light")
	}
	for g, group := range f.Links {
		gfield := "themeConfig.footer.links[" + strconv.Itoa(g) + "]"
		if group.Title == "" {
			cv.fail(gfield+".title", "", "footer link group title is required")
		}
		for i, link := range group.Items {
			field := gfield + ".items[" + strconv.Itoa(i) + "]"
			if link.Label == "" {
				cv.fail(field+".label", "", "footer link label is required")
			}
			cv.validateTarget(field, link.Kind(), link.Href)
		}
	}

	year := strconv.Itoa(cv.year)
	switch {
	case strings.TrimSpace(f.Copyright) == "":
		cv.fail("themeConfig.footer.copyright", "", "copyright must not be empty")
	case !strings.Contains(f.Copyright, year):
		cv.fail("themeConfig.footer.copyright", f.Copyright, "copyright must contain the current year %s", year)
	}
	if err := checkCopyrightHTML(f.Copyright); err != nil {
		cv.fail("themeConfig.footer.copyright", f.Copyright, "%v", err)
	}
}

func (cv *configurationValidator) validateTarget(field string, kind NavItemKind, href string) {
	switch kind {
	case NavItemInvalid:
		cv.fail(field, "", "exactly one of docId, to or href must be set")
	case NavItemHref:
		if !isExternalHref(href) {
			cv.fail(field+".href", href, "href must be an absolute http(s) or mailto URL")
		}
	}
}

func (cv *configurationValidator) validatePrism() {
	p := cv.site.ThemeConfig.Prism
	if p.Theme != "" && !prismThemeNormalizer.IsValid(p.Theme) {
		cv.fail("themeConfig.prism.theme", string(p.Theme), "unknown prism theme %q", p.Theme)
	}
	if p.DarkTheme != "" && !prismThemeNormalizer.IsValid(p.DarkTheme) {
		cv.fail("themeConfig.prism.darkTheme", string(p.DarkTheme), "unknown prism theme %q", p.DarkTheme)
	}
	seen := make(map[string]bool)
	for _, lang := range p.AdditionalLanguages {
		if lang == "" {
			cv.fail("themeConfig.prism.additionalLanguages", "", "language names must not be empty")
			continue
		}
		if seen[lang] {
			cv.fail("themeConfig.prism.additionalLanguages", lang, "language %q listed more than once", lang)
		}
		seen[lang] = true
	}
}

func (cv *configurationValidator) validateColorMode() {
	mode := cv.site.ThemeConfig.ColorMode.DefaultMode
	if !colorModeNormalizer.IsValid(mode) {
		cv.fail("themeConfig.colorMode.defaultMode", string(mode), "defaultMode must be light or dark")
	}
}

func (cv *configurationValidator) validateTool() {
	t := cv.site.Tool
	seen := make(map[string]bool)
	for _, f := range t.Output.Formats {
		if !slices.Contains(OutputFormats, f) {
			cv.fail("sitecfg.output.formats", f, "unknown output format %q, valid options: %s", f, strings.Join(OutputFormats, "|"))
		}
		if seen[f] {
			cv.fail("sitecfg.output.formats", f, "output format %q listed more than once", f)
		}
		seen[f] = true
	}
	for _, r := range t.LinkCheck.KnownRoutes {
		if r == "" {
			cv.fail("sitecfg.linkCheck.knownRoutes", "", "known routes must not be empty")
		}
	}
	if b := t.LinkCheck.External.Retry.Backoff; !retryBackoffNormalizer.IsValid(b) {
		cv.fail("sitecfg.linkCheck.external.retry.backoff", string(b), "backoff must be one of fixed|linear|exponential")
	}
	if r := t.LinkCheck.External.Retry; r.InitialDelay > r.MaxDelay {
		cv.fail("sitecfg.linkCheck.external.retry.initialDelay", r.InitialDelay.String(), "initialDelay must not exceed maxDelay")
	}
	if n := t.LinkCheck.NATS.URL; n != "" {
		if u, err := url.Parse(n); err != nil || u.Host == "" {
			cv.fail("sitecfg.linkCheck.nats.url", n, "nats url must be like nats://host:4222")
		}
	}
	mon := t.Monitoring
	if !logLevelNormalizer.IsValid(mon.Logging.Level) {
		cv.fail("sitecfg.monitoring.logging.level", string(mon.Logging.Level), "log level must be one of debug|info|warn|error")
	}
	if !logFormatNormalizer.IsValid(mon.Logging.Format) {
		cv.fail("sitecfg.monitoring.logging.format", string(mon.Logging.Format), "log format must be text or json")
	}
	if !strings.HasPrefix(mon.Metrics.Path, "/") {
		cv.fail("sitecfg.monitoring.metrics.path", mon.Metrics.Path, "metrics path must start with /")
	}
	if !strings.HasPrefix(mon.Health.Path, "/") {
		cv.fail("sitecfg.monitoring.health.path", mon.Health.Path, "health path must start with /")
	}
	if mon.Metrics.Path == mon.Health.Path {
		cv.fail("sitecfg.monitoring.health.path", mon.Health.Path, "health and metrics paths must differ")
	}
}

func isAbsoluteHTTP(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isExternalHref(raw string) bool {
	if isAbsoluteHTTP(raw) {
		return true
	}
	u, err := url.Parse(raw)
	return err == nil && u.Scheme == "mailto" && u.Opaque != ""
}
