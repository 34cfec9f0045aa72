package config

import (
	"fmt"
	"strings"
)

// NormalizeWarning records a change made while normalizing.
type NormalizeWarning struct {
	Field   string
	Message string
}

// NormalizeResult collects the warnings of one Normalize pass.
type NormalizeResult struct {
	Warnings []NormalizeWarning
}

func (r *NormalizeResult) warn(field, format string, args ...any) {
	r.Warnings = append(r.Warnings, NormalizeWarning{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Normalize trims strings, case-folds enumerations and dedupes locales in place.
// Unrecognized enum values are kept verbatim so validation can report them.
func Normalize(site *Site) (*NormalizeResult, error) {
	if site == nil {
		return nil, fmt.Errorf("normalize: nil site")
	}
	res := &NormalizeResult{}

	site.Title = strings.TrimSpace(site.Title)
	site.Tagline = strings.TrimSpace(site.Tagline)
	site.URL = strings.TrimSpace(site.URL)
	site.BaseURL = strings.TrimSpace(site.BaseURL)
	site.Favicon = strings.TrimSpace(site.Favicon)
	site.OrganizationName = strings.TrimSpace(site.OrganizationName)
	site.ProjectName = strings.TrimSpace(site.ProjectName)

	site.OnBrokenLinks = normalizeEnum(string(site.OnBrokenLinks), NormalizeBrokenLinkPolicy)
	site.OnBrokenMarkdownLinks = normalizeEnum(string(site.OnBrokenMarkdownLinks), NormalizeBrokenLinkPolicy)

	normalizeI18n(&site.I18n, res)

	for i := range site.Presets {
		site.Presets[i].Name = strings.ToLower(strings.TrimSpace(site.Presets[i].Name))
	}

	tc := &site.ThemeConfig
	for i := range tc.Navbar.Items {
		item := &tc.Navbar.Items[i]
		item.Type = strings.ToLower(strings.TrimSpace(item.Type))
		item.DocID = strings.TrimSpace(item.DocID)
		item.To = strings.TrimSpace(item.To)
		item.Href = strings.TrimSpace(item.Href)
		item.Position = normalizeEnum(string(item.Position), NormalizePosition)
	}
	tc.Footer.Style = normalizeEnum(string(tc.Footer.Style), NormalizeFooterStyle)
	for g := range tc.Footer.Links {
		for i := range tc.Footer.Links[g].Items {
			link := &tc.Footer.Links[g].Items[i]
			link.To = strings.TrimSpace(link.To)
			link.Href = strings.TrimSpace(link.Href)
		}
	}
	tc.Prism.Theme = normalizeEnum(string(tc.Prism.Theme), NormalizePrismTheme)
	tc.Prism.DarkTheme = normalizeEnum(string(tc.Prism.DarkTheme), NormalizePrismTheme)
	for i, lang := range tc.Prism.AdditionalLanguages {
		tc.Prism.AdditionalLanguages[i] = strings.ToLower(strings.TrimSpace(lang))
	}
	tc.ColorMode.DefaultMode = normalizeEnum(string(tc.ColorMode.DefaultMode), NormalizeColorMode)

	retry := &site.Tool.LinkCheck.External.Retry
	retry.Backoff = normalizeEnum(string(retry.Backoff), NormalizeRetryBackoff)

	logging := &site.Tool.Monitoring.Logging
	logging.Level = normalizeEnum(string(logging.Level), NormalizeLogLevel)
	logging.Format = normalizeEnum(string(logging.Format), NormalizeLogFormat)
	for i, f := range site.Tool.Output.Formats {
		site.Tool.Output.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}

	return res, nil
}

func normalizeI18n(i *I18n, res *NormalizeResult) {
	i.DefaultLocale = strings.TrimSpace(i.DefaultLocale)
	seen := make(map[string]bool, len(i.Locales))
	out := i.Locales[:0]
	for _, l := range i.Locales {
		l = strings.TrimSpace(l)
		if seen[l] {
			res.warn("i18n.locales", "duplicate locale %q removed", l)
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	i.Locales = out
}

// normalizeEnum returns the canonical value when raw is recognized, raw otherwise.
func normalizeEnum[T ~string](raw string, fn func(string) T) T {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if v := fn(raw); v != "" {
		return v
	}
	return T(raw)
}
