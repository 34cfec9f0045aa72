package config

import (
	"strings"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/normalization"
)

// BrokenLinkPolicy selects what happens when a link target cannot be resolved.
type BrokenLinkPolicy string

const (
	PolicyIgnore BrokenLinkPolicy = "ignore"
	PolicyLog    BrokenLinkPolicy = "log"
	PolicyWarn   BrokenLinkPolicy = "warn"
	PolicyThrow  BrokenLinkPolicy = "throw"
)

var brokenLinkPolicyNormalizer = normalization.NewEnumNormalizer("broken link policy", map[string]BrokenLinkPolicy{
	"ignore": PolicyIgnore,
	"log":    PolicyLog,
	"warn":   PolicyWarn,
	"throw":  PolicyThrow,
}, "")

// NormalizeBrokenLinkPolicy returns the canonical policy or "" when raw is unknown.
func NormalizeBrokenLinkPolicy(raw string) BrokenLinkPolicy {
	return brokenLinkPolicyNormalizer.Normalize(raw)
}

// Fails reports whether the policy aborts the run.
func (p BrokenLinkPolicy) Fails() bool { return p == PolicyThrow }

// FooterStyle is the footer color scheme.
type FooterStyle string

const (
	FooterDark  FooterStyle = "dark"
	FooterLight FooterStyle = "light"
)

var footerStyleNormalizer = normalization.NewEnumNormalizer("footer style", map[string]FooterStyle{
	"dark":  FooterDark,
	"light": FooterLight,
}, "")

// NormalizeFooterStyle returns the canonical style or "" when raw is unknown.
func NormalizeFooterStyle(raw string) FooterStyle { return footerStyleNormalizer.Normalize(raw) }

// ColorModeKind is a light or dark UI theme.
type ColorModeKind string

const (
	ColorModeLight ColorModeKind = "light"
	ColorModeDark  ColorModeKind = "dark"
)

var colorModeNormalizer = normalization.NewEnumNormalizer("color mode", map[string]ColorModeKind{
	"light": ColorModeLight,
	"dark":  ColorModeDark,
}, "")

// NormalizeColorMode returns the canonical mode or "" when raw is unknown.
func NormalizeColorMode(raw string) ColorModeKind { return colorModeNormalizer.Normalize(raw) }

// RetryBackoffMode shapes the delay between retries of transient failures.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

var retryBackoffNormalizer = normalization.NewEnumNormalizer("retry backoff", map[string]RetryBackoffMode{
	"fixed":       RetryBackoffFixed,
	"linear":      RetryBackoffLinear,
	"exponential": RetryBackoffExponential,
	"exp":         RetryBackoffExponential,
}, "")

// NormalizeRetryBackoff returns the canonical mode or "" when raw is unknown.
func NormalizeRetryBackoff(raw string) RetryBackoffMode { return retryBackoffNormalizer.Normalize(raw) }

// NavItemPosition places a navbar item.
type NavItemPosition string

const (
	PositionLeft  NavItemPosition = "left"
	PositionRight NavItemPosition = "right"
)

var positionNormalizer = normalization.NewEnumNormalizer("navbar position", map[string]NavItemPosition{
	"left":  PositionLeft,
	"right": PositionRight,
}, "")

// NormalizePosition returns the canonical position or "" when raw is unknown.
func NormalizePosition(raw string) NavItemPosition { return positionNormalizer.Normalize(raw) }

// NavItemKind is the target variant of a navigation entry.
type NavItemKind string

const (
	NavItemInvalid NavItemKind = ""
	NavItemDoc     NavItemKind = "doc"
	NavItemRoute   NavItemKind = "route"
	NavItemHref    NavItemKind = "href"
)

// PrismTheme names a prism-react-renderer theme module.
type PrismTheme string

const (
	PrismGithub    PrismTheme = "github"
	PrismDracula   PrismTheme = "dracula"
	PrismPalenight PrismTheme = "palenight"
)

// Theme names are case sensitive module names; matching ignores case only to
// repair obvious typos like "Dracula".
var prismThemeNormalizer = normalization.WithCustomNormalizer(prismThemes(), "", func(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
})

func prismThemes() map[string]PrismTheme {
	names := []string{
		"github", "dracula", "vsDark", "vsLight", "nightOwl", "nightOwlLight",
		"oceanicNext", "okaidia", "palenight", "shadesOfPurple", "synthwave84",
		"ultramin", "duotoneDark", "duotoneLight", "oneDark", "oneLight",
		"gruvboxMaterialDark", "gruvboxMaterialLight", "jettwaveDark", "jettwaveLight",
	}
	m := make(map[string]PrismTheme, len(names))
	for _, n := range names {
		m[n] = PrismTheme(n)
	}
	return m
}

// NormalizePrismTheme returns the canonical theme name or "" when raw is unknown.
func NormalizePrismTheme(raw string) PrismTheme { return prismThemeNormalizer.Normalize(raw) }

// IsDark reports whether the prism theme has a dark background.
func (t PrismTheme) IsDark() bool {
	switch t {
	case "dracula", "vsDark", "nightOwl", "oceanicNext", "okaidia", "palenight",
		"shadesOfPurple", "synthwave84", "duotoneDark", "oneDark", "gruvboxMaterialDark", "jettwaveDark":
		return true
	default:
		return false
	}
}

// ValidPolicies lists the accepted broken-link policy spellings.
func ValidPolicies() []string { return brokenLinkPolicyNormalizer.ValidKeys() }
