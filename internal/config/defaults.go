package config

import (
	"fmt"
	"path"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(site *Site) error
	Domain() string
}

// DefaultApplierChain runs domain appliers in order.
type DefaultApplierChain struct {
	appliers []DefaultApplier
}

// NewDefaultApplier returns the chain used by Load.
func NewDefaultApplier() *DefaultApplierChain {
	return &DefaultApplierChain{appliers: []DefaultApplier{
		&SiteDefaultApplier{},
		&I18nDefaultApplier{},
		&PresetDefaultApplier{},
		&ThemeDefaultApplier{},
		&OutputDefaultApplier{},
		&LinkCheckDefaultApplier{},
		&MonitoringDefaultApplier{},
	}}
}

func (c *DefaultApplierChain) ApplyDefaults(site *Site) error {
	for _, a := range c.appliers {
		if err := a.ApplyDefaults(site); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", a.Domain(), err)
		}
	}
	return nil
}

// Applier returns the applier for domain, or nil.
func (c *DefaultApplierChain) Applier(domain string) DefaultApplier {
	for _, a := range c.appliers {
		if a.Domain() == domain {
			return a
		}
	}
	return nil
}

// ApplyDefaults fills every unset field with its default.
func ApplyDefaults(site *Site) error {
	return NewDefaultApplier().ApplyDefaults(site)
}

type SiteDefaultApplier struct{}

func (s *SiteDefaultApplier) Domain() string { return "site" }

func (s *SiteDefaultApplier) ApplyDefaults(site *Site) error {
	if site.BaseURL == "" {
		site.BaseURL = "/"
	}
	// Generator defaults: broken page links fail, broken markdown links warn.
	if site.OnBrokenLinks == "" {
		site.OnBrokenLinks = PolicyThrow
	}
	if site.OnBrokenMarkdownLinks == "" {
		site.OnBrokenMarkdownLinks = PolicyWarn
	}
	return nil
}

type I18nDefaultApplier struct{}

func (i *I18nDefaultApplier) Domain() string { return "i18n" }

func (i *I18nDefaultApplier) ApplyDefaults(site *Site) error {
	if site.I18n.DefaultLocale == "" {
		site.I18n.DefaultLocale = "en"
	}
	if len(site.I18n.Locales) == 0 {
		site.I18n.Locales = []string{site.I18n.DefaultLocale}
	}
	return nil
}

type PresetDefaultApplier struct{}

func (p *PresetDefaultApplier) Domain() string { return "presets" }

func (p *PresetDefaultApplier) ApplyDefaults(site *Site) error {
	if len(site.Presets) == 0 {
		site.Presets = []Preset{{Name: PresetClassic}}
	}
	for i := range site.Presets {
		if site.Presets[i].Name != PresetClassic {
			continue
		}
		opts := &site.Presets[i].Options
		if !opts.Docs.IsSet() {
			opts.Docs = Enable(DocsPluginOptions{})
		}
		if opts.Docs.Enabled {
			d := &opts.Docs.Options
			if d.Path == "" {
				d.Path = "docs"
			}
			if d.SidebarPath == "" {
				d.SidebarPath = "./sidebars.js"
			}
			if d.RouteBasePath == "" {
				d.RouteBasePath = "docs"
			}
		}
		if !opts.Blog.IsSet() {
			opts.Blog = Disable[BlogPluginOptions]()
		}
		if opts.Blog.Enabled {
			b := &opts.Blog.Options
			if b.Path == "" {
				b.Path = "blog"
			}
			if b.RouteBasePath == "" {
				b.RouteBasePath = "blog"
			}
		}
	}
	return nil
}

type ThemeDefaultApplier struct{}

func (t *ThemeDefaultApplier) Domain() string { return "theme" }

func (t *ThemeDefaultApplier) ApplyDefaults(site *Site) error {
	tc := &site.ThemeConfig
	if tc.Navbar.Title == "" {
		tc.Navbar.Title = site.Title
	}
	titler := cases.Title(language.English)
	for i := range tc.Navbar.Items {
		item := &tc.Navbar.Items[i]
		if item.Position == "" {
			item.Position = PositionLeft
		}
		if item.DocID != "" && item.Type == "" {
			item.Type = "doc"
		}
		if item.Label == "" && item.DocID != "" {
			label := strings.NewReplacer("-", " ", "_", " ").Replace(path.Base(item.DocID))
			item.Label = titler.String(label)
		}
	}
	if tc.Footer.Style == "" {
		tc.Footer.Style = FooterLight
	}
	if strings.TrimSpace(tc.Footer.CopyrightTemplate) == "" {
		tc.Footer.CopyrightTemplate = defaultCopyrightTemplate(site.Title)
	}
	if tc.Prism.Theme == "" {
		tc.Prism.Theme = PrismPalenight
	}
	if tc.ColorMode.DefaultMode == "" {
		tc.ColorMode.DefaultMode = ColorModeLight
	}
	return nil
}

type OutputDefaultApplier struct{}

func (o *OutputDefaultApplier) Domain() string { return "output" }

func (o *OutputDefaultApplier) ApplyDefaults(site *Site) error {
	tool := &site.Tool
	if tool.SiteDir == "" {
		tool.SiteDir = "."
	}
	if tool.Docs.Path == "" {
		tool.Docs.Path = "docs"
		if cp := site.Preset(PresetClassic); cp != nil && cp.Options.Docs.Enabled {
			tool.Docs.Path = cp.Options.Docs.Options.Path
		}
	}
	if tool.Docs.PagesPath == "" {
		tool.Docs.PagesPath = "src/pages"
	}
	if tool.Output.Directory == "" {
		tool.Output.Directory = "./build-config"
	}
	if len(tool.Output.Formats) == 0 {
		tool.Output.Formats = []string{"docusaurus"}
	}
	return nil
}

type LinkCheckDefaultApplier struct{}

func (l *LinkCheckDefaultApplier) Domain() string { return "linkCheck" }

func (l *LinkCheckDefaultApplier) ApplyDefaults(site *Site) error {
	ext := &site.Tool.LinkCheck.External
	if ext.MaxConcurrent <= 0 {
		ext.MaxConcurrent = 8
	}
	if ext.RequestTimeout <= 0 {
		ext.RequestTimeout = 10 * time.Second
	}
	if ext.RateLimit <= 0 {
		ext.RateLimit = 5
	}
	if ext.CacheTTL <= 0 {
		ext.CacheTTL = 24 * time.Hour
	}
	if ext.CacheTTLFailures <= 0 {
		ext.CacheTTLFailures = time.Hour
	}
	if ext.CachePath == "" {
		ext.CachePath = ".sitecfg/links.db"
	}
	if ext.UserAgent == "" {
		ext.UserAgent = "sitecfg-linkcheck/1.0"
	}
	if ext.Retry.MaxRetries == 0 {
		ext.Retry.MaxRetries = 2
	}
	if ext.Retry.Backoff == "" {
		ext.Retry.Backoff = RetryBackoffLinear
	}
	if ext.Retry.InitialDelay <= 0 {
		ext.Retry.InitialDelay = 500 * time.Millisecond
	}
	if ext.Retry.MaxDelay <= 0 {
		ext.Retry.MaxDelay = 5 * time.Second
	}
	if site.Tool.LinkCheck.NATS.Subject == "" {
		site.Tool.LinkCheck.NATS.Subject = "sitecfg.links.broken"
	}
	return nil
}

type MonitoringDefaultApplier struct{}

func (m *MonitoringDefaultApplier) Domain() string { return "monitoring" }

func (m *MonitoringDefaultApplier) ApplyDefaults(site *Site) error {
	mon := &site.Tool.Monitoring
	if mon.Metrics.Address == "" {
		mon.Metrics.Address = ":9464"
	}
	if mon.Metrics.Path == "" {
		mon.Metrics.Path = "/metrics"
	}
	if mon.Health.Path == "" {
		mon.Health.Path = "/health"
	}
	if mon.Logging.Level == "" {
		mon.Logging.Level = LogLevelInfo
	}
	if mon.Logging.Format == "" {
		mon.Logging.Format = LogFormatText
	}
	return nil
}
