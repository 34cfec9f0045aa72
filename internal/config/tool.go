package config

import (
	"path/filepath"
	"time"
)

// ToolConfig configures sitecfg itself. It lives under the top-level
// "sitecfg" key and is never emitted.
type ToolConfig struct {
	// SiteDir is the site root, relative to the config file.
	SiteDir    string           `yaml:"siteDir,omitempty"`
	Docs       DocsSource       `yaml:"docs,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty"`
	LinkCheck  LinkCheckConfig  `yaml:"linkCheck,omitempty"`
	Monitoring MonitoringConfig `yaml:"monitoring,omitempty"`

	baseDir string
}

// DocsSource locates the Markdown sources scanned for doc ids and links.
type DocsSource struct {
	Path      string `yaml:"path,omitempty"`
	PagesPath string `yaml:"pagesPath,omitempty"`
}

// OutputConfig controls emission.
type OutputConfig struct {
	Directory string   `yaml:"directory,omitempty"`
	Formats   []string `yaml:"formats,omitempty"`
	// Clean removes previously emitted files whose format is no longer selected.
	Clean bool `yaml:"clean,omitempty"`
}

// LinkCheckConfig configures the check command.
type LinkCheckConfig struct {
	KnownRoutes []string           `yaml:"knownRoutes,omitempty"`
	External    ExternalLinkConfig `yaml:"external,omitempty"`
	NATS        NATSConfig         `yaml:"nats,omitempty"`
}

// ExternalLinkConfig configures verification of absolute hrefs.
type ExternalLinkConfig struct {
	Enabled          bool          `yaml:"enabled,omitempty"`
	MaxConcurrent    int           `yaml:"maxConcurrent,omitempty"`
	RequestTimeout   time.Duration `yaml:"requestTimeout,omitempty"`
	RateLimit        float64       `yaml:"rateLimit,omitempty"`
	CacheTTL         time.Duration `yaml:"cacheTTL,omitempty"`
	CacheTTLFailures time.Duration `yaml:"cacheTTLFailures,omitempty"`
	CachePath        string        `yaml:"cachePath,omitempty"`
	UserAgent        string        `yaml:"userAgent,omitempty"`
	Retry            RetryConfig   `yaml:"retry,omitempty"`
}

// RetryConfig bounds retries of transient failures (network errors, 5xx).
// A negative MaxRetries disables retrying; zero selects the default.
type RetryConfig struct {
	MaxRetries   int              `yaml:"maxRetries,omitempty"`
	Backoff      RetryBackoffMode `yaml:"backoff,omitempty"`
	InitialDelay time.Duration    `yaml:"initialDelay,omitempty"`
	MaxDelay     time.Duration    `yaml:"maxDelay,omitempty"`
}

// NATSConfig enables publishing broken-link events. Empty URL disables it.
type NATSConfig struct {
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
	// JetStream publishes with acknowledgement instead of core NATS fire-and-forget.
	JetStream bool `yaml:"jetstream,omitempty"`
}

// MonitoringConfig groups metrics, health and logging settings.
type MonitoringConfig struct {
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
	Health  HealthConfig  `yaml:"health,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Address string `yaml:"address,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

type HealthConfig struct {
	Path string `yaml:"path,omitempty"`
}

type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// Resolve makes p absolute against the site directory. Absolute paths are returned unchanged.
func (t ToolConfig) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(t.Root(), p)
}

// Root is the site directory: SiteDir relative to the config file location.
func (t ToolConfig) Root() string {
	if filepath.IsAbs(t.SiteDir) {
		return t.SiteDir
	}
	return filepath.Join(t.baseDir, t.SiteDir)
}

// WithBaseDir sets the directory relative paths are resolved against.
func (t *ToolConfig) WithBaseDir(dir string) { t.baseDir = dir }
