package config

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
)

// OriginDetector reports the organization and project of the enclosing repository.
type OriginDetector func() (org, project string, ok bool)

const initHeader = `# sitecfg site configuration.
# Keys mirror the site generator's config; the sitecfg section configures the tool.
# The copyright placeholder {year} is resolved each time the config is loaded.
`

// Init writes the example configuration to path. An existing file is only
// replaced when force is set. detect may be nil.
func Init(path string, force bool, detect OriginDetector) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to stat config file").
			WithContext("path", path).
			Build()
	}

	site := exampleSite()
	if detect != nil {
		if org, project, ok := detect(); ok {
			site.OrganizationName = org
			site.ProjectName = project
			slog.Info("Detected repository origin", slog.String("organization", org), slog.String("project", project))
		}
	}
	site.ThemeConfig.Footer.Copyright = site.ThemeConfig.Footer.CopyrightTemplate

	data, err := Marshal(site)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal example config").Build()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create config directory").
				WithContext("path", dir).
				Build()
		}
	}
	if err := renameio.WriteFile(path, append([]byte(initHeader), data...), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	slog.Info("Wrote example configuration", logfields.Path(path))
	return nil
}

// Marshal renders the site as YAML with two-space indentation.
func Marshal(site *Site) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(site); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
