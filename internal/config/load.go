package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
)

// DefaultPath is the config file used when none is given.
const DefaultPath = "sitecfg.yaml"

// Load reads, normalizes, defaults and validates the site config at path.
func Load(path string) (*Site, error) {
	return LoadWithClock(path, time.Now)
}

// LoadWithClock is Load with an explicit clock for copyright resolution.
func LoadWithClock(path string, now func() time.Time) (*Site, error) {
	dir := filepath.Dir(path)
	if err := loadEnvFiles(dir); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load environment file").
			WithContext("path", dir).
			Build()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError("configuration file not found").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", path).
			Build()
	}

	site, err := Parse(expandEnv(data), dir, now)
	if err != nil {
		if ce, ok := ferrors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	return site, nil
}

// Parse decodes an already expanded document and runs the full pipeline.
// baseDir anchors the relative paths of the tool section.
func Parse(data []byte, baseDir string, now func() time.Time) (*Site, error) {
	site, err := decode(data)
	if err != nil {
		return nil, err
	}
	site.Tool.WithBaseDir(baseDir)

	res, err := Normalize(site)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to normalize config").Build()
	}
	for _, w := range res.Warnings {
		slog.Warn("Config normalized", logfields.Field(w.Field), slog.String("detail", w.Message))
	}

	if err := ApplyDefaults(site); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to apply defaults").Build()
	}

	year := now().Year()
	site.ThemeConfig.Footer.Copyright = ResolveCopyright(site.ThemeConfig.Footer.CopyrightTemplate, year)

	if err := validateAt(site, year); err != nil {
		return nil, err
	}
	return site, nil
}

func decode(data []byte) (*Site, error) {
	var site Site
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&site); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ferrors.ConfigError("configuration file is empty").Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse config").Build()
	}
	site.ThemeConfig.Footer.CopyrightTemplate = site.ThemeConfig.Footer.Copyright
	return &site, nil
}
