package generator

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/metrics"
)

// Generator writes emitter output into the configured output directory.
type Generator struct {
	recorder metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time

	outputDir string
	clean     bool
}

type Option func(*Generator)

func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithClock overrides the clock used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithOutputDir writes into dir instead of sitecfg.output.directory.
// A relative dir is resolved against the site directory.
func WithOutputDir(dir string) Option {
	return func(g *Generator) { g.outputDir = dir }
}

// WithClean removes files of deselected formats even when sitecfg.output.clean is off.
func WithClean() Option {
	return func(g *Generator) { g.clean = true }
}

func New(opts ...Option) *Generator {
	g := &Generator{recorder: metrics.NoopRecorder{}, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate emits site in each format. Empty formats selects the configured
// output formats. Files whose content did not change are left untouched.
func (g *Generator) Generate(ctx context.Context, site *config.Site, formats []string) (*Report, error) {
	if len(formats) == 0 {
		formats = site.Tool.Output.Formats
	}
	dir := site.Tool.Output.Directory
	if g.outputDir != "" {
		dir = g.outputDir
	}
	outDir := site.Tool.Resolve(dir)
	report := &Report{BuildID: uuid.NewString(), OutputDir: outDir, Start: g.now()}
	log := g.logger.With(logfields.BuildID(report.BuildID))

	selected, err := selectEmitters(formats)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryOutput, "failed to create output directory").
			WithContext("path", outDir).
			Build()
	}

	for _, e := range selected {
		if err := ctx.Err(); err != nil {
			return report, ferrors.WrapError(err, ferrors.CategoryRuntime, "generation canceled").Build()
		}
		res, err := g.emit(e, site, outDir)
		if err != nil {
			g.recorder.IncEmittedFile(string(e.Name()), metrics.ResultFailed)
			return report, err
		}
		g.recorder.IncEmittedFile(string(e.Name()), res.Result)
		report.Files = append(report.Files, res)
		log.Debug("Emitted config", logfields.Format(string(e.Name())), logfields.Path(res.Path), slog.String("result", string(res.Result)))
	}

	if g.clean || site.Tool.Output.Clean {
		removed, err := clean(outDir, selected)
		if err != nil {
			return report, err
		}
		for _, r := range removed {
			g.recorder.IncEmittedFile(string(r.Format), metrics.ResultRemoved)
		}
		report.Files = append(report.Files, removed...)
	}

	report.End = g.now()
	g.recorder.ObserveGenerateDuration(report.Duration())
	g.recorder.SetLastSuccess(report.End)
	log.Info("Generation complete",
		logfields.Path(outDir),
		slog.Int("written", report.Count(metrics.ResultWritten)),
		slog.Int("unchanged", report.Count(metrics.ResultUnchanged)),
		slog.Int("removed", report.Count(metrics.ResultRemoved)),
		logfields.Duration(report.Duration()))
	return report, nil
}

func selectEmitters(formats []string) ([]Emitter, error) {
	seen := map[Format]bool{}
	var out []Emitter
	for _, f := range formats {
		format := Format(f)
		if seen[format] {
			continue
		}
		seen[format] = true
		e, ok := Lookup(format)
		if !ok {
			return nil, ferrors.ValidationError("unknown output format").
				WithContext("field", "sitecfg.output.formats").
				WithContext("value", f).
				WithContext("valid", Formats()).
				Build()
		}
		out = append(out, e)
	}
	return out, nil
}

func (g *Generator) emit(e Emitter, site *config.Site, outDir string) (FileResult, error) {
	var buf bytes.Buffer
	if err := e.Emit(&buf, site); err != nil {
		return FileResult{}, ferrors.WrapError(err, ferrors.CategoryOutput, "failed to render config").
			WithContext("format", string(e.Name())).
			Build()
	}
	target := filepath.Join(outDir, e.Filename())
	res := FileResult{
		Format:      e.Name(),
		Path:        target,
		Fingerprint: fingerprint(buf.Bytes()),
		Bytes:       buf.Len(),
	}

	if existing, err := os.ReadFile(target); err == nil && fingerprint(existing) == res.Fingerprint {
		res.Result = metrics.ResultUnchanged
		return res, nil
	}
	if err := renameio.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return FileResult{}, ferrors.WrapError(err, ferrors.CategoryOutput, "failed to write config").
			WithContext("format", string(e.Name())).
			WithContext("path", target).
			Build()
	}
	res.Result = metrics.ResultWritten
	return res, nil
}

// clean removes files of registered formats that are not selected.
func clean(outDir string, selected []Emitter) ([]FileResult, error) {
	keep := map[Format]bool{}
	for _, e := range selected {
		keep[e.Name()] = true
	}
	var removed []FileResult
	for _, f := range Formats() {
		if keep[f] {
			continue
		}
		e, _ := Lookup(f)
		target := filepath.Join(outDir, e.Filename())
		err := os.Remove(target)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return removed, ferrors.WrapError(err, ferrors.CategoryOutput, "failed to remove stale config").
				WithContext("path", target).
				Build()
		}
		removed = append(removed, FileResult{Format: f, Path: target, Result: metrics.ResultRemoved})
	}
	return removed, nil
}

func fingerprint(data []byte) string {
	return mdfp.CalculateFingerprintFromParts("", string(data))
}
