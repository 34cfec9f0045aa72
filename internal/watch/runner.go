// Package watch keeps emitted configuration in sync with the site config file
// and the calendar year.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/generator"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/metrics"
)

const (
	defaultDebounce = 500 * time.Millisecond
	shutdownTimeout = 5 * time.Second
	yearRefreshJob  = "copyright-year-refresh"
)

// Options configures a Runner.
type Options struct {
	ConfigPath string
	// Formats overrides sitecfg.output.formats when non-empty.
	Formats  []string
	Debounce time.Duration
	Clock    func() time.Time
	Logger   *slog.Logger
	// Registry receives the runner's metrics. A private registry is created
	// when metrics are enabled and Registry is nil.
	Registry *prometheus.Registry
}

// Runner regenerates the emitted configuration when the config file changes
// and once a day so the copyright year rolls over.
type Runner struct {
	path     string
	formats  []string
	debounce time.Duration
	now      func() time.Time
	logger   *slog.Logger
	registry *prometheus.Registry
	recorder metrics.Recorder
	gen      *generator.Generator

	site    atomic.Pointer[config.Site]
	started time.Time

	mu         sync.Mutex
	lastReload time.Time
	lastErr    error
}

// NewRunner loads the config once. An invalid config is an error here; later
// reload failures keep the previous site.
func NewRunner(opts Options) (*Runner, error) {
	path, err := filepath.Abs(opts.ConfigPath)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to resolve config path").
			WithContext("path", opts.ConfigPath).
			Build()
	}
	r := &Runner{
		path:     path,
		formats:  opts.Formats,
		debounce: opts.Debounce,
		now:      opts.Clock,
		logger:   opts.Logger,
		registry: opts.Registry,
	}
	if r.debounce <= 0 {
		r.debounce = defaultDebounce
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	site, err := config.LoadWithClock(path, r.now)
	if err != nil {
		return nil, err
	}
	r.site.Store(site)

	r.recorder = metrics.NoopRecorder{}
	if site.Tool.Monitoring.Metrics.Enabled || r.registry != nil {
		if r.registry == nil {
			r.registry = prometheus.NewRegistry()
		}
		r.recorder = metrics.NewPrometheusRecorder(r.registry)
	}
	r.gen = generator.New(generator.WithRecorder(r.recorder), generator.WithLogger(r.logger))
	return r, nil
}

// Site returns the current configuration. The value must not be modified.
func (r *Runner) Site() *config.Site { return r.site.Load() }

// Run starts watching, generates once, then reloads on change until ctx is
// canceled. All goroutines it
// starts have exited when it returns.
func (r *Runner) Run(ctx context.Context) error {
	r.started = r.now()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create file watcher").Build()
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			r.logger.Warn("Error closing file watcher", logfields.Error(err))
		}
	}()
	// Watching the directory survives editors that replace the file on save.
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to watch config directory").
			WithContext("path", filepath.Dir(r.path)).
			Build()
	}

	if _, err := r.gen.Generate(ctx, r.Site(), r.formats); err != nil {
		return err
	}

	scheduler, err := r.startScheduler(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			r.logger.Warn("Error stopping scheduler", logfields.Error(err))
		}
	}()

	var wg sync.WaitGroup
	if r.Site().Tool.Monitoring.Metrics.Enabled {
		srv, ln, err := r.listen()
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				r.logger.Error("Monitoring server failed", logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
			wg.Wait()
		}()
	}

	r.logger.Info("Watching configuration", logfields.Path(r.path))
	r.watchLoop(ctx, watcher)
	r.logger.Info("Stopped watching configuration", logfields.Path(r.path))
	return nil
}

// watchLoop debounces file events into reloads until ctx is done.
func (r *Runner) watchLoop(ctx context.Context, w *fsnotify.Watcher) {
	name := filepath.Base(r.path)
	timer := time.NewTimer(r.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				if event.Op&fsnotify.Remove != 0 {
					r.logger.Warn("Config file removed", logfields.Path(event.Name))
				}
				continue
			}
			r.logger.Debug("Config change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			timer.Reset(r.debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			r.logger.Error("Config watcher error", logfields.Error(err))
		case <-timer.C:
			_ = r.Reload(ctx)
		}
	}
}

func (r *Runner) startScheduler(ctx context.Context) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create scheduler").Build()
	}
	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 5))),
		gocron.NewTask(func() {
			r.logger.Info("Refreshing configuration for the new day")
			_ = r.Reload(ctx)
		}),
		gocron.WithName(yearRefreshJob),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to schedule year refresh").Build()
	}
	s.Start()
	return s, nil
}

// Reload loads the config file again and regenerates. On failure the previous
// site stays active and the error is returned.
func (r *Runner) Reload(ctx context.Context) error {
	site, err := config.LoadWithClock(r.path, r.now)
	if err != nil {
		r.recorder.IncConfigReload(metrics.ReloadFailed)
		r.setStatus(err)
		r.logger.Error("Config reload failed; keeping previous configuration", logfields.Path(r.path), logfields.Error(err))
		return err
	}
	r.site.Store(site)
	r.recorder.IncConfigReload(metrics.ReloadApplied)

	report, err := r.gen.Generate(ctx, site, r.formats)
	if err != nil {
		r.setStatus(err)
		r.logger.Error("Generation after reload failed", logfields.Error(err))
		return err
	}
	r.setStatus(nil)
	r.logger.Info("Configuration reloaded", logfields.BuildID(report.BuildID), slog.Bool("changed", report.Changed()))
	return nil
}

func (r *Runner) setStatus(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastReload = r.now()
	r.lastErr = err
}

func (r *Runner) listen() (*http.Server, net.Listener, error) {
	addr := r.Site().Tool.Monitoring.Metrics.Address
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to listen for monitoring").
			WithContext("address", addr).
			Build()
	}
	r.logger.Info("Serving monitoring endpoints", slog.String("address", ln.Addr().String()))
	return &http.Server{Handler: r.Handler(), ReadHeaderTimeout: 5 * time.Second}, ln, nil
}

// Handler serves the metrics and health endpoints.
func (r *Runner) Handler() http.Handler {
	mon := r.Site().Tool.Monitoring
	mux := http.NewServeMux()
	if r.registry != nil {
		mux.Handle(mon.Metrics.Path, metrics.HTTPHandler(r.registry))
	}
	mux.Handle(mon.Health.Path, newHealthHandler(r))
	return mux
}
