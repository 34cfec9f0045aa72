package linkcheck

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/metrics"
	"git.home.luguber.info/inful/sitecfg/internal/retry"
)

const maxRedirects = 10

// Outcome is the verification result of one external URL.
type Outcome struct {
	URL    string
	OK     bool
	Status int
	Err    string
	Cached bool
}

// ExternalChecker verifies absolute URLs with bounded concurrency and a
// global request rate.
type ExternalChecker struct {
	client      *http.Client
	limiter     *rate.Limiter
	concurrency int
	userAgent   string
	cache       Cache
	ttl         time.Duration
	ttlFailures time.Duration
	retry       retry.Policy
	recorder    metrics.Recorder
	now         func() time.Time
}

// NewExternalChecker builds a checker from the external link settings.
// cache may be nil.
func NewExternalChecker(cfg config.ExternalLinkConfig, cache Cache) *ExternalChecker {
	burst := int(cfg.RateLimit)
	if burst < 1 {
		burst = 1
	}
	return &ExternalChecker{
		client: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
		concurrency: max(cfg.MaxConcurrent, 1),
		userAgent:   cfg.UserAgent,
		cache:       cache,
		ttl:         cfg.CacheTTL,
		ttlFailures: cfg.CacheTTLFailures,
		retry:       retry.FromConfig(cfg.Retry),
		recorder:    metrics.NoopRecorder{},
		now:         time.Now,
	}
}

// CheckAll verifies urls and returns one outcome per distinct URL. It returns
// ctx.Err() when the run was canceled.
func (c *ExternalChecker) CheckAll(ctx context.Context, urls []string) (map[string]Outcome, error) {
	results := make(map[string]Outcome, len(urls))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		g.Go(func() error {
			out := c.Check(gctx, u)
			mu.Lock()
			results[u] = out
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Check verifies one URL, consulting the cache first.
func (c *ExternalChecker) Check(ctx context.Context, u string) Outcome {
	start := time.Now()
	var previous *CacheEntry
	if c.cache != nil {
		entry, err := c.cache.Get(ctx, u)
		if err != nil {
			slog.Debug("Link cache lookup failed", logfields.Link(u), logfields.Error(err))
		} else if entry != nil {
			if c.fresh(entry) {
				c.recorder.ObserveExternalCheck(time.Since(start), true)
				return Outcome{URL: u, OK: entry.OK, Status: entry.Status, Err: entry.Error, Cached: true}
			}
			previous = entry
		}
	}

	var status int
	err := c.retry.Do(ctx, func(attempt int) (bool, error) {
		if werr := c.limiter.Wait(ctx); werr != nil {
			status = 0
			return false, werr
		}
		var perr error
		status, perr = c.probe(ctx, u)
		if perr != nil && attempt < c.retry.MaxRetries && transient(status) {
			slog.Debug("Retrying external link", logfields.Link(u), logfields.Status(status), logfields.Error(perr))
		}
		return transient(status), perr
	})
	c.recorder.ObserveExternalCheck(time.Since(start), false)
	out := Outcome{URL: u, OK: err == nil, Status: status}
	if err != nil {
		out.Err = err.Error()
	}
	if ctx.Err() != nil || status == http.StatusTooManyRequests {
		return out
	}
	if c.cache != nil {
		if perr := c.cache.Put(ctx, c.entryFor(out, previous)); perr != nil {
			slog.Warn("Failed to update link cache", logfields.Link(u), logfields.Error(perr))
		}
	}
	return out
}

func (c *ExternalChecker) fresh(e *CacheEntry) bool {
	ttl := c.ttl
	if !e.OK {
		ttl = c.ttlFailures
	}
	return c.now().Sub(e.CheckedAt) < ttl
}

func (c *ExternalChecker) entryFor(out Outcome, previous *CacheEntry) *CacheEntry {
	now := c.now()
	e := &CacheEntry{URL: out.URL, Status: out.Status, OK: out.OK, Error: out.Err, CheckedAt: now}
	if out.OK {
		return e
	}
	e.FailureCount = 1
	e.FirstFailedAt = now
	if previous != nil && !previous.OK {
		e.FailureCount = previous.FailureCount + 1
		if !previous.FirstFailedAt.IsZero() {
			e.FirstFailedAt = previous.FirstFailedAt
		}
	}
	return e
}

// transient reports whether a failed probe may succeed on retry: network
// errors and server errors.
func transient(status int) bool {
	return status == 0 || status >= http.StatusInternalServerError
}

// probe sends HEAD and falls back to GET for servers that reject HEAD.
func (c *ExternalChecker) probe(ctx context.Context, u string) (int, error) {
	status, err := c.do(ctx, http.MethodHead, u)
	if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
		status, err = c.do(ctx, http.MethodGet, u)
	}
	if err != nil {
		return status, err
	}
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		// The resource exists but needs credentials.
		return status, nil
	case status == http.StatusTooManyRequests:
		return status, nil
	case status >= 400:
		return status, fmt.Errorf("HTTP %d: %s", status, http.StatusText(status))
	}
	return status, nil
}

func (c *ExternalChecker) do(ctx context.Context, method, u string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	return resp.StatusCode, nil
}
