package watch

import (
	"encoding/json"
	"net/http"
	"time"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/version"
)

// HealthResponse is served on the health endpoint.
type HealthResponse struct {
	Status        string     `json:"status"`
	Version       string     `json:"version"`
	Site          string     `json:"site"`
	UptimeSeconds float64    `json:"uptime_seconds"`
	LastReload    *time.Time `json:"last_reload,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
}

type healthHandler struct {
	runner  *Runner
	adapter *ferrors.HTTPErrorAdapter
}

func newHealthHandler(r *Runner) *healthHandler {
	return &healthHandler{runner: r, adapter: ferrors.NewHTTPErrorAdapter(r.logger)}
}

// ServeHTTP reports "degraded" while the last reload failed; the previous
// configuration is still being served in that case.
func (h *healthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		err := ferrors.ValidationError("invalid HTTP method").
			WithContext("method", req.Method).
			WithContext("allowed_method", "GET").
			Build()
		h.adapter.WriteErrorResponse(w, req, err)
		return
	}

	r := h.runner
	resp := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Site:    r.Site().SiteURL(),
	}
	if !r.started.IsZero() {
		resp.UptimeSeconds = r.now().Sub(r.started).Seconds()
	}
	r.mu.Lock()
	if !r.lastReload.IsZero() {
		t := r.lastReload.UTC()
		resp.LastReload = &t
	}
	if r.lastErr != nil {
		resp.Status = "degraded"
		resp.LastError = r.lastErr.Error()
	}
	r.mu.Unlock()

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		h.adapter.WriteErrorResponse(w, req, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode health response").Build())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
