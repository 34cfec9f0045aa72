package errors

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPErrorAdapter_StatusCodeFor(t *testing.T) {
	a := NewHTTPErrorAdapter(nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", ValidationError("bad").Build(), http.StatusUnprocessableEntity},
		{"not found", NotFoundError("missing").Build(), http.StatusNotFound},
		{"network", NetworkError("down").Build(), http.StatusBadGateway},
		{"links", LinkError("broken").Build(), http.StatusConflict},
		{"runtime", RuntimeError("stopped").Build(), http.StatusServiceUnavailable},
		{"plain", errors.New("x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.StatusCodeFor(tt.err); got != tt.want {
				t.Errorf("StatusCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHTTPErrorAdapter_WriteErrorResponse(t *testing.T) {
	a := NewHTTPErrorAdapter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	err := ValidationError("baseUrl must end with /").WithContext("field", "baseUrl").Build()
	a.WriteErrorResponse(rec, req, err)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var payload HTTPErrorResponse
	if jerr := json.Unmarshal(rec.Body.Bytes(), &payload); jerr != nil {
		t.Fatalf("decode: %v", jerr)
	}
	if payload.Error != "baseUrl must end with /" || payload.Code != "validation" {
		t.Errorf("unexpected payload %+v", payload)
	}
	if payload.Details["field"] != "baseUrl" {
		t.Errorf("expected field detail, got %v", payload.Details)
	}
}

func TestHTTPErrorAdapter_Retryable(t *testing.T) {
	a := NewHTTPErrorAdapter(nil)
	resp := a.FormatErrorResponse(NetworkError("timeout").Build())
	if !resp.Retryable {
		t.Error("expected network error to be retryable")
	}
	resp = a.FormatErrorResponse(errors.New("plain"))
	if resp.Error != "plain" || resp.Code != "" {
		t.Errorf("unexpected payload %+v", resp)
	}
}
