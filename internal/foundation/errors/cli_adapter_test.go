package errors

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: ExitOK},
		{name: "validation", err: ValidationError("bad baseUrl").Build(), expected: ExitValidation},
		{name: "config", err: ConfigError("missing file").Build(), expected: ExitConfig},
		{name: "links", err: LinkError("2 broken links").Build(), expected: ExitLinks},
		{name: "output", err: OutputError("write failed").Build(), expected: ExitOutput},
		{name: "network", err: NetworkError("timeout").Build(), expected: ExitExternal},
		{name: "wrapped validation", err: fmt.Errorf("load: %w", ValidationError("x").Build()), expected: ExitValidation},
		{name: "unclassified", err: errors.New("boom"), expected: ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	err := ValidationError("locales must contain defaultLocale").
		WithContext("field", "i18n.locales").
		WithContext("defaultLocale", "en").
		Build()

	quiet := NewCLIErrorAdapter(false, nil)
	if got, want := quiet.FormatError(err), "Error: locales must contain defaultLocale defaultLocale=en field=i18n.locales"; got != want {
		t.Errorf("FormatError() = %q, want %q", got, want)
	}

	verbose := NewCLIErrorAdapter(true, nil)
	if got := verbose.FormatError(err); !strings.Contains(got, "[validation:fatal]") {
		t.Errorf("verbose FormatError() = %q, expected category prefix", got)
	}

	internal := InternalError("nil site").Build()
	if got := quiet.FormatError(internal); !strings.Contains(got, "use -v") {
		t.Errorf("internal FormatError() = %q, expected hint", got)
	}

	if got := quiet.FormatError(errors.New("plain")); got != "Error: plain" {
		t.Errorf("FormatError(plain) = %q", got)
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out bytes.Buffer
	var code int
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(io.Discard, nil)))
	adapter.out = &out
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(LinkError("1 broken link").Build())

	if code != ExitLinks {
		t.Errorf("exit code = %d, want %d", code, ExitLinks)
	}
	if !strings.Contains(out.String(), "1 broken link") {
		t.Errorf("output = %q, expected message", out.String())
	}

	code = -1
	adapter.HandleError(nil)
	if code != -1 {
		t.Error("HandleError(nil) should not exit")
	}
}
