package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeyFormat     = "format"
	KeyField      = "field"
	KeyPolicy     = "policy"
	KeyLink       = "link"
	KeySource     = "source"
	KeyKind       = "kind"
	KeyBuildID    = "build_id"
	KeyLocale     = "locale"
	KeyPreset     = "preset"
	KeyStatus     = "status"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr     { return slog.String(KeyPath, p) }
func File(f string) slog.Attr     { return slog.String(KeyFile, f) }
func Format(f string) slog.Attr   { return slog.String(KeyFormat, f) }
func Field(f string) slog.Attr    { return slog.String(KeyField, f) }
func Policy(p string) slog.Attr   { return slog.String(KeyPolicy, p) }
func Link(l string) slog.Attr     { return slog.String(KeyLink, l) }
func Source(s string) slog.Attr   { return slog.String(KeySource, s) }
func Kind(k string) slog.Attr     { return slog.String(KeyKind, k) }
func BuildID(id string) slog.Attr { return slog.String(KeyBuildID, id) }
func Locale(l string) slog.Attr   { return slog.String(KeyLocale, l) }
func Preset(p string) slog.Attr   { return slog.String(KeyPreset, p) }
func Status(code int) slog.Attr   { return slog.Int(KeyStatus, code) }
func Count(n int) slog.Attr       { return slog.Int(KeyCount, n) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
