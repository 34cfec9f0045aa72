package metrics

import "time"

// ResultLabel enumerates per-file emission results.
type ResultLabel string

const (
	ResultWritten   ResultLabel = "written"
	ResultUnchanged ResultLabel = "unchanged"
	ResultRemoved   ResultLabel = "removed"
	ResultFailed    ResultLabel = "failed"
)

// ReloadOutcome enumerates config reload outcomes in watch mode.
type ReloadOutcome string

const (
	ReloadApplied ReloadOutcome = "applied"
	ReloadFailed  ReloadOutcome = "failed"
)

// Recorder defines observability hooks for generation, link checks and reloads.
type Recorder interface {
	ObserveGenerateDuration(d time.Duration)
	IncEmittedFile(format string, result ResultLabel)
	IncLinkFinding(kind, policy string)
	ObserveExternalCheck(d time.Duration, cached bool)
	IncConfigReload(outcome ReloadOutcome)
	SetLastSuccess(t time.Time)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveGenerateDuration(time.Duration)    {}
func (NoopRecorder) IncEmittedFile(string, ResultLabel)       {}
func (NoopRecorder) IncLinkFinding(string, string)            {}
func (NoopRecorder) ObserveExternalCheck(time.Duration, bool) {}
func (NoopRecorder) IncConfigReload(ReloadOutcome)            {}
func (NoopRecorder) SetLastSuccess(time.Time)                 {}
