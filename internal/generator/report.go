package generator

import (
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/metrics"
)

// FileResult records what happened to one emitted file.
type FileResult struct {
	Format      Format
	Path        string
	Result      metrics.ResultLabel
	Fingerprint string
	Bytes       int
}

// Report summarizes one Generate run.
type Report struct {
	BuildID   string
	OutputDir string
	Start     time.Time
	End       time.Time
	Files     []FileResult
}

func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// Count returns the number of files with the given result.
func (r *Report) Count(result metrics.ResultLabel) int {
	n := 0
	for _, f := range r.Files {
		if f.Result == result {
			n++
		}
	}
	return n
}

// Changed reports whether any file was written or removed.
func (r *Report) Changed() bool {
	return r.Count(metrics.ResultWritten)+r.Count(metrics.ResultRemoved) > 0
}
