// Package linkcheck verifies the links a site configuration and its docs
// reference, applying the site's broken-link policies.
package linkcheck

import (
	"fmt"
	"sort"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

// Kind classifies what a broken link pointed at.
type Kind string

const (
	KindDoc      Kind = "doc"
	KindRoute    Kind = "route"
	KindMarkdown Kind = "markdown"
	KindExternal Kind = "external"
)

// Finding is one unresolved link.
type Finding struct {
	Kind   Kind
	Source string
	Target string
	Reason string
	Status int
	Policy config.BrokenLinkPolicy
}

func (f Finding) String() string {
	return fmt.Sprintf("%s -> %s (%s)", f.Source, f.Target, f.Reason)
}

// Result is the outcome of one check run.
type Result struct {
	BuildID  string
	Checked  int
	Findings []Finding
}

// Failing returns the findings whose policy fails the run.
func (r *Result) Failing() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Policy.Fails() {
			out = append(out, f)
		}
	}
	return out
}

// CountByKind tallies findings per kind.
func (r *Result) CountByKind() map[Kind]int {
	out := make(map[Kind]int)
	for _, f := range r.Findings {
		out[f.Kind]++
	}
	return out
}

// Err returns a links error when any finding fails the run, nil otherwise.
func (r *Result) Err() error {
	failing := r.Failing()
	if len(failing) == 0 {
		return nil
	}
	targets := make([]string, 0, len(failing))
	for _, f := range failing {
		targets = append(targets, f.Target)
	}
	sort.Strings(targets)
	return ferrors.LinkError(fmt.Sprintf("%d broken link(s) under the throw policy", len(failing))).
		WithContext("count", len(failing)).
		WithContext("first", failing[0].String()).
		WithContext("targets", targets).
		Build()
}
