package linkcheck

import "time"

// BrokenLinkEvent is published for every reported finding.
type BrokenLinkEvent struct {
	BuildID   string    `json:"build_id"`
	Site      string    `json:"site"`
	Kind      Kind      `json:"kind"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Reason    string    `json:"reason"`
	Status    int       `json:"status,omitempty"`
	Policy    string    `json:"policy"`
	Timestamp time.Time `json:"timestamp"`
}
