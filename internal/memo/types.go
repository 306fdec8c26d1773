package memo

import "memokeeper/internal/publisher"

// ProcessOutput reports what happened to one inbound message.
type ProcessOutput struct {
	Published    int    // events actually emitted
	Filtered     bool   // true when the message never reached classification
	FilterReason string // empty | unmonitored | disabled | noise filter reason
}

// Memory is one stored memory returned by RecentMemories.
type Memory = publisher.Memory

// Filter reasons specific to the pipeline (the noise filter has its own).
const (
	ReasonUnmonitored = "unmonitored"
	ReasonDisabled    = "disabled"
	ReasonNoText      = "no_text"
)
