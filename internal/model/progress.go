package model

import "fmt"

// InitializingProgress is the sentinel shown before the build tool emits any
// progress marker. It is a value, not an error: a missing or still-empty log
// is expected at the first polls.
const InitializingProgress = "Initializing..."

// ProgressSnapshot is the most recent progress marker scraped from the build
// log. Immutable once produced; only the previous snapshot is kept around for
// diffing, no history is retained.
type ProgressSnapshot struct {
	Percent int
	Done    int
	Total   int
	// Raw is the display form, either "N% (done/total)" or the
	// InitializingProgress sentinel.
	Raw string
}

// InitializingSnapshot returns the sentinel snapshot.
func InitializingSnapshot() ProgressSnapshot {
	return ProgressSnapshot{Raw: InitializingProgress}
}

// Initializing reports whether the snapshot is the sentinel.
func (p ProgressSnapshot) Initializing() bool {
	return p.Raw == InitializingProgress
}

// String returns the display form of the snapshot.
func (p ProgressSnapshot) String() string {
	return p.Raw
}

// NewProgressSnapshot builds a snapshot from a parsed progress marker.
func NewProgressSnapshot(percent, done, total int) ProgressSnapshot {
	return ProgressSnapshot{
		Percent: percent,
		Done:    done,
		Total:   total,
		Raw:     fmt.Sprintf("%d%% (%d/%d)", percent, done, total),
	}
}
