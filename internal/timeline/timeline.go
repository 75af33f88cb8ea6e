// Package timeline maps the global show clock to the segment that is active
// and its local time.
//
// Entries are kept in ascending start order; entries with the same start keep
// their declaration order. When windows overlap, the last entry in that order
// whose window contains the time wins, so a later part takes precedence
// during an authored handoff. A time outside every window resolves to no
// segment at all.
package timeline

import (
	"fmt"
	"sort"

	"github.com/ivlev/showreel/internal/segment"
)

// Entry is one scheduled segment. Start == End == -1 marks a segment that is
// registered but never active.
type Entry struct {
	Start   float64
	End     float64
	Segment segment.Segment
	State   State
}

// Contains reports whether t falls in the half-open window [Start, End).
func (e *Entry) Contains(t float64) bool {
	return e.Start <= t && t < e.End
}

// Scheduled reports whether the entry has a real window.
func (e *Entry) Scheduled() bool {
	return !(e.Start == -1 && e.End == -1)
}

// Timeline is the ordered window to segment mapping.
type Timeline struct {
	entries []*Entry
	active  *Entry
}

// New returns an empty timeline.
func New() *Timeline {
	return &Timeline{}
}

// Add schedules seg over [start, end).
func (tl *Timeline) Add(start, end float64, seg segment.Segment) (*Entry, error) {
	if seg == nil {
		return nil, fmt.Errorf("%w: nil segment", ErrInvalidWindow)
	}
	unscheduled := start == -1 && end == -1
	if !unscheduled && start >= end {
		return nil, fmt.Errorf("%w: %s [%g, %g)", ErrInvalidWindow, seg.Name(), start, end)
	}

	e := &Entry{Start: start, End: end, Segment: seg, State: Unloaded}
	i := sort.Search(len(tl.entries), func(i int) bool {
		return tl.entries[i].Start > start
	})
	tl.entries = append(tl.entries, nil)
	copy(tl.entries[i+1:], tl.entries[i:])
	tl.entries[i] = e
	return e, nil
}

// Entries returns the entries in resolution order.
func (tl *Timeline) Entries() []*Entry {
	out := make([]*Entry, len(tl.entries))
	copy(out, tl.entries)
	return out
}

// Len returns the number of entries.
func (tl *Timeline) Len() int { return len(tl.entries) }

// Resolve returns the active entry at t and the local time inside it.
func (tl *Timeline) Resolve(t float64) (*Entry, float64, bool) {
	var found *Entry
	for _, e := range tl.entries {
		if e.Scheduled() && e.Contains(t) {
			found = e
		}
	}
	if found == nil {
		return nil, 0, false
	}
	return found, t - found.Start, true
}

// Span returns the earliest start and latest end over scheduled entries.
func (tl *Timeline) Span() (start, end float64, ok bool) {
	for _, e := range tl.entries {
		if !e.Scheduled() {
			continue
		}
		if !ok || e.Start < start {
			start = e.Start
		}
		if !ok || e.End > end {
			end = e.End
		}
		ok = true
	}
	return start, end, ok
}
