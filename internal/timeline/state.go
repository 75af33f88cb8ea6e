package timeline

import "fmt"

// State is the lifecycle of a scheduled segment:
// Unloaded -> Initialized -> Active <-> Dormant.
type State int

const (
	Unloaded State = iota
	Initialized
	Active
	Dormant
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Initialized:
		return "initialized"
	case Active:
		return "active"
	case Dormant:
		return "dormant"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Change records one state transition made by Advance.
type Change struct {
	Entry *Entry
	From  State
	To    State
}

// MarkInitialized records that the entry's segment finished Init. It may be
// called once per entry.
func (tl *Timeline) MarkInitialized(e *Entry) error {
	if e.State != Unloaded {
		return fmt.Errorf("%w: %s is %s", ErrAlreadyInitialized, e.Segment.Name(), e.State)
	}
	e.State = Initialized
	return nil
}

// Advance resolves t and moves the previously active entry to Dormant and
// the newly resolved one to Active. It fails if the resolved segment never
// finished Init.
func (tl *Timeline) Advance(t float64) (*Entry, float64, []Change, error) {
	e, local, ok := tl.Resolve(t)
	if ok && e.State == Unloaded {
		return nil, 0, nil, fmt.Errorf("%w: %s", ErrNotInitialized, e.Segment.Name())
	}

	var changes []Change
	if tl.active != nil && tl.active != e {
		changes = append(changes, Change{Entry: tl.active, From: Active, To: Dormant})
		tl.active.State = Dormant
		tl.active = nil
	}
	if ok && tl.active != e {
		changes = append(changes, Change{Entry: e, From: e.State, To: Active})
		e.State = Active
		tl.active = e
	}
	return e, local, changes, nil
}
