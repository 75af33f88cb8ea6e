package timeline

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/ivlev/showreel/internal/segment"
)

type part struct {
	segment.Base
}

func newPart(name string) *part {
	return &part{Base: segment.NewBase(name)}
}

func (p *part) Init(ctx context.Context, env segment.Env) error { return nil }
func (p *part) Render(frame *image.RGBA, t segment.Time)        {}

func mustAdd(t *testing.T, tl *Timeline, start, end float64, name string) *Entry {
	t.Helper()
	e, err := tl.Add(start, end, newPart(name))
	if err != nil {
		t.Fatalf("Add(%s) failed: %v", name, err)
	}
	return e
}

func TestResolveWithinWindows(t *testing.T) {
	tl := New()
	mustAdd(t, tl, 0, 9, "Part01")
	mustAdd(t, tl, 9, 20, "Part02")

	tests := []struct {
		time      float64
		wantName  string
		wantLocal float64
		wantOK    bool
	}{
		{0, "Part01", 0, true},
		{4.5, "Part01", 4.5, true},
		{8.999, "Part01", 8.999, true},
		{9, "Part02", 0, true},
		{19.5, "Part02", 10.5, true},
		{20, "", 0, false},
		{-0.1, "", 0, false},
		{100, "", 0, false},
	}

	for _, tt := range tests {
		e, local, ok := tl.Resolve(tt.time)
		if ok != tt.wantOK {
			t.Errorf("Resolve(%v): expected ok=%v, got %v", tt.time, tt.wantOK, ok)
			continue
		}
		if !ok {
			continue
		}
		if e.Segment.Name() != tt.wantName {
			t.Errorf("Resolve(%v): expected %s, got %s", tt.time, tt.wantName, e.Segment.Name())
		}
		if math.Abs(local-tt.wantLocal) > 1e-9 {
			t.Errorf("Resolve(%v): expected local %f, got %f", tt.time, tt.wantLocal, local)
		}
		if local < 0 {
			t.Errorf("Resolve(%v): negative local time %f", tt.time, local)
		}
	}
}

func TestOverlapLastWins(t *testing.T) {
	tl := New()
	mustAdd(t, tl, 0, 10, "A")
	mustAdd(t, tl, 5, 15, "B")

	e, local, ok := tl.Resolve(7)
	if !ok || e.Segment.Name() != "B" {
		t.Fatalf("Expected B during overlap, got %v", e)
	}
	if local != 2 {
		t.Errorf("Expected local 2, got %f", local)
	}

	e, _, _ = tl.Resolve(3)
	if e.Segment.Name() != "A" {
		t.Errorf("Expected A before overlap, got %s", e.Segment.Name())
	}
}

func TestSameStartKeepsDeclarationOrder(t *testing.T) {
	tl := New()
	mustAdd(t, tl, 2, 6, "first")
	mustAdd(t, tl, 0, 1, "early")
	mustAdd(t, tl, 2, 4, "second")

	names := []string{}
	for _, e := range tl.Entries() {
		names = append(names, e.Segment.Name())
	}
	if names[0] != "early" || names[1] != "first" || names[2] != "second" {
		t.Errorf("Unexpected order %v", names)
	}

	e, _, _ := tl.Resolve(3)
	if e.Segment.Name() != "second" {
		t.Errorf("Expected later declaration to win, got %s", e.Segment.Name())
	}
	e, _, _ = tl.Resolve(5)
	if e.Segment.Name() != "first" {
		t.Errorf("Expected first once second ended, got %s", e.Segment.Name())
	}
}

func TestAddRejectsEmptyWindow(t *testing.T) {
	tl := New()
	if _, err := tl.Add(5, 5, newPart("x")); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("Expected ErrInvalidWindow, got %v", err)
	}
	if _, err := tl.Add(6, 5, newPart("x")); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("Expected ErrInvalidWindow, got %v", err)
	}
}

func TestUnscheduledNeverActive(t *testing.T) {
	tl := New()
	mustAdd(t, tl, -1, -1, "spare")
	if _, _, ok := tl.Resolve(-1); ok {
		t.Error("Unscheduled entry must never resolve")
	}
	if _, _, ok := tl.Span(); ok {
		t.Error("Span should ignore unscheduled entries")
	}
}

func TestSpan(t *testing.T) {
	tl := New()
	mustAdd(t, tl, 9, 20, "b")
	mustAdd(t, tl, 0, 9, "a")
	start, end, ok := tl.Span()
	if !ok || start != 0 || end != 20 {
		t.Errorf("Expected [0, 20), got [%v, %v) ok=%v", start, end, ok)
	}
}

func TestAdvanceLifecycle(t *testing.T) {
	tl := New()
	a := mustAdd(t, tl, 0, 9, "Part01")
	b := mustAdd(t, tl, 9, 20, "Part02")

	if _, _, _, err := tl.Advance(1); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Expected ErrNotInitialized, got %v", err)
	}

	for _, e := range []*Entry{a, b} {
		if err := tl.MarkInitialized(e); err != nil {
			t.Fatalf("MarkInitialized failed: %v", err)
		}
	}
	if err := tl.MarkInitialized(a); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("Expected ErrAlreadyInitialized, got %v", err)
	}

	_, _, changes, err := tl.Advance(1)
	if err != nil || len(changes) != 1 || changes[0].To != Active || a.State != Active {
		t.Fatalf("Expected Part01 to activate, got %+v (%v)", changes, err)
	}

	_, _, changes, _ = tl.Advance(2)
	if len(changes) != 0 {
		t.Errorf("Expected no changes while staying in Part01, got %+v", changes)
	}

	_, local, changes, _ := tl.Advance(9)
	if len(changes) != 2 || a.State != Dormant || b.State != Active || local != 0 {
		t.Errorf("Expected handoff to Part02, got %+v local=%f", changes, local)
	}

	e, _, changes, _ := tl.Advance(25)
	if e != nil || len(changes) != 1 || b.State != Dormant {
		t.Errorf("Expected nothing active after the show, got %v %+v", e, changes)
	}
}
