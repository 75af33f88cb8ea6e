package params

import (
	"encoding/json"
	"fmt"
)

// Set is the ordered collection of bindings owned by one segment.
// Registration order is the order shown by editors and written by Save.
type Set struct {
	items    []*Binding
	children []json.RawMessage
}

// Vec3 registers a drag-vector parameter.
func (s *Set) Vec3(name string, v *Vec3) *Binding {
	return s.push(&Binding{Name: name, Kind: KindVec3, vec: v})
}

// Color3 registers an RGB color parameter.
func (s *Set) Color3(name string, v *Vec3) *Binding {
	return s.push(&Binding{Name: name, Kind: KindColor3, vec: v})
}

// Bool registers a checkbox parameter.
func (s *Set) Bool(name string, v *bool) *Binding {
	return s.push(&Binding{Name: name, Kind: KindBool, flag: v})
}

// Float registers a drag-float parameter with its edit range and display format.
func (s *Set) Float(name string, v *float64, step, min, max float64, format string) *Binding {
	if format == "" {
		format = "%.3f"
	}
	return s.push(&Binding{Name: name, Kind: KindFloat, num: v, Step: step, Min: min, Max: max, Format: format})
}

func (s *Set) push(b *Binding) *Binding {
	s.items = append(s.items, b)
	return b
}

// Len returns the number of registered bindings.
func (s *Set) Len() int { return len(s.items) }

// Bindings returns the bindings in registration order.
func (s *Set) Bindings() []*Binding {
	out := make([]*Binding, len(s.items))
	copy(out, s.items)
	return out
}

// Lookup returns the first binding registered under name, or nil.
func (s *Set) Lookup(name string) *Binding {
	for _, b := range s.items {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Validate reports registration mistakes: empty names, missing targets and
// duplicate names. Lookups still resolve to the first match.
func (s *Set) Validate() error {
	seen := make(map[string]bool, len(s.items))
	for i, b := range s.items {
		if b.Name == "" {
			return fmt.Errorf("%w: binding %d has no name", ErrInvalidBinding, i)
		}
		if (b.Kind == KindBool && b.flag == nil) || (b.Kind == KindFloat && b.num == nil) ||
			((b.Kind == KindVec3 || b.Kind == KindColor3) && b.vec == nil) {
			return fmt.Errorf("%w: %q has no target", ErrInvalidBinding, b.Name)
		}
		if seen[b.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, b.Name)
		}
		seen[b.Name] = true
	}
	return nil
}

// Edit runs every binding through ed in registration order.
func (s *Set) Edit(ed Editor) {
	for _, b := range s.items {
		b.Edit(ed)
	}
}

// Save serializes every binding. An empty set yields an empty, non-nil slice.
func (s *Set) Save() []Record {
	out := make([]Record, 0, len(s.items))
	for _, b := range s.items {
		out = append(out, Record{Name: b.Name, Value: b.Value()})
	}
	return out
}

// Load applies records by name. Unknown names are skipped. Any record that
// fails to decode aborts the call before a single target is written.
func (s *Set) Load(records []Record) error {
	pending := make([]staged, 0, len(records))
	for _, r := range records {
		b := s.Lookup(r.Name)
		if b == nil {
			continue
		}
		v, err := b.decode(r.Value)
		if err != nil {
			return err
		}
		pending = append(pending, v)
	}
	for _, v := range pending {
		v.apply()
	}
	return nil
}

// Document builds the persisted form of the set.
func (s *Set) Document() Document {
	children := s.children
	if children == nil {
		children = []json.RawMessage{}
	}
	return Document{Parameters: s.Save(), Children: children}
}

// LoadDocument applies doc's parameters. Nested child scopes are not merged;
// they are kept verbatim so a later Save writes them back.
func (s *Set) LoadDocument(doc Document) error {
	if err := s.Load(doc.Parameters); err != nil {
		return err
	}
	s.children = doc.Children
	return nil
}
