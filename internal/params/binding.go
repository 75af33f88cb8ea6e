package params

import (
	"fmt"
	"math"
)

// Vec3 is a three component vector. Color3 bindings store RGB in [0,1].
type Vec3 [3]float64

// Kind enumerates the supported parameter value kinds. The set is closed.
type Kind int

const (
	KindVec3 Kind = iota
	KindColor3
	KindBool
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindVec3:
		return "vec3"
	case KindColor3:
		return "color3"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Arity is the number of array entries a value of this kind occupies on disk.
func (k Kind) Arity() int {
	switch k {
	case KindVec3, KindColor3:
		return 3
	default:
		return 1
	}
}

// Binding is a typed, non-owning handle over a value owned by a segment.
//
// The target pointer must stay valid for as long as the binding is used;
// bindings belong to the segment that registered them and must not escape
// it once the segment is gone.
type Binding struct {
	Name string
	Kind Kind

	vec  *Vec3
	flag *bool
	num  *float64

	// Float only. Edit-time affordances, not enforced on load.
	Step   float64
	Min    float64
	Max    float64
	Format string
}

// Edit hands the bound value to the matching editor widget.
func (b *Binding) Edit(ed Editor) {
	switch b.Kind {
	case KindVec3:
		ed.DragVec3(b.Name, b.vec)
	case KindColor3:
		ed.ColorEdit3(b.Name, b.vec)
	case KindBool:
		ed.Checkbox(b.Name, b.flag)
	case KindFloat:
		ed.DragFloat(b.Name, b.num, b.Step, b.Min, b.Max, b.Format)
	}
}

// Value returns the current value in its on-disk array shape.
func (b *Binding) Value() []any {
	switch b.Kind {
	case KindVec3, KindColor3:
		return []any{b.vec[0], b.vec[1], b.vec[2]}
	case KindBool:
		return []any{*b.flag}
	case KindFloat:
		return []any{*b.num}
	}
	return []any{}
}

// Clamp limits v to [min, max] when a range is configured (max > min). It is
// what float edit widgets apply; loading does not clamp.
func Clamp(v, min, max float64) float64 {
	if max <= min {
		return v
	}
	return math.Max(min, math.Min(max, v))
}

// staged holds a decoded value that has not been written to the target yet.
type staged struct {
	b    *Binding
	vec  Vec3
	flag bool
	num  float64
}

func (s staged) apply() {
	switch s.b.Kind {
	case KindVec3, KindColor3:
		*s.b.vec = s.vec
	case KindBool:
		*s.b.flag = s.flag
	case KindFloat:
		*s.b.num = s.num
	}
}

// decode checks value against the binding's arity and element type.
func (b *Binding) decode(value []any) (staged, error) {
	out := staged{b: b}
	if len(value) != b.Kind.Arity() {
		return out, fmt.Errorf("%w: %q wants %d entries, got %d", ErrArity, b.Name, b.Kind.Arity(), len(value))
	}

	switch b.Kind {
	case KindVec3, KindColor3:
		for i := range out.vec {
			n, ok := number(value[i])
			if !ok {
				return out, fmt.Errorf("%w: %q entry %d is %T", ErrValueType, b.Name, i, value[i])
			}
			out.vec[i] = n
		}
	case KindBool:
		v, ok := value[0].(bool)
		if !ok {
			return out, fmt.Errorf("%w: %q entry 0 is %T", ErrValueType, b.Name, value[0])
		}
		out.flag = v
	case KindFloat:
		n, ok := number(value[0])
		if !ok {
			return out, fmt.Errorf("%w: %q entry 0 is %T", ErrValueType, b.Name, value[0])
		}
		out.num = n
	}
	return out, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
