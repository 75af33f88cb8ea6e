package inspect

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ivlev/showreel/internal/params"
)

// ErrAssignment is returned for a malformed name=value argument.
var ErrAssignment = errors.New("malformed assignment")

// Script is an Editor that applies "name=v1,v2,v3" assignments. Widgets whose
// name has no assignment are left alone. Float values are clamped the way the
// interactive drag widget clamps them.
type Script struct {
	assign  map[string][]string
	order   []string
	applied map[string]bool
	failed  map[string]bool
	errs    []error
}

// ParseScript parses assignments such as "eye=1,2,3", "enableGrid=false" or
// "scaleModel=0.25". A later assignment to the same name replaces an earlier one.
func ParseScript(args []string) (*Script, error) {
	s := &Script{
		assign:  make(map[string][]string),
		applied: make(map[string]bool),
		failed:  make(map[string]bool),
	}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" || strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: %q", ErrAssignment, arg)
		}
		fields := strings.Split(value, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if _, seen := s.assign[name]; !seen {
			s.order = append(s.order, name)
		}
		s.assign[name] = fields
	}
	return s, nil
}

func (s *Script) DragVec3(name string, v *params.Vec3) {
	s.vec(name, v)
}

func (s *Script) ColorEdit3(name string, v *params.Vec3) {
	s.vec(name, v)
}

func (s *Script) vec(name string, v *params.Vec3) {
	fields, ok := s.take(name, 3)
	if !ok {
		return
	}
	var out params.Vec3
	for i, f := range fields {
		n, err := parseFinite(f)
		if err != nil {
			s.fail(name, err)
			return
		}
		out[i] = n
	}
	*v = out
	s.applied[name] = true
}

func (s *Script) Checkbox(name string, v *bool) {
	fields, ok := s.take(name, 1)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(fields[0])
	if err != nil {
		s.fail(name, err)
		return
	}
	*v = b
	s.applied[name] = true
}

func (s *Script) DragFloat(name string, v *float64, step, min, max float64, format string) {
	fields, ok := s.take(name, 1)
	if !ok {
		return
	}
	n, err := parseFinite(fields[0])
	if err != nil {
		s.fail(name, err)
		return
	}
	*v = params.Clamp(n, min, max)
	s.applied[name] = true
}

func (s *Script) take(name string, arity int) ([]string, bool) {
	fields, ok := s.assign[name]
	if !ok || s.applied[name] || s.failed[name] {
		return nil, false
	}
	if len(fields) != arity {
		s.fail(name, fmt.Errorf("%w: want %d values, got %d", params.ErrArity, arity, len(fields)))
		return nil, false
	}
	return fields, true
}

func (s *Script) fail(name string, err error) {
	s.failed[name] = true
	s.errs = append(s.errs, fmt.Errorf("%s: %w", name, err))
}

// Applied lists the names that were assigned, in argument order.
func (s *Script) Applied() []string {
	var out []string
	for _, name := range s.order {
		if s.applied[name] {
			out = append(out, name)
		}
	}
	return out
}

// Err reports assignments that failed to parse and names no widget offered.
// Call it after the set's Edit pass.
func (s *Script) Err() error {
	errs := append([]error(nil), s.errs...)
	for _, name := range s.order {
		if s.applied[name] || s.failed[name] {
			continue
		}
		errs = append(errs, fmt.Errorf("%s: no such parameter", name))
	}
	return errors.Join(errs...)
}

// parseFinite parses a number, rejecting NaN and infinities: they cannot be
// clamped and the parameter file cannot store them.
func parseFinite(s string) (float64, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", params.ErrValueType, s)
	}
	return n, nil
}
