package inspect

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ivlev/showreel/internal/params"
)

type values struct {
	color params.Vec3
	eye   params.Vec3
	grid  bool
	scale float64
}

func newSet() (*values, *params.Set) {
	v := &values{color: params.Vec3{0.5, 0.5, 0.5}, eye: params.Vec3{50, -100, 50}, grid: true, scale: 0.1}
	s := &params.Set{}
	s.Color3("clearColor", &v.color)
	s.Vec3("eye", &v.eye)
	s.Bool("enableGrid", &v.grid)
	s.Float("scaleModel", &v.scale, 0.001, 0.001, 1.0, "%.3f")
	return v, s
}

func TestPanelRows(t *testing.T) {
	_, s := newSet()
	p := NewPanel()
	s.Edit(p)

	rows := p.Rows()
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}
	if rows[1].Value != "(50, -100, 50)" {
		t.Errorf("Unexpected vec3 value %q", rows[1].Value)
	}
	if rows[2].Value != "[x]" {
		t.Errorf("Unexpected bool value %q", rows[2].Value)
	}
	if rows[3].Value != "0.100" || rows[3].Range != "0.001..1 step 0.001" {
		t.Errorf("Unexpected float row %+v", rows[3])
	}
}

func TestDescribe(t *testing.T) {
	_, s := newSet()
	out := Describe("Part02", s)
	for _, want := range []string{"Part02", "4 parameters", "clearColor", "scaleModel", "0.100"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in panel:\n%s", want, out)
		}
	}
	if !strings.Contains(Describe("Empty", &params.Set{}), "no parameters") {
		t.Error("Expected a placeholder for an empty set")
	}
}

func TestScriptApplies(t *testing.T) {
	v, s := newSet()
	sc, err := ParseScript([]string{"eye=1, 2, 3", "enableGrid=false", "scaleModel=5", "clearColor=0,0.25,1"})
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}
	s.Edit(sc)

	if err := sc.Err(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if v.eye != (params.Vec3{1, 2, 3}) || v.grid || v.color != (params.Vec3{0, 0.25, 1}) {
		t.Errorf("Unexpected values %+v", v)
	}
	if v.scale != 1.0 {
		t.Errorf("Expected scale clamped to 1, got %f", v.scale)
	}
	expected := []string{"eye", "enableGrid", "scaleModel", "clearColor"}
	if !reflect.DeepEqual(sc.Applied(), expected) {
		t.Errorf("Expected applied %v, got %v", expected, sc.Applied())
	}
}

func TestScriptErrors(t *testing.T) {
	v, s := newSet()
	before := *v
	sc, err := ParseScript([]string{"eye=1,2", "enableGrid=maybe", "fog=1"})
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}
	s.Edit(sc)

	err = sc.Err()
	if err == nil {
		t.Fatal("Expected errors")
	}
	if !errors.Is(err, params.ErrArity) {
		t.Errorf("Expected ErrArity in %v", err)
	}
	for _, want := range []string{"enableGrid", "fog: no such parameter"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %v", want, err)
		}
	}
	if *v != before {
		t.Errorf("Expected nothing applied, got %+v", *v)
	}
}

func TestScriptRejectsNonFinite(t *testing.T) {
	for _, arg := range []string{"scaleModel=NaN", "scaleModel=+Inf", "eye=1,-Inf,3", "clearColor=nan,0,0"} {
		t.Run(arg, func(t *testing.T) {
			v, s := newSet()
			before := *v
			sc, err := ParseScript([]string{arg})
			if err != nil {
				t.Fatalf("ParseScript failed: %v", err)
			}
			s.Edit(sc)

			if err := sc.Err(); !errors.Is(err, params.ErrValueType) {
				t.Errorf("Expected ErrValueType, got %v", err)
			}
			if *v != before {
				t.Errorf("Expected nothing applied, got %+v", *v)
			}
			if len(sc.Applied()) != 0 {
				t.Errorf("Expected no applied names, got %v", sc.Applied())
			}
		})
	}
}

func TestParseScriptMalformed(t *testing.T) {
	for _, arg := range []string{"eye", "=1", "eye="} {
		if _, err := ParseScript([]string{arg}); !errors.Is(err, ErrAssignment) {
			t.Errorf("%q: expected ErrAssignment, got %v", arg, err)
		}
	}
}
