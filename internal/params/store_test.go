package params

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func quietStore(dir string) *Store {
	return NewStore(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStoreSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "parameters")
	store := quietStore(dir)

	_, s := newFixture()
	if err := store.Save("Part02", s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Part02.json"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Saved file is not JSON: %v", err)
	}
	if _, ok := raw["parameters"]; !ok {
		t.Error("Expected a parameters section")
	}
	if string(raw["children"]) != "[]" {
		t.Errorf("Expected empty children section, got %s", raw["children"])
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := quietStore(t.TempDir())

	src, s := newFixture()
	src.eye = Vec3{7, 8, 9}
	src.scale = 0.5
	if err := store.Save("Part02", s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	dst, s2 := newFixture()
	if err := store.Load("Part02", s2); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if dst.eye != src.eye || dst.scale != src.scale {
		t.Errorf("Expected eye=%v scale=%f, got eye=%v scale=%f", src.eye, src.scale, dst.eye, dst.scale)
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := quietStore(t.TempDir())
	_, s := newFixture()

	err := store.Load("nothing", s)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestStoreLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	store := quietStore(dir)
	os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{parameters:"), 0644)

	f, s := newFixture()
	before := *f
	if err := store.Load("bad", s); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed, got %v", err)
	}
	if *f != before {
		t.Errorf("Expected defaults kept, got %+v", *f)
	}
}

func TestStoreKeepsChildren(t *testing.T) {
	dir := t.TempDir()
	store := quietStore(dir)
	doc := `{"parameters":[{"name":"scaleModel","value":[0.25]}],"children":[{"name":"fog","parameters":[]}]}`
	os.WriteFile(filepath.Join(dir, "Part02.json"), []byte(doc), 0644)

	f, s := newFixture()
	if err := store.Load("Part02", s); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if f.scale != 0.25 {
		t.Errorf("Expected scale 0.25, got %f", f.scale)
	}

	if err := store.Save("Part02", s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "Part02.json"))
	if !strings.Contains(string(data), `"fog"`) {
		t.Errorf("Expected child scope to survive save, got %s", data)
	}
}

func TestStoreSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	os.WriteFile(blocker, []byte("x"), 0644)

	store := quietStore(filepath.Join(blocker, "parameters"))
	_, s := newFixture()
	if err := store.Save("Part02", s); err == nil {
		t.Error("Expected error when the directory cannot be created")
	}
}

func TestStoreSaveLogsEncodeFailure(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	store := NewStore(dir, slog.New(slog.NewTextHandler(&logs, nil)))

	f, s := newFixture()
	f.scale = math.NaN()
	if err := store.Save("Part02", s); err == nil {
		t.Fatal("Expected error for a value JSON cannot hold")
	}
	if !strings.Contains(logs.String(), "encode parameters") {
		t.Errorf("Expected the failure to be logged, got %s", logs.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "Part02.json")); !os.IsNotExist(err) {
		t.Errorf("Expected no file written, got %v", err)
	}
}
