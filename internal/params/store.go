package params

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultDir is where parameter files live unless the show file says otherwise.
const DefaultDir = "data/parameters"

// Store persists parameter sets as one JSON file per segment name.
type Store struct {
	Dir    string
	Logger *slog.Logger
}

// NewStore creates a store rooted at dir.
func NewStore(dir string, logger *slog.Logger) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{Dir: dir, Logger: logger}
}

// Path returns the file backing the named set.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name+".json")
}

// Load reads the named file into set. The set is left untouched on any error.
func (s *Store) Load(name string, set *Set) error {
	path := s.Path(name)
	s.Logger.Info("load parameters", "file", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := set.LoadDocument(doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Save rewrites the named file with every binding in registration order,
// creating the directory if needed.
func (s *Store) Save(name string, set *Set) error {
	path := s.Path(name)
	s.Logger.Info("save parameters", "file", path)

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		s.Logger.Error("create parameter directory", "dir", s.Dir, "error", err)
		return err
	}
	data, err := Encode(set.Document())
	if err != nil {
		s.Logger.Error("encode parameters", "file", path, "error", err)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		s.Logger.Error("write parameters", "file", path, "error", err)
		return err
	}
	return nil
}
