package segment

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/showreel/internal/config"
)

// Factory builds a segment from its declaration in the show file.
type Factory func(cfg config.SegmentConfig) (Segment, error)

// Registry maps segment kinds to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for kind.
func (r *Registry) Register(kind string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if kind == "" || f == nil {
		return fmt.Errorf("segment kind and factory are required")
	}
	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, kind)
	}
	r.factories[kind] = f
	return nil
}

// New constructs the segment declared by cfg.
func (r *Registry) New(cfg config.SegmentConfig) (Segment, error) {
	r.mu.RLock()
	f, ok := r.factories[cfg.Kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownKind, cfg.Kind, strings.Join(r.Kinds(), ", "))
	}
	seg, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("segment %s (%s): %w", cfg.Name, cfg.Kind, err)
	}
	return seg, nil
}

// Kinds lists registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// DecodeOptions decodes a segment's options node into v. A missing options
// block leaves v at its defaults.
func DecodeOptions(node yaml.Node, v any) error {
	if node.IsZero() {
		return nil
	}
	if err := node.Decode(v); err != nil {
		return fmt.Errorf("decoding options: %w", err)
	}
	return nil
}
