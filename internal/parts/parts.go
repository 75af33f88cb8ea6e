// Package parts holds the segment kinds a show file can schedule.
package parts

import "github.com/ivlev/showreel/internal/segment"

// Kinds registered by Register.
const (
	KindSlides  = "slides"
	KindScene   = "scene"
	KindCredits = "credits"
)

// Register adds every built-in segment kind to r.
func Register(r *segment.Registry) error {
	for kind, f := range map[string]segment.Factory{
		KindSlides:  newSlidesFromConfig,
		KindScene:   newSceneFromConfig,
		KindCredits: newCreditsFromConfig,
	} {
		if err := r.Register(kind, f); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry with the built-in kinds.
func NewRegistry() *segment.Registry {
	r := segment.NewRegistry()
	if err := Register(r); err != nil {
		panic(err)
	}
	return r
}
