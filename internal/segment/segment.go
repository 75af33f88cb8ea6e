// Package segment defines the contract every scheduled part of a show
// implements, and the registry the show builds its parts from.
package segment

import (
	"context"
	"image"
	"log/slog"

	"github.com/ivlev/showreel/internal/params"
	"github.com/ivlev/showreel/internal/source"
)

// Time is the clock handed to a segment each frame. Local is Global minus
// the segment's window start and is never negative while the segment renders.
type Time struct {
	Global float64
	Local  float64
}

// Env carries what a segment may use while loading its resources.
type Env struct {
	Width  int
	Height int
	Assets *source.Loader
	Logger *slog.Logger
}

// Segment is one part of the show. A segment registers its parameters when it
// is constructed, loads heavy resources once in Init and then draws into the
// frame every time it is active. It does not know its own time window.
type Segment interface {
	Name() string
	Params() *params.Set
	Init(ctx context.Context, env Env) error
	Render(frame *image.RGBA, t Time)
}

// Base implements Name and Params for embedding.
type Base struct {
	name   string
	params params.Set
}

// NewBase names a segment.
func NewBase(name string) Base {
	return Base{name: name}
}

func (b *Base) Name() string { return b.name }

func (b *Base) Params() *params.Set { return &b.params }
