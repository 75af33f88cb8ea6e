// Package video turns rendered frames into files: an ffmpeg pipe that encodes
// raw RGBA into a movie, and a PNG sequence written by a worker pool.
package video

import (
	"context"
	"errors"
	"image"
)

// Sink consumes frames in index order. WriteFrame may only read frame until it
// returns; a sink that needs the pixels longer copies them.
type Sink interface {
	WriteFrame(ctx context.Context, index int, frame *image.RGBA) error
	Close() error
}

// ErrClosed is returned when writing to a closed sink.
var ErrClosed = errors.New("sink closed")
