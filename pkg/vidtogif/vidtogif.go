// Package vidtogif converts video files into high-quality animated GIFs by
// driving ffmpeg through a two-pass pipeline: a palette-generation pass
// followed by a palette-apply encode pass.
package vidtogif

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

const (
	// DefaultFPS is the frame rate used when none is given.
	DefaultFPS = 15
	// DefaultScale is the output height in pixels used when none is given.
	DefaultScale = 480

	minFPS   = 1
	maxFPS   = 60
	minScale = 16
	maxScale = 4096
)

// Options are the conversion settings shared by every file in a batch.
type Options struct {
	FPS      int
	Scale    int     // output height in pixels, width follows the aspect ratio
	Start    float64 // offset into the source, in seconds
	Duration float64 // segment length in seconds, 0 means the rest of the video
}

// DefaultOptions returns the options used when no flags are given.
func DefaultOptions() Options {
	return Options{FPS: DefaultFPS, Scale: DefaultScale}
}

// Validate checks the option ranges. It runs before any external process is
// spawned.
func (o Options) Validate() error {
	if o.FPS < minFPS || o.FPS > maxFPS {
		return fmt.Errorf("%w: fps must be between %d and %d, got %d", ErrInvalidArgument, minFPS, maxFPS, o.FPS)
	}
	if o.Scale < minScale || o.Scale > maxScale {
		return fmt.Errorf("%w: scale must be between %d and %d, got %d", ErrInvalidArgument, minScale, maxScale, o.Scale)
	}
	if o.Start < 0 {
		return fmt.Errorf("%w: start must be non-negative, got %g", ErrInvalidArgument, o.Start)
	}
	if o.Duration < 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidArgument, o.Duration)
	}
	return nil
}

// Request is one input/output pair plus the shared options.
type Request struct {
	Input  string
	Output string
	Options
}

// DeriveOutput replaces a video file's extension with .gif, keeping the
// directory and base name.
func DeriveOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".gif"
}

// formatTimestamp renders a second count the way ffmpeg's -ss and -t options
// expect it, HH:MM:SS.mmm.
func formatTimestamp(seconds float64) string {
	ms := int(math.Round(seconds * 1000))
	h := ms / 3600000
	ms -= h * 3600000
	m := ms / 60000
	ms -= m * 60000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
