package vidtogif

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument rejects an option value before any work starts.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInputNotFound reports a missing source file.
	ErrInputNotFound = errors.New("input file not found")
	// ErrToolUnavailable reports that ffmpeg is not on the execution path.
	ErrToolUnavailable = errors.New("ffmpeg not found on PATH")
)

// ConversionError reports a nonzero ffmpeg exit from one of the two passes,
// with whatever the tool wrote to its error stream.
type ConversionError struct {
	Stage  Stage
	Stderr string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s pass failed: %v: %s", e.Stage, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s pass failed: %v", e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }
