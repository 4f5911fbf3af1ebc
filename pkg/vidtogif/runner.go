package vidtogif

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Stage names one of the two external invocations of the pipeline.
type Stage string

const (
	StagePalette Stage = "palette"
	StageEncode  Stage = "encode"
)

// Runner is the process boundary: it executes one prepared ffmpeg invocation
// and reports its outcome. Tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, stage Stage, args []string) error
	ProbeDuration(ctx context.Context, input string) (float64, error)
}

// FFmpegRunner runs invocations against the real ffmpeg binary.
type FFmpegRunner struct {
	bin     string
	log     *slog.Logger
	verbose bool
}

// NewFFmpegRunner resolves the ffmpeg binary, honoring the VID_TO_GIF_FFMPEG
// override. When verbose is set, the tool's error stream is echoed as it runs.
func NewFFmpegRunner(log *slog.Logger, verbose bool) *FFmpegRunner {
	bin := os.Getenv("VID_TO_GIF_FFMPEG")
	if bin == "" {
		bin = "ffmpeg"
	}
	if log == nil {
		log = slog.Default()
	}
	return &FFmpegRunner{bin: bin, log: log, verbose: verbose}
}

// Run executes one invocation and blocks until the process exits. A missing
// binary maps to ErrToolUnavailable, a nonzero exit to a ConversionError
// carrying the captured error stream.
func (r *FFmpegRunner) Run(ctx context.Context, stage Stage, args []string) error {
	if _, err := exec.LookPath(r.bin); err != nil {
		return fmt.Errorf("%w: %s", ErrToolUnavailable, r.bin)
	}

	r.log.Debug("running "+string(stage)+" pass", "command", r.bin+" "+strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.bin, args...)
	cmd.Stderr = &stderr
	if r.verbose {
		cmd.Stderr = io.MultiWriter(&stderr, os.Stderr)
	}

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrToolUnavailable, r.bin)
		}
		return &ConversionError{Stage: stage, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return nil
}

// ProbeDuration asks ffprobe for the source duration in seconds.
func (r *FFmpegRunner) ProbeDuration(ctx context.Context, input string) (float64, error) {
	raw, err := ffmpeg.Probe(input)
	if err != nil {
		return 0, fmt.Errorf("failed probing %s: %w", input, err)
	}
	return parseProbeDuration(raw)
}

func parseProbeDuration(raw string) (float64, error) {
	var info struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return 0, fmt.Errorf("failed decoding probe output: %w", err)
	}
	d, err := strconv.ParseFloat(info.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("probe output has no duration: %w", err)
	}
	return d, nil
}
