package vidtogif

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Converter builds and runs the two-pass ffmpeg pipeline for each request.
type Converter struct {
	runner     Runner
	log        *slog.Logger
	scratchDir string
}

// NewConverter wires a converter to a runner. A nil runner gets the real
// ffmpeg binary.
func NewConverter(runner Runner, log *slog.Logger) *Converter {
	if runner == nil {
		runner = NewFFmpegRunner(log, false)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Converter{runner: runner, log: log, scratchDir: scratchDir()}
}

func scratchDir() string {
	if dir := os.Getenv("VID_TO_GIF_TMPDIR"); dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), "vid-to-gif")
}

// Convert runs the palette pass and then the encode pass for a single
// request. The encode pass only starts after the palette pass succeeded; the
// palette artifact is removed on both success and failure.
func (c *Converter) Convert(ctx context.Context, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := os.Stat(req.Input); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, req.Input)
		}
		return fmt.Errorf("failed reading %s: %w", req.Input, err)
	}

	// Probe failure is not fatal, some containers carry no duration metadata.
	if total, err := c.runner.ProbeDuration(ctx, req.Input); err != nil {
		c.log.Debug("could not probe source duration", "input", req.Input, "error", err)
	} else {
		c.log.Debug("probed source", "input", req.Input, "duration", formatTimestamp(total))
		if req.Start > 0 && req.Start >= total {
			return fmt.Errorf("%w: start %s is past the end of %s (%s)",
				ErrInvalidArgument, formatTimestamp(req.Start), req.Input, formatTimestamp(total))
		}
	}

	if err := os.MkdirAll(c.scratchDir, 0o755); err != nil {
		return fmt.Errorf("failed creating scratch dir: %w", err)
	}
	palettePath := filepath.Join(c.scratchDir, fmt.Sprintf("%s.png", uuid.NewString()))
	defer os.Remove(palettePath)

	c.log.Debug("generating color palette", "input", req.Input, "palette", palettePath)
	if err := c.runner.Run(ctx, StagePalette, paletteArgs(req, palettePath)); err != nil {
		return err
	}

	c.log.Debug("encoding gif", "input", req.Input, "output", req.Output)
	return c.runner.Run(ctx, StageEncode, encodeArgs(req, palettePath))
}

// inputKwArgs restricts the video input to the requested time window. The
// same window applies to both passes so the palette is derived from exactly
// the frames that get encoded.
func inputKwArgs(req Request) ffmpeg.KwArgs {
	kw := ffmpeg.KwArgs{}
	if req.Start > 0 {
		kw["ss"] = formatTimestamp(req.Start)
	}
	if req.Duration > 0 {
		kw["t"] = formatTimestamp(req.Duration)
	}
	return kw
}

// filterChain is the fps/scale prefix shared by both passes. -2 keeps the
// derived width even, which downstream players require.
func filterChain(req Request) string {
	return fmt.Sprintf("fps=%d,scale=-2:%d:flags=lanczos", req.FPS, req.Scale)
}

// paletteArgs builds the first invocation: analyze the segment and emit an
// optimized 256-color palette.
func paletteArgs(req Request, palettePath string) []string {
	return ffmpeg.Input(req.Input, inputKwArgs(req)).
		Output(palettePath, ffmpeg.KwArgs{"vf": filterChain(req) + ",palettegen"}).
		OverWriteOutput().
		GetArgs()
}

// encodeArgs builds the second invocation: re-read the segment and map it
// through the generated palette.
func encodeArgs(req Request, palettePath string) []string {
	video := ffmpeg.Input(req.Input, inputKwArgs(req))
	palette := ffmpeg.Input(palettePath)
	lavfi := fmt.Sprintf("%s [x]; [x][1:v] paletteuse", filterChain(req))
	return ffmpeg.Output([]*ffmpeg.Stream{video, palette}, req.Output, ffmpeg.KwArgs{"lavfi": lavfi}).
		OverWriteOutput().
		GetArgs()
}
