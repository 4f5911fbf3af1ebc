package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/aousabdo/vid-to-gif/pkg/vidtogif"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "vid-to-gif",
		Usage:     "Convert video files to high-quality GIFs",
		ArgsUsage: "INPUT... [OUTPUT...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "fps",
				Usage: "frames per second for the GIF (1-60)",
				Value: vidtogif.DefaultFPS,
			},
			&cli.IntFlag{
				Name:  "scale",
				Usage: "output height in pixels, width keeps the aspect ratio (16-4096)",
				Value: vidtogif.DefaultScale,
			},
			&cli.FloatFlag{
				Name:  "start",
				Usage: "start offset into the source, in seconds",
			},
			&cli.FloatFlag{
				Name:  "duration",
				Usage: "length of the segment in seconds (default: rest of the video)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "echo the ffmpeg commands and their output",
			},
		},
		Action: run,
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		cli.ShowAppHelpAndExit(cmd, 0)
	}

	verbose := cmd.Bool("verbose")
	logger := newLogger(verbose)

	opts := vidtogif.Options{
		FPS:      int(cmd.Int("fps")),
		Scale:    int(cmd.Int("scale")),
		Start:    cmd.Float("start"),
		Duration: cmd.Float("duration"),
	}
	if cmd.IsSet("duration") && opts.Duration <= 0 {
		return cli.Exit("Error: duration must be positive", 2)
	}
	if err := opts.Validate(); err != nil {
		return cli.Exit("Error: "+err.Error(), 2)
	}

	inputs, outputs := vidtogif.SplitArgs(args)
	reqs, err := vidtogif.Pair(inputs, outputs, opts)
	if err != nil {
		return cli.Exit("Error: "+err.Error(), 2)
	}

	runner := vidtogif.NewFFmpegRunner(logger, verbose)
	converter := vidtogif.NewConverter(runner, logger)

	var bar *progressbar.ProgressBar
	if len(reqs) > 1 && !verbose {
		bar = progressbar.NewOptions(len(reqs),
			progressbar.OptionSetDescription("Converting..."),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	results := converter.ConvertAll(ctx, reqs, func(vidtogif.Result) {
		if bar != nil {
			bar.Add(1)
		}
	})

	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
			fmt.Printf("failed  %s: %v\n", res.Request.Input, res.Err)
		} else {
			fmt.Printf("ok      %s -> %s\n", res.Request.Input, res.Request.Output)
		}
	}
	fmt.Printf("%d of %d files converted\n", len(results)-failed, len(results))

	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
