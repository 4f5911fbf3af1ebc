package vidtogif

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitArgs(t *testing.T) {
	inputs, outputs := SplitArgs([]string{"a.mp4", "b.mov", "a.gif", "B.GIF"})
	require.Equal(t, []string{"a.mp4", "b.mov"}, inputs)
	require.Equal(t, []string{"a.gif", "B.GIF"}, outputs)

	inputs, outputs = SplitArgs([]string{"only.webm"})
	require.Equal(t, []string{"only.webm"}, inputs)
	require.Empty(t, outputs)
}

func TestPairAutoNamesOutputs(t *testing.T) {
	reqs, err := Pair([]string{"a.mp4", "dir/b.mov"}, nil, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	require.Equal(t, "a.gif", reqs[0].Output)
	require.Equal(t, "dir/b.gif", reqs[1].Output)
}

func TestPairExplicitOutputs(t *testing.T) {
	reqs, err := Pair([]string{"a.mp4", "b.mp4"}, []string{"x.gif", "y.gif"}, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, "x.gif", reqs[0].Output)
	require.Equal(t, "y.gif", reqs[1].Output)
}

func TestPairCountMismatch(t *testing.T) {
	_, err := Pair([]string{"a.mp4", "b.mp4"}, []string{"x.gif"}, DefaultOptions())
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPairNoInputs(t *testing.T) {
	_, err := Pair(nil, []string{"x.gif"}, DefaultOptions())
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestConvertAllContinuesPastFailure(t *testing.T) {
	dir := t.TempDir()
	var inputs []string
	for _, name := range []string{"a.mp4", "b.mp4", "c.mp4"} {
		inputs = append(inputs, writeTempVideoIn(t, dir, name))
	}

	// The middle file loses its tool, the siblings must still convert.
	runner := &fakeRunner{
		failWhen: func(_ Stage, args []string) error {
			for _, a := range args {
				if strings.HasSuffix(a, string(filepath.Separator)+"b.mp4") {
					return ErrToolUnavailable
				}
			}
			return nil
		},
	}
	conv := newTestConverter(t, runner)

	reqs, err := Pair(inputs, nil, DefaultOptions())
	require.NoError(t, err)

	var done int
	results := conv.ConvertAll(context.Background(), reqs, func(Result) { done++ })

	require.Len(t, results, 3)
	require.Equal(t, 3, done)
	require.NoError(t, results[0].Err)
	require.ErrorIs(t, results[1].Err, ErrToolUnavailable)
	require.NoError(t, results[2].Err)
	require.True(t, results[1].Failed())
	require.False(t, results[0].Failed())

	// Two passes each for the files that ran, one aborted pass for the middle.
	require.Len(t, runner.calls, 5)
}

func writeTempVideoIn(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("not really a video"), 0o644))
	return path
}
