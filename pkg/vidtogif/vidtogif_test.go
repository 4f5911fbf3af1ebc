package vidtogif

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	cases := []struct {
		name string
		opts Options
		ok   bool
	}{
		{"defaults", DefaultOptions(), true},
		{"fps below range", Options{FPS: 0, Scale: 480}, false},
		{"fps above range", Options{FPS: 61, Scale: 480}, false},
		{"fps at bounds", Options{FPS: 60, Scale: 480}, true},
		{"scale below range", Options{FPS: 15, Scale: 15}, false},
		{"scale above range", Options{FPS: 15, Scale: 4097}, false},
		{"fps and scale at lower bounds", Options{FPS: 1, Scale: 16}, true},
		{"negative start", Options{FPS: 15, Scale: 480, Start: -1}, false},
		{"negative duration", Options{FPS: 15, Scale: 480, Duration: -5}, false},
		{"time window", Options{FPS: 15, Scale: 480, Start: 10, Duration: 5}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidArgument)
			}
		})
	}
}

func TestDeriveOutput(t *testing.T) {
	require.Equal(t, "clip.gif", DeriveOutput("clip.mov"))
	require.Equal(t, "videos/holiday.gif", DeriveOutput("videos/holiday.mp4"))
	require.Equal(t, "clip.gif", DeriveOutput("clip"))
	require.Equal(t, "a/b/c.d.gif", DeriveOutput("a/b/c.d.webm"))
}

func TestFormatTimestamp(t *testing.T) {
	require.Equal(t, "00:00:00.000", formatTimestamp(0))
	require.Equal(t, "00:01:01.500", formatTimestamp(61.5))
	require.Equal(t, "01:01:01.123", formatTimestamp(3661.123))
	require.Equal(t, "02:01:01.999", formatTimestamp(7261.999))
}
