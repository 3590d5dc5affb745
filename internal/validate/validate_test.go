package validate

import (
	"testing"

	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "Trailer Cut", "Trailer Cut", false},
		{"trimmed", "  Selects  ", "Selects", false},
		{"unicode", "Montage – v2", "Montage – v2", false},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"null byte", "a\x00b", "", true},
		{"newline", "a\nb", "", true},
		{"too long", string(make([]byte, MaxNameLen+1)), "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Name("timeline", tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPage(t *testing.T) {
	p, err := Page("Fusion")
	require.NoError(t, err)
	assert.Equal(t, resolve.PageFusion, p)

	_, err = Page("compositing")
	assert.ErrorIs(t, err, ErrInvalidPage)
	assert.Equal(t, "Invalid page name. Valid pages are: media, cut, edit, fusion, color, fairlight, deliver.", Message(err))
}

func TestTrackType(t *testing.T) {
	tt, err := TrackType("audio")
	require.NoError(t, err)
	assert.Equal(t, resolve.TrackAudio, tt)

	_, err = TrackType("Video")
	assert.ErrorIs(t, err, ErrInvalidTrack)
	assert.Equal(t, "Invalid track type. Valid types are 'video', 'audio', or 'subtitle'.", Message(err))
}

func TestIndex(t *testing.T) {
	assert.NoError(t, Index("timeline", 1, 3))
	assert.NoError(t, Index("timeline", 3, 3))

	err := Index("timeline", 0, 3)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	assert.Equal(t, "Invalid timeline index. Valid range is 1-3.", Message(err))

	err = Index("track", 1, 0)
	assert.Equal(t, "Invalid track index. Valid range is 1-0.", Message(err))
}

func TestIndices(t *testing.T) {
	assert.NoError(t, Indices("clip", []int{1, 2, 2}, 2))

	err := Indices("clip", []int{1, 5, 0}, 4)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	assert.Equal(t, "Invalid clip index 5. Valid range is 1-4.", Message(err))
}

func TestPaths(t *testing.T) {
	got, err := Paths([]string{" /media/a.mov ", "", "/media/b.wav"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/media/a.mov", "/media/b.wav"}, got)

	_, err = Paths([]string{" ", ""})
	assert.ErrorIs(t, err, ErrNoPaths)
}
