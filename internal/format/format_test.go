package format

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage(t *testing.T) {
	assert.Equal(t, MsgNotConnected, Message(fmt.Errorf("%w: bridge exited", resolve.ErrNotConnected)))
	assert.Equal(t, MsgNoProject, Message(resolve.ErrNoProject))
	assert.Equal(t, MsgNoComp, Message(resolve.ErrNoComp))
	assert.Equal(t, "Error: script.lua: boom", Message(&resolve.BridgeError{Op: "script.lua", Message: "boom"}))
}

func TestStatus(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		info := resolve.Info{Connected: true, Product: "DaVinci Resolve", Version: "19.0.0"}
		got := Status(info, "Trailer", "")
		assert.Equal(t, "DaVinci Resolve Status:\n"+
			"- Connection: Connected\n"+
			"- Version: DaVinci Resolve 19.0.0\n"+
			"- Current Project: Trailer\n"+
			"- Current Timeline: No timeline open", got)
	})

	t.Run("not connected", func(t *testing.T) {
		got := Status(resolve.Info{}, "", "")
		assert.Contains(t, got, "- Connection: Not connected")
		assert.Contains(t, got, "- Error: DaVinci Resolve is not running or not accessible")
	})

	t.Run("not connected with reason", func(t *testing.T) {
		got := Status(resolve.Info{Error: "could not import DaVinciResolveScript"}, "", "")
		assert.Contains(t, got, "- Error: could not import DaVinciResolveScript")
	})
}

func TestProject(t *testing.T) {
	got := Project(&resolve.Project{Name: "Trailer", TimelineCount: 3})
	assert.Equal(t, "Current Project: Trailer\nTimeline Count: 3\nCurrent Timeline: None", got)
}

func TestTimelines(t *testing.T) {
	assert.Equal(t, MsgNoTimelines, Timelines(nil))
	got := Timelines([]resolve.TimelineRef{{Index: 1, Name: "Main"}, {Index: 3, Name: "Alt"}})
	assert.Equal(t, "1. Main\n3. Alt", got)
}

func TestTimeline(t *testing.T) {
	got := Timeline(&resolve.Timeline{Name: "Main", Start: 86400, End: 86499, Video: 2, Audio: 4})
	assert.Equal(t, "Timeline: Main\n"+
		"Duration: 100 frames (86400 - 86499)\n"+
		"Video Tracks: 2\n"+
		"Audio Tracks: 4\n"+
		"Subtitle Tracks: 0", got)
}

func TestFolderTree(t *testing.T) {
	root := &resolve.Folder{
		Name: "Master",
		Folders: []resolve.Folder{
			{Name: "Footage", Folders: []resolve.Folder{{Name: "Day 1"}}},
			{Name: "Audio"},
		},
	}
	assert.Equal(t, "- Master\n  - Footage\n    - Day 1\n  - Audio", FolderTree(root))
}

func TestCurrentFolder(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := CurrentFolder(&resolve.Folder{Name: "Master"}, 10)
		assert.Equal(t, "Current Folder: Master\nClip Count: 0\nClips:\nNo clips in this folder.", got)
	})

	t.Run("truncated", func(t *testing.T) {
		clips := make([]string, 12)
		for i := range clips {
			clips[i] = fmt.Sprintf("A%03d.mov", i+1)
		}
		got := CurrentFolder(&resolve.Folder{Name: "Footage", Clips: clips}, 0)
		lines := strings.Split(got, "\n")
		assert.Equal(t, "Clip Count: 12", lines[1])
		assert.Equal(t, "1. A001.mov", lines[3])
		assert.Equal(t, "10. A010.mov", lines[12])
		assert.Equal(t, "... and 2 more clips", lines[13])
		assert.Len(t, lines, 14)
	})

	t.Run("exact limit", func(t *testing.T) {
		got := CurrentFolder(&resolve.Folder{Name: "F", Clips: []string{"a", "b"}}, 2)
		assert.NotContains(t, got, "more clips")
	})
}

func TestVolumes(t *testing.T) {
	assert.Equal(t, MsgNoVolumes, Volumes(nil))
	assert.Equal(t, "1. /Volumes/Media\n2. /Volumes/Archive", Volumes([]string{"/Volumes/Media", "/Volumes/Archive"}))
}

func TestListing(t *testing.T) {
	got := Listing(&resolve.Listing{Path: "/Volumes/Media", Folders: []string{"/Volumes/Media/Day1"}})
	assert.Equal(t, "Path: /Volumes/Media\nFolders (1):\n  /Volumes/Media/Day1\nFiles (0):\n  (none)", got)
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	err := Table(&buf, []string{"#", "Timeline"}, [][]string{{"1", "Main"}, {"2"}}, 0)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Timeline")
	assert.Contains(t, out, "Main")
	assert.True(t, strings.HasSuffix(out, "\n"))
}
