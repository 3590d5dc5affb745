// Package format renders host state as the plain text returned by MCP
// resources and tools, and as tables for the CLI.
//
// Centralises presentation so MCP handlers and CLI commands produce the
// same wording for the same state.
package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/resolvemcp/internal/resolve"
)

// DefaultClipLimit is how many clips CurrentFolder lists before summarising.
const DefaultClipLimit = 10

// Guard texts shown when the host is missing something an operation needs.
const (
	MsgNotConnected   = "Error: Not connected to DaVinci Resolve."
	MsgNoProject      = "No project is currently open."
	MsgNoTimeline     = "No timeline is currently open."
	MsgNoTimelines    = "No timelines in the current project."
	MsgNoMediaPool    = "No media pool available."
	MsgNoRootFolder   = "No root folder available."
	MsgNoFolder       = "No current folder available."
	MsgNoMediaStorage = "No media storage available."
	MsgNoVolumes      = "No mounted volumes available."
	MsgNoFusion       = "Fusion is not available."
	MsgNoComp         = "No active Fusion composition. Please open the Fusion page and select a composition first."
)

var guardMessages = []struct {
	err error
	msg string
}{
	{resolve.ErrNotConnected, MsgNotConnected},
	{resolve.ErrNoProject, MsgNoProject},
	{resolve.ErrNoTimeline, MsgNoTimeline},
	{resolve.ErrNoMediaPool, MsgNoMediaPool},
	{resolve.ErrNoFolder, MsgNoFolder},
	{resolve.ErrNoMediaStorage, MsgNoMediaStorage},
	{resolve.ErrNoFusion, MsgNoFusion},
	{resolve.ErrNoComp, MsgNoComp},
}

// Message returns the caller-facing text for err. Guard failures map to
// their fixed texts; anything else is prefixed with "Error: ".
func Message(err error) string {
	for _, g := range guardMessages {
		if errors.Is(err, g.err) {
			return g.msg
		}
	}
	return "Error: " + err.Error()
}

// Status renders the system://status resource.
func Status(info resolve.Info, project, timeline string) string {
	var b strings.Builder
	b.WriteString("DaVinci Resolve Status:\n")
	if !info.Connected {
		b.WriteString("- Connection: Not connected\n")
		reason := "DaVinci Resolve is not running or not accessible"
		if info.Error != "" {
			reason = info.Error
		}
		fmt.Fprintf(&b, "- Error: %s", reason)
		return b.String()
	}

	b.WriteString("- Connection: Connected\n")
	if info.Version != "" {
		fmt.Fprintf(&b, "- Version: %s %s\n", info.Product, info.Version)
	}
	if project == "" {
		project = "No project open"
	}
	if timeline == "" {
		timeline = "No timeline open"
	}
	fmt.Fprintf(&b, "- Current Project: %s\n", project)
	fmt.Fprintf(&b, "- Current Timeline: %s", timeline)
	return b.String()
}

// Project renders the project://current resource.
func Project(p *resolve.Project) string {
	current := p.CurrentTimeline
	if current == "" {
		current = "None"
	}
	return fmt.Sprintf("Current Project: %s\nTimeline Count: %d\nCurrent Timeline: %s",
		p.Name, p.TimelineCount, current)
}

// Timelines renders the project://timelines resource.
func Timelines(refs []resolve.TimelineRef) string {
	if len(refs) == 0 {
		return MsgNoTimelines
	}
	lines := make([]string, len(refs))
	for i, r := range refs {
		lines[i] = fmt.Sprintf("%d. %s", r.Index, r.Name)
	}
	return strings.Join(lines, "\n")
}

// Timeline renders the timeline://current resource.
func Timeline(t *resolve.Timeline) string {
	return fmt.Sprintf("Timeline: %s\nDuration: %d frames (%d - %d)\nVideo Tracks: %d\nAudio Tracks: %d\nSubtitle Tracks: %d",
		t.Name, t.Duration(), t.Start, t.End, t.Video, t.Audio, t.Subtitle)
}

// FolderTree renders the mediapool://folders resource: one "- name" line
// per folder, indented two spaces per level.
func FolderTree(root *resolve.Folder) string {
	var lines []string
	var walk func(f *resolve.Folder, indent string)
	walk = func(f *resolve.Folder, indent string) {
		lines = append(lines, indent+"- "+f.Name)
		for i := range f.Folders {
			walk(&f.Folders[i], indent+"  ")
		}
	}
	walk(root, "")
	return strings.Join(lines, "\n")
}

// CurrentFolder renders the mediapool://current resource, listing at most
// limit clips (DefaultClipLimit if limit < 1).
func CurrentFolder(f *resolve.Folder, limit int) string {
	if limit < 1 {
		limit = DefaultClipLimit
	}

	count := len(f.Clips)
	var clips string
	if count == 0 {
		clips = "No clips in this folder."
	} else {
		lines := make([]string, 0, min(count, limit)+1)
		for i, name := range f.Clips {
			if i == limit {
				lines = append(lines, fmt.Sprintf("... and %d more clips", count-limit))
				break
			}
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, name))
		}
		clips = strings.Join(lines, "\n")
	}
	return fmt.Sprintf("Current Folder: %s\nClip Count: %d\nClips:\n%s", f.Name, count, clips)
}

// Volumes renders the storage://volumes resource.
func Volumes(vols []string) string {
	if len(vols) == 0 {
		return MsgNoVolumes
	}
	return numbered(vols)
}

// Listing renders the content of one media storage directory.
func Listing(l *resolve.Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Path: %s\n", l.Path)
	section := func(title string, items []string) {
		fmt.Fprintf(&b, "%s (%d):\n", title, len(items))
		if len(items) == 0 {
			b.WriteString("  (none)\n")
			return
		}
		for _, it := range items {
			fmt.Fprintf(&b, "  %s\n", it)
		}
	}
	section("Folders", l.Folders)
	section("Files", l.Files)
	return strings.TrimRight(b.String(), "\n")
}

func numbered(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = strconv.Itoa(i+1) + ". " + it
	}
	return strings.Join(lines, "\n")
}
