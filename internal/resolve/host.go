// Package resolve connects to a running DaVinci Resolve instance through the
// vendor's scripting module and exposes its object graph (projects,
// timelines, media pool, media storage, Fusion) as plain Go values.
//
// The vendor ships the scripting binding for Python and Lua only, so the
// Client starts a small bridge interpreter that imports DaVinciResolveScript
// and answers line-delimited JSON requests on stdin/stdout. Everything that
// can be decided without the host (argument validation, index range checks,
// response text) is done on the Go side; the bridge maps one op onto one
// vendor call.
package resolve

import (
	"context"
	"fmt"
	"strings"
)

// Host is the set of operations the server performs against the host
// application. Index arguments are 1-based, matching the vendor API.
//
// Guard failures (no project open, no media pool, ...) are reported as the
// sentinel errors in errors.go. A vendor call that runs but hands back a
// null object is reported as ok == false with a nil error.
type Host interface {
	// Connected reports whether the host application is reachable,
	// dialling the bridge if necessary.
	Connected(ctx context.Context) bool
	// Info returns the last known connection snapshot without dialling.
	Info() Info

	CurrentProject(ctx context.Context) (*Project, error)
	Timelines(ctx context.Context) ([]TimelineRef, error)
	CreateProject(ctx context.Context, name string) (bool, error)
	LoadProject(ctx context.Context, name string) (bool, error)
	SaveProject(ctx context.Context) (name string, ok bool, err error)

	CurrentTimeline(ctx context.Context) (*Timeline, error)
	CreateTimeline(ctx context.Context, name string) (bool, error)
	SetCurrentTimeline(ctx context.Context, index int) (name string, ok bool, err error)
	TrackCount(ctx context.Context, timeline int, track TrackType) (int, error)
	TrackItems(ctx context.Context, timeline int, track TrackType, trackIndex int) ([]string, error)
	AddFusionComp(ctx context.Context, clip ClipRef) (bool, error)
	ImportTimeline(ctx context.Context, path string) (name string, ok bool, err error)

	FolderTree(ctx context.Context) (*Folder, error)
	CurrentFolder(ctx context.Context) (*Folder, error)
	AddFolder(ctx context.Context, name string) (bool, error)
	CreateTimelineFromClips(ctx context.Context, name string, clips []int) (bool, error)
	AppendToTimeline(ctx context.Context, clips []int) (bool, error)

	Volumes(ctx context.Context) ([]string, error)
	Browse(ctx context.Context, path string) (*Listing, error)
	ImportMedia(ctx context.Context, paths []string) (int, error)

	// CurrentComp returns the name of the active Fusion composition, or
	// ErrNoComp when there is none.
	CurrentComp(ctx context.Context) (string, error)
	// AddTool adds a node of toolType to the current Fusion composition,
	// applies inputs and, when name is set, renames it. It returns the
	// node's final name, or "" when the host refused to create it.
	AddTool(ctx context.Context, toolType, name string, inputs map[string]any) (string, error)
	// ConnectTool connects input of tool to the main output of from.
	ConnectTool(ctx context.Context, tool, input, from string) (bool, error)

	OpenPage(ctx context.Context, page Page) (bool, error)
	CurrentPage(ctx context.Context) (string, error)

	// ExecuteLua runs script through Fusion. hasResult is false when the
	// script returned nothing.
	ExecuteLua(ctx context.Context, script string) (result string, hasResult bool, err error)
	// ExecutePython runs code inside the bridge with the vendor handles
	// bound. result is the value assigned to a result variable or, failing
	// that, what the code printed; hasResult is false when it did neither.
	ExecutePython(ctx context.Context, code string) (result string, hasResult bool, err error)

	Close() error
}

// Info is a snapshot of the bridge connection.
type Info struct {
	Connected bool   `json:"connected"`
	Product   string `json:"product,omitempty"`
	Version   string `json:"version,omitempty"`
	ModuleDir string `json:"module_dir,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Project describes the project currently open in the host.
type Project struct {
	Name            string `json:"name"`
	TimelineCount   int    `json:"timeline_count"`
	CurrentTimeline string `json:"current_timeline,omitempty"`
}

// TimelineRef names a timeline by its project index.
type TimelineRef struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Timeline describes a timeline's extent and track layout.
type Timeline struct {
	Name     string `json:"name"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Video    int    `json:"video"`
	Audio    int    `json:"audio"`
	Subtitle int    `json:"subtitle"`
}

// Duration returns the inclusive frame count between Start and End.
func (t Timeline) Duration() int {
	return t.End - t.Start + 1
}

// Folder is a media pool bin. Clips holds clip names in the order the host
// reports them; CreateTimelineFromClips and AppendToTimeline address clips
// by their 1-based position in that list.
type Folder struct {
	Name    string   `json:"name"`
	Clips   []string `json:"clips,omitempty"`
	Folders []Folder `json:"folders,omitempty"`
}

// Listing is the content of one media storage directory.
type Listing struct {
	Path    string   `json:"path"`
	Folders []string `json:"folders"`
	Files   []string `json:"files"`
}

// TrackType is a timeline track kind.
type TrackType string

// Track kinds understood by the host.
const (
	TrackVideo    TrackType = "video"
	TrackAudio    TrackType = "audio"
	TrackSubtitle TrackType = "subtitle"
)

// TrackTypes lists the valid track kinds in display order.
func TrackTypes() []TrackType {
	return []TrackType{TrackVideo, TrackAudio, TrackSubtitle}
}

// ParseTrackType matches s against the known track kinds.
func ParseTrackType(s string) (TrackType, bool) {
	for _, t := range TrackTypes() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Page is one of the host's workspace pages.
type Page string

// Pages understood by OpenPage.
const (
	PageMedia     Page = "media"
	PageCut       Page = "cut"
	PageEdit      Page = "edit"
	PageFusion    Page = "fusion"
	PageColor     Page = "color"
	PageFairlight Page = "fairlight"
	PageDeliver   Page = "deliver"
)

// Pages lists the valid pages in the order the host's page bar shows them.
func Pages() []Page {
	return []Page{PageMedia, PageCut, PageEdit, PageFusion, PageColor, PageFairlight, PageDeliver}
}

// ParsePage matches s case-insensitively against the known pages.
func ParsePage(s string) (Page, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Pages() {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// Title returns the page name with its first letter capitalised.
func (p Page) Title() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// ClipRef addresses one item on a timeline track.
type ClipRef struct {
	Timeline   int       `json:"timeline"`
	Track      TrackType `json:"track"`
	TrackIndex int       `json:"track_index"`
	Item       int       `json:"item"`
}

func (c ClipRef) String() string {
	return fmt.Sprintf("%s track %d, item %d", c.Track, c.TrackIndex, c.Item)
}
