// Package resolvetest provides an in-memory resolve.Host for tests.
//
// Host models just enough of DaVinci Resolve to exercise callers: projects,
// timelines with tracks, one media pool folder tree, media storage and a
// Fusion composition. Fields may be set directly before use; methods are
// safe for concurrent use.
package resolvetest

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/jpl-au/resolvemcp/internal/resolve"
)

// Timeline is a timeline with its track contents. Tracks holds, per track
// type, the item names of each track in order.
type Timeline struct {
	Name   string
	Start  int
	End    int
	Tracks map[resolve.TrackType][][]string
	Comps  []resolve.ClipRef // items that received a Fusion composition
}

// Node is a Fusion node created through AddTool.
type Node struct {
	Type   string
	Name   string
	Inputs map[string]any
}

// Link is a connection made through ConnectTool.
type Link struct {
	Tool, Input, From string
}

// Host is an in-memory resolve.Host.
type Host struct {
	mu sync.Mutex

	Offline  bool   // every call fails with resolve.ErrNotConnected
	Product  string // reported by Info
	Version  string
	Projects []string // existing project names
	Project  string   // open project; "" when none

	TimelineList []*Timeline // timelines of the open project
	Current      int         // 1-based index of the current timeline; 0 when none

	NoMediaPool bool
	Root        resolve.Folder
	FolderPath  []int // child indices from Root to the current folder; nil means Root
	NoFolder    bool

	NoStorage     bool
	Mounted       []string
	Dirs          map[string]resolve.Listing // Browse results by path
	Files         map[string]bool            // paths ImportMedia accepts
	Imported      []string
	TimelineFiles map[string]string // ImportTimeline path -> timeline name

	NoFusion  bool
	Comp      bool     // a composition is active
	ToolTypes []string // AddTool accepts only these; nil accepts any
	Nodes     []Node
	Links     []Link

	Page string

	Lua    func(script string) (string, bool, error)
	Python func(code string) (string, bool, error)

	Calls []string // method names in call order
}

var _ resolve.Host = (*Host)(nil)

// New returns a connected Host with an open project "Demo", one timeline
// "Timeline 1" with a single video track of two items, and a media pool
// whose root folder "Master" holds three clips.
func New() *Host {
	return &Host{
		Product:  "DaVinci Resolve",
		Version:  "19.0.0",
		Projects: []string{"Demo"},
		Project:  "Demo",
		TimelineList: []*Timeline{{
			Name:  "Timeline 1",
			Start: 86400,
			End:   86519,
			Tracks: map[resolve.TrackType][][]string{
				resolve.TrackVideo: {{"A001.mov", "A002.mov"}},
				resolve.TrackAudio: {{"A001.mov"}},
			},
		}},
		Current: 1,
		Root: resolve.Folder{
			Name:  "Master",
			Clips: []string{"A001.mov", "A002.mov", "A003.mov"},
		},
		Mounted: []string{"/Volumes/Media"},
		Dirs:    map[string]resolve.Listing{},
		Files:   map[string]bool{},
		Comp:    true,
		Page:    "edit",
	}
}

func (h *Host) call(name string) {
	h.Calls = append(h.Calls, name)
}

// Called reports whether method name was called.
func (h *Host) Called(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Contains(h.Calls, name)
}

func (h *Host) Connected(context.Context) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.Offline
}

func (h *Host) Info() resolve.Info {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Offline {
		return resolve.Info{Error: "DaVinci Resolve is not running"}
	}
	return resolve.Info{Connected: true, Product: h.Product, Version: h.Version, ModuleDir: "/fake/Modules"}
}

func (h *Host) connected() error {
	if h.Offline {
		return resolve.ErrNotConnected
	}
	return nil
}

func (h *Host) project() error {
	if err := h.connected(); err != nil {
		return err
	}
	if h.Project == "" {
		return resolve.ErrNoProject
	}
	return nil
}

func (h *Host) mediaPool() error {
	if err := h.project(); err != nil {
		return err
	}
	if h.NoMediaPool {
		return resolve.ErrNoMediaPool
	}
	return nil
}

func (h *Host) currentFolder() (*resolve.Folder, error) {
	if err := h.mediaPool(); err != nil {
		return nil, err
	}
	if h.NoFolder {
		return nil, resolve.ErrNoFolder
	}
	f := &h.Root
	for _, i := range h.FolderPath {
		f = &f.Folders[i]
	}
	return f, nil
}

func (h *Host) timelineAt(op string, i int) (*Timeline, error) {
	if err := h.project(); err != nil {
		return nil, err
	}
	if i < 1 || i > len(h.TimelineList) {
		return nil, &resolve.BridgeError{Op: op, Message: fmt.Sprintf("Failed to get timeline at index %d.", i)}
	}
	return h.TimelineList[i-1], nil
}

func (h *Host) CurrentProject(context.Context) (*resolve.Project, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("CurrentProject")
	if err := h.project(); err != nil {
		return nil, err
	}
	p := &resolve.Project{Name: h.Project, TimelineCount: len(h.TimelineList)}
	if h.Current > 0 {
		p.CurrentTimeline = h.TimelineList[h.Current-1].Name
	}
	return p, nil
}

func (h *Host) Timelines(context.Context) ([]resolve.TimelineRef, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("Timelines")
	if err := h.project(); err != nil {
		return nil, err
	}
	refs := make([]resolve.TimelineRef, len(h.TimelineList))
	for i, t := range h.TimelineList {
		refs[i] = resolve.TimelineRef{Index: i + 1, Name: t.Name}
	}
	return refs, nil
}

func (h *Host) CreateProject(_ context.Context, name string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("CreateProject")
	if err := h.connected(); err != nil {
		return false, err
	}
	if slices.Contains(h.Projects, name) {
		return false, nil
	}
	h.Projects = append(h.Projects, name)
	h.open(name)
	return true, nil
}

func (h *Host) LoadProject(_ context.Context, name string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("LoadProject")
	if err := h.connected(); err != nil {
		return false, err
	}
	if !slices.Contains(h.Projects, name) {
		return false, nil
	}
	if name != h.Project {
		h.open(name)
	}
	return true, nil
}

// open switches to an empty project.
func (h *Host) open(name string) {
	h.Project = name
	h.TimelineList = nil
	h.Current = 0
	h.Root = resolve.Folder{Name: "Master"}
	h.FolderPath = nil
}

func (h *Host) SaveProject(context.Context) (string, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("SaveProject")
	if err := h.project(); err != nil {
		return "", false, err
	}
	return h.Project, true, nil
}

func (h *Host) CurrentTimeline(context.Context) (*resolve.Timeline, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("CurrentTimeline")
	if err := h.project(); err != nil {
		return nil, err
	}
	if h.Current == 0 {
		return nil, resolve.ErrNoTimeline
	}
	t := h.TimelineList[h.Current-1]
	return &resolve.Timeline{
		Name:     t.Name,
		Start:    t.Start,
		End:      t.End,
		Video:    len(t.Tracks[resolve.TrackVideo]),
		Audio:    len(t.Tracks[resolve.TrackAudio]),
		Subtitle: len(t.Tracks[resolve.TrackSubtitle]),
	}, nil
}

func (h *Host) hasTimeline(name string) bool {
	return slices.ContainsFunc(h.TimelineList, func(t *Timeline) bool { return t.Name == name })
}

func (h *Host) addTimeline(name string, clips []string) {
	t := &Timeline{Name: name, Start: 86400, End: 86400 + 24*len(clips) - 1, Tracks: map[resolve.TrackType][][]string{}}
	if len(clips) > 0 {
		t.Tracks[resolve.TrackVideo] = [][]string{clips}
		t.Tracks[resolve.TrackAudio] = [][]string{slices.Clone(clips)}
	}
	h.TimelineList = append(h.TimelineList, t)
	h.Current = len(h.TimelineList)
}

func (h *Host) CreateTimeline(_ context.Context, name string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("CreateTimeline")
	if err := h.mediaPool(); err != nil {
		return false, err
	}
	if h.hasTimeline(name) {
		return false, nil
	}
	h.addTimeline(name, nil)
	return true, nil
}

func (h *Host) SetCurrentTimeline(_ context.Context, index int) (string, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("SetCurrentTimeline")
	if err := h.project(); err != nil {
		return "", false, err
	}
	if index < 1 || index > len(h.TimelineList) {
		return "", false, nil
	}
	h.Current = index
	return h.TimelineList[index-1].Name, true, nil
}

func (h *Host) TrackCount(_ context.Context, timeline int, track resolve.TrackType) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("TrackCount")
	t, err := h.timelineAt("timeline.track_count", timeline)
	if err != nil {
		return 0, err
	}
	return len(t.Tracks[track]), nil
}

func (h *Host) TrackItems(_ context.Context, timeline int, track resolve.TrackType, trackIndex int) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("TrackItems")
	t, err := h.timelineAt("timeline.items", timeline)
	if err != nil {
		return nil, err
	}
	tracks := t.Tracks[track]
	if trackIndex < 1 || trackIndex > len(tracks) {
		return nil, nil
	}
	return slices.Clone(tracks[trackIndex-1]), nil
}

func (h *Host) AddFusionComp(_ context.Context, clip resolve.ClipRef) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("AddFusionComp")
	t, err := h.timelineAt("timeline.add_fusion_comp", clip.Timeline)
	if err != nil {
		return false, err
	}
	tracks := t.Tracks[clip.Track]
	if clip.TrackIndex < 1 || clip.TrackIndex > len(tracks) {
		return false, nil
	}
	if clip.Item < 1 || clip.Item > len(tracks[clip.TrackIndex-1]) {
		return false, nil
	}
	t.Comps = append(t.Comps, clip)
	return true, nil
}

func (h *Host) ImportTimeline(_ context.Context, path string) (string, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("ImportTimeline")
	if err := h.mediaPool(); err != nil {
		return "", false, err
	}
	name, ok := h.TimelineFiles[path]
	if !ok || h.hasTimeline(name) {
		return "", false, nil
	}
	h.addTimeline(name, nil)
	return name, true, nil
}

func (h *Host) FolderTree(context.Context) (*resolve.Folder, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("FolderTree")
	if err := h.mediaPool(); err != nil {
		return nil, err
	}
	root := cloneFolder(h.Root)
	return &root, nil
}

func (h *Host) CurrentFolder(context.Context) (*resolve.Folder, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("CurrentFolder")
	f, err := h.currentFolder()
	if err != nil {
		return nil, err
	}
	return &resolve.Folder{Name: f.Name, Clips: slices.Clone(f.Clips)}, nil
}

func cloneFolder(f resolve.Folder) resolve.Folder {
	out := resolve.Folder{Name: f.Name, Clips: slices.Clone(f.Clips)}
	for _, sub := range f.Folders {
		out.Folders = append(out.Folders, cloneFolder(sub))
	}
	return out
}

func (h *Host) AddFolder(_ context.Context, name string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("AddFolder")
	f, err := h.currentFolder()
	if err != nil {
		return false, err
	}
	for _, sub := range f.Folders {
		if sub.Name == name {
			return false, nil
		}
	}
	f.Folders = append(f.Folders, resolve.Folder{Name: name})
	return true, nil
}

func (h *Host) pick(f *resolve.Folder, clips []int) ([]string, bool) {
	out := make([]string, 0, len(clips))
	for _, i := range clips {
		if i < 1 || i > len(f.Clips) {
			return nil, false
		}
		out = append(out, f.Clips[i-1])
	}
	return out, len(out) > 0
}

func (h *Host) CreateTimelineFromClips(_ context.Context, name string, clips []int) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("CreateTimelineFromClips")
	f, err := h.currentFolder()
	if err != nil {
		return false, err
	}
	picked, ok := h.pick(f, clips)
	if !ok || h.hasTimeline(name) {
		return false, nil
	}
	h.addTimeline(name, picked)
	return true, nil
}

func (h *Host) AppendToTimeline(_ context.Context, clips []int) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("AppendToTimeline")
	f, err := h.currentFolder()
	if err != nil {
		return false, err
	}
	if h.Current == 0 {
		return false, nil
	}
	picked, ok := h.pick(f, clips)
	if !ok {
		return false, nil
	}
	t := h.TimelineList[h.Current-1]
	if len(t.Tracks[resolve.TrackVideo]) == 0 {
		t.Tracks[resolve.TrackVideo] = [][]string{nil}
	}
	t.Tracks[resolve.TrackVideo][0] = append(t.Tracks[resolve.TrackVideo][0], picked...)
	t.End += 24 * len(picked)
	return true, nil
}

func (h *Host) storage() error {
	if err := h.connected(); err != nil {
		return err
	}
	if h.NoStorage {
		return resolve.ErrNoMediaStorage
	}
	return nil
}

func (h *Host) Volumes(context.Context) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("Volumes")
	if err := h.storage(); err != nil {
		return nil, err
	}
	return slices.Clone(h.Mounted), nil
}

func (h *Host) Browse(_ context.Context, path string) (*resolve.Listing, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("Browse")
	if err := h.storage(); err != nil {
		return nil, err
	}
	l, ok := h.Dirs[path]
	if !ok {
		return &resolve.Listing{Path: path}, nil
	}
	l.Path = path
	return &l, nil
}

func (h *Host) ImportMedia(_ context.Context, paths []string) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("ImportMedia")
	if err := h.storage(); err != nil {
		return 0, err
	}
	f, err := h.currentFolder()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range paths {
		if !h.Files[p] {
			continue
		}
		h.Imported = append(h.Imported, p)
		f.Clips = append(f.Clips, p[strings.LastIndexAny(p, `/\`)+1:])
		n++
	}
	return n, nil
}

func (h *Host) comp() error {
	if err := h.connected(); err != nil {
		return err
	}
	if h.NoFusion {
		return resolve.ErrNoFusion
	}
	if !h.Comp {
		return resolve.ErrNoComp
	}
	return nil
}

func (h *Host) CurrentComp(context.Context) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("CurrentComp")
	if err := h.comp(); err != nil {
		return "", err
	}
	return "Composition1", nil
}

func (h *Host) AddTool(_ context.Context, toolType, name string, inputs map[string]any) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("AddTool")
	if err := h.comp(); err != nil {
		return "", err
	}
	if h.ToolTypes != nil && !slices.Contains(h.ToolTypes, toolType) {
		return "", nil
	}
	if name == "" {
		n := 1
		for _, node := range h.Nodes {
			if node.Type == toolType {
				n++
			}
		}
		name = fmt.Sprintf("%s%d", toolType, n)
	}
	h.Nodes = append(h.Nodes, Node{Type: toolType, Name: name, Inputs: inputs})
	return name, nil
}

func (h *Host) ConnectTool(_ context.Context, tool, input, from string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("ConnectTool")
	if err := h.comp(); err != nil {
		return false, err
	}
	found := func(name string) bool {
		return slices.ContainsFunc(h.Nodes, func(n Node) bool { return n.Name == name })
	}
	if !found(tool) || !found(from) {
		return false, nil
	}
	h.Links = append(h.Links, Link{Tool: tool, Input: input, From: from})
	return true, nil
}

func (h *Host) OpenPage(_ context.Context, page resolve.Page) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("OpenPage")
	if err := h.connected(); err != nil {
		return false, err
	}
	h.Page = string(page)
	return true, nil
}

func (h *Host) CurrentPage(context.Context) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("CurrentPage")
	if err := h.connected(); err != nil {
		return "", err
	}
	return h.Page, nil
}

func (h *Host) ExecuteLua(_ context.Context, script string) (string, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("ExecuteLua")
	if err := h.connected(); err != nil {
		return "", false, err
	}
	if h.NoFusion {
		return "", false, resolve.ErrNoFusion
	}
	if h.Lua == nil {
		return "", false, nil
	}
	return h.Lua(script)
}

func (h *Host) ExecutePython(_ context.Context, code string) (string, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.call("ExecutePython")
	if err := h.connected(); err != nil {
		return "", false, err
	}
	if h.Python == nil {
		return "", false, nil
	}
	return h.Python(code)
}

func (h *Host) Close() error { return nil }
