// ops.go maps each Host method onto one bridge op.

package resolve

import (
	"context"
)

// okName is the result shape of ops that report a name and a success flag.
type okName struct {
	Name string `json:"name"`
	OK   bool   `json:"ok"`
}

// scriptResult is the result shape of the scripting ops; Result is null
// when the script produced nothing.
type scriptResult struct {
	Result *string `json:"result"`
}

func (cl *Client) CurrentProject(ctx context.Context) (*Project, error) {
	var p Project
	if err := cl.call(ctx, "project.current", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (cl *Client) Timelines(ctx context.Context) ([]TimelineRef, error) {
	var refs []TimelineRef
	if err := cl.call(ctx, "project.timelines", nil, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func (cl *Client) CreateProject(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := cl.call(ctx, "project.create", map[string]any{"name": name}, &ok)
	return ok, err
}

func (cl *Client) LoadProject(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := cl.call(ctx, "project.load", map[string]any{"name": name}, &ok)
	return ok, err
}

func (cl *Client) SaveProject(ctx context.Context) (string, bool, error) {
	var r okName
	err := cl.call(ctx, "project.save", nil, &r)
	return r.Name, r.OK, err
}

func (cl *Client) CurrentTimeline(ctx context.Context) (*Timeline, error) {
	var t Timeline
	if err := cl.call(ctx, "timeline.current", nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (cl *Client) CreateTimeline(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := cl.call(ctx, "timeline.create", map[string]any{"name": name}, &ok)
	return ok, err
}

func (cl *Client) SetCurrentTimeline(ctx context.Context, index int) (string, bool, error) {
	var r okName
	err := cl.call(ctx, "timeline.set_current", map[string]any{"index": index}, &r)
	return r.Name, r.OK, err
}

func (cl *Client) TrackCount(ctx context.Context, timeline int, track TrackType) (int, error) {
	var n int
	err := cl.call(ctx, "timeline.track_count", map[string]any{
		"timeline": timeline,
		"track":    string(track),
	}, &n)
	return n, err
}

func (cl *Client) TrackItems(ctx context.Context, timeline int, track TrackType, trackIndex int) ([]string, error) {
	var items []string
	err := cl.call(ctx, "timeline.items", map[string]any{
		"timeline":    timeline,
		"track":       string(track),
		"track_index": trackIndex,
	}, &items)
	return items, err
}

func (cl *Client) AddFusionComp(ctx context.Context, clip ClipRef) (bool, error) {
	var ok bool
	err := cl.call(ctx, "timeline.add_fusion_comp", map[string]any{
		"timeline":    clip.Timeline,
		"track":       string(clip.Track),
		"track_index": clip.TrackIndex,
		"item":        clip.Item,
	}, &ok)
	return ok, err
}

func (cl *Client) ImportTimeline(ctx context.Context, path string) (string, bool, error) {
	var r okName
	err := cl.call(ctx, "timeline.import", map[string]any{"path": path}, &r)
	return r.Name, r.OK, err
}

func (cl *Client) FolderTree(ctx context.Context) (*Folder, error) {
	var f Folder
	if err := cl.call(ctx, "mediapool.tree", nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (cl *Client) CurrentFolder(ctx context.Context) (*Folder, error) {
	var f Folder
	if err := cl.call(ctx, "mediapool.current", nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (cl *Client) AddFolder(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := cl.call(ctx, "mediapool.add_folder", map[string]any{"name": name}, &ok)
	return ok, err
}

func (cl *Client) CreateTimelineFromClips(ctx context.Context, name string, clips []int) (bool, error) {
	var ok bool
	err := cl.call(ctx, "mediapool.timeline_from_clips", map[string]any{
		"name":  name,
		"clips": clips,
	}, &ok)
	return ok, err
}

func (cl *Client) AppendToTimeline(ctx context.Context, clips []int) (bool, error) {
	var ok bool
	err := cl.call(ctx, "mediapool.append", map[string]any{"clips": clips}, &ok)
	return ok, err
}

func (cl *Client) Volumes(ctx context.Context) ([]string, error) {
	var v []string
	err := cl.call(ctx, "storage.volumes", nil, &v)
	return v, err
}

func (cl *Client) Browse(ctx context.Context, path string) (*Listing, error) {
	var l Listing
	if err := cl.call(ctx, "storage.browse", map[string]any{"path": path}, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (cl *Client) ImportMedia(ctx context.Context, paths []string) (int, error) {
	var n int
	err := cl.call(ctx, "storage.import", map[string]any{"paths": paths}, &n)
	return n, err
}

func (cl *Client) CurrentComp(ctx context.Context) (string, error) {
	var name string
	err := cl.call(ctx, "fusion.current_comp", nil, &name)
	return name, err
}

func (cl *Client) AddTool(ctx context.Context, toolType, name string, inputs map[string]any) (string, error) {
	args := map[string]any{"type": toolType}
	if name != "" {
		args["name"] = name
	}
	if len(inputs) > 0 {
		args["inputs"] = inputs
	}
	var created string
	err := cl.call(ctx, "fusion.add_tool", args, &created)
	return created, err
}

func (cl *Client) ConnectTool(ctx context.Context, tool, input, from string) (bool, error) {
	var ok bool
	err := cl.call(ctx, "fusion.connect", map[string]any{
		"tool":  tool,
		"input": input,
		"from":  from,
	}, &ok)
	return ok, err
}

func (cl *Client) OpenPage(ctx context.Context, page Page) (bool, error) {
	var ok bool
	err := cl.call(ctx, "page.open", map[string]any{"page": string(page)}, &ok)
	return ok, err
}

func (cl *Client) CurrentPage(ctx context.Context) (string, error) {
	var page string
	err := cl.call(ctx, "page.current", nil, &page)
	return page, err
}

func (cl *Client) ExecuteLua(ctx context.Context, script string) (string, bool, error) {
	return cl.script(ctx, "script.lua", map[string]any{"script": script})
}

func (cl *Client) ExecutePython(ctx context.Context, code string) (string, bool, error) {
	return cl.script(ctx, "script.python", map[string]any{"code": code})
}

func (cl *Client) script(ctx context.Context, op string, args map[string]any) (string, bool, error) {
	var r scriptResult
	if err := cl.call(ctx, op, args, &r); err != nil {
		return "", false, err
	}
	if r.Result == nil {
		return "", false, nil
	}
	return *r.Result, true, nil
}
