package resolve

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModule stands in for the vendor module. Timeline track items come
// back as a 1-keyed dict the way older releases return them; there is no
// media storage and no active composition.
const fakeModule = `
class Item(object):
    def __init__(self, name):
        self.name = name
    def GetName(self):
        return self.name
    def AddFusionComp(self):
        return True

class Timeline(object):
    def GetName(self):
        return "Timeline 1"
    def GetStartFrame(self):
        return 86400
    def GetEndFrame(self):
        return 86519
    def GetTrackCount(self, track):
        return 1 if track == "video" else 0
    def GetItemListInTrack(self, track, index):
        return {2: Item("A002.mov"), 1: Item("A001.mov")}

class Folder(object):
    def __init__(self, name, subs=(), clips=()):
        self.name, self.subs, self.clips = name, list(subs), list(clips)
    def GetName(self):
        return self.name
    def GetSubFolderList(self):
        return self.subs
    def GetClipList(self):
        return [Item(c) for c in self.clips]

ROOT = Folder("Master", [Folder("Selects")], ["A001.mov"])

class MediaPool(object):
    def GetRootFolder(self):
        return ROOT
    def GetCurrentFolder(self):
        return ROOT

class Project(object):
    def GetName(self):
        return "Demo"
    def GetTimelineCount(self):
        return 1
    def GetTimelineByIndex(self, i):
        return Timeline() if i == 1 else None
    def GetCurrentTimeline(self):
        return Timeline()
    def GetMediaPool(self):
        return MediaPool()

class ProjectManager(object):
    def GetCurrentProject(self):
        return Project()

class Fusion(object):
    def GetCurrentComp(self):
        return None
    def Execute(self, script):
        return None

class Resolve(object):
    page = "edit"
    def GetProductName(self):
        return "DaVinci Resolve"
    def GetVersionString(self):
        return "19.0.0"
    def GetProjectManager(self):
        return ProjectManager()
    def GetMediaStorage(self):
        return None
    def Fusion(self):
        return Fusion()
    def OpenPage(self, page):
        Resolve.page = page
        return True
    def GetCurrentPage(self):
        return Resolve.page

def scriptapp(name):
    return Resolve()
`

// bridgeClient runs the embedded bridge against module installed as the
// vendor module under a temporary scripting directory. dials counts bridge
// starts.
func bridgeClient(t *testing.T, module string) (*Client, *atomic.Int32) {
	t.Helper()
	opts := Options{RetryInterval: -1}
	if _, err := exec.LookPath(opts.python()); err != nil {
		t.Skipf("%s not on PATH", opts.python())
	}

	api := t.TempDir()
	dir := filepath.Join(api, "Modules")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ModuleName+".py"), []byte(module), 0o644))
	opts.ScriptAPI = api

	var dials atomic.Int32
	dial := ProcessDialer(opts)
	cl := NewWithDialer(opts, func(ctx context.Context) (io.ReadWriteCloser, error) {
		dials.Add(1)
		return dial(ctx)
	})
	t.Cleanup(func() { _ = cl.Close() })
	return cl, &dials
}

func TestBridge_Hello(t *testing.T) {
	cl, _ := bridgeClient(t, fakeModule)

	require.True(t, cl.Connected(context.Background()))
	info := cl.Info()
	assert.Equal(t, "DaVinci Resolve", info.Product)
	assert.Equal(t, "19.0.0", info.Version)
	assert.Equal(t, "Modules", filepath.Base(info.ModuleDir))
}

func TestBridge_Ops(t *testing.T) {
	cl, _ := bridgeClient(t, fakeModule)
	ctx := context.Background()

	p, err := cl.CurrentProject(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Project{Name: "Demo", TimelineCount: 1, CurrentTimeline: "Timeline 1"}, p)

	items, err := cl.TrackItems(ctx, 1, TrackVideo, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A001.mov", "A002.mov"}, items)

	tree, err := cl.FolderTree(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Master", tree.Name)
	require.Len(t, tree.Folders, 1)
	assert.Equal(t, "Selects", tree.Folders[0].Name)

	ok, err := cl.OpenPage(ctx, PageColor)
	require.NoError(t, err)
	assert.True(t, ok)
	page, err := cl.CurrentPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "color", page)
}

func TestBridge_Guards(t *testing.T) {
	cl, _ := bridgeClient(t, fakeModule)
	ctx := context.Background()

	_, err := cl.Volumes(ctx)
	assert.ErrorIs(t, err, ErrNoMediaStorage)

	_, err = cl.CurrentComp(ctx)
	assert.ErrorIs(t, err, ErrNoComp)

	_, err = cl.TrackCount(ctx, 2, TrackVideo)
	var be *BridgeError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "Failed to get timeline at index 2.", be.Message)

	err = cl.call(ctx, "timeline.delete", nil, nil)
	require.ErrorAs(t, err, &be)
	assert.Contains(t, be.Message, "unknown op")
}

func TestBridge_Python(t *testing.T) {
	cl, _ := bridgeClient(t, fakeModule)
	ctx := context.Background()

	out, has, err := cl.ExecutePython(ctx, "result = current_project.GetName()")
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, "Demo", out)

	out, has, err = cl.ExecutePython(ctx, "print('hi')")
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, "hi", out)

	_, has, err = cl.ExecutePython(ctx, "x = 1")
	require.NoError(t, err)
	assert.False(t, has)

	_, _, err = cl.ExecutePython(ctx, "undefined_name")
	var be *BridgeError
	require.ErrorAs(t, err, &be)
	assert.Contains(t, be.Message, "NameError")
}

func TestBridge_ScriptExitKeepsBridge(t *testing.T) {
	cl, dials := bridgeClient(t, fakeModule)
	ctx := context.Background()

	for _, code := range []string{"import sys; sys.exit(1)", "raise KeyboardInterrupt"} {
		_, _, err := cl.ExecutePython(ctx, code)
		var be *BridgeError
		require.ErrorAs(t, err, &be, code)
		assert.NotErrorIs(t, err, ErrNotConnected)
	}

	p, err := cl.CurrentProject(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Demo", p.Name)
	assert.Equal(t, int32(1), dials.Load())
}

func TestBridge_NotRunning(t *testing.T) {
	cl, _ := bridgeClient(t, "def scriptapp(name):\n    return None\n")
	ctx := context.Background()

	assert.False(t, cl.Connected(ctx))
	assert.Contains(t, cl.Info().Error, "not running")

	_, err := cl.CurrentProject(ctx)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestBridge_MissingModule(t *testing.T) {
	opts := Options{RetryInterval: time.Hour}
	if _, err := exec.LookPath(opts.python()); err != nil {
		t.Skipf("%s not on PATH", opts.python())
	}
	stubEnv(t, nil)
	opts.ScriptAPI = t.TempDir()
	cl := New(opts)
	defer cl.Close()

	assert.False(t, cl.Connected(context.Background()))
	assert.Contains(t, cl.Info().Error, "could not import "+ModuleName)
}
