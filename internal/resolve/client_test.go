package resolve

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeBridge speaks the bridge protocol over in-memory pipes.
type fakeBridge struct {
	hello   hello
	handle  func(req request) response
	dials   atomic.Int32
	mu      sync.Mutex
	seen    []request
	oneShot bool // hang up after the first response
}

func connectedHello() hello {
	return hello{Hello: true, Connected: true, Product: "DaVinci Resolve", Version: "19.0.0", ModuleDir: "/opt/resolve/Developer/Scripting/Modules"}
}

func (fb *fakeBridge) requests() []request {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]request(nil), fb.seen...)
}

func (fb *fakeBridge) dial(ctx context.Context) (io.ReadWriteCloser, error) {
	fb.dials.Add(1)
	reqR, reqW := io.Pipe()
	respR, respW := io.Pipe()
	go fb.serve(reqR, respW)
	return &pipeConn{r: respR, w: reqW}, nil
}

func (fb *fakeBridge) serve(in *io.PipeReader, out *io.PipeWriter) {
	defer out.Close()
	defer in.Close()

	enc := json.NewEncoder(out)
	if err := enc.Encode(fb.hello); err != nil {
		return
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		var req request
		if err := json.Unmarshal(sc.Bytes(), &req); err != nil {
			return
		}
		fb.mu.Lock()
		fb.seen = append(fb.seen, req)
		fb.mu.Unlock()

		resp := fb.handle(req)
		resp.ID = req.ID
		if err := enc.Encode(resp); err != nil {
			return
		}
		if fb.oneShot {
			return
		}
	}
}

type pipeConn struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (p *pipeConn) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p *pipeConn) Write(b []byte) (int, error) { return p.w.Write(b) }
func (p *pipeConn) Close() error {
	p.w.Close()
	return p.r.Close()
}

func result(v any) response {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return response{Result: b}
}

func failure(code, msg string) response {
	return response{Error: &wireError{Code: code, Message: msg}}
}

func newTestClient(t *testing.T, fb *fakeBridge, opts Options) *Client {
	t.Helper()
	cl := NewWithDialer(opts, fb.dial)
	t.Cleanup(func() { _ = cl.Close() })
	return cl
}

func TestClient_CurrentProject(t *testing.T) {
	fb := &fakeBridge{
		hello: connectedHello(),
		handle: func(req request) response {
			return result(Project{Name: "Trailer", TimelineCount: 2, CurrentTimeline: "Main"})
		},
	}
	cl := newTestClient(t, fb, Options{})

	p, err := cl.CurrentProject(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Trailer", p.Name)
	assert.Equal(t, 2, p.TimelineCount)
	assert.Equal(t, "Main", p.CurrentTimeline)

	info := cl.Info()
	assert.True(t, info.Connected)
	assert.Equal(t, "19.0.0", info.Version)

	reqs := fb.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "project.current", reqs[0].Op)
}

func TestClient_RequestArgs(t *testing.T) {
	fb := &fakeBridge{
		hello:  connectedHello(),
		handle: func(req request) response { return result(true) },
	}
	cl := newTestClient(t, fb, Options{})
	ctx := context.Background()

	ok, err := cl.AddFusionComp(ctx, ClipRef{Timeline: 1, Track: TrackVideo, TrackIndex: 2, Item: 3})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cl.CreateTimelineFromClips(ctx, "Selects", []int{1, 3})
	require.NoError(t, err)
	assert.True(t, ok)

	reqs := fb.requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "timeline.add_fusion_comp", reqs[0].Op)
	assert.Equal(t, "video", reqs[0].Args["track"])
	assert.EqualValues(t, 2, reqs[0].Args["track_index"])
	assert.EqualValues(t, 3, reqs[0].Args["item"])
	assert.Equal(t, "mediapool.timeline_from_clips", reqs[1].Op)
	assert.Equal(t, []any{1.0, 3.0}, reqs[1].Args["clips"])
}

func TestClient_GuardErrors(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"no_project", ErrNoProject},
		{"no_timeline", ErrNoTimeline},
		{"no_media_pool", ErrNoMediaPool},
		{"no_folder", ErrNoFolder},
		{"no_media_storage", ErrNoMediaStorage},
		{"no_fusion", ErrNoFusion},
		{"no_comp", ErrNoComp},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			fb := &fakeBridge{
				hello:  connectedHello(),
				handle: func(req request) response { return failure(tc.code, "guard") },
			}
			cl := newTestClient(t, fb, Options{})

			_, err := cl.CurrentTimeline(context.Background())
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClient_BridgeException(t *testing.T) {
	fb := &fakeBridge{
		hello:  connectedHello(),
		handle: func(req request) response { return failure("exception", "NameError: name 'x' is not defined") },
	}
	cl := newTestClient(t, fb, Options{})

	_, _, err := cl.ExecutePython(context.Background(), "x")
	var be *BridgeError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "script.python", be.Op)
	assert.Contains(t, be.Message, "NameError")
}

func TestClient_UnknownCodeKeepsMessage(t *testing.T) {
	fb := &fakeBridge{
		hello:  connectedHello(),
		handle: func(req request) response { return failure("bad_timeline", "Failed to get timeline at index 3.") },
	}
	cl := newTestClient(t, fb, Options{})

	_, err := cl.TrackCount(context.Background(), 3, TrackVideo)
	assert.NotErrorIs(t, err, ErrNoTimeline)
	var be *BridgeError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "timeline.track_count", be.Op)
	assert.Equal(t, "Failed to get timeline at index 3.", be.Message)
}

func TestClient_ScriptResult(t *testing.T) {
	fb := &fakeBridge{
		hello: connectedHello(),
		handle: func(req request) response {
			if req.Op == "script.lua" {
				return result(map[string]any{"result": nil})
			}
			return result(map[string]any{"result": "42"})
		},
	}
	cl := newTestClient(t, fb, Options{})
	ctx := context.Background()

	_, has, err := cl.ExecuteLua(ctx, "print(1)")
	require.NoError(t, err)
	assert.False(t, has)

	out, has, err := cl.ExecutePython(ctx, "result = 6 * 7")
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, "42", out)
}

func TestClient_NotRunning(t *testing.T) {
	h := hello{Hello: true, Connected: false, Error: "DaVinci Resolve is not running or not accessible"}
	fb := &fakeBridge{hello: h, handle: func(req request) response { return result(nil) }}
	cl := newTestClient(t, fb, Options{RetryInterval: time.Hour})
	ctx := context.Background()

	assert.False(t, cl.Connected(ctx))
	_, err := cl.Volumes(ctx)
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Contains(t, err.Error(), "not running")

	// the retry interval suppresses a second dial
	assert.Equal(t, int32(1), fb.dials.Load())
	assert.Equal(t, h.Error, cl.Info().Error)
	assert.False(t, cl.Info().Connected)
}

func TestClient_RedialAfterBridgeExit(t *testing.T) {
	fb := &fakeBridge{
		hello:   connectedHello(),
		handle:  func(req request) response { return result([]string{"/Volumes/Media"}) },
		oneShot: true,
	}
	cl := newTestClient(t, fb, Options{RetryInterval: -1})
	ctx := context.Background()

	v, err := cl.Volumes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/Volumes/Media"}, v)

	// the first bridge hung up; wait until the reader notices
	require.Eventually(t, func() bool {
		cl.mu.Lock()
		defer cl.mu.Unlock()
		return cl.conn == nil || cl.conn.closed()
	}, time.Second, 5*time.Millisecond)

	v, err = cl.Volumes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/Volumes/Media"}, v)
	assert.Equal(t, int32(2), fb.dials.Load())
}

func TestClient_ContextCancel(t *testing.T) {
	release := make(chan struct{})
	fb := &fakeBridge{
		hello: connectedHello(),
		handle: func(req request) response {
			if req.Op == "page.current" {
				<-release
				return result("edit")
			}
			return result("color")
		},
	}
	cl := newTestClient(t, fb, Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := cl.CurrentPage(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)

	// the late response for the abandoned call is dropped, not delivered here
	ok, err := cl.OpenPage(context.Background(), PageColor)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClient_DialError(t *testing.T) {
	cl := NewWithDialer(Options{RetryInterval: time.Hour}, func(ctx context.Context) (io.ReadWriteCloser, error) {
		return nil, errors.New("exec: \"python3\": executable file not found in $PATH")
	})
	defer cl.Close()

	_, err := cl.CurrentProject(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Contains(t, cl.Info().Error, "python3")
}

func TestClient_MalformedHello(t *testing.T) {
	fb := &fakeBridge{hello: hello{}, handle: func(req request) response { return result(nil) }}
	cl := newTestClient(t, fb, Options{})

	assert.False(t, cl.Connected(context.Background()))
	assert.Contains(t, cl.Info().Error, "malformed hello")
}
