// client.go implements the request/response side of the bridge protocol.
//
// One reader goroutine per bridge matches responses to pending calls by id.
// The bridge answers in order, but a call abandoned through its context
// still gets a response later; matching by id lets the reader drop it.
//
// The connection is dialled lazily and re-dialled after it is lost, at most
// once per RetryInterval, because the host application is often started
// after the server.

package resolve

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Defaults applied when Options leaves a field zero.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultRetryInterval = 5 * time.Second
	DefaultHelloTimeout  = 20 * time.Second
)

// maxLine bounds a single response line; folder trees of large projects
// and script results can be big.
const maxLine = 16 * 1024 * 1024

// Options configures a Client.
type Options struct {
	Python        string        // interpreter; python3 (python on Windows) if empty
	ScriptAPI     string        // scripting directory override
	ScriptLib     string        // fusionscript library override
	Timeout       time.Duration // per call; DefaultTimeout if zero, none if negative
	RetryInterval time.Duration // minimum gap between dials; DefaultRetryInterval if zero
	HelloTimeout  time.Duration // wait for the bridge hello; DefaultHelloTimeout if zero
	Logger        *slog.Logger
}

func (o Options) python() string {
	if o.Python != "" {
		return o.Python
	}
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) timeout() time.Duration {
	if o.Timeout == 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

func (o Options) retryInterval() time.Duration {
	if o.RetryInterval == 0 {
		return DefaultRetryInterval
	}
	if o.RetryInterval < 0 {
		return 0
	}
	return o.RetryInterval
}

func (o Options) helloTimeout() time.Duration {
	if o.HelloTimeout <= 0 {
		return DefaultHelloTimeout
	}
	return o.HelloTimeout
}

// Client talks to the host application through a bridge. It implements Host
// and is safe for concurrent use; the bridge itself handles one request at
// a time.
type Client struct {
	opts Options
	dial DialFunc
	log  *slog.Logger

	mu       sync.Mutex
	conn     *conn
	info     Info
	lastDial time.Time

	nextID atomic.Int64
}

var _ Host = (*Client)(nil)

// New returns a Client that starts the embedded bridge on first use.
func New(opts Options) *Client {
	return NewWithDialer(opts, ProcessDialer(opts))
}

// NewWithDialer returns a Client using dial to start bridges.
func NewWithDialer(opts Options, dial DialFunc) *Client {
	return &Client{opts: opts, dial: dial, log: opts.logger()}
}

// Connected reports whether the host is reachable, dialling if needed.
func (cl *Client) Connected(ctx context.Context) bool {
	_, err := cl.connect(ctx)
	return err == nil
}

// Info returns the snapshot from the most recent dial.
func (cl *Client) Info() Info {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.info
}

// Close terminates the bridge, if one is running.
func (cl *Client) Close() error {
	cl.mu.Lock()
	c := cl.conn
	cl.conn = nil
	cl.info.Connected = false
	cl.mu.Unlock()

	if c == nil {
		return nil
	}
	return c.close()
}

// connect returns the live connection, dialling a new bridge when there is
// none and the retry interval has passed.
func (cl *Client) connect(ctx context.Context) (*conn, error) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.conn != nil {
		if !cl.conn.closed() {
			return cl.conn, nil
		}
		_ = cl.conn.close()
		cl.conn = nil
		cl.info.Connected = false
	}

	if !cl.lastDial.IsZero() && time.Since(cl.lastDial) < cl.opts.retryInterval() {
		return nil, cl.notConnected()
	}
	cl.lastDial = time.Now()

	rwc, err := cl.dial(ctx)
	if err != nil {
		cl.info = Info{Error: err.Error()}
		cl.log.Warn("bridge dial failed", "error", err)
		return nil, cl.notConnected()
	}

	helloCtx, cancel := context.WithTimeout(ctx, cl.opts.helloTimeout())
	defer cancel()
	c, h, err := openConn(helloCtx, rwc, cl.log)
	if err != nil {
		cl.info = Info{Error: err.Error()}
		cl.log.Warn("bridge handshake failed", "error", err)
		return nil, cl.notConnected()
	}

	cl.info = Info{
		Connected: h.Connected,
		Product:   h.Product,
		Version:   h.Version,
		ModuleDir: h.ModuleDir,
		Error:     h.Error,
	}
	if !h.Connected {
		_ = c.close()
		cl.log.Warn("DaVinci Resolve not reachable", "error", h.Error)
		return nil, cl.notConnected()
	}

	cl.log.Info("connected to DaVinci Resolve", "product", h.Product, "version", h.Version, "module_dir", h.ModuleDir)
	cl.conn = c
	return c, nil
}

// notConnected wraps ErrNotConnected with the last known reason.
// Callers must hold cl.mu.
func (cl *Client) notConnected() error {
	if cl.info.Error == "" {
		return ErrNotConnected
	}
	return fmt.Errorf("%w: %s", ErrNotConnected, cl.info.Error)
}

// drop forgets c if it is still the live connection.
func (cl *Client) drop(c *conn, reason error) {
	cl.mu.Lock()
	if cl.conn == c {
		cl.conn = nil
		cl.info.Connected = false
		cl.info.Error = reason.Error()
	}
	cl.mu.Unlock()
	_ = c.close()
}

// call sends op to the bridge and decodes the result into out (if non-nil).
func (cl *Client) call(ctx context.Context, op string, args map[string]any, out any) error {
	c, err := cl.connect(ctx)
	if err != nil {
		return err
	}

	if d := cl.opts.timeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	resp, err := c.roundTrip(ctx, cl.nextID.Add(1), op, args)
	if err != nil {
		if errors.Is(err, ErrBridgeClosed) {
			cl.drop(c, err)
			return fmt.Errorf("%s: %w: %w", op, ErrNotConnected, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if resp.Error != nil {
		err := resp.Error.toError(op)
		if errors.Is(err, ErrNotConnected) {
			cl.drop(c, err)
		}
		return err
	}

	if out == nil || len(resp.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", op, err)
	}
	return nil
}

// request is one line sent to the bridge.
type request struct {
	ID   int64          `json:"id"`
	Op   string         `json:"op"`
	Args map[string]any `json:"args,omitempty"`
}

// response is one line received from the bridge.
type response struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *wireError      `json:"error"`
}

// hello is the first line a bridge prints.
type hello struct {
	Hello     bool   `json:"hello"`
	Connected bool   `json:"connected"`
	Product   string `json:"product"`
	Version   string `json:"version"`
	ModuleDir string `json:"module_dir"`
	Error     string `json:"error"`
}

// conn is one running bridge.
type conn struct {
	rwc io.ReadWriteCloser
	log *slog.Logger

	wmu sync.Mutex // serialises request lines

	pmu     sync.Mutex
	pending map[int64]chan response
	err     error

	done       chan struct{} // closed when the reader stops
	readerDone chan struct{}
	closeOnce  sync.Once
}

// openConn reads the bridge hello and starts the reader.
func openConn(ctx context.Context, rwc io.ReadWriteCloser, log *slog.Logger) (*conn, hello, error) {
	sc := bufio.NewScanner(rwc)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	type result struct {
		h   hello
		err error
	}
	ch := make(chan result, 1)
	go func() {
		var r result
		switch {
		case sc.Scan():
			if err := json.Unmarshal(sc.Bytes(), &r.h); err != nil {
				r.err = fmt.Errorf("malformed hello: %w", err)
			} else if !r.h.Hello {
				r.err = errors.New("malformed hello: missing hello flag")
			}
		case sc.Err() != nil:
			r.err = fmt.Errorf("read hello: %w", sc.Err())
		default:
			r.err = fmt.Errorf("read hello: %w", io.ErrUnexpectedEOF)
		}
		ch <- r
	}()

	var r result
	select {
	case r = <-ch:
	case <-ctx.Done():
		_ = rwc.Close()
		<-ch
		return nil, hello{}, fmt.Errorf("waiting for bridge: %w", ctx.Err())
	}
	if r.err != nil {
		_ = rwc.Close()
		return nil, hello{}, r.err
	}

	c := &conn{
		rwc:        rwc,
		log:        log,
		pending:    make(map[int64]chan response),
		done:       make(chan struct{}),
		readerDone: make(chan struct{}),
	}
	go c.readLoop(sc)
	return c, r.h, nil
}

func (c *conn) readLoop(sc *bufio.Scanner) {
	defer close(c.readerDone)

	for sc.Scan() {
		var resp response
		if err := json.Unmarshal(sc.Bytes(), &resp); err != nil {
			c.log.Warn("bridge sent malformed response", "error", err)
			continue
		}
		c.pmu.Lock()
		ch, ok := c.pending[resp.ID]
		delete(c.pending, resp.ID)
		c.pmu.Unlock()
		if ok {
			ch <- resp
		}
	}

	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	c.pmu.Lock()
	c.err = fmt.Errorf("%w: %w", ErrBridgeClosed, err)
	c.pending = nil
	c.pmu.Unlock()
	close(c.done)
}

func (c *conn) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// roundTrip writes one request and waits for its response.
func (c *conn) roundTrip(ctx context.Context, id int64, op string, args map[string]any) (response, error) {
	line, err := json.Marshal(request{ID: id, Op: op, Args: args})
	if err != nil {
		return response{}, fmt.Errorf("encode request: %w", err)
	}
	line = append(line, '\n')

	ch := make(chan response, 1)
	c.pmu.Lock()
	if c.pending == nil {
		err := c.err
		c.pmu.Unlock()
		return response{}, err
	}
	c.pending[id] = ch
	c.pmu.Unlock()

	c.wmu.Lock()
	_, err = c.rwc.Write(line)
	c.wmu.Unlock()
	if err != nil {
		c.forget(id)
		return response{}, fmt.Errorf("%w: %w", ErrBridgeClosed, err)
	}

	select {
	case resp := <-ch:
		return resp, nil
	case <-c.done:
		c.pmu.Lock()
		err := c.err
		c.pmu.Unlock()
		return response{}, err
	case <-ctx.Done():
		c.forget(id)
		return response{}, ctx.Err()
	}
}

func (c *conn) forget(id int64) {
	c.pmu.Lock()
	if c.pending != nil {
		delete(c.pending, id)
	}
	c.pmu.Unlock()
}

// close terminates the bridge and waits for the reader to stop.
func (c *conn) close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.rwc.Close()
		<-c.readerDone
	})
	return err
}
