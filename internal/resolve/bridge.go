// bridge.go starts the bridge interpreter as a child process.
//
// The bridge script is embedded and passed with -c so there is nothing to
// install next to the binary. Candidate module directories go on the
// command line; RESOLVE_SCRIPT_API and RESOLVE_SCRIPT_LIB go in the
// environment because the vendor module reads them itself.

package resolve

import (
	"bufio"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"
)

//go:embed bridge.py
var bridgeSource string

// BridgeSource returns the embedded bridge script.
func BridgeSource() string { return bridgeSource }

// closeGrace is how long a bridge gets to exit after stdin closes.
const closeGrace = 2 * time.Second

// DialFunc starts a bridge and returns its request/response stream.
// Close must terminate the bridge.
type DialFunc func(ctx context.Context) (io.ReadWriteCloser, error)

// ProcessDialer returns a DialFunc that runs the embedded bridge with the
// configured interpreter.
func ProcessDialer(opts Options) DialFunc {
	return func(ctx context.Context) (io.ReadWriteCloser, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		args := append([]string{"-u", "-c", bridgeSource}, ModuleDirs(opts.ScriptAPI)...)
		cmd := exec.Command(opts.python(), args...)
		cmd.Env = bridgeEnv(opts)

		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("bridge stdin: %w", err)
		}
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return nil, fmt.Errorf("bridge stdout: %w", err)
		}
		stderr, err := cmd.StderrPipe()
		if err != nil {
			return nil, fmt.Errorf("bridge stderr: %w", err)
		}
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("start bridge with %s: %w", opts.python(), err)
		}

		p := &process{
			cmd:        cmd,
			stdin:      stdin,
			stdout:     stdout,
			stderrDone: make(chan struct{}),
		}
		go p.drainStderr(stderr, opts.logger())
		return p, nil
	}
}

// bridgeEnv returns the parent environment plus the vendor variables.
func bridgeEnv(opts Options) []string {
	env := os.Environ()
	if opts.ScriptAPI != "" {
		env = append(env, EnvScriptAPI+"="+opts.ScriptAPI)
	}
	if lib := ScriptLib(opts.ScriptLib); lib != "" {
		env = append(env, EnvScriptLib+"="+lib)
	}
	return append(env, "PYTHONUNBUFFERED=1", "PYTHONIOENCODING=utf-8")
}

// process adapts a running bridge to io.ReadWriteCloser.
type process struct {
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stdout     io.ReadCloser
	stderrDone chan struct{}
	closeOnce  sync.Once
	closeErr   error
}

func (p *process) Read(b []byte) (int, error)  { return p.stdout.Read(b) }
func (p *process) Write(b []byte) (int, error) { return p.stdin.Write(b) }

// Close ends the bridge by closing its stdin, killing it if it has not
// exited within closeGrace.
func (p *process) Close() error {
	p.closeOnce.Do(func() {
		_ = p.stdin.Close()
		select {
		case <-p.stderrDone:
		case <-time.After(closeGrace):
			_ = p.cmd.Process.Kill()
			<-p.stderrDone
		}
		err := p.cmd.Wait()
		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			p.closeErr = err
		}
	})
	return p.closeErr
}

// drainStderr forwards the bridge's stderr to the logger line by line.
func (p *process) drainStderr(r io.Reader, logger *slog.Logger) {
	defer close(p.stderrDone)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		logger.Debug("bridge", "line", sc.Text())
	}
}
