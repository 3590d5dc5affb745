// Package progress provides CLI progress indicators. Output goes to stderr
// to keep stdout clean for piping, and nothing is drawn unless stderr is a
// terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

const tick = 100 * time.Millisecond

// Spinner shows that a slow call is in flight. Starting the bridge and
// waiting for DaVinci Resolve to answer often takes several seconds.
type Spinner struct {
	w      io.Writer
	label  string
	isTTY  bool
	frames []string

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return newSpinner(os.Stderr, label, term.IsTerminal(int(os.Stderr.Fd())))
}

func newSpinner(w io.Writer, label string, tty bool) *Spinner {
	return &Spinner{
		w:      w,
		label:  label,
		isTTY:  tty,
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start draws the spinner and animates it until Stop.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isTTY || s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	fmt.Fprintf(s.w, "%s %s...", s.frames[0], s.label)
	go s.run(s.stop, s.done)
}

func (s *Spinner) run(stop, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(tick)
	defer t.Stop()
	for frame := 0; ; {
		select {
		case <-stop:
			return
		case <-t.C:
			frame = (frame + 1) % len(s.frames)
			fmt.Fprintf(s.w, "\r%s %s...", s.frames[frame], s.label)
		}
	}
}

// Stop clears the spinner line. Safe to call when not started.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop, s.done = nil, nil
	fmt.Fprintf(s.w, "\r%s\r", "                                        ")
}
