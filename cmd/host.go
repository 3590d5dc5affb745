/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// host.go provides helpers shared by commands that call DaVinci Resolve.

package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/resolvemcp/internal/format"
	"github.com/jpl-au/resolvemcp/internal/progress"
	"github.com/jpl-au/resolvemcp/internal/validate"
)

// ErrFailed is returned when the host ran an operation but reported failure.
var ErrFailed = errors.New("operation failed")

// hostError presents a host failure with the same wording the MCP server
// uses, without the "Error: " prefix cobra adds itself.
type hostError struct {
	err error
}

func (e hostError) Error() string {
	return strings.TrimPrefix(format.Message(e.err), "Error: ")
}

func (e hostError) Unwrap() error { return e.err }

// HostError converts err from a host call into the error a command returns.
func HostError(err error) error {
	return PrintJSONError(NewHostError(err))
}

// NewHostError is HostError without printing, for helpers whose caller
// decides how to report.
func NewHostError(err error) error {
	if err == nil {
		return nil
	}
	return hostError{err: err}
}

// Invalid converts a validation error into the error a command returns,
// without the sentinel prefix.
func Invalid(err error) error {
	return PrintJSONError(NewInvalidError(err))
}

// NewInvalidError is Invalid without printing.
func NewInvalidError(err error) error {
	if err == nil {
		return nil
	}
	return invalidError{err: err}
}

type invalidError struct {
	err error
}

func (e invalidError) Error() string { return validate.Message(e.err) }
func (e invalidError) Unwrap() error { return e.err }

// Failed reports an operation the host refused, with msg as the text.
func Failed(msg string) error {
	return PrintJSONError(NewFailedError(msg))
}

// NewFailedError is Failed without printing.
func NewFailedError(msg string) error {
	return &failedError{msg: msg}
}

type failedError struct{ msg string }

func (e *failedError) Error() string { return e.msg }
func (e *failedError) Unwrap() error { return ErrFailed }

// Spin shows a spinner on stderr until the returned stop function is
// called. Nothing is drawn for JSON output or when stderr is not a
// terminal.
func Spin(label string) (stop func()) {
	if JSON() {
		return func() {}
	}
	s := progress.NewSpinner(label)
	s.Start()
	return s.Stop
}

// Report prints msg, or v when JSON output is requested.
func Report(v any, msg string) error {
	if JSON() {
		return PrintJSON(v)
	}
	fmt.Fprintln(out, msg)
	return nil
}

// Indices parses 1-based index arguments. Range checks are left to the
// caller, which knows the collection size. The error is not printed; pass
// it through PrintJSONError.
func Indices(label string, args []string) ([]int, error) {
	idx := make([]int, 0, len(args))
	for _, a := range args {
		i, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, fmt.Errorf("invalid %s index %q: not a number", label, a)
		}
		idx = append(idx, i)
	}
	return idx, nil
}

// Outcome folds a host result into the error written to the audit log.
func Outcome(err error, ok bool) error {
	if err == nil && !ok {
		return ErrFailed
	}
	return err
}

// Result is the JSON shape of a command that changed host state.
type Result struct {
	Target  string `json:"target,omitempty"`
	Count   int    `json:"count,omitempty"`
	Message string `json:"message"`
}

// Done reports a successful change with msg as the text.
func Done(target, msg string) error {
	return Report(Result{Target: target, Message: msg}, msg)
}
