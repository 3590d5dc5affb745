// index.go validates 1-based indices against a collection size.

package validate

import (
	"fmt"
	"strings"
)

// Index checks 1 <= i <= n. label names what is indexed ("timeline",
// "track", ...) and appears in the message.
func Index(label string, i, n int) error {
	if i < 1 || i > n {
		return fmt.Errorf("%w: Invalid %s index. Valid range is 1-%d.", ErrInvalidIndex, label, n)
	}
	return nil
}

// Indices checks every element of is against n and reports the first
// offender by value.
func Indices(label string, is []int, n int) error {
	for _, i := range is {
		if i < 1 || i > n {
			return fmt.Errorf("%w: Invalid %s index %d. Valid range is 1-%d.", ErrInvalidIndex, label, i, n)
		}
	}
	return nil
}

// Paths drops blank entries and requires at least one path to remain.
func Paths(ps []string) ([]string, error) {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoPaths
	}
	return out, nil
}

// Message strips the sentinel prefix from a validation error so the text
// can be shown to a caller as-is.
func Message(err error) string {
	if err == nil {
		return ""
	}
	s := err.Error()
	for _, sentinel := range []error{ErrInvalidName, ErrInvalidPage, ErrInvalidTrack, ErrInvalidIndex} {
		if p := sentinel.Error() + ": "; strings.HasPrefix(s, p) {
			return strings.TrimPrefix(s, p)
		}
	}
	return s
}
