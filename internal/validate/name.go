// name.go validates names of projects, timelines, folders and nodes.
//
// The host accepts almost anything as a name, so only inputs that cannot
// be meant are rejected: empty names, control characters, and names longer
// than the host's 255-byte limit.

package validate

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxNameLen is the longest name the host stores without truncation.
const MaxNameLen = 255

// Name validates a name for kind ("project", "timeline", ...) and returns
// it trimmed of surrounding whitespace.
func Name(kind, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: %s name is empty", ErrInvalidName, kind)
	}
	if len(s) > MaxNameLen {
		return "", fmt.Errorf("%w: %s name longer than %d bytes", ErrInvalidName, kind, MaxNameLen)
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return "", fmt.Errorf("%w: %s name contains control characters", ErrInvalidName, kind)
	}
	return s, nil
}
