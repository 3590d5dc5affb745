// enum.go validates page names and track types.

package validate

import (
	"fmt"
	"strings"

	"github.com/jpl-au/resolvemcp/internal/resolve"
)

// Page parses a page name case-insensitively. The error lists the valid
// pages so the caller can retry without guessing.
func Page(s string) (resolve.Page, error) {
	if p, ok := resolve.ParsePage(s); ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: Invalid page name. Valid pages are: %s.", ErrInvalidPage, strings.Join(PageNames(), ", "))
}

// PageNames returns the valid page names in display order.
func PageNames() []string {
	pages := resolve.Pages()
	names := make([]string, len(pages))
	for i, p := range pages {
		names[i] = string(p)
	}
	return names
}

// TrackType parses a track kind. Track kinds are matched exactly, as the
// host does.
func TrackType(s string) (resolve.TrackType, error) {
	if t, ok := resolve.ParseTrackType(s); ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: Invalid track type. Valid types are 'video', 'audio', or 'subtitle'.", ErrInvalidTrack)
}
