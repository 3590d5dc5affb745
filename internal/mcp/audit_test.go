package mcp

import (
	"database/sql"
	"testing"

	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/resolve/resolvetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openAuditLog points the audit log at a private HOME for the test.
func openAuditLog(t *testing.T) *sql.DB {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	require.NoError(t, log.Open())
	t.Cleanup(log.Close)

	db, err := sql.Open("sqlite", log.DBPath())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTools_Audited(t *testing.T) {
	db := openAuditLog(t)
	host := resolvetest.New()
	h := newHandlers(host)

	// Project tools run last because switching projects clears the fake.
	tools := []struct {
		name string
		fn   toolFunc
		args map[string]any
	}{
		{"create_timeline", h.createTimeline, map[string]any{"name": "Assembly"}},
		{"set_current_timeline", h.setCurrentTimeline, map[string]any{"index": 1.0}},
		{"import_timeline", h.importTimeline, map[string]any{"file_path": "/cuts/assembly.xml"}},
		{"import_media", h.importMedia, map[string]any{"file_paths": []any{"/Volumes/Media/A004.mov"}}},
		{"create_folder", h.createFolder, map[string]any{"name": "Selects"}},
		{"create_timeline_from_clips", h.createTimelineFromClips, map[string]any{"name": "Stringout", "clip_indices": []any{1.0}}},
		{"append_to_timeline", h.appendToTimeline, map[string]any{"clip_indices": []any{1.0}}},
		{"browse_storage", h.browseStorage, map[string]any{"path": "/Volumes/Media"}},
		{"add_fusion_comp_to_clip", h.addFusionCompToClip, map[string]any{
			"timeline_index": 1.0, "track_type": "video", "track_index": 1.0, "item_index": 1.0,
		}},
		{"create_fusion_node", h.createFusionNode, map[string]any{"node_type": "Blur"}},
		{"create_fusion_node_chain", h.createFusionNodeChain, map[string]any{"node_chain": []any{map[string]any{"type": "Blur"}}}},
		{"open_page", h.openPage, map[string]any{"page_name": "color"}},
		{"get_current_page", h.getCurrentPage, nil},
		{"create_project", h.createProject, map[string]any{"name": "Promo"}},
		{"load_project", h.loadProject, map[string]any{"name": "Demo"}},
		{"save_project", h.saveProject, nil},
	}

	for _, tc := range tools {
		call(t, tc.fn, tc.args)

		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM log WHERE source = ?", "mcp:"+tc.name).Scan(&n))
		assert.Positive(t, n, "%s wrote no audit entry", tc.name)
	}
}
