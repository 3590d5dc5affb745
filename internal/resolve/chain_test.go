package resolve_test

import (
	"context"
	"testing"

	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/jpl-au/resolvemcp/internal/resolve/resolvetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChain(t *testing.T) {
	h := resolvetest.New()

	created, err := resolve.BuildChain(context.Background(), h, []resolve.ChainNode{
		{Type: "Blur", Params: map[string]any{"XBlurSize": 2.0}},
		{Type: "ColorCorrector", Name: "Grade"},
		{Type: "Merge"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Blur", "ColorCorrector", "Merge"}, created)
	assert.Equal(t, []resolvetest.Link{
		{Tool: "Grade", Input: resolve.MainInput, From: "Blur1"},
		{Tool: "Merge1", Input: resolve.MainInput, From: "Grade"},
	}, h.Links)
	assert.Equal(t, 2.0, h.Nodes[0].Inputs["XBlurSize"])
}

func TestBuildChain_SkipsGaps(t *testing.T) {
	h := resolvetest.New()
	h.ToolTypes = []string{"Blur", "Merge"}

	created, err := resolve.BuildChain(context.Background(), h, []resolve.ChainNode{
		{Type: "Blur"},
		{Type: " "},
		{Type: "NotATool"},
		{Type: "Merge"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Blur", "Merge"}, created)
	assert.Equal(t, []resolvetest.Link{{Tool: "Merge1", Input: resolve.MainInput, From: "Blur1"}}, h.Links)
}

func TestBuildChain_NoComp(t *testing.T) {
	h := resolvetest.New()
	h.Comp = false

	created, err := resolve.BuildChain(context.Background(), h, []resolve.ChainNode{{Type: "Blur"}})
	assert.ErrorIs(t, err, resolve.ErrNoComp)
	assert.Empty(t, created)
}

func TestBuildChain_NoCompBeforeEntries(t *testing.T) {
	h := resolvetest.New()
	h.Comp = false

	created, err := resolve.BuildChain(context.Background(), h, []resolve.ChainNode{{Name: "untyped"}, {Type: " "}})
	assert.ErrorIs(t, err, resolve.ErrNoComp)
	assert.Empty(t, created)
	assert.False(t, h.Called("AddTool"))
}
