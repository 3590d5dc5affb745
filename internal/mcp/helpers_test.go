package mcp

import (
	"context"
	"testing"

	"github.com/jpl-au/resolvemcp/internal/resolve/resolvetest"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

func newHandlers(host *resolvetest.Host) *handlers {
	return &handlers{host: host, clipLimit: 10}
}

type toolFunc func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// call invokes a tool handler and returns its text and error flag.
func call(t *testing.T, fn toolFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := fn(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text, res.IsError
}

// succeeds asserts a successful tool result with the given text.
func succeeds(t *testing.T, fn toolFunc, args map[string]any, want string) {
	t.Helper()
	got, isErr := call(t, fn, args)
	require.False(t, isErr, got)
	require.Equal(t, want, got)
}

// fails asserts an error tool result with the given text.
func fails(t *testing.T, fn toolFunc, args map[string]any, want string) {
	t.Helper()
	got, isErr := call(t, fn, args)
	require.True(t, isErr, got)
	require.Equal(t, want, got)
}
