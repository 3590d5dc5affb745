// tools_util.go provides helpers for MCP tool parameter extraction and
// results.
//
// Extraction is permissive: a missing or mistyped optional parameter
// yields the default rather than an error, because LLM clients often omit
// optional parameters or send numbers as strings.

package mcp

import (
	"errors"
	"strconv"

	"github.com/jpl-au/resolvemcp/internal/format"
	"github.com/jpl-au/resolvemcp/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// errFailed is recorded in the audit log when the host ran an operation
// but reported failure.
var errFailed = errors.New("host reported failure")

func args(req mcp.CallToolRequest) map[string]any {
	m, _ := req.Params.Arguments.(map[string]any)
	return m
}

// getString extracts a string parameter, returning def if it is missing
// or not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getInt extracts an integer parameter. JSON numbers decode as float64;
// numeric strings are accepted too.
func getInt(req mcp.CallToolRequest, name string) (int, bool) {
	return toInt(args(req)[name])
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}

// getInts extracts an integer array parameter. ok is false if the
// parameter is missing or any element is not an integer.
func getInts(req mcp.CallToolRequest, name string) ([]int, bool) {
	arr, ok := args(req)[name].([]any)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(arr))
	for _, v := range arr {
		i, ok := toInt(v)
		if !ok {
			return nil, false
		}
		out = append(out, i)
	}
	return out, true
}

// getStrings extracts a string array parameter, skipping non-string
// elements. Returns nil when the parameter is absent.
func getStrings(req mcp.CallToolRequest, name string) []string {
	arr, ok := args(req)[name].([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// getMap extracts an object parameter.
func getMap(req mcp.CallToolRequest, name string) map[string]any {
	m, _ := args(req)[name].(map[string]any)
	return m
}

// getMaps extracts an array of objects, skipping anything else.
func getMaps(req mcp.CallToolRequest, name string) []map[string]any {
	arr, ok := args(req)[name].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, v := range arr {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func required(name string) *mcp.CallToolResult {
	return mcp.NewToolResultError(name + " is required")
}

// invalid reports a validation failure without its sentinel prefix.
func invalid(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(validate.Message(err))
}

// hostError reports a failed host call with its caller-facing text.
func hostError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(format.Message(err))
}

// outcome folds a host result into the error written to the audit log.
func outcome(err error, ok bool) error {
	if err == nil && !ok {
		return errFailed
	}
	return err
}
