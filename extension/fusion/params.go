// params.go parses --param flags into Fusion tool inputs.

package fusion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseParams turns key=value pairs into tool inputs. Values that parse as
// numbers become float64 and true/false become bool, matching what an MCP
// client sends as JSON; a quoted value is always text.
func ParseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: want key=value", p)
		}
		params[key] = paramValue(value)
	}
	return params, nil
}

func paramValue(s string) any {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	// NaN and Inf have no JSON form.
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	if s == "true" || s == "false" {
		return s == "true"
	}
	return s
}
