package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	params, err := ParseParams([]string{
		"XBlurSize=4",
		"Blend=0.5",
		"Invert=true",
		"StyledText=Hello world",
		`Code="42"`,
		"Empty=",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"XBlurSize":  4.0,
		"Blend":      0.5,
		"Invert":     true,
		"StyledText": "Hello world",
		"Code":       "42",
		"Empty":      "",
	}, params)
}

func TestParseParams_None(t *testing.T) {
	params, err := ParseParams(nil)
	require.NoError(t, err)
	assert.Nil(t, params)
}

func TestParseParams_Invalid(t *testing.T) {
	tests := []string{"XBlurSize", "=4", " =4"}
	for _, p := range tests {
		t.Run(p, func(t *testing.T) {
			_, err := ParseParams([]string{p})
			assert.Error(t, err)
		})
	}
}

func TestParseParams_NonFinite(t *testing.T) {
	params, err := ParseParams([]string{"A=NaN", "B=Inf"})
	require.NoError(t, err)
	assert.Equal(t, "NaN", params["A"])
	assert.Equal(t, "Inf", params["B"])
}
