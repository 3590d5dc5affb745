package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Default(t *testing.T) {
	content, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, content, "# resolvemcp Guide")
}

func TestGet_Install(t *testing.T) {
	content, err := Get("install")
	require.NoError(t, err)
	assert.Contains(t, content, "RESOLVE_SCRIPT_API")
}

func TestGet_Missing(t *testing.T) {
	_, err := Get("nonexistent")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)

	assert.Equal(t, []string{"config", "install", "resources", "scripting", "serve", "tools"}, names)
}
