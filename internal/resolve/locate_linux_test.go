//go:build linux

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleDirs_LinuxDefaults(t *testing.T) {
	stubEnv(t, nil)

	assert.Equal(t, []string{
		"/opt/resolve/Developer/Scripting/Modules",
		"/home/resolve/Developer/Scripting/Modules",
	}, ModuleDirs(""))
}
