//go:build darwin

package resolve

import "path/filepath"

const macScriptingModules = "Library/Application Support/Blackmagic Design/DaVinci Resolve/Developer/Scripting/Modules"

// platformModuleDirs returns the system-wide location first, then the
// per-user one used by App Store installs.
func platformModuleDirs() []string {
	dirs := []string{filepath.Join("/", macScriptingModules)}
	if home, err := userHomeDir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, macScriptingModules))
	}
	return dirs
}
