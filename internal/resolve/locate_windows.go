//go:build windows

package resolve

import "path/filepath"

// platformModuleDirs returns the all-users install location under
// %PROGRAMDATA%, falling back to the default C:\ProgramData.
func platformModuleDirs() []string {
	base := getenv("PROGRAMDATA")
	if base == "" {
		base = `C:\ProgramData`
	}
	return []string{
		filepath.Join(base, "Blackmagic Design", "DaVinci Resolve", "Support", "Developer", "Scripting", "Modules"),
	}
}
