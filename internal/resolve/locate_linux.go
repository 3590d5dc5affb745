//go:build linux

package resolve

// platformModuleDirs returns the standard /opt install, then the layout
// used by the vendor's alternate installer.
func platformModuleDirs() []string {
	return []string{
		"/opt/resolve/Developer/Scripting/Modules",
		"/home/resolve/Developer/Scripting/Modules",
	}
}
