//go:build !windows && !darwin && !linux

package resolve

// The host application is not shipped for other platforms; only an
// explicit RESOLVE_SCRIPT_API can point at a module.
func platformModuleDirs() []string {
	return nil
}
