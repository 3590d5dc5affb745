// Package all imports all built-in resolvemcp extensions.
// Import this package to register all built-in commands.
package all

import (
	// Built-in extensions - each registers itself via init()
	_ "github.com/jpl-au/resolvemcp/extension/core"
	_ "github.com/jpl-au/resolvemcp/extension/fusion"
	_ "github.com/jpl-au/resolvemcp/extension/media"
	_ "github.com/jpl-au/resolvemcp/extension/project"
	_ "github.com/jpl-au/resolvemcp/extension/script"
)
