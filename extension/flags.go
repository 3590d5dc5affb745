// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "track-index" -> FlagTrackIndex).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagLocal = "local" // Use local scope (.resolvemcp/config.yaml)

	// String flags

	FlagFile  = "file"  // Read script or paths from a file
	FlagName  = "name"  // Name for a created node
	FlagParam = "param" // Node input as key=value (repeatable)
	FlagTrack = "track" // Track type: video, audio, subtitle

	// Integer flags

	FlagItem       = "item"        // 1-based item on a track
	FlagLimit      = "limit"       // Limit number of listed items
	FlagTimeline   = "timeline"    // 1-based timeline index
	FlagTrackIndex = "track-index" // 1-based track of the given type
)
