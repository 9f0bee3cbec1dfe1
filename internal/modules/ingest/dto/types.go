package dto

// Event mirrors domain.Event for consumption by other modules.
type Event struct {
	Timestamp float64
	Role      string
	Project   string
}

// LocationEvents is the scan result for one physical log location: one
// source directory, or one machine's copy of a source inside a bundle.
type LocationEvents struct {
	Source  string // "claude" or "codex"
	Machine string // empty in direct mode
	Events  []Event
}

type CollectInput struct {
	// ClaudeDir/CodexDir override the default ~/.claude and ~/.codex roots.
	ClaudeDir string
	CodexDir  string
	// Bundle selects bundle mode; when set, the direct dirs are ignored.
	Bundle string
}

type CollectOutput struct {
	// Events is the merged stream across all locations, sorted by timestamp
	// ascending (stable).
	Events []Event
	// Locations holds the per-location streams used for coverage analysis.
	Locations []LocationEvents
}

type SyncInput struct {
	Bundle  string
	Machine string // defaults to the hostname
}

type SyncOutput struct {
	Machine string
	// Synced lists "src -> dst" pairs for each source tree copied.
	Synced []string
}
