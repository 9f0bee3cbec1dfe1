package domain

const (
	// SessionGapSeconds splits a per-project session when a user message
	// arrives this long (or longer) after the last assistant reply.
	SessionGapSeconds = 5 * 60
	// SittingGapSeconds splits a cross-project sitting on any event gap.
	SittingGapSeconds = 20 * 60
	// ThinkingPrefixSeconds approximates unrecorded ramp-up before the
	// first logged event of a period.
	ThinkingPrefixSeconds = 3 * 60
)

// Period is a bounded work interval shared by sessions and sittings.
type Period struct {
	StartTS      float64
	EndTS        float64
	Interactions int
}

// Duration is the raw span from first to last event.
func (p Period) Duration() float64 {
	d := p.EndTS - p.StartTS
	if d < 0 {
		return 0
	}
	return d
}

// Estimated adds the thinking-time prefix to the raw duration.
func (p Period) Estimated() float64 {
	return p.Duration() + ThinkingPrefixSeconds
}

// Session is a continuous work period on a single project.
type Session struct {
	Period
	Project     string // last element of the project path
	ProjectPath string // full working-directory path
}

// Sitting is a continuous work period across all projects.
type Sitting struct {
	Period
	Projects []string // distinct project names, in first-touch order
}
