package domain

import (
	"path/filepath"
	"sort"

	ingestdto "tally/internal/modules/ingest/dto"
)

const roleUser = "user"
const roleAssistant = "assistant"

func projectName(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	name := filepath.Base(fullPath)
	if name == "." || name == "/" {
		return "unknown"
	}
	return name
}

// sessionAccum threads the open-session state through the per-project fold
// so no state outlives a single DetectSessions call.
type sessionAccum struct {
	open            bool
	start, end      float64
	count           int
	lastAssistantTS float64
	hasAssistant    bool
}

func (a *sessionAccum) flush(projectPath string, out []Session) []Session {
	if a.open && a.count > 0 {
		out = append(out, Session{
			Period:      Period{StartTS: a.start, EndTS: a.end, Interactions: a.count},
			Project:     projectName(projectPath),
			ProjectPath: projectPath,
		})
	}
	a.open = false
	a.count = 0
	return out
}

// DetectSessions folds a time-sorted event list into per-project sessions.
// A new session begins when a user event arrives SessionGapSeconds or more
// after the project's last assistant reply. projectFilter, when non-empty,
// restricts detection to projects whose base name matches exactly.
func DetectSessions(events []ingestdto.Event, projectFilter string) []Session {
	byProject := make(map[string][]ingestdto.Event)
	var order []string
	for _, e := range events {
		if projectFilter != "" && projectName(e.Project) != projectFilter {
			continue
		}
		if _, seen := byProject[e.Project]; !seen {
			order = append(order, e.Project)
		}
		byProject[e.Project] = append(byProject[e.Project], e)
	}

	var sessions []Session
	for _, projectPath := range order {
		acc := sessionAccum{}
		for _, e := range byProject[projectPath] {
			if e.Role == roleUser && acc.hasAssistant &&
				e.Timestamp-acc.lastAssistantTS >= SessionGapSeconds {
				sessions = acc.flush(projectPath, sessions)
			}
			if !acc.open {
				acc.open = true
				acc.start = e.Timestamp
			}
			acc.end = e.Timestamp
			acc.count++
			if e.Role == roleAssistant {
				acc.lastAssistantTS = e.Timestamp
				acc.hasAssistant = true
			}
		}
		sessions = acc.flush(projectPath, sessions)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTS < sessions[j].StartTS
	})
	return sessions
}

// DetectSittings folds the full event stream, ignoring project identity,
// into sittings split on any gap of SittingGapSeconds or more.
func DetectSittings(events []ingestdto.Event) []Sitting {
	var sittings []Sitting
	var cur *Sitting
	seen := map[string]bool{}

	flush := func() {
		if cur != nil && cur.Interactions > 0 {
			sittings = append(sittings, *cur)
		}
		cur = nil
		seen = map[string]bool{}
	}

	for _, e := range events {
		if cur != nil && e.Timestamp-cur.EndTS >= SittingGapSeconds {
			flush()
		}
		if cur == nil {
			cur = &Sitting{Period: Period{StartTS: e.Timestamp}}
		}
		cur.EndTS = e.Timestamp
		cur.Interactions++
		name := projectName(e.Project)
		if !seen[name] {
			seen[name] = true
			cur.Projects = append(cur.Projects, name)
		}
	}
	flush()
	return sittings
}
