package domain

import (
	"path/filepath"
	"sort"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Event is one normalized interaction record. After normalization the
// originating source is irrelevant; downstream components only see timestamp,
// role, and the working-directory path.
type Event struct {
	Timestamp float64 // Unix seconds, UTC
	Role      Role
	Project   string // absolute working-directory path at event time
}

// ProjectName extracts the project name (last path element) from a full path.
func ProjectName(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	name := filepath.Base(fullPath)
	if name == "." || name == "/" {
		return "unknown"
	}
	return name
}

// SortEvents orders events by timestamp ascending. The sort is stable so
// equal timestamps keep their discovery order.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})
}
