package service

import (
	"sort"

	"github.com/hashicorp/go-hclog"

	"tally/internal/modules/coverage/domain"
	ingestdto "tally/internal/modules/ingest/dto"
)

type CoverageService struct {
	log hclog.Logger
}

func NewCoverageService(log hclog.Logger) *CoverageService {
	return &CoverageService{log: log}
}

// WindowFromEvents reduces one location's events to its observed day span.
// An empty location has no window.
func WindowFromEvents(events []ingestdto.Event) (domain.Window, bool) {
	if len(events) == 0 {
		return domain.Window{}, false
	}
	min, max := events[0].Timestamp, events[0].Timestamp
	for _, e := range events[1:] {
		if e.Timestamp < min {
			min = e.Timestamp
		}
		if e.Timestamp > max {
			max = e.Timestamp
		}
	}
	return domain.Window{Start: domain.DayOf(min), End: domain.DayOf(max)}, true
}

// SourceWindows merges the windows of every location belonging to the same
// source, so a source covered by several machines counts once.
func (s *CoverageService) SourceWindows(locations []ingestdto.LocationEvents) map[string][]domain.Window {
	bySource := make(map[string][]domain.Window)
	for _, loc := range locations {
		w, ok := WindowFromEvents(loc.Events)
		if !ok {
			continue
		}
		bySource[loc.Source] = append(bySource[loc.Source], w)
	}
	for source, windows := range bySource {
		bySource[source] = domain.Merge(windows)
	}
	return bySource
}

// Effective intersects coverage across every source that produced events.
// A lone source passes through unchanged. When no source has data the
// result is nil and callers must not filter by day at all.
func (s *CoverageService) Effective(bySource map[string][]domain.Window) []domain.Window {
	sources := make([]string, 0, len(bySource))
	for source := range bySource {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	var effective []domain.Window
	for i, source := range sources {
		if i == 0 {
			effective = append([]domain.Window(nil), bySource[source]...)
			continue
		}
		effective = domain.Intersect(effective, bySource[source])
	}
	if len(effective) == 0 {
		s.log.Warn("no overlapping log coverage, day filtering disabled")
		return nil
	}
	return effective
}
