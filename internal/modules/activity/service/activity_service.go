package service

import (
	"sort"
	"time"

	"tally/internal/modules/activity/domain"
	ingestdto "tally/internal/modules/ingest/dto"
)

type ActivityService struct{}

func NewActivityService() *ActivityService {
	return &ActivityService{}
}

func (s *ActivityService) Sessions(events []ingestdto.Event, projectFilter string) []domain.Session {
	return domain.DetectSessions(events, projectFilter)
}

func (s *ActivityService) Sittings(events []ingestdto.Event) []domain.Sitting {
	return domain.DetectSittings(events)
}

// DayHours is the per-day rollup of session and sitting hours.
type DayHours struct {
	Day          string
	Sessions     int
	SessionHours float64
	Sittings     int
	SittingHours float64
}

// DailyHours rolls sessions and sittings up by the UTC calendar day of their
// start. When a project filter was applied to the sessions, sittings are
// intersected on the day axis: only days with at least one filtered session
// appear.
func (s *ActivityService) DailyHours(sessions []domain.Session, sittings []domain.Sitting, filtered bool) []DayHours {
	byDay := make(map[string]*DayHours)
	day := func(ts float64) string {
		return time.Unix(int64(ts), 0).UTC().Format("2006-01-02")
	}

	for _, sess := range sessions {
		d := day(sess.StartTS)
		row, ok := byDay[d]
		if !ok {
			row = &DayHours{Day: d}
			byDay[d] = row
		}
		row.Sessions++
		row.SessionHours += sess.Estimated() / 3600.0
	}

	for _, sit := range sittings {
		d := day(sit.StartTS)
		row, ok := byDay[d]
		if !ok {
			if filtered {
				continue
			}
			row = &DayHours{Day: d}
			byDay[d] = row
		}
		row.Sittings++
		row.SittingHours += sit.Estimated() / 3600.0
	}

	rows := make([]DayHours, 0, len(byDay))
	for _, row := range byDay {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day < rows[j].Day })
	return rows
}
