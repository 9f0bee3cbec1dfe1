package service

import (
	"testing"

	"tally/internal/modules/activity/domain"
)

func session(start, end float64, project string) domain.Session {
	return domain.Session{
		Period:  domain.Period{StartTS: start, EndTS: end, Interactions: 1},
		Project: project,
	}
}

func sitting(start, end float64) domain.Sitting {
	return domain.Sitting{Period: domain.Period{StartTS: start, EndTS: end, Interactions: 1}}
}

// 2025-03-01T12:00:00Z
const noon = 1740830400

func TestDailyHoursRollsUpByUTCDay(t *testing.T) {
	t.Parallel()
	svc := NewActivityService()

	rows := svc.DailyHours(
		[]domain.Session{
			session(noon, noon+3600-180, "a"), // 1h estimated
			session(noon+86400, noon+86400, "a"),
		},
		[]domain.Sitting{sitting(noon, noon+7200-180)}, // 2h estimated
		false,
	)
	if len(rows) != 2 {
		t.Fatalf("expected 2 days, got %d: %+v", len(rows), rows)
	}
	first := rows[0]
	if first.Day != "2025-03-01" {
		t.Fatalf("day: %s", first.Day)
	}
	if first.Sessions != 1 || first.SessionHours != 1.0 {
		t.Fatalf("session rollup wrong: %+v", first)
	}
	if first.Sittings != 1 || first.SittingHours != 2.0 {
		t.Fatalf("sitting rollup wrong: %+v", first)
	}
	if rows[1].Day != "2025-03-02" {
		t.Fatalf("rows not sorted by day: %+v", rows)
	}
}

func TestDailyHoursFilteredDropsSittingOnlyDays(t *testing.T) {
	t.Parallel()
	svc := NewActivityService()

	rows := svc.DailyHours(
		[]domain.Session{session(noon, noon+60, "keep")},
		[]domain.Sitting{
			sitting(noon, noon+60),
			sitting(noon+86400, noon+86400+60), // no session that day
		},
		true,
	)
	if len(rows) != 1 || rows[0].Day != "2025-03-01" {
		t.Fatalf("filtered rollup must keep session days only: %+v", rows)
	}
}
