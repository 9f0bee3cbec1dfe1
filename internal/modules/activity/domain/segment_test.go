package domain

import (
	"testing"

	ingestdto "tally/internal/modules/ingest/dto"
)

func ev(ts float64, role, project string) ingestdto.Event {
	return ingestdto.Event{Timestamp: ts, Role: role, Project: project}
}

func TestDetectSessionsSplitBoundary(t *testing.T) {
	t.Parallel()
	// gap == 300 splits
	split := DetectSessions([]ingestdto.Event{
		ev(0, "user", "/r"),
		ev(60, "assistant", "/r"),
		ev(360, "user", "/r"),
	}, "")
	if len(split) != 2 {
		t.Fatalf("gap of exactly 300s must split, got %d sessions", len(split))
	}

	// gap just under 300 does not
	joined := DetectSessions([]ingestdto.Event{
		ev(0, "user", "/r"),
		ev(60, "assistant", "/r"),
		ev(359.999, "user", "/r"),
	}, "")
	if len(joined) != 1 {
		t.Fatalf("gap of 299.999s must not split, got %d sessions", len(joined))
	}
	if joined[0].Interactions != 3 {
		t.Fatalf("expected 3 interactions, got %d", joined[0].Interactions)
	}
}

func TestDetectSessionsOnlyUserAfterAssistantSplits(t *testing.T) {
	t.Parallel()
	// A late assistant event extends, never splits.
	sessions := DetectSessions([]ingestdto.Event{
		ev(0, "user", "/r"),
		ev(60, "assistant", "/r"),
		ev(2000, "assistant", "/r"),
	}, "")
	if len(sessions) != 1 {
		t.Fatalf("assistant events must not split, got %d sessions", len(sessions))
	}

	// User events with no prior assistant never split either.
	sessions = DetectSessions([]ingestdto.Event{
		ev(0, "user", "/r"),
		ev(5000, "user", "/r"),
	}, "")
	if len(sessions) != 1 {
		t.Fatalf("no-assistant stream must stay one session, got %d", len(sessions))
	}
}

func TestDetectSessionsEndToEnd(t *testing.T) {
	t.Parallel()
	sessions := DetectSessions([]ingestdto.Event{
		ev(0, "user", "/w/proj"),
		ev(60, "assistant", "/w/proj"),
		ev(1000, "user", "/w/proj"),
	}, "")
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	first, second := sessions[0], sessions[1]
	if first.StartTS != 0 || first.EndTS != 60 || first.Interactions != 2 {
		t.Fatalf("first session wrong: %+v", first)
	}
	if second.StartTS != 1000 || second.EndTS != 1000 || second.Interactions != 1 {
		t.Fatalf("second session wrong: %+v", second)
	}
	if second.Estimated() != float64(ThinkingPrefixSeconds) {
		t.Fatalf("zero-length session estimate: %f", second.Estimated())
	}
	if first.Project != "proj" || first.ProjectPath != "/w/proj" {
		t.Fatalf("project naming wrong: %+v", first)
	}
}

func TestDetectSessionsGroupsByFullPath(t *testing.T) {
	t.Parallel()
	sessions := DetectSessions([]ingestdto.Event{
		ev(0, "user", "/a/repo"),
		ev(10, "user", "/b/repo"),
	}, "")
	if len(sessions) != 2 {
		t.Fatalf("same base name in different parents must not merge, got %d", len(sessions))
	}
}

func TestDetectSessionsProjectFilter(t *testing.T) {
	t.Parallel()
	sessions := DetectSessions([]ingestdto.Event{
		ev(0, "user", "/w/keep"),
		ev(10, "user", "/w/drop"),
	}, "keep")
	if len(sessions) != 1 || sessions[0].Project != "keep" {
		t.Fatalf("filter failed: %+v", sessions)
	}
}

func TestDetectSessionsEmptyInput(t *testing.T) {
	t.Parallel()
	if sessions := DetectSessions(nil, ""); len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(sessions))
	}
}

func TestDetectSittingsSplitBoundary(t *testing.T) {
	t.Parallel()
	sittings := DetectSittings([]ingestdto.Event{
		ev(0, "user", "/a"),
		ev(100, "assistant", "/b"),
		ev(1300, "user", "/a"),
	})
	if len(sittings) != 2 {
		t.Fatalf("gap of exactly 1200s must split, got %d sittings", len(sittings))
	}

	sittings = DetectSittings([]ingestdto.Event{
		ev(0, "user", "/a"),
		ev(100, "assistant", "/b"),
		ev(1299.999, "user", "/a"),
	})
	if len(sittings) != 1 {
		t.Fatalf("gap under 1200s must not split, got %d sittings", len(sittings))
	}
}

func TestDetectSittingsTracksDistinctProjects(t *testing.T) {
	t.Parallel()
	sittings := DetectSittings([]ingestdto.Event{
		ev(0, "user", "/w/a"),
		ev(10, "user", "/w/b"),
		ev(20, "user", "/w/a"),
	})
	if len(sittings) != 1 {
		t.Fatalf("expected 1 sitting, got %d", len(sittings))
	}
	got := sittings[0].Projects
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected first-touch order [a b], got %v", got)
	}
	if sittings[0].Estimated() != 20+float64(ThinkingPrefixSeconds) {
		t.Fatalf("estimate wrong: %f", sittings[0].Estimated())
	}
}

func TestSingleEventPeriod(t *testing.T) {
	t.Parallel()
	sittings := DetectSittings([]ingestdto.Event{ev(42, "user", "/a")})
	if len(sittings) != 1 {
		t.Fatalf("expected 1 sitting, got %d", len(sittings))
	}
	if sittings[0].Duration() != 0 || sittings[0].Estimated() != float64(ThinkingPrefixSeconds) {
		t.Fatalf("single event period wrong: %+v", sittings[0])
	}
}
