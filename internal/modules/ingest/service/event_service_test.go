package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"

	"tally/internal/modules/ingest/domain"
	ingestout "tally/internal/modules/ingest/port/out"
)

type fakeScanner struct {
	source string
	// byRoot returns canned events per scanned root directory.
	byRoot map[string][]domain.Event
}

func (f *fakeScanner) Source() string { return f.source }

func (f *fakeScanner) Scan(_ context.Context, root string) ([]domain.Event, error) {
	return f.byRoot[root], nil
}

type fakeSyncer struct {
	copied [][2]string
}

func (f *fakeSyncer) CopyTree(_ context.Context, src, dst string) error {
	f.copied = append(f.copied, [2]string{src, dst})
	return nil
}

func event(ts float64, role domain.Role, project string) domain.Event {
	return domain.Event{Timestamp: ts, Role: role, Project: project}
}

func TestCollectBundlePerMachineLocations(t *testing.T) {
	t.Parallel()
	bundle := t.TempDir()
	for _, dir := range []string{
		filepath.Join(bundle, "laptop", "claude"),
		filepath.Join(bundle, "laptop", "codex"),
		filepath.Join(bundle, "desktop", "claude"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	claude := &fakeScanner{source: "claude", byRoot: map[string][]domain.Event{
		filepath.Join(bundle, "laptop", "claude"):  {event(10, domain.RoleUser, "/r")},
		filepath.Join(bundle, "desktop", "claude"): {event(20, domain.RoleUser, "/r")},
	}}
	codex := &fakeScanner{source: "codex", byRoot: map[string][]domain.Event{
		filepath.Join(bundle, "laptop", "codex"): {event(30, domain.RoleAssistant, "/r")},
	}}

	svc := NewEventService([]ingestout.EventScanner{claude, codex}, &fakeSyncer{}, hclog.NewNullLogger())
	locations, err := svc.CollectBundle(context.Background(), bundle)
	if err != nil {
		t.Fatalf("collect bundle: %v", err)
	}

	// desktop has no codex directory, so it contributes nothing there.
	if len(locations) != 3 {
		t.Fatalf("expected 3 locations, got %d: %+v", len(locations), locations)
	}
	seen := map[string]bool{}
	for _, loc := range locations {
		seen[loc.Machine+"/"+loc.Source] = true
	}
	for _, want := range []string{"laptop/claude", "laptop/codex", "desktop/claude"} {
		if !seen[want] {
			t.Fatalf("missing location %s in %v", want, seen)
		}
	}
}

func TestMergeSortsAcrossLocations(t *testing.T) {
	t.Parallel()
	svc := NewEventService(nil, &fakeSyncer{}, hclog.NewNullLogger())
	merged := svc.Merge([]LocationEvents{
		{Source: "claude", Events: []domain.Event{event(30, domain.RoleUser, "/a"), event(10, domain.RoleUser, "/a")}},
		{Source: "codex", Events: []domain.Event{event(20, domain.RoleAssistant, "/b")}},
	})
	if len(merged) != 3 {
		t.Fatalf("expected 3 events, got %d", len(merged))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i-1].Timestamp > merged[i].Timestamp {
			t.Fatalf("merged events not sorted: %+v", merged)
		}
	}
}

func TestCollectDirectSkipsEmptySources(t *testing.T) {
	t.Parallel()
	claude := &fakeScanner{source: "claude", byRoot: map[string][]domain.Event{
		"/logs/claude": {event(1, domain.RoleUser, "/r")},
	}}
	codex := &fakeScanner{source: "codex", byRoot: map[string][]domain.Event{}}

	svc := NewEventService([]ingestout.EventScanner{claude, codex}, &fakeSyncer{}, hclog.NewNullLogger())
	locations, err := svc.CollectDirect(context.Background(), map[string]string{
		"claude": "/logs/claude",
		"codex":  "/logs/codex",
	})
	if err != nil {
		t.Fatalf("collect direct: %v", err)
	}
	if len(locations) != 1 || locations[0].Source != "claude" {
		t.Fatalf("expected only the claude location, got %+v", locations)
	}
}
