package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"

	activityservice "tally/internal/modules/activity/service"
	activityusecase "tally/internal/modules/activity/usecase"
	classifydto "tally/internal/modules/classify/dto"
	classifyservice "tally/internal/modules/classify/service"
	classifyusecase "tally/internal/modules/classify/usecase"
	coverageservice "tally/internal/modules/coverage/service"
	coverageusecase "tally/internal/modules/coverage/usecase"
	ingestdto "tally/internal/modules/ingest/dto"
	metricsdomain "tally/internal/modules/metrics/domain"
	"tally/internal/modules/metrics/dto"
	"tally/internal/modules/metrics/service"
	"tally/internal/platform/config"
	apperrors "tally/internal/platform/errors"
)

const noon = 1740830400 // 2025-03-01T12:00:00Z

type fakeIngest struct {
	out ingestdto.CollectOutput
}

func (f *fakeIngest) Collect(context.Context, ingestdto.CollectInput) (ingestdto.CollectOutput, error) {
	return f.out, nil
}

func (f *fakeIngest) Sync(context.Context, ingestdto.SyncInput) (ingestdto.SyncOutput, error) {
	return ingestdto.SyncOutput{}, nil
}

type fakeRepoResolver struct {
	roots map[string]string
}

func (f *fakeRepoResolver) RepoRoot(_ context.Context, dir string) string { return f.roots[dir] }

type fakeAdoptionProbe struct {
	beadsDates map[string]string
	hubs       map[string]bool
}

func (f *fakeAdoptionProbe) BeadsDate(_ context.Context, root string) string {
	return f.beadsDates[root]
}

func (f *fakeAdoptionProbe) IsBeadhub(_ context.Context, root string) bool { return f.hubs[root] }

type fakeCommitSource struct {
	commits int
	delta   int
}

func (f *fakeCommitSource) CommitsBetween(context.Context, string, float64, float64, string) (int, int) {
	return f.commits, f.delta
}

func (f *fakeCommitSource) Log(context.Context, string, string, string, string) ([]metricsdomain.Commit, error) {
	return nil, nil
}

type fakeProjector struct {
	projected []dto.DayRow
	runs      []dto.RunRecord
}

func (f *fakeProjector) Project(_ context.Context, _ string, run dto.RunRecord, days []dto.DayRow) error {
	f.runs = append(f.runs, run)
	f.projected = days
	return nil
}

func (f *fakeProjector) LatestDaily(context.Context, string) ([]dto.DayRow, error) {
	return f.projected, nil
}

func newTestInteractor(events []ingestdto.Event, resolver *fakeRepoResolver, probe *fakeAdoptionProbe, commits *fakeCommitSource, projector *fakeProjector, cfg config.Config) *Interactor {
	log := hclog.NewNullLogger()
	ingest := &fakeIngest{out: ingestdto.CollectOutput{
		Events:    events,
		Locations: []ingestdto.LocationEvents{{Source: "claude", Events: events}},
	}}
	activity := activityusecase.NewInteractor(activityservice.NewActivityService())
	coverage := coverageusecase.NewInteractor(coverageservice.NewCoverageService(log))
	classify := classifyusecase.NewInteractor(classifyservice.NewClassifyService(resolver, probe, log))
	svc := service.NewMetricsService(commits, cfg, log)
	return NewInteractor(ingest, activity, coverage, classify, svc, projector, cfg, log)
}

func twoSessionEvents() []ingestdto.Event {
	return []ingestdto.Event{
		{Timestamp: noon, Role: "user", Project: "/w/proj"},
		{Timestamp: noon + 60, Role: "assistant", Project: "/w/proj"},
		{Timestamp: noon + 1000, Role: "user", Project: "/w/proj"},
	}
}

func TestCompareEndToEnd(t *testing.T) {
	t.Parallel()
	resolver := &fakeRepoResolver{roots: map[string]string{"/w/proj": "/w/proj"}}
	probe := &fakeAdoptionProbe{beadsDates: map[string]string{"/w/proj": "2025-01-01"}}
	it := newTestInteractor(twoSessionEvents(), resolver, probe,
		&fakeCommitSource{commits: 1, delta: 50}, &fakeProjector{}, config.Config{})

	out, err := it.Compare(context.Background(), dto.CompareInput{Author: "alice"})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if out.Mode != dto.ModeBucket || out.Sessions != 2 {
		t.Fatalf("expected 2 sessions in bucket mode, got %+v", out)
	}
	if len(out.Buckets) != 3 {
		t.Fatalf("expected all buckets, got %+v", out.Buckets)
	}
	var beads dto.BucketRow
	for _, b := range out.Buckets {
		if b.Bucket == classifydto.BucketBeads {
			beads = b
		}
	}
	if beads.Sessions != 2 || beads.Commits != 2 || beads.Delta != 100 {
		t.Fatalf("beads rollup wrong: %+v", beads)
	}
	if len(out.Projects) != 1 || out.Projects[0].Project != "proj" {
		t.Fatalf("project rows wrong: %+v", out.Projects)
	}
}

func TestCompareInvalidMode(t *testing.T) {
	t.Parallel()
	it := newTestInteractor(nil, &fakeRepoResolver{}, &fakeAdoptionProbe{},
		&fakeCommitSource{}, &fakeProjector{}, config.Config{})

	_, err := it.Compare(context.Background(), dto.CompareInput{Mode: "weekly"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCompareSinceFilter(t *testing.T) {
	t.Parallel()
	resolver := &fakeRepoResolver{roots: map[string]string{"/w/proj": "/w/proj"}}
	it := newTestInteractor(twoSessionEvents(), resolver, &fakeAdoptionProbe{},
		&fakeCommitSource{}, &fakeProjector{}, config.Config{})

	out, err := it.Compare(context.Background(), dto.CompareInput{Since: "2025-04-01"})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if out.Sessions != 0 || out.Skipped.BeforeSince != 2 {
		t.Fatalf("since filter wrong: %+v", out)
	}
}

func TestCompareSkipsSessionsWithoutRepo(t *testing.T) {
	t.Parallel()
	it := newTestInteractor(twoSessionEvents(), &fakeRepoResolver{}, &fakeAdoptionProbe{},
		&fakeCommitSource{}, &fakeProjector{}, config.Config{})

	out, err := it.Compare(context.Background(), dto.CompareInput{})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if out.Sessions != 0 || out.Skipped.NoRepo != 2 {
		t.Fatalf("expected all sessions skipped without repo, got %+v", out)
	}
}

func TestCompareIgnoreConfig(t *testing.T) {
	t.Parallel()
	cfg := config.Config{Ignore: config.Ignore{Projects: []string{"proj"}}}
	it := newTestInteractor(twoSessionEvents(), &fakeRepoResolver{}, &fakeAdoptionProbe{},
		&fakeCommitSource{}, &fakeProjector{}, cfg)

	out, err := it.Compare(context.Background(), dto.CompareInput{})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if out.Sessions != 0 || out.Skipped.NoRepo != 0 {
		t.Fatalf("ignored project events must vanish before segmentation: %+v", out)
	}
}

func TestCompareProjectsToDatabase(t *testing.T) {
	t.Parallel()
	resolver := &fakeRepoResolver{roots: map[string]string{"/w/proj": "/w/proj"}}
	projector := &fakeProjector{}
	it := newTestInteractor(twoSessionEvents(), resolver, &fakeAdoptionProbe{},
		&fakeCommitSource{}, projector, config.Config{})

	if _, err := it.Compare(context.Background(), dto.CompareInput{DBPath: "x.db"}); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(projector.runs) != 1 || len(projector.projected) == 0 {
		t.Fatalf("expected a projected run, got %+v", projector.runs)
	}
}

func TestCompareHubSinceFilter(t *testing.T) {
	t.Parallel()
	resolver := &fakeRepoResolver{roots: map[string]string{"/w/proj": "/w/proj"}}
	probe := &fakeAdoptionProbe{
		beadsDates: map[string]string{"/w/proj": "2025-01-01"},
		hubs:       map[string]bool{"/w/proj": true},
	}
	it := newTestInteractor(twoSessionEvents(), resolver, probe,
		&fakeCommitSource{}, &fakeProjector{}, config.Config{})

	out, err := it.Compare(context.Background(), dto.CompareInput{HubSince: "2025-04-01"})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if out.Sessions != 0 || out.Skipped.BeforeHubSince != 2 {
		t.Fatalf("hub-since filter wrong: %+v", out)
	}
}
