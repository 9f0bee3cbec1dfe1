package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"

	activitydto "tally/internal/modules/activity/dto"
	activityin "tally/internal/modules/activity/port/in"
	classifydto "tally/internal/modules/classify/dto"
	classifyin "tally/internal/modules/classify/port/in"
	coveragedto "tally/internal/modules/coverage/dto"
	coveragein "tally/internal/modules/coverage/port/in"
	ingestdto "tally/internal/modules/ingest/dto"
	ingestin "tally/internal/modules/ingest/port/in"
	"tally/internal/modules/metrics/domain"
	"tally/internal/modules/metrics/dto"
	"tally/internal/modules/metrics/port/out"
	"tally/internal/modules/metrics/service"
	"tally/internal/platform/config"
	apperrors "tally/internal/platform/errors"
)

// Interactor orchestrates the other modules into the compare pipeline.
type Interactor struct {
	ingest    ingestin.Usecase
	activity  activityin.Usecase
	coverage  coveragein.Usecase
	classify  classifyin.Usecase
	svc       *service.MetricsService
	projector out.Projector
	cfg       config.Config
	log       hclog.Logger
}

func NewInteractor(
	ingest ingestin.Usecase,
	activity activityin.Usecase,
	coverage coveragein.Usecase,
	classify classifyin.Usecase,
	svc *service.MetricsService,
	projector out.Projector,
	cfg config.Config,
	log hclog.Logger,
) *Interactor {
	return &Interactor{
		ingest:    ingest,
		activity:  activity,
		coverage:  coverage,
		classify:  classify,
		svc:       svc,
		projector: projector,
		cfg:       cfg,
		log:       log,
	}
}

func (i *Interactor) Compare(ctx context.Context, input dto.CompareInput) (dto.CompareOutput, error) {
	mode := input.Mode
	if mode == "" {
		mode = dto.ModeBucket
	}
	switch mode {
	case dto.ModeBucket, dto.ModeDay, dto.ModeDayBucket:
	default:
		return dto.CompareOutput{}, fmt.Errorf("grouping mode %q: %w", mode, apperrors.ErrInvalidInput)
	}

	collected, err := i.ingest.Collect(ctx, ingestdto.CollectInput{
		ClaudeDir: input.ClaudeDir,
		CodexDir:  input.CodexDir,
		Bundle:    input.Bundle,
	})
	if err != nil {
		return dto.CompareOutput{}, err
	}
	events := applyConfig(i.cfg, collected.Events)

	detected, err := i.activity.Detect(ctx, activitydto.DetectInput{
		Events:        events,
		ProjectFilter: input.Project,
	})
	if err != nil {
		return dto.CompareOutput{}, err
	}

	cov, err := i.coverage.Compute(ctx, coveragedto.ComputeInput{Locations: collected.Locations})
	if err != nil {
		return dto.CompareOutput{}, err
	}

	resolved, err := i.classify.Resolve(ctx, classifydto.ResolveInput{
		Paths: sessionPaths(detected.Sessions),
	})
	if err != nil {
		return dto.CompareOutput{}, err
	}

	metrics, skipped := i.svc.BuildSessionMetrics(ctx,
		detected.Sessions, resolved.PathRepo, resolved.Repos, i.classify.Bucket,
		cov.Effective, service.Filters{
			Since:    input.Since,
			HubSince: input.HubSince,
			Author:   input.Author,
		})

	output := dto.CompareOutput{
		Mode:     mode,
		Sessions: len(metrics),
		Skipped:  skipped,
		Projects: toProjectRows(domain.AggregateByProject(metrics)),
	}
	switch mode {
	case dto.ModeBucket:
		output.Buckets = toBucketRows(domain.AggregateByBucket(metrics))
	case dto.ModeDay:
		output.Days = toDayRows(domain.AggregateByDay(metrics))
	case dto.ModeDayBucket:
		output.Days = toDayRows(domain.AggregateByDayAndBucket(metrics))
	}

	if input.DBPath != "" {
		run := dto.RunRecord{
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			Author:    input.Author,
			Mode:      mode,
			Sessions:  len(metrics),
		}
		// The projection always stores the finest grouping so the browser
		// can re-aggregate without another run.
		days := toDayRows(domain.AggregateByDayAndBucket(metrics))
		if err := i.projector.Project(ctx, input.DBPath, run, days); err != nil {
			return dto.CompareOutput{}, err
		}
	}
	return output, nil
}

func (i *Interactor) RepoStats(ctx context.Context, input dto.RepoStatsInput) (dto.RepoStatsOutput, error) {
	resolved, err := i.classify.Resolve(ctx, classifydto.ResolveInput{Paths: input.Paths})
	if err != nil {
		return dto.RepoStatsOutput{}, err
	}

	roots := make([]string, 0, len(input.Paths))
	seen := make(map[string]bool)
	for _, path := range input.Paths {
		root, ok := resolved.PathRepo[path]
		if !ok {
			i.log.Warn("not a repository", "path", path)
			continue
		}
		if !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}
	}

	var output dto.RepoStatsOutput
	for _, root := range roots {
		commits, days, statErr := i.svc.RepoStats(ctx, root, input.Author, input.Since, input.Until, input.Outliers)
		if statErr != nil {
			i.log.Warn("repo stats failed", "repo", root, "error", statErr)
			continue
		}
		name := filepath.Base(root)
		for _, c := range commits {
			output.Commits = append(output.Commits, dto.CommitRow{
				Repo:        name,
				Hash:        c.Hash,
				Day:         c.Day(),
				Added:       c.Added,
				Deleted:     c.Deleted,
				Files:       c.Files,
				BinaryFiles: c.BinaryFiles,
				Outlier:     c.Outlier,
			})
		}
		for _, d := range days {
			output.Days = append(output.Days, dto.RepoDayRow{
				Repo:           name,
				Day:            d.Day,
				Commits:        d.Commits,
				Added:          d.Added,
				Deleted:        d.Deleted,
				SpanHours:      d.SpanHours,
				EstimatedHours: d.EstimatedHours,
			})
		}
	}
	if len(output.Commits) == 0 && len(output.Days) == 0 {
		return output, apperrors.ErrNoData
	}
	return output, nil
}

func (i *Interactor) LatestDaily(ctx context.Context, dbPath string) ([]dto.DayRow, error) {
	return i.projector.LatestDaily(ctx, dbPath)
}

// applyConfig rewrites event paths through the remap table and drops events
// from ignored paths and projects.
func applyConfig(cfg config.Config, events []ingestdto.Event) []ingestdto.Event {
	out := make([]ingestdto.Event, 0, len(events))
	for _, e := range events {
		mapped, keep := cfg.MapPath(e.Project)
		if !keep {
			continue
		}
		e.Project = mapped
		out = append(out, e)
	}
	return out
}

func sessionPaths(sessions []activitydto.Session) []string {
	var paths []string
	seen := make(map[string]bool)
	for _, s := range sessions {
		if !seen[s.ProjectPath] {
			seen[s.ProjectPath] = true
			paths = append(paths, s.ProjectPath)
		}
	}
	sort.Strings(paths)
	return paths
}

func toBucketRows(summaries []domain.BucketSummary) []dto.BucketRow {
	out := make([]dto.BucketRow, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.BucketRow{
			Bucket:         s.Bucket,
			Sessions:       s.Sessions,
			Hours:          s.Hours,
			Commits:        s.Commits,
			Delta:          s.Delta,
			DeltaPerHour:   s.DeltaPerHour(),
			CommitsPerHour: s.CommitsPerHour(),
		})
	}
	return out
}

func toDayRows(summaries []domain.DaySummary) []dto.DayRow {
	out := make([]dto.DayRow, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.DayRow{
			Day:            s.Day,
			Bucket:         s.Bucket,
			Sessions:       s.Sessions,
			Hours:          s.Hours,
			Commits:        s.Commits,
			Delta:          s.Delta,
			DeltaPerHour:   s.DeltaPerHour(),
			CommitsPerHour: s.CommitsPerHour(),
		})
	}
	return out
}

func toProjectRows(summaries []domain.ProjectSummary) []dto.ProjectRow {
	out := make([]dto.ProjectRow, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.ProjectRow{
			Project:  s.Project,
			Bucket:   s.Bucket,
			Sessions: s.Sessions,
			Hours:    s.Hours,
		})
	}
	return out
}
