package service

import (
	"context"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	activitydto "tally/internal/modules/activity/dto"
	classifydto "tally/internal/modules/classify/dto"
	coveragedto "tally/internal/modules/coverage/dto"
	"tally/internal/modules/metrics/domain"
	"tally/internal/modules/metrics/dto"
	"tally/internal/modules/metrics/port/out"
	"tally/internal/platform/config"
)

type MetricsService struct {
	commits out.CommitSource
	cfg     config.Config
	log     hclog.Logger
}

func NewMetricsService(commits out.CommitSource, cfg config.Config, log hclog.Logger) *MetricsService {
	return &MetricsService{commits: commits, cfg: cfg, log: log}
}

// Filters are the session-level exclusions applied before aggregation.
type Filters struct {
	Since    string
	HubSince string
	Author   string
}

func dayOf(ts float64) string {
	return time.Unix(int64(ts), 0).UTC().Format("2006-01-02")
}

func covered(windows []coveragedto.Window, day string) bool {
	for _, w := range windows {
		if w.Start <= day && day <= w.End {
			return true
		}
	}
	return false
}

// BuildSessionMetrics joins sessions with their repo bucket and the commits
// landed inside each session's time window. Sessions outside the coverage
// windows, before the since bounds, or without a repository drop out and
// are tallied in the skip counts. Nil windows mean no coverage restriction.
func (s *MetricsService) BuildSessionMetrics(
	ctx context.Context,
	sessions []activitydto.Session,
	pathRepo map[string]string,
	repos map[string]classifydto.RepoInfo,
	bucketFor func(classifydto.RepoInfo, string) string,
	windows []coveragedto.Window,
	filters Filters,
) ([]domain.SessionMetrics, dto.SkipCounts) {
	var metrics []domain.SessionMetrics
	var skipped dto.SkipCounts

	for _, sess := range sessions {
		day := dayOf(sess.StartTS)
		if windows != nil && !covered(windows, day) {
			skipped.OutsideCoverage++
			continue
		}
		if filters.Since != "" && day < filters.Since {
			skipped.BeforeSince++
			continue
		}

		root, ok := pathRepo[sess.ProjectPath]
		if !ok {
			s.log.Debug("session outside any repository", "project", sess.ProjectPath)
			skipped.NoRepo++
			continue
		}
		repo := repos[root]
		if repo.Beadhub && filters.HubSince != "" && day < filters.HubSince {
			skipped.BeforeHubSince++
			continue
		}

		commits, delta := s.commits.CommitsBetween(ctx, root, sess.StartTS, sess.EndTS, filters.Author)
		parent := filepath.Base(filepath.Dir(sess.ProjectPath))
		metrics = append(metrics, domain.SessionMetrics{
			Day:     day,
			Project: s.cfg.RenameProject(parent, sess.Project),
			Bucket:  bucketFor(repo, day),
			Hours:   sess.EstimatedSeconds / 3600.0,
			Commits: commits,
			Delta:   delta,
		})
	}
	return metrics, skipped
}

// RepoStats reads one repository's commit history, flags outliers, and
// rolls the commits up by day.
func (s *MetricsService) RepoStats(ctx context.Context, repoRoot, author, since, until string, skipOutliers bool) ([]domain.Commit, []domain.RepoDay, error) {
	commits, err := s.commits.Log(ctx, repoRoot, author, since, until)
	if err != nil {
		return nil, nil, err
	}
	domain.FlagOutliers(commits)
	return commits, domain.DailyRollup(commits, skipOutliers), nil
}
