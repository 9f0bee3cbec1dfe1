package out

import (
	"context"

	"tally/internal/modules/metrics/domain"
	"tally/internal/modules/metrics/dto"
)

// CommitSource queries a repository's git history.
type CommitSource interface {
	// CommitsBetween counts non-merge commits and their line delta inside
	// [startTS, endTS], optionally filtered by author regexp. Failures
	// degrade to zero counts.
	CommitsBetween(ctx context.Context, repoRoot string, startTS, endTS float64, author string) (commits, delta int)
	// Log returns the repo's non-merge commits with numstat totals, newest
	// first, bounded by inclusive YYYY-MM-DD days when set.
	Log(ctx context.Context, repoRoot, author, since, until string) ([]domain.Commit, error)
}

// Projector persists a compare run for later browsing.
type Projector interface {
	Project(ctx context.Context, dbPath string, run dto.RunRecord, days []dto.DayRow) error
	// LatestDaily loads the day rows of the most recent projected run.
	LatestDaily(ctx context.Context, dbPath string) ([]dto.DayRow, error)
}
