package in

import (
	"context"

	"tally/internal/modules/metrics/dto"
)

type Usecase interface {
	// Compare runs the full pipeline: collect events, segment sessions,
	// restrict to trustworthy days, classify repos, match commits, and
	// aggregate per the grouping mode.
	Compare(ctx context.Context, input dto.CompareInput) (dto.CompareOutput, error)
	// RepoStats reports per-commit and per-day line stats for repositories.
	RepoStats(ctx context.Context, input dto.RepoStatsInput) (dto.RepoStatsOutput, error)
	// LatestDaily loads the most recent projected run from a sqlite file.
	LatestDaily(ctx context.Context, dbPath string) ([]dto.DayRow, error)
}
