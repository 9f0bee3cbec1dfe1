package in

import (
	"context"

	"tally/internal/modules/metrics/dto"
	metricsin "tally/internal/modules/metrics/port/in"
)

type CLIHandler struct {
	usecase metricsin.Usecase
}

func NewCLIHandler(usecase metricsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Compare(ctx context.Context, input dto.CompareInput) (dto.CompareOutput, error) {
	return h.usecase.Compare(ctx, input)
}

func (h CLIHandler) RepoStats(ctx context.Context, input dto.RepoStatsInput) (dto.RepoStatsOutput, error) {
	return h.usecase.RepoStats(ctx, input)
}

func (h CLIHandler) LatestDaily(ctx context.Context, dbPath string) ([]dto.DayRow, error) {
	return h.usecase.LatestDaily(ctx, dbPath)
}
