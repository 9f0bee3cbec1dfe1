package in

import (
	"context"

	"tally/internal/modules/activity/dto"
	activityin "tally/internal/modules/activity/port/in"
	ingestdto "tally/internal/modules/ingest/dto"
)

type CLIHandler struct {
	usecase activityin.Usecase
}

func NewCLIHandler(usecase activityin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Detect(ctx context.Context, events []ingestdto.Event, projectFilter string) (dto.DetectOutput, error) {
	return h.usecase.Detect(ctx, dto.DetectInput{Events: events, ProjectFilter: projectFilter})
}

func (h CLIHandler) DailyHours(ctx context.Context, events []ingestdto.Event, projectFilter string) (dto.DailyHoursOutput, error) {
	return h.usecase.DailyHours(ctx, dto.DetectInput{Events: events, ProjectFilter: projectFilter})
}
