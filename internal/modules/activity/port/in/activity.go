package in

import (
	"context"

	"tally/internal/modules/activity/dto"
)

type Usecase interface {
	Detect(ctx context.Context, input dto.DetectInput) (dto.DetectOutput, error)
	DailyHours(ctx context.Context, input dto.DetectInput) (dto.DailyHoursOutput, error)
}
