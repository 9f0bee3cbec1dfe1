package in

import (
	"context"

	"tally/internal/modules/coverage/dto"
)

type Usecase interface {
	Compute(ctx context.Context, input dto.ComputeInput) (dto.ComputeOutput, error)
}
