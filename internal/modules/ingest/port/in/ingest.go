package in

import (
	"context"

	"tally/internal/modules/ingest/dto"
)

type Usecase interface {
	Collect(ctx context.Context, input dto.CollectInput) (dto.CollectOutput, error)
	Sync(ctx context.Context, input dto.SyncInput) (dto.SyncOutput, error)
}
