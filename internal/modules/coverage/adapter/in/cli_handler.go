package in

import (
	"context"

	"tally/internal/modules/coverage/dto"
	coveragein "tally/internal/modules/coverage/port/in"
	ingestdto "tally/internal/modules/ingest/dto"
)

type CLIHandler struct {
	usecase coveragein.Usecase
}

func NewCLIHandler(usecase coveragein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Compute(ctx context.Context, locations []ingestdto.LocationEvents) (dto.ComputeOutput, error) {
	return h.usecase.Compute(ctx, dto.ComputeInput{Locations: locations})
}
