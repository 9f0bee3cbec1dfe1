package in

import (
	"context"

	"tally/internal/modules/classify/dto"
	classifyin "tally/internal/modules/classify/port/in"
)

type CLIHandler struct {
	usecase classifyin.Usecase
}

func NewCLIHandler(usecase classifyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Resolve(ctx context.Context, paths []string) (dto.ResolveOutput, error) {
	return h.usecase.Resolve(ctx, dto.ResolveInput{Paths: paths})
}
