package in

import (
	"context"

	"tally/internal/modules/ingest/dto"
	ingestin "tally/internal/modules/ingest/port/in"
)

type CLIHandler struct {
	usecase ingestin.Usecase
}

func NewCLIHandler(usecase ingestin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Collect(ctx context.Context, claudeDir, codexDir, bundle string) (dto.CollectOutput, error) {
	return h.usecase.Collect(ctx, dto.CollectInput{ClaudeDir: claudeDir, CodexDir: codexDir, Bundle: bundle})
}

func (h CLIHandler) Sync(ctx context.Context, bundle, machine string) (dto.SyncOutput, error) {
	return h.usecase.Sync(ctx, dto.SyncInput{Bundle: bundle, Machine: machine})
}
