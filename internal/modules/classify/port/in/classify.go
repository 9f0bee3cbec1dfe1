package in

import (
	"context"

	"tally/internal/modules/classify/dto"
)

type Usecase interface {
	Resolve(ctx context.Context, input dto.ResolveInput) (dto.ResolveOutput, error)
	// Bucket classifies one day of work in a repo.
	Bucket(repo dto.RepoInfo, day string) string
}
