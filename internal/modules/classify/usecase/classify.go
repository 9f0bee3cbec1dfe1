package usecase

import (
	"context"

	"tally/internal/modules/classify/domain"
	"tally/internal/modules/classify/dto"
	"tally/internal/modules/classify/service"
)

type Interactor struct {
	svc *service.ClassifyService
}

func NewInteractor(svc *service.ClassifyService) *Interactor {
	return &Interactor{svc: svc}
}

func (i *Interactor) Resolve(ctx context.Context, input dto.ResolveInput) (dto.ResolveOutput, error) {
	return i.svc.Resolve(ctx, input.Paths), nil
}

func (i *Interactor) Bucket(repo dto.RepoInfo, day string) string {
	return domain.Classify(repo.BeadsDate, repo.Beadhub, day)
}
