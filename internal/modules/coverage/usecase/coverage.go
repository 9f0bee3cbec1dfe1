package usecase

import (
	"context"
	"sort"

	"tally/internal/modules/coverage/domain"
	"tally/internal/modules/coverage/dto"
	"tally/internal/modules/coverage/service"
)

type Interactor struct {
	svc *service.CoverageService
}

func NewInteractor(svc *service.CoverageService) *Interactor {
	return &Interactor{svc: svc}
}

func (i *Interactor) Compute(ctx context.Context, input dto.ComputeInput) (dto.ComputeOutput, error) {
	bySource := i.svc.SourceWindows(input.Locations)

	sources := make([]string, 0, len(bySource))
	for source := range bySource {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	out := dto.ComputeOutput{}
	for _, source := range sources {
		out.Sources = append(out.Sources, dto.SourceWindows{
			Source:  source,
			Windows: toDTOWindows(bySource[source]),
		})
	}
	out.Effective = toDTOWindows(i.svc.Effective(bySource))
	return out, nil
}

func toDTOWindows(windows []domain.Window) []dto.Window {
	if windows == nil {
		return nil
	}
	out := make([]dto.Window, 0, len(windows))
	for _, w := range windows {
		out = append(out, dto.Window{Start: w.Start, End: w.End})
	}
	return out
}
