package usecase

import (
	"context"

	"tally/internal/modules/activity/domain"
	"tally/internal/modules/activity/dto"
	"tally/internal/modules/activity/service"
)

type Interactor struct {
	svc *service.ActivityService
}

func NewInteractor(svc *service.ActivityService) *Interactor {
	return &Interactor{svc: svc}
}

func (i *Interactor) Detect(ctx context.Context, input dto.DetectInput) (dto.DetectOutput, error) {
	sessions := i.svc.Sessions(input.Events, input.ProjectFilter)
	sittings := i.svc.Sittings(input.Events)
	return dto.DetectOutput{
		Sessions: toSessionDTOs(sessions),
		Sittings: toSittingDTOs(sittings),
	}, nil
}

func (i *Interactor) DailyHours(ctx context.Context, input dto.DetectInput) (dto.DailyHoursOutput, error) {
	sessions := i.svc.Sessions(input.Events, input.ProjectFilter)
	sittings := i.svc.Sittings(input.Events)
	rows := i.svc.DailyHours(sessions, sittings, input.ProjectFilter != "")

	out := dto.DailyHoursOutput{Rows: make([]dto.DayHours, 0, len(rows))}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.DayHours{
			Day:          r.Day,
			Sessions:     r.Sessions,
			SessionHours: r.SessionHours,
			Sittings:     r.Sittings,
			SittingHours: r.SittingHours,
		})
	}
	return out, nil
}

func toSessionDTOs(sessions []domain.Session) []dto.Session {
	out := make([]dto.Session, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, dto.Session{
			Project:          s.Project,
			ProjectPath:      s.ProjectPath,
			StartTS:          s.StartTS,
			EndTS:            s.EndTS,
			Interactions:     s.Interactions,
			EstimatedSeconds: s.Estimated(),
		})
	}
	return out
}

func toSittingDTOs(sittings []domain.Sitting) []dto.Sitting {
	out := make([]dto.Sitting, 0, len(sittings))
	for _, s := range sittings {
		out = append(out, dto.Sitting{
			StartTS:          s.StartTS,
			EndTS:            s.EndTS,
			Interactions:     s.Interactions,
			EstimatedSeconds: s.Estimated(),
			Projects:         append([]string(nil), s.Projects...),
		})
	}
	return out
}
