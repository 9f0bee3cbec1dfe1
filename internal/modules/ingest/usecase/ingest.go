package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tally/internal/modules/ingest/domain"
	"tally/internal/modules/ingest/dto"
	ingestin "tally/internal/modules/ingest/port/in"
	"tally/internal/modules/ingest/service"
	apperrors "tally/internal/platform/errors"
)

type Interactor struct {
	svc *service.EventService
}

func NewInteractor(svc *service.EventService) ingestin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Collect(ctx context.Context, input dto.CollectInput) (dto.CollectOutput, error) {
	var locations []service.LocationEvents
	var err error

	if input.Bundle != "" {
		info, statErr := os.Stat(input.Bundle)
		if statErr != nil {
			return dto.CollectOutput{}, fmt.Errorf("log bundle %s: %w", input.Bundle, statErr)
		}
		if !info.IsDir() {
			return dto.CollectOutput{}, fmt.Errorf("log bundle %s is not a directory: %w", input.Bundle, apperrors.ErrInvalidInput)
		}
		locations, err = i.svc.CollectBundle(ctx, input.Bundle)
	} else {
		roots, rootsErr := defaultRoots(input)
		if rootsErr != nil {
			return dto.CollectOutput{}, rootsErr
		}
		locations, err = i.svc.CollectDirect(ctx, roots)
	}
	if err != nil {
		return dto.CollectOutput{}, err
	}

	merged := i.svc.Merge(locations)
	out := dto.CollectOutput{Events: toDTOEvents(merged)}
	for _, loc := range locations {
		out.Locations = append(out.Locations, dto.LocationEvents{
			Source:  loc.Source,
			Machine: loc.Machine,
			Events:  toDTOEvents(loc.Events),
		})
	}
	return out, nil
}

func (i *Interactor) Sync(ctx context.Context, input dto.SyncInput) (dto.SyncOutput, error) {
	if input.Bundle == "" {
		return dto.SyncOutput{}, apperrors.ErrNoBundle
	}
	info, err := os.Stat(input.Bundle)
	if err != nil {
		return dto.SyncOutput{}, fmt.Errorf("log bundle %s: %w", input.Bundle, err)
	}
	if !info.IsDir() {
		return dto.SyncOutput{}, fmt.Errorf("log bundle %s is not a directory: %w", input.Bundle, apperrors.ErrInvalidInput)
	}

	machine := input.Machine
	if machine == "" {
		hostname, hostErr := os.Hostname()
		if hostErr != nil {
			return dto.SyncOutput{}, fmt.Errorf("resolve hostname: %w", hostErr)
		}
		machine = hostname
	}

	synced, err := i.svc.Sync(ctx, input.Bundle, machine)
	if err != nil {
		return dto.SyncOutput{}, err
	}
	return dto.SyncOutput{Machine: machine, Synced: synced}, nil
}

func defaultRoots(input dto.CollectInput) (map[string]string, error) {
	claudeDir := input.ClaudeDir
	codexDir := input.CodexDir
	if claudeDir == "" || codexDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		if claudeDir == "" {
			claudeDir = filepath.Join(home, ".claude")
		}
		if codexDir == "" {
			codexDir = filepath.Join(home, ".codex")
		}
	}
	return map[string]string{"claude": claudeDir, "codex": codexDir}, nil
}

func toDTOEvents(events []domain.Event) []dto.Event {
	out := make([]dto.Event, 0, len(events))
	for _, e := range events {
		out = append(out, dto.Event{Timestamp: e.Timestamp, Role: string(e.Role), Project: e.Project})
	}
	return out
}
