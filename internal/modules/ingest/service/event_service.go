package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"

	"tally/internal/modules/ingest/domain"
	ingestout "tally/internal/modules/ingest/port/out"
)

// LocationEvents pairs one physical scan location with its events.
type LocationEvents struct {
	Source  string
	Machine string
	Events  []domain.Event
}

// EventService runs the configured scanners over direct source directories
// or a multi-machine bundle and merges the results into one sorted stream.
type EventService struct {
	scanners []ingestout.EventScanner
	syncer   ingestout.TreeSyncer
	log      hclog.Logger
}

func NewEventService(scanners []ingestout.EventScanner, syncer ingestout.TreeSyncer, log hclog.Logger) *EventService {
	return &EventService{scanners: scanners, syncer: syncer, log: log}
}

// CollectDirect scans each source's single root directory. roots maps source
// name to its directory; sources missing from the map are skipped.
func (s *EventService) CollectDirect(ctx context.Context, roots map[string]string) ([]LocationEvents, error) {
	var locations []LocationEvents
	for _, scanner := range s.scanners {
		root, ok := roots[scanner.Source()]
		if !ok || root == "" {
			continue
		}
		events, err := scanner.Scan(ctx, root)
		if err != nil {
			return locations, err
		}
		if len(events) == 0 {
			continue
		}
		locations = append(locations, LocationEvents{Source: scanner.Source(), Events: events})
	}
	return locations, nil
}

// CollectBundle discovers one location per machine subdirectory per source.
// A machine missing a source simply contributes nothing for it.
func (s *EventService) CollectBundle(ctx context.Context, bundle string) ([]LocationEvents, error) {
	entries, err := os.ReadDir(bundle)
	if err != nil {
		return nil, fmt.Errorf("read bundle dir: %w", err)
	}

	var locations []LocationEvents
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		machine := entry.Name()
		for _, scanner := range s.scanners {
			root := filepath.Join(bundle, machine, scanner.Source())
			if _, statErr := os.Stat(root); statErr != nil {
				continue
			}
			events, scanErr := scanner.Scan(ctx, root)
			if scanErr != nil {
				return locations, scanErr
			}
			if len(events) == 0 {
				continue
			}
			locations = append(locations, LocationEvents{
				Source:  scanner.Source(),
				Machine: machine,
				Events:  events,
			})
		}
	}
	return locations, nil
}

// Merge flattens location streams into a single sorted event list.
func (s *EventService) Merge(locations []LocationEvents) []domain.Event {
	var all []domain.Event
	for _, loc := range locations {
		all = append(all, loc.Events...)
	}
	domain.SortEvents(all)
	return all
}

// Sync copies each local source tree into <bundle>/<machine>/<source>.
// Returns the "src -> dst" pairs actually copied.
func (s *EventService) Sync(ctx context.Context, bundle, machine string) ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}

	machineDir := filepath.Join(bundle, machine)
	if err := os.MkdirAll(machineDir, 0o755); err != nil {
		return nil, fmt.Errorf("create machine dir: %w", err)
	}

	var synced []string
	for _, scanner := range s.scanners {
		src := filepath.Join(home, "."+scanner.Source())
		info, statErr := os.Stat(src)
		if statErr != nil || !info.IsDir() {
			continue
		}
		dst := filepath.Join(machineDir, scanner.Source())
		if copyErr := s.syncer.CopyTree(ctx, src, dst); copyErr != nil {
			return synced, copyErr
		}
		synced = append(synced, fmt.Sprintf("%s -> %s", src, dst))
	}
	return synced, nil
}
