package out

import (
	"context"

	"tally/internal/modules/ingest/domain"
)

// EventScanner extracts normalized events from one source's log tree.
// Implementations are best-effort: malformed records and unreadable files
// are skipped, and a missing root yields no events rather than an error.
type EventScanner interface {
	Source() string
	Scan(ctx context.Context, root string) ([]domain.Event, error)
}

// TreeSyncer copies a local log tree into a bundle machine directory.
type TreeSyncer interface {
	CopyTree(ctx context.Context, src, dst string) error
}
