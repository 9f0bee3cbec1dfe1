package out

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"

	ingestout "tally/internal/modules/ingest/port/out"
)

// FSTreeSyncer copies a log tree file by file, overwriting existing files
// and skipping anything unreadable. Log bundles are append-mostly, so a
// plain overwrite walk is enough.
type FSTreeSyncer struct {
	log hclog.Logger
}

func NewFSTreeSyncer(log hclog.Logger) ingestout.TreeSyncer {
	return &FSTreeSyncer{log: log}
}

func (s *FSTreeSyncer) CopyTree(ctx context.Context, src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Debug("sync: skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return relErr
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if copyErr := copyFile(path, target); copyErr != nil {
			s.log.Debug("sync: skipping file", "path", path, "error", copyErr)
		}
		return nil
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
