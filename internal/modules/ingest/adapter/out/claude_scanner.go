package out

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"tally/internal/modules/ingest/domain"
	ingestout "tally/internal/modules/ingest/port/out"
)

const scanBufSize = 1024 * 1024

// ClaudeScanner reads Claude Code session logs. The tree layout is
// <root>/projects/<encoded-path>/<session-id>.jsonl with one JSON record per
// line; records of type "user" or "assistant" carry a timestamp and cwd.
type ClaudeScanner struct {
	log hclog.Logger
}

func NewClaudeScanner(log hclog.Logger) ingestout.EventScanner {
	return &ClaudeScanner{log: log}
}

func (s *ClaudeScanner) Source() string { return "claude" }

func (s *ClaudeScanner) Scan(ctx context.Context, root string) ([]domain.Event, error) {
	projectsDir := filepath.Join(root, "projects")
	projectEntries, err := os.ReadDir(projectsDir)
	if err != nil {
		// Missing or unreadable root contributes nothing.
		return nil, nil
	}

	var events []domain.Event
	for _, projEntry := range projectEntries {
		if err := ctx.Err(); err != nil {
			return events, err
		}
		if !projEntry.IsDir() {
			continue
		}
		projPath := filepath.Join(projectsDir, projEntry.Name())
		fileEntries, err := os.ReadDir(projPath)
		if err != nil {
			s.log.Debug("skipping unreadable project dir", "path", projPath, "error", err)
			continue
		}
		for _, fe := range fileEntries {
			// only top-level .jsonl files, skip directories (subagents)
			if fe.IsDir() || !strings.HasSuffix(fe.Name(), ".jsonl") {
				continue
			}
			filePath := filepath.Join(projPath, fe.Name())
			events = append(events, s.scanFile(filePath, projEntry.Name())...)
		}
	}
	return events, nil
}

func (s *ClaudeScanner) scanFile(path, encodedProject string) []domain.Event {
	f, err := os.Open(path)
	if err != nil {
		s.log.Debug("skipping unreadable session file", "path", path, "error", err)
		return nil
	}
	defer f.Close()

	var events []domain.Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, scanBufSize), scanBufSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec struct {
			Type      string `json:"type"`
			Timestamp any    `json:"timestamp"`
			CWD       string `json:"cwd"`
		}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		role := domain.Role(rec.Type)
		if role != domain.RoleUser && role != domain.RoleAssistant {
			continue
		}
		ts, ok := domain.ParseTimestamp(rec.Timestamp)
		if !ok {
			continue
		}
		cwd := rec.CWD
		if cwd == "" {
			cwd = decodeProjectDir(encodedProject)
		}
		events = append(events, domain.Event{Timestamp: ts, Role: role, Project: cwd})
	}
	return events
}

// decodeProjectDir recovers a working-directory path from a Claude project
// directory name: "-Users-name-projects-repo" -> "/Users/name/projects/repo".
func decodeProjectDir(name string) string {
	path := strings.ReplaceAll(name, "-", "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
