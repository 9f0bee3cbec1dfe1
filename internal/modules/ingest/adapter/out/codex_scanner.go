package out

import (
	"bufio"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"tally/internal/modules/ingest/domain"
	ingestout "tally/internal/modules/ingest/port/out"
)

// CodexScanner reads Codex session logs from <root>/sessions/YYYY/MM/DD/.
// A session_meta record establishes the working directory for the records
// that follow it; message records carry the role in a nested payload, and
// function calls are attributed to the assistant.
type CodexScanner struct {
	log hclog.Logger
}

func NewCodexScanner(log hclog.Logger) ingestout.EventScanner {
	return &CodexScanner{log: log}
}

func (s *CodexScanner) Source() string { return "codex" }

func (s *CodexScanner) Scan(ctx context.Context, root string) ([]domain.Event, error) {
	sessionsDir := filepath.Join(root, "sessions")
	if _, err := os.Stat(sessionsDir); err != nil {
		return nil, nil
	}

	var events []domain.Event
	walkErr := filepath.WalkDir(sessionsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Debug("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".jsonl") {
			return nil
		}
		events = append(events, s.scanFile(path)...)
		return nil
	})
	if walkErr != nil && walkErr != ctx.Err() {
		return events, walkErr
	}
	return events, ctx.Err()
}

func (s *CodexScanner) scanFile(path string) []domain.Event {
	f, err := os.Open(path)
	if err != nil {
		s.log.Debug("skipping unreadable session file", "path", path, "error", err)
		return nil
	}
	defer f.Close()

	var events []domain.Event
	var cwd string
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
			Payload   struct {
				Type string `json:"type"`
				Role string `json:"role"`
				CWD  string `json:"cwd"`
			} `json:"payload"`
		}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}

		if rec.Type == "session_meta" {
			cwd = rec.Payload.CWD
			continue
		}

		role, ok := codexRole(rec.Type, rec.Payload.Type, rec.Payload.Role)
		if !ok {
			continue
		}
		ts, tsOK := domain.ParseTimestamp(rec.Timestamp)
		if !tsOK {
			continue
		}
		// Records before any session_meta have no working directory.
		if cwd == "" {
			continue
		}
		events = append(events, domain.Event{Timestamp: ts, Role: role, Project: cwd})
	}
	return events
}

func codexRole(recType, payloadType, payloadRole string) (domain.Role, bool) {
	switch recType {
	case "response_item":
		switch payloadType {
		case "message":
			role := domain.Role(payloadRole)
			if role == domain.RoleUser || role == domain.RoleAssistant {
				return role, true
			}
		case "function_call":
			return domain.RoleAssistant, true
		}
	case "event_msg":
		if payloadType == "user_message" {
			return domain.RoleUser, true
		}
	}
	return "", false
}
