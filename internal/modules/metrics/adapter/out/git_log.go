package out

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"tally/internal/modules/metrics/domain"
)

// GitCommitSource reads commit history by shelling out to git, the same way
// repo resolution does. Every failure degrades to an empty result so one
// broken checkout never kills a run.
type GitCommitSource struct {
	log hclog.Logger
}

func NewGitCommitSource(log hclog.Logger) *GitCommitSource {
	return &GitCommitSource{log: log}
}

const commitMarker = "@"

func isoInstant(ts float64) string {
	return time.Unix(int64(ts), 0).UTC().Format("2006-01-02T15:04:05+00:00")
}

func (s *GitCommitSource) CommitsBetween(ctx context.Context, repoRoot string, startTS, endTS float64, author string) (int, int) {
	args := []string{
		"-C", repoRoot, "log", "--no-merges",
		"--format=" + commitMarker + "%H|%ct",
		"--after=" + isoInstant(startTS),
		"--before=" + isoInstant(endTS),
	}
	if author != "" {
		args = append(args, "--author="+author)
	}
	args = append(args, "--numstat")

	commits, err := s.runLog(ctx, args)
	if err != nil {
		s.log.Debug("commit window query failed", "repo", repoRoot, "error", err)
		return 0, 0
	}
	delta := 0
	for _, c := range commits {
		delta += c.Delta()
	}
	return len(commits), delta
}

func (s *GitCommitSource) Log(ctx context.Context, repoRoot, author, since, until string) ([]domain.Commit, error) {
	args := []string{
		"-C", repoRoot, "log", "--no-merges",
		"--format=" + commitMarker + "%H|%ct",
	}
	if author != "" {
		args = append(args, "--author="+author)
	}
	if since != "" {
		args = append(args, "--since="+since+"T00:00:00+00:00")
	}
	if until != "" {
		args = append(args, "--until="+until+"T23:59:59+00:00")
	}
	args = append(args, "--numstat")

	commits, err := s.runLog(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("git log %s: %w", repoRoot, err)
	}
	return commits, nil
}

func (s *GitCommitSource) runLog(ctx context.Context, args []string) ([]domain.Commit, error) {
	out, err := exec.CommandContext(ctx, "git", args...).Output()
	if err != nil {
		return nil, err
	}
	return parseLog(out), nil
}

// parseLog walks marker-format output: a "@<hash>|<epoch>" line opens a
// commit, numstat lines ("added<TAB>deleted<TAB>path") accumulate into it.
// Binary files show "-" counts and contribute to the file count only.
func parseLog(out []byte) []domain.Commit {
	var commits []domain.Commit
	var cur *domain.Commit

	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, commitMarker) {
			hash, epoch, ok := strings.Cut(line[len(commitMarker):], "|")
			if !ok {
				continue
			}
			ts, err := strconv.ParseInt(epoch, 10, 64)
			if err != nil {
				continue
			}
			commits = append(commits, domain.Commit{Hash: hash, Timestamp: ts})
			cur = &commits[len(commits)-1]
			continue
		}
		if cur == nil {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) != 3 {
			continue
		}
		cur.Files++
		if fields[0] == "-" || fields[1] == "-" {
			cur.BinaryFiles++
			continue
		}
		added, errA := strconv.Atoi(fields[0])
		deleted, errD := strconv.Atoi(fields[1])
		if errA != nil || errD != nil {
			continue
		}
		cur.Added += added
		cur.Deleted += deleted
	}
	return commits
}
