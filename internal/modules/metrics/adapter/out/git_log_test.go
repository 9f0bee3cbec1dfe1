package out

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestParseLog(t *testing.T) {
	t.Parallel()
	out := []byte(`@abc123|1740830400
10	2	main.go
-	-	image.png
3	0	cmd/root.go

@def456|1740834000
junk line without tabs
1	1	README.md
`)
	commits := parseLog(out)
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}

	first := commits[0]
	if first.Hash != "abc123" || first.Timestamp != 1740830400 {
		t.Fatalf("first header wrong: %+v", first)
	}
	if first.Added != 13 || first.Deleted != 2 {
		t.Fatalf("first sums wrong: %+v", first)
	}
	if first.Files != 3 || first.BinaryFiles != 1 {
		t.Fatalf("binary files count files only: %+v", first)
	}

	second := commits[1]
	if second.Added != 1 || second.Deleted != 1 || second.Files != 1 {
		t.Fatalf("second commit wrong: %+v", second)
	}
}

func TestParseLogEmpty(t *testing.T) {
	t.Parallel()
	if commits := parseLog(nil); len(commits) != 0 {
		t.Fatalf("expected no commits, got %d", len(commits))
	}
}

func gitCmd(t *testing.T, repo, date string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", repo}, args...)...)
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=alice", "GIT_AUTHOR_EMAIL=alice@example.com",
		"GIT_COMMITTER_NAME=alice", "GIT_COMMITTER_EMAIL=alice@example.com",
	)
	if date != "" {
		cmd.Env = append(cmd.Env, "GIT_AUTHOR_DATE="+date, "GIT_COMMITTER_DATE="+date)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func TestCommitsBetween(t *testing.T) {
	t.Parallel()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	repo := t.TempDir()
	gitCmd(t, repo, "", "init", "-q")

	write := func(rel, content string) {
		if err := os.WriteFile(filepath.Join(repo, rel), []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	write("a.txt", "one\ntwo\n")
	gitCmd(t, repo, "2025-03-01T12:10:00+00:00", "add", "a.txt")
	gitCmd(t, repo, "2025-03-01T12:10:00+00:00", "commit", "-q", "-m", "inside")
	write("a.txt", "one\ntwo\nthree\n")
	gitCmd(t, repo, "2025-03-01T15:00:00+00:00", "commit", "-q", "-am", "outside")

	src := NewGitCommitSource(hclog.NewNullLogger())
	// Window covers only the first commit: noon to 13:00 UTC.
	commits, delta := src.CommitsBetween(context.Background(), repo, 1740830400, 1740834000, "")
	if commits != 1 {
		t.Fatalf("expected 1 commit in window, got %d", commits)
	}
	if delta != 2 {
		t.Fatalf("expected 2-line delta, got %d", delta)
	}

	// An author regexp that matches nobody.
	if commits, _ := src.CommitsBetween(context.Background(), repo, 1740830400, 1740834000, "nobody"); commits != 0 {
		t.Fatalf("author filter failed, got %d commits", commits)
	}

	// Broken repo paths degrade to zero.
	if commits, delta := src.CommitsBetween(context.Background(), filepath.Join(repo, "absent"), 0, 1, ""); commits != 0 || delta != 0 {
		t.Fatalf("expected degradation to zero, got %d/%d", commits, delta)
	}
}
