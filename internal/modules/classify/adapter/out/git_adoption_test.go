package out

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func git(t *testing.T, repo string, date string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", repo}, args...)...)
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	if date != "" {
		cmd.Env = append(cmd.Env,
			"GIT_AUTHOR_DATE="+date,
			"GIT_COMMITTER_DATE="+date,
		)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	repo := t.TempDir()
	git(t, repo, "", "init", "-q")
	return repo
}

func commitFile(t *testing.T, repo, rel, date string) {
	t.Helper()
	path := filepath.Join(repo, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	git(t, repo, date, "add", rel)
	git(t, repo, date, "commit", "-q", "-m", "add "+rel)
}

func TestBeadsDateEarliestAddition(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	commitFile(t, repo, "README.md", "2025-04-01T10:00:00+00:00")
	commitFile(t, repo, ".beads/issues.db", "2025-05-01T10:00:00+00:00")
	commitFile(t, repo, ".beads/config", "2025-06-01T10:00:00+00:00")

	probe := NewGitAdoptionProbe(hclog.NewNullLogger())
	if got := probe.BeadsDate(context.Background(), repo); got != "2025-05-01" {
		t.Fatalf("adoption date: got %q want 2025-05-01", got)
	}
}

func TestBeadsDateNotAdopted(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	commitFile(t, repo, "README.md", "2025-04-01T10:00:00+00:00")

	probe := NewGitAdoptionProbe(hclog.NewNullLogger())
	if got := probe.BeadsDate(context.Background(), repo); got != "" {
		t.Fatalf("expected empty adoption date, got %q", got)
	}
	// Not a repository at all degrades the same way.
	if got := probe.BeadsDate(context.Background(), t.TempDir()); got != "" {
		t.Fatalf("non-repo must degrade to empty, got %q", got)
	}
}

func TestIsBeadhub(t *testing.T) {
	t.Parallel()
	probe := NewGitAdoptionProbe(hclog.NewNullLogger())
	ctx := context.Background()

	base := t.TempDir()
	plain := filepath.Join(base, "plain")
	hubName := filepath.Join(base, "beadhub")
	hubPrefix := filepath.Join(base, "beadhub-worktree")
	marker := filepath.Join(base, "marked")
	for _, dir := range []string{plain, hubName, hubPrefix, marker} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(marker, ".beadhub"), nil, 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	if probe.IsBeadhub(ctx, plain) {
		t.Fatal("plain repo flagged")
	}
	if !probe.IsBeadhub(ctx, hubName) || !probe.IsBeadhub(ctx, hubPrefix) {
		t.Fatal("name-based flag missed")
	}
	if !probe.IsBeadhub(ctx, marker) {
		t.Fatal("marker file flag missed")
	}
}

func TestRepoRootResolution(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	commitFile(t, repo, "README.md", "2025-04-01T10:00:00+00:00")
	sub := filepath.Join(repo, "pkg", "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	resolver := NewGitRepoResolver(hclog.NewNullLogger())
	got := resolver.RepoRoot(context.Background(), sub)
	wantResolved, _ := filepath.EvalSymlinks(repo)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if got == "" || gotResolved != wantResolved {
		t.Fatalf("repo root: got %q want %q", got, repo)
	}

	if got := resolver.RepoRoot(context.Background(), t.TempDir()); got != "" {
		t.Fatalf("non-repo must resolve to empty, got %q", got)
	}
}
