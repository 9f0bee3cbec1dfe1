package out

import (
	"context"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// GitRepoResolver shells out to git to find the enclosing repository.
type GitRepoResolver struct {
	log hclog.Logger
}

func NewGitRepoResolver(log hclog.Logger) *GitRepoResolver {
	return &GitRepoResolver{log: log}
}

func (r *GitRepoResolver) RepoRoot(ctx context.Context, dir string) string {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		r.log.Debug("not a repository", "dir", dir, "error", err)
		return ""
	}
	return strings.TrimSpace(string(out))
}
