package out

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// GitAdoptionProbe derives adoption signals from git history and the
// repository tree.
type GitAdoptionProbe struct {
	log hclog.Logger
}

func NewGitAdoptionProbe(log hclog.Logger) *GitAdoptionProbe {
	return &GitAdoptionProbe{log: log}
}

// BeadsDate asks git for every commit that added files under .beads/.
// Output is newest first, so the adoption day is the last line. Any git
// failure means not adopted.
func (p *GitAdoptionProbe) BeadsDate(ctx context.Context, repoRoot string) string {
	cmd := exec.CommandContext(ctx, "git", "-C", repoRoot,
		"log", "--diff-filter=A", "--format=%cs", "--", ".beads/")
	out, err := cmd.Output()
	if err != nil {
		p.log.Debug("adoption probe failed", "repo", repoRoot, "error", err)
		return ""
	}
	lines := strings.Fields(strings.TrimSpace(string(out)))
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

func (p *GitAdoptionProbe) IsBeadhub(ctx context.Context, repoRoot string) bool {
	name := filepath.Base(repoRoot)
	if name == "beadhub" || strings.HasPrefix(name, "beadhub-") {
		return true
	}
	info, err := os.Stat(filepath.Join(repoRoot, ".beadhub"))
	return err == nil && info.Mode().IsRegular()
}
