package out

import "context"

// RepoResolver locates the repository containing a working directory.
type RepoResolver interface {
	// RepoRoot returns the top-level directory, or "" when dir is not
	// inside a repository.
	RepoRoot(ctx context.Context, dir string) string
}

// AdoptionProbe inspects a repository for tooling adoption signals.
type AdoptionProbe interface {
	// BeadsDate returns the day (YYYY-MM-DD) of the earliest commit that
	// added files under .beads/, or "" when there is none.
	BeadsDate(ctx context.Context, repoRoot string) string
	// IsBeadhub reports the hub flag for a repository.
	IsBeadhub(ctx context.Context, repoRoot string) bool
}
