package dto

// Bucket labels, in canonical report order.
const (
	BucketNone     = "none"
	BucketBeads    = "beads"
	BucketBeadsHub = "beads+beadhub"
)

// AllBuckets keeps aggregation output stable regardless of which buckets
// actually occurred.
func AllBuckets() []string {
	return []string{BucketNone, BucketBeads, BucketBeadsHub}
}

// RepoInfo is everything the classifier learned about one repository.
type RepoInfo struct {
	Root string // top-level directory
	Name string // base name of Root
	// BeadsDate is the day the earliest commit touched .beads/, empty when
	// the repo never adopted it.
	BeadsDate string
	// Beadhub marks a hub-flagged repo by name or by marker file.
	Beadhub bool
}

type ResolveInput struct {
	// Paths are the distinct working directories seen in the event stream,
	// already remapped and filtered by the caller's config.
	Paths []string
}

type ResolveOutput struct {
	// Repos is keyed by repo root.
	Repos map[string]RepoInfo
	// PathRepo maps each input path to its repo root; paths that resolved
	// nowhere are absent.
	PathRepo map[string]string
	// Unresolved counts paths without a repository.
	Unresolved int
}
