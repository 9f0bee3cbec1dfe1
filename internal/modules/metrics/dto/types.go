package dto

// Grouping modes for compare output.
const (
	ModeBucket    = "bucket"
	ModeDay       = "day"
	ModeDayBucket = "day+bucket"
)

type CompareInput struct {
	// Log roots, passed through to ingestion.
	ClaudeDir string
	CodexDir  string
	Bundle    string

	// Author restricts commit matching by git author regexp.
	Author string
	// Since drops sessions before this day (YYYY-MM-DD).
	Since string
	// HubSince drops sessions in hub-flagged repos before this day.
	HubSince string
	// Project restricts sessions to one project base name.
	Project string
	// Mode selects the aggregation grouping; empty means ModeBucket.
	Mode string
	// DBPath, when set, projects the run into a sqlite database.
	DBPath string
}

type BucketRow struct {
	Bucket         string
	Sessions       int
	Hours          float64
	Commits        int
	Delta          int
	DeltaPerHour   float64
	CommitsPerHour float64
}

// DayRow is one aggregated output row. Bucket is empty when the grouping
// mode does not split by bucket.
type DayRow struct {
	Day            string
	Bucket         string
	Sessions       int
	Hours          float64
	Commits        int
	Delta          int
	DeltaPerHour   float64
	CommitsPerHour float64
}

type ProjectRow struct {
	Project  string
	Bucket   string
	Sessions int
	Hours    float64
}

// SkipCounts explains sessions excluded from aggregation.
type SkipCounts struct {
	OutsideCoverage int
	BeforeSince     int
	BeforeHubSince  int
	NoRepo          int
}

type CompareOutput struct {
	Mode     string
	Buckets  []BucketRow
	Days     []DayRow
	Projects []ProjectRow
	Sessions int
	Skipped  SkipCounts
}

type RepoStatsInput struct {
	Paths  []string
	Author string
	Since  string // YYYY-MM-DD lower bound, inclusive
	Until  string // YYYY-MM-DD upper bound, inclusive
	// Outliers excludes flagged commits from the daily rollup sums.
	Outliers bool
}

type CommitRow struct {
	Repo        string
	Hash        string
	Day         string
	Added       int
	Deleted     int
	Files       int
	BinaryFiles int
	Outlier     bool
}

type RepoDayRow struct {
	Repo           string
	Day            string
	Commits        int
	Added          int
	Deleted        int
	SpanHours      float64
	EstimatedHours float64
}

type RepoStatsOutput struct {
	Commits []CommitRow
	Days    []RepoDayRow
}

// RunRecord summarizes one compare invocation for the sqlite projection.
type RunRecord struct {
	CreatedAt string
	Author    string
	Mode      string
	Sessions  int
}
