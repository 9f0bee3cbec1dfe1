package domain

import (
	"math"
	"sort"
	"time"
)

// Commit is one parsed history entry of a repository.
type Commit struct {
	Hash        string
	Timestamp   int64
	Added       int
	Deleted     int
	Files       int
	BinaryFiles int
	Outlier     bool
}

func (c Commit) Delta() int { return c.Added + c.Deleted }

func (c Commit) Day() string {
	return time.Unix(c.Timestamp, 0).UTC().Format("2006-01-02")
}

const (
	outlierZ         = 3.5
	madNormalization = 0.6745
)

// FlagOutliers marks commits whose log-scaled line delta sits far from the
// repo's median, using the modified z-score. A zero MAD (most commits share
// the same delta) flags nothing.
func FlagOutliers(commits []Commit) {
	if len(commits) < 3 {
		return
	}
	logs := make([]float64, len(commits))
	for i, c := range commits {
		logs[i] = math.Log1p(float64(c.Delta()))
	}
	med := median(logs)

	dev := make([]float64, len(logs))
	for i, v := range logs {
		dev[i] = math.Abs(v - med)
	}
	mad := median(dev)
	if mad == 0 {
		return
	}

	for i := range commits {
		z := madNormalization * (logs[i] - med) / mad
		if math.Abs(z) > outlierZ {
			commits[i].Outlier = true
		}
	}
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// RepoDay is the daily rollup of a repository's commits.
type RepoDay struct {
	Day            string
	Commits        int
	Added          int
	Deleted        int
	SpanHours      float64
	EstimatedHours float64
}

// DailyRollup groups commits by UTC day. The estimated hours add a prep
// allowance before the first commit, taken as the median interval between
// the day's commits (zero for single-commit days).
// When skipOutliers is set, flagged commits drop out of the sums but still
// anchor the day's span.
func DailyRollup(commits []Commit, skipOutliers bool) []RepoDay {
	byDay := make(map[string][]Commit)
	for _, c := range commits {
		byDay[c.Day()] = append(byDay[c.Day()], c)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]RepoDay, 0, len(days))
	for _, day := range days {
		dayCommits := byDay[day]
		sort.Slice(dayCommits, func(i, j int) bool {
			return dayCommits[i].Timestamp < dayCommits[j].Timestamp
		})

		row := RepoDay{Day: day}
		first := dayCommits[0].Timestamp
		last := dayCommits[len(dayCommits)-1].Timestamp
		row.SpanHours = float64(last-first) / 3600.0

		var intervals []float64
		for i := 1; i < len(dayCommits); i++ {
			intervals = append(intervals,
				float64(dayCommits[i].Timestamp-dayCommits[i-1].Timestamp))
		}
		prep := median(intervals)
		row.EstimatedHours = row.SpanHours + prep/3600.0

		for _, c := range dayCommits {
			if skipOutliers && c.Outlier {
				continue
			}
			row.Commits++
			row.Added += c.Added
			row.Deleted += c.Deleted
		}
		out = append(out, row)
	}
	return out
}
