package domain

import (
	"sort"

	classifydto "tally/internal/modules/classify/dto"
)

// SessionMetrics is one work session joined with its repo bucket and the
// commits observed inside its time window.
type SessionMetrics struct {
	Day     string
	Project string
	Bucket  string
	Hours   float64
	Commits int
	Delta   int
}

// Rollup accumulates sessions under one grouping key.
type Rollup struct {
	Sessions int
	Hours    float64
	Commits  int
	Delta    int
}

func (r *Rollup) add(m SessionMetrics) {
	r.Sessions++
	r.Hours += m.Hours
	r.Commits += m.Commits
	r.Delta += m.Delta
}

// DeltaPerHour is 0 when no hours were logged.
func (r Rollup) DeltaPerHour() float64 {
	if r.Hours == 0 {
		return 0
	}
	return float64(r.Delta) / r.Hours
}

func (r Rollup) CommitsPerHour() float64 {
	if r.Hours == 0 {
		return 0
	}
	return float64(r.Commits) / r.Hours
}

type BucketSummary struct {
	Bucket string
	Rollup
}

type DaySummary struct {
	Day    string
	Bucket string // empty when not grouped by bucket
	Rollup
}

type ProjectSummary struct {
	Project string
	Bucket  string
	Rollup
}

// bucketRank orders buckets the way reports print them.
func bucketRank(bucket string) int {
	for i, b := range classifydto.AllBuckets() {
		if b == bucket {
			return i
		}
	}
	return len(classifydto.AllBuckets())
}

// AggregateByBucket always emits every bucket, even empty ones, so reports
// line up across runs.
func AggregateByBucket(metrics []SessionMetrics) []BucketSummary {
	byBucket := make(map[string]*Rollup)
	for _, b := range classifydto.AllBuckets() {
		byBucket[b] = &Rollup{}
	}
	for _, m := range metrics {
		r, ok := byBucket[m.Bucket]
		if !ok {
			r = &Rollup{}
			byBucket[m.Bucket] = r
		}
		r.add(m)
	}

	out := make([]BucketSummary, 0, len(byBucket))
	for bucket, r := range byBucket {
		out = append(out, BucketSummary{Bucket: bucket, Rollup: *r})
	}
	sort.Slice(out, func(i, j int) bool {
		return bucketRank(out[i].Bucket) < bucketRank(out[j].Bucket)
	})
	return out
}

// AggregateByDay groups by day only.
func AggregateByDay(metrics []SessionMetrics) []DaySummary {
	return aggregateDays(metrics, false)
}

// AggregateByDayAndBucket groups by (day, bucket), days ascending then
// fixed bucket order.
func AggregateByDayAndBucket(metrics []SessionMetrics) []DaySummary {
	return aggregateDays(metrics, true)
}

func aggregateDays(metrics []SessionMetrics, byBucket bool) []DaySummary {
	type key struct{ day, bucket string }
	rollups := make(map[key]*Rollup)
	for _, m := range metrics {
		k := key{day: m.Day}
		if byBucket {
			k.bucket = m.Bucket
		}
		r, ok := rollups[k]
		if !ok {
			r = &Rollup{}
			rollups[k] = r
		}
		r.add(m)
	}

	out := make([]DaySummary, 0, len(rollups))
	for k, r := range rollups {
		out = append(out, DaySummary{Day: k.day, Bucket: k.bucket, Rollup: *r})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return bucketRank(out[i].Bucket) < bucketRank(out[j].Bucket)
	})
	return out
}

// AggregateByProject groups by project name; the bucket shown is the one
// the project's sessions fell into most recently (highest day).
func AggregateByProject(metrics []SessionMetrics) []ProjectSummary {
	type state struct {
		rollup  Rollup
		bucket  string
		lastDay string
	}
	byProject := make(map[string]*state)
	for _, m := range metrics {
		s, ok := byProject[m.Project]
		if !ok {
			s = &state{}
			byProject[m.Project] = s
		}
		s.rollup.add(m)
		if m.Day >= s.lastDay {
			s.lastDay = m.Day
			s.bucket = m.Bucket
		}
	}

	out := make([]ProjectSummary, 0, len(byProject))
	for project, s := range byProject {
		out = append(out, ProjectSummary{Project: project, Bucket: s.bucket, Rollup: s.rollup})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Project < out[j].Project })
	return out
}
