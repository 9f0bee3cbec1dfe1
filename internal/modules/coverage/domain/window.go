package domain

import (
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// DayOf converts an epoch-seconds timestamp to its UTC calendar day.
// Days are plain YYYY-MM-DD strings so that lexical order is date order.
func DayOf(ts float64) string {
	return time.Unix(int64(ts), 0).UTC().Format(dayLayout)
}

// NextDay returns the day after d. Malformed days come back unchanged.
func NextDay(d string) string {
	t, err := time.ParseInLocation(dayLayout, d, time.UTC)
	if err != nil {
		return d
	}
	return t.AddDate(0, 0, 1).Format(dayLayout)
}

// Window is an inclusive day range with data on both endpoints.
type Window struct {
	Start string
	End   string
}

// Contains reports whether day falls inside the window, endpoints included.
func (w Window) Contains(day string) bool {
	return w.Start <= day && day <= w.End
}

// Merge sorts windows by start day and coalesces any that overlap or touch.
// Exactly adjacent windows merge; a single missing day keeps them apart.
func Merge(windows []Window) []Window {
	if len(windows) == 0 {
		return nil
	}
	sorted := append([]Window(nil), windows...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []Window{sorted[0]}
	for _, w := range sorted[1:] {
		cur := &merged[len(merged)-1]
		if w.Start <= NextDay(cur.End) {
			if w.End > cur.End {
				cur.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

// Intersect keeps only the day ranges present in both window sets.
func Intersect(a, b []Window) []Window {
	var out []Window
	for _, wa := range a {
		for _, wb := range b {
			start := wa.Start
			if wb.Start > start {
				start = wb.Start
			}
			end := wa.End
			if wb.End < end {
				end = wb.End
			}
			if start <= end {
				out = append(out, Window{Start: start, End: end})
			}
		}
	}
	return Merge(out)
}

// Covers reports whether any window contains the day.
func Covers(windows []Window, day string) bool {
	for _, w := range windows {
		if w.Contains(day) {
			return true
		}
	}
	return false
}
