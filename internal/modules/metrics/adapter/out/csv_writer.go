package out

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"tally/internal/modules/metrics/dto"
)

func writeAll(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func f(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
func n(v int) string     { return strconv.Itoa(v) }

func WriteDayCSV(w io.Writer, rows []dto.DayRow, withBucket bool) error {
	header := []string{"day", "sessions", "hours", "commits", "delta", "delta_per_hour", "commits_per_hour"}
	if withBucket {
		header = append([]string{"day", "bucket"}, header[1:]...)
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		rec := []string{r.Day}
		if withBucket {
			rec = append(rec, r.Bucket)
		}
		rec = append(rec, n(r.Sessions), f(r.Hours), n(r.Commits), n(r.Delta),
			f(r.DeltaPerHour), f(r.CommitsPerHour))
		records = append(records, rec)
	}
	return writeAll(w, header, records)
}

func WriteBucketCSV(w io.Writer, rows []dto.BucketRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Bucket, n(r.Sessions), f(r.Hours), n(r.Commits), n(r.Delta),
			f(r.DeltaPerHour), f(r.CommitsPerHour),
		})
	}
	return writeAll(w,
		[]string{"bucket", "sessions", "hours", "commits", "delta", "delta_per_hour", "commits_per_hour"},
		records)
}

func WriteProjectCSV(w io.Writer, rows []dto.ProjectRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.Project, r.Bucket, n(r.Sessions), f(r.Hours)})
	}
	return writeAll(w, []string{"project", "bucket", "sessions", "hours"}, records)
}

func WriteRepoDayCSV(w io.Writer, rows []dto.RepoDayRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Repo, r.Day, n(r.Commits), n(r.Added), n(r.Deleted),
			f(r.SpanHours), f(r.EstimatedHours),
		})
	}
	return writeAll(w,
		[]string{"repo", "day", "commits", "added", "deleted", "span_hours", "estimated_hours"},
		records)
}
