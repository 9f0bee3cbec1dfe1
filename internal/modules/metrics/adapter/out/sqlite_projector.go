package out

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"tally/internal/modules/metrics/dto"
)

// SQLiteProjector persists compare runs into a local sqlite file so the TUI
// can browse the latest run without recomputing.
type SQLiteProjector struct{}

func NewSQLiteProjector() *SQLiteProjector {
	return &SQLiteProjector{}
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	author     TEXT NOT NULL DEFAULT '',
	mode       TEXT NOT NULL DEFAULT '',
	sessions   INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS daily_metrics (
	run_id           INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	day              TEXT NOT NULL,
	bucket           TEXT NOT NULL DEFAULT '',
	sessions         INTEGER NOT NULL DEFAULT 0,
	hours            REAL NOT NULL DEFAULT 0,
	commits          INTEGER NOT NULL DEFAULT 0,
	delta            INTEGER NOT NULL DEFAULT 0,
	delta_per_hour   REAL NOT NULL DEFAULT 0,
	commits_per_hour REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, day, bucket)
);`

func open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (p *SQLiteProjector) Project(ctx context.Context, dbPath string, run dto.RunRecord, days []dto.DayRow) error {
	db, err := open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := ensureSchema(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (created_at, author, mode, sessions) VALUES (?, ?, ?, ?)`,
		run.CreatedAt, run.Author, run.Mode, run.Sessions)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_metrics
			(run_id, day, bucket, sessions, hours, commits, delta, delta_per_hour, commits_per_hour)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (run_id, day, bucket) DO UPDATE SET
			sessions = excluded.sessions,
			hours = excluded.hours,
			commits = excluded.commits,
			delta = excluded.delta,
			delta_per_hour = excluded.delta_per_hour,
			commits_per_hour = excluded.commits_per_hour`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range days {
		if _, err := stmt.ExecContext(ctx, runID, row.Day, row.Bucket,
			row.Sessions, row.Hours, row.Commits, row.Delta,
			row.DeltaPerHour, row.CommitsPerHour); err != nil {
			return fmt.Errorf("insert day %s: %w", row.Day, err)
		}
	}
	return tx.Commit()
}

func (p *SQLiteProjector) LatestDaily(ctx context.Context, dbPath string) ([]dto.DayRow, error) {
	db, err := open(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := ensureSchema(ctx, db); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT day, bucket, sessions, hours, commits, delta, delta_per_hour, commits_per_hour
		FROM daily_metrics
		WHERE run_id = (SELECT MAX(id) FROM runs)
		ORDER BY day, bucket`)
	if err != nil {
		return nil, fmt.Errorf("query daily metrics: %w", err)
	}
	defer rows.Close()

	var out []dto.DayRow
	for rows.Next() {
		var r dto.DayRow
		if err := rows.Scan(&r.Day, &r.Bucket, &r.Sessions, &r.Hours,
			&r.Commits, &r.Delta, &r.DeltaPerHour, &r.CommitsPerHour); err != nil {
			return nil, fmt.Errorf("scan daily metrics: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
