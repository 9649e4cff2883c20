package main

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS analysis_runs (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		intent       TEXT NOT NULL,
		provider     TEXT NOT NULL,
		total        INTEGER NOT NULL,
		matched      INTEGER NOT NULL,
		removed      INTEGER NOT NULL,
		pending      INTEGER NOT NULL,
		dropped      INTEGER NOT NULL DEFAULT 0,
		summary      TEXT DEFAULT '',
		duration_ms  INTEGER NOT NULL DEFAULT 0,
		created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_analysis_runs_created_at ON analysis_runs(created_at);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// AnalysisRun is one row of run history: what a pipeline run saw and how
// it partitioned the inbox.
type AnalysisRun struct {
	ID         int64
	Intent     string
	Provider   string
	Total      int
	Matched    int
	Removed    int
	Pending    int
	Dropped    int
	Summary    string
	DurationMS int64
	CreatedAt  time.Time
}

func InsertAnalysisRun(db *sql.DB, run AnalysisRun) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO analysis_runs (intent, provider, total, matched, removed, pending, dropped, summary, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Intent, run.Provider, run.Total, run.Matched, run.Removed, run.Pending,
		run.Dropped, run.Summary, run.DurationMS,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func RecentAnalysisRuns(db *sql.DB, limit int) ([]AnalysisRun, error) {
	rows, err := db.Query(
		`SELECT id, intent, provider, total, matched, removed, pending, dropped, summary, duration_ms, created_at
		 FROM analysis_runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []AnalysisRun
	for rows.Next() {
		var run AnalysisRun
		if err := rows.Scan(&run.ID, &run.Intent, &run.Provider, &run.Total, &run.Matched,
			&run.Removed, &run.Pending, &run.Dropped, &run.Summary, &run.DurationMS, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RecordRun persists the outcome of one pipeline run.
func RecordRun(db *sql.DB, req AnalysisRequest, result *RunResult, total int, duration time.Duration) (int64, error) {
	return InsertAnalysisRun(db, AnalysisRun{
		Intent:     req.Intent,
		Provider:   req.Provider,
		Total:      total,
		Matched:    len(result.Matched),
		Removed:    len(result.Removed),
		Pending:    len(result.Pending),
		Dropped:    result.DroppedOnError,
		Summary:    result.Summary,
		DurationMS: duration.Milliseconds(),
	})
}
