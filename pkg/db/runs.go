package db

import (
	"fmt"
	"time"
)

// Run represents one batch invocation
type Run struct {
	RunID        int64
	CreatedAt    time.Time
	SiteCount    int
	SuccessCount int
	FailedCount  int
	SkippedCount int
	Interrupted  bool
	OutputDir    string
}

// CreateRun creates a new run record and returns its ID.
func (db *DB) CreateRun(siteCount int, outputDir string) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (site_count, output_dir)
		VALUES (?, ?)
	`, siteCount, outputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	return runID, nil
}

// UpdateRunStats records the final counts for a run.
func (db *DB) UpdateRunStats(runID int64, successCount, failedCount, skippedCount int, interrupted bool) error {
	_, err := db.Exec(`
		UPDATE runs
		SET success_count = ?, failed_count = ?, skipped_count = ?, interrupted = ?
		WHERE run_id = ?
	`, successCount, failedCount, skippedCount, interrupted, runID)
	if err != nil {
		return fmt.Errorf("failed to update run stats: %w", err)
	}
	return nil
}

// InsertRunFailure records a per-site failure within a run.
func (db *DB) InsertRunFailure(runID int64, siteURL, errorType, errorMessage string) error {
	_, err := db.Exec(`
		INSERT INTO run_failures (run_id, url, error_type, error_message)
		VALUES (?, ?, ?, ?)
	`, runID, siteURL, errorType, errorMessage)
	if err != nil {
		return fmt.Errorf("failed to insert run failure: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT run_id, created_at, site_count, success_count, failed_count, skipped_count, interrupted, output_dir
		FROM runs
		ORDER BY created_at DESC, run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.SiteCount, &r.SuccessCount,
			&r.FailedCount, &r.SkippedCount, &r.Interrupted, &r.OutputDir); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}
