// Package shadingdb persists classification runs to sqlite so past results
// can be listed, re-rendered and charted.
package shadingdb

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/zonwering-data/fshade.report/internal/monitoring"
	"github.com/zonwering-data/fshade.report/internal/shading"
)

// schema.sql defines the runs and window_results tables.
//
//go:embed schema.sql
var schemaSQL string

type Store struct {
	*sql.DB
}

var logf = monitoring.Component("Store")

// NewStore opens (or creates) the run database at path and applies the
// schema.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply run schema: %w", err)
	}

	logf("initialized run database at %s", path)
	return &Store{db}, nil
}

// Run is one stored classify request.
type Run struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Month          int       `json:"month"`
	CalcMode       string    `json:"calc_mode"`
	WindowCount    int       `json:"window_count"`
	SkippedContext int       `json:"skipped_context"`
	DurationMS     float64   `json:"duration_ms"`
	Notes          string    `json:"notes,omitempty"`
}

// SaveRun stores a batch outcome and returns the new run ID. The run row
// and its result rows commit atomically.
func (s *Store) SaveRun(month int, mode shading.CalcMode, batch *shading.BatchResult, durationMS float64, notes string) (string, error) {
	if batch == nil {
		return "", fmt.Errorf("nil batch result")
	}

	runID := uuid.NewString()

	tx, err := s.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, month, calc_mode, window_count, skipped_context, duration_ms, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, month, string(mode), len(batch.Results), batch.SkippedContext, durationMS, notes)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO window_results (
			run_id, window_index, classification, fsh_factor, orientation,
			ho_ratio, context_angle, shading_angle, context_blocked,
			shading_blocked, dominant_factor, debug_info
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range batch.Results {
		_, err := stmt.Exec(runID, r.WindowIndex, string(r.Classification), r.Fsh,
			string(r.Orientation), r.HoRatio, r.ContextAngle, r.ShadingAngle,
			r.ContextBlocked, r.ShadingBlocked, string(r.Dominant), r.Debug)
		if err != nil {
			return "", fmt.Errorf("failed to insert result %d: %w", r.WindowIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	logf("saved run %s (%d windows, month %d)", runID, len(batch.Results), month)
	return runID, nil
}

// GetRun loads one run's metadata, or sql.ErrNoRows when absent.
func (s *Store) GetRun(runID string) (*Run, error) {
	row := s.QueryRow(`
		SELECT id, created_at, month, calc_mode, window_count, skipped_context, duration_ms, notes
		FROM runs WHERE id = ?
	`, runID)

	var run Run
	err := row.Scan(&run.ID, &run.CreatedAt, &run.Month, &run.CalcMode,
		&run.WindowCount, &run.SkippedContext, &run.DurationMS, &run.Notes)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRunResults loads a run's per-window results ordered by window index.
func (s *Store) GetRunResults(runID string) ([]shading.Result, error) {
	rows, err := s.Query(`
		SELECT window_index, classification, fsh_factor, orientation, ho_ratio,
		       context_angle, shading_angle, context_blocked, shading_blocked,
		       dominant_factor, debug_info
		FROM window_results WHERE run_id = ? ORDER BY window_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run results: %w", err)
	}
	defer rows.Close()

	var results []shading.Result
	for rows.Next() {
		var r shading.Result
		var class, orientation, dominant string
		err := rows.Scan(&r.WindowIndex, &class, &r.Fsh, &orientation, &r.HoRatio,
			&r.ContextAngle, &r.ShadingAngle, &r.ContextBlocked, &r.ShadingBlocked,
			&dominant, &r.Debug)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		r.Classification = shading.Classification(class)
		r.Orientation = shading.Orientation(orientation)
		r.Dominant = shading.DominantFactor(dominant)
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Query(`
		SELECT id, created_at, month, calc_mode, window_count, skipped_context, duration_ms, notes
		FROM runs ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		err := rows.Scan(&run.ID, &run.CreatedAt, &run.Month, &run.CalcMode,
			&run.WindowCount, &run.SkippedContext, &run.DurationMS, &run.Notes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run and its results. Deleting an unknown ID is not
// an error. Results are deleted explicitly; the foreign-key cascade only
// fires on connections with the pragma enabled.
func (s *Store) DeleteRun(runID string) error {
	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM window_results WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("failed to delete run results: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM runs WHERE id = ?`, runID); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return tx.Commit()
}
