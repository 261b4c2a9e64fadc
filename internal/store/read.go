package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/veritype/veritype/internal/diag"
)

// ErrRunNotFound is returned by ReadRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// ReadRun returns one run with its diagnostics.
func (s *Store) ReadRun(ctx context.Context, id string) (RunRecord, error) {
	var rec RunRecord
	var pass int

	err := s.db.QueryRowContext(ctx, `
		SELECT id, scenario, target, config_file, pass, seq, created_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Scenario, &rec.Target, &rec.ConfigFile, &pass, &rec.Seq, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("read run: %w", err)
	}
	rec.Pass = pass != 0

	rec.Diagnostics, err = s.readDiagnostics(ctx, id)
	if err != nil {
		return RunRecord{}, err
	}

	return rec, nil
}

// ListRuns returns up to limit runs in deterministic order
// (seq ASC, id ASC COLLATE BINARY). A non-positive limit returns all.
//
// Diagnostics are not populated; use ReadRun for the full record.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
		SELECT id, scenario, target, config_file, pass, seq, created_at
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []RunRecord{}
	for rows.Next() {
		var rec RunRecord
		var pass int
		if err := rows.Scan(&rec.ID, &rec.Scenario, &rec.Target, &rec.ConfigFile, &pass, &rec.Seq, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.Pass = pass != 0
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// NextSeq returns the next free sequence number, starting at 1.
func (s *Store) NextSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM runs
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return seq, nil
}

// readDiagnostics returns a run's report in positional order.
func (s *Store) readDiagnostics(ctx context.Context, runID string) (diag.Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT message, code
		FROM diagnostics
		WHERE run_id = ?
		ORDER BY idx ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read diagnostics: %w", err)
	}
	defer rows.Close()

	report := diag.Report{}
	for rows.Next() {
		var rec diag.Record
		if err := rows.Scan(&rec.Message, &rec.Code); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		report = append(report, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diagnostics: %w", err)
	}

	return report, nil
}
