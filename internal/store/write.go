package store

import (
	"context"
	"fmt"

	"github.com/veritype/veritype/internal/diag"
)

// RunRecord is one scenario execution in the history ledger.
type RunRecord struct {
	ID          string      `json:"id"`
	Scenario    string      `json:"scenario"`
	Target      string      `json:"target"`
	ConfigFile  string      `json:"config_file,omitempty"`
	Pass        bool        `json:"pass"`
	Seq         int64       `json:"seq"`
	CreatedAt   string      `json:"created_at,omitempty"`
	Diagnostics diag.Report `json:"diagnostics"`
}

// WriteRun inserts a run and its diagnostics in one transaction.
// Idempotent on run ID: a duplicate write is silently ignored and the
// original diagnostics are left untouched.
func (s *Store) WriteRun(ctx context.Context, rec RunRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("write run: id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, scenario, target, config_file, pass, seq)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Scenario,
		rec.Target,
		rec.ConfigFile,
		boolToInt(rec.Pass),
		rec.Seq,
	)
	if err != nil {
		return fmt.Errorf("write run: insert run: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write run: rows affected: %w", err)
	}
	if inserted == 0 {
		// Duplicate ID: the run is already recorded.
		return tx.Commit()
	}

	for i, d := range rec.Diagnostics {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO diagnostics (run_id, idx, message, code)
			VALUES (?, ?, ?, ?)
		`, rec.ID, i, d.Message, d.Code); err != nil {
			return fmt.Errorf("write run: insert diagnostic %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run: commit: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
