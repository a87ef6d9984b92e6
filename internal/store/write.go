package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/roach88/springs/internal/ir"
)

// WriteRun inserts a run and its lines in one transaction and returns the
// assigned seq. Writing the same run ID twice is an error.
func (s *Store) WriteRun(ctx context.Context, run ir.RunRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, input_digest, unfold, workers, total, elapsed_ms, record_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.InputDigest,
		run.Unfold,
		run.Workers,
		formatCount(run.Total),
		run.ElapsedMS,
		len(run.Lines),
	)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("write run: seq: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_lines (run_id, line, text, digest, count)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("write run lines: prepare: %w", err)
	}
	defer stmt.Close()

	for _, line := range run.Lines {
		if _, err := stmt.ExecContext(ctx, run.ID, line.Line, line.Text, line.Digest, formatCount(line.Count)); err != nil {
			return 0, fmt.Errorf("write run line %d: %w", line.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, nil
}

// Save records a final count for a record digest.
// Uses ON CONFLICT DO NOTHING - counts are a pure function of the digest, so
// an existing row is already correct.
//
// Implements solver.ResultCache.
func (s *Store) Save(ctx context.Context, rec ir.CountRecord) error {
	groups, err := ir.MarshalCanonical(ir.Ints(rec.Groups))
	if err != nil {
		return fmt.Errorf("save count: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO record_counts (digest, symbols, groups, count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(digest) DO NOTHING
	`,
		rec.Digest,
		rec.Symbols,
		string(groups),
		formatCount(rec.Count),
	)
	if err != nil {
		return fmt.Errorf("save count: %w", err)
	}
	return nil
}

func formatCount(n uint64) string {
	return strconv.FormatUint(n, 10)
}
