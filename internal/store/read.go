package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/roach88/springs/internal/ir"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// Lookup returns the cached count for a record digest.
//
// Implements solver.ResultCache.
func (s *Store) Lookup(ctx context.Context, digest string) (uint64, bool, error) {
	var text string
	err := s.db.QueryRowContext(ctx,
		`SELECT count FROM record_counts WHERE digest = ?`, digest,
	).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup count: %w", err)
	}
	n, err := parseCount(text)
	if err != nil {
		return 0, false, fmt.Errorf("lookup count %s: %w", digest, err)
	}
	return n, true, nil
}

// ReadCount returns the full cached record for a digest.
func (s *Store) ReadCount(ctx context.Context, digest string) (ir.CountRecord, error) {
	var rec ir.CountRecord
	var groups, count string
	err := s.db.QueryRowContext(ctx,
		`SELECT digest, symbols, groups, count FROM record_counts WHERE digest = ?`, digest,
	).Scan(&rec.Digest, &rec.Symbols, &groups, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.CountRecord{}, fmt.Errorf("read count %s: %w", digest, ErrNotFound)
	}
	if err != nil {
		return ir.CountRecord{}, fmt.Errorf("read count: %w", err)
	}
	if err := json.Unmarshal([]byte(groups), &rec.Groups); err != nil {
		return ir.CountRecord{}, fmt.Errorf("read count: groups: %w", err)
	}
	if rec.Count, err = parseCount(count); err != nil {
		return ir.CountRecord{}, fmt.Errorf("read count: %w", err)
	}
	return rec, nil
}

// ReadRun returns a run and its lines by ID.
func (s *Store) ReadRun(ctx context.Context, id string) (ir.RunRecord, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, `
		SELECT seq, id, input_digest, unfold, workers, total, elapsed_ms
		FROM runs WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return ir.RunRecord{}, fmt.Errorf("read run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return ir.RunRecord{}, fmt.Errorf("read run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT line, text, digest, count
		FROM run_lines WHERE run_id = ?
		ORDER BY line ASC
	`, id)
	if err != nil {
		return ir.RunRecord{}, fmt.Errorf("read run lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line ir.RunLine
		var count string
		if err := rows.Scan(&line.Line, &line.Text, &line.Digest, &count); err != nil {
			return ir.RunRecord{}, fmt.Errorf("read run lines: scan: %w", err)
		}
		if line.Count, err = parseCount(count); err != nil {
			return ir.RunRecord{}, fmt.Errorf("read run line %d: %w", line.Line, err)
		}
		run.Lines = append(run.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return ir.RunRecord{}, fmt.Errorf("read run lines: %w", err)
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first, without their lines.
// A limit <= 0 returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]ir.RunRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, input_digest, unfold, workers, total, elapsed_ms
		FROM runs
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []ir.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (ir.RunRecord, error) {
	var run ir.RunRecord
	var total string
	if err := sc.Scan(&run.Seq, &run.ID, &run.InputDigest, &run.Unfold, &run.Workers, &total, &run.ElapsedMS); err != nil {
		return ir.RunRecord{}, err
	}
	n, err := parseCount(total)
	if err != nil {
		return ir.RunRecord{}, err
	}
	run.Total = n
	return run, nil
}

func parseCount(text string) (uint64, error) {
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid stored count %q: %w", text, err)
	}
	return n, nil
}
