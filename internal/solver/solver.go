package solver

import (
	"context"
	"fmt"
	"log/slog"
	"math/bits"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/springs/internal/ir"
	"github.com/roach88/springs/internal/puzzle"
	"github.com/roach88/springs/internal/spring"
)

// ResultCache is a durable memo of final per-record counts, keyed by
// ir.RecordDigest of the unfolded record. Implementations must be safe for
// concurrent use. *store.Store implements it.
type ResultCache interface {
	Lookup(ctx context.Context, digest string) (uint64, bool, error)
	Save(ctx context.Context, rec ir.CountRecord) error
}

// Solver solves puzzle inputs in parallel.
//
// Thread-safety: a Solver is safe for concurrent SolveAll calls provided
// its ResultCache is.
type Solver struct {
	workers int
	unfold  int
	cache   ResultCache
	ids     IDGenerator
}

// Option configures a Solver.
type Option func(*Solver)

// WithWorkers bounds the number of records solved concurrently.
// Values <= 0 select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(s *Solver) {
		s.workers = n
	}
}

// WithUnfold sets the unfold factor applied to every record. Default: 1.
func WithUnfold(k int) Option {
	return func(s *Solver) {
		s.unfold = k
	}
}

// WithResultCache consults and fills a durable cache of final counts.
func WithResultCache(c ResultCache) Option {
	return func(s *Solver) {
		s.cache = c
	}
}

// WithIDGenerator overrides how run IDs are generated. Default: UUIDv7.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Solver) {
		s.ids = g
	}
}

// New creates a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{
		unfold: 1,
		ids:    UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Workers returns the effective worker-pool size.
func (s *Solver) Workers() int {
	if s.workers <= 0 {
		return runtime.NumCPU()
	}
	return s.workers
}

// Result is the outcome for one input line.
type Result struct {
	Line   int
	Text   string
	Digest string
	Count  uint64

	// Cached reports the count came from the ResultCache.
	Cached bool
}

// Run is a completed solve of a whole input.
type Run struct {
	ID          string
	InputDigest string
	Unfold      int
	Workers     int
	Results     []Result
	Total       uint64
	Elapsed     time.Duration
}

// Counts returns the per-line counts in input order.
func (r *Run) Counts() []uint64 {
	counts := make([]uint64, len(r.Results))
	for i, res := range r.Results {
		counts[i] = res.Count
	}
	return counts
}

// Record converts the run into its history form.
func (r *Run) Record() ir.RunRecord {
	lines := make([]ir.RunLine, len(r.Results))
	for i, res := range r.Results {
		lines[i] = ir.RunLine{Line: res.Line, Text: res.Text, Digest: res.Digest, Count: res.Count}
	}
	return ir.RunRecord{
		ID:          r.ID,
		InputDigest: r.InputDigest,
		Unfold:      r.Unfold,
		Workers:     r.Workers,
		Total:       r.Total,
		ElapsedMS:   r.Elapsed.Milliseconds(),
		Lines:       lines,
	}
}

// SolveAll counts every entry and sums the counts.
//
// Entries are unfolded by the configured factor first. The first failing
// record cancels the rest; the context is checked before each record starts.
func (s *Solver) SolveAll(ctx context.Context, entries []puzzle.Entry) (*Run, error) {
	start := time.Now()
	workers := s.Workers()

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	inputDigest, err := ir.InputDigest(texts, s.unfold)
	if err != nil {
		return nil, &RunError{Code: ErrCodeInput, Message: "digest input", Err: err}
	}

	unfolded, err := puzzle.UnfoldAll(entries, s.unfold)
	if err != nil {
		return nil, &RunError{Code: ErrCodeInput, Message: "unfold input", Err: err}
	}

	slog.Info("solve starting",
		"records", len(entries),
		"unfold", s.unfold,
		"workers", workers,
	)

	results := make([]Result, len(unfolded))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, e := range unfolded {
		i, e := i, e
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &RunError{Code: ErrCodeCanceled, Message: "solve canceled", Line: e.Line, Err: err}
			}
			res, err := s.solveEntry(gctx, e)
			if err != nil {
				return err
			}
			res.Text = entries[i].Text
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total, err := Sum(results)
	if err != nil {
		return nil, err
	}

	run := &Run{
		ID:          s.ids.Generate(),
		InputDigest: inputDigest,
		Unfold:      s.unfold,
		Workers:     workers,
		Results:     results,
		Total:       total,
		Elapsed:     time.Since(start),
	}
	slog.Info("solve finished",
		"run_id", run.ID,
		"records", len(results),
		"total", run.Total,
		"elapsed", run.Elapsed,
	)
	return run, nil
}

func (s *Solver) solveEntry(ctx context.Context, e puzzle.Entry) (Result, error) {
	symbols := spring.FormatSymbols(e.Row.Symbols)
	digest, err := ir.RecordDigest(symbols, e.Row.Groups)
	if err != nil {
		return Result{}, &RunError{Code: ErrCodeInput, Message: "digest record", Line: e.Line, Err: err}
	}
	res := Result{Line: e.Line, Digest: digest}

	if s.cache != nil {
		n, ok, err := s.cache.Lookup(ctx, digest)
		if err != nil {
			return Result{}, &RunError{Code: ErrCodeCache, Message: "lookup cached count", Line: e.Line, Err: err}
		}
		if ok {
			slog.Debug("record cached", "line", e.Line, "count", n)
			res.Count, res.Cached = n, true
			return res, nil
		}
	}

	n, err := SolveOne(e.Row)
	if err != nil {
		return Result{}, newOverflowError(e.Line, err)
	}
	res.Count = n
	slog.Debug("record solved", "line", e.Line, "count", n)

	if s.cache != nil {
		rec := ir.CountRecord{Digest: digest, Symbols: symbols, Groups: e.Row.Groups, Count: n}
		if err := s.cache.Save(ctx, rec); err != nil {
			return Result{}, &RunError{Code: ErrCodeCache, Message: "save count", Line: e.Line, Err: err}
		}
	}
	return res, nil
}

// SolveOne counts one row with a fresh memoized counter.
func SolveOne(row spring.Row) (uint64, error) {
	return spring.Arrangements(row)
}

// SolveRows counts rows in parallel with default settings and returns the
// total.
func SolveRows(ctx context.Context, rows []spring.Row) (uint64, error) {
	entries := make([]puzzle.Entry, len(rows))
	for i, row := range rows {
		entries[i] = puzzle.Entry{Line: i + 1, Text: row.String(), Row: row}
	}
	run, err := New().SolveAll(ctx, entries)
	if err != nil {
		return 0, err
	}
	return run.Total, nil
}

// Sum adds the counts of results, failing on uint64 overflow.
func Sum(results []Result) (uint64, error) {
	var total uint64
	for _, res := range results {
		var carry uint64
		total, carry = bits.Add64(total, res.Count, 0)
		if carry != 0 {
			return 0, newOverflowError(res.Line, fmt.Errorf("total exceeds uint64 at line %d", res.Line))
		}
	}
	return total, nil
}
