package harness

import (
	"context"
	"fmt"

	"github.com/roach88/springs/internal/puzzle"
	"github.com/roach88/springs/internal/solver"
	"github.com/roach88/springs/internal/testutil"
)

// Result is the outcome of running a scenario.
type Result struct {
	Name   string
	Pass   bool
	Errors []string

	Unfold int
	Counts []uint64
	Total  uint64
}

// Run executes a scenario and evaluates its expectations.
//
// An error is returned only when the scenario cannot be executed (unreadable
// or malformed input, overflow). Count mismatches are reported in
// Result.Errors with Pass set to false.
func Run(s *Scenario) (*Result, error) {
	return RunContext(context.Background(), s)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, s *Scenario) (*Result, error) {
	text, err := s.inputText()
	if err != nil {
		return nil, err
	}

	entries, err := puzzle.ParseString(text)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	sv := solver.New(
		solver.WithUnfold(s.unfold()),
		solver.WithWorkers(s.Workers),
		solver.WithIDGenerator(testutil.NewFixedIDGenerator("scenario-"+s.Name)),
	)
	run, err := sv.SolveAll(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	result := &Result{
		Name:   s.Name,
		Unfold: run.Unfold,
		Counts: run.Counts(),
		Total:  run.Total,
	}
	result.Errors = checkExpectations(s.Expect, result)
	result.Pass = len(result.Errors) == 0
	return result, nil
}

// checkExpectations compares a result with its expectation and returns one
// message per mismatch.
func checkExpectations(want Expectation, got *Result) []string {
	var errs []string

	if want.Total != nil && *want.Total != got.Total {
		errs = append(errs, fmt.Sprintf("total: expected %d, got %d", *want.Total, got.Total))
	}

	if len(want.Counts) == 0 {
		return errs
	}
	if len(want.Counts) != len(got.Counts) {
		return append(errs, fmt.Sprintf("counts: expected %d records, got %d", len(want.Counts), len(got.Counts)))
	}
	for i := range want.Counts {
		if want.Counts[i] != got.Counts[i] {
			errs = append(errs, fmt.Sprintf("counts[%d]: expected %d, got %d", i, want.Counts[i], got.Counts[i]))
		}
	}
	return errs
}
