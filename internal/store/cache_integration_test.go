package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/springs/internal/puzzle"
	"github.com/roach88/springs/internal/solver"
	"github.com/roach88/springs/internal/testutil"
)

func TestSolverWithStoreCache(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	entries, err := puzzle.ParseString(testutil.SampleInput)
	require.NoError(t, err)

	sv := solver.New(
		solver.WithResultCache(s),
		solver.WithUnfold(5),
		solver.WithIDGenerator(testutil.NewFixedIDGenerator("run-cache")),
	)
	first, err := sv.SolveAll(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleUnfoldedTotal, first.Total)

	_, err = s.WriteRun(ctx, first.Record())
	require.NoError(t, err)

	second, err := solver.New(solver.WithResultCache(s), solver.WithUnfold(5)).SolveAll(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, first.Counts(), second.Counts())
	for _, res := range second.Results {
		assert.True(t, res.Cached, "line %d", res.Line)
	}

	stored, err := s.ReadRun(ctx, "run-cache")
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleUnfoldedTotal, stored.Total)
	assert.Equal(t, first.InputDigest, stored.InputDigest)
	require.Len(t, stored.Lines, 6)
	assert.Equal(t, uint64(506250), stored.Lines[5].Count)
}
