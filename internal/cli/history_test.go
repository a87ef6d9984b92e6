package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/springs/internal/ir"
	"github.com/roach88/springs/internal/testutil"
)

func solveInto(t *testing.T, db string, args ...string) SolveOutput {
	t.Helper()

	args = append([]string{"solve", "--db", db, "--format", "json"}, args...)
	out, _, err := execute(t, testutil.SampleInput, args...)
	require.NoError(t, err)

	var data SolveOutput
	decodeResponse(t, out, &data)
	return data
}

func TestHistory_NoDatabase(t *testing.T) {
	_, _, err := execute(t, "", "history")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no database")
}

func TestHistory_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "springs.db")

	out, _, err := execute(t, "", "history", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded.\n", out)
}

func TestHistory_ListNewestFirst(t *testing.T) {
	db := filepath.Join(t.TempDir(), "springs.db")
	first := solveInto(t, db)
	second := solveInto(t, db, "--unfold", "5")

	out, _, err := execute(t, "", "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "SEQ")
	assert.Less(t, strings.Index(out, second.RunID), strings.Index(out, first.RunID))
	assert.Contains(t, out, "525152")

	out, _, err = execute(t, "", "history", "--db", db, "--limit", "1", "--format", "json")
	require.NoError(t, err)

	var runs []ir.RunRecord
	decodeResponse(t, out, &runs)
	require.Len(t, runs, 1)
	assert.Equal(t, second.RunID, runs[0].ID)
	assert.Equal(t, 5, runs[0].Unfold)
	assert.Empty(t, runs[0].Lines)
}

func TestHistory_ShowRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "springs.db")
	run := solveInto(t, db)

	out, _, err := execute(t, "", "history", "--db", db, run.RunID)
	require.NoError(t, err)
	assert.Contains(t, out, "Run "+run.RunID)
	assert.Contains(t, out, "?###???????? 3,2,1")
	assert.Contains(t, out, "Total: 21")

	out, _, err = execute(t, "", "history", "--db", db, run.RunID, "--format", "json")
	require.NoError(t, err)

	var rec ir.RunRecord
	decodeResponse(t, out, &rec)
	assert.Equal(t, run.RunID, rec.ID)
	require.Len(t, rec.Lines, len(testutil.SampleCounts))
	for i, line := range rec.Lines {
		assert.Equal(t, i+1, line.Line)
		assert.Equal(t, testutil.SampleCounts[i], line.Count)
	}
}

func TestHistory_RunNotFound(t *testing.T) {
	db := filepath.Join(t.TempDir(), "springs.db")

	_, _, err := execute(t, "", "history", "--db", db, "no-such-run")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "run not found")
}

func TestHistory_DatabaseFromConfig(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "springs.db")
	cfg := writeFile(t, dir, "springs.cue", "db: \""+filepath.ToSlash(db)+"\"\n")
	solveInto(t, db)

	out, _, err := execute(t, "", "--config", cfg, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "21")
}
