package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/springs/internal/testutil"
)

func TestSolve_Stdin(t *testing.T) {
	out, _, err := execute(t, testutil.SampleInput, "solve")
	require.NoError(t, err)
	assert.Equal(t, "21\n", out)
}

func TestSolve_DashReadsStdin(t *testing.T) {
	out, _, err := execute(t, testutil.SampleInput, "solve", "-")
	require.NoError(t, err)
	assert.Equal(t, "21\n", out)
}

func TestSolve_FileUnfolded(t *testing.T) {
	path := writeFile(t, t.TempDir(), "input.txt", testutil.SampleInput)

	out, _, err := execute(t, "", "solve", path, "--unfold", "5", "--workers", "2")
	require.NoError(t, err)
	assert.Equal(t, "525152\n", out)
}

func TestSolve_EmptyInput(t *testing.T) {
	out, _, err := execute(t, "\n\n", "solve")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestSolve_PerRecord(t *testing.T) {
	out, _, err := execute(t, "???.### 1,1,3\n\n?###???????? 3,2,1\n", "solve", "--per-record")
	require.NoError(t, err)

	want := "1\t???.### 1,1,3\t1\n" +
		"3\t?###???????? 3,2,1\t10\n" +
		"11\n"
	assert.Equal(t, want, out)
}

func TestSolve_JSON(t *testing.T) {
	out, _, err := execute(t, testutil.SampleInput, "solve", "--format", "json", "--per-record")
	require.NoError(t, err)

	var data SolveOutput
	resp := decodeResponse(t, out, &data)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, testutil.SampleTotal, data.Total)
	assert.Equal(t, 1, data.Unfold)
	assert.NotEmpty(t, data.RunID)
	assert.Len(t, data.InputDigest, 64)

	require.Len(t, data.Records, len(testutil.SampleCounts))
	for i, rec := range data.Records {
		assert.Equal(t, testutil.SampleCounts[i], rec.Count, "line %d", rec.Line)
	}
}

func TestSolve_MalformedInput(t *testing.T) {
	out, _, err := execute(t, "???.### 1,1,3\n??x 1\n", "solve")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "line 2")
	assert.Empty(t, out)
}

func TestSolve_MalformedInputJSON(t *testing.T) {
	out, _, err := execute(t, "??? 0\n", "solve", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	resp := decodeResponse(t, out, nil)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInput, resp.Error.Code)
}

func TestSolve_MissingFile(t *testing.T) {
	_, _, err := execute(t, "", "solve", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to read input")
}

func TestSolve_BadUnfold(t *testing.T) {
	_, _, err := execute(t, testutil.SampleInput, "solve", "--unfold", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSolve_Overflow(t *testing.T) {
	_, _, err := execute(t, "???.??? 1\n", "solve", "--unfold", "40")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "count overflow")
}

func TestSolve_DatabaseCachesAndRecords(t *testing.T) {
	db := filepath.Join(t.TempDir(), "springs.db")

	out, _, err := execute(t, testutil.SampleInput, "solve", "--db", db, "--unfold", "5")
	require.NoError(t, err)
	assert.Equal(t, "525152\n", out)

	out, _, err = execute(t, testutil.SampleInput, "solve", "--db", db, "--unfold", "5", "--format", "json", "--per-record")
	require.NoError(t, err)

	var data SolveOutput
	decodeResponse(t, out, &data)
	assert.Equal(t, testutil.SampleUnfoldedTotal, data.Total)
	for _, rec := range data.Records {
		assert.True(t, rec.Cached, "line %d should be served from the database", rec.Line)
	}

	out, _, err = execute(t, "", "history", "--db", db, "--format", "json")
	require.NoError(t, err)

	var runs []struct {
		ID    string `json:"id"`
		Total uint64 `json:"total"`
	}
	decodeResponse(t, out, &runs)
	require.Len(t, runs, 2)
	assert.Equal(t, data.RunID, runs[0].ID, "newest run first")
}
