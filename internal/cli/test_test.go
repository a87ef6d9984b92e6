package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: small
description: Two sample records
input: |
  ???.### 1,1,3
  ?###???????? 3,2,1
expect:
  total: 11
  counts: [1, 10]
`

const failingScenario = `name: wrong
description: Deliberately wrong total
input: |
  ???.### 1,1,3
expect:
  total: 2
`

func TestTestCommand_MissingArgs(t *testing.T) {
	_, _, err := execute(t, "", "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommand_NonExistentDir(t *testing.T) {
	_, _, err := execute(t, "", "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommand_Empty(t *testing.T) {
	out, _, err := execute(t, "", "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommand_Passing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.yaml", passingScenario)

	out, _, err := execute(t, "", "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ small")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestCommand_Failing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.yaml", passingScenario)
	writeFile(t, dir, "wrong.yaml", failingScenario)

	out, _, err := execute(t, "", "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "total: expected 2, got 1")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommand_Filter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.yaml", passingScenario)
	writeFile(t, dir, "wrong.yaml", failingScenario)

	out, _, err := execute(t, "", "test", dir, "--filter", "sm*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 total")
	assert.NotContains(t, out, "wrong")
}

func TestTestCommand_InvalidFilter(t *testing.T) {
	_, _, err := execute(t, "", "test", t.TempDir(), "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_LoadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "name: broken\nbogus: true\n")

	out, _, err := execute(t, "", "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommand_GoldenUpdateAndCompare(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.yaml", passingScenario)

	_, _, err := execute(t, "", "test", dir, "--update")
	require.NoError(t, err)

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "small.golden"))
	require.NoError(t, err)
	assert.Equal(t, `{"counts":[1,10],"name":"small","total":11,"unfold":1}`, string(golden))

	_, _, err = execute(t, "", "test", dir)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "golden"), "small.golden", `{"counts":[1,9],"name":"small","total":10,"unfold":1}`)
	out, _, err := execute(t, "", "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "does not match golden file")
}

func TestTestCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.yaml", passingScenario)
	writeFile(t, dir, "wrong.yaml", failingScenario)

	out, _, err := execute(t, "", "test", dir, "--format", "json")
	require.Error(t, err)

	var data TestResult
	resp := decodeResponse(t, out, &data)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 2, data.Total)
	assert.Equal(t, 1, data.Passed)
	assert.Equal(t, 1, data.Failed)
	require.Len(t, data.Scenarios, 2)
	assert.Equal(t, "small", data.Scenarios[0].Name)
	assert.True(t, data.Scenarios[0].Pass)
	assert.False(t, data.Scenarios[1].Pass)
}
