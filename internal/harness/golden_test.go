package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden(t *testing.T) {
	for _, name := range []string{"sample", "sample-unfolded", "edge-cases"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass)
		})
	}
}

func TestSnapshot_Canonical(t *testing.T) {
	snap, err := Snapshot(&Result{Name: "x", Unfold: 2, Counts: []uint64{3, 4}, Total: 7})
	require.NoError(t, err)
	assert.Equal(t, `{"counts":[3,4],"name":"x","total":7,"unfold":2}`, string(snap))
}

func TestWriteCompareGolden(t *testing.T) {
	dir := t.TempDir()
	path := GoldenPath(dir, "x")
	result := &Result{Name: "x", Unfold: 1, Counts: []uint64{1}, Total: 1}

	ok, exists, err := CompareGolden(path, result)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, exists)

	require.NoError(t, WriteGolden(path, result))

	ok, exists, err = CompareGolden(path, result)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, exists)

	changed := &Result{Name: "x", Unfold: 1, Counts: []uint64{2}, Total: 2}
	ok, _, err = CompareGolden(path, changed)
	require.NoError(t, err)
	assert.False(t, ok)
}
