package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/springs/internal/ir"
)

// Snapshot renders a result as canonical JSON for golden comparison.
// Only deterministic fields are included.
func Snapshot(result *Result) ([]byte, error) {
	return ir.MarshalCanonical(ir.IRObject{
		"name":   ir.IRString(result.Name),
		"unfold": ir.IRInt(result.Unfold),
		"counts": ir.Uints(result.Counts),
		"total":  ir.IRUint(result.Total),
	})
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	snapshot, err := Snapshot(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, snapshot)
	return nil
}

// GoldenPath returns where the CLI keeps the golden file of a scenario:
// a golden/ directory next to the scenario files.
func GoldenPath(scenariosDir, name string) string {
	return filepath.Join(scenariosDir, "golden", name+".golden")
}

// WriteGolden writes the snapshot of result to path, creating directories.
func WriteGolden(path string, result *Result) error {
	snapshot, err := Snapshot(result)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create golden dir: %w", err)
	}
	if err := os.WriteFile(path, snapshot, 0o644); err != nil {
		return fmt.Errorf("write golden file: %w", err)
	}
	return nil
}

// CompareGolden reports whether result matches the golden file at path.
// A missing golden file is not an error; ok is true and exists false.
func CompareGolden(path string, result *Result) (ok, exists bool, err error) {
	want, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return true, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("read golden file: %w", err)
	}

	got, err := Snapshot(result)
	if err != nil {
		return false, true, err
	}
	return bytes.Equal(bytes.TrimSpace(want), got), true, nil
}
