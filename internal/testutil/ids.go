package testutil

// FixedIDGenerator returns the same run ID every time.
//
// Solver runs stamped with a fixed ID produce byte-identical history rows and
// golden snapshots, which keeps tests deterministic.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator that always returns id.
// If id is empty, Generate() returns "test-run-default".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed run ID.
//
// Implements solver.IDGenerator.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
