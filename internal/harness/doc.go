// Package harness runs scenario files against the solver.
//
// A scenario is a YAML file naming a puzzle input, an unfold factor and the
// counts it must produce:
//
//	name: sample-unfolded
//	description: Canonical six records, unfolded five times
//	input_file: sample.txt
//	unfold: 5
//	expect:
//	  total: 525152
//	  counts: [1, 16384, 1, 16, 2500, 506250]
//
// Run solves the input and evaluates the expectations. RunWithGolden also
// snapshots the result as canonical JSON under testdata/golden, so a change
// in any per-line count shows up as a golden diff.
package harness
