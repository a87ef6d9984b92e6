package testutil

import (
	"slices"
	"strings"
)

// BruteForceCount enumerates every resolution of the '?' positions in
// symbols and counts those whose damaged runs equal groups. It is
// exponential in the number of unknowns and exists only as a reference for
// property tests.
func BruteForceCount(symbols string, groups []int) uint64 {
	buf := []byte(symbols)
	var unknown []int
	for i, c := range buf {
		if c == '?' {
			unknown = append(unknown, i)
		}
	}

	var total uint64
	for mask := 0; mask < 1<<len(unknown); mask++ {
		for bit, pos := range unknown {
			if mask&(1<<bit) != 0 {
				buf[pos] = '#'
			} else {
				buf[pos] = '.'
			}
		}
		if slices.Equal(Runs(string(buf)), groups) {
			total++
		}
	}
	return total
}

// Runs returns the lengths of the maximal '#' runs in s, left to right.
func Runs(s string) []int {
	runs := []int{}
	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return r != '#' }) {
		runs = append(runs, len(field))
	}
	return runs
}
