// Package puzzle reads condition records from text and applies the unfold
// transform.
//
// Each non-blank line has the form
//
//	<symbols> <groups>
//
// where symbols uses '#' (damaged), '.' (operational) and '?' (unknown) and
// groups is a comma-separated list of positive run lengths:
//
//	?###???????? 3,2,1
//
// Parse failures are reported as *ParseError with the 1-based line and
// column of the offending token.
package puzzle
