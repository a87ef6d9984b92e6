package spring

// OutcomeKind tags the result of Reduce.
type OutcomeKind uint8

const (
	// Contradiction means the determined prefix cannot satisfy the groups
	// under any completion. It contributes zero arrangements.
	Contradiction OutcomeKind = iota
	// Satisfied means the row has no Unknown symbol left and its runs equal
	// the groups exactly. It contributes one arrangement.
	Satisfied
	// Reduced means a smaller subproblem remains; see Outcome.Record.
	Reduced
)

func (k OutcomeKind) String() string {
	switch k {
	case Contradiction:
		return "contradiction"
	case Satisfied:
		return "satisfied"
	case Reduced:
		return "reduced"
	default:
		return "invalid"
	}
}

// Outcome is the tagged result of Reduce. Record is meaningful only when
// Kind is Reduced.
type Outcome struct {
	Kind   OutcomeKind
	Record Record
}

// Reduce consumes the unambiguous prefix of (symbols, groups).
//
// Complete runs found before the first Unknown are matched against the head
// of groups and dropped together with the symbols up to the last Operational
// boundary. A run still open at the Unknown is kept in the returned Record so
// the next branch can extend or close it.
//
// The returned Record aliases the argument slices; callers must not modify
// them afterwards.
func Reduce(symbols []Symbol, groups []int) Outcome {
	run, closed, trim := 0, 0, 0
	for i, s := range symbols {
		switch s {
		case Damaged:
			run++
		case Operational:
			if run > 0 {
				if closed >= len(groups) || groups[closed] != run {
					return Outcome{Kind: Contradiction}
				}
				closed++
				run = 0
			}
			trim = i + 1
		case Unknown:
			if run > 0 && (closed == len(groups) || groups[closed] < run) {
				return Outcome{Kind: Contradiction}
			}
			return Outcome{Kind: Reduced, Record: newRecord(symbols[trim:], groups[closed:])}
		}
	}

	if run > 0 {
		if closed >= len(groups) || groups[closed] != run {
			return Outcome{Kind: Contradiction}
		}
		closed++
	}
	if closed != len(groups) {
		return Outcome{Kind: Contradiction}
	}
	return Outcome{Kind: Satisfied}
}

// ReduceRow is Reduce applied to a Row.
func ReduceRow(row Row) Outcome {
	return Reduce(row.Symbols, row.Groups)
}
