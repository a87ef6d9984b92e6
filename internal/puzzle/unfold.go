package puzzle

import (
	"fmt"

	"github.com/roach88/springs/internal/spring"
)

// Unfold replicates row k times: the symbols joined by a single Unknown and
// the groups concatenated. Unfold(row, 1) returns an equal row.
//
// The result never aliases row.
func Unfold(row spring.Row, k int) (spring.Row, error) {
	if k < 1 {
		return spring.Row{}, &ParseError{
			Code:    ErrCodeBadUnfold,
			Message: fmt.Sprintf("unfold factor must be at least 1, got %d", k),
		}
	}

	symbols := make([]spring.Symbol, 0, k*len(row.Symbols)+k-1)
	groups := make([]int, 0, k*len(row.Groups))
	for i := 0; i < k; i++ {
		if i > 0 {
			symbols = append(symbols, spring.Unknown)
		}
		symbols = append(symbols, row.Symbols...)
		groups = append(groups, row.Groups...)
	}
	return spring.Row{Symbols: symbols, Groups: groups}, nil
}

// UnfoldAll applies Unfold to every entry's row.
func UnfoldAll(entries []Entry, k int) ([]Entry, error) {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		row, err := Unfold(e.Row, k)
		if err != nil {
			return nil, err
		}
		e.Row = row
		out[i] = e
	}
	return out, nil
}
