package spring

import (
	"slices"
	"strconv"
	"strings"
)

// Row is an input record before reduction: the symbols as written and the
// required damaged-run lengths, left to right.
type Row struct {
	Symbols []Symbol
	Groups  []int
}

// String renders the row in input-line form, e.g. "???.### 1,1,3".
func (r Row) String() string {
	return FormatSymbols(r.Symbols) + " " + FormatGroups(r.Groups)
}

// Record is a reduced subproblem. Records are produced only by Reduce and
// are never mutated afterwards, so the structural key is computed once.
//
// The zero Record has no symbols and no groups and counts as exactly one
// arrangement.
type Record struct {
	symbols []Symbol
	groups  []int
	key     string
}

func newRecord(symbols []Symbol, groups []int) Record {
	return Record{
		symbols: symbols,
		groups:  groups,
		key:     recordKey(symbols, groups),
	}
}

// recordKey encodes (symbols, groups) as "<symbols>|<g1>,<g2>,...". The
// symbol alphabet never contains '|', so the encoding is injective.
func recordKey(symbols []Symbol, groups []int) string {
	buf := make([]byte, 0, len(symbols)+1+3*len(groups))
	for _, s := range symbols {
		buf = append(buf, s.Byte())
	}
	buf = append(buf, '|')
	for i, g := range groups {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(g), 10)
	}
	return string(buf)
}

// Symbols returns a copy of the remaining symbols.
func (r Record) Symbols() []Symbol { return slices.Clone(r.symbols) }

// Groups returns a copy of the still-unsatisfied run lengths.
func (r Record) Groups() []int { return slices.Clone(r.groups) }

// Key returns the structural cache key of the record.
func (r Record) Key() string { return r.key }

// Equal reports whether two records have identical content.
func (r Record) Equal(other Record) bool { return r.key == other.key }

func (r Record) String() string {
	return FormatSymbols(r.symbols) + " " + FormatGroups(r.groups)
}

// minLength is the fewest symbols any completion of the groups occupies:
// every run plus one separator between consecutive runs.
func (r Record) minLength() int {
	if len(r.groups) == 0 {
		return 0
	}
	n := len(r.groups) - 1
	for _, g := range r.groups {
		n += g
	}
	return n
}

// FormatGroups renders run lengths comma-separated.
func FormatGroups(groups []int) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = strconv.Itoa(g)
	}
	return strings.Join(parts, ",")
}
