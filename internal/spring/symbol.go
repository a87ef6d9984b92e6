package spring

import (
	"fmt"
	"strings"
)

// Symbol is the state of one position in a row.
type Symbol uint8

const (
	// Operational is a working spring, printed as '.'.
	Operational Symbol = iota
	// Damaged is a broken spring, printed as '#'.
	Damaged
	// Unknown is a spring whose state is not recorded, printed as '?'.
	Unknown
)

// Byte returns the printable form of the symbol.
func (s Symbol) Byte() byte {
	switch s {
	case Operational:
		return '.'
	case Damaged:
		return '#'
	case Unknown:
		return '?'
	default:
		return '!'
	}
}

func (s Symbol) String() string {
	return string(s.Byte())
}

// SymbolError reports a character that is not one of '#', '.' or '?'.
type SymbolError struct {
	Index int  // byte offset in the input
	Char  rune // offending character
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %q at offset %d", e.Char, e.Index)
}

// ParseSymbols decodes the textual form of a row's symbols.
func ParseSymbols(s string) ([]Symbol, error) {
	out := make([]Symbol, 0, len(s))
	for i, r := range s {
		switch r {
		case '.':
			out = append(out, Operational)
		case '#':
			out = append(out, Damaged)
		case '?':
			out = append(out, Unknown)
		default:
			return nil, &SymbolError{Index: i, Char: r}
		}
	}
	return out, nil
}

// MustParseSymbols is like ParseSymbols but panics on error.
// Use only in tests or with literal input.
func MustParseSymbols(s string) []Symbol {
	syms, err := ParseSymbols(s)
	if err != nil {
		panic(err)
	}
	return syms
}

// FormatSymbols renders symbols in their textual form.
func FormatSymbols(syms []Symbol) string {
	var b strings.Builder
	b.Grow(len(syms))
	for _, s := range syms {
		b.WriteByte(s.Byte())
	}
	return b.String()
}
