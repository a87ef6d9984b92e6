package puzzle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/roach88/springs/internal/spring"
)

// Entry is one parsed input line.
type Entry struct {
	Line int    // 1-based line number
	Text string // trimmed source text
	Row  spring.Row
}

// ParseLine parses a single "<symbols> <groups>" record.
func ParseLine(text string) (spring.Row, error) {
	symText, groupText, offset, err := splitFields(text)
	if err != nil {
		return spring.Row{}, err
	}

	symbols, err := spring.ParseSymbols(symText)
	if err != nil {
		col := 0
		msg := err.Error()
		var se *spring.SymbolError
		if errors.As(err, &se) {
			col = offset.symbols + se.Index + 1
			msg = fmt.Sprintf("invalid symbol %q", se.Char)
		}
		return spring.Row{}, &ParseError{Column: col, Code: ErrCodeBadSymbol, Message: msg}
	}

	groups, err := parseGroups(groupText, offset.groups)
	if err != nil {
		return spring.Row{}, err
	}

	return spring.Row{Symbols: symbols, Groups: groups}, nil
}

type fieldOffsets struct {
	symbols int
	groups  int
}

// splitFields splits a record into its two whitespace-separated fields and
// returns their byte offsets within text.
func splitFields(text string) (string, string, fieldOffsets, error) {
	var off fieldOffsets
	trimmed := strings.TrimLeft(text, " \t")
	off.symbols = len(text) - len(trimmed)
	trimmed = strings.TrimRight(trimmed, " \t\r\n")
	if trimmed == "" {
		return "", "", off, &ParseError{Code: ErrCodeEmptyLine, Message: "record is empty"}
	}

	cut := strings.IndexAny(trimmed, " \t")
	if cut < 0 {
		return "", "", off, &ParseError{
			Column:  off.symbols + len(trimmed) + 1,
			Code:    ErrCodeMissingGroups,
			Message: "expected \"<symbols> <groups>\"",
		}
	}

	symText := trimmed[:cut]
	rest := strings.TrimLeft(trimmed[cut:], " \t")
	off.groups = off.symbols + len(trimmed) - len(rest)
	if strings.ContainsAny(rest, " \t") {
		col := off.groups + strings.IndexAny(rest, " \t") + 1
		return "", "", off, &ParseError{Column: col, Code: ErrCodeBadGroup, Message: "unexpected trailing field"}
	}
	return symText, rest, off, nil
}

func parseGroups(text string, offset int) ([]int, error) {
	tokens := strings.Split(text, ",")
	groups := make([]int, 0, len(tokens))
	col := offset + 1
	for _, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil || n <= 0 {
			return nil, &ParseError{
				Column:  col,
				Code:    ErrCodeBadGroup,
				Message: fmt.Sprintf("group %q is not a positive integer", tok),
			}
		}
		groups = append(groups, n)
		col += len(tok) + 1
	}
	return groups, nil
}

// Parse reads one record per non-blank line from r.
// The first malformed line aborts parsing.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		row, err := ParseLine(text)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = line
			}
			return nil, err
		}
		entries = append(entries, Entry{Line: line, Text: strings.TrimSpace(text), Row: row})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return entries, nil
}

// ParseString is Parse over a string.
func ParseString(s string) ([]Entry, error) {
	return Parse(strings.NewReader(s))
}
