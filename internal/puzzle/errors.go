package puzzle

import (
	"errors"
	"fmt"
)

// ParseErrorCode categorizes malformed input.
type ParseErrorCode string

const (
	// ErrCodeEmptyLine indicates a record with no symbols field.
	ErrCodeEmptyLine ParseErrorCode = "EMPTY_LINE"

	// ErrCodeMissingGroups indicates a record with no groups field.
	ErrCodeMissingGroups ParseErrorCode = "MISSING_GROUPS"

	// ErrCodeBadSymbol indicates a character outside '#', '.', '?'.
	ErrCodeBadSymbol ParseErrorCode = "BAD_SYMBOL"

	// ErrCodeBadGroup indicates a group token that is not a positive integer.
	ErrCodeBadGroup ParseErrorCode = "BAD_GROUP"

	// ErrCodeBadUnfold indicates an unfold factor below one.
	ErrCodeBadUnfold ParseErrorCode = "BAD_UNFOLD"
)

// ParseError reports malformed input.
type ParseError struct {
	// Line is the 1-based input line, or 0 when parsing a single record.
	Line int

	// Column is the 1-based byte column of the offending token, or 0.
	Column int

	Code    ParseErrorCode
	Message string
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("line %d:%d: %s: %s", e.Line, e.Column, e.Code, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Code, e.Message)
	case e.Column > 0:
		return fmt.Sprintf("column %d: %s: %s", e.Column, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
