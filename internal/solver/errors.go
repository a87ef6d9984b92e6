package solver

import (
	"errors"
	"fmt"

	"github.com/roach88/springs/internal/spring"
)

// RunErrorCode categorizes solve failures.
type RunErrorCode string

const (
	// ErrCodeOverflow indicates a count or total exceeded uint64.
	ErrCodeOverflow RunErrorCode = "OVERFLOW"

	// ErrCodeCanceled indicates the context ended before all records finished.
	ErrCodeCanceled RunErrorCode = "CANCELED"

	// ErrCodeCache indicates the durable result cache failed.
	ErrCodeCache RunErrorCode = "CACHE"

	// ErrCodeInput indicates the input could not be prepared (e.g. bad unfold factor).
	ErrCodeInput RunErrorCode = "INPUT"
)

// RunError is a failure of a solve run.
type RunError struct {
	Code    RunErrorCode
	Message string

	// Line is the 1-based input line the failure belongs to, or 0.
	Line int

	Err error
}

func (e *RunError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// IsOverflowError reports whether err is an overflow of the count type.
func IsOverflowError(err error) bool {
	var re *RunError
	if errors.As(err, &re) && re.Code == ErrCodeOverflow {
		return true
	}
	return errors.Is(err, spring.ErrOverflow)
}

// IsCanceledError reports whether err is a run cut short by its context.
func IsCanceledError(err error) bool {
	var re *RunError
	return errors.As(err, &re) && re.Code == ErrCodeCanceled
}

func newOverflowError(line int, err error) *RunError {
	return &RunError{
		Code:    ErrCodeOverflow,
		Message: "arrangement count does not fit in uint64",
		Line:    line,
		Err:     err,
	}
}
