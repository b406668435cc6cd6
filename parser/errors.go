package parser

import (
	"errors"
	"fmt"

	"github.com/xiam/sign/ast"
)

// Parse errors. In recovery mode they are recorded as diagnostics, in strict
// mode the first one is returned.
var (
	ErrUnexpectedEOF    = errors.New("unexpected EOF")
	ErrUnexpectedToken  = errors.New("unexpected token")
	ErrMissingOperand   = errors.New("missing operand")
	ErrUnmatchedBracket = errors.New("unmatched bracket")
	ErrInvalidShape     = errors.New("invalid shape")
	ErrTooManyErrors    = errors.New("too many errors")
	ErrTooDeep          = errors.New("nesting too deep")
)

// Error is a parse error with the position where it was found.
type Error struct {
	Err     error
	Message string

	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Unwrap returns the sentinel error.
func (e *Error) Unwrap() error {
	return e.Err
}

func errorAt(err error, pos ast.Position, format string, args ...interface{}) *Error {
	return &Error{
		Err:     err,
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line,
		Column:  pos.Column,
	}
}
