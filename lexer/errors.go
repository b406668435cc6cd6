package lexer

import (
	"errors"
	"fmt"
)

// Lexical errors, always fatal.
var (
	ErrUnknownCharacter    = errors.New("unknown character")
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrIncompleteCharacter = errors.New("incomplete character literal")
	ErrMalformedNumber     = errors.New("malformed number")
	ErrInvalidDedent       = errors.New("invalid dedent")
	ErrInvalidEncoding     = errors.New("invalid encoding")
)

// Error is a lexical error with the position where it was found.
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
