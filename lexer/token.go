package lexer

import (
	"fmt"
)

// Token represents a known sequence of characters (lexical unit)
type Token struct {
	tt     TokenType
	lexeme string

	line int
	col  int

	spaced bool
	resync bool
}

// NewToken creates a lexical unit
func NewToken(tt TokenType, lexeme string, line int, col int) *Token {
	return &Token{
		tt:     tt,
		lexeme: lexeme,
		line:   line,
		col:    col,
	}
}

// Type returns the type of the lexical unit
func (t Token) Type() TokenType {
	return t.tt
}

// Pos returns the line and column of the lexical unit
func (t Token) Pos() (int, int) {
	return t.line, t.col
}

// Text returns the text of the lexical unit. Strings and characters carry
// their content without delimiters.
func (t Token) Text() string {
	return t.lexeme
}

// Is returns true if the token matches the given type
func (t Token) Is(tt TokenType) bool {
	return t.tt == tt
}

// Spaced returns true if whitespace or the start of a line comes right
// before the token.
func (t Token) Spaced() bool {
	return t.spaced
}

// Resync returns true if the token starts a line that falls back to the
// indentation of the enclosing statement while a bracket is still open. The
// lexer stops ignoring indentation there, the parser closes the brackets.
func (t Token) Resync() bool {
	return t.resync
}

func (t Token) String() string {
	return fmt.Sprintf("(:%v %q [%d %d])", t.tt, t.lexeme, t.line, t.col)
}
