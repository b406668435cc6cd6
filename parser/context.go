package parser

import (
	"github.com/xiam/sign/lexer"
)

// Context is the state a sub-parse depends on. It is passed by value and
// never modified in place: each modifier returns a copy, so a sub-parse
// can't leak its flags into the caller, not even on error paths.
type Context struct {
	InLambda    bool
	InPointFree bool

	// Expecting holds the closing brackets of the enclosing bracket blocks,
	// innermost last.
	Expecting      []lexer.TokenType
	BracketBalance int

	// AllowNumericParams lets literals stand in for lambda parameters.
	AllowNumericParams bool
}

func (c Context) enterLambda() Context {
	c.InLambda = true
	return c
}

func (c Context) enterPointFree() Context {
	c.InPointFree = true
	return c
}

func (c Context) expect(closer lexer.TokenType) Context {
	expecting := make([]lexer.TokenType, len(c.Expecting), len(c.Expecting)+1)
	copy(expecting, c.Expecting)

	c.Expecting = append(expecting, closer)
	c.BracketBalance++
	c.InPointFree = false
	return c
}

// expects returns true if any enclosing bracket block waits for tt.
func (c Context) expects(tt lexer.TokenType) bool {
	for _, e := range c.Expecting {
		if e == tt {
			return true
		}
	}
	return false
}
