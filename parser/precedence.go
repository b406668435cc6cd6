package parser

import (
	"github.com/xiam/sign/lexer"
)

type tier uint8

// Binary tiers, low to high. Not, spread and range sit between tierAnd and
// tierComparison and are parsed by dedicated functions.
const (
	tierNone tier = iota
	tierOr
	tierAnd
	tierComparison
	tierAdditive
	tierMultiplicative
	tierPower
)

type assoc uint8

const (
	assocLeft assoc = iota
	assocRight
)

type operator struct {
	tier  tier
	assoc assoc
}

var operators = map[lexer.TokenType]operator{
	lexer.TokenOr:  {tierOr, assocLeft},
	lexer.TokenXor: {tierOr, assocLeft},

	lexer.TokenAnd: {tierAnd, assocLeft},

	lexer.TokenLess:      {tierComparison, assocLeft},
	lexer.TokenLessEqual: {tierComparison, assocLeft},
	lexer.TokenEqual:     {tierComparison, assocLeft},
	lexer.TokenNotEqual:  {tierComparison, assocLeft},
	lexer.TokenMoreEqual: {tierComparison, assocLeft},
	lexer.TokenMore:      {tierComparison, assocLeft},

	lexer.TokenAdd: {tierAdditive, assocLeft},
	lexer.TokenSub: {tierAdditive, assocLeft},

	lexer.TokenMul: {tierMultiplicative, assocLeft},
	lexer.TokenDiv: {tierMultiplicative, assocLeft},
	lexer.TokenMod: {tierMultiplicative, assocLeft},

	lexer.TokenPow: {tierPower, assocRight},
}

func isBinary(tt lexer.TokenType) bool {
	_, ok := operators[tt]
	return ok
}

// isPartial returns true for operators that can be bound on one side
// inside "[...]".
func isPartial(tt lexer.TokenType) bool {
	return isBinary(tt) || tt == lexer.TokenGet
}
