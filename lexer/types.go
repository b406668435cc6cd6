package lexer

// TokenType represents all the possible types of a lexical unit
type TokenType uint8

// List of types of lexical units
const (
	TokenInvalid TokenType = iota

	TokenNumber // Number: "42", "-3.5", "0x1f", "0o17", "0b101"
	TokenString // Backtick string: "`text`"
	TokenChar   // Character: "\x"
	TokenIdent  // Letters, digits and underscore, not starting with a digit
	TokenUnit   // Unit: "_"

	TokenOpenExpression  // Open parenthesis: "("
	TokenCloseExpression // Close parenthesis: ")"
	TokenOpenList        // Open square bracket: "["
	TokenCloseList       // Close square bracket: "]"
	TokenOpenMap         // Open curly bracket: "{"
	TokenCloseMap        // Close curly bracket: "}"

	TokenNewLine // End of a logical line
	TokenIndent  // Indentation level increased
	TokenDedent  // Indentation level decreased
	TokenEOF     // End of file

	TokenDefine    // Colon: ":"
	TokenLambda    // Question mark: "?"
	TokenProduct   // Comma: ","
	TokenSpread    // Tilde: "~"
	TokenExport    // Hash: "#"
	TokenImport    // At: "@"
	TokenGet       // Apostrophe: "'"
	TokenOr        // Pipe: "|"
	TokenXor       // Semicolon: ";"
	TokenAnd       // Ampersand: "&"
	TokenNot       // Bang: "!"
	TokenLess      // "<"
	TokenLessEqual // "<="
	TokenEqual     // "=" or "=="
	TokenNotEqual  // "!=", "<>" or "><"
	TokenMoreEqual // ">="
	TokenMore      // ">"
	TokenAdd       // "+"
	TokenSub       // "-"
	TokenMul       // "*"
	TokenDiv       // "/"
	TokenMod       // "%"
	TokenPow       // "^"
)

var tokenValues = map[TokenType][]rune{
	TokenOpenExpression:  []rune{'('},
	TokenCloseExpression: []rune{')'},
	TokenOpenList:        []rune{'['},
	TokenCloseList:       []rune{']'},
	TokenOpenMap:         []rune{'{'},
	TokenCloseMap:        []rune{'}'},
	TokenNewLine:         []rune{'\n'},
	TokenString:          []rune{'`'},
	TokenChar:            []rune{'\\'},
	TokenIdent:           []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"),
	TokenNumber:          []rune("0123456789"),

	TokenDefine:  []rune{':'},
	TokenLambda:  []rune{'?'},
	TokenProduct: []rune{','},
	TokenSpread:  []rune{'~'},
	TokenExport:  []rune{'#'},
	TokenImport:  []rune{'@'},
	TokenGet:     []rune{'\''},
	TokenOr:      []rune{'|'},
	TokenXor:     []rune{';'},
	TokenAnd:     []rune{'&'},
	TokenNot:     []rune{'!'},
	TokenLess:    []rune{'<'},
	TokenEqual:   []rune{'='},
	TokenMore:    []rune{'>'},
	TokenAdd:     []rune{'+'},
	TokenSub:     []rune{'-'},
	TokenMul:     []rune{'*'},
	TokenDiv:     []rune{'/'},
	TokenMod:     []rune{'%'},
	TokenPow:     []rune{'^'},
}

// compoundOperators are matched before the one-character fallback.
var compoundOperators = map[string]TokenType{
	"<=": TokenLessEqual,
	">=": TokenMoreEqual,
	"==": TokenEqual,
	"!=": TokenNotEqual,
	"<>": TokenNotEqual,
	"><": TokenNotEqual,
}

var tokenNames = map[TokenType]string{
	TokenInvalid: "invalid",

	TokenNumber: "number",
	TokenString: "string",
	TokenChar:   "char",
	TokenIdent:  "ident",
	TokenUnit:   "unit",

	TokenOpenExpression:  "open_expression",
	TokenCloseExpression: "close_expression",
	TokenOpenList:        "open_list",
	TokenCloseList:       "close_list",
	TokenOpenMap:         "open_map",
	TokenCloseMap:        "close_map",

	TokenNewLine: "newline",
	TokenIndent:  "indent",
	TokenDedent:  "dedent",
	TokenEOF:     "EOF",

	TokenDefine:    "define",
	TokenLambda:    "lambda",
	TokenProduct:   "product",
	TokenSpread:    "spread",
	TokenExport:    "export",
	TokenImport:    "import",
	TokenGet:       "get",
	TokenOr:        "or",
	TokenXor:       "xor",
	TokenAnd:       "and",
	TokenNot:       "not",
	TokenLess:      "less",
	TokenLessEqual: "less_equal",
	TokenEqual:     "equal",
	TokenNotEqual:  "not_equal",
	TokenMoreEqual: "more_equal",
	TokenMore:      "more",
	TokenAdd:       "add",
	TokenSub:       "sub",
	TokenMul:       "mul",
	TokenDiv:       "div",
	TokenMod:       "mod",
	TokenPow:       "pow",
}

// glyphs holds the canonical spelling of every operator, compound
// spellings are normalized ("==" is "=", "<>" is "!=").
var glyphs = map[TokenType]string{
	TokenLessEqual: "<=",
	TokenMoreEqual: ">=",
	TokenNotEqual:  "!=",
}

var closers = map[TokenType]TokenType{
	TokenOpenExpression: TokenCloseExpression,
	TokenOpenList:       TokenCloseList,
	TokenOpenMap:        TokenCloseMap,
}

var symbols = map[rune]TokenType{}

func init() {
	for tt := TokenDefine; tt <= TokenPow; tt++ {
		values, ok := tokenValues[tt]
		if !ok {
			continue
		}
		symbols[values[0]] = tt
		if _, ok := glyphs[tt]; !ok {
			glyphs[tt] = string(values)
		}
	}
}

func (tt TokenType) String() string {
	if v, ok := tokenNames[tt]; ok {
		return v
	}
	return tokenNames[TokenInvalid]
}

// Glyph returns the canonical text of an operator or bracket token type.
func (tt TokenType) Glyph() string {
	if g, ok := glyphs[tt]; ok {
		return g
	}
	if values, ok := tokenValues[tt]; ok && tt >= TokenOpenExpression && tt <= TokenCloseMap {
		return string(values)
	}
	return ""
}

// IsOpening returns true for "(", "[" and "{".
func (tt TokenType) IsOpening() bool {
	_, ok := closers[tt]
	return ok
}

// IsClosing returns true for ")", "]" and "}".
func (tt TokenType) IsClosing() bool {
	return tt == TokenCloseExpression || tt == TokenCloseList || tt == TokenCloseMap
}

// Closer returns the closing type that matches an opening bracket type, or
// TokenInvalid.
func (tt TokenType) Closer() TokenType {
	if c, ok := closers[tt]; ok {
		return c
	}
	return TokenInvalid
}

// IsLiteral returns true for numbers, strings, characters, identifiers and
// unit.
func (tt TokenType) IsLiteral() bool {
	return tt >= TokenNumber && tt <= TokenUnit
}

// StartsOperand returns true if a token of this type can begin an operand
// on its own.
func (tt TokenType) StartsOperand() bool {
	return tt.IsLiteral() || tt.IsOpening()
}

// EndsOperand returns true if a token of this type can end an operand.
func (tt TokenType) EndsOperand() bool {
	return tt.IsLiteral() || tt.IsClosing()
}

func isTokenType(tt TokenType) func(r rune) bool {
	return func(r rune) bool {
		for _, v := range tokenValues[tt] {
			if v == r {
				return true
			}
		}
		return false
	}
}
