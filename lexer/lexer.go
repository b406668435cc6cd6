package lexer

import (
	"bytes"
	"fmt"
	"io"
	"text/scanner"
)

// TabWidth is the indentation step of a tab character: a tab advances the
// width to the next multiple of TabWidth.
const TabWidth = 4

type lexState func(*Lexer) lexState

var (
	isOpenList  = isTokenType(TokenOpenList)
	isCloseList = isTokenType(TokenCloseList)

	isOpenMap  = isTokenType(TokenOpenMap)
	isCloseMap = isTokenType(TokenCloseMap)

	isOpenExpression  = isTokenType(TokenOpenExpression)
	isCloseExpression = isTokenType(TokenCloseExpression)

	isNewLine   = isTokenType(TokenNewLine)
	isBacktick  = isTokenType(TokenString)
	isBackslash = isTokenType(TokenChar)

	isWordStart = isTokenType(TokenIdent)
	isDigit     = isTokenType(TokenNumber)
)

var radixDigits = map[rune]func(rune) bool{
	'x': func(r rune) bool {
		return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	},
	'o': func(r rune) bool {
		return r >= '0' && r <= '7'
	},
	'b': func(r rune) bool {
		return r == '0' || r == '1'
	},
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\f'
}

func isWordChar(r rune) bool {
	return isWordStart(r) || isDigit(r)
}

// New initializes a Lexer object
func New(r io.Reader) *Lexer {
	lx := &Lexer{
		in:      &scanner.Scanner{},
		tokens:  []Token{},
		buf:     []rune{},
		line:    1,
		col:     1,
		indents: newIndentStack(),
	}

	lx.in.Init(r)
	lx.in.Mode = 0
	lx.in.Whitespace = 0
	lx.in.Error = func(_ *scanner.Scanner, msg string) {
		lx.failf(ErrInvalidEncoding, "%s", msg)
	}

	return lx
}

// Lexer represents a lexical analyzer
type Lexer struct {
	in *scanner.Scanner

	tokens  []Token
	lastErr error

	buf []rune

	line int
	col  int

	startLine int
	startCol  int

	spaced   bool
	lineOpen bool
	depth    int
	hanging  bool
	resync   bool

	indents indentStack
}

// Tokens returns the tokens produced so far.
func (lx *Lexer) Tokens() []Token {
	return lx.tokens
}

// Scan reads the whole input. It stops at the first lexical error.
func (lx *Lexer) Scan() error {
	for state := lexLineStart; state != nil && lx.lastErr == nil; {
		state = state(lx)
	}
	return lx.lastErr
}

func (lx *Lexer) mark() {
	lx.startLine, lx.startCol = lx.line, lx.col
	lx.buf = lx.buf[0:0]
}

func (lx *Lexer) emit(tt TokenType, text string) {
	tok := Token{
		tt:     tt,
		lexeme: text,

		line: lx.startLine,
		col:  lx.startCol,

		spaced: lx.spaced,
	}

	switch tt {
	case TokenNewLine:
		if n := len(lx.tokens); lx.depth > 0 && n > 0 && lx.tokens[n-1].tt.IsOpening() {
			lx.hanging = true
		}
		lx.tokens = append(lx.tokens, tok)
		return
	case TokenIndent, TokenDedent, TokenEOF:
		lx.tokens = append(lx.tokens, tok)
		return
	}

	tok.resync = lx.resync
	lx.tokens = append(lx.tokens, tok)

	lx.spaced = false
	lx.lineOpen = true
	lx.resync = false
}

// dedent emits a dedent token. Dedents are placed before the newline that
// closed the previous line, so a block always ends before the statement
// that opened it.
func (lx *Lexer) dedent() {
	tok := Token{
		tt:     TokenDedent,
		line:   lx.startLine,
		col:    lx.startCol,
		spaced: true,
	}

	n := len(lx.tokens)
	if n > 0 && lx.tokens[n-1].tt == TokenNewLine {
		nl := lx.tokens[n-1]
		tok.line, tok.col = nl.line, nl.col
		lx.tokens[n-1] = tok
		lx.tokens = append(lx.tokens, nl)
		return
	}

	lx.tokens = append(lx.tokens, tok)
}

func (lx *Lexer) peek() rune {
	return lx.in.Peek()
}

func (lx *Lexer) next() (rune, error) {
	r := lx.in.Next()
	if r == scanner.EOF {
		return rune(0), io.EOF
	}

	lx.buf = append(lx.buf, r)
	if isNewLine(r) {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}

	return r, nil
}

func (lx *Lexer) failf(err error, format string, args ...interface{}) lexState {
	if lx.lastErr == nil {
		lx.lastErr = &Error{
			Err:     err,
			Message: fmt.Sprintf(format, args...),
			Line:    lx.startLine,
			Column:  lx.startCol,
		}
	}
	return nil
}

// signAllowed tells whether a "-" that touches a digit starts a negative
// number: it does unless it directly follows an operand.
func (lx *Lexer) signAllowed() bool {
	n := len(lx.tokens)
	if n == 0 || !lx.lineOpen {
		return true
	}
	if !lx.tokens[n-1].tt.EndsOperand() {
		return true
	}
	return lx.spaced
}

func (lx *Lexer) indent(width int) lexState {
	top := lx.indents.top()

	switch {
	case width > top:
		lx.indents.push(width)
		lx.emit(TokenIndent, "")

	case width < top:
		n, ok := lx.indents.dedents(width)
		if !ok {
			return lx.failf(ErrInvalidDedent, "unindent to width %d does not match any outer indentation level", width)
		}
		for i := 0; i < n; i++ {
			lx.indents.pop()
			lx.dedent()
		}
	}

	return lexDefaultState
}

// resumes tells whether a line inside brackets, indented by width and
// starting with r, looks like the next statement of the enclosing block: it
// is not indented past that block and starts with a name, "#" or "@". A
// bracket that ends its line opens a multi-line literal, lines inside it
// never resume.
func (lx *Lexer) resumes(width int, r rune) bool {
	if lx.hanging {
		return false
	}
	if !isWordStart(r) && r != '#' && r != '@' {
		return false
	}
	if width > lx.indents.top() {
		return false
	}
	_, ok := lx.indents.dedents(width)
	return ok
}

func lexLineStart(lx *Lexer) lexState {
	width := 0

loop:
	for {
		switch p := lx.peek(); p {
		case ' ':
			width++
		case '\t':
			width += TabWidth - width%TabWidth
		case '\r', '\f':
			// no width
		default:
			break loop
		}
		if _, err := lx.next(); err != nil {
			return lexEOF
		}
	}

	p := lx.peek()
	switch {
	case p == scanner.EOF:
		return lexEOF

	case isNewLine(p):
		_, _ = lx.next()
		return lexLineStart

	case isBacktick(p):
		return lexComment
	}

	lx.spaced = true
	if lx.depth > 0 {
		if !lx.resumes(width, p) {
			return lexDefaultState
		}
		// an open bracket was left behind, indentation counts again
		lx.depth = 0
		lx.resync = true
	}

	lx.mark()
	return lx.indent(width)
}

func lexComment(lx *Lexer) lexState {
	for {
		p := lx.peek()
		if p == scanner.EOF {
			return lexEOF
		}
		if _, err := lx.next(); err != nil {
			return lexEOF
		}
		if isNewLine(p) {
			return lexLineStart
		}
	}
}

func lexDefaultState(lx *Lexer) lexState {
	lx.mark()

	r, err := lx.next()
	if err != nil {
		return lexEOF
	}

	switch {

	case isNewLine(r):
		if lx.lineOpen {
			lx.emit(TokenNewLine, "\n")
			lx.lineOpen = false
		}
		return lexLineStart

	case isWhitespace(r):
		lx.spaced = true
		return lexDefaultState

	case isBacktick(r):
		return lexString
	case isBackslash(r):
		return lexChar

	case isDigit(r):
		return lexNumber
	case r == '-' && isDigit(lx.peek()) && lx.signAllowed():
		return lexNumber

	case isWordStart(r):
		return lexIdent

	case isOpenList(r):
		return lexOpen(TokenOpenList)
	case isCloseList(r):
		return lexClose(TokenCloseList)

	case isOpenMap(r):
		return lexOpen(TokenOpenMap)
	case isCloseMap(r):
		return lexClose(TokenCloseMap)

	case isOpenExpression(r):
		return lexOpen(TokenOpenExpression)
	case isCloseExpression(r):
		return lexClose(TokenCloseExpression)

	}

	return lexOperator(r)
}

func lexOpen(tt TokenType) lexState {
	return func(lx *Lexer) lexState {
		lx.depth++
		return lexEmit(tt)
	}
}

func lexClose(tt TokenType) lexState {
	return func(lx *Lexer) lexState {
		if lx.depth > 0 {
			lx.depth--
		}
		if lx.depth == 0 {
			lx.hanging = false
		}
		return lexEmit(tt)
	}
}

func lexEmit(tt TokenType) lexState {
	return func(lx *Lexer) lexState {
		lx.emit(tt, string(lx.buf))
		return lexDefaultState
	}
}

func lexString(lx *Lexer) lexState {
	for {
		p := lx.peek()
		if p == scanner.EOF || isNewLine(p) {
			return lx.failf(ErrUnterminatedString, "unterminated string")
		}
		if _, err := lx.next(); err != nil {
			return lx.failf(ErrUnterminatedString, "unterminated string")
		}
		if isBacktick(p) {
			break
		}
	}

	lx.emit(TokenString, string(lx.buf[1:len(lx.buf)-1]))
	return lexDefaultState
}

func lexChar(lx *Lexer) lexState {
	r, err := lx.next()
	if err != nil {
		return lx.failf(ErrIncompleteCharacter, "backslash at end of input")
	}

	lx.emit(TokenChar, string(r))
	return lexDefaultState
}

func lexNumber(lx *Lexer) lexState {
	first := lx.buf[len(lx.buf)-1]
	if first == '-' {
		first, _ = lx.next()
	}

	if first == '0' {
		if class, ok := radixDigits[lx.peek()]; ok {
			_, _ = lx.next()
			if !class(lx.peek()) {
				return lx.failf(ErrMalformedNumber, "missing digits after %q", string(lx.buf))
			}
			for class(lx.peek()) {
				_, _ = lx.next()
			}
			if isWordChar(lx.peek()) {
				r, _ := lx.next()
				return lx.failf(ErrMalformedNumber, "invalid digit %q in %q", r, string(lx.buf))
			}
			lx.emit(TokenNumber, string(lx.buf))
			return lexDefaultState
		}
	}

	for isDigit(lx.peek()) {
		_, _ = lx.next()
	}

	if lx.peek() == '.' {
		_, _ = lx.next()
		if !isDigit(lx.peek()) {
			return lx.failf(ErrMalformedNumber, "expecting digit after decimal point in %q", string(lx.buf))
		}
		for isDigit(lx.peek()) {
			_, _ = lx.next()
		}
		if lx.peek() == '.' {
			return lx.failf(ErrMalformedNumber, "second decimal point in %q", string(lx.buf)+".")
		}
	}

	if isWordChar(lx.peek()) {
		r, _ := lx.next()
		return lx.failf(ErrMalformedNumber, "invalid digit %q in %q", r, string(lx.buf))
	}

	lx.emit(TokenNumber, string(lx.buf))
	return lexDefaultState
}

func lexIdent(lx *Lexer) lexState {
	for isWordChar(lx.peek()) {
		_, _ = lx.next()
	}

	text := string(lx.buf)
	if text == "_" {
		lx.emit(TokenUnit, text)
	} else {
		lx.emit(TokenIdent, text)
	}
	return lexDefaultState
}

func lexOperator(r rune) lexState {
	return func(lx *Lexer) lexState {
		if tt, ok := compoundOperators[string([]rune{r, lx.peek()})]; ok {
			_, _ = lx.next()
			lx.emit(tt, string(lx.buf))
			return lexDefaultState
		}
		if tt, ok := symbols[r]; ok {
			lx.emit(tt, string(r))
			return lexDefaultState
		}
		return lx.failf(ErrUnknownCharacter, "unknown character %q", r)
	}
}

func lexEOF(lx *Lexer) lexState {
	lx.mark()

	if lx.lineOpen {
		lx.emit(TokenNewLine, "")
		lx.lineOpen = false
	}
	for lx.indents.depth() > 0 {
		lx.indents.pop()
		lx.dedent()
	}

	lx.emit(TokenEOF, "")
	return nil
}

// Tokenize takes an array of bytes and returns all the tokens within it, or
// an error if a token can't be identified.
func Tokenize(in []byte) ([]Token, error) {
	lx := New(bytes.NewReader(in))
	if err := lx.Scan(); err != nil {
		return nil, err
	}
	return lx.Tokens(), nil
}
