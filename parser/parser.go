package parser

import (
	"fmt"
	"io"
	"log"

	"github.com/xiam/sign/ast"
	"github.com/xiam/sign/lexer"
)

const (
	// DefaultMaxDiagnostics bounds the number of diagnostics of one parse.
	DefaultMaxDiagnostics = 1000

	// DefaultMaxDepth bounds how deep expressions may nest.
	DefaultMaxDepth = 10000
)

// Mode selects what happens on a parse error.
type Mode uint8

// Parsing modes
const (
	// ModeRecovery records errors and keeps building a best-effort tree.
	ModeRecovery Mode = iota
	// ModeStrict stops at the first error.
	ModeStrict
)

func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "recovery"
}

// Option configures a Parser.
type Option func(*Parser)

// WithMode sets the parsing mode.
func WithMode(mode Mode) Option {
	return func(p *Parser) {
		p.mode = mode
	}
}

// WithLogger traces diagnostics to the given logger.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMaxDiagnostics sets how many diagnostics are recorded before the parse
// gives up.
func WithMaxDiagnostics(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDiagnostics = n
		}
	}
}

// WithMaxDepth sets how deep brackets, blocks, definitions, lambdas and
// prefix operators may nest. Past the limit the parse records ErrTooDeep and
// stops.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// WithValidation enables or disables the post-parse shape check.
func WithValidation(enabled bool) Option {
	return func(p *Parser) {
		p.validate = enabled
	}
}

// Parser builds an AST out of a token stream. A Parser is meant to be used
// once, by one goroutine.
type Parser struct {
	tokens []lexer.Token
	pos    int

	// closers is built on first use, see closerOf
	closers []int

	lastTok lexer.Token

	mode           Mode
	logger         *log.Logger
	maxDiagnostics int
	maxDepth       int
	validate       bool

	diagnostics Diagnostics
	depth       int

	aborted bool
	lastErr error
}

// New creates a parser for the given tokens, as returned by lexer.Tokenize.
func New(tokens []lexer.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens:         tokens,
		logger:         log.New(io.Discard, "", 0),
		maxDiagnostics: DefaultMaxDiagnostics,
		maxDepth:       DefaultMaxDepth,
		validate:       true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses the whole token stream. In recovery mode it always returns a
// program, with errors recorded in it; in strict mode the first error is
// returned instead.
func (p *Parser) Parse() (*ast.Program, error) {
	ctx := p.context()

	prog := &ast.Program{
		Position: ast.TokenPos(p.peek()),
	}
	prog.Body = p.parseStatements(ctx, lexer.TokenEOF)

	if p.lastErr != nil {
		return nil, p.lastErr
	}

	if p.validate {
		for _, f := range ast.Validate(prog) {
			p.warn(ast.Position{Line: f.Line, Column: f.Column}, "%s", f.Message)
		}
	}

	prog.Warnings = p.diagnostics.Warnings()
	prog.Errors = p.diagnostics.Errors()

	p.logger.Printf("parsed %d statements, %d warnings, %d errors", len(prog.Body), len(prog.Warnings), len(prog.Errors))

	return prog, nil
}

// ParseExpression parses one statement starting at the given token index
// and returns it with the index of the next token. It always advances at
// least one token unless the stream is exhausted.
func (p *Parser) ParseExpression(pos int) (ast.Node, int, error) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(p.tokens) {
		pos = len(p.tokens)
	}
	p.pos = pos

	node := p.parseStatement(p.context())
	if p.pos == pos {
		p.next()
	}

	return node, p.pos, p.lastErr
}

// Diagnostics returns the diagnostics recorded so far.
func (p *Parser) Diagnostics() Diagnostics {
	return p.diagnostics
}

func (p *Parser) context() Context {
	return Context{
		AllowNumericParams: p.mode == ModeRecovery,
	}
}

func (p *Parser) tokenAt(i int) lexer.Token {
	if i >= 0 && i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.eof()
}

func (p *Parser) eof() lexer.Token {
	if n := len(p.tokens); n > 0 {
		line, col := p.tokens[n-1].Pos()
		return *lexer.NewToken(lexer.TokenEOF, "", line, col)
	}
	return *lexer.NewToken(lexer.TokenEOF, "", 1, 1)
}

func (p *Parser) curr() lexer.Token {
	return p.lastTok
}

func (p *Parser) peek() lexer.Token {
	if p.aborted {
		return p.eof()
	}
	return p.tokenAt(p.pos)
}

func (p *Parser) peekAt(n int) lexer.Token {
	if p.aborted {
		return p.eof()
	}
	return p.tokenAt(p.pos + n)
}

func (p *Parser) next() lexer.Token {
	tok := p.peek()
	if !tok.Is(lexer.TokenEOF) {
		p.pos++
	}
	p.lastTok = tok
	return tok
}

func (p *Parser) record(d Diagnostic) {
	if p.aborted {
		return
	}

	p.logger.Printf("%s: %s", d.Severity, d)
	p.diagnostics = append(p.diagnostics, d)

	if len(p.diagnostics) >= p.maxDiagnostics {
		pos := ast.TokenPos(p.peek())
		err := errorAt(ErrTooManyErrors, pos, "too many errors, giving up")
		p.diagnostics = append(p.diagnostics, Diagnostic{
			Severity: SeverityError,
			Message:  err.Message,
			Line:     err.Line,
			Column:   err.Column,
			Err:      err,
		})
		if p.lastErr == nil && p.mode == ModeStrict {
			p.lastErr = err
		}
		p.aborted = true
	}
}

// fail records a parse error. In strict mode the parse stops and the error
// is returned. In recovery mode note describes the recovery taken and is
// recorded as a warning.
func (p *Parser) fail(err *Error, note string) error {
	p.record(Diagnostic{
		Severity: SeverityError,
		Message:  err.Message,
		Line:     err.Line,
		Column:   err.Column,
		Err:      err,
	})

	if p.mode == ModeStrict {
		if p.lastErr == nil {
			p.lastErr = err
		}
		p.aborted = true
		return err
	}

	if note != "" {
		p.warn(ast.Position{Line: err.Line, Column: err.Column}, "%s", note)
	}
	return nil
}

// descend enters one nesting level. Past the limit it records ErrTooDeep,
// stops the parse and returns false.
func (p *Parser) descend() bool {
	if p.depth >= p.maxDepth {
		if !p.aborted {
			err := errorAt(ErrTooDeep, ast.TokenPos(p.peek()), "expression nested deeper than %d levels", p.maxDepth)
			_ = p.fail(err, "")
			p.aborted = true
		}
		return false
	}
	p.depth++
	return true
}

func (p *Parser) ascend() {
	p.depth--
}

// truncated stands in for the subtree that was not read.
func (p *Parser) truncated() ast.Node {
	return &ast.Unit{Position: ast.TokenPos(p.curr())}
}

func (p *Parser) warn(pos ast.Position, format string, args ...interface{}) {
	p.record(Diagnostic{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Line:     pos.Line,
		Column:   pos.Column,
	})
}

// lenient reports a questionable shape: a warning in recovery mode, an
// ErrInvalidShape error in strict mode.
func (p *Parser) lenient(pos ast.Position, format string, args ...interface{}) {
	if p.mode == ModeStrict {
		_ = p.fail(errorAt(ErrInvalidShape, pos, format, args...), "")
		return
	}
	p.warn(pos, format, args...)
}

func describe(tok lexer.Token) string {
	switch tt := tok.Type(); {
	case tt == lexer.TokenEOF:
		return "end of file"
	case tt == lexer.TokenNewLine:
		return "end of line"
	case tt == lexer.TokenIndent:
		return "indentation"
	case tt == lexer.TokenDedent:
		return "end of block"
	case tt == lexer.TokenString:
		return fmt.Sprintf("string %q", tok.Text())
	case tt.IsLiteral():
		return fmt.Sprintf("%s %q", tt, tok.Text())
	}
	return fmt.Sprintf("%q", tok.Type().Glyph())
}

// Parse lexes and parses the given source.
func Parse(in []byte, opts ...Option) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(in)
	if err != nil {
		return nil, err
	}
	return New(tokens, opts...).Parse()
}
