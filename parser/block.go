package parser

import (
	"fmt"

	"github.com/xiam/sign/ast"
	"github.com/xiam/sign/lexer"
)

var forms = map[lexer.TokenType]ast.Form{
	lexer.TokenOpenExpression: ast.FormParen,
	lexer.TokenOpenList:       ast.FormBracket,
	lexer.TokenOpenMap:        ast.FormBrace,
}

// parseStatements reads newline separated statements until end, which is
// left unconsumed.
func (p *Parser) parseStatements(ctx Context, end lexer.TokenType) []ast.Node {
	body := []ast.Node{}

	for {
		tok := p.peek()

		switch tt := tok.Type(); {
		case tt == lexer.TokenNewLine:
			p.next()
			continue

		case tt == end, tt == lexer.TokenEOF:
			return body

		case tt == lexer.TokenDedent:
			// unbalanced dedent, only possible with hand-made streams
			p.next()
			continue

		case tt == lexer.TokenIndent:
			p.warn(ast.TokenPos(tok), "unexpected indentation, reading an indented block")
			body = append(body, p.parseIndentBlock(ctx))
			continue

		case tt.IsClosing():
			if ctx.expects(tt) {
				return body
			}
			p.strayCloser(tok)
			continue
		}

		start := p.pos
		body = append(body, p.parseStatement(ctx))
		p.endStatement(ctx, end)

		if p.pos == start {
			p.next()
		}
	}
}

// endStatement checks that nothing is left on the line of a statement.
func (p *Parser) endStatement(ctx Context, end lexer.TokenType) {
	tok := p.peek()

	switch tt := tok.Type(); {
	case tt == lexer.TokenNewLine, tt == lexer.TokenEOF, tt == lexer.TokenDedent, tt == end:
		return
	case tt.IsClosing() && ctx.expects(tt):
		return
	case tt.IsClosing():
		p.strayCloser(tok)
		if !p.aborted {
			p.endStatement(ctx, end)
		}
		return
	}

	err := errorAt(ErrUnexpectedToken, ast.TokenPos(tok), "unexpected %s after expression", describe(tok))
	if p.fail(err, "skipping to the next statement") != nil {
		return
	}
	p.synchronize(ctx)
}

func (p *Parser) unclosed(pos ast.Position, closer lexer.TokenType) {
	glyph := closer.Glyph()
	err := errorAt(ErrUnmatchedBracket, pos, "missing closing bracket %q", glyph)
	_ = p.fail(err, fmt.Sprintf("missing closing bracket %q, auto-completing", glyph))
}

func (p *Parser) strayCloser(tok lexer.Token) {
	p.next()
	glyph := tok.Type().Glyph()
	err := errorAt(ErrUnmatchedBracket, ast.TokenPos(tok), "unexpected closing bracket %q", glyph)
	_ = p.fail(err, fmt.Sprintf("ignoring stray %q", glyph))
}

// parseIndentBlock reads "newline indent statements dedent".
func (p *Parser) parseIndentBlock(ctx Context) *ast.Block {
	if p.peek().Is(lexer.TokenNewLine) {
		p.next()
	}

	tok := p.next()
	block := &ast.Block{
		Position: ast.TokenPos(tok),
		Form:     ast.FormIndent,
	}

	block.Statements = p.parseStatements(ctx, lexer.TokenDedent)
	if p.peek().Is(lexer.TokenDedent) {
		p.next()
	}

	return block
}

// parseBracket reads a block delimited by any bracket family. Lists get a
// chance to be read as point-free operators first.
func (p *Parser) parseBracket(ctx Context) ast.Node {
	open := p.next()
	closer := open.Type().Closer()
	pos := ast.TokenPos(open)

	if p.peek().Is(closer) {
		p.next()
		return &ast.EmptyList{Position: pos, Form: forms[open.Type()]}
	}

	inner := ctx.expect(closer)
	block := &ast.Block{
		Position: pos,
		Form:     forms[open.Type()],
	}

	if open.Is(lexer.TokenOpenList) {
		n, done := p.parsePointFree(inner, pos)
		if done {
			return n
		}
		if n != nil {
			block.Statements = append(block.Statements, n)
		}
	}

	for {
		tok := p.peek()

		switch tt := tok.Type(); {
		case tt == lexer.TokenNewLine && p.peekAt(1).Resync():
			// the next line is back at statement level
			p.unclosed(pos, closer)
			return block

		case tt == lexer.TokenNewLine:
			p.next()
			continue

		case tt == closer:
			p.next()
			return block

		case tt == lexer.TokenEOF, tt == lexer.TokenDedent, tt.IsClosing() && ctx.expects(tt):
			p.unclosed(pos, closer)
			return block

		case tt.IsClosing():
			p.strayCloser(tok)
			continue

		case tt == lexer.TokenIndent:
			p.warn(ast.TokenPos(tok), "unexpected indentation, reading an indented block")
			block.Statements = append(block.Statements, p.parseIndentBlock(inner))
			continue
		}

		start := p.pos
		block.Statements = append(block.Statements, p.parseStatement(inner))
		if p.pos == start {
			p.next()
		}
	}
}

// parsePointFree reads "[op]", "[_ op]", "[op x]", "[op x,]" and "[x op]"
// right after the opening bracket. It returns done=true when the whole list
// was consumed. When a partial application turns out not to be followed by
// "]", the node read so far is returned with done=false so the caller keeps
// it as the first statement of a block.
func (p *Parser) parsePointFree(ctx Context, pos ast.Position) (ast.Node, bool) {
	tok := p.peek()
	tt := tok.Type()

	closed := func(n int) bool {
		return p.peekAt(n).Is(lexer.TokenCloseList)
	}

	switch {
	case (isPartial(tt) || tt == lexer.TokenNot || tt == lexer.TokenSpread) && closed(1):
		// [op]
		p.next()
		p.next()
		fixity := ast.Infix
		if tt == lexer.TokenNot || tt == lexer.TokenSpread {
			fixity = ast.Prefix
		}
		return &ast.PointFreeOperator{Position: pos, Operator: tt.Glyph(), Fixity: fixity}, true

	case tt == lexer.TokenUnit && (p.peekAt(1).Is(lexer.TokenNot) || p.peekAt(1).Is(lexer.TokenSpread)) && closed(2):
		// [_ !]
		p.next()
		op := p.next()
		p.next()
		return &ast.PointFreeOperator{Position: pos, Operator: op.Type().Glyph(), Fixity: ast.Postfix}, true

	case isPartial(tt):
		// [op x] and [op x,]
		p.next()
		partial := &ast.PartialApplication{
			Position: pos,
			Operator: tt.Glyph(),
			Right:    p.parseCoproduct(ctx.enterPointFree()),
		}
		if p.peek().Is(lexer.TokenProduct) && closed(1) {
			p.next()
			partial.Mapped = true
		}
		if p.peek().Is(lexer.TokenCloseList) {
			p.next()
			return partial, true
		}
		return partial, false

	case p.leftPartialAhead():
		// [x op]
		left := p.parseCoproduct(ctx.enterPointFree())
		op := p.peek()
		if isPartial(op.Type()) && closed(1) {
			p.next()
			p.next()
			return &ast.PartialApplication{Position: pos, Operator: op.Type().Glyph(), Left: left}, true
		}
		return left, false
	}

	return nil, false
}

// leftPartialAhead looks at the "]" that closes the current list and
// returns true if a partial operator comes right before it.
func (p *Parser) leftPartialAhead() bool {
	i := p.closerOf(p.pos - 1)
	return i > p.pos && p.tokens[i].Is(lexer.TokenCloseList) && isPartial(p.tokens[i-1].Type())
}

// closerOf returns the index of the closing bracket that balances the opening
// bracket at index open, or -1. Any closer balances the innermost opener, and
// a line the lexer marked as back at statement level balances them all.
func (p *Parser) closerOf(open int) int {
	if p.closers == nil {
		p.closers = make([]int, len(p.tokens))

		var stack []int
		for i, tok := range p.tokens {
			p.closers[i] = -1
			if tok.Resync() {
				stack = stack[:0]
			}
			switch tt := tok.Type(); {
			case tt.IsOpening():
				stack = append(stack, i)
			case tt.IsClosing():
				if n := len(stack); n > 0 {
					p.closers[stack[n-1]] = i
					stack = stack[:n-1]
				}
			}
		}
	}

	if open < 0 || open >= len(p.closers) {
		return -1
	}
	return p.closers[open]
}
