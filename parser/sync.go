package parser

import (
	"github.com/xiam/sign/lexer"
)

// synchronize skips tokens until the start of the next statement: a newline
// outside brackets followed by a name, "#", "@" or an indented block. It
// also stops before the end of the enclosing block or bracket, and before a
// line the lexer marked as back at statement level.
func (p *Parser) synchronize(ctx Context) {
	depth := 0
	skipped := 0

	defer func() {
		if skipped > 0 {
			p.logger.Printf("synchronize: skipped %d tokens", skipped)
		}
	}()

	for {
		tok := p.peek()

		switch tt := tok.Type(); {
		case tt == lexer.TokenEOF, tt == lexer.TokenDedent:
			return

		case tt.IsOpening():
			depth++

		case tt.IsClosing():
			if depth == 0 && ctx.expects(tt) {
				return
			}
			if depth > 0 {
				depth--
			}

		case tt == lexer.TokenNewLine && p.peekAt(1).Resync():
			// brackets left open, the enclosing blocks close them
			return

		case tt == lexer.TokenNewLine && depth == 0:
			p.next()
			skipped++
			switch p.peek().Type() {
			case lexer.TokenIdent, lexer.TokenExport, lexer.TokenImport, lexer.TokenIndent:
				return
			}
			continue
		}

		p.next()
		skipped++
	}
}
