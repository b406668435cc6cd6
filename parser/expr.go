package parser

import (
	"github.com/xiam/sign/ast"
	"github.com/xiam/sign/lexer"
)

func (p *Parser) parseStatement(ctx Context) ast.Node {
	tok := p.peek()
	if tok.Is(lexer.TokenExport) {
		p.next()
		return &ast.Export{
			Position: ast.TokenPos(tok),
			Value:    p.parseDefine(ctx),
		}
	}
	return p.parseDefine(ctx)
}

// parseDefine reads "target : value", right associative.
func (p *Parser) parseDefine(ctx Context) ast.Node {
	if !p.descend() {
		return p.truncated()
	}
	defer p.ascend()

	left := p.parseLambda(ctx)

	if !p.peek().Is(lexer.TokenDefine) {
		return left
	}
	p.next()

	if !ctx.InLambda && !isTarget(left) {
		p.warn(ast.NodePos(left), "unusual definition target %s", left.Type())
	}

	return &ast.Definition{
		Position: ast.NodePos(left),
		Target:   left,
		Value:    p.parseDefine(ctx),
	}
}

func isTarget(n ast.Node) bool {
	switch n.(type) {
	case *ast.Identifier, *ast.BinaryOperation, *ast.Application, *ast.PropertyAccess,
		*ast.RangeOperation, *ast.Coproduct, *ast.Product:
		return true
	}
	return false
}

// parseLambda reads "params ? body", right associative.
func (p *Parser) parseLambda(ctx Context) ast.Node {
	left := p.parseProduct(ctx)

	if !p.peek().Is(lexer.TokenLambda) {
		return left
	}
	p.next()

	if !p.descend() {
		return p.truncated()
	}
	defer p.ascend()

	params := p.parameters(ctx, left)
	body := p.parseLambda(ctx.enterLambda())

	if branches, ok := conditional(body); ok {
		return &ast.ConditionalLambda{
			Position: ast.NodePos(left),
			Params:   params,
			Branches: branches,
		}
	}

	return &ast.Lambda{
		Position: ast.NodePos(left),
		Params:   params,
		Body:     body,
	}
}

// parseProduct reads a comma separated list. A trailing comma is allowed
// before a closing bracket.
func (p *Parser) parseProduct(ctx Context) ast.Node {
	first := p.parseCoproduct(ctx)

	if !p.peek().Is(lexer.TokenProduct) {
		return first
	}

	product := &ast.Product{
		Position: ast.NodePos(first),
		Elements: []ast.Node{first},
	}
	for p.peek().Is(lexer.TokenProduct) {
		p.next()
		if p.productEnds(ctx) {
			break
		}
		product.Elements = append(product.Elements, p.parseCoproduct(ctx))
	}

	return product
}

func (p *Parser) productEnds(ctx Context) bool {
	i := 0
	if ctx.BracketBalance > 0 {
		for p.peekAt(i).Is(lexer.TokenNewLine) {
			if p.peekAt(i + 1).Resync() {
				return true
			}
			i++
		}
	}
	tok := p.peekAt(i)
	if tok.Is(lexer.TokenEOF) || (tok.Type().IsClosing() && ctx.expects(tok.Type())) {
		for ; i > 0; i-- {
			p.next()
		}
		return true
	}
	return false
}

// parseCoproduct reads a run of juxtaposed elements. The run is an
// application when its first element is function-like, a left nested
// coproduct otherwise.
func (p *Parser) parseCoproduct(ctx Context) ast.Node {
	first := p.parseBinary(ctx, tierOr)

	if !p.startsElement() {
		return first
	}

	var rest []ast.Node
	for p.startsElement() {
		rest = append(rest, p.parseBinary(ctx, tierOr))
	}

	pos := ast.NodePos(first)
	if isFunctionLike(first) {
		return &ast.Application{
			Position: pos,
			Func:     first,
			Args:     rest,
		}
	}

	node := first
	for _, n := range rest {
		node = &ast.Coproduct{
			Position: pos,
			Left:     node,
			Right:    n,
		}
	}
	return node
}

// startsElement returns true if the upcoming token begins another element
// of a juxtaposition run.
func (p *Parser) startsElement() bool {
	tt := p.peek().Type()
	switch {
	case tt.StartsOperand():
		return true
	case tt == lexer.TokenNot, tt == lexer.TokenSpread, tt == lexer.TokenImport, tt == lexer.TokenSub:
		return p.prefixAt(p.pos)
	}
	return false
}

// parseBinary reads the operators of tier t. Comparisons chain: each extra
// comparator is and-ed onto the running expression, with a copy of the
// shared operand.
func (p *Parser) parseBinary(ctx Context, t tier) ast.Node {
	left := p.operand(ctx, t)

	var last ast.Node
	for {
		tok := p.peek()
		op, ok := operators[tok.Type()]
		if !ok || op.tier != t {
			return left
		}
		if tok.Is(lexer.TokenSub) && p.prefixAt(p.pos) {
			return left
		}
		if ctx.InPointFree && p.peekAt(1).Is(lexer.TokenCloseList) {
			return left
		}
		p.next()

		var right ast.Node
		if op.assoc == assocRight {
			right = p.parseRight(ctx, t)
		} else {
			right = p.operand(ctx, t)
		}

		bin := &ast.BinaryOperation{
			Position: ast.NodePos(left),
			Operator: tok.Type().Glyph(),
			Left:     left,
			Right:    right,
		}

		if t == tierComparison && last != nil {
			bin.Position = ast.NodePos(last)
			bin.Left = ast.Clone(last)
			left = &ast.BinaryOperation{
				Position: ast.NodePos(left),
				Operator: lexer.TokenAnd.Glyph(),
				Left:     left,
				Right:    bin,
			}
		} else {
			left = bin
		}
		last = right
	}
}

// parseRight reads the right hand side of a right associative operator.
func (p *Parser) parseRight(ctx Context, t tier) ast.Node {
	if !p.descend() {
		return p.truncated()
	}
	defer p.ascend()

	return p.parseBinary(ctx, t)
}

// operand parses the tier right above t.
func (p *Parser) operand(ctx Context, t tier) ast.Node {
	switch t {
	case tierAnd:
		return p.parseNot(ctx)
	case tierPower:
		return p.parseFactorial(ctx)
	}
	return p.parseBinary(ctx, t+1)
}

// parseNot reads prefix "!", which may be stacked.
func (p *Parser) parseNot(ctx Context) ast.Node {
	tok := p.peek()
	if !tok.Is(lexer.TokenNot) || !p.prefixAt(p.pos) {
		return p.parseSpread(ctx)
	}
	p.next()

	if !p.descend() {
		return p.truncated()
	}
	defer p.ascend()

	return &ast.UnaryOperation{
		Position: ast.TokenPos(tok),
		Operator: tok.Type().Glyph(),
		Fixity:   ast.Prefix,
		Operand:  p.parseNot(ctx),
	}
}

// parseSpread reads prefix "~x" (rest) and postfix "x~" (expand).
func (p *Parser) parseSpread(ctx Context) ast.Node {
	tok := p.peek()
	if tok.Is(lexer.TokenSpread) && p.prefixAt(p.pos) {
		p.next()
		return &ast.SpreadOperation{
			Position: ast.TokenPos(tok),
			Fixity:   ast.Prefix,
			Operand:  p.parseRange(ctx),
		}
	}

	n := p.parseRange(ctx)
	if p.peek().Is(lexer.TokenSpread) && p.postfixAt(p.pos) {
		p.next()
		n = &ast.SpreadOperation{
			Position: ast.NodePos(n),
			Fixity:   ast.Postfix,
			Operand:  n,
		}
	}
	return n
}

// parseRange reads a comparison, then turns "start ~ end" into a range.
func (p *Parser) parseRange(ctx Context) ast.Node {
	start := p.parseBinary(ctx, tierComparison)

	if !p.peek().Is(lexer.TokenSpread) || !p.infixAt(p.pos) {
		return start
	}
	p.next()

	return &ast.RangeOperation{
		Position: ast.NodePos(start),
		Start:    start,
		End:      p.parseBinary(ctx, tierComparison),
	}
}

// parseFactorial reads postfix "!" and prefix "-".
func (p *Parser) parseFactorial(ctx Context) ast.Node {
	tok := p.peek()
	if tok.Is(lexer.TokenSub) && p.prefixAt(p.pos) {
		p.next()
		if !p.descend() {
			return p.truncated()
		}
		defer p.ascend()

		return &ast.UnaryOperation{
			Position: ast.TokenPos(tok),
			Operator: tok.Type().Glyph(),
			Fixity:   ast.Prefix,
			Operand:  p.parseFactorial(ctx),
		}
	}

	n := p.parseGet(ctx)
	for p.peek().Is(lexer.TokenNot) && p.postfixAt(p.pos) {
		op := p.next()
		n = &ast.UnaryOperation{
			Position: ast.NodePos(n),
			Operator: op.Type().Glyph(),
			Fixity:   ast.Postfix,
			Operand:  n,
		}
	}
	return n
}

// parseGet reads "object ' property" and "object@property". A ":" right
// after the property makes it an assignment.
func (p *Parser) parseGet(ctx Context) ast.Node {
	obj := p.parsePrimary(ctx)

	for {
		tok := p.peek()
		isGet := tok.Is(lexer.TokenGet) || (tok.Is(lexer.TokenImport) && !p.prefixAt(p.pos))
		if !isGet {
			return obj
		}
		if ctx.InPointFree && p.peekAt(1).Is(lexer.TokenCloseList) {
			return obj
		}
		p.next()

		prop := p.parsePrimary(ctx)
		if p.peek().Is(lexer.TokenDefine) {
			p.next()
			return &ast.PropertyAssignment{
				Position: ast.NodePos(obj),
				Object:   obj,
				Property: prop,
				Value:    p.parseDefine(ctx),
			}
		}

		obj = &ast.PropertyAccess{
			Position: ast.NodePos(obj),
			Object:   obj,
			Property: prop,
		}
	}
}

func (p *Parser) parsePrimary(ctx Context) ast.Node {
	for {
		tok := p.peek()
		pos := ast.TokenPos(tok)

		switch tt := tok.Type(); {
		case tt == lexer.TokenNumber:
			p.next()
			return &ast.Number{Position: pos, Text: tok.Text()}

		case tt == lexer.TokenString:
			p.next()
			return &ast.String{Position: pos, Text: tok.Text()}

		case tt == lexer.TokenChar:
			p.next()
			var char rune
			for _, r := range tok.Text() {
				char = r
				break
			}
			return &ast.Character{Position: pos, Char: char}

		case tt == lexer.TokenIdent:
			p.next()
			return &ast.Identifier{Position: pos, Name: tok.Text()}

		case tt == lexer.TokenUnit:
			p.next()
			return &ast.Unit{Position: pos}

		case tt.IsOpening():
			return p.parseBracket(ctx)

		case tt == lexer.TokenImport && p.prefixAt(p.pos):
			return p.parseImport(ctx)

		case tt == lexer.TokenNewLine && p.peekAt(1).Is(lexer.TokenIndent):
			return p.parseIndentBlock(ctx)

		case tt == lexer.TokenNewLine && ctx.BracketBalance > 0 && !p.peekAt(1).Resync():
			// line continuation inside brackets
			p.next()
			continue
		}

		return p.missingOperand(ctx, tok)
	}
}

func (p *Parser) missingOperand(ctx Context, tok lexer.Token) ast.Node {
	pos := ast.TokenPos(tok)

	err := errorAt(ErrMissingOperand, pos, "expecting operand, got %s", describe(tok))
	if tok.Is(lexer.TokenEOF) {
		err = errorAt(ErrUnexpectedEOF, pos, "unexpected end of file, expecting operand")
	}
	_ = p.fail(err, "using _ in place of the missing operand")

	if tt := tok.Type(); tt.IsClosing() && !ctx.expects(tt) {
		p.next()
	}

	return &ast.Unit{Position: pos}
}

// parseImport reads "@name", "@`path`" and their spread form "@name~".
func (p *Parser) parseImport(ctx Context) ast.Node {
	at := p.next()
	pos := ast.TokenPos(at)

	tok := p.peek()
	var source string
	var quoted bool

	switch tok.Type() {
	case lexer.TokenIdent:
		source = tok.Text()
	case lexer.TokenString:
		source, quoted = tok.Text(), true
	default:
		return p.missingOperand(ctx, tok)
	}
	p.next()

	if p.peek().Is(lexer.TokenSpread) && p.postfixAt(p.pos) {
		p.next()
		return &ast.SpreadImport{Position: pos, Source: source, Quoted: quoted}
	}
	return &ast.Import{Position: pos, Source: source, Quoted: quoted}
}
