package parser

import (
	"fmt"

	"github.com/xiam/sign/ast"
	"github.com/xiam/sign/lexer"
)

// Adjacency predicates. "~", "!", "@" and "-" mean different things
// depending on what touches them, the lexer only records whether a token
// follows whitespace.

// operandEndsBefore returns true if the token right before i closes an
// operand.
func (p *Parser) operandEndsBefore(i int) bool {
	if i <= 0 {
		return false
	}
	prev := p.tokenAt(i - 1)
	switch tt := prev.Type(); {
	case tt.EndsOperand():
		return true
	case tt == lexer.TokenNot, tt == lexer.TokenSpread:
		return p.postfixAt(i - 1)
	}
	return false
}

func (p *Parser) prefixAt(i int) bool {
	if !p.operandEndsBefore(i) {
		return true
	}

	tok := p.tokenAt(i)
	if tok.Is(lexer.TokenNot) {
		return tok.Spaced()
	}

	next := p.tokenAt(i + 1)
	return tok.Spaced() && !next.Spaced() && next.Type().StartsOperand()
}

func (p *Parser) postfixAt(i int) bool {
	tok := p.tokenAt(i)
	if tok.Spaced() || !p.operandEndsBefore(i) {
		return false
	}

	switch tok.Type() {
	case lexer.TokenNot:
		return true
	case lexer.TokenSpread:
		next := p.tokenAt(i + 1)
		return next.Spaced() || !next.Type().StartsOperand()
	}
	return false
}

func (p *Parser) infixAt(i int) bool {
	return !p.prefixAt(i) && !p.postfixAt(i)
}

// isFunctionLike tells whether a juxtaposition run starting with n is an
// application.
func isFunctionLike(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Identifier, *ast.Lambda, *ast.ConditionalLambda, *ast.PointFreeOperator,
		*ast.PartialApplication, *ast.Application, *ast.PropertyAccess,
		*ast.Import, *ast.SpreadImport:
		return true
	case *ast.Block:
		if len(n.Statements) == 1 {
			return isFunctionLike(n.Statements[0])
		}
	}
	return false
}

// conditional returns the branches of a lambda body made only of
// definitions.
func conditional(body ast.Node) ([]*ast.Branch, bool) {
	block, ok := body.(*ast.Block)
	if !ok || len(block.Statements) == 0 {
		return nil, false
	}

	branches := make([]*ast.Branch, 0, len(block.Statements))
	for _, stmt := range block.Statements {
		def, ok := stmt.(*ast.Definition)
		if !ok {
			return nil, false
		}
		branches = append(branches, &ast.Branch{
			Condition: def.Target,
			Result:    def.Value,
		})
	}
	return branches, true
}

// parameters normalizes the expression at the left of "?" into a parameter
// list.
func (p *Parser) parameters(ctx Context, n ast.Node) []*ast.Parameter {
	params := []*ast.Parameter{}
	p.collectParams(ctx, n, &params)

	rest := 0
	for i, param := range params {
		if !param.Rest {
			continue
		}
		rest++
		if rest == 2 {
			p.lenient(param.Position, "more than one rest parameter")
		}
		if i != len(params)-1 {
			p.lenient(param.Position, "rest parameter %q must be the last one", param.Name)
		}
	}

	return params
}

func (p *Parser) collectParams(ctx Context, n ast.Node, params *[]*ast.Parameter) {
	pos := ast.NodePos(n)
	add := func(param *ast.Parameter) {
		param.Position = pos
		*params = append(*params, param)
	}

	switch n := n.(type) {
	case *ast.Identifier:
		add(&ast.Parameter{Name: n.Name})

	case *ast.Unit:
		add(&ast.Parameter{Name: "_"})

	case *ast.SpreadOperation:
		if id, ok := n.Operand.(*ast.Identifier); ok && n.Fixity == ast.Prefix {
			add(&ast.Parameter{Name: id.Name, Rest: true})
			return
		}
		p.warn(pos, "unrecognized parameter shape %s, using _", n.Type())
		add(&ast.Parameter{Name: "_"})

	case *ast.RangeOperation:
		add(&ast.Parameter{Range: n})

	case *ast.Product:
		for _, e := range n.Elements {
			p.collectParams(ctx, e, params)
		}

	case *ast.Coproduct:
		p.collectParams(ctx, n.Left, params)
		p.collectParams(ctx, n.Right, params)

	case *ast.Application:
		p.collectParams(ctx, n.Func, params)
		for _, arg := range n.Args {
			p.collectParams(ctx, arg, params)
		}

	case *ast.Block:
		if len(n.Statements) == 1 {
			p.collectParams(ctx, n.Statements[0], params)
			return
		}
		p.warn(pos, "unrecognized parameter shape %s, using _", n.Type())
		add(&ast.Parameter{Name: "_"})

	case *ast.Number:
		p.literalParam(ctx, pos, fmt.Sprintf("_param_%d", len(*params)), n)
		add(&ast.Parameter{Name: fmt.Sprintf("_param_%d", len(*params))})

	case *ast.String:
		p.literalParam(ctx, pos, fmt.Sprintf("_str_param_%d", len(*params)), n)
		add(&ast.Parameter{Name: fmt.Sprintf("_str_param_%d", len(*params))})

	default:
		p.warn(pos, "unrecognized parameter shape %s, using _", n.Type())
		add(&ast.Parameter{Name: "_"})
	}
}

func (p *Parser) literalParam(ctx Context, pos ast.Position, name string, n ast.Node) {
	if ctx.AllowNumericParams {
		p.warn(pos, "literal %s used as parameter, renamed to %s", ast.Source(n), name)
		return
	}
	err := errorAt(ErrInvalidShape, pos, "literal %s can't be a parameter", ast.Source(n))
	_ = p.fail(err, "")
}
