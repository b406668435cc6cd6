package parser

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiam/sign/ast"
	"github.com/xiam/sign/lexer"
)

func TestParserBuildTree(t *testing.T) {
	testCases := []struct {
		In  string
		Out string
	}{
		{
			In:  ``,
			Out: ``,
		},
		{
			In:  `x : 42`,
			Out: `(: x 42)`,
		},
		{
			In:  `add : x y ? x + y`,
			Out: `(: add (? (x y) (+ x y)))`,
		},
		{
			In:  `f : x ~y ? y~`,
			Out: `(: f (? (x ~y) (y ~)))`,
		},
		{
			In:  `1 < x < 10`,
			Out: `(& (< 1 x) (< x 10))`,
		},
		{
			In:  "a:\n\tb:1\n\tc:2",
			Out: `(: a (block (: b 1) (: c 2)))`,
		},
		{
			In:  "a :\n\tb :\n\t\tc\n\td\ne",
			Out: `(: a (block (: b (block c)) d)) e`,
		},
		{
			In:  "x : 1\ny : 2\n",
			Out: `(: x 1) (: y 2)`,
		},
		{
			In:  "` a comment\nx : 1",
			Out: `(: x 1)`,
		},
		{
			In:  `f : x ? x * 2`,
			Out: `(: f (? (x) (* x 2)))`,
		},
		{
			In:  `x, y ? x + y`,
			Out: `(? (x y) (+ x y))`,
		},
		{
			In:  `x ? y ? x + y`,
			Out: `(? (x) (? (y) (+ x y)))`,
		},
		{
			In:  `~xs ? xs~`,
			Out: `(? (~xs) (xs ~))`,
		},
		{
			In:  `1~5 ? 0`,
			Out: `(? ((range 1 5)) 0)`,
		},
		{
			In:  `_ ? 0`,
			Out: `(? (_) 0)`,
		},
		{
			In:  "abs : x ?\n\tx < 0 : -x\n\t_ : x",
			Out: `(: abs (?| (x) ((< x 0) (- x)) (_ x)))`,
		},
		{
			In:  "f : x ?\n\ty : x * 2\n\ty + 1",
			Out: `(: f (? (x) (block (: y (* x 2)) (+ y 1))))`,
		},
		{
			In:  `1 ~ 10`,
			Out: `(range 1 10)`,
		},
		{
			In:  `f x~`,
			Out: `(apply f (x ~))`,
		},
		{
			In:  `f 1 2`,
			Out: `(apply f 1 2)`,
		},
		{
			In:  `f x + 1`,
			Out: `(apply f (+ x 1))`,
		},
		{
			In:  `1 2 3`,
			Out: `(coproduct (coproduct 1 2) 3)`,
		},
		{
			In:  "`a` \\b 3",
			Out: "(coproduct (coproduct `a` \\b) 3)",
		},
		{
			In:  `(f) 1`,
			Out: `(apply (block f) 1)`,
		},
		{
			In:  `f a'b`,
			Out: `(apply f (' a b))`,
		},
		{
			In:  `a -1`,
			Out: `(apply a -1)`,
		},
		{
			In:  `a-1`,
			Out: `(- a 1)`,
		},
		{
			In:  `a - 1`,
			Out: `(- a 1)`,
		},
		{
			In:  `f -x`,
			Out: `(apply f (- x))`,
		},
		{
			In:  `-x ^ 2`,
			Out: `(^ (- x) 2)`,
		},
		{
			In:  `p'x`,
			Out: `(' p x)`,
		},
		{
			In:  `p'x'y`,
			Out: `(' (' p x) y)`,
		},
		{
			In:  `p@x`,
			Out: `(' p x)`,
		},
		{
			In:  `point'x : 3`,
			Out: `(': point x 3)`,
		},
		{
			In:  `5!`,
			Out: `(5 !)`,
		},
		{
			In:  `3!!`,
			Out: `((3 !) !)`,
		},
		{
			In:  `!!a`,
			Out: `(! (! a))`,
		},
		{
			In:  `!a & b`,
			Out: `(& (! a) b)`,
		},
		{
			In:  `2 ^ 3!`,
			Out: `(^ 2 (3 !))`,
		},
		{
			In:  `#lib : @math~`,
			Out: `(# (: lib (@~ math)))`,
		},
		{
			In:  `@io`,
			Out: `(@ io)`,
		},
		{
			In:  "@`io/file`",
			Out: "(@ `io/file`)",
		},
		{
			In:  `f @io`,
			Out: `(apply f (@ io))`,
		},
		{
			In:  `@math'sqrt 2`,
			Out: `(apply (' (@ math) sqrt) 2)`,
		},
		{
			In:  `() [] {}`,
			Out: `(coproduct (coproduct () []) {})`,
		},
		{
			In:  `(1, 2, 3)`,
			Out: `(block (, 1 2 3))`,
		},
		{
			In:  `[1, 2, 3,]`,
			Out: `(block (, 1 2 3))`,
		},
		{
			In:  "list : [\n  1, 2,\n 3\n]",
			Out: `(: list (block (, 1 2 3)))`,
		},
		{
			In:  "{\n\ta : 1\n\tb : 2\n}",
			Out: `(block (: a 1) (: b 2))`,
		},
		{
			In:  "m : {\na : 1\nb : 2\n}\nn : m",
			Out: `(: m (block (: a 1) (: b 2))) (: n m)`,
		},
		{
			In:  `[x + 1]`,
			Out: `(block (+ x 1))`,
		},
		{
			In:  `a, b : 1, 2`,
			Out: `(: (, a b) (, 1 2))`,
		},
	}

	for _, tc := range testCases {
		prog, err := Parse([]byte(tc.In))
		require.NoError(t, err, "input: %q", tc.In)
		require.NotNil(t, prog)

		assert.Empty(t, prog.Errors, "input: %q", tc.In)
		assert.Equal(t, tc.Out, string(ast.Encode(prog)), "input: %q", tc.In)
	}
}

func TestParserPointFree(t *testing.T) {
	testCases := []struct {
		In  string
		Out string
	}{
		{`[+]`, `[+]`},
		{`[']`, `[']`},
		{`[!]`, `[!]`},
		{`[_!]`, `[_!]`},
		{`[_ ~]`, `[_~]`},
		{`[* 2]`, `[* 2]`},
		{`[2 ^]`, `[2 ^]`},
		{`[+ 1,]`, `[+ 1,]`},
		{`[' name]`, `[' name]`},
		{`[x * y +]`, `[(* x y) +]`},
		{`[+ a * b]`, `[+ (* a b)]`},
		{`[+] 1 2`, `(apply [+] 1 2)`},
		{`[* 2] 3`, `(apply [* 2] 3)`},
		{`[[+ 1] 2]`, `(block (apply [+ 1] 2))`},
	}

	for _, tc := range testCases {
		prog, err := Parse([]byte(tc.In))
		require.NoError(t, err)

		assert.Empty(t, prog.Errors, "input: %q", tc.In)
		assert.Equal(t, tc.Out, string(ast.Encode(prog)), "input: %q", tc.In)
	}

	prog, err := Parse([]byte(`[_!]`))
	require.NoError(t, err)
	op := prog.Body[0].(*ast.PointFreeOperator)
	assert.Equal(t, ast.Postfix, op.Fixity)

	prog, err = Parse([]byte(`[2 ^]`))
	require.NoError(t, err)
	partial := prog.Body[0].(*ast.PartialApplication)
	assert.Nil(t, partial.Right)
	assert.NotNil(t, partial.Left)
}

func TestParserPrecedence(t *testing.T) {
	testCases := []struct {
		In  string
		Out string
	}{
		// each tier binds tighter than the one before it
		{`a | b & c`, `(| a (& b c))`},
		{`a & b | c & d`, `(| (& a b) (& c d))`},
		{`a ; b | c`, `(| (; a b) c)`},
		{`a & b < c`, `(& a (< b c))`},
		{`a < b + 1`, `(< a (+ b 1))`},
		{`1 + 2 * 3`, `(+ 1 (* 2 3))`},
		{`1 * 2 + 3`, `(+ (* 1 2) 3)`},
		{`2 * 3 ^ 2`, `(* 2 (^ 3 2))`},
		{`a % b / c`, `(/ (% a b) c)`},
		{`1 ~ 2 + 3`, `(range 1 (+ 2 3))`},

		// associativity
		{`a - b - c`, `(- (- a b) c)`},
		{`a ^ b ^ c`, `(^ a (^ b c))`},
		{`a : b : c`, `(: a (: b c))`},

		// comparisons
		{`a = b`, `(= a b)`},
		{`a == b`, `(= a b)`},
		{`a <> b`, `(!= a b)`},
		{`a >< b`, `(!= a b)`},
		{`a <= b >= c`, `(& (<= a b) (>= b c))`},
		{`a < b < c < d`, `(& (& (< a b) (< b c)) (< c d))`},
	}

	for _, tc := range testCases {
		prog, err := Parse([]byte(tc.In))
		require.NoError(t, err)

		assert.Empty(t, prog.Errors, "input: %q", tc.In)
		assert.Equal(t, tc.Out, string(ast.Encode(prog)), "input: %q", tc.In)
	}
}

func TestComparisonChainDoesNotShare(t *testing.T) {
	prog, err := Parse([]byte(`1 < x < 10`))
	require.NoError(t, err)

	and := prog.Body[0].(*ast.BinaryOperation)
	left := and.Left.(*ast.BinaryOperation)
	right := and.Right.(*ast.BinaryOperation)

	assert.Equal(t, "x", left.Right.(*ast.Identifier).Name)
	assert.Equal(t, "x", right.Left.(*ast.Identifier).Name)
	assert.True(t, left.Right != right.Left)
}

func TestParserNodes(t *testing.T) {
	prog, err := Parse([]byte("f : x ~y ? y~"))
	require.NoError(t, err)

	def := prog.Body[0].(*ast.Definition)
	assert.Equal(t, "f", def.Target.(*ast.Identifier).Name)

	lambda := def.Value.(*ast.Lambda)
	require.Len(t, lambda.Params, 2)
	assert.Equal(t, "x", lambda.Params[0].Name)
	assert.False(t, lambda.Params[0].Rest)
	assert.Equal(t, "y", lambda.Params[1].Name)
	assert.True(t, lambda.Params[1].Rest)

	spread := lambda.Body.(*ast.SpreadOperation)
	assert.Equal(t, ast.Postfix, spread.Fixity)
	assert.Equal(t, "y", spread.Operand.(*ast.Identifier).Name)

	line, col := lambda.Params[1].Pos()
	assert.Equal(t, 1, line)
	assert.Equal(t, 7, col)
}

func TestParserRecovery(t *testing.T) {
	testCases := []struct {
		In       string
		Out      string
		Err      error
		Warnings []string
	}{
		{
			In:       `f : [x + 1`,
			Out:      `(: f (block (+ x 1)))`,
			Err:      ErrUnmatchedBracket,
			Warnings: []string{`1:5: missing closing bracket "]", auto-completing`},
		},
		{
			In:       `x : 1 )`,
			Out:      `(: x 1)`,
			Err:      ErrUnmatchedBracket,
			Warnings: []string{`1:7: ignoring stray ")"`},
		},
		{
			In:       `x : + 1`,
			Out:      `(: x (+ _ 1))`,
			Err:      ErrMissingOperand,
			Warnings: []string{`1:5: using _ in place of the missing operand`},
		},
		{
			In:  `x :`,
			Out: `(: x _)`,
			Err: ErrMissingOperand,
		},
		{
			In:       "x : 1 #\ny : 2",
			Out:      `(: x 1) (: y 2)`,
			Err:      ErrUnexpectedToken,
			Warnings: []string{`1:7: skipping to the next statement`},
		},
		{
			In:  "x : 1 # 2 3\n4 5\ny : 2",
			Out: `(: x 1) (: y 2)`,
			Err: ErrUnexpectedToken,
		},
		{
			In:  "a :\n\tb : 1 # x\n\tc : 2\nd",
			Out: `(: a (block (: b 1) (: c 2))) d`,
			Err: ErrUnexpectedToken,
		},
		{
			In:  "(a # b\n) c",
			Out: `(coproduct (block a (# b)) c)`,
		},
		{
			In:  "f : (1 + ]",
			Out: `(: f (block (+ 1 _)))`,
			Err: ErrMissingOperand,
		},
		{
			In:       "f : [x + 1\ng : 2\n",
			Out:      `(: f (block (+ x 1))) (: g 2)`,
			Err:      ErrUnmatchedBracket,
			Warnings: []string{`1:5: missing closing bracket "]", auto-completing`},
		},
		{
			In:  "f : [x + 1\ng : x ?\n\tx + 1\n",
			Out: `(: f (block (+ x 1))) (: g (? (x) (block (+ x 1))))`,
			Err: ErrUnmatchedBracket,
		},
		{
			In:  "f : [(x\n# g : 2\n",
			Out: `(: f (block (block x))) (# (: g 2))`,
			Err: ErrUnmatchedBracket,
		},
		{
			In:  "a :\n\tb : (1 +\n\tc : 2\nd",
			Out: `(: a (block (: b (block (+ 1 _))) (: c 2))) d`,
			Err: ErrMissingOperand,
		},
		{
			In:  "a :\n\tb : {1\nc : 2",
			Out: `(: a (block (: b (block 1)))) (: c 2)`,
			Err: ErrUnmatchedBracket,
		},
	}

	for _, tc := range testCases {
		prog, err := Parse([]byte(tc.In))
		require.NoError(t, err, "input: %q", tc.In)
		require.NotNil(t, prog)

		assert.Equal(t, tc.Out, string(ast.Encode(prog)), "input: %q", tc.In)
		if tc.Err == nil {
			continue
		}

		assert.NotEmpty(t, prog.Errors, "input: %q", tc.In)
		for _, w := range tc.Warnings {
			assert.Contains(t, prog.Warnings, w, "input: %q", tc.In)
		}

		tokens, err := lexer.Tokenize([]byte(tc.In))
		require.NoError(t, err)

		p := New(tokens)
		_, err = p.Parse()
		require.NoError(t, err)

		var first error
		for _, d := range p.Diagnostics() {
			if d.Severity == SeverityError {
				first = d.Err
				break
			}
		}
		assert.True(t, errors.Is(first, tc.Err), "input: %q, got: %v", tc.In, first)
	}
}

func TestParserRecoveryTerminates(t *testing.T) {
	testCases := []string{
		`)))`,
		`((((`,
		`[[[`,
		`]`,
		`: : :`,
		`? ? ?`,
		`~~~~`,
		`!!!`,
		`@`,
		`#`,
		`'`,
		`, , ,`,
		`x ~`,
		`[+`,
		`[_ !`,
		`[1 +`,
		"a :\n\t)\n",
		"f : x ?\n\t(",
		"(\n\t[\n}",
		`@ @ @`,
		`a ^`,
		`1 < `,
		"x : 1 ? ?",
		strings.Repeat("(", 1000000),
		strings.Repeat("[", 1000000),
		strings.Repeat("a ^ ", 100000) + "a",
		strings.Repeat("x ? ", 100000) + "x",
		strings.Repeat("a : ", 100000) + "a",
	}

	for _, in := range testCases {
		prog, err := Parse([]byte(in))
		require.NoError(t, err, "input: %q", in)
		require.NotNil(t, prog, "input: %q", in)

		assert.NotEmpty(t, prog.Errors, "input: %q", in)
		assert.NotPanics(t, func() {
			_ = ast.Encode(prog)
		})
	}
}

func TestParserMaxDepth(t *testing.T) {
	testCases := []struct {
		In  string
		Err error
	}{
		{"((1))", nil},
		{"(((1)))", ErrTooDeep},
		{"a ^ b ^ c", nil},
		{"a ^ b ^ c ^ d", ErrTooDeep},
		{"x ? y ? 0", nil},
		{"x ? y ? z ? 0", ErrTooDeep},
		{"a : b : c", nil},
		{"a : b : c : d", ErrTooDeep},
		{"a :\n\tb", nil},
		{"a :\n\tb :\n\t\tc", ErrTooDeep},
	}

	for _, tc := range testCases {
		tokens, err := lexer.Tokenize([]byte(tc.In))
		require.NoError(t, err, "input: %q", tc.In)

		p := New(tokens, WithMaxDepth(3))
		prog, err := p.Parse()
		require.NoError(t, err, "input: %q", tc.In)
		require.NotNil(t, prog, "input: %q", tc.In)

		if tc.Err == nil {
			assert.Empty(t, prog.Errors, "input: %q", tc.In)
			continue
		}

		var found bool
		for _, d := range p.Diagnostics() {
			if errors.Is(d.Err, ErrTooDeep) {
				found = true
			}
		}
		assert.True(t, found, "input: %q, errors: %v", tc.In, prog.Errors)

		_, err = New(tokens, WithMaxDepth(3), WithMode(ModeStrict)).Parse()
		assert.True(t, errors.Is(err, ErrTooDeep), "input: %q, got: %v", tc.In, err)
	}

	deep := strings.Repeat("(", 200) + "1" + strings.Repeat(")", 200)
	prog, err := Parse([]byte(deep))
	require.NoError(t, err)
	assert.Empty(t, prog.Errors)

	deeper := strings.Repeat("(", DefaultMaxDepth+1) + "1" + strings.Repeat(")", DefaultMaxDepth+1)
	_, err = Parse([]byte(deeper), WithMode(ModeStrict))
	assert.True(t, errors.Is(err, ErrTooDeep), "got: %v", err)
}

func TestParserStrict(t *testing.T) {
	testCases := []struct {
		In  string
		Err error
	}{
		{`f : [x + 1`, ErrUnmatchedBracket},
		{`x : 1 )`, ErrUnmatchedBracket},
		{`x : + 1`, ErrMissingOperand},
		{`x :`, ErrMissingOperand},
		{"x : 1 #\ny : 2", ErrUnexpectedToken},
		{"f : [x + 1\ng : 2", ErrUnmatchedBracket},
		{`f : 1 ? 2`, ErrInvalidShape},
		{`f : ~a ~b ? a`, ErrInvalidShape},
		{`f : ~a b ? a`, ErrInvalidShape},
	}

	for _, tc := range testCases {
		prog, err := Parse([]byte(tc.In), WithMode(ModeStrict))
		assert.Nil(t, prog, "input: %q", tc.In)
		require.Error(t, err, "input: %q", tc.In)
		assert.True(t, errors.Is(err, tc.Err), "input: %q, got: %v", tc.In, err)

		var parseErr *Error
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, 1, parseErr.Line)
	}

	prog, err := Parse([]byte("x : 1\ny : x + 1"), WithMode(ModeStrict))
	require.NoError(t, err)
	assert.Equal(t, `(: x 1) (: y (+ x 1))`, string(ast.Encode(prog)))
}

func TestParserParameterWarnings(t *testing.T) {
	testCases := []struct {
		In       string
		Out      string
		Warnings []string
	}{
		{
			In:       `f : 1 2 ? 0`,
			Out:      `(: f (? (_param_0 _param_1) 0))`,
			Warnings: []string{"1:5: literal 1 used as parameter, renamed to _param_0", "1:7: literal 2 used as parameter, renamed to _param_1"},
		},
		{
			In:       "f : `s` ? 0",
			Out:      `(: f (? (_str_param_0) 0))`,
			Warnings: []string{"1:5: literal `s` used as parameter, renamed to _str_param_0"},
		},
		{
			In:       `f : ~a ~b ? a`,
			Out:      `(: f (? (~a ~b) a))`,
			Warnings: []string{`1:5: rest parameter "a" must be the last one`, `1:8: more than one rest parameter`},
		},
		{
			In:       `f : (a + b) ? a`,
			Out:      `(: f (? (_) a))`,
			Warnings: []string{`1:6: unrecognized parameter shape BinaryOperation, using _`},
		},
	}

	for _, tc := range testCases {
		prog, err := Parse([]byte(tc.In))
		require.NoError(t, err)

		assert.Empty(t, prog.Errors, "input: %q", tc.In)
		assert.Equal(t, tc.Out, string(ast.Encode(prog)), "input: %q", tc.In)
		for _, w := range tc.Warnings {
			assert.Contains(t, prog.Warnings, w, "input: %q", tc.In)
		}
	}
}

func TestParserDefinitionTargetWarning(t *testing.T) {
	prog, err := Parse([]byte("`name` : 1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1:1: unusual definition target String"}, prog.Warnings)

	// guards are definitions with arbitrary targets
	prog, err = Parse([]byte("f : x ?\n\t1 : 2\n\t_ : 3"))
	require.NoError(t, err)
	assert.Empty(t, prog.Warnings)
}

func TestParserIndentationWarning(t *testing.T) {
	prog, err := Parse([]byte("a\n\tb\nc"))
	require.NoError(t, err)

	assert.Empty(t, prog.Errors)
	assert.Equal(t, `a (block b) c`, string(ast.Encode(prog)))
	assert.Equal(t, []string{"2:2: unexpected indentation, reading an indented block"}, prog.Warnings)
}

func TestParserMaxDiagnostics(t *testing.T) {
	tokens, err := lexer.Tokenize([]byte(strings.Repeat(") ", 5000)))
	require.NoError(t, err)

	p := New(tokens, WithMaxDiagnostics(10))
	prog, err := p.Parse()
	require.NoError(t, err)
	require.NotNil(t, prog)

	diags := p.Diagnostics()
	require.Len(t, diags, 11)
	assert.True(t, errors.Is(diags[10].Err, ErrTooManyErrors))
	assert.True(t, diags.HasErrors())
}

func TestParseExpression(t *testing.T) {
	tokens, err := lexer.Tokenize([]byte("x : 1\ny : 2"))
	require.NoError(t, err)

	p := New(tokens)

	n, pos, err := p.ParseExpression(0)
	require.NoError(t, err)
	assert.Equal(t, `(: x 1)`, string(ast.Encode(n)))
	assert.Equal(t, 3, pos)

	n, pos, err = p.ParseExpression(4)
	require.NoError(t, err)
	assert.Equal(t, `(: y 2)`, string(ast.Encode(n)))
	assert.Equal(t, 7, pos)

	// no operand at a newline, still moves forward
	_, pos, err = p.ParseExpression(3)
	require.NoError(t, err)
	assert.Equal(t, 4, pos)
	assert.True(t, p.Diagnostics().HasErrors())

	_, pos, _ = p.ParseExpression(len(tokens) + 10)
	assert.Equal(t, len(tokens), pos)
}

func TestParserValidation(t *testing.T) {
	tokens := []lexer.Token{
		*lexer.NewToken(lexer.TokenNumber, "1.2.3", 1, 1),
		*lexer.NewToken(lexer.TokenEOF, "", 1, 6),
	}

	prog, err := New(tokens).Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{`1:1: invalid number "1.2.3"`}, prog.Warnings)

	prog, err = New(tokens, WithValidation(false)).Parse()
	require.NoError(t, err)
	assert.Empty(t, prog.Warnings)
}

func TestParserLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	_, err := Parse([]byte("x : )"), WithLogger(logger))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "error: 1:5:")
	assert.Contains(t, buf.String(), "parsed 1 statements")
}

func TestParserLexError(t *testing.T) {
	_, err := Parse([]byte("x : $"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, lexer.ErrUnknownCharacter))
}

func TestDiagnostics(t *testing.T) {
	ds := Diagnostics{
		{Severity: SeverityWarning, Message: "a", Line: 1, Column: 2},
		{Severity: SeverityError, Message: "b", Line: 3, Column: 4},
	}

	assert.Equal(t, []string{"1:2: a"}, ds.Warnings())
	assert.Equal(t, []string{"3:4: b"}, ds.Errors())
	assert.True(t, ds.HasErrors())
	assert.False(t, ds[:1].HasErrors())
	assert.Equal(t, []string{}, Diagnostics{}.Errors())
	assert.Equal(t, "error", SeverityError.String())
}
