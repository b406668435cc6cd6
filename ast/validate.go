package ast

import (
	"fmt"
)

var knownOperators = map[string]bool{
	"|": true, ";": true, "&": true,
	"<": true, "<=": true, "=": true, "!=": true, ">=": true, ">": true,
	"+": true, "-": true, "*": true, "/": true, "%": true, "^": true,
	"'": true, "!": true, "~": true,
}

// Finding is a shape inconsistency reported by Validate.
type Finding struct {
	Message string
	Line    int
	Column  int
}

func (f Finding) String() string {
	return fmt.Sprintf("%d:%d: %s", f.Line, f.Column, f.Message)
}

// Validate checks that every node in the tree has the children its kind
// requires. A tree built by the parser in strict mode has no findings.
func Validate(n Node) []Finding {
	var findings []Finding

	report := func(n Node, format string, args ...interface{}) {
		line, col := n.Pos()
		findings = append(findings, Finding{
			Message: fmt.Sprintf(format, args...),
			Line:    line,
			Column:  col,
		})
	}

	Walk(n, func(n Node) bool {
		switch n := n.(type) {
		case *Definition:
			if isNil(n.Target) {
				report(n, "definition without target")
			}
			if isNil(n.Value) {
				report(n, "definition without value")
			}
		case *Lambda:
			if isNil(n.Body) {
				report(n, "lambda without body")
			}
		case *ConditionalLambda:
			if len(n.Branches) == 0 {
				report(n, "conditional lambda without branches")
			}
			for _, b := range n.Branches {
				if isNil(b.Condition) || isNil(b.Result) {
					report(n, "incomplete conditional branch")
				}
			}
		case *BinaryOperation:
			if !knownOperators[n.Operator] {
				report(n, "unknown operator %q", n.Operator)
			}
			if isNil(n.Left) || isNil(n.Right) {
				report(n, "operator %q is missing an operand", n.Operator)
			}
		case *UnaryOperation:
			if isNil(n.Operand) {
				report(n, "operator %q is missing an operand", n.Operator)
			}
		case *SpreadOperation:
			if isNil(n.Operand) {
				report(n, "spread without operand")
			}
		case *RangeOperation:
			if isNil(n.Start) || isNil(n.End) {
				report(n, "range is missing a bound")
			}
		case *Application:
			if isNil(n.Func) {
				report(n, "application without function")
			}
			if len(n.Args) == 0 {
				report(n, "application without arguments")
			}
		case *Coproduct:
			if isNil(n.Left) || isNil(n.Right) {
				report(n, "coproduct is missing an element")
			}
		case *PropertyAccess:
			if isNil(n.Object) || isNil(n.Property) {
				report(n, "incomplete property access")
			}
		case *PropertyAssignment:
			if isNil(n.Object) || isNil(n.Property) || isNil(n.Value) {
				report(n, "incomplete property assignment")
			}
		case *PointFreeOperator:
			if !knownOperators[n.Operator] {
				report(n, "unknown operator %q", n.Operator)
			}
		case *PartialApplication:
			if !knownOperators[n.Operator] {
				report(n, "unknown operator %q", n.Operator)
			}
			if isNil(n.Left) == isNil(n.Right) {
				report(n, "partial application must bind exactly one side")
			}
		case *Export:
			if isNil(n.Value) {
				report(n, "export without value")
			}
		case *Import:
			if n.Source == "" {
				report(n, "import without source")
			}
		case *SpreadImport:
			if n.Source == "" {
				report(n, "import without source")
			}
		case *Number:
			if n.Value() == nil {
				report(n, "invalid number %q", n.Text)
			}
		}
		return true
	})

	return findings
}
