package ast

import (
	"github.com/xiam/sign/lexer"
)

// Node represents a leaf or a branch of the AST. Every node owns its
// children exclusively.
type Node interface {
	Type() NodeType
	Pos() (int, int)
}

// Position is the line and column where a node starts.
type Position struct {
	Line   int
	Column int
}

// Pos returns the line and column of the node
func (p Position) Pos() (int, int) {
	return p.Line, p.Column
}

// TokenPos returns the position of a token.
func TokenPos(tok lexer.Token) Position {
	line, col := tok.Pos()
	return Position{Line: line, Column: col}
}

// NodePos returns the position of a node.
func NodePos(n Node) Position {
	if n == nil {
		return Position{}
	}
	line, col := n.Pos()
	return Position{Line: line, Column: col}
}

// Program is the root of a parsed source.
type Program struct {
	Position

	Body []Node

	Warnings []string
	Errors   []string
}

// Definition binds a value to a target: "target : value".
type Definition struct {
	Position

	Target Node
	Value  Node
}

// Parameter is a normalized lambda parameter. Range parameters have no name.
type Parameter struct {
	Position

	Name  string
	Rest  bool
	Range *RangeOperation
}

// Lambda is "params ? body".
type Lambda struct {
	Position

	Params []*Parameter
	Body   Node
}

// Branch is one "condition : result" guard of a ConditionalLambda.
type Branch struct {
	Condition Node
	Result    Node
}

// ConditionalLambda is a lambda whose body is a list of guards, the first
// matching one wins.
type ConditionalLambda struct {
	Position

	Params   []*Parameter
	Branches []*Branch
}

// BinaryOperation is an infix arithmetic, comparison or logical operation.
type BinaryOperation struct {
	Position

	Operator string
	Left     Node
	Right    Node
}

// UnaryOperation is "!x" (prefix not) or "x!" (postfix factorial).
type UnaryOperation struct {
	Position

	Operator string
	Fixity   Fixity
	Operand  Node
}

// SpreadOperation is "~x" (rest/collect) or "x~" (expand).
type SpreadOperation struct {
	Position

	Fixity  Fixity
	Operand Node
}

// RangeOperation is "start ~ end".
type RangeOperation struct {
	Position

	Start Node
	End   Node
}

// Application is a function applied to one or more arguments by
// juxtaposition.
type Application struct {
	Position

	Func Node
	Args []Node
}

// Coproduct is juxtaposition of two values that are not an application.
type Coproduct struct {
	Position

	Left  Node
	Right Node
}

// Product is a comma separated list.
type Product struct {
	Position

	Elements []Node
}

// PropertyAccess is "object ' property".
type PropertyAccess struct {
	Position

	Object   Node
	Property Node
}

// PropertyAssignment is "object ' property : value".
type PropertyAssignment struct {
	Position

	Object   Node
	Property Node
	Value    Node
}

// PointFreeOperator is an operator used as a value: "[+]", "[!]", "[_!]".
type PointFreeOperator struct {
	Position

	Operator string
	Fixity   Fixity
}

// PartialApplication is an operator with one side bound: "[+ 1]" leaves the
// left side open, "[1 +]" the right one. Mapped partials ("[+ 1,]") apply to
// each element of their argument.
type PartialApplication struct {
	Position

	Operator string
	Left     Node
	Right    Node
	Mapped   bool
}

// Block groups statements, from indentation or any bracket pair.
type Block struct {
	Position

	Form       Form
	Statements []Node
}

// Export is "# value".
type Export struct {
	Position

	Value Node
}

// Import is "@ source".
type Import struct {
	Position

	Source string
	Quoted bool
}

// SpreadImport is "@ source ~", importing every exported name.
type SpreadImport struct {
	Position

	Source string
	Quoted bool
}

// Number is a numeric literal, kept as written.
type Number struct {
	Position

	Text string
}

// String is a backtick string literal.
type String struct {
	Position

	Text string
}

// Character is a "\c" literal.
type Character struct {
	Position

	Char rune
}

// Identifier is a name.
type Identifier struct {
	Position

	Name string
}

// Unit is "_".
type Unit struct {
	Position
}

// EmptyList is an empty bracket pair.
type EmptyList struct {
	Position

	Form Form
}

func (*Program) Type() NodeType            { return NodeTypeProgram }
func (*Definition) Type() NodeType         { return NodeTypeDefinition }
func (*Parameter) Type() NodeType          { return NodeTypeParameter }
func (*Lambda) Type() NodeType             { return NodeTypeLambda }
func (*ConditionalLambda) Type() NodeType  { return NodeTypeConditionalLambda }
func (*BinaryOperation) Type() NodeType    { return NodeTypeBinaryOperation }
func (*UnaryOperation) Type() NodeType     { return NodeTypeUnaryOperation }
func (*SpreadOperation) Type() NodeType    { return NodeTypeSpreadOperation }
func (*RangeOperation) Type() NodeType     { return NodeTypeRangeOperation }
func (*Application) Type() NodeType        { return NodeTypeApplication }
func (*Coproduct) Type() NodeType          { return NodeTypeCoproduct }
func (*Product) Type() NodeType            { return NodeTypeProduct }
func (*PropertyAccess) Type() NodeType     { return NodeTypePropertyAccess }
func (*PropertyAssignment) Type() NodeType { return NodeTypePropertyAssignment }
func (*PointFreeOperator) Type() NodeType  { return NodeTypePointFreeOperator }
func (*PartialApplication) Type() NodeType { return NodeTypePartialApplication }
func (*Block) Type() NodeType              { return NodeTypeBlock }
func (*Export) Type() NodeType             { return NodeTypeExport }
func (*Import) Type() NodeType             { return NodeTypeImport }
func (*SpreadImport) Type() NodeType       { return NodeTypeSpreadImport }
func (*Number) Type() NodeType             { return NodeTypeNumber }
func (*String) Type() NodeType             { return NodeTypeString }
func (*Character) Type() NodeType          { return NodeTypeCharacter }
func (*Identifier) Type() NodeType         { return NodeTypeIdentifier }
func (*Unit) Type() NodeType               { return NodeTypeUnit }
func (*EmptyList) Type() NodeType          { return NodeTypeEmptyList }
