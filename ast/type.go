package ast

// NodeType represents the type of the AST node
type NodeType uint16

// Node types
const (
	nodeTypeLiteral  NodeType = 128
	nodeTypeCompound NodeType = 256

	NodeTypeNumber            = nodeTypeLiteral | 1
	NodeTypeString            = nodeTypeLiteral | 2
	NodeTypeCharacter         = nodeTypeLiteral | 3
	NodeTypeIdentifier        = nodeTypeLiteral | 4
	NodeTypeUnit              = nodeTypeLiteral | 5
	NodeTypeEmptyList         = nodeTypeLiteral | 6
	NodeTypePointFreeOperator = nodeTypeLiteral | 7
	NodeTypeImport            = nodeTypeLiteral | 8
	NodeTypeSpreadImport      = nodeTypeLiteral | 9

	NodeTypeProgram            = nodeTypeCompound | 1
	NodeTypeDefinition         = nodeTypeCompound | 2
	NodeTypeLambda             = nodeTypeCompound | 3
	NodeTypeConditionalLambda  = nodeTypeCompound | 4
	NodeTypeParameter          = nodeTypeCompound | 5
	NodeTypeBinaryOperation    = nodeTypeCompound | 6
	NodeTypeUnaryOperation     = nodeTypeCompound | 7
	NodeTypeSpreadOperation    = nodeTypeCompound | 8
	NodeTypeRangeOperation     = nodeTypeCompound | 9
	NodeTypeApplication        = nodeTypeCompound | 10
	NodeTypeCoproduct          = nodeTypeCompound | 11
	NodeTypeProduct            = nodeTypeCompound | 12
	NodeTypePropertyAccess     = nodeTypeCompound | 13
	NodeTypePropertyAssignment = nodeTypeCompound | 14
	NodeTypePartialApplication = nodeTypeCompound | 15
	NodeTypeBlock              = nodeTypeCompound | 16
	NodeTypeExport             = nodeTypeCompound | 17
)

func (nt NodeType) String() string {
	s, ok := nodeTypeName[nt]
	if ok {
		return s
	}
	return ""
}

// IsLiteral returns true for node types that have no children.
func (nt NodeType) IsLiteral() bool {
	return nt&nodeTypeLiteral > 0
}

var nodeTypeName = map[NodeType]string{
	NodeTypeNumber:            "Number",
	NodeTypeString:            "String",
	NodeTypeCharacter:         "Character",
	NodeTypeIdentifier:        "Identifier",
	NodeTypeUnit:              "Unit",
	NodeTypeEmptyList:         "EmptyList",
	NodeTypePointFreeOperator: "PointFreeOperator",
	NodeTypeImport:            "Import",
	NodeTypeSpreadImport:      "SpreadImport",

	NodeTypeProgram:            "Program",
	NodeTypeDefinition:         "Definition",
	NodeTypeLambda:             "Lambda",
	NodeTypeConditionalLambda:  "ConditionalLambda",
	NodeTypeParameter:          "Parameter",
	NodeTypeBinaryOperation:    "BinaryOperation",
	NodeTypeUnaryOperation:     "UnaryOperation",
	NodeTypeSpreadOperation:    "SpreadOperation",
	NodeTypeRangeOperation:     "RangeOperation",
	NodeTypeApplication:        "Application",
	NodeTypeCoproduct:          "Coproduct",
	NodeTypeProduct:            "Product",
	NodeTypePropertyAccess:     "PropertyAccess",
	NodeTypePropertyAssignment: "PropertyAssignment",
	NodeTypePartialApplication: "PartialApplication",
	NodeTypeBlock:              "Block",
	NodeTypeExport:             "Export",
}

// Fixity tells where an operator sits relative to its operand.
type Fixity uint8

// Operator positions
const (
	Prefix Fixity = iota
	Infix
	Postfix
)

func (f Fixity) String() string {
	switch f {
	case Prefix:
		return "prefix"
	case Postfix:
		return "postfix"
	}
	return "infix"
}

// Form records the source spelling of a block. It is only used to print
// blocks back.
type Form uint8

// Block forms
const (
	FormIndent Form = iota
	FormParen
	FormBracket
	FormBrace
)

func (f Form) String() string {
	switch f {
	case FormParen:
		return "paren"
	case FormBracket:
		return "bracket"
	case FormBrace:
		return "brace"
	}
	return "indent"
}

// Delimiters returns the opening and closing brackets of the form, empty for
// indentation blocks.
func (f Form) Delimiters() (string, string) {
	switch f {
	case FormParen:
		return "(", ")"
	case FormBracket:
		return "[", "]"
	case FormBrace:
		return "{", "}"
	}
	return "", ""
}
