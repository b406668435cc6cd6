package ast

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Print displays a human-readable representation of a node
func Print(n Node) {
	Fprint(os.Stdout, n)
}

// Fprint writes an indented tree of the node to w.
func Fprint(w io.Writer, n Node) {
	printLevel(w, n, 0)
}

func printLevel(w io.Writer, n Node, level int) {
	indent := strings.Repeat("    ", level)
	if isNil(n) {
		fmt.Fprintf(w, "%s:nil\n", indent)
		return
	}

	line, col := n.Pos()
	if label := nodeLabel(n); label != "" {
		fmt.Fprintf(w, "%s(%s): %s [%d %d]\n", indent, n.Type(), label, line, col)
	} else {
		fmt.Fprintf(w, "%s(%s) [%d %d]\n", indent, n.Type(), line, col)
	}

	if cl, ok := n.(*ConditionalLambda); ok {
		for _, p := range cl.Params {
			printLevel(w, p, level+1)
		}
		for _, b := range cl.Branches {
			fmt.Fprintf(w, "%s    (Branch)\n", indent)
			printLevel(w, b.Condition, level+2)
			printLevel(w, b.Result, level+2)
		}
		return
	}

	for _, c := range Children(n) {
		printLevel(w, c, level+1)
	}
}

func nodeLabel(n Node) string {
	switch n := n.(type) {
	case *Number:
		return n.Text
	case *String:
		return fmt.Sprintf("%q", n.Text)
	case *Character:
		return fmt.Sprintf("%q", n.Char)
	case *Identifier:
		return n.Name
	case *Parameter:
		if n.Rest {
			return "~" + n.Name
		}
		return n.Name
	case *BinaryOperation:
		return n.Operator
	case *UnaryOperation:
		return fmt.Sprintf("%s %s", n.Operator, n.Fixity)
	case *SpreadOperation:
		return n.Fixity.String()
	case *PointFreeOperator:
		return fmt.Sprintf("%s %s", n.Operator, n.Fixity)
	case *PartialApplication:
		if n.Mapped {
			return n.Operator + " mapped"
		}
		return n.Operator
	case *Block:
		return n.Form.String()
	case *Import:
		return n.Source
	case *SpreadImport:
		return n.Source
	}
	return ""
}

// Encode transforms a node into a compact s-expression that shows how the
// source was grouped.
func Encode(n Node) []byte {
	return []byte(encodeNode(n))
}

func encodeNode(n Node) string {
	if isNil(n) {
		return ":nil"
	}

	switch n := n.(type) {
	case *Program:
		return encodeList(n.Body, " ")

	case *Definition:
		return fmt.Sprintf("(: %s %s)", encodeNode(n.Target), encodeNode(n.Value))

	case *Parameter:
		if n.Range != nil {
			return encodeNode(n.Range)
		}
		if n.Rest {
			return "~" + n.Name
		}
		return n.Name

	case *Lambda:
		return fmt.Sprintf("(? (%s) %s)", encodeParams(n.Params), encodeNode(n.Body))

	case *ConditionalLambda:
		branches := make([]string, 0, len(n.Branches))
		for _, b := range n.Branches {
			branches = append(branches, fmt.Sprintf("(%s %s)", encodeNode(b.Condition), encodeNode(b.Result)))
		}
		return fmt.Sprintf("(?| (%s) %s)", encodeParams(n.Params), strings.Join(branches, " "))

	case *BinaryOperation:
		return fmt.Sprintf("(%s %s %s)", n.Operator, encodeNode(n.Left), encodeNode(n.Right))

	case *UnaryOperation:
		if n.Fixity == Postfix {
			return fmt.Sprintf("(%s %s)", encodeNode(n.Operand), n.Operator)
		}
		return fmt.Sprintf("(%s %s)", n.Operator, encodeNode(n.Operand))

	case *SpreadOperation:
		if n.Fixity == Postfix {
			return fmt.Sprintf("(%s ~)", encodeNode(n.Operand))
		}
		return fmt.Sprintf("(~ %s)", encodeNode(n.Operand))

	case *RangeOperation:
		return fmt.Sprintf("(range %s %s)", encodeNode(n.Start), encodeNode(n.End))

	case *Application:
		return fmt.Sprintf("(apply %s %s)", encodeNode(n.Func), encodeList(n.Args, " "))

	case *Coproduct:
		return fmt.Sprintf("(coproduct %s %s)", encodeNode(n.Left), encodeNode(n.Right))

	case *Product:
		return fmt.Sprintf("(, %s)", encodeList(n.Elements, " "))

	case *PropertyAccess:
		return fmt.Sprintf("(' %s %s)", encodeNode(n.Object), encodeNode(n.Property))

	case *PropertyAssignment:
		return fmt.Sprintf("(': %s %s %s)", encodeNode(n.Object), encodeNode(n.Property), encodeNode(n.Value))

	case *PointFreeOperator:
		if n.Fixity == Postfix {
			return fmt.Sprintf("[_%s]", n.Operator)
		}
		return fmt.Sprintf("[%s]", n.Operator)

	case *PartialApplication:
		suffix := ""
		if n.Mapped {
			suffix = ","
		}
		if isNil(n.Left) {
			return fmt.Sprintf("[%s %s%s]", n.Operator, encodeNode(n.Right), suffix)
		}
		return fmt.Sprintf("[%s %s%s]", encodeNode(n.Left), n.Operator, suffix)

	case *Block:
		if len(n.Statements) == 0 {
			return "(block)"
		}
		return fmt.Sprintf("(block %s)", encodeList(n.Statements, " "))

	case *Export:
		return fmt.Sprintf("(# %s)", encodeNode(n.Value))

	case *Import:
		return fmt.Sprintf("(@ %s)", encodeSource(n.Source, n.Quoted))

	case *SpreadImport:
		return fmt.Sprintf("(@~ %s)", encodeSource(n.Source, n.Quoted))

	case *EmptyList:
		opening, closing := n.Form.Delimiters()
		return opening + closing

	case *Number, *String, *Character, *Identifier, *Unit:
		return Source(n)
	}

	panic(fmt.Sprintf("unknown node type %T", n))
}

func encodeList(nodes []Node, sep string) string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, encodeNode(n))
	}
	return strings.Join(out, sep)
}

func encodeParams(params []*Parameter) string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		out = append(out, encodeNode(p))
	}
	return strings.Join(out, " ")
}

func encodeSource(source string, quoted bool) string {
	if quoted {
		return "`" + source + "`"
	}
	return source
}

// Source prints a node back as Sign text. Literals and identifiers print
// exactly as they lex; compound nodes are fully parenthesized.
func Source(n Node) string {
	if isNil(n) {
		return "_"
	}

	switch n := n.(type) {
	case *Number:
		return n.Text
	case *String:
		return "`" + n.Text + "`"
	case *Character:
		return `\` + string(n.Char)
	case *Identifier:
		return n.Name
	case *Unit:
		return "_"
	case *EmptyList:
		opening, closing := n.Form.Delimiters()
		return opening + closing

	case *Program:
		return sourceList(n.Body, "\n")
	case *Definition:
		return fmt.Sprintf("%s : %s", Source(n.Target), Source(n.Value))
	case *Parameter:
		if n.Range != nil {
			return Source(n.Range)
		}
		if n.Rest {
			return "~" + n.Name
		}
		return n.Name
	case *Lambda:
		return fmt.Sprintf("(%s ? %s)", sourceParams(n.Params), Source(n.Body))
	case *ConditionalLambda:
		branches := make([]string, 0, len(n.Branches))
		for _, b := range n.Branches {
			branches = append(branches, fmt.Sprintf("%s : %s", Source(b.Condition), Source(b.Result)))
		}
		return fmt.Sprintf("(%s ? (%s))", sourceParams(n.Params), strings.Join(branches, "\n"))
	case *BinaryOperation:
		return fmt.Sprintf("(%s %s %s)", Source(n.Left), n.Operator, Source(n.Right))
	case *UnaryOperation:
		if n.Fixity == Postfix {
			return fmt.Sprintf("(%s%s)", Source(n.Operand), n.Operator)
		}
		return fmt.Sprintf("(%s%s)", n.Operator, Source(n.Operand))
	case *SpreadOperation:
		if n.Fixity == Postfix {
			return fmt.Sprintf("(%s~)", Source(n.Operand))
		}
		return fmt.Sprintf("(~%s)", Source(n.Operand))
	case *RangeOperation:
		return fmt.Sprintf("(%s ~ %s)", Source(n.Start), Source(n.End))
	case *Application:
		return fmt.Sprintf("(%s %s)", Source(n.Func), sourceList(n.Args, " "))
	case *Coproduct:
		return fmt.Sprintf("(%s %s)", Source(n.Left), Source(n.Right))
	case *Product:
		return fmt.Sprintf("(%s)", sourceList(n.Elements, ", "))
	case *PropertyAccess:
		return fmt.Sprintf("%s'%s", Source(n.Object), Source(n.Property))
	case *PropertyAssignment:
		return fmt.Sprintf("%s'%s : %s", Source(n.Object), Source(n.Property), Source(n.Value))
	case *PointFreeOperator:
		return encodeNode(n)
	case *PartialApplication:
		suffix := ""
		if n.Mapped {
			suffix = ","
		}
		if isNil(n.Left) {
			return fmt.Sprintf("[%s %s%s]", n.Operator, Source(n.Right), suffix)
		}
		return fmt.Sprintf("[%s %s%s]", Source(n.Left), n.Operator, suffix)
	case *Block:
		opening, closing := n.Form.Delimiters()
		if n.Form == FormIndent {
			opening, closing = "(", ")"
		}
		return opening + sourceList(n.Statements, "\n") + closing
	case *Export:
		return "#" + Source(n.Value)
	case *Import:
		return "@" + encodeSource(n.Source, n.Quoted)
	case *SpreadImport:
		return "@" + encodeSource(n.Source, n.Quoted) + "~"
	}

	panic(fmt.Sprintf("unknown node type %T", n))
}

func sourceList(nodes []Node, sep string) string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Source(n))
	}
	return strings.Join(out, sep)
}

func sourceParams(params []*Parameter) string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		out = append(out, Source(p))
	}
	return strings.Join(out, " ")
}
