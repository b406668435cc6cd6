package ast

import (
	"encoding/json"
)

// MarshalJSON encodes the program as a tree of objects keyed by "kind".
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonNode(p))
}

// MarshalNode encodes any node the same way a program is encoded.
func MarshalNode(n Node) ([]byte, error) {
	return json.Marshal(jsonNode(n))
}

func jsonNode(n Node) map[string]interface{} {
	if isNil(n) {
		return nil
	}

	m := map[string]interface{}{
		"kind": n.Type().String(),
	}
	if line, col := n.Pos(); line > 0 {
		m["line"] = line
		m["column"] = col
	}

	switch n := n.(type) {
	case *Program:
		m["schema"] = SchemaVersion
		m["body"] = jsonList(n.Body)
		m["warnings"] = jsonStrings(n.Warnings)
		m["errors"] = jsonStrings(n.Errors)
	case *Definition:
		m["target"] = jsonNode(n.Target)
		m["value"] = jsonNode(n.Value)
	case *Parameter:
		m["name"] = n.Name
		m["rest"] = n.Rest
		if n.Range != nil {
			m["range"] = jsonNode(n.Range)
		}
	case *Lambda:
		m["params"] = jsonParams(n.Params)
		m["body"] = jsonNode(n.Body)
	case *ConditionalLambda:
		m["params"] = jsonParams(n.Params)
		branches := make([]interface{}, 0, len(n.Branches))
		for _, b := range n.Branches {
			branches = append(branches, map[string]interface{}{
				"condition": jsonNode(b.Condition),
				"result":    jsonNode(b.Result),
			})
		}
		m["branches"] = branches
	case *BinaryOperation:
		m["operator"] = n.Operator
		m["left"] = jsonNode(n.Left)
		m["right"] = jsonNode(n.Right)
	case *UnaryOperation:
		m["operator"] = n.Operator
		m["position"] = n.Fixity.String()
		m["operand"] = jsonNode(n.Operand)
	case *SpreadOperation:
		m["position"] = n.Fixity.String()
		m["operand"] = jsonNode(n.Operand)
	case *RangeOperation:
		m["start"] = jsonNode(n.Start)
		m["end"] = jsonNode(n.End)
	case *Application:
		m["func"] = jsonNode(n.Func)
		m["args"] = jsonList(n.Args)
	case *Coproduct:
		m["left"] = jsonNode(n.Left)
		m["right"] = jsonNode(n.Right)
	case *Product:
		m["elements"] = jsonList(n.Elements)
	case *PropertyAccess:
		m["object"] = jsonNode(n.Object)
		m["property"] = jsonNode(n.Property)
	case *PropertyAssignment:
		m["object"] = jsonNode(n.Object)
		m["property"] = jsonNode(n.Property)
		m["value"] = jsonNode(n.Value)
	case *PointFreeOperator:
		m["operator"] = n.Operator
		m["position"] = n.Fixity.String()
	case *PartialApplication:
		m["operator"] = n.Operator
		m["left"] = jsonNode(n.Left)
		m["right"] = jsonNode(n.Right)
		m["mapped"] = n.Mapped
	case *Block:
		m["form"] = n.Form.String()
		m["statements"] = jsonList(n.Statements)
	case *Export:
		m["value"] = jsonNode(n.Value)
	case *Import:
		m["source"] = n.Source
		m["quoted"] = n.Quoted
	case *SpreadImport:
		m["source"] = n.Source
		m["quoted"] = n.Quoted
	case *EmptyList:
		m["form"] = n.Form.String()
	case *Number:
		m["text"] = n.Text
		m["value"] = n.Value()
	case Valuer:
		m["value"] = n.Value()
	}

	return m
}

func jsonList(nodes []Node) []interface{} {
	out := make([]interface{}, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, jsonNode(n))
	}
	return out
}

func jsonParams(params []*Parameter) []interface{} {
	out := make([]interface{}, 0, len(params))
	for _, p := range params {
		out = append(out, jsonNode(p))
	}
	return out
}

func jsonStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
