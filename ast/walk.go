package ast

// Children returns the direct children of a node in source order. Missing
// (nil) children are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if !isNil(c) {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *Program:
		add(n.Body...)
	case *Definition:
		add(n.Target, n.Value)
	case *Parameter:
		if n.Range != nil {
			add(n.Range)
		}
	case *Lambda:
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *ConditionalLambda:
		for _, p := range n.Params {
			add(p)
		}
		for _, b := range n.Branches {
			add(b.Condition, b.Result)
		}
	case *BinaryOperation:
		add(n.Left, n.Right)
	case *UnaryOperation:
		add(n.Operand)
	case *SpreadOperation:
		add(n.Operand)
	case *RangeOperation:
		add(n.Start, n.End)
	case *Application:
		add(n.Func)
		add(n.Args...)
	case *Coproduct:
		add(n.Left, n.Right)
	case *Product:
		add(n.Elements...)
	case *PropertyAccess:
		add(n.Object, n.Property)
	case *PropertyAssignment:
		add(n.Object, n.Property, n.Value)
	case *PartialApplication:
		add(n.Left, n.Right)
	case *Block:
		add(n.Statements...)
	case *Export:
		add(n.Value)
	}

	return out
}

// Walk visits n and its descendants depth-first. Children of a node are
// skipped when fn returns false for it.
func Walk(n Node, fn func(Node) bool) {
	if isNil(n) || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Parameter:
		return v == nil
	case *RangeOperation:
		return v == nil
	}
	return false
}

// Clone returns a deep copy of a node.
func Clone(n Node) Node {
	if isNil(n) {
		return nil
	}

	switch n := n.(type) {
	case *Program:
		c := *n
		c.Body = cloneList(n.Body)
		c.Warnings = append([]string(nil), n.Warnings...)
		c.Errors = append([]string(nil), n.Errors...)
		return &c
	case *Definition:
		return &Definition{Position: n.Position, Target: Clone(n.Target), Value: Clone(n.Value)}
	case *Parameter:
		return cloneParam(n)
	case *Lambda:
		return &Lambda{Position: n.Position, Params: cloneParams(n.Params), Body: Clone(n.Body)}
	case *ConditionalLambda:
		c := &ConditionalLambda{Position: n.Position, Params: cloneParams(n.Params)}
		for _, b := range n.Branches {
			c.Branches = append(c.Branches, &Branch{Condition: Clone(b.Condition), Result: Clone(b.Result)})
		}
		return c
	case *BinaryOperation:
		return &BinaryOperation{Position: n.Position, Operator: n.Operator, Left: Clone(n.Left), Right: Clone(n.Right)}
	case *UnaryOperation:
		return &UnaryOperation{Position: n.Position, Operator: n.Operator, Fixity: n.Fixity, Operand: Clone(n.Operand)}
	case *SpreadOperation:
		return &SpreadOperation{Position: n.Position, Fixity: n.Fixity, Operand: Clone(n.Operand)}
	case *RangeOperation:
		return cloneRange(n)
	case *Application:
		return &Application{Position: n.Position, Func: Clone(n.Func), Args: cloneList(n.Args)}
	case *Coproduct:
		return &Coproduct{Position: n.Position, Left: Clone(n.Left), Right: Clone(n.Right)}
	case *Product:
		return &Product{Position: n.Position, Elements: cloneList(n.Elements)}
	case *PropertyAccess:
		return &PropertyAccess{Position: n.Position, Object: Clone(n.Object), Property: Clone(n.Property)}
	case *PropertyAssignment:
		return &PropertyAssignment{Position: n.Position, Object: Clone(n.Object), Property: Clone(n.Property), Value: Clone(n.Value)}
	case *PartialApplication:
		return &PartialApplication{Position: n.Position, Operator: n.Operator, Left: Clone(n.Left), Right: Clone(n.Right), Mapped: n.Mapped}
	case *Block:
		return &Block{Position: n.Position, Form: n.Form, Statements: cloneList(n.Statements)}
	case *Export:
		return &Export{Position: n.Position, Value: Clone(n.Value)}
	case *PointFreeOperator:
		c := *n
		return &c
	case *Import:
		c := *n
		return &c
	case *SpreadImport:
		c := *n
		return &c
	case *Number:
		c := *n
		return &c
	case *String:
		c := *n
		return &c
	case *Character:
		c := *n
		return &c
	case *Identifier:
		c := *n
		return &c
	case *Unit:
		c := *n
		return &c
	case *EmptyList:
		c := *n
		return &c
	}

	return n
}

func cloneList(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Clone(n))
	}
	return out
}

func cloneRange(n *RangeOperation) *RangeOperation {
	if n == nil {
		return nil
	}
	return &RangeOperation{Position: n.Position, Start: Clone(n.Start), End: Clone(n.End)}
}

func cloneParam(p *Parameter) *Parameter {
	if p == nil {
		return nil
	}
	return &Parameter{Position: p.Position, Name: p.Name, Rest: p.Rest, Range: cloneRange(p.Range)}
}

func cloneParams(params []*Parameter) []*Parameter {
	if params == nil {
		return nil
	}
	out := make([]*Parameter, 0, len(params))
	for _, p := range params {
		out = append(out, cloneParam(p))
	}
	return out
}

// Inspect calls fn for every node of the tree, in depth-first order, with
// its depth relative to n.
func Inspect(n Node, fn func(n Node, depth int)) {
	inspect(n, 0, fn)
}

func inspect(n Node, depth int, fn func(Node, int)) {
	if isNil(n) {
		return
	}
	fn(n, depth)
	for _, c := range Children(n) {
		inspect(c, depth+1, fn)
	}
}
