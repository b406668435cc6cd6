package sign

import (
	"errors"
	"sort"

	"github.com/xiam/sign/ast"
)

// ErrNoSuchSymbol is returned when looking up an undeclared name.
var ErrNoSuchSymbol = errors.New("no such symbol")

// SymbolKind tells how a top-level name was declared.
type SymbolKind uint8

// Symbol kinds
const (
	SymbolDefinition SymbolKind = iota
	SymbolExport
	SymbolImport
)

var symbolKindName = map[SymbolKind]string{
	SymbolDefinition: "definition",
	SymbolExport:     "export",
	SymbolImport:     "import",
}

func (k SymbolKind) String() string {
	if name, ok := symbolKindName[k]; ok {
		return name
	}
	return "unknown"
}

// Symbol is a name declared at the top level of a program.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Line   int
	Column int
}

// SymbolTable holds the top-level names of a program. A name declared twice
// resolves to its last declaration.
type SymbolTable struct {
	symbols []Symbol
	names   map[string]int
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{
		names: make(map[string]int),
	}
}

func (st *SymbolTable) add(sym Symbol) {
	if i, ok := st.names[sym.Name]; ok {
		st.symbols[i] = sym
		return
	}
	st.names[sym.Name] = len(st.symbols)
	st.symbols = append(st.symbols, sym)
}

// Get looks up a symbol by name.
func (st *SymbolTable) Get(name string) (Symbol, error) {
	if i, ok := st.names[name]; ok {
		return st.symbols[i], nil
	}
	return Symbol{}, ErrNoSuchSymbol
}

// List returns the symbols sorted by position.
func (st *SymbolTable) List() []Symbol {
	list := make([]Symbol, len(st.symbols))
	copy(list, st.symbols)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Line != list[j].Line {
			return list[i].Line < list[j].Line
		}
		return list[i].Column < list[j].Column
	})
	return list
}

// Len returns the number of distinct names.
func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// Symbols collects the names defined, exported and imported by the
// statements of prog.
func Symbols(prog *ast.Program) *SymbolTable {
	st := newSymbolTable()
	if prog == nil {
		return st
	}
	for _, stmt := range prog.Body {
		collect(st, stmt, SymbolDefinition)
	}
	return st
}

func collect(st *SymbolTable, n ast.Node, kind SymbolKind) {
	switch n := n.(type) {
	case *ast.Export:
		collect(st, n.Value, SymbolExport)

	case *ast.Definition:
		for _, name := range targetNames(n.Target) {
			st.add(Symbol{Name: name.Name, Kind: kind, Line: name.Line, Column: name.Column})
		}

	case *ast.Identifier:
		if kind == SymbolExport {
			st.add(Symbol{Name: n.Name, Kind: kind, Line: n.Line, Column: n.Column})
		}

	case *ast.Import:
		st.add(Symbol{Name: n.Source, Kind: SymbolImport, Line: n.Line, Column: n.Column})

	case *ast.SpreadImport:
		st.add(Symbol{Name: n.Source, Kind: SymbolImport, Line: n.Line, Column: n.Column})
	}
}

// targetNames returns the identifiers bound by a definition target: "x",
// "f a b" binds f and "a, b" binds both.
func targetNames(n ast.Node) []*ast.Identifier {
	switch n := n.(type) {
	case *ast.Identifier:
		return []*ast.Identifier{n}
	case *ast.Application:
		return targetNames(n.Func)
	case *ast.Product:
		var names []*ast.Identifier
		for _, e := range n.Elements {
			names = append(names, targetNames(e)...)
		}
		return names
	case *ast.Block:
		if len(n.Statements) == 1 {
			return targetNames(n.Statements[0])
		}
	}
	return nil
}
