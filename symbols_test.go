package sign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbols(t *testing.T) {
	src := "@math\n# pi : 3.14\nsquare x : x * x\na, b : 1, 2\n@`lib/io`~\n# a\n"

	prog, err := Parse([]byte(src))
	require.NoError(t, err)

	st := Symbols(prog)
	assert.Equal(t, 6, st.Len())

	testCases := []struct {
		In   string
		Kind SymbolKind
		Line int
	}{
		{"math", SymbolImport, 1},
		{"pi", SymbolExport, 2},
		{"square", SymbolDefinition, 3},
		{"b", SymbolDefinition, 4},
		{"lib/io", SymbolImport, 5},
		{"a", SymbolExport, 6},
	}

	for _, tc := range testCases {
		sym, err := st.Get(tc.In)
		require.NoError(t, err, tc.In)
		assert.Equal(t, tc.Kind, sym.Kind, tc.In)
		assert.Equal(t, tc.Line, sym.Line, tc.In)
	}

	_, err = st.Get("x")
	assert.Equal(t, ErrNoSuchSymbol, err)

	names := []string{}
	for _, sym := range st.List() {
		names = append(names, sym.Name)
	}
	assert.Equal(t, []string{"math", "pi", "square", "b", "lib/io", "a"}, names)
}

func TestSymbolsNil(t *testing.T) {
	st := Symbols(nil)
	assert.Equal(t, 0, st.Len())
	assert.Empty(t, st.List())
}

func TestSymbolKind(t *testing.T) {
	assert.Equal(t, "definition", SymbolDefinition.String())
	assert.Equal(t, "export", SymbolExport.String())
	assert.Equal(t, "import", SymbolImport.String())
	assert.Equal(t, "unknown", SymbolKind(9).String())
}
