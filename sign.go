// Package sign reads Sign source into an abstract syntax tree.
//
// Sign is an indentation sensitive expression language. This package glues
// the lexer and the parser together and adds a few helpers on top of the
// tree they produce.
package sign

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/xiam/sign/ast"
	"github.com/xiam/sign/lexer"
	"github.com/xiam/sign/parser"
)

// Reader parses Sign source from an io.Reader.
type Reader struct {
	r    io.Reader
	name string
	opts []parser.Option
}

// Parse parses the given source. Errors carry a snippet of the offending
// line.
func Parse(in []byte, opts ...parser.Option) (*ast.Program, error) {
	r := NewReader(bytes.NewReader(in), opts...)
	return r.Parse()
}

// ParseFile reads and parses the named file.
func ParseFile(name string, opts ...parser.Option) (*ast.Program, error) {
	in, err := ioutil.ReadFile(name)
	if err != nil {
		return nil, err
	}
	r := NewReader(bytes.NewReader(in), opts...)
	r.name = name
	return r.Parse()
}

// NewReader creates a Reader, opts are passed to the parser.
func NewReader(r io.Reader, opts ...parser.Option) *Reader {
	return &Reader{r: r, opts: opts}
}

// Parse reads all the input and parses it.
func (r *Reader) Parse() (*ast.Program, error) {
	in, err := ioutil.ReadAll(r.r)
	if err != nil {
		return nil, err
	}

	tokens, err := lexer.Tokenize(in)
	if err != nil {
		return nil, WrapError(err, r.name, in)
	}

	prog, err := parser.New(tokens, r.opts...).Parse()
	if err != nil {
		return nil, WrapError(err, r.name, in)
	}

	return prog, nil
}
