package sign

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xiam/sign/lexer"
	"github.com/xiam/sign/parser"
)

// SourceError is a lexical or syntax error together with the source it was
// found in.
type SourceError struct {
	Err    error
	Name   string
	Line   int
	Column int

	src string
}

// WrapError attaches source context to errors that carry a position. Other
// errors are returned as they are.
func WrapError(err error, name string, src []byte) error {
	if err == nil {
		return nil
	}

	se := &SourceError{Err: err, Name: name, src: string(src)}

	var lexErr *lexer.Error
	var parseErr *parser.Error
	switch {
	case errors.As(err, &lexErr):
		se.Line, se.Column = lexErr.Line, lexErr.Column
	case errors.As(err, &parseErr):
		se.Line, se.Column = parseErr.Line, parseErr.Column
	default:
		return err
	}

	return se
}

func (e *SourceError) Error() string {
	return snippet(e.src, e.Name, e.Line, e.Column, message(e.Err))
}

// Unwrap returns the lexer or parser error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

func message(err error) string {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Message
	}
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		return parseErr.Message
	}
	return err.Error()
}

// snippet renders the line with the error, its neighbours and a caret under
// the column. Coordinates are 1-based and clamped to the source.
func snippet(src, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s:%d:%d: %s\n\n", name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%d:%d: %s\n\n", line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", caretPad(lines[line-1], col))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

// caretPad keeps tabs so the caret lines up with the rendered line.
func caretPad(text string, col int) string {
	pad := make([]rune, 0, col)
	for i, r := range []rune(text) {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			pad = append(pad, '\t')
			continue
		}
		pad = append(pad, ' ')
	}
	for len(pad) < col-1 {
		pad = append(pad, ' ')
	}
	return string(pad)
}
