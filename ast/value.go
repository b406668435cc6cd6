package ast

import (
	"strconv"
	"strings"
)

// Valuer is implemented by literal nodes that carry a Go value.
type Valuer interface {
	Node
	Value() interface{}
}

// Value returns the number as int64 when it is integral and fits, as
// float64 otherwise, or nil if the text is not a number.
func (n *Number) Value() interface{} {
	text := strings.TrimPrefix(n.Text, "-")
	if len(text) > 1 && text[0] == '0' && strings.ContainsRune("xob", rune(text[1])) {
		if i64, err := strconv.ParseInt(n.Text, 0, 64); err == nil {
			return i64
		}
		if u64, err := strconv.ParseUint(text, 0, 64); err == nil && !strings.HasPrefix(n.Text, "-") {
			return float64(u64)
		}
		return nil
	}
	if !strings.Contains(text, ".") {
		if i64, err := strconv.ParseInt(n.Text, 10, 64); err == nil {
			return i64
		}
	}
	if f64, err := strconv.ParseFloat(n.Text, 64); err == nil {
		return f64
	}
	return nil
}

// Value returns the content of the string
func (n *String) Value() interface{} {
	return n.Text
}

// Value returns the character as a string
func (n *Character) Value() interface{} {
	return string(n.Char)
}

// Value returns the name of the identifier
func (n *Identifier) Value() interface{} {
	return n.Name
}

// Value returns nil
func (n *Unit) Value() interface{} {
	return nil
}

var (
	_ = Valuer(&Number{})
	_ = Valuer(&String{})
	_ = Valuer(&Character{})
	_ = Valuer(&Identifier{})
	_ = Valuer(&Unit{})
)
