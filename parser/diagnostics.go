package parser

import (
	"fmt"
)

// Severity tells whether a diagnostic is a warning or an error.
type Severity uint8

// Severities
const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a message about the input, recorded while parsing.
type Diagnostic struct {
	Severity Severity
	Message  string

	Line   int
	Column int

	// Err is the parse error behind an error diagnostic.
	Err error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// Diagnostics is the ordered list of diagnostics of one parse.
type Diagnostics []Diagnostic

// Warnings returns the warning messages, in order.
func (ds Diagnostics) Warnings() []string {
	return ds.messages(SeverityWarning)
}

// Errors returns the error messages, in order.
func (ds Diagnostics) Errors() []string {
	return ds.messages(SeverityError)
}

// HasErrors returns true if at least one error was recorded.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (ds Diagnostics) messages(s Severity) []string {
	out := []string{}
	for _, d := range ds {
		if d.Severity == s {
			out = append(out, d.String())
		}
	}
	return out
}
