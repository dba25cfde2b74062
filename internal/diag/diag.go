// Package diag defines the diagnostics reported by the scanner, the
// parser, the resolver and the interpreter. Every stage accumulates
// diagnostics instead of stopping at the first one, so a single run can
// surface several independent mistakes.
package diag

import "fmt"

// Category tells which stage produced a diagnostic.
type Category int

const (
	CATEGORY_LEXICAL Category = iota + 1
	CATEGORY_SYNTAX
	CATEGORY_RESOLUTION
	CATEGORY_RUNTIME
)

var categoryStr = map[Category]string{
	CATEGORY_LEXICAL:    "lexical",
	CATEGORY_SYNTAX:     "syntax",
	CATEGORY_RESOLUTION: "resolution",
	CATEGORY_RUNTIME:    "runtime",
}

func (c Category) String() string {
	if s, ok := categoryStr[c]; ok {
		return s
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Diagnostic is one reported problem, pinned to a source line.
// Where is an optional location hint such as " at 'foo'" or " at end".
type Diagnostic struct {
	Category Category
	Line     int
	Where    string
	Message  string
}

func New(category Category, line int, message string) Diagnostic {
	return Diagnostic{Category: category, Line: line, Message: message}
}

func NewAt(category Category, line int, where string, message string) Diagnostic {
	return Diagnostic{Category: category, Line: line, Where: where, Message: message}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Error makes a Diagnostic usable as a plain error value.
func (d Diagnostic) Error() string {
	return d.String()
}
