// Package driver ties the pipeline together: it normalizes the
// source, scans, parses, resolves and finally interprets, collecting
// the diagnostics of every stage along the way.
package driver

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/unicode/norm"

	"github.com/littlekuo/glox/internal/diag"
	"github.com/littlekuo/glox/internal/interpreter"
	"github.com/littlekuo/glox/internal/syntax"
)

// ResultKind classifies the outcome of a Run.
type ResultKind int

const (
	RunOK ResultKind = iota
	RunCompileError
	RunRuntimeError
)

// Result is the outcome of running one chunk of source. Diagnostics is
// empty for RunOK, holds every static error for RunCompileError, and
// exactly one entry for RunRuntimeError.
type Result struct {
	Kind        ResultKind
	Diagnostics []diag.Diagnostic
}

// Session owns an interpreter whose global state persists across Run
// calls, so a REPL can keep building on earlier definitions.
type Session struct {
	interp *interpreter.Interpreter
}

// NewSession builds a session whose print output goes to stdout. Pass
// nil to use os.Stdout.
func NewSession(stdout io.Writer) *Session {
	return &Session{
		interp: interpreter.NewInterpreter(stdout),
	}
}

// Run pushes one chunk of source through the full pipeline. Errors
// from all three static stages accumulate, and nothing executes unless
// the chunk is clean.
func (s *Session) Run(source string) Result {
	src := norm.NFC.String(source)

	scanner := syntax.NewScanner(src)
	tokens := scanner.ScanTokens()

	parser := syntax.NewParser(tokens)
	stmts := parser.Parse()

	resolver := interpreter.NewResolver(s.interp)
	resolveDiags := resolver.Resolve(stmts)

	diags := make([]diag.Diagnostic, 0)
	diags = append(diags, scanner.Diagnostics()...)
	diags = append(diags, parser.Diagnostics()...)
	diags = append(diags, resolveDiags...)
	if len(diags) > 0 {
		return Result{Kind: RunCompileError, Diagnostics: diags}
	}

	if err := s.interp.Interpret(stmts); err != nil {
		return Result{
			Kind:        RunRuntimeError,
			Diagnostics: []diag.Diagnostic{runtimeDiagnostic(err)},
		}
	}
	return Result{Kind: RunOK}
}

func runtimeDiagnostic(err error) diag.Diagnostic {
	var rErr *interpreter.RuntimeError
	if errors.As(err, &rErr) {
		where := ""
		if !rErr.Token.IsEmpty() {
			where = fmt.Sprintf(" at '%s'", rErr.Token.Lexeme)
		}
		return diag.NewAt(diag.CATEGORY_RUNTIME, rErr.Token.Line, where, rErr.Message)
	}
	return diag.New(diag.CATEGORY_RUNTIME, 0, err.Error())
}
