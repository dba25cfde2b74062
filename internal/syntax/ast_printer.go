package syntax

import (
	"fmt"
	"strings"
)

// AstPrinter renders a syntax tree in a parenthesized prefix form,
// mainly used to inspect what the parser produced.
type AstPrinter struct{}

func (a AstPrinter) Print(expr Expr) string {
	return a.printExpr(expr)
}

// PrintStmts renders a whole program, one statement per line.
func (a AstPrinter) PrintStmts(stmts []Stmt) string {
	lines := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		lines = append(lines, a.printStmt(stmt))
	}
	return strings.Join(lines, "\n")
}

func (a AstPrinter) printExpr(expr Expr) string {
	switch e := expr.(type) {
	case *Literal:
		if e.Value == nil {
			return "nil"
		}
		return fmt.Sprintf("%v", e.Value)
	case *Grouping:
		return a.parenthesize("group", e.Expression)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return a.parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Unary:
		return a.parenthesize(e.Operator.Lexeme, e.Right)
	case *Binary:
		return a.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Logical:
		return a.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Call:
		return a.parenthesize("call", append([]Expr{e.Callee}, e.Arguments...)...)
	case *Get:
		return fmt.Sprintf("(. %s %s)", a.printExpr(e.Object), e.Name.Lexeme)
	case *Set:
		return fmt.Sprintf("(= (. %s %s) %s)", a.printExpr(e.Object), e.Name.Lexeme, a.printExpr(e.Value))
	case *This:
		return "this"
	case *Super:
		return "(super " + e.Method.Lexeme + ")"
	case *AnonymousFunction:
		return a.printFunction("fun", e.Decl)
	}
	panic(fmt.Sprintf("unexpected expression type %T", expr))
}

func (a AstPrinter) printStmt(stmt Stmt) string {
	switch s := stmt.(type) {
	case *Expression:
		return a.parenthesize(";", s.Expression)
	case *Print:
		return a.parenthesize("print", s.Expression)
	case *Var:
		if s.Initializer == nil {
			return "(var " + s.Name.Lexeme + ")"
		}
		return fmt.Sprintf("(var %s %s)", s.Name.Lexeme, a.printExpr(s.Initializer))
	case *Block:
		var builder strings.Builder
		builder.WriteString("(block")
		for _, inner := range s.Statements {
			builder.WriteString(" ")
			builder.WriteString(a.printStmt(inner))
		}
		builder.WriteString(")")
		return builder.String()
	case *If:
		if s.ElseBranch == nil {
			return fmt.Sprintf("(if %s %s)", a.printExpr(s.Condition), a.printStmt(s.ThenBranch))
		}
		return fmt.Sprintf("(if %s %s %s)",
			a.printExpr(s.Condition), a.printStmt(s.ThenBranch), a.printStmt(s.ElseBranch))
	case *While:
		return fmt.Sprintf("(while %s %s)", a.printExpr(s.Condition), a.printStmt(s.Body))
	case *For:
		var builder strings.Builder
		builder.WriteString("(for")
		if s.Initializer != nil {
			builder.WriteString(" " + a.printStmt(s.Initializer))
		}
		if s.Condition != nil {
			builder.WriteString(" " + a.printExpr(s.Condition))
		}
		if s.Increment != nil {
			builder.WriteString(" " + a.printExpr(s.Increment))
		}
		builder.WriteString(" " + a.printStmt(s.Body))
		builder.WriteString(")")
		return builder.String()
	case *Break:
		return "break"
	case *Continue:
		return "continue"
	case *Function:
		return a.printFunction("fun "+s.Name.Lexeme, s)
	case *Return:
		if s.Value == nil {
			return "(return)"
		}
		return a.parenthesize("return", s.Value)
	case *Class:
		var builder strings.Builder
		builder.WriteString("(class " + s.Name.Lexeme)
		if s.Superclass != nil {
			builder.WriteString(" < " + s.Superclass.Name.Lexeme)
		}
		for _, method := range s.Methods {
			builder.WriteString(" ")
			builder.WriteString(a.printFunction("fun "+method.Name.Lexeme, method))
		}
		builder.WriteString(")")
		return builder.String()
	}
	panic(fmt.Sprintf("unexpected statement type %T", stmt))
}

func (a AstPrinter) printFunction(head string, fn *Function) string {
	var builder strings.Builder
	builder.WriteString("(" + head + " (")
	for i, param := range fn.Params {
		if i > 0 {
			builder.WriteString(" ")
		}
		builder.WriteString(param.Lexeme)
	}
	builder.WriteString(")")
	for _, stmt := range fn.Body {
		builder.WriteString(" ")
		builder.WriteString(a.printStmt(stmt))
	}
	builder.WriteString(")")
	return builder.String()
}

func (a AstPrinter) parenthesize(name string, exprs ...Expr) string {
	var builder strings.Builder

	builder.WriteString("(" + name)
	for _, expr := range exprs {
		builder.WriteString(" ")
		builder.WriteString(a.printExpr(expr))
	}
	builder.WriteString(")")

	return builder.String()
}
