package interpreter

import (
	"fmt"

	"github.com/littlekuo/glox/internal/diag"
	"github.com/littlekuo/glox/internal/syntax"
)

type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcInitializer
	funcMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver walks the tree between parsing and execution. It tells the
// interpreter how many scopes lie between each variable use and its
// declaration, and rejects code that is structurally wrong, such as
// `return` at the top level or `this` outside a class.
type Resolver struct {
	interpreter     *Interpreter
	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
	diags           []diag.Diagnostic
}

func NewResolver(interpreter *Interpreter) *Resolver {
	return &Resolver{
		interpreter: interpreter,
		scopes:      make([]map[string]bool, 0),
	}
}

// Resolve analyzes a whole program and reports every resolution error
// it finds, in source order.
func (r *Resolver) Resolve(stmts []syntax.Stmt) []diag.Diagnostic {
	r.resolveStmts(stmts)
	return r.diags
}

func (r *Resolver) resolveStmts(statements []syntax.Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(statement syntax.Stmt) {
	switch stmt := statement.(type) {
	case *syntax.Expression:
		r.resolveExpr(stmt.Expression)
	case *syntax.Print:
		r.resolveExpr(stmt.Expression)
	case *syntax.Var:
		r.declare(stmt.Name)
		if stmt.Initializer != nil {
			r.resolveExpr(stmt.Initializer)
		}
		r.define(stmt.Name)
	case *syntax.Block:
		r.beginScope()
		r.resolveStmts(stmt.Statements)
		r.endScope()
	case *syntax.If:
		r.resolveExpr(stmt.Condition)
		r.resolveStmt(stmt.ThenBranch)
		if stmt.ElseBranch != nil {
			r.resolveStmt(stmt.ElseBranch)
		}
	case *syntax.While:
		r.resolveExpr(stmt.Condition)
		r.resolveStmt(stmt.Body)
	case *syntax.For:
		// the loop header is one scope, matching the per-iteration
		// environment the interpreter runs the clauses in
		r.beginScope()
		if stmt.Initializer != nil {
			r.resolveStmt(stmt.Initializer)
		}
		if stmt.Condition != nil {
			r.resolveExpr(stmt.Condition)
		}
		if stmt.Increment != nil {
			r.resolveExpr(stmt.Increment)
		}
		r.resolveStmt(stmt.Body)
		r.endScope()
	case *syntax.Break:
	case *syntax.Continue:
	case *syntax.Function:
		r.declare(stmt.Name)
		r.define(stmt.Name)
		r.resolveFunction(stmt, funcFunction)
	case *syntax.Return:
		if r.currentFunction == funcNone {
			r.errorAt(stmt.Keyword, "can't return from top-level code")
		}
		if stmt.Value != nil {
			if r.currentFunction == funcInitializer {
				r.errorAt(stmt.Keyword, "can't return a value from an initializer")
			}
			r.resolveExpr(stmt.Value)
		}
	case *syntax.Class:
		r.resolveClass(stmt)
	default:
		panic(fmt.Sprintf("unexpected statement type %T", statement))
	}
}

func (r *Resolver) resolveClass(stmt *syntax.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.errorAt(stmt.Superclass.Name, "a class can't inherit from itself")
		}
		r.currentClass = classSubclass
		r.resolveExpr(stmt.Superclass)
		r.beginScope()
		r.peek()["super"] = true
	}

	r.beginScope()
	r.peek()["this"] = true
	for _, method := range stmt.Methods {
		declaredType := funcMethod
		if method.Name.Lexeme == "init" {
			declaredType = funcInitializer
		}
		r.resolveFunction(method, declaredType)
	}
	r.endScope()

	if stmt.Superclass != nil {
		r.endScope()
	}
}

func (r *Resolver) resolveExpr(expression syntax.Expr) {
	switch expr := expression.(type) {
	case *syntax.Literal:
	case *syntax.Grouping:
		r.resolveExpr(expr.Expression)
	case *syntax.Variable:
		if len(r.scopes) > 0 {
			if initialized, ok := r.peek()[expr.Name.Lexeme]; ok && !initialized {
				r.errorAt(expr.Name,
					fmt.Sprintf("can't read local variable [%s] in its own initializer", expr.Name.Lexeme))
			}
		}
		r.resolveLocal(expr, expr.Name)
	case *syntax.Assign:
		r.resolveExpr(expr.Value)
		r.resolveLocal(expr, expr.Name)
	case *syntax.Unary:
		r.resolveExpr(expr.Right)
	case *syntax.Binary:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case *syntax.Logical:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case *syntax.Call:
		r.resolveExpr(expr.Callee)
		for _, argument := range expr.Arguments {
			r.resolveExpr(argument)
		}
	case *syntax.Get:
		r.resolveExpr(expr.Object)
	case *syntax.Set:
		r.resolveExpr(expr.Value)
		r.resolveExpr(expr.Object)
	case *syntax.This:
		if r.currentClass == classNone {
			r.errorAt(expr.Keyword, "can't use 'this' outside of a class")
			return
		}
		r.resolveLocal(expr, expr.Keyword)
	case *syntax.Super:
		if r.currentClass == classNone {
			r.errorAt(expr.Keyword, "can't use 'super' outside of a class")
		} else if r.currentClass != classSubclass {
			r.errorAt(expr.Keyword, "can't use 'super' in a class with no superclass")
		}
		r.resolveLocal(expr, expr.Keyword)
	case *syntax.AnonymousFunction:
		r.resolveFunction(expr.Decl, funcFunction)
	default:
		panic(fmt.Sprintf("unexpected expression type %T", expression))
	}
}

func (r *Resolver) resolveFunction(f *syntax.Function, declaredType functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = declaredType
	r.beginScope()
	for _, param := range f.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(f.Body)
	r.endScope()
	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveLocal(expr syntax.Expr, name syntax.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.interpreter.resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *Resolver) beginScope() {
	newScope := make(map[string]bool)
	r.scopes = append(r.scopes, newScope)
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name syntax.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.peek()
	if _, ok := scope[name.Lexeme]; ok {
		r.errorAt(name, fmt.Sprintf("re-declare variable [%s]", name.Lexeme))
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name syntax.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.peek()
	scope[name.Lexeme] = true
}

func (r *Resolver) peek() map[string]bool {
	if len(r.scopes) == 0 {
		panic("No scopes")
	}
	return r.scopes[len(r.scopes)-1]
}

func (r *Resolver) errorAt(token syntax.Token, message string) {
	where := " at end"
	if token.TokenType != syntax.TOKEN_EOF {
		where = fmt.Sprintf(" at '%s'", token.Lexeme)
	}
	r.diags = append(r.diags, diag.NewAt(diag.CATEGORY_RESOLUTION, token.Line, where, message))
}
