package interpreter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/littlekuo/glox/internal/syntax"
)

// RuntimeError halts execution at the offending token. Unlike the
// static phases, the interpreter stops at the first one.
type RuntimeError struct {
	Token   syntax.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Control flow travels through the error return path as dedicated
// signal values until the enclosing construct consumes them.
type returnSignal struct {
	value any
}

func (s *returnSignal) Error() string {
	return "return outside function"
}

type breakSignal struct{}

func (s *breakSignal) Error() string {
	return "break outside loop"
}

type continueSignal struct{}

func (s *continueSignal) Error() string {
	return "continue outside loop"
}

type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[syntax.Expr]int
	stdout  io.Writer
}

// NewInterpreter builds an interpreter whose print statements write to
// stdout. Pass nil to use os.Stdout.
func NewInterpreter(stdout io.Writer) *Interpreter {
	if stdout == nil {
		stdout = os.Stdout
	}
	globals := NewEnvironment(nil)
	defineNatives(globals)
	return &Interpreter{
		globals: globals,
		env:     globals,
		locals:  make(map[syntax.Expr]int),
		stdout:  stdout,
	}
}

// resolve records how many scopes separate a variable use from its
// declaration. The resolver calls it for every local it binds.
func (i *Interpreter) resolve(expr syntax.Expr, depth int) {
	i.locals[expr] = depth
}

// Interpret runs the program and returns the first runtime error, if
// any. Global state survives across calls, so a session can feed
// several programs to one interpreter.
func (i *Interpreter) Interpret(stmts []syntax.Stmt) error {
	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(statement syntax.Stmt) error {
	switch stmt := statement.(type) {
	case *syntax.Expression:
		_, err := i.evaluate(stmt.Expression)
		return err
	case *syntax.Print:
		value, err := i.evaluate(stmt.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.stdout, stringify(value))
		return nil
	case *syntax.Var:
		var value any
		if stmt.Initializer != nil {
			var err error
			value, err = i.evaluate(stmt.Initializer)
			if err != nil {
				return err
			}
		}
		i.env.define(stmt.Name.Lexeme, value)
		return nil
	case *syntax.Block:
		return i.executeBlock(stmt.Statements, NewEnvironment(i.env))
	case *syntax.If:
		cond, err := i.evaluate(stmt.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return i.execute(stmt.ThenBranch)
		}
		if stmt.ElseBranch != nil {
			return i.execute(stmt.ElseBranch)
		}
		return nil
	case *syntax.While:
		return i.executeWhile(stmt)
	case *syntax.For:
		return i.executeFor(stmt)
	case *syntax.Break:
		return &breakSignal{}
	case *syntax.Continue:
		return &continueSignal{}
	case *syntax.Function:
		i.env.define(stmt.Name.Lexeme, NewFunction(stmt, i.env, false))
		return nil
	case *syntax.Return:
		var value any
		if stmt.Value != nil {
			var err error
			value, err = i.evaluate(stmt.Value)
			if err != nil {
				return err
			}
		}
		return &returnSignal{value: value}
	case *syntax.Class:
		return i.executeClass(stmt)
	}
	panic(fmt.Sprintf("unexpected statement type %T", statement))
}

func (i *Interpreter) executeBlock(stmts []syntax.Stmt, env *Environment) error {
	previousEnv := i.env
	i.env = env
	defer func() {
		i.env = previousEnv
	}()
	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeWhile(stmt *syntax.While) error {
	for {
		cond, err := i.evaluate(stmt.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if err := i.execute(stmt.Body); err != nil {
			var brk *breakSignal
			if errors.As(err, &brk) {
				return nil
			}
			var cont *continueSignal
			if errors.As(err, &cont) {
				continue
			}
			return err
		}
	}
}

// executeFor runs each iteration in its own copy of the loop scope, so
// closures made in the body capture that iteration's variables. The
// increment already runs in the next iteration's copy.
func (i *Interpreter) executeFor(stmt *syntax.For) error {
	previousEnv := i.env
	defer func() { i.env = previousEnv }()

	i.env = NewEnvironment(previousEnv)
	if stmt.Initializer != nil {
		if err := i.execute(stmt.Initializer); err != nil {
			return err
		}
	}
	for {
		if stmt.Condition != nil {
			cond, err := i.evaluate(stmt.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
		}
		if err := i.execute(stmt.Body); err != nil {
			var brk *breakSignal
			if errors.As(err, &brk) {
				return nil
			}
			var cont *continueSignal
			if !errors.As(err, &cont) {
				return err
			}
		}
		i.env = i.env.fork()
		if stmt.Increment != nil {
			if _, err := i.evaluate(stmt.Increment); err != nil {
				return err
			}
		}
	}
}

func (i *Interpreter) executeClass(stmt *syntax.Class) error {
	var superclass *Class
	if stmt.Superclass != nil {
		value, err := i.evaluate(stmt.Superclass)
		if err != nil {
			return err
		}
		var ok bool
		superclass, ok = value.(*Class)
		if !ok {
			return &RuntimeError{Token: stmt.Superclass.Name, Message: "superclass must be a class"}
		}
	}

	// two-step binding lets methods refer to the class by name
	i.env.define(stmt.Name.Lexeme, nil)

	methodEnv := i.env
	if superclass != nil {
		methodEnv = NewEnvironment(methodEnv)
		methodEnv.define("super", superclass)
	}

	methods := make(map[string]*Function, len(stmt.Methods))
	for _, method := range stmt.Methods {
		methods[method.Name.Lexeme] = NewFunction(method, methodEnv, method.Name.Lexeme == "init")
	}

	if err := i.env.assign(stmt.Name.Lexeme, NewClass(stmt.Name.Lexeme, superclass, methods)); err != nil {
		return &RuntimeError{Token: stmt.Name, Message: err.Error()}
	}
	return nil
}

func (i *Interpreter) evaluate(expression syntax.Expr) (any, error) {
	switch expr := expression.(type) {
	case *syntax.Literal:
		return expr.Value, nil
	case *syntax.Grouping:
		return i.evaluate(expr.Expression)
	case *syntax.Variable:
		return i.lookUpVariable(expr.Name, expr)
	case *syntax.Assign:
		value, err := i.evaluate(expr.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := i.locals[expr]; ok {
			if aErr := i.env.assignAt(distance, expr.Name.Lexeme, value); aErr != nil {
				return nil, &RuntimeError{Token: expr.Name, Message: aErr.Error()}
			}
		} else if aErr := i.globals.assign(expr.Name.Lexeme, value); aErr != nil {
			return nil, &RuntimeError{Token: expr.Name, Message: aErr.Error()}
		}
		return value, nil
	case *syntax.Unary:
		return i.evaluateUnary(expr)
	case *syntax.Binary:
		return i.evaluateBinary(expr)
	case *syntax.Logical:
		left, err := i.evaluate(expr.Left)
		if err != nil {
			return nil, err
		}
		if expr.Operator.TokenType == syntax.TOKEN_OR {
			if isTruthy(left) {
				return left, nil
			}
		} else if !isTruthy(left) {
			return left, nil
		}
		return i.evaluate(expr.Right)
	case *syntax.Call:
		return i.evaluateCall(expr)
	case *syntax.Get:
		object, err := i.evaluate(expr.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, &RuntimeError{Token: expr.Name, Message: "only instances have properties"}
		}
		value, gErr := instance.Get(expr.Name)
		if gErr != nil {
			return nil, &RuntimeError{Token: expr.Name, Message: gErr.Error()}
		}
		return value, nil
	case *syntax.Set:
		object, err := i.evaluate(expr.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, &RuntimeError{Token: expr.Name, Message: "only instances have fields"}
		}
		value, err := i.evaluate(expr.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(expr.Name, value)
		return value, nil
	case *syntax.This:
		return i.lookUpVariable(expr.Keyword, expr)
	case *syntax.Super:
		return i.evaluateSuper(expr)
	case *syntax.AnonymousFunction:
		return NewFunction(expr.Decl, i.env, false), nil
	}
	panic(fmt.Sprintf("unexpected expression type %T", expression))
}

func (i *Interpreter) evaluateUnary(expr *syntax.Unary) (any, error) {
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.TokenType {
	case syntax.TOKEN_MINUS:
		value, ok := right.(float64)
		if !ok {
			return nil, &RuntimeError{Token: expr.Operator, Message: "operand must be a number"}
		}
		return -value, nil
	case syntax.TOKEN_BANG:
		return !isTruthy(right), nil
	}
	panic(fmt.Sprintf("unexpected unary operator %s", expr.Operator.Lexeme))
}

func (i *Interpreter) evaluateBinary(expr *syntax.Binary) (any, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	op := expr.Operator
	switch op.TokenType {
	case syntax.TOKEN_PLUS:
		if lNum, ok := left.(float64); ok {
			if rNum, ok_ := right.(float64); ok_ {
				return lNum + rNum, nil
			}
		}
		if lStr, ok := left.(string); ok {
			if rStr, ok_ := right.(string); ok_ {
				return lStr + rStr, nil
			}
		}
		return nil, &RuntimeError{Token: op, Message: "operands must be two numbers or two strings"}
	case syntax.TOKEN_MINUS:
		lNum, rNum, cErr := checkNumberOperands(op, left, right)
		if cErr != nil {
			return nil, cErr
		}
		return lNum - rNum, nil
	case syntax.TOKEN_STAR:
		lNum, rNum, cErr := checkNumberOperands(op, left, right)
		if cErr != nil {
			return nil, cErr
		}
		return lNum * rNum, nil
	case syntax.TOKEN_SLASH:
		lNum, rNum, cErr := checkNumberOperands(op, left, right)
		if cErr != nil {
			return nil, cErr
		}
		if rNum == 0 {
			return nil, &RuntimeError{Token: op, Message: "division by zero"}
		}
		return lNum / rNum, nil
	case syntax.TOKEN_GREATER:
		lNum, rNum, cErr := checkNumberOperands(op, left, right)
		if cErr != nil {
			return nil, cErr
		}
		return lNum > rNum, nil
	case syntax.TOKEN_GREATER_EQUAL:
		lNum, rNum, cErr := checkNumberOperands(op, left, right)
		if cErr != nil {
			return nil, cErr
		}
		return lNum >= rNum, nil
	case syntax.TOKEN_LESS:
		lNum, rNum, cErr := checkNumberOperands(op, left, right)
		if cErr != nil {
			return nil, cErr
		}
		return lNum < rNum, nil
	case syntax.TOKEN_LESS_EQUAL:
		lNum, rNum, cErr := checkNumberOperands(op, left, right)
		if cErr != nil {
			return nil, cErr
		}
		return lNum <= rNum, nil
	case syntax.TOKEN_EQUAL_EQUAL:
		return isEqual(left, right), nil
	case syntax.TOKEN_BANG_EQUAL:
		return !isEqual(left, right), nil
	}
	panic(fmt.Sprintf("unexpected binary operator %s", op.Lexeme))
}

func checkNumberOperands(operator syntax.Token, left any, right any) (float64, float64, error) {
	lNum, lOk := left.(float64)
	rNum, rOk := right.(float64)
	if !lOk || !rOk {
		return 0, 0, &RuntimeError{Token: operator, Message: "operands must be numbers"}
	}
	return lNum, rNum, nil
}

func (i *Interpreter) evaluateCall(expr *syntax.Call) (any, error) {
	callee, err := i.evaluate(expr.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]any, 0, len(expr.Arguments))
	for _, argument := range expr.Arguments {
		arg, aErr := i.evaluate(argument)
		if aErr != nil {
			return nil, aErr
		}
		args = append(args, arg)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Token: expr.Paren, Message: "can only call functions and classes"}
	}
	if len(args) != callable.Arity() {
		return nil, &RuntimeError{
			Token:   expr.Paren,
			Message: fmt.Sprintf("expected %d arguments but got %d", callable.Arity(), len(args)),
		}
	}
	return callable.Call(i, args)
}

func (i *Interpreter) evaluateSuper(expr *syntax.Super) (any, error) {
	distance, ok := i.locals[expr]
	if !ok {
		return nil, &RuntimeError{Token: expr.Keyword, Message: "can't use 'super' outside of a class"}
	}
	superValue, err := i.env.getAt(distance, "super")
	if err != nil {
		return nil, &RuntimeError{Token: expr.Keyword, Message: err.Error()}
	}
	superclass := superValue.(*Class)

	// "this" lives one scope inside the one holding "super"
	thisValue, err := i.env.getAt(distance-1, "this")
	if err != nil {
		return nil, &RuntimeError{Token: expr.Keyword, Message: err.Error()}
	}
	instance := thisValue.(*Instance)

	method := superclass.FindMethod(expr.Method.Lexeme)
	if method == nil {
		return nil, &RuntimeError{
			Token:   expr.Method,
			Message: fmt.Sprintf("undefined property '%s'", expr.Method.Lexeme),
		}
	}
	return method.Bind(instance), nil
}

func (i *Interpreter) lookUpVariable(name syntax.Token, expr syntax.Expr) (any, error) {
	if distance, ok := i.locals[expr]; ok {
		value, err := i.env.getAt(distance, name.Lexeme)
		if err != nil {
			return nil, &RuntimeError{Token: name, Message: err.Error()}
		}
		return value, nil
	}
	value, err := i.globals.get(name.Lexeme)
	if err != nil {
		return nil, &RuntimeError{Token: name, Message: err.Error()}
	}
	return value, nil
}
