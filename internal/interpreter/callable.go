package interpreter

import "time"

// Callable is anything invocable with parentheses: user functions,
// native functions and classes.
type Callable interface {
	Arity() int
	Call(i *Interpreter, args []any) (any, error)
	String() string
}

// NativeFunction exposes a Go function as a callable value.
type NativeFunction struct {
	name  string
	arity int
	fn    func(i *Interpreter, args []any) (any, error)
}

func NewNativeFunction(name string, arity int, fn func(i *Interpreter, args []any) (any, error)) *NativeFunction {
	return &NativeFunction{name: name, arity: arity, fn: fn}
}

func (n *NativeFunction) Arity() int {
	return n.arity
}

func (n *NativeFunction) Call(i *Interpreter, args []any) (any, error) {
	return n.fn(i, args)
}

func (n *NativeFunction) String() string {
	return "<native fn>"
}

// defineNatives installs the builtin functions into the global scope.
func defineNatives(globals *Environment) {
	globals.define("clock", NewNativeFunction("clock", 0, func(i *Interpreter, args []any) (any, error) {
		return float64(time.Now().UnixNano()) / 1e9, nil
	}))
}
