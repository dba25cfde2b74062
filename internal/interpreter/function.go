package interpreter

import (
	"errors"

	"github.com/littlekuo/glox/internal/syntax"
)

type Function struct {
	declaration   *syntax.Function
	closure       *Environment
	isInitializer bool
}

func NewFunction(declaration *syntax.Function, closure *Environment, isInitializer bool) *Function {
	return &Function{
		declaration:   declaration,
		closure:       closure,
		isInitializer: isInitializer,
	}
}

func (f *Function) Call(i *Interpreter, args []any) (any, error) {
	env := NewEnvironment(f.closure)
	for idx, param := range f.declaration.Params {
		env.define(param.Lexeme, args[idx])
	}
	if err := i.executeBlock(f.declaration.Body, env); err != nil {
		var ret *returnSignal
		if errors.As(err, &ret) {
			// init always hands back the instance, even on a bare return
			if f.isInitializer {
				return f.closure.getAt(0, "this")
			}
			return ret.value, nil
		}
		return nil, err
	}
	if f.isInitializer {
		return f.closure.getAt(0, "this")
	}
	return nil, nil
}

// Bind produces a copy of the method whose closure carries `this`
// bound to the given instance.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.define("this", instance)
	return NewFunction(f.declaration, env, f.isInitializer)
}

func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

func (f *Function) String() string {
	if f.declaration.Name.IsEmpty() {
		return "<anonymous fn>"
	}
	return "<fn " + f.declaration.Name.Lexeme + ">"
}
