package interpreter

import (
	"fmt"

	"github.com/littlekuo/glox/internal/syntax"
)

type Instance struct {
	class  *Class
	fields map[string]any
}

func NewInstance(class *Class) *Instance {
	return &Instance{
		class:  class,
		fields: make(map[string]any),
	}
}

func (in *Instance) String() string {
	return "<instance of " + in.class.name + ">"
}

// Get prefers a field; otherwise it binds a method from the class
// chain at access time.
func (in *Instance) Get(name syntax.Token) (any, error) {
	if value, ok := in.fields[name.Lexeme]; ok {
		return value, nil
	}
	if method := in.class.FindMethod(name.Lexeme); method != nil {
		return method.Bind(in), nil
	}
	return nil, fmt.Errorf("undefined property '%s'", name.Lexeme)
}

// Set always writes a field, even when a method of the same name
// exists on the class.
func (in *Instance) Set(name syntax.Token, value any) {
	in.fields[name.Lexeme] = value
}
