package interpreter

import "fmt"

type Environment struct {
	valueMap  map[string]any
	enclosing *Environment
}

func NewEnvironment(e *Environment) *Environment {
	// e is nil means top level
	return &Environment{
		valueMap:  make(map[string]any),
		enclosing: e,
	}
}

// define binds a name in this scope, replacing any previous binding.
// Duplicate locals are rejected earlier, by the resolver.
func (e *Environment) define(name string, val any) {
	e.valueMap[name] = val
}

func (e *Environment) get(name string) (any, error) {
	val, ok := e.valueMap[name]
	if ok {
		return val, nil
	}
	if e.enclosing != nil {
		return e.enclosing.get(name)
	}
	return nil, fmt.Errorf("undefined variable '%s'", name)
}

func (e *Environment) assign(name string, value any) error {
	if _, ok := e.valueMap[name]; ok {
		e.valueMap[name] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.assign(name, value)
	}
	return fmt.Errorf("undefined variable '%s'", name)
}

func (e *Environment) assignAt(distance int, name string, value any) error {
	return e.ancestor(distance).assign(name, value)
}

func (e *Environment) getAt(distance int, name string) (any, error) {
	return e.ancestor(distance).get(name)
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// fork copies the bindings of this scope into a fresh environment that
// shares the same enclosing scope. Loops use it to give every
// iteration its own copy of the loop variables.
func (e *Environment) fork() *Environment {
	next := NewEnvironment(e.enclosing)
	for name, val := range e.valueMap {
		next.valueMap[name] = val
	}
	return next
}
