package interpreter

type Class struct {
	name       string
	superclass *Class
	methods    map[string]*Function
}

func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{name: name, superclass: superclass, methods: methods}
}

func (c *Class) String() string {
	return "<class " + c.name + ">"
}

// Arity matches the initializer, which may be inherited.
func (c *Class) Arity() int {
	if initializer := c.FindMethod("init"); initializer != nil {
		return initializer.Arity()
	}
	return 0
}

// Call constructs an instance and runs its initializer when one exists
// anywhere on the inheritance chain.
func (c *Class) Call(i *Interpreter, args []any) (any, error) {
	instance := NewInstance(c)
	if initializer := c.FindMethod("init"); initializer != nil {
		if _, err := initializer.Bind(instance).Call(i, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// FindMethod walks the inheritance chain from the class upwards.
func (c *Class) FindMethod(methodName string) *Function {
	if method, ok := c.methods[methodName]; ok {
		return method
	}
	if c.superclass != nil {
		return c.superclass.FindMethod(methodName)
	}
	return nil
}
