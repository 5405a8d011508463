package lox

import "fmt"

// loxClass represents a user-defined class. A class acts as a callable whose
// invocation constructs a new instance.
type loxClass struct {
	name    string
	methods map[string]*loxFn
}

func newLoxClass(name string, methods map[string]*loxFn) *loxClass {
	c := new(loxClass)
	c.name = name
	c.methods = methods
	return c
}

func (c *loxClass) findMethod(name string) *loxFn {
	if method, ok := c.methods[name]; ok {
		return method
	}
	return nil
}

// arity mirrors the initializer's arity, a class without an initializer
// takes no arguments.
func (c *loxClass) arity() int {
	init := c.findMethod("init")
	if init == nil {
		return 0
	}
	return init.arity()
}

func (c *loxClass) call(
	in *Interpreter,
	args []interface{},
) (interface{}, error) {
	instance := newLoxInstance(c)
	if init := c.findMethod("init"); init != nil {
		if _, err := init.bind(instance).call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *loxClass) String() string {
	return c.name
}

// loxInstance represents the instantiation of a lox class, it holds the
// instance's state in a fields table.
type loxInstance struct {
	class  *loxClass
	fields map[string]interface{}
}

func newLoxInstance(class *loxClass) *loxInstance {
	instance := new(loxInstance)
	instance.class = class
	instance.fields = make(map[string]interface{})
	return instance
}

// get looks up a property on the instance. Fields shadow methods, a method is
// returned bound to the instance it was accessed through.
func (instance *loxInstance) get(name *Token) (interface{}, error) {
	if value, ok := instance.fields[name.Lexeme]; ok {
		return value, nil
	}
	if method := instance.class.findMethod(name.Lexeme); method != nil {
		return method.bind(instance), nil
	}
	msg := fmt.Sprintf("Undefined property '%s'.", name.Lexeme)
	return nil, NewRuntimeError(name, msg)
}

func (instance *loxInstance) set(name *Token, value interface{}) {
	instance.fields[name.Lexeme] = value
}

func (instance *loxInstance) String() string {
	return fmt.Sprintf("%s instance", instance.class.name)
}
