package lox

import (
	"fmt"
	"strconv"
	"time"
	"unicode"
)

// loxReturn unwinds the statements execution stack when a return statement is
// evaluated. It travels through execBlock as an error until the enclosing
// function call catches it.
type loxReturn struct {
	val interface{}
}

func newLoxReturn(val interface{}) *loxReturn {
	r := new(loxReturn)
	r.val = val
	return r
}

func (r *loxReturn) Error() string {
	return fmt.Sprintf("return %v", stringify(r.val))
}

// loxCallable is implemented by Lox's objects that can be called.
type loxCallable interface {
	arity() int
	call(in *Interpreter, args []interface{}) (interface{}, error)
}

type loxNativeFnClock struct{}

func (fn *loxNativeFnClock) arity() int {
	return 0
}

func (fn *loxNativeFnClock) call(
	in *Interpreter,
	args []interface{},
) (interface{}, error) {
	return time.Since(time.Unix(0, 0)).Seconds(), nil
}

func (fn *loxNativeFnClock) String() string {
	return "<native fn>"
}

// loxFn represents a lox function that can be called
type loxFn struct {
	decl          *FunctionStmt
	closure       *Environment
	isInitializer bool
}

func newLoxFn(decl *FunctionStmt, closure *Environment, isInitializer bool) *loxFn {
	fn := new(loxFn)
	fn.decl = decl
	fn.closure = closure
	fn.isInitializer = isInitializer
	return fn
}

// bind creates a copy of the function whose closure chain is prepended with a
// frame holding `this`, so the instance is visible to the method's body.
func (fn *loxFn) bind(instance *loxInstance) *loxFn {
	env := NewEnvironment(fn.closure)
	env.Define("this", instance)
	return newLoxFn(fn.decl, env, fn.isInitializer)
}

func (fn *loxFn) arity() int {
	return len(fn.decl.Params)
}

func (fn *loxFn) call(
	in *Interpreter,
	args []interface{},
) (interface{}, error) {
	/*
		A function encapsulates its parameters, which means each function get is
		own environment where it stores the encapsulated variables. Each function
		call dynamically creates a new environment, otherwise, recursion would break.
		If there are multiple calls to the same function in play at the same time,
		each needs its own environment, even though they are all calls to the same
		function.
	*/
	env := NewEnvironment(fn.closure)
	for i, param := range fn.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	if err := in.execBlock(fn.decl.Body, env); err != nil {
		if ret, ok := err.(*loxReturn); ok {
			if fn.isInitializer {
				return fn.closure.GetAt(0, "this"), nil
			}
			return ret.val, nil
		}
		return nil, err
	}
	if fn.isInitializer {
		return fn.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

func (fn *loxFn) String() string {
	return fmt.Sprintf("<fn %s>", fn.decl.Name.Lexeme)
}

func stringify(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func isTruthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if v, ok := value.(bool); ok {
		return v
	}
	return true
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isBeginIdent(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}
