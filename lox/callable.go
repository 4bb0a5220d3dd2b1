package lox

import (
	"errors"
	"fmt"
)

// Function is a user-defined function or method value: a declaration
// paired with the environment active at its definition (its closure).
// Grounded on the teacher's LoxFunction/callable.go, generalized to
// carry the is-initializer flag's `this`-returning contract explicitly.
type Function struct {
	declaration *FunctionStmt
	closure     *Environment
	isInit      bool
}

func newFunction(decl *FunctionStmt, closure *Environment, isInit bool) *Function {
	return &Function{declaration: decl, closure: closure, isInit: isInit}
}

func (f *Function) Arity() int { return len(f.declaration.Params) }

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.declaration.Name.Lexeme) }

// Call binds parameters in a fresh frame enclosing the closure and
// executes the body. A `return` unwinds via returnSignal; an
// initializer always yields `this`, whether by an explicit early
// `return;` or by falling off the end (spec.md §4.5).
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.declaration.Body, env)
	if err != nil {
		var ret *returnSignal
		if errors.As(err, &ret) {
			if f.isInit {
				return f.closure.GetAt(0, "this"), nil
			}
			return ret.Value, nil
		}
		return nil, err
	}

	if f.isInit {
		return f.closure.GetAt(0, "this"), nil
	}
	return Nil{}, nil
}

// bind produces a new Function whose closure is a fresh one-slot frame
// defining `this`, used both for ordinary method lookup (Instance.Get)
// and for `super.method` resolution.
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return newFunction(f.declaration, env, f.isInit)
}

// Class is a Lox class value: immutable once constructed, single
// inheritance, callable to construct an Instance.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

func (c *Class) String() string { return c.Name }

// FindMethod walks the superclass chain for name.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity equals the arity of `init` if present, else 0.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance and, if the class (or an ancestor)
// defines `init`, runs it bound to the new instance before returning it.
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// NativeFn wraps a host Go function as a Lox callable (e.g. `clock`).
type NativeFn struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []Value) (Value, error)
}

func (n *NativeFn) Arity() int { return n.arity }

// String always returns the bare literal, unlike Function.String above:
// natives never interpolate their name (original_source/clock.py's
// __str__ returns exactly "<native fn>").
func (n *NativeFn) String() string { return "<native fn>" }

func (n *NativeFn) Call(in *Interpreter, args []Value) (Value, error) {
	return n.fn(in, args)
}
