package lox

import (
	"fmt"
	"io"
	"os"
)

// Interpreter walks the AST to produce effects: arithmetic, control
// flow, calls, OO, and error reporting (spec.md §4.5). Traversal is
// strictly left-to-right for both operands and statement sequences.
// Grounded on the teacher's evaluate.go/run.go/callable.go, merged into
// a single type-switch-dispatched walker and generalized to:
//   - take an injected Reporter instead of calling os.Exit,
//   - carry return as a distinguished error value (returnSignal)
//     instead of a second (Value, bool) return threaded through every
//     method signature,
//   - finish class/Get/Set/this/super, which the teacher's evaluator
//     never reached.
type Interpreter struct {
	globals  *Environment
	env      *Environment
	reporter Reporter
	Stdout   io.Writer
}

// NewInterpreter constructs an Interpreter whose globals frame preloads
// the `clock` native, printing to os.Stdout.
func NewInterpreter(reporter Reporter) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", clockNative())
	return &Interpreter{globals: globals, env: globals, reporter: reporter, Stdout: os.Stdout}
}

// Interpret executes a resolved program. On the first uncaught runtime
// error it reports it and stops (spec §7's fatal-to-top-level policy);
// it otherwise runs every statement to completion in source order.
func (in *Interpreter) Interpret(stmts []Stmt) {
	for _, stmt := range stmts {
		if err := in.exec(stmt); err != nil {
			if rerr, ok := err.(*RuntimeErr); ok {
				in.reporter.ReportRuntime(rerr)
			}
			return
		}
	}
}

// --- statement execution ---

func (in *Interpreter) exec(stmt Stmt) error {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		_, err := in.eval(s.Expression)
		return err
	case *PrintStmt:
		v, err := in.eval(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.Stdout, stringify(v))
		return nil
	case *VarStmt:
		var value Value = Nil{}
		if s.Initializer != nil {
			v, err := in.eval(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.env.Define(s.Name.Lexeme, value)
		return nil
	case *BlockStmt:
		return in.executeBlock(s.Statements, NewEnvironment(in.env))
	case *IfStmt:
		cond, err := in.eval(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return in.exec(s.Then)
		} else if s.Else != nil {
			return in.exec(s.Else)
		}
		return nil
	case *WhileStmt:
		for {
			cond, err := in.eval(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := in.exec(s.Body); err != nil {
				return err
			}
		}
	case *FunctionStmt:
		in.env.Define(s.Name.Lexeme, newFunction(s, in.env, false))
		return nil
	case *ReturnStmt:
		var value Value = Nil{}
		if s.Value != nil {
			v, err := in.eval(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{Value: value}
	case *ClassStmt:
		return in.execClass(s)
	default:
		panic("lox: interpreter: unhandled statement type")
	}
}

// executeBlock runs stmts with env as the current environment,
// restoring the previous environment on any exit (normal, return, or
// error) per spec §4.5.
func (in *Interpreter) executeBlock(stmts []Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		if err := in.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execClass(s *ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := in.eval(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return &RuntimeErr{Token: s.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	in.env.Define(s.Name.Lexeme, Nil{})

	classEnv := in.env
	if superclass != nil {
		classEnv = NewEnvironment(in.env)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = newFunction(m, classEnv, m.Name.Lexeme == "init")
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)
	return in.env.Assign(s.Name, class)
}

// --- expression evaluation ---

func (in *Interpreter) eval(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *GroupingExpr:
		return in.eval(e.Inner)
	case *UnaryExpr:
		return in.evalUnary(e)
	case *BinaryExpr:
		return in.evalBinary(e)
	case *LogicalExpr:
		return in.evalLogical(e)
	case *VariableExpr:
		return in.lookUpVariable(e.Name, e.Depth)
	case *AssignExpr:
		return in.evalAssign(e)
	case *CallExpr:
		return in.evalCall(e)
	case *GetExpr:
		return in.evalGet(e)
	case *SetExpr:
		return in.evalSet(e)
	case *ThisExpr:
		return in.lookUpVariable(e.Keyword, e.Depth)
	case *SuperExpr:
		return in.evalSuper(e)
	default:
		panic("lox: interpreter: unhandled expression type")
	}
}

func (in *Interpreter) evalUnary(e *UnaryExpr) (Value, error) {
	right, err := in.eval(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case Bang:
		return Bool(!isTruthy(right)), nil
	case Minus:
		n, ok := asNumber(right)
		if !ok {
			return nil, &RuntimeErr{Token: e.Op, Message: "Operand must be a number."}
		}
		return Number(-n), nil
	}
	panic("lox: interpreter: unreachable unary operator")
}

func (in *Interpreter) evalLogical(e *LogicalExpr) (Value, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Kind == Or {
		if isTruthy(left) {
			return left, nil
		}
	} else { // And
		if !isTruthy(left) {
			return left, nil
		}
	}
	return in.eval(e.Right)
}

func (in *Interpreter) evalBinary(e *BinaryExpr) (Value, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case Plus:
		if a, ok := asNumber(left); ok {
			if b, ok := asNumber(right); ok {
				return Number(a + b), nil
			}
		}
		if a, ok := asString(left); ok {
			if b, ok := asString(right); ok {
				return String(a + b), nil
			}
		}
		return nil, &RuntimeErr{Token: e.Op, Message: "Operands must be two numbers or two strings."}
	case Minus:
		a, b, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Number(a - b), nil
	case Star:
		a, b, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Number(a * b), nil
	case Slash:
		a, b, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Number(a / b), nil
	case Greater:
		a, b, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(a > b), nil
	case GreaterEqual:
		a, b, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(a >= b), nil
	case Less:
		a, b, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(a < b), nil
	case LessEqual:
		a, b, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(a <= b), nil
	case EqualEqual:
		return Bool(isEqual(left, right)), nil
	case BangEqual:
		return Bool(!isEqual(left, right)), nil
	}
	panic("lox: interpreter: unreachable binary operator")
}

func (in *Interpreter) numberOperands(op Token, left, right Value) (float64, float64, error) {
	a, aok := asNumber(left)
	b, bok := asNumber(right)
	if !aok || !bok {
		return 0, 0, &RuntimeErr{Token: op, Message: "Operands must be numbers."}
	}
	return a, b, nil
}

func (in *Interpreter) evalAssign(e *AssignExpr) (Value, error) {
	value, err := in.eval(e.Value)
	if err != nil {
		return nil, err
	}

	if e.Depth != nil {
		in.env.AssignAt(*e.Depth, e.Name.Lexeme, value)
		return value, nil
	}
	if err := in.globals.Assign(e.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (in *Interpreter) lookUpVariable(name Token, depth *int) (Value, error) {
	if depth != nil {
		return in.env.GetAt(*depth, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

func (in *Interpreter) evalCall(e *CallExpr) (Value, error) {
	calleeVal, err := in.eval(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callee, ok := calleeVal.(Callable)
	if !ok {
		return nil, &RuntimeErr{Token: e.Paren, Message: "Can only call functions and classes."}
	}

	if len(args) != callee.Arity() {
		return nil, &RuntimeErr{
			Token:   e.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", callee.Arity(), len(args)),
		}
	}

	return callee.Call(in, args)
}

func (in *Interpreter) evalGet(e *GetExpr) (Value, error) {
	obj, err := in.eval(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, &RuntimeErr{Token: e.Name, Message: "Only instances have properties."}
	}
	return instance.Get(e.Name)
}

func (in *Interpreter) evalSet(e *SetExpr) (Value, error) {
	obj, err := in.eval(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, &RuntimeErr{Token: e.Name, Message: "Only instances have fields."}
	}
	value, err := in.eval(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(e.Name, value)
	return value, nil
}

func (in *Interpreter) evalSuper(e *SuperExpr) (Value, error) {
	distance := *e.Depth
	superclass := in.env.GetAt(distance, "super").(*Class)
	instance := in.env.GetAt(distance-1, "this").(*Instance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, &RuntimeErr{Token: e.Method, Message: "Undefined property '" + e.Method.Lexeme + "'."}
	}
	return method.bind(instance), nil
}
