package lox

import (
	"fmt"
	"strings"
)

// Expr and Stmt are closed tagged unions over the AST node variants;
// per spec.md's Design Notes, this is a plain type switch over a
// concrete pointer type rather than a Visitor-pattern virtual-dispatch
// hierarchy (the teacher's ast.go already leans this way by giving each
// node a String() method directly; golox extends that to evaluation and
// resolution instead of adding a parallel visitor interface).
type Expr interface {
	String() string
}

type Stmt interface {
	String() string
}

// Every reference-bearing expression (Variable, Assign, This, Super)
// carries a Depth populated by the Resolver: nil means "not found in
// any local scope, resolve dynamically against globals at runtime";
// otherwise it is the number of enclosing environment frames between
// the use site and the frame holding the binding. This is the inline-
// field alternative spec.md's Design Notes name instead of a
// map[Expr]int keyed by node identity (the teacher's approach, and the
// Python original's `dict` keyed by id()).

type LiteralExpr struct {
	Value Value
}

func (e *LiteralExpr) String() string { return stringify(e.Value) }

type GroupingExpr struct {
	Inner Expr
}

func (e *GroupingExpr) String() string { return fmt.Sprintf("(group %s)", e.Inner) }

type UnaryExpr struct {
	Op    Token
	Right Expr
}

func (e *UnaryExpr) String() string { return fmt.Sprintf("(%s %s)", e.Op.Lexeme, e.Right) }

type BinaryExpr struct {
	Left  Expr
	Op    Token
	Right Expr
}

func (e *BinaryExpr) String() string { return fmt.Sprintf("(%s %s %s)", e.Op.Lexeme, e.Left, e.Right) }

type LogicalExpr struct {
	Left  Expr
	Op    Token
	Right Expr
}

func (e *LogicalExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Op.Lexeme, e.Left, e.Right)
}

type VariableExpr struct {
	Name  Token
	Depth *int
}

func (e *VariableExpr) String() string { return e.Name.Lexeme }

type AssignExpr struct {
	Name  Token
	Value Expr
	Depth *int
}

func (e *AssignExpr) String() string { return fmt.Sprintf("(= %s %s)", e.Name.Lexeme, e.Value) }

type CallExpr struct {
	Callee Expr
	Paren  Token // closing ')', for arity/runtime-error line numbers
	Args   []Expr
}

func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("(call %s %s)", e.Callee, strings.Join(args, " "))
}

type GetExpr struct {
	Object Expr
	Name   Token
}

func (e *GetExpr) String() string { return fmt.Sprintf("(. %s %s)", e.Object, e.Name.Lexeme) }

type SetExpr struct {
	Object Expr
	Name   Token
	Value  Expr
}

func (e *SetExpr) String() string {
	return fmt.Sprintf("(.= %s %s %s)", e.Object, e.Name.Lexeme, e.Value)
}

type ThisExpr struct {
	Keyword Token
	Depth   *int
}

func (e *ThisExpr) String() string { return "this" }

type SuperExpr struct {
	Keyword Token
	Method  Token
	Depth   *int
}

func (e *SuperExpr) String() string { return fmt.Sprintf("(super.%s)", e.Method.Lexeme) }

// --- statements ---

type ExpressionStmt struct {
	Expression Expr
}

func (s *ExpressionStmt) String() string { return s.Expression.String() + ";" }

type PrintStmt struct {
	Expression Expr
}

func (s *PrintStmt) String() string { return fmt.Sprintf("(print %s)", s.Expression) }

type VarStmt struct {
	Name        Token
	Initializer Expr // nil when absent
}

func (s *VarStmt) String() string {
	if s.Initializer == nil {
		return fmt.Sprintf("(var %s)", s.Name.Lexeme)
	}
	return fmt.Sprintf("(var %s %s)", s.Name.Lexeme, s.Initializer)
}

type BlockStmt struct {
	Statements []Stmt
}

func (s *BlockStmt) String() string {
	sb := strings.Builder{}
	sb.WriteString("{\n")
	for _, d := range s.Statements {
		sb.WriteString("  " + d.String() + "\n")
	}
	sb.WriteByte('}')
	return sb.String()
}

type IfStmt struct {
	Condition  Expr
	Then       Stmt
	Else       Stmt // nil when absent
}

func (s *IfStmt) String() string {
	if s.Else == nil {
		return fmt.Sprintf("(if %s %s)", s.Condition, s.Then)
	}
	return fmt.Sprintf("(if %s %s %s)", s.Condition, s.Then, s.Else)
}

type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (s *WhileStmt) String() string { return fmt.Sprintf("(while %s %s)", s.Condition, s.Body) }

type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

func (s *FunctionStmt) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Lexeme
	}
	return fmt.Sprintf("(fun %s(%s))", s.Name.Lexeme, strings.Join(params, ", "))
}

type ReturnStmt struct {
	Keyword Token
	Value   Expr // nil for bare `return;`
}

func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "(return)"
	}
	return fmt.Sprintf("(return %s)", s.Value)
}

type ClassStmt struct {
	Name       Token
	Superclass *VariableExpr // nil when no superclass
	Methods    []*FunctionStmt
}

func (s *ClassStmt) String() string {
	sb := strings.Builder{}
	sb.WriteString("(class " + s.Name.Lexeme)
	if s.Superclass != nil {
		sb.WriteString(" < " + s.Superclass.Name.Lexeme)
	}
	for _, m := range s.Methods {
		sb.WriteString(" " + m.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
