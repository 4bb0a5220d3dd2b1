package lox

// Resolver is the static pass that assigns every variable/this/super
// reference its exact lexical scope depth, giving Lox true closure
// semantics instead of the dynamic-chain walk a naive implementation
// would produce (spec.md §4.3). It never evaluates anything; it only
// annotates the AST's Depth fields and reports compile-time errors.
//
// Grounded on the teacher's resolver.go scope-stack discipline, adapted
// to populate inline Depth fields (see ast.go) instead of a
// map[Expr]int, and extended with the two stated bugfixes from spec §9:
// declare/define use comma-ok map lookups (no unguarded scopes[-1][x]),
// and the "own initializer" check only fires when the name is present
// and false in the innermost scope.
type Resolver struct {
	reporter     Reporter
	scopes       []map[string]bool
	currentFn    functionType
	currentClass classType
}

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

func NewResolver(reporter Reporter) *Resolver {
	return &Resolver{reporter: reporter}
}

// Resolve annotates every statement in stmts in place.
func (r *Resolver) Resolve(stmts []Stmt) {
	r.resolveStmts(stmts)
}

func (r *Resolver) resolveStmts(stmts []Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		r.resolveExpr(s.Expression)
	case *PrintStmt:
		r.resolveExpr(s.Expression)
	case *VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)
	case *ReturnStmt:
		if r.currentFn == fnNone {
			r.reporter.ReportResolve(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFn == fnInitializer {
				r.reporter.ReportResolve(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *ClassStmt:
		r.resolveClass(s)
	default:
		panic("lox: resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveClass(s *ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.reporter.ReportResolve(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		fnType := fnMethod
		if method.Name.Lexeme == "init" {
			fnType = fnInitializer
		}
		r.resolveFunction(method, fnType)
	}

	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *FunctionStmt, fnType functionType) {
	enclosingFn := r.currentFn
	r.currentFn = fnType

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFn = enclosingFn
}

func (r *Resolver) resolveExpr(expr Expr) {
	switch e := expr.(type) {
	case *LiteralExpr:
		// nothing to resolve
	case *GroupingExpr:
		r.resolveExpr(e.Inner)
	case *UnaryExpr:
		r.resolveExpr(e.Right)
	case *BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *VariableExpr:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !defined {
				r.reporter.ReportResolve(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		e.Depth = r.resolveLocal(e.Name.Lexeme)
	case *AssignExpr:
		r.resolveExpr(e.Value)
		e.Depth = r.resolveLocal(e.Name.Lexeme)
	case *CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *GetExpr:
		r.resolveExpr(e.Object)
	case *SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ThisExpr:
		if r.currentClass == classNone {
			r.reporter.ReportResolve(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		e.Depth = r.resolveLocal(e.Keyword.Lexeme)
	case *SuperExpr:
		switch r.currentClass {
		case classNone:
			r.reporter.ReportResolve(e.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.reporter.ReportResolve(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		e.Depth = r.resolveLocal(e.Keyword.Lexeme)
	default:
		panic("lox: resolver: unhandled expression type")
	}
}

// resolveLocal scans the scope stack innermost-out and returns the
// distance to the first scope declaring name, or nil if none does (the
// reference is left to resolve dynamically against globals).
func (r *Resolver) resolveLocal(name string) *int {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			depth := len(r.scopes) - 1 - i
			return &depth
		}
	}
	return nil
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.ReportResolve(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}
