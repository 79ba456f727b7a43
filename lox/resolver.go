package lox

// ResolutionSink receives the scope distance of every local variable
// reference. The interpreter implements it.
type ResolutionSink interface {
	Resolve(expr Expression, depth int)
}

type functionKind int

const (
	functionNone functionKind = iota
	functionFunction
	functionLambda
	functionMethod
	functionInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

type resolver struct {
	sink            ResolutionSink
	scopes          []map[string]bool
	currentFunction functionKind
	currentClass    classKind
	diagnostics     []Diagnostic
}

// Resolve walks stmts without evaluating them and reports the scope distance
// of each local reference to sink. References that match no enclosing local
// scope are left unrecorded and are looked up in globals at run time.
func Resolve(stmts []Statement, sink ResolutionSink) error {
	r := &resolver{sink: sink}
	r.resolveStatements(stmts)
	if len(r.diagnostics) > 0 {
		return &StaticError{Phase: PhaseResolve, Diagnostics: r.diagnostics}
	}
	return nil
}

func (r *resolver) errorAt(tok Token, message string) {
	r.diagnostics = append(r.diagnostics, tokenDiagnostic(tok, message))
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) declare(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.errorAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *resolver) define(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// defineSynthetic binds this or super in the innermost scope.
func (r *resolver) defineSynthetic(name string) {
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *resolver) resolveLocal(expr Expression, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.sink.Resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *resolver) resolveStatements(stmts []Statement) {
	for _, stmt := range stmts {
		r.resolveStatement(stmt)
	}
}

func (r *resolver) resolveStatement(stmt Statement) {
	switch s := stmt.(type) {
	case *BlockStmt:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()
	case *ClassStmt:
		r.resolveClass(s)
	case *ExpressionStmt:
		r.resolveExpression(s.Expr)
	case *FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s.Params, s.Body, functionFunction)
	case *IfStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Then)
		if s.Else != nil {
			r.resolveStatement(s.Else)
		}
	case *PrintStmt:
		r.resolveExpression(s.Expr)
	case *ReturnStmt:
		if r.currentFunction == functionNone {
			r.errorAt(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == functionInitializer {
				r.errorAt(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpression(s.Value)
		}
	case *VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name)
	case *WhileStmt:
		r.resolveExpression(s.Condition)
		if s.LoopVar != nil {
			r.beginScope()
			r.declare(*s.LoopVar)
			r.define(*s.LoopVar)
			r.resolveStatement(s.Body)
			r.endScope()
		} else {
			r.resolveStatement(s.Body)
		}
		if s.Increment != nil {
			r.resolveExpression(s.Increment)
		}
	}
}

func (r *resolver) resolveClass(s *ClassStmt) {
	enclosing := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosing }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errorAt(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpression(s.Superclass)
		r.beginScope()
		r.defineSynthetic("super")
	}

	r.beginScope()
	r.defineSynthetic("this")
	for _, method := range s.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method.Params, method.Body, kind)
	}
	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}
}

func (r *resolver) resolveFunction(params []Token, body []Statement, kind functionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind
	r.beginScope()
	for _, param := range params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(body)
	r.endScope()
	r.currentFunction = enclosing
}

func (r *resolver) resolveExpression(expr Expression) {
	switch e := expr.(type) {
	case *AssignExpr:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)
	case *BinaryExpr:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *CallExpr:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpression(arg)
		}
	case *GetExpr:
		r.resolveExpression(e.Object)
	case *GroupingExpr:
		r.resolveExpression(e.Inner)
	case *LambdaExpr:
		r.resolveFunction(e.Params, e.Body, functionLambda)
	case *LiteralExpr:
	case *LogicalExpr:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *SetExpr:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
	case *SuperExpr:
		switch r.currentClass {
		case classNone:
			r.errorAt(e.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.errorAt(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, "super")
	case *ThisExpr:
		if r.currentClass == classNone {
			r.errorAt(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, "this")
	case *UnaryExpr:
		r.resolveExpression(e.Right)
	case *VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.errorAt(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)
	}
}
