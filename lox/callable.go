package lox

// Callable is implemented by script functions, natives and classes.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
	String() string
}

// ScriptFunction is a function, lambda or method value together with the
// environment it closes over.
type ScriptFunction struct {
	Name          string
	Params        []Token
	Body          []Statement
	Closure       *Env
	IsInitializer bool
}

func newFunction(decl *FunctionStmt, closure *Env, isInitializer bool) *ScriptFunction {
	return &ScriptFunction{
		Name:          decl.Name.Lexeme,
		Params:        decl.Params,
		Body:          decl.Body,
		Closure:       closure,
		IsInitializer: isInitializer,
	}
}

func newLambda(expr *LambdaExpr, closure *Env) *ScriptFunction {
	return &ScriptFunction{Params: expr.Params, Body: expr.Body, Closure: closure}
}

func (fn *ScriptFunction) Arity() int { return len(fn.Params) }

func (fn *ScriptFunction) Call(in *Interpreter, args []Value) (Value, error) {
	return in.callFunction(fn, args)
}

func (fn *ScriptFunction) String() string {
	if fn.Name == "" {
		return "<anonymous function>"
	}
	return "<fun " + fn.Name + ">"
}

// Bind returns a copy of fn whose closure defines `this` as inst.
func (fn *ScriptFunction) Bind(inst *Instance) *ScriptFunction {
	env := newEnv(fn.Closure)
	env.Define("this", NewInstance(inst))
	bound := *fn
	bound.Closure = env
	return &bound
}

type BuiltinFunc func(in *Interpreter, args []Value) (Value, error)

// Builtin is a native function registered in the global environment.
type Builtin struct {
	Name  string
	Fn    BuiltinFunc
	arity int
}

func (b *Builtin) Arity() int { return b.arity }

func (b *Builtin) Call(in *Interpreter, args []Value) (Value, error) {
	return b.Fn(in, args)
}

func (b *Builtin) String() string { return "<native fn>" }
