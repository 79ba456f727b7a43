package lox

func (in *Interpreter) evalCallExpr(e *CallExpr, env *Env) (Value, error) {
	callee, err := in.evalExpression(e.Callee, env)
	if err != nil {
		return NewNil(), err
	}

	args := make([]Value, 0, len(e.Args))
	for _, arg := range e.Args {
		val, err := in.evalExpression(arg, env)
		if err != nil {
			return NewNil(), err
		}
		args = append(args, val)
	}

	fn, ok := callee.Callable()
	if !ok {
		return NewNil(), in.errorAt(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return NewNil(), in.errorAt(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	if err := in.pushFrame(frameName(fn), e.Paren); err != nil {
		return NewNil(), err
	}
	defer in.popFrame()

	result, err := fn.Call(in, args)
	if err != nil {
		return NewNil(), in.wrapError(err, e.Paren)
	}
	return result, nil
}

// callFunction binds args in a scope enclosed by the function's closure, so
// free variables resolve lexically rather than through the caller.
func (in *Interpreter) callFunction(fn *ScriptFunction, args []Value) (Value, error) {
	env := newEnv(fn.Closure)
	for i, param := range fn.Params {
		env.Define(param.Lexeme, args[i])
	}

	val, returned, err := in.evalStatements(fn.Body, env)
	if err != nil {
		return NewNil(), err
	}
	if fn.IsInitializer {
		this, _ := fn.Closure.GetAt(0, "this")
		return this, nil
	}
	if returned {
		return val, nil
	}
	return NewNil(), nil
}

func frameName(fn Callable) string {
	switch c := fn.(type) {
	case *ScriptFunction:
		if c.Name == "" {
			return "<lambda>"
		}
		return c.Name
	case *Builtin:
		return c.Name
	case *Class:
		return c.Name
	default:
		return fn.String()
	}
}
