package lox

func (in *Interpreter) evalGetExpr(e *GetExpr, env *Env) (Value, error) {
	obj, err := in.evalExpression(e.Object, env)
	if err != nil {
		return NewNil(), err
	}
	if obj.Kind() != KindInstance {
		return NewNil(), in.errorAt(e.Name, "Only instances have properties.")
	}
	val, ok := obj.Instance().Get(e.Name.Lexeme)
	if !ok {
		return NewNil(), in.errorAt(e.Name, "Undefined property '%s'.", e.Name.Lexeme)
	}
	return val, nil
}

// evalSetExpr writes straight into the instance's field table; fields are
// never looked up through the class on assignment.
func (in *Interpreter) evalSetExpr(e *SetExpr, env *Env) (Value, error) {
	obj, err := in.evalExpression(e.Object, env)
	if err != nil {
		return NewNil(), err
	}
	if obj.Kind() != KindInstance {
		return NewNil(), in.errorAt(e.Name, "Only instances have fields.")
	}
	val, err := in.evalExpression(e.Value, env)
	if err != nil {
		return NewNil(), err
	}
	obj.Instance().Set(e.Name.Lexeme, val)
	return val, nil
}

// evalSuperExpr finds the method on the superclass stored one scope above
// `this` and binds it to the current instance.
func (in *Interpreter) evalSuperExpr(e *SuperExpr, env *Env) (Value, error) {
	distance, ok := in.locals[e]
	if !ok {
		return NewNil(), in.errorAt(e.Keyword, "Can't use 'super' outside of a class.")
	}
	superVal, _ := env.GetAt(distance, "super")
	thisVal, _ := env.GetAt(distance-1, "this")
	superclass := superVal.Class()
	inst := thisVal.Instance()
	if superclass == nil || inst == nil {
		return NewNil(), in.errorAt(e.Keyword, "Can't use 'super' outside of a class.")
	}

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return NewNil(), in.errorAt(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return NewFunction(method.Bind(inst)), nil
}
