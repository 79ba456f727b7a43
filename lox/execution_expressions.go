package lox

import "fmt"

func (in *Interpreter) evalExpression(expr Expression, env *Env) (Value, error) {
	if err := in.step(); err != nil {
		return NewNil(), err
	}
	switch e := expr.(type) {
	case *LiteralExpr:
		return literalValue(e.Token), nil
	case *GroupingExpr:
		return in.evalExpression(e.Inner, env)
	case *UnaryExpr:
		return in.evalUnaryExpr(e, env)
	case *BinaryExpr:
		return in.evalBinaryExpr(e, env)
	case *LogicalExpr:
		return in.evalLogicalExpr(e, env)
	case *VariableExpr:
		return in.lookUpVariable(e.Name, e, env)
	case *AssignExpr:
		val, err := in.evalExpression(e.Value, env)
		if err != nil {
			return NewNil(), err
		}
		if err := in.assignVariable(e.Name, e, val, env); err != nil {
			return NewNil(), err
		}
		return val, nil
	case *CallExpr:
		return in.evalCallExpr(e, env)
	case *GetExpr:
		return in.evalGetExpr(e, env)
	case *SetExpr:
		return in.evalSetExpr(e, env)
	case *ThisExpr:
		return in.lookUpVariable(e.Keyword, e, env)
	case *SuperExpr:
		return in.evalSuperExpr(e, env)
	case *LambdaExpr:
		return NewFunction(newLambda(e, env)), nil
	default:
		return NewNil(), fmt.Errorf("unsupported expression %T", expr)
	}
}

// lookUpVariable reads a resolved local at its recorded distance, or the
// global environment directly when the resolver left no entry.
func (in *Interpreter) lookUpVariable(name Token, expr Expression, env *Env) (Value, error) {
	if distance, ok := in.locals[expr]; ok {
		if val, found := env.GetAt(distance, name.Lexeme); found {
			return val, nil
		}
	} else if val, found := in.globals.GetAt(0, name.Lexeme); found {
		return val, nil
	}
	return NewNil(), in.errorAt(name, "Undefined variable '%s'.", name.Lexeme)
}

func (in *Interpreter) assignVariable(name Token, expr Expression, val Value, env *Env) error {
	var ok bool
	if distance, resolved := in.locals[expr]; resolved {
		ok = env.AssignAt(distance, name.Lexeme, val)
	} else {
		ok = in.globals.AssignAt(0, name.Lexeme, val)
	}
	if !ok {
		return in.errorAt(name, "Undefined variable '%s'.", name.Lexeme)
	}
	return nil
}
