package lox

func (in *Interpreter) evalUnaryExpr(e *UnaryExpr, env *Env) (Value, error) {
	right, err := in.evalExpression(e.Right, env)
	if err != nil {
		return NewNil(), err
	}
	switch e.Operator.Type {
	case TokenMinus:
		if right.Kind() != KindNumber {
			return NewNil(), in.errorAt(e.Operator, "Operand must be a number.")
		}
		return NewNumber(-right.Number()), nil
	case TokenBang:
		return NewBool(!right.Truthy()), nil
	default:
		return NewNil(), in.errorAt(e.Operator, "Unsupported unary operator.")
	}
}

func (in *Interpreter) evalBinaryExpr(e *BinaryExpr, env *Env) (Value, error) {
	left, err := in.evalExpression(e.Left, env)
	if err != nil {
		return NewNil(), err
	}
	right, err := in.evalExpression(e.Right, env)
	if err != nil {
		return NewNil(), err
	}

	switch e.Operator.Type {
	case TokenEqualEqual:
		return NewBool(left.Equal(right)), nil
	case TokenBangEqual:
		return NewBool(!left.Equal(right)), nil
	case TokenPlus:
		switch {
		case left.Kind() == KindNumber && right.Kind() == KindNumber:
			return NewNumber(left.Number() + right.Number()), nil
		case left.Kind() == KindString && right.Kind() == KindString:
			return NewString(left.Str() + right.Str()), nil
		}
		return NewNil(), in.errorAt(e.Operator, "Operands must be two numbers or two strings.")
	}

	if left.Kind() != KindNumber || right.Kind() != KindNumber {
		return NewNil(), in.errorAt(e.Operator, "Operands must be numbers.")
	}
	l, r := left.Number(), right.Number()
	switch e.Operator.Type {
	case TokenMinus:
		return NewNumber(l - r), nil
	case TokenStar:
		return NewNumber(l * r), nil
	case TokenSlash:
		if r == 0 {
			return NewNil(), in.errorAt(e.Operator, "Division by zero.")
		}
		return NewNumber(l / r), nil
	case TokenGreater:
		return NewBool(l > r), nil
	case TokenGreaterEqual:
		return NewBool(l >= r), nil
	case TokenLess:
		return NewBool(l < r), nil
	case TokenLessEqual:
		return NewBool(l <= r), nil
	default:
		return NewNil(), in.errorAt(e.Operator, "Unsupported binary operator.")
	}
}

// evalLogicalExpr short-circuits and yields whichever operand decided the
// result.
func (in *Interpreter) evalLogicalExpr(e *LogicalExpr, env *Env) (Value, error) {
	left, err := in.evalExpression(e.Left, env)
	if err != nil {
		return NewNil(), err
	}
	if e.Operator.Type == TokenOr {
		if left.Truthy() {
			return left, nil
		}
	} else if !left.Truthy() {
		return left, nil
	}
	return in.evalExpression(e.Right, env)
}
