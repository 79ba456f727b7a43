package lox

func NewNil() Value                 { return Value{kind: KindNil} }
func NewBool(b bool) Value          { return Value{kind: KindBool, data: b} }
func NewNumber(f float64) Value     { return Value{kind: KindNumber, data: f} }
func NewString(s string) Value      { return Value{kind: KindString, data: s} }
func NewClass(c *Class) Value       { return Value{kind: KindClass, data: c} }
func NewInstance(i *Instance) Value { return Value{kind: KindInstance, data: i} }

func NewFunction(fn *ScriptFunction) Value {
	return Value{kind: KindFunction, data: fn}
}

func NewBuiltin(name string, arity int, fn BuiltinFunc) Value {
	return Value{kind: KindBuiltin, data: &Builtin{Name: name, arity: arity, Fn: fn}}
}

func literalValue(tok Token) Value {
	switch tok.Type {
	case TokenTrue:
		return NewBool(true)
	case TokenFalse:
		return NewBool(false)
	case TokenNumber:
		if f, ok := tok.Literal.(float64); ok {
			return NewNumber(f)
		}
	case TokenString:
		if s, ok := tok.Literal.(string); ok {
			return NewString(s)
		}
	}
	return NewNil()
}
