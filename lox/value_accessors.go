package lox

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Number() float64 {
	if v.kind == KindNumber {
		return v.data.(float64)
	}
	return 0
}

func (v Value) Builtin() *Builtin {
	if v.kind != KindBuiltin {
		return nil
	}
	return v.data.(*Builtin)
}

func (v Value) Class() *Class {
	if v.kind != KindClass {
		return nil
	}
	return v.data.(*Class)
}

func (v Value) Instance() *Instance {
	if v.kind != KindInstance {
		return nil
	}
	return v.data.(*Instance)
}

// Callable reports the function, native or class held by v.
func (v Value) Callable() (Callable, bool) {
	switch v.kind {
	case KindFunction, KindBuiltin, KindClass:
		return v.data.(Callable), true
	default:
		return nil, false
	}
}

func (v Value) Str() string {
	if v.kind == KindString {
		return v.data.(string)
	}
	return ""
}
