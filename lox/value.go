package lox

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindBuiltin
	KindClass
	KindInstance
)

// Value is the closed set of runtime values. Callables and instances are
// held by pointer and compare by identity.
type Value struct {
	kind ValueKind
	data any
}
