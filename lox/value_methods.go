package lox

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String renders v the way `print` shows it.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.data.(float64))
	case KindString:
		return v.data.(string)
	case KindFunction, KindBuiltin, KindClass:
		return v.data.(Callable).String()
	case KindInstance:
		return v.Instance().String()
	default:
		return fmt.Sprintf("<%s>", v.kind)
	}
}

// formatNumber prints the shortest decimal that round-trips, keeping a
// trailing ".0" on integral values.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	text := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}

// Truthy treats nil and false as false and everything else as true.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool()
	default:
		return true
	}
}

// Equal never coerces: values of different kinds are unequal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindNumber:
		return v.data.(float64) == other.data.(float64)
	case KindString:
		return v.data.(string) == other.data.(string)
	default:
		return v.data == other.data
	}
}
