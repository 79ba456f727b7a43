package lox

import "time"

func builtinClock(in *Interpreter, args []Value) (Value, error) {
	now := time.Now()
	return NewNumber(float64(now.UnixNano()) / float64(time.Second)), nil
}

// builtinString stringifies its argument the same way print does.
func builtinString(in *Interpreter, args []Value) (Value, error) {
	return NewString(args[0].String()), nil
}
