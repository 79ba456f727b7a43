package lox

import (
	"math"
	"testing"
)

func TestValueString(t *testing.T) {
	class := &Class{Name: "Point", Methods: map[string]*ScriptFunction{}}
	inst := &Instance{Class: class, Fields: map[string]Value{}}
	fn := &ScriptFunction{Name: "area"}
	// variables keep the sum out of exact constant arithmetic
	tenth, fifth := 0.1, 0.2

	cases := []struct {
		val  Value
		want string
	}{
		{NewNil(), "nil"},
		{NewBool(true), "true"},
		{NewBool(false), "false"},
		{NewNumber(3), "3.0"},
		{NewNumber(-0.5), "-0.5"},
		{NewNumber(1e21), "1000000000000000000000.0"},
		{NewNumber(tenth + fifth), "0.30000000000000004"},
		{NewNumber(math.Inf(1)), "inf"},
		{NewString("raw \"text\""), "raw \"text\""},
		{NewFunction(fn), "<fun area>"},
		{NewFunction(&ScriptFunction{}), "<anonymous function>"},
		{NewBuiltin("clock", 0, builtinClock), "<native fn>"},
		{NewClass(class), "Point"},
		{NewInstance(inst), "Point instance"},
	}
	for _, tc := range cases {
		if got := tc.val.String(); got != tc.want {
			t.Fatalf("%v: got %q want %q", tc.val.Kind(), got, tc.want)
		}
	}
}

func TestValueEqual(t *testing.T) {
	a := &Instance{Class: &Class{Name: "A"}, Fields: map[string]Value{}}
	b := &Instance{Class: a.Class, Fields: map[string]Value{}}

	if !NewNumber(1).Equal(NewNumber(1)) {
		t.Fatalf("numbers compare by value")
	}
	if !NewString("x").Equal(NewString("x")) {
		t.Fatalf("strings compare by value")
	}
	if NewNumber(0).Equal(NewBool(false)) || NewNil().Equal(NewBool(false)) {
		t.Fatalf("different kinds are never equal")
	}
	if !NewInstance(a).Equal(NewInstance(a)) || NewInstance(a).Equal(NewInstance(b)) {
		t.Fatalf("instances compare by identity")
	}
	if !NewNil().Equal(NewNil()) {
		t.Fatalf("nil equals nil")
	}
}

func TestValueTruthy(t *testing.T) {
	falsy := []Value{NewNil(), NewBool(false)}
	truthy := []Value{NewBool(true), NewNumber(0), NewString(""), NewClass(&Class{Name: "A"})}
	for _, v := range falsy {
		if v.Truthy() {
			t.Fatalf("%s should be falsy", v)
		}
	}
	for _, v := range truthy {
		if !v.Truthy() {
			t.Fatalf("%s should be truthy", v)
		}
	}
}
