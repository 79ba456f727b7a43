package lox

import (
	"errors"
	"strings"
	"testing"
)

// sexpr renders an expression as a parenthesized prefix form for assertions.
func sexpr(expr Expression) string {
	switch e := expr.(type) {
	case *LiteralExpr:
		return literalValue(e.Token).String()
	case *VariableExpr:
		return e.Name.Lexeme
	case *GroupingExpr:
		return "(group " + sexpr(e.Inner) + ")"
	case *UnaryExpr:
		return "(" + e.Operator.Lexeme + " " + sexpr(e.Right) + ")"
	case *BinaryExpr:
		return "(" + e.Operator.Lexeme + " " + sexpr(e.Left) + " " + sexpr(e.Right) + ")"
	case *LogicalExpr:
		return "(" + e.Operator.Lexeme + " " + sexpr(e.Left) + " " + sexpr(e.Right) + ")"
	case *AssignExpr:
		return "(= " + e.Name.Lexeme + " " + sexpr(e.Value) + ")"
	case *GetExpr:
		return "(. " + sexpr(e.Object) + " " + e.Name.Lexeme + ")"
	case *SetExpr:
		return "(=. " + sexpr(e.Object) + " " + e.Name.Lexeme + " " + sexpr(e.Value) + ")"
	case *CallExpr:
		parts := []string{"call", sexpr(e.Callee)}
		for _, arg := range e.Args {
			parts = append(parts, sexpr(arg))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *ThisExpr:
		return "this"
	case *SuperExpr:
		return "(super " + e.Method.Lexeme + ")"
	case *LambdaExpr:
		return "(fun/" + string(rune('0'+len(e.Params))) + ")"
	default:
		return "?"
	}
}

func parseSource(t *testing.T, source string) []Statement {
	t.Helper()
	tokens := mustScan(t, source)
	stmts, err := Parse(tokens)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return stmts
}

func parseExpr(t *testing.T, source string) Expression {
	t.Helper()
	stmts := parseSource(t, source+";")
	if len(stmts) != 1 {
		t.Fatalf("expected one statement, got %d", len(stmts))
	}
	es, ok := stmts[0].(*ExpressionStmt)
	if !ok {
		t.Fatalf("expected expression statement, got %T", stmts[0])
	}
	return es.Expr
}

func parseErrors(t *testing.T, source string) *StaticError {
	t.Helper()
	tokens := mustScan(t, source)
	_, err := Parse(tokens)
	if err == nil {
		t.Fatalf("expected parse error for %q", source)
	}
	var static *StaticError
	if !errors.As(err, &static) || static.Phase != PhaseParse {
		t.Fatalf("expected parse StaticError, got %T %v", err, err)
	}
	return static
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3", "(+ 1.0 (* 2.0 3.0))"},
		{"1 * 2 + 3", "(+ (* 1.0 2.0) 3.0)"},
		{"1 - 2 - 3", "(- (- 1.0 2.0) 3.0)"},
		{"(1 + 2) * 3", "(* (group (+ 1.0 2.0)) 3.0)"},
		{"1 == 1", "(== 1.0 1.0)"},
		{"1 < 2 == 3 >= 4", "(== (< 1.0 2.0) (>= 3.0 4.0))"},
		{"-a * !b", "(* (- a) (! b))"},
		{"!!true", "(! (! true))"},
		{"a or b and c", "(or a (and b c))"},
		{"a and b or c and d", "(or (and a b) (and c d))"},
		{"a = b = c", "(= a (= b c))"},
		{"a.b.c = 1 + 2", "(=. (. a b) c (+ 1.0 2.0))"},
		{"f(1)(2).g(x, y)", "(call (. (call (call f 1.0) 2.0) g) x y)"},
		{"a = b or c", "(= a (or b c))"},
		{"nil != \"s\"", "(!= nil s)"},
	}
	for _, tc := range cases {
		got := sexpr(parseExpr(t, tc.source))
		if got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.source, got, tc.want)
		}
	}
}

func TestParseEqualityOperatorToken(t *testing.T) {
	expr := parseExpr(t, "1 == 1")
	bin, ok := expr.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got %T", expr)
	}
	if bin.Operator.Type != TokenEqualEqual {
		t.Fatalf("expected ==, got %s", bin.Operator.Type)
	}
}

func TestParseDeclarations(t *testing.T) {
	stmts := parseSource(t, `
var a = 1;
var b;
fun add(x, y) { return x + y; }
class B {}
class A < B {
  init(x) { this.x = x; }
  get() { return this.x; }
}
print a;
`)
	if len(stmts) != 6 {
		t.Fatalf("expected 6 statements, got %d", len(stmts))
	}
	if v := stmts[1].(*VarStmt); v.Initializer != nil {
		t.Fatalf("expected nil initializer for b")
	}
	fn := stmts[2].(*FunctionStmt)
	if fn.Name.Lexeme != "add" || len(fn.Params) != 2 || len(fn.Body) != 1 {
		t.Fatalf("unexpected function %+v", fn)
	}
	class := stmts[4].(*ClassStmt)
	if class.Superclass == nil || class.Superclass.Name.Lexeme != "B" {
		t.Fatalf("expected superclass B")
	}
	if len(class.Methods) != 2 || class.Methods[0].Name.Lexeme != "init" {
		t.Fatalf("unexpected methods %+v", class.Methods)
	}
	if _, ok := stmts[5].(*PrintStmt); !ok {
		t.Fatalf("expected print statement, got %T", stmts[5])
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts := parseSource(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	block, ok := stmts[0].(*BlockStmt)
	if !ok {
		t.Fatalf("expected block, got %T", stmts[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected initializer and loop, got %d", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*VarStmt); !ok {
		t.Fatalf("expected var initializer, got %T", block.Statements[0])
	}
	loop, ok := block.Statements[1].(*WhileStmt)
	if !ok {
		t.Fatalf("expected while, got %T", block.Statements[1])
	}
	if loop.LoopVar == nil || loop.LoopVar.Lexeme != "i" {
		t.Fatalf("expected loop variable i")
	}
	if got := sexpr(loop.Condition); got != "(< i 3.0)" {
		t.Fatalf("unexpected condition %s", got)
	}
	if got := sexpr(loop.Increment); got != "(= i (+ i 1.0))" {
		t.Fatalf("unexpected increment %s", got)
	}
}

func TestParseForWithoutClauses(t *testing.T) {
	stmts := parseSource(t, "for (;;) print 1;")
	loop, ok := stmts[0].(*WhileStmt)
	if !ok {
		t.Fatalf("expected bare while, got %T", stmts[0])
	}
	if got := sexpr(loop.Condition); got != "true" {
		t.Fatalf("expected literal true condition, got %s", got)
	}
	if loop.Increment != nil || loop.LoopVar != nil {
		t.Fatalf("expected no increment or loop variable")
	}
}

func TestParseLambdaInitializer(t *testing.T) {
	stmts := parseSource(t, "var f = fun (a, b) { return a; };")
	v := stmts[0].(*VarStmt)
	if got := sexpr(v.Initializer); got != "(fun/2)" {
		t.Fatalf("expected lambda, got %s", got)
	}
}

func TestParseErrorMessages(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"print 1", "[line 1] Error at end: Expect ';' after value."},
		{"var 1 = 2;", "[line 1] Error at '1': Expect variable name."},
		{"(1 + 2;", "[line 1] Error at ';': Expect ')' after expression."},
		{"1 + ;", "[line 1] Error at ';': Expect expression."},
		{"a + b = c;", "[line 1] Error at '=': Invalid assignment target."},
		{"{ print 1;", "[line 1] Error at end: Expect '}' after block."},
		{"class { }", "[line 1] Error at '{': Expect class name."},
		{"foo.;", "[line 1] Error at ';': Expect property name after '.'."},
		{"super;", "[line 1] Error at ';': Expect '.' after 'super'."},
		{"fun f(a b) {}", "[line 1] Error at 'b': Expect ')' after parameters."},
	}
	for _, tc := range cases {
		static := parseErrors(t, tc.source)
		if got := static.Diagnostics[0].String(); got != tc.want {
			t.Fatalf("%q: got %q want %q", tc.source, got, tc.want)
		}
	}
}

func TestParseSynchronizeReportsEachFault(t *testing.T) {
	static := parseErrors(t, "var = 1;\nprint 2;\nvar b = ;\nprint 3;")
	if len(static.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %v", len(static.Diagnostics), static)
	}
	if static.Diagnostics[0].Line != 1 || static.Diagnostics[1].Line != 3 {
		t.Fatalf("unexpected diagnostic lines: %v", static)
	}
}

func TestParseInvalidAssignmentKeepsParsing(t *testing.T) {
	tokens := mustScan(t, "1 = 2; print 3;")
	stmts, err := Parse(tokens)
	if err == nil {
		t.Fatalf("expected invalid assignment error")
	}
	if len(stmts) != 2 {
		t.Fatalf("expected both statements kept, got %d", len(stmts))
	}
}

func TestParseArgumentCap(t *testing.T) {
	args := make([]string, 256)
	for i := range args {
		args[i] = "1"
	}
	static := parseErrors(t, "f("+strings.Join(args, ", ")+");")
	if len(static.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %v", static)
	}
	if !strings.Contains(static.Error(), "Can't have more than 255 arguments.") {
		t.Fatalf("unexpected error %v", static)
	}

	params := make([]string, 256)
	for i := range params {
		params[i] = "p" + strings.Repeat("x", i)
	}
	static = parseErrors(t, "fun f("+strings.Join(params, ", ")+") {}")
	if !strings.Contains(static.Error(), "Can't have more than 255 parameters.") {
		t.Fatalf("unexpected error %v", static)
	}
}
