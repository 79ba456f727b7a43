package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/peterh/liner"

	"github.com/mgomes/lox/lox"
)

type scriptedReader struct {
	lines   []string
	prompts []string
	history []string
}

func (r *scriptedReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	if line == "^C" {
		return "", liner.ErrPromptAborted
	}
	return line, nil
}

func (r *scriptedReader) AppendHistory(item string) {
	r.history = append(r.history, item)
}

func TestNeedsMoreInput(t *testing.T) {
	cases := []struct {
		source string
		want   bool
	}{
		{"print 1;", false},
		{"{", true},
		{"fun f() {\n  print 1;", true},
		{"print \"open", true},
		{"print 1", true},
		{"print );", false},
		{"var = 1; {", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := needsMoreInput(tc.source); got != tc.want {
			t.Fatalf("%q: got %v want %v", tc.source, got, tc.want)
		}
	}
}

func TestLineLoopCommandsAndContinuation(t *testing.T) {
	r := &scriptedReader{lines: []string{
		"var x = 1;",
		"{",
		"  x = x + 1;",
		"}",
		"x;",
		"^C",
		":vars",
		":nope",
		":reset",
		"x;",
		":quit",
		"print \"never\";",
	}}
	var stdout, stderr bytes.Buffer
	code := runLineLoop(r, lox.Config{}, &stdout, &stderr)
	if code != lox.ExitOK {
		t.Fatalf("unexpected exit %d", code)
	}

	want := "2.0\nx = 2.0\nEnvironment reset\n"
	if stdout.String() != want {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	errs := stderr.String()
	if !strings.Contains(errs, "Unknown command: :nope") || !strings.Contains(errs, "Undefined variable 'x'.") {
		t.Fatalf("unexpected stderr %q", errs)
	}
	if strings.Join(r.prompts[1:4], "|") != "> |. |. " {
		t.Fatalf("expected continuation prompts, got %q", r.prompts)
	}
	if r.history[1] != "{   x = x + 1; }" {
		t.Fatalf("multi-line history should be flattened, got %q", r.history[1])
	}
}

func TestCompletions(t *testing.T) {
	engine := lox.MustNewEngine(lox.Config{Stdout: io.Discard})
	in := engine.NewInterpreter()
	got := completions(in, "c")
	if strings.Join(got, ",") != "class,clock" {
		t.Fatalf("unexpected completions %v", got)
	}
	if completions(in, "") != nil {
		t.Fatalf("empty prefix should not complete")
	}
}

func TestDescribeErrorIncludesFrame(t *testing.T) {
	engine := lox.MustNewEngine(lox.Config{Stdout: io.Discard})
	source := "fun f() { return nil + 1; }\nf();"
	err := engine.NewInterpreter().Run(context.Background(), source, lox.ModeFile)
	msg := describeError(source, err)
	if !strings.HasPrefix(msg, "Operands must be two numbers or two strings.\n[line 1]\n 1 | fun f()") {
		t.Fatalf("unexpected description %q", msg)
	}
	if !strings.Contains(msg, "at f (1:22)") || !strings.Contains(msg, "at f (2:3)") {
		t.Fatalf("expected stack trace in %q", msg)
	}
}

func TestUserGlobalsHidesOnlyUntouchedNatives(t *testing.T) {
	engine := lox.MustNewEngine(lox.Config{Stdout: io.Discard})
	in := engine.NewInterpreter()
	if got := userGlobals(engine, in); len(got) != 0 {
		t.Fatalf("fresh interpreter should list no user globals, got %v", got)
	}

	source := "var tick = clock; var clock = string; var n = 1;"
	if err := in.Run(context.Background(), source, lox.ModeFile); err != nil {
		t.Fatalf("run: %v", err)
	}
	var names []string
	for _, g := range userGlobals(engine, in) {
		names = append(names, g.name+"="+g.value)
	}
	if got := strings.Join(names, ","); got != "clock=<native fn>,n=1.0,tick=<native fn>" {
		t.Fatalf("unexpected user globals %q", got)
	}
}
