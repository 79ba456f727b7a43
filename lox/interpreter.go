package lox

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
)

const defaultRecursionLimit = 1024

// Config controls interpreter execution bounds and output.
type Config struct {
	// RecursionLimit caps nested calls; zero selects the default.
	RecursionLimit int
	// StepQuota caps evaluation steps per Run; zero means unlimited.
	StepQuota int
	Stdout    io.Writer
}

// Engine holds validated configuration and the set of natives that every
// interpreter it creates starts with.
type Engine struct {
	config   Config
	builtins map[string]Value
}

// Mode selects whether a trailing expression statement echoes its value.
type Mode int

const (
	ModeFile Mode = iota
	ModeInteractive
)

// NewEngine constructs an Engine with defaults applied and registers the
// clock and string natives.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.RecursionLimit < 0 {
		return nil, fmt.Errorf("lox: recursion limit must be non-negative, got %d", cfg.RecursionLimit)
	}
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("lox: step quota must be non-negative, got %d", cfg.StepQuota)
	}
	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}

	engine := &Engine{
		config:   cfg,
		builtins: make(map[string]Value),
	}
	engine.RegisterBuiltin("clock", 0, builtinClock)
	engine.RegisterBuiltin("string", 1, builtinString)
	return engine, nil
}

// MustNewEngine panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// RegisterBuiltin registers a native with a fixed arity. Interpreters
// created afterwards see it as a global.
func (e *Engine) RegisterBuiltin(name string, arity int, fn BuiltinFunc) {
	e.builtins[name] = NewBuiltin(name, arity, fn)
}

// Builtins returns a copy of the registered natives.
func (e *Engine) Builtins() map[string]Value {
	return maps.Clone(e.builtins)
}

func (e *Engine) NewInterpreter() *Interpreter {
	globals := newEnv(nil)
	for name, val := range e.builtins {
		globals.Define(name, val)
	}
	return &Interpreter{
		globals:      globals,
		locals:       make(map[Expression]int),
		out:          e.config.Stdout,
		quota:        e.config.StepQuota,
		recursionCap: e.config.RecursionLimit,
		callStack:    make([]callFrame, 0, 8),
	}
}

// Run pushes source through scanning, parsing, resolution and evaluation.
// Each phase runs only if the previous one reported no errors.
func (in *Interpreter) Run(ctx context.Context, source string, mode Mode) error {
	tokens, err := Scan(source)
	if err != nil {
		return err
	}
	stmts, err := Parse(tokens)
	if err != nil {
		return err
	}
	if err := Resolve(stmts, in); err != nil {
		return err
	}
	return in.Interpret(ctx, stmts, mode)
}

// Run is a convenience that executes source in a fresh interpreter.
func (e *Engine) Run(ctx context.Context, source string) error {
	return e.NewInterpreter().Run(ctx, source, ModeFile)
}

type discardSink struct{}

func (discardSink) Resolve(Expression, int) {}

// Check runs the static phases over source without executing it.
func Check(source string) error {
	tokens, err := Scan(source)
	if err != nil {
		return err
	}
	stmts, err := Parse(tokens)
	if err != nil {
		return err
	}
	return Resolve(stmts, discardSink{})
}
