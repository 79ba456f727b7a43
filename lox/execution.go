package lox

import (
	"context"
	"fmt"
	"io"
	"slices"
)

// Interpreter evaluates resolved programs against a persistent global
// environment. It is not safe for concurrent use.
type Interpreter struct {
	globals      *Env
	locals       map[Expression]int
	out          io.Writer
	ctx          context.Context
	quota        int
	recursionCap int
	steps        int
	callStack    []callFrame

	hadRuntimeError bool
}

type callFrame struct {
	Function string
	Pos      Position
}

// Resolve records the scope distance computed for a local reference.
func (in *Interpreter) Resolve(expr Expression, depth int) {
	in.locals[expr] = depth
}

// Interpret executes stmts in order and stops at the first runtime error.
// In ModeInteractive a trailing expression statement also prints its value.
func (in *Interpreter) Interpret(ctx context.Context, stmts []Statement, mode Mode) error {
	if ctx == nil {
		ctx = context.Background()
	}
	in.ctx = ctx
	in.steps = 0
	in.callStack = in.callStack[:0]

	for i, stmt := range stmts {
		if mode == ModeInteractive && i == len(stmts)-1 {
			if es, ok := stmt.(*ExpressionStmt); ok {
				val, err := in.evalExpression(es.Expr, in.globals)
				if err != nil {
					return in.fail(err)
				}
				fmt.Fprintln(in.out, val.String())
				continue
			}
		}
		if _, _, err := in.evalStatement(stmt, in.globals); err != nil {
			return in.fail(err)
		}
	}
	return nil
}

func (in *Interpreter) fail(err error) error {
	in.hadRuntimeError = true
	return err
}

// HadRuntimeError reports whether the last Interpret call stopped on an
// error. The flag is sticky until ResetRuntimeError.
func (in *Interpreter) HadRuntimeError() bool { return in.hadRuntimeError }

// ResetRuntimeError clears the runtime-error flag and nothing else; globals
// survive so a REPL session can continue.
func (in *Interpreter) ResetRuntimeError() { in.hadRuntimeError = false }

// GlobalNames returns the sorted names bound in the global environment.
func (in *Interpreter) GlobalNames() []string {
	names := in.globals.Names()
	slices.Sort(names)
	return names
}

// Global returns the value bound to name in the global environment.
func (in *Interpreter) Global(name string) (Value, bool) {
	return in.globals.Get(name)
}

func (in *Interpreter) step() error {
	in.steps++
	if in.quota > 0 && in.steps > in.quota {
		return fmt.Errorf("%w (%d)", errStepQuotaExceeded, in.quota)
	}
	if in.ctx != nil {
		select {
		case <-in.ctx.Done():
			return in.ctx.Err()
		default:
		}
	}
	return nil
}

func (in *Interpreter) pushFrame(function string, tok Token) error {
	if in.recursionCap > 0 && len(in.callStack) >= in.recursionCap {
		return in.errorAt(tok, "recursion depth exceeded (limit %d)", in.recursionCap)
	}
	in.callStack = append(in.callStack, callFrame{Function: function, Pos: tok.Pos})
	return nil
}

func (in *Interpreter) popFrame() {
	if len(in.callStack) == 0 {
		return
	}
	in.callStack = in.callStack[:len(in.callStack)-1]
}

func (in *Interpreter) evalStatements(stmts []Statement, env *Env) (Value, bool, error) {
	for _, stmt := range stmts {
		val, returned, err := in.evalStatement(stmt, env)
		if err != nil {
			return NewNil(), false, err
		}
		if returned {
			return val, true, nil
		}
	}
	return NewNil(), false, nil
}

// evalStatement returns the pending return value and true when a return
// statement is unwinding toward the enclosing call.
func (in *Interpreter) evalStatement(stmt Statement, env *Env) (Value, bool, error) {
	if err := in.step(); err != nil {
		return NewNil(), false, err
	}
	switch s := stmt.(type) {
	case *ExpressionStmt:
		_, err := in.evalExpression(s.Expr, env)
		return NewNil(), false, err
	case *PrintStmt:
		val, err := in.evalExpression(s.Expr, env)
		if err != nil {
			return NewNil(), false, err
		}
		fmt.Fprintln(in.out, val.String())
		return NewNil(), false, nil
	case *VarStmt:
		val := NewNil()
		if s.Initializer != nil {
			var err error
			if val, err = in.evalExpression(s.Initializer, env); err != nil {
				return NewNil(), false, err
			}
		}
		env.Define(s.Name.Lexeme, val)
		return NewNil(), false, nil
	case *BlockStmt:
		return in.evalStatements(s.Statements, newEnv(env))
	case *IfStmt:
		cond, err := in.evalExpression(s.Condition, env)
		if err != nil {
			return NewNil(), false, err
		}
		if cond.Truthy() {
			return in.evalStatement(s.Then, env)
		}
		if s.Else != nil {
			return in.evalStatement(s.Else, env)
		}
		return NewNil(), false, nil
	case *WhileStmt:
		return in.evalWhileStatement(s, env)
	case *FunctionStmt:
		env.Define(s.Name.Lexeme, NewFunction(newFunction(s, env, false)))
		return NewNil(), false, nil
	case *ReturnStmt:
		if s.Value == nil {
			return NewNil(), true, nil
		}
		val, err := in.evalExpression(s.Value, env)
		if err != nil {
			return NewNil(), false, err
		}
		return val, true, nil
	case *ClassStmt:
		return NewNil(), false, in.evalClassStatement(s, env)
	default:
		return NewNil(), false, fmt.Errorf("unsupported statement %T", stmt)
	}
}

// evalWhileStatement runs the loop. With a LoopVar the body gets a fresh
// scope per iteration seeded from the loop scope, and the body's final
// value is copied back before the increment runs.
func (in *Interpreter) evalWhileStatement(s *WhileStmt, env *Env) (Value, bool, error) {
	for {
		cond, err := in.evalExpression(s.Condition, env)
		if err != nil {
			return NewNil(), false, err
		}
		if !cond.Truthy() {
			return NewNil(), false, nil
		}

		bodyEnv := env
		if s.LoopVar != nil {
			name := s.LoopVar.Lexeme
			current, _ := env.GetAt(0, name)
			bodyEnv = newEnv(env)
			bodyEnv.Define(name, current)
		}

		val, returned, err := in.evalStatement(s.Body, bodyEnv)
		if err != nil || returned {
			return val, returned, err
		}

		if s.LoopVar != nil {
			name := s.LoopVar.Lexeme
			final, _ := bodyEnv.GetAt(0, name)
			env.AssignAt(0, name, final)
		}
		if s.Increment != nil {
			if _, err := in.evalExpression(s.Increment, env); err != nil {
				return NewNil(), false, err
			}
		}
	}
}

func (in *Interpreter) evalClassStatement(s *ClassStmt, env *Env) error {
	var superclass *Class
	if s.Superclass != nil {
		val, err := in.evalExpression(s.Superclass, env)
		if err != nil {
			return err
		}
		if val.Kind() != KindClass {
			return in.errorAt(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = val.Class()
	}

	env.Define(s.Name.Lexeme, NewNil())

	closure := env
	if superclass != nil {
		closure = newEnv(env)
		closure.Define("super", NewClass(superclass))
	}

	methods := make(map[string]*ScriptFunction, len(s.Methods))
	for _, method := range s.Methods {
		methods[method.Name.Lexeme] = newFunction(method, closure, method.Name.Lexeme == "init")
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	env.Assign(s.Name.Lexeme, NewClass(class))
	return nil
}
