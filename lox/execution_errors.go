package lox

import (
	"errors"
	"fmt"
	"strings"
)

type StackFrame struct {
	Function string
	Pos      Position
}

// RuntimeError aborts the current evaluation. Token locates the fault;
// Frames lists the active calls, innermost first.
type RuntimeError struct {
	Token   Token
	Message string
	Frames  []StackFrame
}

const runtimeErrorFrameLimit = 16

var errStepQuotaExceeded = errors.New("step quota exceeded")

func (re *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", re.Message, re.Token.Pos.Line)
}

// StackTrace renders Frames one per line, eliding the middle of very deep
// stacks.
func (re *RuntimeError) StackTrace() string {
	var b strings.Builder
	render := func(frame StackFrame) {
		fmt.Fprintf(&b, "  at %s (%d:%d)\n", frame.Function, frame.Pos.Line, frame.Pos.Column)
	}
	if len(re.Frames) <= runtimeErrorFrameLimit {
		for _, frame := range re.Frames {
			render(frame)
		}
		return strings.TrimSuffix(b.String(), "\n")
	}
	half := runtimeErrorFrameLimit / 2
	for _, frame := range re.Frames[:half] {
		render(frame)
	}
	fmt.Fprintf(&b, "  ... %d more frames ...\n", len(re.Frames)-runtimeErrorFrameLimit)
	for _, frame := range re.Frames[len(re.Frames)-half:] {
		render(frame)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (in *Interpreter) errorAt(tok Token, format string, args ...any) error {
	return in.newRuntimeError(tok, fmt.Sprintf(format, args...))
}

func (in *Interpreter) newRuntimeError(tok Token, message string) error {
	frames := make([]StackFrame, 0, len(in.callStack)+1)
	if len(in.callStack) > 0 {
		current := in.callStack[len(in.callStack)-1]
		frames = append(frames, StackFrame{Function: current.Function, Pos: tok.Pos})
		for i := len(in.callStack) - 1; i >= 0; i-- {
			frames = append(frames, StackFrame(in.callStack[i]))
		}
	} else {
		frames = append(frames, StackFrame{Function: "<script>", Pos: tok.Pos})
	}
	return &RuntimeError{Token: tok, Message: message, Frames: frames}
}

// wrapError converts a plain error returned by a native into a runtime
// error located at tok. Runtime errors, quota and context errors pass
// through unchanged.
func (in *Interpreter) wrapError(err error, tok Token) error {
	if err == nil {
		return nil
	}
	var re *RuntimeError
	if errors.As(err, &re) || errors.Is(err, errStepQuotaExceeded) {
		return err
	}
	if in.ctx != nil && errors.Is(err, in.ctx.Err()) {
		return err
	}
	return in.newRuntimeError(tok, err.Error())
}
