package lox

import (
	"errors"
	"fmt"
	"strings"
)

// Phase names the pipeline stage that produced a static error.
type Phase int

const (
	PhaseScan Phase = iota
	PhaseParse
	PhaseResolve
)

func (p Phase) String() string {
	switch p {
	case PhaseScan:
		return "scan"
	case PhaseParse:
		return "parse"
	case PhaseResolve:
		return "resolve"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Exit statuses reported by the command line driver.
const (
	ExitOK           = 0
	ExitUsage        = 64
	ExitSyntaxError  = 65
	ExitResolveError = 66
	ExitRuntimeError = 70
)

// Diagnostic is a single reported scan, parse or resolve problem. Where is
// empty for scan errors, "end" at end of input, or the offending lexeme.
type Diagnostic struct {
	Line    int
	Column  int
	Where   string
	AtEnd   bool
	Message string
}

func (d Diagnostic) String() string {
	switch {
	case d.AtEnd:
		return formatDiagnostic(d.Line, " at end", d.Message)
	case d.Where != "":
		return formatDiagnostic(d.Line, fmt.Sprintf(" at '%s'", d.Where), d.Message)
	default:
		return formatDiagnostic(d.Line, "", d.Message)
	}
}

func formatDiagnostic(line int, where, message string) string {
	return fmt.Sprintf("[line %d] Error%s: %s", line, where, message)
}

func tokenDiagnostic(tok Token, message string) Diagnostic {
	d := Diagnostic{Line: tok.Pos.Line, Column: tok.Pos.Column, Message: message}
	if tok.Type == TokenEOF {
		d.AtEnd = true
	} else {
		d.Where = tok.Lexeme
	}
	return d
}

// StaticError carries every diagnostic accumulated by one static phase.
type StaticError struct {
	Phase       Phase
	Diagnostics []Diagnostic
}

func (e *StaticError) Error() string {
	lines := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// ExitCode maps a pipeline error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var static *StaticError
	if errors.As(err, &static) {
		if static.Phase == PhaseResolve {
			return ExitResolveError
		}
		return ExitSyntaxError
	}
	return ExitRuntimeError
}
