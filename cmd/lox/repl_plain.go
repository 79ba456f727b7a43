package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/mgomes/lox/lox"
)

const (
	promptMain    = "> "
	promptCont    = ". "
	historyFile   = ".lox_history"
	clearSequence = "\033[H\033[2J"
)

// lineReader is the subset of *liner.State the line-mode loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func runPlainREPL(cfg lox.Config, stdout, stderr io.Writer) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if home, err := os.UserHomeDir(); err == nil {
		histPath := filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	return runLineLoop(ln, cfg, stdout, stderr)
}

// runLineLoop reads statements until EOF or :quit. Runtime errors are
// reported and the session continues with its globals intact.
func runLineLoop(r lineReader, cfg lox.Config, stdout, stderr io.Writer) int {
	cfg.Stdout = stdout
	engine, err := lox.NewEngine(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return lox.ExitUsage
	}
	in := engine.NewInterpreter()

	for {
		source, ok := readStatement(r)
		if !ok {
			return lox.ExitOK
		}
		trimmed := strings.TrimSpace(source)
		if trimmed == "" {
			continue
		}
		r.AppendHistory(strings.ReplaceAll(source, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			switch cmd := strings.Fields(trimmed)[0]; cmd {
			case ":quit", ":q":
				return lox.ExitOK
			case ":help", ":h":
				fmt.Fprintln(stdout, replHelpText)
			case ":vars", ":v":
				for _, g := range userGlobals(engine, in) {
					fmt.Fprintf(stdout, "%s = %s\n", g.name, g.value)
				}
			case ":reset", ":r":
				in = engine.NewInterpreter()
				fmt.Fprintln(stdout, "Environment reset")
			case ":clear", ":c":
				fmt.Fprint(stdout, clearSequence)
			default:
				fmt.Fprintln(stderr, unknownCommand(cmd))
			}
			continue
		}

		if err := in.Run(context.Background(), source, lox.ModeInteractive); err != nil {
			fmt.Fprintln(stderr, err)
			in.ResetRuntimeError()
		}
	}
}

// readStatement keeps prompting with the continuation prompt while the
// collected input is incomplete. It returns false at end of input.
func readStatement(r lineReader) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := r.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !needsMoreInput(b.String()) {
			return b.String(), true
		}
	}
}

// pipeReader feeds the line loop from a non-terminal stdin without echoing
// prompts.
type pipeReader struct {
	scanner *bufio.Scanner
}

func newPipeReader(r io.Reader) *pipeReader {
	return &pipeReader{scanner: bufio.NewScanner(r)}
}

func (p *pipeReader) Prompt(string) (string, error) {
	if p.scanner.Scan() {
		return p.scanner.Text(), nil
	}
	if err := p.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (p *pipeReader) AppendHistory(string) {}
