package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mgomes/lox/lox"
)

// runCheck scans, parses and resolves a script without running it and
// prints one path:line:column line per diagnostic.
func runCheck(path string, stdout, stderr io.Writer) int {
	scriptPath, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintf(stderr, "resolve script path: %v\n", err)
		return exitIOError
	}
	source, err := os.ReadFile(scriptPath)
	if err != nil {
		fmt.Fprintf(stderr, "read script: %v\n", err)
		return exitIOError
	}

	err = lox.Check(string(source))
	if err == nil {
		fmt.Fprintln(stdout, "No issues found")
		return lox.ExitOK
	}

	var static *lox.StaticError
	if !errors.As(err, &static) {
		fmt.Fprintln(stderr, err)
		return lox.ExitCode(err)
	}
	for _, d := range static.Diagnostics {
		line := max(d.Line, 1)
		column := max(d.Column, 1)
		fmt.Fprintf(stderr, "%s:%d:%d: %s (%s)\n", scriptPath, line, column, d.Message, static.Phase)
	}
	return lox.ExitCode(err)
}
