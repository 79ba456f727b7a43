package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/mgomes/lox/lox"
)

// exitIOError is reported when the script file cannot be read.
const exitIOError = 74

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML file with interpreter limits")
	plain := fs.Bool("plain", false, "use the line-mode REPL even on a terminal")
	check := fs.Bool("check", false, "report static errors without running the script")
	lsp := fs.Bool("lsp", false, "serve diagnostics over the language server protocol on stdio")
	fs.Usage = func() { printUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return lox.ExitOK
		}
		return lox.ExitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return lox.ExitUsage
	}
	if _, err := lox.NewEngine(cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return lox.ExitUsage
	}

	rest := fs.Args()
	if *lsp {
		if err := runLSP(cfg, stdin, stdout); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return lox.ExitOK
	}
	if *check {
		if len(rest) != 1 {
			printUsage(stderr)
			return lox.ExitUsage
		}
		return runCheck(rest[0], stdout, stderr)
	}

	switch len(rest) {
	case 0:
		return runPrompt(cfg, stdin, stdout, stderr, *plain)
	case 1:
		return runFile(cfg, rest[0], stdout, stderr)
	default:
		printUsage(stderr)
		return lox.ExitUsage
	}
}

func runFile(cfg lox.Config, path string, stdout, stderr io.Writer) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "read script: %v\n", err)
		return exitIOError
	}

	cfg.Stdout = stdout
	engine := lox.MustNewEngine(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = engine.NewInterpreter().Run(ctx, string(source), lox.ModeFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
	}
	return lox.ExitCode(err)
}

func runPrompt(cfg lox.Config, stdin io.Reader, stdout, stderr io.Writer, plain bool) int {
	f, isFile := stdin.(*os.File)
	if !isFile || !isTerminal(f) {
		return runLineLoop(newPipeReader(stdin), cfg, stdout, stderr)
	}
	if plain {
		return runPlainREPL(cfg, stdout, stderr)
	}
	if err := runREPL(cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return lox.ExitOK
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printUsage(w io.Writer) {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "Usage: %s [flags] [script]\n", prog)
	fmt.Fprintln(w, "With no script an interactive session starts.")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -config string")
	fmt.Fprintln(w, "    YAML file with recursion_limit and step_quota")
	fmt.Fprintln(w, "  -plain")
	fmt.Fprintln(w, "    use the line-mode REPL even on a terminal")
	fmt.Fprintln(w, "  -check")
	fmt.Fprintln(w, "    report static errors in script without running it")
	fmt.Fprintln(w, "  -lsp")
	fmt.Fprintln(w, "    serve diagnostics over the language server protocol on stdio")
}
