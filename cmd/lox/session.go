package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mgomes/lox/lox"
)

var replKeywords = []string{
	"and", "class", "else", "false", "for", "fun", "if", "nil",
	"or", "print", "return", "super", "this", "true", "var", "while",
}

// needsMoreInput reports whether source only fails because it stops early,
// such as an open block or an unterminated string.
func needsMoreInput(source string) bool {
	tokens, err := lox.Scan(source)
	if err != nil {
		var static *lox.StaticError
		if errors.As(err, &static) {
			for _, d := range static.Diagnostics {
				if d.Message == "Unterminated string." {
					return true
				}
			}
		}
		return false
	}
	_, err = lox.Parse(tokens)
	var static *lox.StaticError
	if !errors.As(err, &static) {
		return false
	}
	for _, d := range static.Diagnostics {
		if !d.AtEnd {
			return false
		}
	}
	return len(static.Diagnostics) > 0
}

// describeError renders err with a caret frame pointing into source.
func describeError(source string, err error) string {
	msg := err.Error()
	if pos, ok := lox.ErrorPosition(err); ok {
		if frame := lox.FormatCodeFrame(source, pos); frame != "" {
			msg += "\n" + frame
		}
	}
	var re *lox.RuntimeError
	if errors.As(err, &re) && len(re.Frames) > 1 {
		msg += "\n" + re.StackTrace()
	}
	return msg
}

type globalBinding struct {
	name  string
	value string
}

// userGlobals lists globals other than the registered natives.
func userGlobals(engine *lox.Engine, in *lox.Interpreter) []globalBinding {
	natives := engine.Builtins()
	var out []globalBinding
	for _, name := range in.GlobalNames() {
		val, _ := in.Global(name)
		if native := natives[name].Builtin(); native != nil && native == val.Builtin() {
			continue
		}
		out = append(out, globalBinding{name: name, value: val.String()})
	}
	return out
}

// completions returns keywords and global names starting with prefix.
func completions(in *lox.Interpreter, prefix string) []string {
	if prefix == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, word := range replKeywords {
		if strings.HasPrefix(word, prefix) && !seen[word] {
			seen[word] = true
			out = append(out, word)
		}
	}
	for _, name := range in.GlobalNames() {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

const replHelpText = `Commands:
  :help   show this help
  :vars   list global variables
  :reset  start over with a fresh interpreter
  :clear  clear the screen
  :quit   exit`

func unknownCommand(cmd string) string {
	return fmt.Sprintf("Unknown command: %s", cmd)
}
