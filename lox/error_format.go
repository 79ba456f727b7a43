package lox

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCodeFrame renders the source line at pos with a caret under the
// column. It returns "" when pos falls outside source.
func FormatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := strings.TrimRight(lines[pos.Line-1], "\r")
	lineRunes := []rune(lineText)

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		" %s | %s\n %s | %s^",
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}

// ErrorPosition returns where err points in the source: the first
// diagnostic of a static error or the token of a runtime error.
func ErrorPosition(err error) (Position, bool) {
	switch e := err.(type) {
	case *StaticError:
		if len(e.Diagnostics) == 0 {
			return Position{}, false
		}
		d := e.Diagnostics[0]
		return Position{Line: d.Line, Column: d.Column}, true
	case *RuntimeError:
		return e.Token.Pos, true
	default:
		return Position{}, false
	}
}
