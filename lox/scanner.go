package lox

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

type scanner struct {
	input string

	start  int
	offset int

	line     int
	column   int
	startPos Position

	tokens      []Token
	diagnostics []Diagnostic
}

// Scan converts source text into tokens terminated by a single EOF token.
// Lexical errors are accumulated; when any occurred the returned error is a
// *StaticError for PhaseScan and the token slice is still complete.
func Scan(source string) ([]Token, error) {
	s := newScanner(source)
	tokens := s.scanTokens()
	if len(s.diagnostics) > 0 {
		return tokens, &StaticError{Phase: PhaseScan, Diagnostics: s.diagnostics}
	}
	return tokens, nil
}

func newScanner(input string) *scanner {
	return &scanner{input: input, line: 1}
}

func (s *scanner) scanTokens() []Token {
	for !s.atEnd() {
		s.start = s.offset
		s.startPos = Position{Line: s.line, Column: s.column + 1}
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: TokenEOF, Pos: Position{Line: s.line, Column: s.column + 1}})
	return s.tokens
}

func (s *scanner) atEnd() bool {
	return s.offset >= len(s.input)
}

func (s *scanner) readRune() rune {
	r, w := utf8.DecodeRuneInString(s.input[s.offset:])
	s.offset += w
	if r == '\n' {
		s.line++
		s.column = 0
	} else {
		s.column++
	}
	return r
}

func (s *scanner) peekRune() rune {
	if s.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.offset:])
	return r
}

func (s *scanner) peekRuneNext() rune {
	if s.atEnd() {
		return 0
	}
	_, w := utf8.DecodeRuneInString(s.input[s.offset:])
	if s.offset+w >= len(s.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.offset+w:])
	return r
}

func (s *scanner) match(expected rune) bool {
	if s.peekRune() != expected || s.atEnd() {
		return false
	}
	s.readRune()
	return true
}

func (s *scanner) scanToken() {
	r := s.readRune()
	switch r {
	case '(':
		s.addToken(TokenLeftParen)
	case ')':
		s.addToken(TokenRightParen)
	case '{':
		s.addToken(TokenLeftBrace)
	case '}':
		s.addToken(TokenRightBrace)
	case ',':
		s.addToken(TokenComma)
	case '.':
		s.addToken(TokenDot)
	case '-':
		s.addToken(TokenMinus)
	case '+':
		s.addToken(TokenPlus)
	case ';':
		s.addToken(TokenSemicolon)
	case '*':
		s.addToken(TokenStar)
	case '!':
		s.addTwoCharToken('=', TokenBangEqual, TokenBang)
	case '=':
		s.addTwoCharToken('=', TokenEqualEqual, TokenEqual)
	case '<':
		s.addTwoCharToken('=', TokenLessEqual, TokenLess)
	case '>':
		s.addTwoCharToken('=', TokenGreaterEqual, TokenGreater)
	case '/':
		if s.match('/') {
			s.skipComment()
		} else {
			s.addToken(TokenSlash)
		}
	case ' ', '\r', '\t', '\n':
	case '"':
		s.readString()
	default:
		switch {
		case isDigit(r):
			s.readNumber()
		case isIdentifierStart(r):
			s.readIdentifier()
		default:
			s.errorf("Unexpected character: %c", r)
		}
	}
}

func (s *scanner) addTwoCharToken(second rune, double, single TokenType) {
	if s.match(second) {
		s.addToken(double)
		return
	}
	s.addToken(single)
}

func (s *scanner) addToken(tt TokenType) {
	s.addLiteralToken(tt, nil)
}

func (s *scanner) addLiteralToken(tt TokenType, literal any) {
	s.tokens = append(s.tokens, Token{
		Type:    tt,
		Lexeme:  s.input[s.start:s.offset],
		Literal: literal,
		Pos:     s.startPos,
	})
}

func (s *scanner) skipComment() {
	for !s.atEnd() && s.peekRune() != '\n' {
		s.readRune()
	}
}

func (s *scanner) readString() {
	for !s.atEnd() && s.peekRune() != '"' {
		s.readRune()
	}
	if s.atEnd() {
		s.errorf("Unterminated string.")
		return
	}
	// closing quote
	s.readRune()
	s.addLiteralToken(TokenString, s.input[s.start+1:s.offset-1])
}

func (s *scanner) readNumber() {
	for isDigit(s.peekRune()) {
		s.readRune()
	}
	if s.peekRune() == '.' && isDigit(s.peekRuneNext()) {
		s.readRune()
		for isDigit(s.peekRune()) {
			s.readRune()
		}
	}
	value, err := strconv.ParseFloat(s.input[s.start:s.offset], 64)
	if err != nil {
		s.errorf("Invalid number literal.")
		return
	}
	s.addLiteralToken(TokenNumber, value)
}

func (s *scanner) readIdentifier() {
	for isIdentifierRune(s.peekRune()) {
		s.readRune()
	}
	s.addToken(lookupIdent(s.input[s.start:s.offset]))
}

// errorf reports at the current line. A token that ran onto later lines
// takes its column from where scanning stopped so both refer to one line.
func (s *scanner) errorf(format string, args ...any) {
	column := s.startPos.Column
	if s.line != s.startPos.Line {
		column = s.column + 1
	}
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Line:    s.line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	})
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentifierRune(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}
