package lox

import "fmt"

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	TokenEOF TokenType = "EOF"

	TokenLeftParen  TokenType = "("
	TokenRightParen TokenType = ")"
	TokenLeftBrace  TokenType = "{"
	TokenRightBrace TokenType = "}"
	TokenComma      TokenType = ","
	TokenDot        TokenType = "."
	TokenMinus      TokenType = "-"
	TokenPlus       TokenType = "+"
	TokenSemicolon  TokenType = ";"
	TokenSlash      TokenType = "/"
	TokenStar       TokenType = "*"

	TokenBang         TokenType = "!"
	TokenBangEqual    TokenType = "!="
	TokenEqual        TokenType = "="
	TokenEqualEqual   TokenType = "=="
	TokenGreater      TokenType = ">"
	TokenGreaterEqual TokenType = ">="
	TokenLess         TokenType = "<"
	TokenLessEqual    TokenType = "<="

	TokenIdentifier TokenType = "IDENTIFIER"
	TokenString     TokenType = "STRING"
	TokenNumber     TokenType = "NUMBER"

	TokenAnd    TokenType = "AND"
	TokenClass  TokenType = "CLASS"
	TokenElse   TokenType = "ELSE"
	TokenFalse  TokenType = "FALSE"
	TokenFor    TokenType = "FOR"
	TokenFun    TokenType = "FUN"
	TokenIf     TokenType = "IF"
	TokenNil    TokenType = "NIL"
	TokenOr     TokenType = "OR"
	TokenPrint  TokenType = "PRINT"
	TokenReturn TokenType = "RETURN"
	TokenSuper  TokenType = "SUPER"
	TokenThis   TokenType = "THIS"
	TokenTrue   TokenType = "TRUE"
	TokenVar    TokenType = "VAR"
	TokenWhile  TokenType = "WHILE"
)

var keywords = map[string]TokenType{
	"and":    TokenAnd,
	"class":  TokenClass,
	"else":   TokenElse,
	"false":  TokenFalse,
	"for":    TokenFor,
	"fun":    TokenFun,
	"if":     TokenIf,
	"nil":    TokenNil,
	"or":     TokenOr,
	"print":  TokenPrint,
	"return": TokenReturn,
	"super":  TokenSuper,
	"this":   TokenThis,
	"true":   TokenTrue,
	"var":    TokenVar,
	"while":  TokenWhile,
}

// Token captures lexical information for the parser. Literal holds the
// decoded payload of NUMBER (float64) and STRING (string) tokens.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Pos     Position
}

// Position identifies a line and rune column in the source file.
type Position struct {
	Line   int
	Column int
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return TokenIdentifier
}
