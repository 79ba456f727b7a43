package lox

const (
	lowestPrec = iota
	precAssign
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
)

var precedences = map[TokenType]int{
	TokenEqual:        precAssign,
	TokenOr:           precOr,
	TokenAnd:          precAnd,
	TokenEqualEqual:   precEquality,
	TokenBangEqual:    precEquality,
	TokenLess:         precComparison,
	TokenLessEqual:    precComparison,
	TokenGreater:      precComparison,
	TokenGreaterEqual: precComparison,
	TokenPlus:         precTerm,
	TokenMinus:        precTerm,
	TokenStar:         precFactor,
	TokenSlash:        precFactor,
	TokenLeftParen:    precCall,
	TokenDot:          precCall,
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return lowestPrec
}
