package lox

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

const maxArgs = 255

type parser struct {
	tokens []Token
	next   int

	curToken  Token
	peekToken Token

	diagnostics []Diagnostic

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

// Parse builds the statement list for a token stream produced by Scan.
// Syntax errors are accumulated and returned as a *StaticError for
// PhaseParse; the partial statement list is still returned.
func Parse(tokens []Token) ([]Statement, error) {
	p := newParser(tokens)
	program := p.parseProgram()
	if len(p.diagnostics) > 0 {
		return program.Statements, &StaticError{Phase: PhaseParse, Diagnostics: p.diagnostics}
	}
	return program.Statements, nil
}

func newParser(tokens []Token) *parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		eof := Token{Type: TokenEOF}
		if len(tokens) > 0 {
			eof.Pos = tokens[len(tokens)-1].Pos
		}
		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}
	p := &parser{tokens: tokens}

	p.prefixFns = make(map[TokenType]prefixParseFn)
	p.infixFns = make(map[TokenType]infixParseFn)

	p.registerPrefix(TokenIdentifier, p.parseVariable)
	p.registerPrefix(TokenNumber, p.parseLiteral)
	p.registerPrefix(TokenString, p.parseLiteral)
	p.registerPrefix(TokenTrue, p.parseLiteral)
	p.registerPrefix(TokenFalse, p.parseLiteral)
	p.registerPrefix(TokenNil, p.parseLiteral)
	p.registerPrefix(TokenLeftParen, p.parseGroupedExpression)
	p.registerPrefix(TokenBang, p.parsePrefixExpression)
	p.registerPrefix(TokenMinus, p.parsePrefixExpression)
	p.registerPrefix(TokenThis, p.parseThis)
	p.registerPrefix(TokenSuper, p.parseSuper)
	p.registerPrefix(TokenFun, p.parseLambda)

	p.infixFns[TokenEqual] = p.parseAssignment
	p.infixFns[TokenOr] = p.parseLogicalExpression
	p.infixFns[TokenAnd] = p.parseLogicalExpression
	p.infixFns[TokenEqualEqual] = p.parseInfixExpression
	p.infixFns[TokenBangEqual] = p.parseInfixExpression
	p.infixFns[TokenLess] = p.parseInfixExpression
	p.infixFns[TokenLessEqual] = p.parseInfixExpression
	p.infixFns[TokenGreater] = p.parseInfixExpression
	p.infixFns[TokenGreaterEqual] = p.parseInfixExpression
	p.infixFns[TokenPlus] = p.parseInfixExpression
	p.infixFns[TokenMinus] = p.parseInfixExpression
	p.infixFns[TokenStar] = p.parseInfixExpression
	p.infixFns[TokenSlash] = p.parseInfixExpression
	p.infixFns[TokenLeftParen] = p.parseCallExpression
	p.infixFns[TokenDot] = p.parseGetExpression

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) registerPrefix(tt TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

// nextToken shifts the lookahead window; once the stream is exhausted the
// peek token stays on EOF.
func (p *parser) nextToken() {
	p.curToken = p.peekToken
	if p.next < len(p.tokens) {
		p.peekToken = p.tokens[p.next]
		p.next++
	}
}

func (p *parser) expectPeek(tt TokenType, message string) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorAt(p.peekToken, message)
	return false
}

func (p *parser) parseProgram() *Program {
	program := &Program{}

	for p.curToken.Type != TokenEOF {
		if stmt := p.parseDeclaration(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}

	return program
}

// parseDeclaration parses one declaration and leaves curToken on the first
// token after it. A nil result means a syntax error was recorded and the
// parser has been resynchronized at the next statement boundary.
func (p *parser) parseDeclaration() Statement {
	var stmt Statement
	switch p.curToken.Type {
	case TokenClass:
		if class := p.parseClassDeclaration(); class != nil {
			stmt = class
		}
	case TokenFun:
		if p.peekToken.Type != TokenIdentifier {
			stmt = p.parseStatement()
			break
		}
		p.nextToken()
		if fn := p.parseFunction("function"); fn != nil {
			stmt = fn
		}
	case TokenVar:
		if decl := p.parseVarDeclaration(); decl != nil {
			stmt = decl
		}
	default:
		stmt = p.parseStatement()
	}

	if stmt == nil {
		p.synchronize()
		return nil
	}
	p.nextToken()
	return stmt
}

// synchronize discards tokens until a statement boundary so one syntax
// fault yields one diagnostic.
func (p *parser) synchronize() {
	for p.curToken.Type != TokenEOF {
		if p.curToken.Type == TokenSemicolon {
			p.nextToken()
			return
		}
		switch p.peekToken.Type {
		case TokenClass, TokenFun, TokenVar, TokenFor, TokenIf, TokenWhile, TokenPrint, TokenReturn:
			p.nextToken()
			return
		}
		p.nextToken()
	}
}

func (p *parser) parseClassDeclaration() *ClassStmt {
	if !p.expectPeek(TokenIdentifier, "Expect class name.") {
		return nil
	}
	stmt := &ClassStmt{Name: p.curToken}

	if p.peekToken.Type == TokenLess {
		p.nextToken()
		if !p.expectPeek(TokenIdentifier, "Expect superclass name.") {
			return nil
		}
		stmt.Superclass = &VariableExpr{Name: p.curToken}
	}

	if !p.expectPeek(TokenLeftBrace, "Expect '{' before class body.") {
		return nil
	}
	p.nextToken()

	for p.curToken.Type != TokenRightBrace && p.curToken.Type != TokenEOF {
		method := p.parseFunction("method")
		if method == nil {
			return nil
		}
		stmt.Methods = append(stmt.Methods, method)
		p.nextToken()
	}

	if p.curToken.Type != TokenRightBrace {
		p.errorAt(p.curToken, "Expect '}' after class body.")
		return nil
	}
	return stmt
}

// parseFunction expects curToken on the function name and leaves it on the
// closing brace of the body.
func (p *parser) parseFunction(kind string) *FunctionStmt {
	if p.curToken.Type != TokenIdentifier {
		p.errorAt(p.curToken, "Expect "+kind+" name.")
		return nil
	}
	name := p.curToken

	if !p.expectPeek(TokenLeftParen, "Expect '(' after "+kind+" name.") {
		return nil
	}
	params, ok := p.parseParameters()
	if !ok {
		return nil
	}
	if !p.expectPeek(TokenLeftBrace, "Expect '{' before "+kind+" body.") {
		return nil
	}
	body, ok := p.parseBlockStatements()
	if !ok {
		return nil
	}
	return &FunctionStmt{Name: name, Params: params, Body: body}
}

// parseParameters starts on '(' and stops on ')'.
func (p *parser) parseParameters() ([]Token, bool) {
	params := []Token{}
	if p.peekToken.Type == TokenRightParen {
		p.nextToken()
		return params, true
	}
	for {
		if len(params) >= maxArgs {
			p.errorAt(p.peekToken, "Can't have more than 255 parameters.")
		}
		if !p.expectPeek(TokenIdentifier, "Expect parameter name.") {
			return nil, false
		}
		params = append(params, p.curToken)
		if p.peekToken.Type != TokenComma {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(TokenRightParen, "Expect ')' after parameters.") {
		return nil, false
	}
	return params, true
}

func (p *parser) parseVarDeclaration() *VarStmt {
	if !p.expectPeek(TokenIdentifier, "Expect variable name.") {
		return nil
	}
	stmt := &VarStmt{Name: p.curToken}

	if p.peekToken.Type == TokenEqual {
		p.nextToken()
		p.nextToken()
		stmt.Initializer = p.parseExpression(lowestPrec)
		if stmt.Initializer == nil {
			return nil
		}
	}

	if !p.expectPeek(TokenSemicolon, "Expect ';' after variable declaration.") {
		return nil
	}
	return stmt
}
