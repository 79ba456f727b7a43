package lox

// parseStatement leaves curToken on the last token of the statement and
// returns nil after recording a syntax error.
func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case TokenPrint:
		return p.parsePrintStatement()
	case TokenReturn:
		return p.parseReturnStatement()
	case TokenIf:
		return p.parseIfStatement()
	case TokenWhile:
		return p.parseWhileStatement()
	case TokenFor:
		return p.parseForStatement()
	case TokenLeftBrace:
		pos := p.curToken.Pos
		stmts, ok := p.parseBlockStatements()
		if !ok {
			return nil
		}
		return &BlockStmt{Statements: stmts, position: pos}
	default:
		if stmt := p.parseExpressionStatement(); stmt != nil {
			return stmt
		}
		return nil
	}
}

// parseBlockStatements starts on '{' and stops on the matching '}'.
func (p *parser) parseBlockStatements() ([]Statement, bool) {
	stmts := []Statement{}
	p.nextToken()
	for p.curToken.Type != TokenRightBrace && p.curToken.Type != TokenEOF {
		if stmt := p.parseDeclaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if p.curToken.Type != TokenRightBrace {
		p.errorAt(p.curToken, "Expect '}' after block.")
		return nil, false
	}
	return stmts, true
}

func (p *parser) parsePrintStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}
	if !p.expectPeek(TokenSemicolon, "Expect ';' after value.") {
		return nil
	}
	return &PrintStmt{Expr: value, position: pos}
}

func (p *parser) parseReturnStatement() Statement {
	stmt := &ReturnStmt{Keyword: p.curToken}
	if p.peekToken.Type != TokenSemicolon {
		p.nextToken()
		stmt.Value = p.parseExpression(lowestPrec)
		if stmt.Value == nil {
			return nil
		}
	}
	if !p.expectPeek(TokenSemicolon, "Expect ';' after return value.") {
		return nil
	}
	return stmt
}

func (p *parser) parseIfStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(TokenLeftParen, "Expect '(' after 'if'.") {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(TokenRightParen, "Expect ')' after if condition.") {
		return nil
	}

	p.nextToken()
	then := p.parseStatement()
	if then == nil {
		return nil
	}

	stmt := &IfStmt{Condition: condition, Then: then, position: pos}
	if p.peekToken.Type == TokenElse {
		p.nextToken()
		p.nextToken()
		stmt.Else = p.parseStatement()
		if stmt.Else == nil {
			return nil
		}
	}
	return stmt
}

func (p *parser) parseWhileStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(TokenLeftParen, "Expect '(' after 'while'.") {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(TokenRightParen, "Expect ')' after condition.") {
		return nil
	}

	p.nextToken()
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &WhileStmt{Condition: condition, Body: body, position: pos}
}

// parseForStatement desugars `for (init; cond; incr) body` into a block
// holding init followed by a while loop.
func (p *parser) parseForStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(TokenLeftParen, "Expect '(' after 'for'.") {
		return nil
	}
	p.nextToken()

	var initializer Statement
	var loopVar *Token
	switch p.curToken.Type {
	case TokenSemicolon:
	case TokenVar:
		decl := p.parseVarDeclaration()
		if decl == nil {
			return nil
		}
		name := decl.Name
		loopVar = &name
		initializer = decl
	default:
		stmt := p.parseExpressionStatement()
		if stmt == nil {
			return nil
		}
		initializer = stmt
	}
	p.nextToken()

	var condition Expression
	if p.curToken.Type != TokenSemicolon {
		condition = p.parseExpression(lowestPrec)
		if condition == nil {
			return nil
		}
		if !p.expectPeek(TokenSemicolon, "Expect ';' after loop condition.") {
			return nil
		}
	}
	p.nextToken()

	var increment Expression
	if p.curToken.Type != TokenRightParen {
		increment = p.parseExpression(lowestPrec)
		if increment == nil {
			return nil
		}
		if !p.expectPeek(TokenRightParen, "Expect ')' after for clauses.") {
			return nil
		}
	}

	p.nextToken()
	body := p.parseStatement()
	if body == nil {
		return nil
	}

	if condition == nil {
		condition = &LiteralExpr{Token: Token{Type: TokenTrue, Lexeme: "true", Pos: pos}}
	}
	loop := &WhileStmt{
		Condition: condition,
		Body:      body,
		Increment: increment,
		LoopVar:   loopVar,
		position:  pos,
	}
	if initializer == nil {
		return loop
	}
	return &BlockStmt{Statements: []Statement{initializer, loop}, position: pos}
}

func (p *parser) parseExpressionStatement() *ExpressionStmt {
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(TokenSemicolon, "Expect ';' after expression.") {
		return nil
	}
	return &ExpressionStmt{Expr: expr}
}
