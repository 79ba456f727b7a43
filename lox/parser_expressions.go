package lox

// parseExpression climbs precedence from curToken. Operators at the same
// level fold left because the right operand is parsed at the operator's own
// precedence; assignment is the exception and recurses at lowestPrec.
func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorAt(p.curToken, "Expect expression.")
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *parser) parseVariable() Expression {
	return &VariableExpr{Name: p.curToken}
}

func (p *parser) parseLiteral() Expression {
	return &LiteralExpr{Token: p.curToken}
}

func (p *parser) parseThis() Expression {
	return &ThisExpr{Keyword: p.curToken}
}

func (p *parser) parseSuper() Expression {
	keyword := p.curToken
	if !p.expectPeek(TokenDot, "Expect '.' after 'super'.") {
		return nil
	}
	if !p.expectPeek(TokenIdentifier, "Expect superclass method name.") {
		return nil
	}
	return &SuperExpr{Keyword: keyword, Method: p.curToken}
}

func (p *parser) parseGroupedExpression() Expression {
	p.nextToken()
	inner := p.parseExpression(lowestPrec)
	if inner == nil {
		return nil
	}
	if !p.expectPeek(TokenRightParen, "Expect ')' after expression.") {
		return nil
	}
	return &GroupingExpr{Inner: inner}
}

func (p *parser) parsePrefixExpression() Expression {
	operator := p.curToken
	p.nextToken()
	right := p.parseExpression(precUnary)
	if right == nil {
		return nil
	}
	return &UnaryExpr{Operator: operator, Right: right}
}

func (p *parser) parseLambda() Expression {
	keyword := p.curToken
	if !p.expectPeek(TokenLeftParen, "Expect '(' after 'fun'.") {
		return nil
	}
	params, ok := p.parseParameters()
	if !ok {
		return nil
	}
	if !p.expectPeek(TokenLeftBrace, "Expect '{' before function body.") {
		return nil
	}
	body, ok := p.parseBlockStatements()
	if !ok {
		return nil
	}
	return &LambdaExpr{Keyword: keyword, Params: params, Body: body}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	operator := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &BinaryExpr{Left: left, Operator: operator, Right: right}
}

func (p *parser) parseLogicalExpression(left Expression) Expression {
	operator := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &LogicalExpr{Left: left, Operator: operator, Right: right}
}

// parseAssignment turns `target = value` into Assign or Set. Any other
// target is reported but the left operand is kept so parsing continues.
func (p *parser) parseAssignment(target Expression) Expression {
	equals := p.curToken
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}

	switch t := target.(type) {
	case *VariableExpr:
		return &AssignExpr{Name: t.Name, Value: value}
	case *GetExpr:
		return &SetExpr{Object: t.Object, Name: t.Name, Value: value}
	}
	p.errorAt(equals, "Invalid assignment target.")
	return target
}

func (p *parser) parseCallExpression(callee Expression) Expression {
	args := []Expression{}
	if p.peekToken.Type != TokenRightParen {
		for {
			p.nextToken()
			if len(args) >= maxArgs {
				p.errorAt(p.curToken, "Can't have more than 255 arguments.")
			}
			arg := p.parseExpression(lowestPrec)
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if p.peekToken.Type != TokenComma {
				break
			}
			p.nextToken()
		}
	}
	if !p.expectPeek(TokenRightParen, "Expect ')' after arguments.") {
		return nil
	}
	return &CallExpr{Callee: callee, Paren: p.curToken, Args: args}
}

func (p *parser) parseGetExpression(object Expression) Expression {
	if !p.expectPeek(TokenIdentifier, "Expect property name after '.'.") {
		return nil
	}
	return &GetExpr{Object: object, Name: p.curToken}
}
