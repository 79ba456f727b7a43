package lox

type Node interface {
	Pos() Position
}

type Statement interface {
	Node
	stmtNode()
}

// Expression nodes are always pointers; the resolver keys its side table by
// node identity.
type Expression interface {
	Node
	exprNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) Pos() Position {
	if len(p.Statements) == 0 {
		return Position{}
	}
	return p.Statements[0].Pos()
}

type AssignExpr struct {
	Name  Token
	Value Expression
}

func (e *AssignExpr) exprNode()     {}
func (e *AssignExpr) Pos() Position { return e.Name.Pos }

type BinaryExpr struct {
	Left     Expression
	Operator Token
	Right    Expression
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.Operator.Pos }

type CallExpr struct {
	Callee Expression
	Paren  Token
	Args   []Expression
}

func (e *CallExpr) exprNode()     {}
func (e *CallExpr) Pos() Position { return e.Paren.Pos }

type GetExpr struct {
	Object Expression
	Name   Token
}

func (e *GetExpr) exprNode()     {}
func (e *GetExpr) Pos() Position { return e.Name.Pos }

type GroupingExpr struct {
	Inner Expression
}

func (e *GroupingExpr) exprNode()     {}
func (e *GroupingExpr) Pos() Position { return e.Inner.Pos() }

type LambdaExpr struct {
	Keyword Token
	Params  []Token
	Body    []Statement
}

func (e *LambdaExpr) exprNode()     {}
func (e *LambdaExpr) Pos() Position { return e.Keyword.Pos }

// LiteralExpr wraps a NUMBER, STRING, TRUE, FALSE or NIL token.
type LiteralExpr struct {
	Token Token
}

func (e *LiteralExpr) exprNode()     {}
func (e *LiteralExpr) Pos() Position { return e.Token.Pos }

type LogicalExpr struct {
	Left     Expression
	Operator Token
	Right    Expression
}

func (e *LogicalExpr) exprNode()     {}
func (e *LogicalExpr) Pos() Position { return e.Operator.Pos }

type SetExpr struct {
	Object Expression
	Name   Token
	Value  Expression
}

func (e *SetExpr) exprNode()     {}
func (e *SetExpr) Pos() Position { return e.Name.Pos }

type SuperExpr struct {
	Keyword Token
	Method  Token
}

func (e *SuperExpr) exprNode()     {}
func (e *SuperExpr) Pos() Position { return e.Keyword.Pos }

type ThisExpr struct {
	Keyword Token
}

func (e *ThisExpr) exprNode()     {}
func (e *ThisExpr) Pos() Position { return e.Keyword.Pos }

type UnaryExpr struct {
	Operator Token
	Right    Expression
}

func (e *UnaryExpr) exprNode()     {}
func (e *UnaryExpr) Pos() Position { return e.Operator.Pos }

type VariableExpr struct {
	Name Token
}

func (e *VariableExpr) exprNode()     {}
func (e *VariableExpr) Pos() Position { return e.Name.Pos }
