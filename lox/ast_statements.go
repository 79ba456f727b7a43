package lox

type BlockStmt struct {
	Statements []Statement
	position   Position
}

func (s *BlockStmt) stmtNode()     {}
func (s *BlockStmt) Pos() Position { return s.position }

type ClassStmt struct {
	Name       Token
	Superclass *VariableExpr
	Methods    []*FunctionStmt
}

func (s *ClassStmt) stmtNode()     {}
func (s *ClassStmt) Pos() Position { return s.Name.Pos }

type ExpressionStmt struct {
	Expr Expression
}

func (s *ExpressionStmt) stmtNode()     {}
func (s *ExpressionStmt) Pos() Position { return s.Expr.Pos() }

// FunctionStmt declares a named function or a class method. Its Body is
// shared with every ScriptFunction created from it.
type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Statement
}

func (s *FunctionStmt) stmtNode()     {}
func (s *FunctionStmt) Pos() Position { return s.Name.Pos }

type IfStmt struct {
	Condition Expression
	Then      Statement
	Else      Statement
	position  Position
}

func (s *IfStmt) stmtNode()     {}
func (s *IfStmt) Pos() Position { return s.position }

type PrintStmt struct {
	Expr     Expression
	position Position
}

func (s *PrintStmt) stmtNode()     {}
func (s *PrintStmt) Pos() Position { return s.position }

type ReturnStmt struct {
	Keyword Token
	Value   Expression
}

func (s *ReturnStmt) stmtNode()     {}
func (s *ReturnStmt) Pos() Position { return s.Keyword.Pos }

type VarStmt struct {
	Name        Token
	Initializer Expression
}

func (s *VarStmt) stmtNode()     {}
func (s *VarStmt) Pos() Position { return s.Name.Pos }

// WhileStmt is also the target of for-loop desugaring. When LoopVar is set
// every iteration runs Body in a fresh scope holding its own copy of that
// variable; Increment then runs in the loop's scope.
type WhileStmt struct {
	Condition Expression
	Body      Statement
	Increment Expression
	LoopVar   *Token
	position  Position
}

func (s *WhileStmt) stmtNode()     {}
func (s *WhileStmt) Pos() Position { return s.position }
