package ast

import "github.com/hassan/lilcc/internal/lexer"

func (*AssignStmt) stmtNode()  {}
func (*PostIncStmt) stmtNode() {}
func (*PostDecStmt) stmtNode() {}
func (*ReadStmt) stmtNode()    {}
func (*WriteStmt) stmtNode()   {}
func (*IfStmt) stmtNode()      {}
func (*IfElseStmt) stmtNode()  {}
func (*WhileStmt) stmtNode()   {}
func (*CallStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode()  {}

// AssignStmt is an assignment used as a statement: "x = 3;". It just wraps
// an AssignExpr - the underlying expression is identical whether it
// appears standalone or nested ("y = (x = 3)").
type AssignStmt struct {
	Assign *AssignExpr
}

func (s *AssignStmt) Pos() lexer.Position { return s.Assign.Pos() }

// PostIncStmt is "loc++;". Target is always an Id or DotAccess.
type PostIncStmt struct {
	StartPos lexer.Position
	Target   Expr
}

func (s *PostIncStmt) Pos() lexer.Position { return s.StartPos }

// PostDecStmt is "loc--;".
type PostDecStmt struct {
	StartPos lexer.Position
	Target   Expr
}

func (s *PostDecStmt) Pos() lexer.Position { return s.StartPos }

// ReadStmt is "input >> loc;": reads a value into an int/bool/string
// variable. Reading into a function, struct name, or struct variable is a
// type error.
type ReadStmt struct {
	StartPos lexer.Position
	Target   Expr
}

func (s *ReadStmt) Pos() lexer.Position { return s.StartPos }

// WriteStmt is "output << exp;": writes a value. Writing a function,
// struct name, struct variable, or void-typed expression is a type error.
type WriteStmt struct {
	StartPos lexer.Position
	Value    Expr
}

func (s *WriteStmt) Pos() lexer.Position { return s.StartPos }

// IfStmt is "if (cond) { decls stmts }". It opens exactly one scope shared
// by Decls and Stmts.
type IfStmt struct {
	StartPos lexer.Position
	Cond     Expr
	Decls    []Decl
	Stmts    []Stmt
}

func (s *IfStmt) Pos() lexer.Position { return s.StartPos }

// IfElseStmt is "if (cond) { declsT stmtsT } else { declsF stmtsF }".
//
// DESIGN NOTE: name analysis opens a SINGLE scope shared by all four lists
// (declsT, stmtsT, declsF, stmtsF), not two separate then/else scopes. That
// means a variable declared in the "then" branch is visible (though almost
// never meaningfully usable, since it's never been assigned) in the "else"
// branch's declarations and statements too. This mirrors the source
// toolchain's own IfElseStmtNode::nameAnalysis, which pushes one scope
// before processing all four lists and pops it once at the end.
type IfElseStmt struct {
	StartPos lexer.Position
	Cond     Expr
	DeclsT   []Decl
	StmtsT   []Stmt
	DeclsF   []Decl
	StmtsF   []Stmt
}

func (s *IfElseStmt) Pos() lexer.Position { return s.StartPos }

// WhileStmt is "while (cond) { decls stmts }", opening one scope shared by
// Decls and Stmts (same shape as IfStmt).
type WhileStmt struct {
	StartPos lexer.Position
	Cond     Expr
	Decls    []Decl
	Stmts    []Stmt
}

func (s *WhileStmt) Pos() lexer.Position { return s.StartPos }

// CallStmt is a function call used as a statement, discarding any return
// value: "f(1, 2);".
type CallStmt struct {
	Call *CallExpr
}

func (s *CallStmt) Pos() lexer.Position { return s.Call.Pos() }

// ReturnStmt is "return;" (Value == nil) or "return exp;".
type ReturnStmt struct {
	StartPos lexer.Position
	Value    Expr // nil for a bare "return;"
}

func (s *ReturnStmt) Pos() lexer.Position { return s.StartPos }
