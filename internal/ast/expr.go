package ast

import (
	"github.com/hassan/lilcc/internal/lexer"
	"github.com/hassan/lilcc/internal/symtab"
)

func (*Id) exprNode()         {}
func (*IntLit) exprNode()     {}
func (*StringLit) exprNode()  {}
func (*TrueLit) exprNode()    {}
func (*FalseLit) exprNode()   {}
func (*UnaryMinus) exprNode() {}
func (*Not) exprNode()        {}
func (*DotAccess) exprNode()  {}
func (*AssignExpr) exprNode() {}
func (*CallExpr) exprNode()   {}
func (*BinaryExpr) exprNode() {}

// Id is an identifier reference: a use of a variable, function, or struct
// type name. ResolvedSymbol is filled in by name analysis the first time
// this node is visited and read by every later pass (type analysis never
// looks a name up again).
//
// DESIGN CHOICE: the resolved symbol lives directly on the node (interior
// mutation) rather than in a side table keyed by node identity. LIL'C's
// analysis is single-pass and single-threaded, so there's no need for the
// extra indirection a side table would buy; it would only make every
// lookup two steps instead of one.
type Id struct {
	StartPos       lexer.Position
	Name           string
	ResolvedSymbol symtab.Symbol
}

func (e *Id) Pos() lexer.Position { return e.StartPos }

type IntLit struct {
	StartPos lexer.Position
	Value    int
}

func (e *IntLit) Pos() lexer.Position { return e.StartPos }

// StringLit is a write-only string literal: LIL'C never compares, reads
// into, or concatenates strings (Non-goal), it can only be written with
// "output << ...".
type StringLit struct {
	StartPos lexer.Position
	Value    string
}

func (e *StringLit) Pos() lexer.Position { return e.StartPos }

type TrueLit struct{ StartPos lexer.Position }

func (e *TrueLit) Pos() lexer.Position { return e.StartPos }

type FalseLit struct{ StartPos lexer.Position }

func (e *FalseLit) Pos() lexer.Position { return e.StartPos }

// UnaryMinus is unary negation: "-x". Its operand must be int.
type UnaryMinus struct {
	StartPos lexer.Position
	Operand  Expr
}

func (e *UnaryMinus) Pos() lexer.Position { return e.StartPos }

// Not is logical negation: "!x". Its operand must be bool.
type Not struct {
	StartPos lexer.Position
	Operand  Expr
}

func (e *Not) Pos() lexer.Position { return e.StartPos }

// DotAccess is a field access "base.field". Base may itself be a DotAccess,
// allowing arbitrarily deep chains like "a.b.c". Field's ResolvedSymbol is
// filled in by name analysis once the base's struct type (and the field
// within it) is resolved.
type DotAccess struct {
	StartPos lexer.Position
	Base     Expr
	Field    *Id
}

func (e *DotAccess) Pos() lexer.Position { return e.StartPos }

// AssignExpr is "loc = exp", usable both as its own statement
// (AssignStmt wraps one) and as a subexpression ("y = (x = 3)").
type AssignExpr struct {
	StartPos lexer.Position
	LHS      Expr // always an Id or a DotAccess
	RHS      Expr
}

func (e *AssignExpr) Pos() lexer.Position { return e.StartPos }

// CallExpr is a function call "f(a1, a2, ...)". It has no symbol slot of
// its own: name analysis fills in Fn.ResolvedSymbol (Fn is an *Id), and
// type analysis reads the callee's symbol from there.
type CallExpr struct {
	StartPos lexer.Position
	Fn       *Id
	Args     []Expr
}

func (e *CallExpr) Pos() lexer.Position { return e.StartPos }

// BinOpKind groups binary operators by what type analysis demands of their
// operands and produces as a result, matching the BinOpKind distinction the
// type analyzer keys every error message off of.
type BinOpKind int

const (
	// BinOpMath: int op int -> int (+ - * /)
	BinOpMath BinOpKind = iota
	// BinOpLogical: bool op bool -> bool (&& ||)
	BinOpLogical
	// BinOpRelational: int op int -> bool (< <= > >=)
	BinOpRelational
)

// BinOp identifies a specific binary operator.
type BinOp int

const (
	OpPlus BinOp = iota
	OpMinus
	OpTimes
	OpDivide
	OpAnd
	OpOr
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpEquals
	OpNotEquals
)

var binOpKinds = map[BinOp]BinOpKind{
	OpPlus: BinOpMath, OpMinus: BinOpMath, OpTimes: BinOpMath, OpDivide: BinOpMath,
	OpAnd: BinOpLogical, OpOr: BinOpLogical,
	OpLess: BinOpRelational, OpLessEq: BinOpRelational, OpGreater: BinOpRelational, OpGreaterEq: BinOpRelational,
}

// BinaryExpr is any binary operator EXCEPT == and != - those get their own
// node type (EqualsExpr / NotEqualsExpr) because equality is defined over
// every type (with its own bespoke rules), not just int/bool, and because
// != famously reports its diagnostic at a different position than every
// other binary operator (see EqualsExpr's doc comment).
type BinaryExpr struct {
	StartPos lexer.Position
	Op       BinOp
	Left     Expr
	Right    Expr
}

func (e *BinaryExpr) Pos() lexer.Position { return e.StartPos }

// Kind reports which operand/result rule this operator follows.
func (e *BinaryExpr) Kind() BinOpKind { return binOpKinds[e.Op] }

func (*EqualsExpr) exprNode()    {}
func (*NotEqualsExpr) exprNode() {}

// EqualsExpr is "lhs == rhs". Its type-mismatch diagnostic is reported at
// the LEFT operand's position.
//
// DESIGN NOTE: this asymmetry with NotEqualsExpr (which reports at the
// operator's own position) is preserved from the toolchain this analyzer is
// descended from; see the design notes in the repository root for why it's
// kept rather than "fixed".
type EqualsExpr struct {
	StartPos lexer.Position
	Left     Expr
	Right    Expr
}

func (e *EqualsExpr) Pos() lexer.Position { return e.StartPos }

// NotEqualsExpr is "lhs != rhs". Its type-mismatch diagnostic is reported
// at the OPERATOR's own position, not the left operand's - see
// EqualsExpr's doc comment.
type NotEqualsExpr struct {
	StartPos lexer.Position
	Left     Expr
	Right    Expr
}

func (e *NotEqualsExpr) Pos() lexer.Position { return e.StartPos }
