// Package ast defines the Abstract Syntax Tree node types for LIL'C
// programs: declarations, statements, expressions and the type nodes that
// appear in variable, field and formal declarations.
//
// DESIGN CHOICE: every node carries its own source Position rather than
// relying on a side-table keyed by node identity. It's simpler to construct
// (the parser just passes the position of the token that started the
// construct) and it's exactly how the LIL'C compiler this package is
// descended from tags its tree: every node knows "where am I".
package ast

import "github.com/hassan/lilcc/internal/lexer"

// Node is satisfied by every AST node.
type Node interface {
	Pos() lexer.Position
}

// Expr is any node that produces a value: identifiers, literals, binary and
// unary operators, dot-access, assignment (LIL'C allows "x = y" as an
// expression, not just a statement) and calls.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action rather than producing a value.
type Stmt interface {
	Node
	stmtNode()
}

// Decl introduces a name: a variable, a function, a struct type, or a
// function formal parameter.
//
// DESIGN CHOICE: Decl is its own interface, not folded into Stmt, because
// struct field lists and formal-parameter lists only ever contain VarDecl /
// FormalDecl respectively - keeping Decl separate lets fieldNameAnalysis and
// formalsNameAnalysis accept a narrower, more meaningful slice type
// instead of Stmt and having to reject non-declarations at runtime.
type Decl interface {
	Node
	declNode()
}

// Program is the root of the tree: a flat top-level declaration list. LIL'C
// has no modules or imports, so there is nothing above this.
type Program struct {
	Decls []Decl
}

func (p *Program) Pos() lexer.Position {
	if len(p.Decls) == 0 {
		return lexer.Zero
	}
	return p.Decls[0].Pos()
}
