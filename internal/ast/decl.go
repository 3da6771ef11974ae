package ast

import (
	"github.com/hassan/lilcc/internal/lexer"
	"github.com/hassan/lilcc/internal/symtab"
)

func (*VarDecl) declNode()    {}
func (*FormalDecl) declNode() {}
func (*FuncDecl) declNode()   {}
func (*StructDecl) declNode() {}

// VarDecl also satisfies Stmt, and the statement walkers of the analysis
// passes and codegen accept one. The parser itself only ever places
// declarations in a block's decl list, ahead of its statements.
func (*VarDecl) stmtNode() {}

// VarDecl declares a variable: "int x;" or "Point p;".
type VarDecl struct {
	StartPos lexer.Position
	Type     TypeNode
	Name     *Id
}

func (d *VarDecl) Pos() lexer.Position { return d.StartPos }

// FormalDecl declares one parameter of a function signature. Name analysis
// fills in ResolvedVarSymbol once the parameter's VarSymbol is constructed,
// so later passes (in particular FnDecl's own name analysis, which needs
// every formal's symbol to build the enclosing FuncSymbol) don't have to
// re-derive it.
type FormalDecl struct {
	StartPos          lexer.Position
	Type              TypeNode
	Name              *Id
	ResolvedVarSymbol *symtab.VarSymbol
}

func (d *FormalDecl) Pos() lexer.Position { return d.StartPos }

// FuncDecl declares a function: its return type, name, formals, and body.
// Body's decl list is parsed with the same declaration rule as the top
// level, so the parser accepts a nested FuncDecl there; codegen only
// emits code for top-level functions.
type FuncDecl struct {
	StartPos lexer.Position
	RetType  TypeNode
	Name     *Id
	Formals  []*FormalDecl
	Body     *FnBody
}

func (d *FuncDecl) Pos() lexer.Position { return d.StartPos }

// FnBody is a function's declaration list followed by its statement list.
// If/While/IfElse bodies have the same decl-list-then-stmt-list shape but
// carry their Decls/Stmts lists directly rather than through this type.
type FnBody struct {
	Decls []Decl
	Stmts []Stmt
}

// StructDecl declares a struct type: its name and field list. Every
// element of Fields is syntactically a VarDecl (LIL'C's grammar makes
// anything else inside a struct body a parse error). The parser accepts
// any type on a field, void included; name analysis rejects a void field.
type StructDecl struct {
	StartPos lexer.Position
	Name     *Id
	Fields   []*VarDecl
}

func (d *StructDecl) Pos() lexer.Position { return d.StartPos }
