package ast

import "github.com/hassan/lilcc/internal/lexer"

// TypeNode is the syntactic type annotation attached to a VarDecl,
// FormalDecl, or FnDecl's return type: "int", "bool", "void", or a struct
// name. It is NOT the resolved type - resolving a TypeNode to a type string
// (and validating that a struct-name type node actually names a declared
// struct) is name analysis's job (Err.undefType).
type TypeNode interface {
	Node
	// TypeString returns the syntactic type string exactly as written -
	// "int", "bool", "void", or the bare struct name. Name analysis
	// resolves this against the symbol table to build the canonical
	// VarSymbol; it is NOT itself the canonical type (a struct name
	// type string looks like "Point" here, but a VarSymbol's canonical
	// type string for a struct-typed variable is also just "Point" -
	// the "{f1,f2,}" form only appears on the StructSymbol naming the
	// type's own declaration).
	TypeString() string
	IsVoid() bool
}

type IntTypeNode struct{ StartPos lexer.Position }

func (t *IntTypeNode) Pos() lexer.Position  { return t.StartPos }
func (t *IntTypeNode) TypeString() string   { return "int" }
func (t *IntTypeNode) IsVoid() bool         { return false }

type BoolTypeNode struct{ StartPos lexer.Position }

func (t *BoolTypeNode) Pos() lexer.Position { return t.StartPos }
func (t *BoolTypeNode) TypeString() string  { return "bool" }
func (t *BoolTypeNode) IsVoid() bool        { return false }

type VoidTypeNode struct{ StartPos lexer.Position }

func (t *VoidTypeNode) Pos() lexer.Position { return t.StartPos }
func (t *VoidTypeNode) TypeString() string  { return "void" }
func (t *VoidTypeNode) IsVoid() bool        { return true }

// StructTypeNode names a struct type by the identifier used to declare it
// (e.g. "struct Point" makes every "Point x;" use a StructTypeNode{Name:
// "Point"}).
type StructTypeNode struct {
	StartPos lexer.Position
	Name     string
}

func (t *StructTypeNode) Pos() lexer.Position { return t.StartPos }
func (t *StructTypeNode) TypeString() string  { return t.Name }
func (t *StructTypeNode) IsVoid() bool        { return false }
