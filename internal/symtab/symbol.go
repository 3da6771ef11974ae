// Package symtab implements LIL'C's symbol table: the set of declared
// names visible at a point in the program, organized as a stack of scopes.
//
// DESIGN PHILOSOPHY:
// A symbol's type is represented as a canonical "type string" rather than a
// rich Type interface: "int", "bool", "void", "string" for primitives,
// "T1,T2,...,Tn->R" for a function signature (no spaces; a zero-arg
// function is "->R"), and "{f1,f2,...,fk,}" for the struct that declares
// fields f1..fk (note the trailing comma after every field, including the
// last). Two function or struct symbols compare equal exactly when their
// type strings are equal - this is the same representation the type
// analyzer works in, so there is no translation step between "the type a
// symbol was declared with" and "the type an expression evaluates to".
package symtab

import "github.com/hassan/lilcc/internal/lexer"

// SymbolKind distinguishes the three things a name can refer to in LIL'C:
// a variable (including function formals), a function, or a struct type.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolStruct
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Symbol is satisfied by every entry a scope can hold.
type Symbol interface {
	Name() string
	Kind() SymbolKind
	// TypeString returns this symbol's canonical type string.
	TypeString() string
	// CompositeType returns the StructSymbol this symbol's type refers
	// to, or nil if the symbol's type is primitive (int/bool/void/
	// string) or is itself a struct's own declaration (a StructSymbol's
	// CompositeType is always nil - a struct name doesn't have a
	// composite type, it IS one). This is how dot-access resolution
	// finds the field set to search next.
	CompositeType() *StructSymbol
	Pos() lexer.Position
}

// VarSymbol is a declared variable or function formal parameter.
type VarSymbol struct {
	NameV    string
	TypeStr  string
	Struct   *StructSymbol // non-nil iff TypeStr names a struct
	DeclPos  lexer.Position
}

func (s *VarSymbol) Name() string                 { return s.NameV }
func (s *VarSymbol) Kind() SymbolKind              { return SymbolVariable }
func (s *VarSymbol) TypeString() string            { return s.TypeStr }
func (s *VarSymbol) CompositeType() *StructSymbol  { return s.Struct }
func (s *VarSymbol) Pos() lexer.Position           { return s.DeclPos }

// ProduceVar builds a VarSymbol for a declaration with the given type
// string, resolving that type string against stack if it names a struct.
// It returns (nil, false) when the type string names an aggregate type that
// stack has no definition for - the caller reports Err.undefType in that
// case, exactly as VarDeclNode::nameAnalysis does after a nil
// VarSymbol::produce.
func ProduceVar(name string, typeStr string, stack *Stack, pos lexer.Position) (*VarSymbol, bool) {
	composite, ok := stack.LookupTypeDefn(typeStr)
	if !ok {
		return nil, false
	}
	return &VarSymbol{NameV: name, TypeStr: typeStr, Struct: composite, DeclPos: pos}, true
}

// StructSymbol is a declared struct type: the symbol table entry for
// "struct Point { ... };" that subsequent "Point x;" declarations resolve
// against.
type StructSymbol struct {
	NameV   string
	Fields  map[string]*VarSymbol
	// FieldOrder preserves declaration order, needed for a stable
	// "{f1,f2,}" type string and for the candidate list of the
	// dot-access "did you mean" hint.
	FieldOrder []string
	DeclPos    lexer.Position
}

func (s *StructSymbol) Name() string    { return s.NameV }
func (s *StructSymbol) Kind() SymbolKind { return SymbolStruct }

// TypeString builds the canonical "{f1,f2,...,fk,}" form: every field name
// in declaration order, each followed by a comma, including the last one.
func (s *StructSymbol) TypeString() string {
	res := "{"
	for _, f := range s.FieldOrder {
		res += f + ","
	}
	res += "}"
	return res
}

// CompositeType is always nil for a StructSymbol: the declaration of a
// struct type is not itself a value of any composite type.
func (s *StructSymbol) CompositeType() *StructSymbol { return nil }
func (s *StructSymbol) Pos() lexer.Position           { return s.DeclPos }

// Field looks up a field by name, returning nil if this struct has none by
// that name.
func (s *StructSymbol) Field(name string) *VarSymbol {
	return s.Fields[name]
}

// FuncSymbol is a declared function: its formal parameter symbols in
// declaration order, and a VarSymbol standing in for its return slot
// (mirroring the original toolchain's choice to give the return value its
// own symbol, which code generation can use as a memory location).
type FuncSymbol struct {
	NameV   string
	Formals []*VarSymbol
	Ret     *VarSymbol
	DeclPos lexer.Position
}

func (s *FuncSymbol) Name() string     { return s.NameV }
func (s *FuncSymbol) Kind() SymbolKind { return SymbolFunction }

// TypeString builds the canonical "T1,T2,...,Tn->R" signature: no spaces
// around the comma or the arrow, and a zero-arg function's formals string
// is empty, giving "->R".
func (s *FuncSymbol) TypeString() string {
	res := ""
	for i, f := range s.Formals {
		if i > 0 {
			res += ","
		}
		res += f.TypeStr
	}
	return res + "->" + s.Ret.TypeStr
}

// CompositeType is always nil: LIL'C has no struct-returning functions.
func (s *FuncSymbol) CompositeType() *StructSymbol { return nil }
func (s *FuncSymbol) Pos() lexer.Position           { return s.DeclPos }
