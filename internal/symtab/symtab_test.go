package symtab

import (
	"testing"

	"github.com/hassan/lilcc/internal/lexer"
)

func TestStack_EnterExitScope(t *testing.T) {
	s := NewStack()
	s.EnterScope()
	if !s.Add("x", &VarSymbol{NameV: "x", TypeStr: "int"}) {
		t.Fatal("expected Add to succeed in a fresh scope")
	}
	s.EnterScope()
	if _, ok := s.Lookup("x"); !ok {
		t.Error("expected lookup to find x from the enclosing scope")
	}
	s.ExitScope()
	if _, ok := s.Lookup("x"); !ok {
		t.Error("expected x to still be visible after exiting the inner scope")
	}
	s.ExitScope()
	if _, ok := s.Lookup("x"); ok {
		t.Error("expected x to be gone after exiting its declaring scope")
	}
}

func TestStack_ShadowingAllowed(t *testing.T) {
	s := NewStack()
	s.EnterScope()
	s.Add("x", &VarSymbol{NameV: "x", TypeStr: "int"})
	s.EnterScope()
	if s.Collides("x") {
		t.Error("a name from an outer scope should not collide with the inner scope")
	}
	s.Add("x", &VarSymbol{NameV: "x", TypeStr: "bool"})
	sym, _ := s.Lookup("x")
	if sym.TypeString() != "bool" {
		t.Errorf("expected inner x to shadow outer x, got type %q", sym.TypeString())
	}
}

func TestStack_CollidesSameScopeOnly(t *testing.T) {
	s := NewStack()
	s.EnterScope()
	s.Add("x", &VarSymbol{NameV: "x", TypeStr: "int"})
	if !s.Collides("x") {
		t.Error("expected a redeclaration in the same scope to collide")
	}
	if s.Add("x", &VarSymbol{NameV: "x", TypeStr: "bool"}) {
		t.Error("expected Add to refuse a colliding name")
	}
}

func TestStack_AddEnclosing(t *testing.T) {
	s := NewStack()
	s.EnterScope()
	s.EnterScope()
	if !s.AddEnclosing("f", &FuncSymbol{NameV: "f", Ret: &VarSymbol{TypeStr: "void"}}) {
		t.Fatal("expected AddEnclosing to succeed")
	}
	if s.Collides("f") {
		t.Error("AddEnclosing must not add to the current scope")
	}
	s.ExitScope()
	if !s.Collides("f") {
		t.Error("expected f to be visible in the scope AddEnclosing targeted")
	}
}

func TestStack_AddEnclosing_Collision(t *testing.T) {
	s := NewStack()
	s.EnterScope()
	s.Add("f", &FuncSymbol{NameV: "f", Ret: &VarSymbol{TypeStr: "void"}})
	s.EnterScope()
	if s.AddEnclosing("f", &FuncSymbol{NameV: "f", Ret: &VarSymbol{TypeStr: "void"}}) {
		t.Error("expected AddEnclosing to refuse a name that already collides in the target scope")
	}
}

func TestStack_AddEnclosing_NoEnclosingScope(t *testing.T) {
	s := NewStack()
	s.EnterScope()
	if s.AddEnclosing("f", &FuncSymbol{NameV: "f", Ret: &VarSymbol{TypeStr: "void"}}) {
		t.Error("expected AddEnclosing to fail with only one scope on the stack")
	}
}

func TestStack_LookupTypeDefn_Primitive(t *testing.T) {
	s := NewStack()
	s.EnterScope()
	for _, prim := range []string{"bool", "int", "void", "string"} {
		composite, ok := s.LookupTypeDefn(prim)
		if !ok || composite != nil {
			t.Errorf("LookupTypeDefn(%q) = (%v, %v), want (nil, true)", prim, composite, ok)
		}
	}
}

func TestStack_LookupTypeDefn_UndeclaredStruct(t *testing.T) {
	s := NewStack()
	s.EnterScope()
	if _, ok := s.LookupTypeDefn("Point"); ok {
		t.Error("expected an undeclared struct name to fail to resolve")
	}
}

func TestStack_LookupTypeDefn_DeclaredStruct(t *testing.T) {
	s := NewStack()
	s.EnterScope()
	point := &StructSymbol{
		NameV:      "Point",
		Fields:     map[string]*VarSymbol{"x": {NameV: "x", TypeStr: "int"}},
		FieldOrder: []string{"x"},
	}
	s.Add("Point", point)
	composite, ok := s.LookupTypeDefn("Point")
	if !ok || composite != point {
		t.Errorf("expected LookupTypeDefn to resolve the declared struct, got (%v, %v)", composite, ok)
	}
}

func TestStructSymbol_TypeString(t *testing.T) {
	s := &StructSymbol{
		NameV:      "Point",
		FieldOrder: []string{"x", "y"},
	}
	if got, want := s.TypeString(), "{x,y,}"; got != want {
		t.Errorf("TypeString() = %q, want %q", got, want)
	}
}

func TestFuncSymbol_TypeString(t *testing.T) {
	fn := &FuncSymbol{
		NameV: "add",
		Formals: []*VarSymbol{
			{NameV: "a", TypeStr: "int"},
			{NameV: "b", TypeStr: "int"},
		},
		Ret: &VarSymbol{TypeStr: "int"},
	}
	if got, want := fn.TypeString(), "int,int->int"; got != want {
		t.Errorf("TypeString() = %q, want %q", got, want)
	}
}

func TestFuncSymbol_TypeString_NoFormals(t *testing.T) {
	fn := &FuncSymbol{NameV: "f", Ret: &VarSymbol{TypeStr: "void"}}
	if got, want := fn.TypeString(), "->void"; got != want {
		t.Errorf("TypeString() = %q, want %q", got, want)
	}
}

func TestVarSymbol_Pos(t *testing.T) {
	pos := lexer.Position{Line: 3, Column: 7}
	v := &VarSymbol{NameV: "x", TypeStr: "int", DeclPos: pos}
	if v.Pos() != pos {
		t.Errorf("Pos() = %v, want %v", v.Pos(), pos)
	}
}
