package parser

import (
	"testing"

	"github.com/hassan/lilcc/internal/ast"
	"github.com/hassan/lilcc/internal/lexer"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog, errs := p.ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prog
}

func TestParseVarDecl(t *testing.T) {
	prog := parseOK(t, `int x;`)
	if len(prog.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(prog.Decls))
	}
	vd, ok := prog.Decls[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Decls[0])
	}
	if vd.Name.Name != "x" || vd.Type.TypeString() != "int" {
		t.Errorf("expected int x, got %s %s", vd.Type.TypeString(), vd.Name.Name)
	}
}

func TestParseStructDecl(t *testing.T) {
	prog := parseOK(t, `struct Point { int x; int y; };`)
	sd, ok := prog.Decls[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("expected *ast.StructDecl, got %T", prog.Decls[0])
	}
	if sd.Name.Name != "Point" || len(sd.Fields) != 2 {
		t.Errorf("expected Point with 2 fields, got %s with %d fields", sd.Name.Name, len(sd.Fields))
	}
}

func TestParseFnDeclWithFormals(t *testing.T) {
	prog := parseOK(t, `int add(int a, int b){ return a; }`)
	fd, ok := prog.Decls[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T", prog.Decls[0])
	}
	if len(fd.Formals) != 2 {
		t.Fatalf("expected 2 formals, got %d", len(fd.Formals))
	}
	if fd.Formals[0].Name.Name != "a" || fd.Formals[1].Name.Name != "b" {
		t.Errorf("formals in wrong order: %s, %s", fd.Formals[0].Name.Name, fd.Formals[1].Name.Name)
	}
}

func TestParseIfElseWhile(t *testing.T) {
	prog := parseOK(t, `void main(){
		int x;
		if (x == 1) { x = 2; } else { x = 3; }
		while (x == 1) { x = x; }
	}`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	if len(fd.Body.Stmts) != 2 {
		t.Fatalf("expected 2 statements (the var decl is in Body.Decls), got %d", len(fd.Body.Stmts))
	}
	if _, ok := fd.Body.Stmts[0].(*ast.IfElseStmt); !ok {
		t.Errorf("expected statement 0 to be an IfElseStmt, got %T", fd.Body.Stmts[0])
	}
	if _, ok := fd.Body.Stmts[1].(*ast.WhileStmt); !ok {
		t.Errorf("expected statement 1 to be a WhileStmt, got %T", fd.Body.Stmts[1])
	}
}

func TestParseDotAccessChain(t *testing.T) {
	prog := parseOK(t, `void main(){ a.b.c = 1; }`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	as, ok := fd.Body.Stmts[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected an AssignStmt, got %T", fd.Body.Stmts[0])
	}
	outer, ok := as.Assign.LHS.(*ast.DotAccess)
	if !ok {
		t.Fatalf("expected the LHS to be a DotAccess, got %T", as.Assign.LHS)
	}
	if outer.Field.Name != "c" {
		t.Errorf("expected outermost field c, got %s", outer.Field.Name)
	}
	inner, ok := outer.Base.(*ast.DotAccess)
	if !ok {
		t.Fatalf("expected the base to itself be a DotAccess, got %T", outer.Base)
	}
	if inner.Field.Name != "b" {
		t.Errorf("expected inner field b, got %s", inner.Field.Name)
	}
}

func TestParseCallExprAsStatementAndOperand(t *testing.T) {
	prog := parseOK(t, `void main(){ int x; f(1, 2); x = f(3); }`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	if _, ok := fd.Body.Stmts[0].(*ast.CallStmt); !ok {
		t.Errorf("expected a bare call to parse as a CallStmt, got %T", fd.Body.Stmts[0])
	}
	as := fd.Body.Stmts[1].(*ast.AssignStmt)
	if _, ok := as.Assign.RHS.(*ast.CallExpr); !ok {
		t.Errorf("expected the RHS to be a CallExpr, got %T", as.Assign.RHS)
	}
}

func TestParsePrecedenceAndExpr(t *testing.T) {
	// 1 + 2 * 3 should bind as 1 + (2 * 3), not (1 + 2) * 3.
	prog := parseOK(t, `void main(){ output << 1 + 2 * 3; }`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	ws := fd.Body.Stmts[0].(*ast.WriteStmt)
	top, ok := ws.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected a BinaryExpr, got %T", ws.Value)
	}
	if top.Op != ast.OpPlus {
		t.Fatalf("expected the outermost operator to be +, got %v", top.Op)
	}
	if _, ok := top.Left.(*ast.IntLit); !ok {
		t.Errorf("expected the left operand of + to be the literal 1, got %T", top.Left)
	}
	right, ok := top.Right.(*ast.BinaryExpr)
	if !ok || right.Op != ast.OpTimes {
		t.Fatalf("expected the right operand of + to be 2 * 3, got %#v", top.Right)
	}
}

func TestParseUnaryOperators(t *testing.T) {
	prog := parseOK(t, `void main(){ output << -1; output << !true; }`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	if _, ok := fd.Body.Stmts[0].(*ast.WriteStmt).Value.(*ast.UnaryMinus); !ok {
		t.Errorf("expected -1 to parse as UnaryMinus, got %T", fd.Body.Stmts[0].(*ast.WriteStmt).Value)
	}
	if _, ok := fd.Body.Stmts[1].(*ast.WriteStmt).Value.(*ast.Not); !ok {
		t.Errorf("expected !true to parse as Not, got %T", fd.Body.Stmts[1].(*ast.WriteStmt).Value)
	}
}

func TestParseStringLiteralUnescaped(t *testing.T) {
	prog := parseOK(t, `void main(){ output << "hello\nworld"; }`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	ws := fd.Body.Stmts[0].(*ast.WriteStmt)
	lit, ok := ws.Value.(*ast.StringLit)
	if !ok {
		t.Fatalf("expected a StringLit, got %T", ws.Value)
	}
	if lit.Value != "hello\nworld" {
		t.Errorf("expected the escape sequence to be decoded, got %q", lit.Value)
	}
}

func TestParseIncDecAndIO(t *testing.T) {
	prog := parseOK(t, `void main(){ int x; x++; x--; input >> x; output << x; }`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	if _, ok := fd.Body.Stmts[0].(*ast.PostIncStmt); !ok {
		t.Errorf("expected statement 0 to be PostIncStmt, got %T", fd.Body.Stmts[0])
	}
	if _, ok := fd.Body.Stmts[1].(*ast.PostDecStmt); !ok {
		t.Errorf("expected statement 1 to be PostDecStmt, got %T", fd.Body.Stmts[1])
	}
	if _, ok := fd.Body.Stmts[2].(*ast.ReadStmt); !ok {
		t.Errorf("expected statement 2 to be ReadStmt, got %T", fd.Body.Stmts[2])
	}
	if _, ok := fd.Body.Stmts[3].(*ast.WriteStmt); !ok {
		t.Errorf("expected statement 3 to be WriteStmt, got %T", fd.Body.Stmts[3])
	}
}

func TestParseErrorRecoveryContinuesAfterMalformedStmt(t *testing.T) {
	p := New(lexer.New(`void main(){ int ; x = 1; }`))
	_, errs := p.ParseProgram()
	if len(errs) == 0 {
		t.Fatal("expected at least one parse error for the malformed declaration")
	}
}
