package semantic

import (
	"github.com/hassan/lilcc/internal/ast"
	"github.com/hassan/lilcc/internal/lexer"
	"github.com/hassan/lilcc/internal/symtab"
	"github.com/hassan/lilcc/internal/types"
)

// TypeAnalysis checks every expression and statement in prog against
// LIL'C's type rules, reporting a diagnostic through r for each violation,
// and returns whether the whole program is free of type errors. It assumes
// prog has already been through a successful NameAnalysis - every Id and
// DotAccess field it visits must have its ResolvedSymbol already set.
func TypeAnalysis(prog *ast.Program, r *Reporter) bool {
	valid := true
	for _, d := range prog.Decls {
		valid = declTypeAnalysis(d, r) && valid
	}
	return valid
}

func declTypeAnalysis(d ast.Decl, r *Reporter) bool {
	switch decl := d.(type) {
	case *ast.VarDecl, *ast.StructDecl:
		// Declarations carry no expressions of their own to check; any
		// type name on them was already validated against the symbol
		// table during name analysis.
		_ = decl
		return true
	case *ast.FuncDecl:
		return fnDeclTypeAnalysis(decl, r)
	default:
		panic(internalErrorf("declTypeAnalysis: unknown decl type %T", d))
	}
}

func fnDeclTypeAnalysis(d *ast.FuncDecl, r *Reporter) bool {
	fnSym, ok := d.Name.ResolvedSymbol.(*symtab.FuncSymbol)
	if !ok {
		// Name analysis never resolved this declaration to a function
		// symbol (it already reported why); there's no signature left
		// to check the body's returns against.
		return false
	}
	valid := true
	for _, decl := range d.Body.Decls {
		valid = declTypeAnalysis(decl, r) && valid
	}
	for _, stmt := range d.Body.Stmts {
		valid = stmtTypeAnalysis(stmt, fnSym, r) && valid
	}
	return valid
}

func stmtListTypeAnalysis(stmts []ast.Stmt, fnSym *symtab.FuncSymbol, r *Reporter) bool {
	valid := true
	for _, s := range stmts {
		valid = stmtTypeAnalysis(s, fnSym, r) && valid
	}
	return valid
}

func declListTypeAnalysis(decls []ast.Decl, r *Reporter) bool {
	valid := true
	for _, d := range decls {
		valid = declTypeAnalysis(d, r) && valid
	}
	return valid
}

func stmtTypeAnalysis(s ast.Stmt, fnSym *symtab.FuncSymbol, r *Reporter) bool {
	switch stmt := s.(type) {
	case *ast.VarDecl:
		return true
	case *ast.AssignStmt:
		return assignExprTypeAnalysis(stmt.Assign, r) != types.Error
	case *ast.PostIncStmt:
		return incDecTypeAnalysis(stmt.Target, stmt.Pos(), r)
	case *ast.PostDecStmt:
		return incDecTypeAnalysis(stmt.Target, stmt.Pos(), r)
	case *ast.ReadStmt:
		return readStmtTypeAnalysis(stmt, r)
	case *ast.WriteStmt:
		return writeStmtTypeAnalysis(stmt, r)
	case *ast.IfStmt:
		return ifStmtTypeAnalysis(stmt, fnSym, r)
	case *ast.IfElseStmt:
		return ifElseStmtTypeAnalysis(stmt, fnSym, r)
	case *ast.WhileStmt:
		return whileStmtTypeAnalysis(stmt, fnSym, r)
	case *ast.CallStmt:
		return callExprTypeAnalysis(stmt.Call, r) != types.Error
	case *ast.ReturnStmt:
		return returnStmtTypeAnalysis(stmt, fnSym, r)
	default:
		panic(internalErrorf("stmtTypeAnalysis: unknown stmt type %T", s))
	}
}

func incDecTypeAnalysis(target ast.Expr, pos lexer.Position, r *Reporter) bool {
	t := expTypeAnalysis(target, r)
	if t == types.Error {
		return false
	}
	if t != "int" {
		r.badMath(pos)
		return false
	}
	return true
}

func readStmtTypeAnalysis(s *ast.ReadStmt, r *Reporter) bool {
	t := expTypeAnalysis(s.Target, r)
	if isFunctionKind(s.Target) {
		r.readFunction(s.Pos())
		return false
	}
	if isStructNameKind(s.Target) {
		r.readStructName(s.Pos())
		return false
	}
	if isStructVarKind(s.Target) {
		r.readStructVar(s.Pos())
		return false
	}
	return t != types.Error
}

func writeStmtTypeAnalysis(s *ast.WriteStmt, r *Reporter) bool {
	t := expTypeAnalysis(s.Value, r)
	if isFunctionKind(s.Value) {
		r.writeFunction(s.Pos())
		return false
	}
	if isStructNameKind(s.Value) {
		r.writeStructName(s.Pos())
		return false
	}
	if isStructVarKind(s.Value) {
		r.writeStructVar(s.Pos())
		return false
	}
	if types.IsVoid(t) {
		r.writeVoid(s.Pos())
		return false
	}
	return t != types.Error
}

func ifStmtTypeAnalysis(s *ast.IfStmt, fnSym *symtab.FuncSymbol, r *Reporter) bool {
	condT := expTypeAnalysis(s.Cond, r)
	valid := true
	if condT != types.Error && condT != "bool" {
		r.badIfCond(s.Cond.Pos())
		valid = false
	}
	valid = declListTypeAnalysis(s.Decls, r) && valid
	valid = stmtListTypeAnalysis(s.Stmts, fnSym, r) && valid
	return valid && condT != types.Error
}

func ifElseStmtTypeAnalysis(s *ast.IfElseStmt, fnSym *symtab.FuncSymbol, r *Reporter) bool {
	condT := expTypeAnalysis(s.Cond, r)
	valid := true
	if condT != types.Error && condT != "bool" {
		r.badIfCond(s.Cond.Pos())
		valid = false
	}
	valid = declListTypeAnalysis(s.DeclsT, r) && valid
	valid = stmtListTypeAnalysis(s.StmtsT, fnSym, r) && valid
	valid = declListTypeAnalysis(s.DeclsF, r) && valid
	valid = stmtListTypeAnalysis(s.StmtsF, fnSym, r) && valid
	return valid && condT != types.Error
}

func whileStmtTypeAnalysis(s *ast.WhileStmt, fnSym *symtab.FuncSymbol, r *Reporter) bool {
	condT := expTypeAnalysis(s.Cond, r)
	valid := true
	if condT != types.Error && condT != "bool" {
		r.badIfCond(s.Cond.Pos())
		valid = false
	}
	valid = declListTypeAnalysis(s.Decls, r) && valid
	valid = stmtListTypeAnalysis(s.Stmts, fnSym, r) && valid
	return valid && condT != types.Error
}

// returnStmtTypeAnalysis checks a return statement against the enclosing
// function's declared return type. A bare "return;" inside a non-void
// function reports missingReturnValue, which - unlike every other
// diagnostic in this package - is always logged at the fixed position
// "0,0" rather than any real node's position; see Reporter.missingReturnValue.
func returnStmtTypeAnalysis(s *ast.ReturnStmt, fnSym *symtab.FuncSymbol, r *Reporter) bool {
	retType := fnSym.Ret.TypeStr

	if types.IsVoid(retType) {
		if s.Value != nil {
			expTypeAnalysis(s.Value, r)
			r.returnFromVoid(s.Pos())
			return false
		}
		return true
	}

	if s.Value == nil {
		r.missingReturnValue()
		return false
	}

	t := expTypeAnalysis(s.Value, r)
	if t == types.Error {
		return false
	}
	if t != retType {
		r.badReturnValue(s.Value.Pos())
		return false
	}
	return true
}

// expTypeAnalysis computes an expression's type, reporting diagnostics for
// any violation found in e or its subexpressions, and returns the poison
// sentinel types.Error once any have been reported so callers higher up the
// tree don't report the same root cause a second time.
func expTypeAnalysis(e ast.Expr, r *Reporter) string {
	switch expr := e.(type) {
	case *ast.Id:
		return expr.ResolvedSymbol.TypeString()
	case *ast.IntLit:
		return "int"
	case *ast.StringLit:
		return "string"
	case *ast.TrueLit, *ast.FalseLit:
		return "bool"
	case *ast.UnaryMinus:
		t := expTypeAnalysis(expr.Operand, r)
		if t == types.Error {
			return types.Error
		}
		if t != "int" {
			return r.badMath(expr.Pos())
		}
		return "int"
	case *ast.Not:
		t := expTypeAnalysis(expr.Operand, r)
		if t == types.Error {
			return types.Error
		}
		if t != "bool" {
			return r.badLogical(expr.Pos())
		}
		return "bool"
	case *ast.DotAccess:
		return dotAccessTypeAnalysis(expr, r)
	case *ast.AssignExpr:
		return assignExprTypeAnalysis(expr, r)
	case *ast.CallExpr:
		return callExprTypeAnalysis(expr, r)
	case *ast.BinaryExpr:
		return binaryExprTypeAnalysis(expr, r)
	case *ast.EqualsExpr:
		return equalityTypeAnalysis(expr.Left, expr.Right, expr.Left.Pos(), r)
	case *ast.NotEqualsExpr:
		return equalityTypeAnalysis(expr.Left, expr.Right, expr.Pos(), r)
	default:
		panic(internalErrorf("expTypeAnalysis: unknown expr type %T", e))
	}
}

func dotAccessTypeAnalysis(d *ast.DotAccess, r *Reporter) string {
	// dotLHSNameAnalysis already walked and validated the chain down to
	// Field during name analysis; type analysis just reads off the
	// field's resolved type.
	_ = expTypeAnalysis(d.Base, r)
	if d.Field.ResolvedSymbol == nil {
		return types.Error
	}
	return d.Field.ResolvedSymbol.TypeString()
}

func binaryExprTypeAnalysis(e *ast.BinaryExpr, r *Reporter) string {
	switch e.Kind() {
	case ast.BinOpMath:
		return binOperandPairTypeAnalysis(e.Left, e.Right, "int", "int", r.badMath, r)
	case ast.BinOpLogical:
		return binOperandPairTypeAnalysis(e.Left, e.Right, "bool", "bool", r.badLogical, r)
	case ast.BinOpRelational:
		return binOperandPairTypeAnalysis(e.Left, e.Right, "int", "bool", r.badRelational, r)
	default:
		panic(internalErrorf("binaryExprTypeAnalysis: unknown BinOpKind %v", e.Kind()))
	}
}

// binOperandPairTypeAnalysis evaluates both operands of a binary operator -
// ALWAYS both, never short-circuiting once the left side fails - so that an
// error on the right operand is reported even when the left operand is
// already broken. wantOperand is the type each operand must have; result is
// the type the whole expression has when both operands check out.
func binOperandPairTypeAnalysis(left, right ast.Expr, wantOperand, result string, badOperand func(p lexer.Position) string, r *Reporter) string {
	lt := expTypeAnalysis(left, r)
	rt := expTypeAnalysis(right, r)

	valid := true
	if lt != types.Error && lt != wantOperand {
		badOperand(left.Pos())
		valid = false
	}
	if rt != types.Error && rt != wantOperand {
		badOperand(right.Pos())
		valid = false
	}
	if lt == types.Error || rt == types.Error || !valid {
		return types.Error
	}
	return result
}

// equalityTypeAnalysis implements == and !=, which (unlike every other
// binary operator) apply to any pair of matching types, not just int/bool -
// but disallow void, function, struct-name, and struct-variable operands.
// pos is where a type-mismatch diagnostic is reported; see EqualsExpr and
// NotEqualsExpr's doc comments for why callers pass different positions for
// the two operators.
func equalityTypeAnalysis(left, right ast.Expr, pos lexer.Position, r *Reporter) string {
	lt := expTypeAnalysis(left, r)
	rt := expTypeAnalysis(right, r)

	if lt == types.Error || rt == types.Error {
		return types.Error
	}

	// Only a matching pair of types can be a void/function/struct-name/
	// struct-variable comparison in the first place - check that before
	// any of those classifications, or a mismatched pair (e.g. a void
	// call compared to an int) gets misreported as the wrong kind of
	// error instead of a plain typeMismatch.
	if lt != rt {
		return r.typeMismatch(pos)
	}

	switch {
	case types.IsFnSig(lt):
		return r.funEq(pos)
	case isStructNameKind(left):
		return r.structNameEq(pos)
	case types.IsVoid(lt):
		return r.voidEq(pos)
	case isStructVarKind(left):
		return r.structVarEq(pos)
	}
	return "bool"
}

func assignExprTypeAnalysis(a *ast.AssignExpr, r *Reporter) string {
	lt := expTypeAnalysis(a.LHS, r)
	rt := expTypeAnalysis(a.RHS, r)

	if lt == types.Error || rt == types.Error {
		return types.Error
	}
	// Only a same-typed pair can be a function/struct-name/struct-variable
	// assignment in the first place - check that before any of those
	// classifications, or a plain type mismatch (e.g. assigning an int to
	// a struct variable) gets misreported as the wrong kind of error.
	if lt != rt {
		return r.typeMismatch(a.Pos())
	}

	switch {
	case isFunctionKind(a.LHS):
		return r.assignFunction(a.Pos())
	case isStructNameKind(a.LHS):
		return r.assignStructName(a.Pos())
	case isStructVarKind(a.LHS):
		return r.assignStructVar(a.Pos())
	}
	return lt
}

// callExprTypeAnalysis checks a call's argument count and types against the
// callee's signature.
//
// DESIGN NOTE on the two ways a call can go wrong: an argument whose OWN
// type already came back types.Error short-circuits the whole call
// immediately (that argument's root cause was already reported, and there's
// no useful "expected T, got ERROR" message to add) - but an argument that
// type-checked fine yet simply doesn't MATCH its formal's type does not stop
// the loop, so every mismatched argument in a call gets its own argMismatch
// diagnostic rather than just the first.
func callExprTypeAnalysis(c *ast.CallExpr, r *Reporter) string {
	fnSym, ok := c.Fn.ResolvedSymbol.(*symtab.FuncSymbol)
	if !ok {
		for _, arg := range c.Args {
			expTypeAnalysis(arg, r)
		}
		return r.callNonFunc(c.Pos())
	}

	if len(c.Args) != len(fnSym.Formals) {
		for _, arg := range c.Args {
			expTypeAnalysis(arg, r)
		}
		return r.badNumArgs(c.Pos())
	}

	valid := true
	for i, arg := range c.Args {
		argT := expTypeAnalysis(arg, r)
		if argT == types.Error {
			return types.Error
		}
		if argT != fnSym.Formals[i].TypeStr {
			r.argMismatch(arg.Pos())
			valid = false
		}
	}
	if !valid {
		return types.Error
	}
	return fnSym.Ret.TypeStr
}

func isFunctionKind(e ast.Expr) bool {
	sym := resolvedSymbolOf(e)
	return sym != nil && sym.Kind() == symtab.SymbolFunction
}

func isStructNameKind(e ast.Expr) bool {
	sym := resolvedSymbolOf(e)
	return sym != nil && sym.Kind() == symtab.SymbolStruct
}

// isStructVarKind reports whether e denotes a VARIABLE of struct type (as
// opposed to a reference to the struct type's own name). A struct-typed
// variable's type string is the bare struct name ("Point"), which does not
// itself satisfy types.IsStructName - only the declaration symbol's type
// string ("{x,y,}") does - so this checks CompositeType() instead of the
// type string.
func isStructVarKind(e ast.Expr) bool {
	sym := resolvedSymbolOf(e)
	return sym != nil && sym.Kind() == symtab.SymbolVariable && sym.CompositeType() != nil
}

func resolvedSymbolOf(e ast.Expr) symtab.Symbol {
	switch expr := e.(type) {
	case *ast.Id:
		return expr.ResolvedSymbol
	case *ast.DotAccess:
		return expr.Field.ResolvedSymbol
	default:
		return nil
	}
}
