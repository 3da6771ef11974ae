package semantic

import (
	"github.com/hassan/lilcc/internal/ast"
	"github.com/hassan/lilcc/internal/symtab"
)

// NameAnalysis resolves every identifier in prog to a declaration,
// reporting a diagnostic through r for every undeclared identifier,
// redeclaration, undefined type, void-typed non-function declaration, and
// invalid dot-access, and returns whether the whole program is free of
// name-analysis errors.
//
// DESIGN CHOICE: every list-analysis helper below aggregates with a
// non-short-circuiting AND: each child is ALWAYS visited (so that
// independent errors in sibling declarations/statements are all reported
// in one pass), and the result is the AND of every child's result. The
// idiom, throughout, is to evaluate each side into a local variable first
// and then combine them - never to chain "a() && b()" directly, since Go
// (like the language this analyzer's rules are modeled on) short-circuits
// "&&" and that would silently skip b() once a() failed.
//
// The one exception is fieldNameAnalysis, which DOES stop at the first bad
// field: a struct whose field list contains an error has no usable field
// set at all (there's nothing a later caller could look a field up in), so
// there is no value in continuing to check the rest of the fields.
func NameAnalysis(prog *ast.Program, r *Reporter, stack *symtab.Stack) bool {
	stack.EnterScope()
	valid := declListNameAnalysis(prog.Decls, r, stack)
	_, hasMain := stack.Lookup("main")
	valid = hasMain && valid
	stack.ExitScope()
	return valid
}

func declListNameAnalysis(decls []ast.Decl, r *Reporter, stack *symtab.Stack) bool {
	result := true
	for _, d := range decls {
		thisResult := declNameAnalysis(d, r, stack)
		result = thisResult && result
	}
	return result
}

func declNameAnalysis(d ast.Decl, r *Reporter, stack *symtab.Stack) bool {
	switch decl := d.(type) {
	case *ast.VarDecl:
		return varDeclNameAnalysis(decl, r, stack)
	case *ast.FuncDecl:
		return fnDeclNameAnalysis(decl, r, stack)
	case *ast.StructDecl:
		return structDeclNameAnalysis(decl, r, stack)
	default:
		panic(internalErrorf("declNameAnalysis: unknown decl type %T", d))
	}
}

func varDeclNameAnalysis(d *ast.VarDecl, r *Reporter, stack *symtab.Stack) bool {
	if d.Type.IsVoid() {
		return r.badVoid(d.Name.Pos())
	}
	if stack.Collides(d.Name.Name) {
		return r.multiDecl(d.Name.Pos())
	}
	vSym, ok := symtab.ProduceVar(d.Name.Name, d.Type.TypeString(), stack, d.Name.Pos())
	if !ok {
		return r.undefType(d.Name.Pos())
	}
	d.Name.ResolvedSymbol = vSym
	return stack.Add(d.Name.Name, vSym)
}

// fieldNameAnalysis analyzes a struct's field list, returning the built
// field map and field order, or (nil, nil, false) on the first field that
// fails - see NameAnalysis's doc comment for why this one short-circuits.
func fieldNameAnalysis(fields []*ast.VarDecl, r *Reporter, stack *symtab.Stack) (map[string]*symtab.VarSymbol, []string, bool) {
	fieldMap := make(map[string]*symtab.VarSymbol)
	var order []string
	for _, field := range fields {
		pos := field.Name.Pos()
		name := field.Name.Name
		typeStr := field.Type.TypeString()

		if typeStr == "void" {
			r.badVoid(pos)
			return nil, nil, false
		}
		fSym, ok := symtab.ProduceVar(name, typeStr, stack, pos)
		if !ok {
			r.undefType(pos)
			return nil, nil, false
		}
		if _, exists := fieldMap[name]; exists {
			r.multiDecl(pos)
			return nil, nil, false
		}
		fieldMap[name] = fSym
		order = append(order, name)
	}
	return fieldMap, order, true
}

func structDeclNameAnalysis(d *ast.StructDecl, r *Reporter, stack *symtab.Stack) bool {
	fieldMap, order, ok := fieldNameAnalysis(d.Fields, r, stack)
	if !ok {
		return false
	}
	sym := &symtab.StructSymbol{NameV: d.Name.Name, Fields: fieldMap, FieldOrder: order, DeclPos: d.Pos()}
	if !stack.Add(d.Name.Name, sym) {
		return r.multiDecl(d.Pos())
	}
	return true
}

func fnDeclNameAnalysis(d *ast.FuncDecl, r *Reporter, stack *symtab.Stack) bool {
	// Check the name against the scope the function is declared IN,
	// before entering the function's own body scope - a function named
	// the same as a sibling declared earlier in the same outer scope is
	// a redeclaration, regardless of what the function's body later
	// declares.
	nameCollides := stack.Collides(d.Name.Name)

	// Enter the body scope regardless of whether the signature is valid:
	// formalsNameAnalysis must land the formal symbols in the scope the
	// body will run in, and that scope must stay current (not be popped
	// and re-pushed) for the body's own references to those formals to
	// resolve.
	stack.EnterScope()

	argsValid := formalsNameAnalysis(d.Formals, r, stack)
	retSym := &symtab.VarSymbol{NameV: "$ret", TypeStr: d.RetType.TypeString(), DeclPos: d.Pos()}

	ok := false
	if !nameCollides && argsValid {
		formalSyms := make([]*symtab.VarSymbol, len(d.Formals))
		for i, f := range d.Formals {
			formalSyms[i] = f.ResolvedVarSymbol
		}
		fnSym := &symtab.FuncSymbol{NameV: d.Name.Name, Formals: formalSyms, Ret: retSym, DeclPos: d.Pos()}
		if stack.AddEnclosing(d.Name.Name, fnSym) {
			d.Name.ResolvedSymbol = fnSym
			ok = true
		}
	} else if nameCollides {
		r.multiDecl(d.Pos())
	}

	bodyOK := fnBodyNameAnalysis(d.Body, r, stack)
	stack.ExitScope()
	return bodyOK && ok
}

func formalsNameAnalysis(formals []*ast.FormalDecl, r *Reporter, stack *symtab.Stack) bool {
	valid := true
	for _, f := range formals {
		valid = formalNameAnalysis(f, r, stack) && valid
	}
	return valid
}

func formalNameAnalysis(f *ast.FormalDecl, r *Reporter, stack *symtab.Stack) bool {
	if f.Type.IsVoid() {
		return r.badVoid(f.Name.Pos())
	}
	if stack.Collides(f.Name.Name) {
		return r.multiDecl(f.Name.Pos())
	}
	vSym, ok := symtab.ProduceVar(f.Name.Name, f.Type.TypeString(), stack, f.Name.Pos())
	if !ok {
		return r.undefType(f.Name.Pos())
	}
	f.ResolvedVarSymbol = vSym
	f.Name.ResolvedSymbol = vSym
	return stack.Add(f.Name.Name, vSym)
}

func fnBodyNameAnalysis(b *ast.FnBody, r *Reporter, stack *symtab.Stack) bool {
	result := declListNameAnalysis(b.Decls, r, stack)
	result = stmtListNameAnalysis(b.Stmts, r, stack) && result
	return result
}

func stmtListNameAnalysis(stmts []ast.Stmt, r *Reporter, stack *symtab.Stack) bool {
	valid := true
	for _, s := range stmts {
		valid = stmtNameAnalysis(s, r, stack) && valid
	}
	return valid
}

func stmtNameAnalysis(s ast.Stmt, r *Reporter, stack *symtab.Stack) bool {
	switch stmt := s.(type) {
	case *ast.VarDecl:
		return varDeclNameAnalysis(stmt, r, stack)
	case *ast.AssignStmt:
		return assignExprNameAnalysis(stmt.Assign, r, stack)
	case *ast.PostIncStmt:
		return exprNameAnalysis(stmt.Target, r, stack)
	case *ast.PostDecStmt:
		return exprNameAnalysis(stmt.Target, r, stack)
	case *ast.ReadStmt:
		return exprNameAnalysis(stmt.Target, r, stack)
	case *ast.WriteStmt:
		return exprNameAnalysis(stmt.Value, r, stack)
	case *ast.IfStmt:
		result := exprNameAnalysis(stmt.Cond, r, stack)
		stack.EnterScope()
		result = declListNameAnalysis(stmt.Decls, r, stack) && result
		result = stmtListNameAnalysis(stmt.Stmts, r, stack) && result
		stack.ExitScope()
		return result
	case *ast.IfElseStmt:
		result := exprNameAnalysis(stmt.Cond, r, stack)
		stack.EnterScope()
		result = declListNameAnalysis(stmt.DeclsT, r, stack) && result
		result = stmtListNameAnalysis(stmt.StmtsT, r, stack) && result
		result = declListNameAnalysis(stmt.DeclsF, r, stack) && result
		result = stmtListNameAnalysis(stmt.StmtsF, r, stack) && result
		stack.ExitScope()
		return result
	case *ast.WhileStmt:
		result := exprNameAnalysis(stmt.Cond, r, stack)
		stack.EnterScope()
		result = declListNameAnalysis(stmt.Decls, r, stack) && result
		result = stmtListNameAnalysis(stmt.Stmts, r, stack) && result
		stack.ExitScope()
		return result
	case *ast.CallStmt:
		return callExprNameAnalysis(stmt.Call, r, stack)
	case *ast.ReturnStmt:
		if stmt.Value == nil {
			return true
		}
		return exprNameAnalysis(stmt.Value, r, stack)
	default:
		panic(internalErrorf("stmtNameAnalysis: unknown stmt type %T", s))
	}
}

func exprNameAnalysis(e ast.Expr, r *Reporter, stack *symtab.Stack) bool {
	switch expr := e.(type) {
	case *ast.Id:
		return idNameAnalysis(expr, r, stack)
	case *ast.IntLit, *ast.StringLit, *ast.TrueLit, *ast.FalseLit:
		return true
	case *ast.UnaryMinus:
		return exprNameAnalysis(expr.Operand, r, stack)
	case *ast.Not:
		return exprNameAnalysis(expr.Operand, r, stack)
	case *ast.DotAccess:
		return dotAccessNameAnalysis(expr, r, stack)
	case *ast.AssignExpr:
		return assignExprNameAnalysis(expr, r, stack)
	case *ast.CallExpr:
		return callExprNameAnalysis(expr, r, stack)
	case *ast.BinaryExpr:
		left := exprNameAnalysis(expr.Left, r, stack)
		right := exprNameAnalysis(expr.Right, r, stack)
		return left && right
	case *ast.EqualsExpr:
		left := exprNameAnalysis(expr.Left, r, stack)
		right := exprNameAnalysis(expr.Right, r, stack)
		return left && right
	case *ast.NotEqualsExpr:
		left := exprNameAnalysis(expr.Left, r, stack)
		right := exprNameAnalysis(expr.Right, r, stack)
		return left && right
	default:
		panic(internalErrorf("exprNameAnalysis: unknown expr type %T", e))
	}
}

func idNameAnalysis(id *ast.Id, r *Reporter, stack *symtab.Stack) bool {
	sym, ok := stack.Lookup(id.Name)
	if !ok {
		return r.undeclaredID(id.Pos())
	}
	id.ResolvedSymbol = sym
	return true
}

func assignExprNameAnalysis(a *ast.AssignExpr, r *Reporter, stack *symtab.Stack) bool {
	lhsResult := exprNameAnalysis(a.LHS, r, stack)
	rhsResult := exprNameAnalysis(a.RHS, r, stack)
	return lhsResult && rhsResult
}

func callExprNameAnalysis(c *ast.CallExpr, r *Reporter, stack *symtab.Stack) bool {
	result := idNameAnalysis(c.Fn, r, stack)
	for _, arg := range c.Args {
		result = exprNameAnalysis(arg, r, stack) && result
	}
	return result
}

// dotLHSNameAnalysis resolves the base of a dot-access chain and returns
// the StructSymbol its trailing field must be looked up in, or nil if the
// base isn't struct-typed (or fails to resolve at all). This is the
// recursive entry point used while WALKING DOWN a chain like "a.b.c" -
// NameAnalysis for the outermost DotAccess calls this on its Base, not on
// itself; see dotAccessNameAnalysis.
func dotLHSNameAnalysis(e ast.Expr, r *Reporter, stack *symtab.Stack) *symtab.StructSymbol {
	switch expr := e.(type) {
	case *ast.Id:
		if !idNameAnalysis(expr, r, stack) {
			return nil
		}
		composite := expr.ResolvedSymbol.CompositeType()
		if composite == nil {
			r.badDotLHS(expr.Pos())
		}
		return composite
	case *ast.DotAccess:
		baseStruct := dotLHSNameAnalysis(expr.Base, r, stack)
		if baseStruct == nil {
			return nil
		}
		fieldSym := baseStruct.Field(expr.Field.Name)
		if fieldSym == nil {
			// An intermediate field that doesn't exist at all: the
			// toolchain this is modeled on looks this field symbol up
			// and then unconditionally dereferences it to ask for its
			// composite type, which would be a null-pointer fault in
			// that language if the field name is wrong here. Rather
			// than reproduce that latent crash, this reports the same
			// diagnostic a bad LHS gets anywhere else in a dot chain.
			r.badDotLHS(expr.Field.Pos())
			return nil
		}
		composite := fieldSym.CompositeType()
		if composite == nil {
			r.badDotLHS(expr.Field.Pos())
			return nil
		}
		expr.Field.ResolvedSymbol = fieldSym
		return composite
	default:
		panic(internalErrorf("dotLHSNameAnalysis: INTERNAL: attempted on a non-struct expression type %T", e))
	}
}

func dotAccessNameAnalysis(d *ast.DotAccess, r *Reporter, stack *symtab.Stack) bool {
	baseStruct := dotLHSNameAnalysis(d.Base, r, stack)
	if baseStruct == nil {
		return false
	}
	fieldSym := baseStruct.Field(d.Field.Name)
	if fieldSym == nil {
		suggestion := ""
		if r.DotHints {
			suggestion = closestFieldName(d.Field.Name, baseStruct.FieldOrder)
		}
		return r.badDotRHS(d.Field.Pos(), suggestion)
	}
	d.Field.ResolvedSymbol = fieldSym
	return true
}

// closestFieldName returns the candidate nearest to name by Levenshtein
// distance, or "" if candidates is empty or nothing is within a reasonable
// distance of a typo (more than half of name's own length edits away).
func closestFieldName(name string, candidates []string) string {
	best := ""
	bestDist := len(name)/2 + 1
	for _, c := range candidates {
		if d := levenshtein(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
