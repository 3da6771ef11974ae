package codegen

import (
	"fmt"
	"io"

	"github.com/hassan/lilcc/internal/ast"
	"github.com/hassan/lilcc/internal/symtab"
)

// Generate walks a name- and type-checked program and writes a pseudo-MIPS
// listing to out. Callers must only invoke this after both NameAnalysis and
// TypeAnalysis have returned true; anything this function can't handle is
// reported as an *InternalError; it is a defect in this package, not in the
// input program, which has already been validated.
func Generate(prog *ast.Program, out io.Writer) error {
	b := NewBackend(out)
	g := &generator{backend: b}
	for _, d := range prog.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok {
			if err := g.genFunction(fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// InternalError signals an AST shape codegen does not expect from a
// type-checked program.
type InternalError struct{ Msg string }

func (e *InternalError) Error() string { return e.Msg }

func internalErrorf(format string, args ...interface{}) error {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}

// generator holds the per-program state (just the backend) plus the
// per-function frame that genFunction rebuilds for each function it visits.
type generator struct {
	backend *Backend
	frame   *frame
}

// frame maps every local and formal of the function currently being
// generated to its byte offset from $fp, the way MIPS's stack-relative
// addressing needs: formals sit at positive offsets (pushed by the caller
// before the jump), locals at negative offsets (carved out of the callee's
// own stack space).
type frame struct {
	offsets map[*symtab.VarSymbol]int
}

func (f *frame) offsetOf(sym *symtab.VarSymbol) (int, bool) {
	off, ok := f.offsets[sym]
	return off, ok
}

// buildFrame assigns offsets to every formal and every local declared
// anywhere in fn's body (including nested if/while blocks - LIL'C has no
// nested functions, so one flat frame per function is enough).
func buildFrame(fn *ast.FuncDecl) *frame {
	f := &frame{offsets: make(map[*symtab.VarSymbol]int)}

	// Formals: positive offsets, in declaration order, the standard MIPS
	// convention for a caller-pushed argument block sitting just above
	// the saved $fp/$ra.
	for i, formal := range fn.Formals {
		f.offsets[formal.ResolvedVarSymbol] = (i + 2) * wordSize
	}

	// Locals: negative offsets, growing down the stack.
	next := -wordSize
	var collectDecls func(decls []ast.Decl)
	var collectStmts func(stmts []ast.Stmt)
	collectDecls = func(decls []ast.Decl) {
		for _, d := range decls {
			vd, ok := d.(*ast.VarDecl)
			if !ok {
				continue
			}
			sym, ok := vd.Name.ResolvedSymbol.(*symtab.VarSymbol)
			if !ok {
				continue
			}
			f.offsets[sym] = next
			next -= wordSize
		}
	}
	collectStmts = func(stmts []ast.Stmt) {
		for _, s := range stmts {
			switch stmt := s.(type) {
			case *ast.IfStmt:
				collectDecls(stmt.Decls)
				collectStmts(stmt.Stmts)
			case *ast.IfElseStmt:
				collectDecls(stmt.DeclsT)
				collectStmts(stmt.StmtsT)
				collectDecls(stmt.DeclsF)
				collectStmts(stmt.StmtsF)
			case *ast.WhileStmt:
				collectDecls(stmt.Decls)
				collectStmts(stmt.Stmts)
			}
		}
	}
	collectDecls(fn.Body.Decls)
	collectStmts(fn.Body.Stmts)

	return f
}

func (g *generator) genFunction(fn *ast.FuncDecl) error {
	g.frame = buildFrame(fn)

	label := "fn_" + fn.Name.Name
	g.backend.genLabel(label, "")
	g.backend.genPush(RegFP)
	g.backend.genPush(RegRA)
	g.backend.generate("move", RegFP, RegSP)

	// Reserve the locals' negative-offset slots below $fp so that pushes
	// made by the body's statements don't overwrite them.
	locals := 0
	for _, off := range g.frame.offsets {
		if off < 0 {
			locals++
		}
	}
	if locals > 0 {
		g.backend.generate("subu", RegSP, RegSP, fmt.Sprint(locals*wordSize))
	}

	for _, stmt := range fn.Body.Stmts {
		if err := g.genStmt(stmt); err != nil {
			return err
		}
	}

	g.backend.genLabel(label+"_exit", "")
	g.backend.generate("move", RegSP, RegFP)
	g.backend.genPop(RegRA)
	g.backend.genPop(RegFP)
	g.backend.generate("jr", RegRA)
	return nil
}

func (g *generator) genStmt(s ast.Stmt) error {
	switch stmt := s.(type) {
	case *ast.VarDecl:
		return nil // space reserved in the prologue; no code to emit
	case *ast.AssignStmt:
		return g.genAssign(stmt.Assign)
	case *ast.PostIncStmt:
		return g.genIncDec(stmt.Target, "addu")
	case *ast.PostDecStmt:
		return g.genIncDec(stmt.Target, "subu")
	case *ast.ReadStmt:
		return g.genRead(stmt)
	case *ast.WriteStmt:
		return g.genWrite(stmt)
	case *ast.IfStmt:
		return g.genIf(stmt.Cond, stmt.Stmts, nil)
	case *ast.IfElseStmt:
		return g.genIf(stmt.Cond, stmt.StmtsT, stmt.StmtsF)
	case *ast.WhileStmt:
		return g.genWhile(stmt)
	case *ast.CallStmt:
		if err := g.genExpr(stmt.Call); err != nil {
			return err
		}
		g.backend.genPop(RegT0) // discard the unused return value
		return nil
	case *ast.ReturnStmt:
		return g.genReturn(stmt)
	default:
		return internalErrorf("codegen: unhandled statement type %T", s)
	}
}

func (g *generator) genAssign(a *ast.AssignExpr) error {
	if err := g.genExpr(a.RHS); err != nil {
		return err
	}
	g.backend.genPop(RegT0)
	return g.genStore(a.LHS, RegT0)
}

func (g *generator) genIncDec(target ast.Expr, opcode string) error {
	sym, offset, err := g.resolveLoc(target)
	if err != nil {
		return err
	}
	_ = sym
	g.backend.generateIndexed("lw", RegT0, RegFP, offset, "load")
	g.backend.generate(opcode, RegT0, RegT0, "1")
	g.backend.generateIndexed("sw", RegT0, RegFP, offset, "store")
	return nil
}

func (g *generator) genRead(s *ast.ReadStmt) error {
	g.backend.generate("li", RegV0, "5") // read_int syscall
	g.backend.generate("syscall")
	return g.genStore(s.Target, RegV0)
}

func (g *generator) genWrite(s *ast.WriteStmt) error {
	if str, ok := s.Value.(*ast.StringLit); ok {
		g.backend.generateWithComment("la", "load string literal", RegA0, stringLabel(str))
		g.backend.generate("li", RegV0, "4") // print_string syscall
		g.backend.generate("syscall")
		return nil
	}
	if err := g.genExpr(s.Value); err != nil {
		return err
	}
	g.backend.genPop(RegA0)
	g.backend.generate("li", RegV0, "1") // print_int syscall
	g.backend.generate("syscall")
	return nil
}

func (g *generator) genIf(cond ast.Expr, thenStmts, elseStmts []ast.Stmt) error {
	if err := g.genExpr(cond); err != nil {
		return err
	}
	g.backend.genPop(RegT0)

	elseLabel := g.backend.nextLabel()
	endLabel := g.backend.nextLabel()

	g.backend.generate("beq", RegT0, falseValue, elseLabel)
	for _, stmt := range thenStmts {
		if err := g.genStmt(stmt); err != nil {
			return err
		}
	}
	g.backend.generate("b", endLabel)
	g.backend.genLabel(elseLabel, "else")
	for _, stmt := range elseStmts {
		if err := g.genStmt(stmt); err != nil {
			return err
		}
	}
	g.backend.genLabel(endLabel, "endif")
	return nil
}

func (g *generator) genWhile(s *ast.WhileStmt) error {
	topLabel := g.backend.nextLabel()
	endLabel := g.backend.nextLabel()

	g.backend.genLabel(topLabel, "while")
	if err := g.genExpr(s.Cond); err != nil {
		return err
	}
	g.backend.genPop(RegT0)
	g.backend.generate("beq", RegT0, falseValue, endLabel)

	for _, stmt := range s.Stmts {
		if err := g.genStmt(stmt); err != nil {
			return err
		}
	}
	g.backend.generate("b", topLabel)
	g.backend.genLabel(endLabel, "endwhile")
	return nil
}

func (g *generator) genReturn(s *ast.ReturnStmt) error {
	if s.Value != nil {
		if err := g.genExpr(s.Value); err != nil {
			return err
		}
		g.backend.genPop(RegV0)
	}
	return nil
}

// genExpr emits code that leaves the expression's value on top of the
// stack (genPush'd), mirroring the original backend's stack-machine
// convention: every subexpression pushes exactly one word, and every
// operator pops its operands and pushes its result.
func (g *generator) genExpr(e ast.Expr) error {
	switch expr := e.(type) {
	case *ast.IntLit:
		g.backend.generate("li", RegT0, fmt.Sprint(expr.Value))
		g.backend.genPush(RegT0)
		return nil
	case *ast.TrueLit:
		g.backend.generate("li", RegT0, trueValue)
		g.backend.genPush(RegT0)
		return nil
	case *ast.FalseLit:
		g.backend.generate("li", RegT0, falseValue)
		g.backend.genPush(RegT0)
		return nil
	case *ast.StringLit:
		// Strings are write-only (see WriteStmt); nothing else evaluates
		// one as a stack value.
		return internalErrorf("codegen: string literal used outside output statement")
	case *ast.Id, *ast.DotAccess:
		_, offset, err := g.resolveLoc(expr)
		if err != nil {
			return err
		}
		g.backend.generateIndexed("lw", RegT0, RegFP, offset, "load")
		g.backend.genPush(RegT0)
		return nil
	case *ast.UnaryMinus:
		if err := g.genExpr(expr.Operand); err != nil {
			return err
		}
		g.backend.genPop(RegT0)
		g.backend.generate("negu", RegT0, RegT0)
		g.backend.genPush(RegT0)
		return nil
	case *ast.Not:
		if err := g.genExpr(expr.Operand); err != nil {
			return err
		}
		g.backend.genPop(RegT0)
		g.backend.generate("xori", RegT0, RegT0, "1")
		g.backend.genPush(RegT0)
		return nil
	case *ast.BinaryExpr:
		return g.genBinary(expr)
	case *ast.EqualsExpr:
		return g.genCompare(expr.Left, expr.Right, "seq")
	case *ast.NotEqualsExpr:
		return g.genCompare(expr.Left, expr.Right, "sne")
	case *ast.AssignExpr:
		if err := g.genAssign(expr); err != nil {
			return err
		}
		g.backend.generateIndexed("lw", RegT0, RegFP, mustOffset(g, expr.LHS), "reload assigned value")
		g.backend.genPush(RegT0)
		return nil
	case *ast.CallExpr:
		return g.genCall(expr)
	default:
		return internalErrorf("codegen: unhandled expression type %T", e)
	}
}

func mustOffset(g *generator, e ast.Expr) int {
	_, offset, err := g.resolveLoc(e)
	if err != nil {
		panic(err)
	}
	return offset
}

func (g *generator) genBinary(e *ast.BinaryExpr) error {
	if err := g.genExpr(e.Left); err != nil {
		return err
	}
	if err := g.genExpr(e.Right); err != nil {
		return err
	}
	g.backend.genPop(RegT1) // right
	g.backend.genPop(RegT0) // left

	op, ok := mipsOp[e.Op]
	if !ok {
		return internalErrorf("codegen: unhandled binary operator %v", e.Op)
	}
	g.backend.generate(op, RegT0, RegT0, RegT1)
	g.backend.genPush(RegT0)
	return nil
}

var mipsOp = map[ast.BinOp]string{
	ast.OpPlus:       "addu",
	ast.OpMinus:      "subu",
	ast.OpTimes:      "mul",
	ast.OpDivide:     "div",
	ast.OpAnd:        "and",
	ast.OpOr:         "or",
	ast.OpLess:       "slt",
	ast.OpLessEq:     "sle",
	ast.OpGreater:    "sgt",
	ast.OpGreaterEq:  "sge",
}

func (g *generator) genCompare(left, right ast.Expr, opcode string) error {
	if err := g.genExpr(left); err != nil {
		return err
	}
	if err := g.genExpr(right); err != nil {
		return err
	}
	g.backend.genPop(RegT1)
	g.backend.genPop(RegT0)
	g.backend.generate(opcode, RegT0, RegT0, RegT1)
	g.backend.genPush(RegT0)
	return nil
}

func (g *generator) genCall(c *ast.CallExpr) error {
	for _, arg := range c.Args {
		if err := g.genExpr(arg); err != nil {
			return err
		}
	}
	g.backend.generate("jal", "fn_"+c.Fn.Name)
	// callee leaves its return value (if any) in $v0; push it so callers
	// of genExpr see the usual one-value-on-the-stack contract, even for
	// void calls used only as a statement (CallStmt pops and discards it).
	g.backend.genPush(RegV0)
	return nil
}

// genStore emits code to store the value already in valueReg into target's
// stack slot.
func (g *generator) genStore(target ast.Expr, valueReg string) error {
	_, offset, err := g.resolveLoc(target)
	if err != nil {
		return err
	}
	g.backend.generateIndexed("sw", valueReg, RegFP, offset, "store")
	return nil
}

// resolveLoc resolves an Id or DotAccess to its frame offset. Struct field
// access isn't given its own offset arithmetic here - the field's own
// VarSymbol (set by name analysis) is looked up directly in the frame.
// That symbol belongs to the struct's declaration, and buildFrame gives
// field symbols no slot, so every DotAccess returns an *InternalError
// here; a struct-typed local itself occupies a single word.
func (g *generator) resolveLoc(e ast.Expr) (*symtab.VarSymbol, int, error) {
	var sym *symtab.VarSymbol
	switch expr := e.(type) {
	case *ast.Id:
		vs, ok := expr.ResolvedSymbol.(*symtab.VarSymbol)
		if !ok {
			return nil, 0, internalErrorf("codegen: %s does not resolve to a variable", expr.Name)
		}
		sym = vs
	case *ast.DotAccess:
		vs, ok := expr.Field.ResolvedSymbol.(*symtab.VarSymbol)
		if !ok {
			return nil, 0, internalErrorf("codegen: dot-access field does not resolve to a variable")
		}
		sym = vs
	default:
		return nil, 0, internalErrorf("codegen: %T is not an assignable location", e)
	}
	offset, ok := g.frame.offsetOf(sym)
	if !ok {
		return nil, 0, internalErrorf("codegen: variable %q has no frame slot", sym.Name())
	}
	return sym, offset, nil
}

func stringLabel(s *ast.StringLit) string {
	return fmt.Sprintf("str_%d_%d", s.Pos().Line, s.Pos().Column)
}
