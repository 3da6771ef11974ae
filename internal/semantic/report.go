// Package semantic implements LIL'C's two analysis passes: name analysis
// (resolving every identifier to a declaration and rejecting redeclarations
// and undefined names) and type analysis (checking every expression and
// statement against LIL'C's type rules). Both passes are plain recursive
// tree walks over *ast.Program; see NameAnalysis and TypeAnalysis.
package semantic

import (
	"fmt"

	"github.com/hassan/lilcc/internal/lexer"
)

// Reporter collects user-facing diagnostics in the format every LIL'C
// diagnostic uses: "<line>:<col> ***ERROR*** <message>". It never aborts
// analysis - reporting a diagnostic and returning false so the caller can
// decide how (or whether) to keep walking the rest of the tree is the
// analysis passes' job, not the reporter's.
type Reporter struct {
	diagnostics []string

	// DotHints, when set, makes badDotRHS append a "did you mean" note
	// naming the declared field closest to the misspelled one. Off by
	// default; the CLI driver turns it on from .lilcc.yaml's dot_hints.
	DotHints bool
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

func (r *Reporter) report(pos string, msg string) {
	r.diagnostics = append(r.diagnostics, pos+" ***ERROR*** "+msg)
}

// Diagnostics returns every diagnostic reported so far, in report order.
func (r *Reporter) Diagnostics() []string {
	return r.diagnostics
}

// HasErrors reports whether any diagnostic has been recorded.
func (r *Reporter) HasErrors() bool {
	return len(r.diagnostics) > 0
}

// InternalError signals a tree shape the analyzer considers impossible to
// reach from valid parser output (e.g. an AST node type a pass has no case
// for, or a dot-access base the grammar forbids). It is not a user diagnostic - the caller that catches it should
// treat it as a compiler bug, not bad input.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return e.Msg }

func internalErrorf(format string, args ...interface{}) error {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}

// --- Name-analysis diagnostics (Err, in the source this is modeled on) ---

func (r *Reporter) multiDecl(pos lexer.Position) bool {
	r.report(pos.String(), "Multiply declared identifiers")
	return false
}

func (r *Reporter) undeclaredID(pos lexer.Position) bool {
	r.report(pos.String(), "Undeclared identifier")
	return false
}

func (r *Reporter) undefType(pos lexer.Position) bool {
	r.report(pos.String(), "Undefined type")
	return false
}

func (r *Reporter) badVoid(pos lexer.Position) bool {
	r.report(pos.String(), "Non-function declared void")
	return false
}

func (r *Reporter) badDotLHS(pos lexer.Position) bool {
	r.report(pos.String(), "Dot-access of non-struct type")
	return false
}

// badDotRHS reports a dot-access against a field the base struct doesn't
// declare. suggestion, when non-empty, is folded into the message as a
// "did you mean" note; callers pass "" to suppress it.
func (r *Reporter) badDotRHS(pos lexer.Position, suggestion string) bool {
	msg := "Invalid struct field name"
	if suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	r.report(pos.String(), msg)
	return false
}

// --- Type-analysis diagnostics (TypeErr). Every one of these reports and
// then returns the poison sentinel "ERROR", matching how each call site
// uses the return value directly as the expression's analyzed type. ---

const errorType = "ERROR"

func (r *Reporter) writeFunction(pos lexer.Position) string {
	r.report(pos.String(), "Attempt to write a function")
	return errorType
}

func (r *Reporter) writeStructVar(pos lexer.Position) string {
	r.report(pos.String(), "Attempt to write a struct variable")
	return errorType
}

func (r *Reporter) writeStructName(pos lexer.Position) string {
	r.report(pos.String(), "Attempt to write a struct name")
	return errorType
}

func (r *Reporter) readFunction(pos lexer.Position) string {
	r.report(pos.String(), "Attempt to read a function")
	return errorType
}

func (r *Reporter) readStructVar(pos lexer.Position) string {
	r.report(pos.String(), "Attempt to read a struct variable")
	return errorType
}

func (r *Reporter) readStructName(pos lexer.Position) string {
	r.report(pos.String(), "Attempt to read a struct name")
	return errorType
}

func (r *Reporter) writeVoid(pos lexer.Position) string {
	r.report(pos.String(), "Attempt to write void")
	return errorType
}

func (r *Reporter) badMath(pos lexer.Position) string {
	r.report(pos.String(), "Arithmetic operator applied to non-numeric operand")
	return errorType
}

func (r *Reporter) badRelational(pos lexer.Position) string {
	r.report(pos.String(), "Relational operator applied to non-numeric operand")
	return errorType
}

func (r *Reporter) badLogical(pos lexer.Position) string {
	r.report(pos.String(), "Logical operator applied to non-bool operand")
	return errorType
}

func (r *Reporter) callNonFunc(pos lexer.Position) string {
	r.report(pos.String(), "Attempt to call a non-function")
	return errorType
}

func (r *Reporter) badNumArgs(pos lexer.Position) string {
	r.report(pos.String(), "Function call with wrong number of args")
	return errorType
}

func (r *Reporter) argMismatch(pos lexer.Position) string {
	r.report(pos.String(), "Type of actual does not match type of formal")
	return errorType
}

// missingReturnValue is always reported at the literal position "0,0",
// never at any real node's position. See the design notes in the
// repository root for why this is preserved rather than fixed: the
// compiler this is descended from hardcodes exactly this string, never
// computing a line/column pair at all, for a bare "return;" that a
// non-void function rejects.
func (r *Reporter) missingReturnValue() string {
	r.report("0,0", "Missing return value")
	return errorType
}

func (r *Reporter) badReturnValue(pos lexer.Position) string {
	r.report(pos.String(), "Bad return value")
	return errorType
}

func (r *Reporter) returnFromVoid(pos lexer.Position) string {
	r.report(pos.String(), "Return with a value in a void function")
	return errorType
}

func (r *Reporter) typeMismatch(pos lexer.Position) string {
	r.report(pos.String(), "Type mismatch")
	return errorType
}

func (r *Reporter) voidEq(pos lexer.Position) string {
	r.report(pos.String(), "Equality operator applied to void functions")
	return errorType
}

func (r *Reporter) funEq(pos lexer.Position) string {
	r.report(pos.String(), "Equality operator applied to functions")
	return errorType
}

func (r *Reporter) structVarEq(pos lexer.Position) string {
	r.report(pos.String(), "Equality operator applied to struct variables")
	return errorType
}

func (r *Reporter) structNameEq(pos lexer.Position) string {
	r.report(pos.String(), "Equality operator applied to struct names")
	return errorType
}

func (r *Reporter) badIfCond(pos lexer.Position) string {
	r.report(pos.String(), "Non-bool expression used as an if condition")
	return errorType
}

func (r *Reporter) assignFunction(pos lexer.Position) string {
	r.report(pos.String(), "Function assignment")
	return errorType
}

func (r *Reporter) assignStructName(pos lexer.Position) string {
	r.report(pos.String(), "Struct name assignment")
	return errorType
}

func (r *Reporter) assignStructVar(pos lexer.Position) string {
	r.report(pos.String(), "Struct variable assignment")
	return errorType
}
