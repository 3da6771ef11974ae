package semantic

import (
	"strings"
	"testing"

	"github.com/hassan/lilcc/internal/lexer"
	"github.com/hassan/lilcc/internal/parser"
	"github.com/hassan/lilcc/internal/symtab"
)

// compile runs the full front end (lex, parse, name analysis, type
// analysis) over src and returns whether each analysis pass succeeded,
// along with every diagnostic collected. A parse failure is treated as a
// test setup error, not a result to assert on - these scenarios are all
// syntactically valid LIL'C.
func compile(t *testing.T, src string) (nameOK, typeOK bool, diagnostics []string) {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog, errs := p.ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	r := NewReporter()
	stack := symtab.NewStack()
	nameOK = NameAnalysis(prog, r, stack)
	if nameOK {
		typeOK = TypeAnalysis(prog, r)
	}
	return nameOK, typeOK, r.Diagnostics()
}

func diagCount(diagnostics []string, substr string) int {
	n := 0
	for _, d := range diagnostics {
		if strings.Contains(d, substr) {
			n++
		}
	}
	return n
}

// S1: a bare "return;" in a non-void function is rejected at the
// hardcoded "0,0" position, never a real node's position.
func TestS1_MissingReturnValue(t *testing.T) {
	_, typeOK, diags := compile(t, `int main(){ return; }`)
	if typeOK {
		t.Fatal("expected type analysis to reject a missing return value")
	}
	if diagCount(diags, "Missing return value") != 1 {
		t.Errorf("expected exactly one missing-return diagnostic, got %v", diags)
	}
	found := false
	for _, d := range diags {
		if strings.HasPrefix(d, "0,0 ") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the missing-return diagnostic at 0,0, got %v", diags)
	}
}

// S2: a void function with an empty body needs no return at all.
func TestS2_VoidMainAccepted(t *testing.T) {
	nameOK, typeOK, diags := compile(t, `void main(){ }`)
	if !nameOK || !typeOK {
		t.Errorf("expected void main(){} to be accepted, got diagnostics %v", diags)
	}
}

// S3: redeclaring a variable in the same scope is a single multiDecl,
// reported only at the second declaration.
func TestS3_MultiDecl(t *testing.T) {
	nameOK, _, diags := compile(t, `void main(){ int x; int x; }`)
	if nameOK {
		t.Fatal("expected name analysis to reject the redeclaration")
	}
	if diagCount(diags, "Multiply declared identifiers") != 1 {
		t.Errorf("expected exactly one multiDecl diagnostic, got %v", diags)
	}
}

// S4: calling a function with the wrong number of arguments is rejected
// at the call site.
func TestS4_BadNumArgs(t *testing.T) {
	_, typeOK, diags := compile(t, `int f(int a, bool b){ return a; } void main(){ f(1); }`)
	if typeOK {
		t.Fatal("expected type analysis to reject the wrong arg count")
	}
	if diagCount(diags, "Function call with wrong number of args") != 1 {
		t.Errorf("expected exactly one badNumArgs diagnostic, got %v", diags)
	}
}

// S5: assigning an int literal to a bool variable is a type mismatch.
func TestS5_TypeMismatch(t *testing.T) {
	_, typeOK, diags := compile(t, `void main(){ bool b; b = 1; }`)
	if typeOK {
		t.Fatal("expected type analysis to reject the assignment")
	}
	if diagCount(diags, "Type mismatch") != 1 {
		t.Errorf("expected exactly one typeMismatch diagnostic, got %v", diags)
	}
}

// S6: accessing an undeclared struct field is rejected, but a sibling
// access to a real field in the same statement list is still accepted.
func TestS6_BadDotRHS(t *testing.T) {
	nameOK, _, diags := compile(t, `struct S { int x; }; void main(){ S s; s.x = 3; s.y = 4; }`)
	if nameOK {
		t.Fatal("expected name analysis to reject s.y")
	}
	if diagCount(diags, "Invalid struct field name") != 1 {
		t.Errorf("expected exactly one badDotRHS diagnostic, got %v", diags)
	}
}

// S7: a type error in one operand of + suppresses a cascading diagnostic
// from the enclosing output statement - exactly one badMath, not two.
func TestS7_BadMathCascadeSuppressed(t *testing.T) {
	_, typeOK, diags := compile(t, `void main(){ output << 3 + true; }`)
	if typeOK {
		t.Fatal("expected type analysis to reject 3 + true")
	}
	if diagCount(diags, "Arithmetic operator applied to non-numeric operand") != 1 {
		t.Errorf("expected exactly one badMath diagnostic, got %v", diags)
	}
	if len(diags) != 1 {
		t.Errorf("expected no additional diagnostic from the enclosing output statement, got %v", diags)
	}
}

// S8: comparing two functions for equality is rejected, but the rest of
// the if's body is still analyzed (non-short-circuit aggregation).
func TestS8_FunEqStillAnalyzesBody(t *testing.T) {
	_, typeOK, diags := compile(t, `int f(){ return 1; } void main(){ if (f == f) { bool b; b = 1; } }`)
	if typeOK {
		t.Fatal("expected type analysis to reject f == f")
	}
	if diagCount(diags, "Equality operator applied to functions") != 1 {
		t.Errorf("expected exactly one funEq diagnostic, got %v", diags)
	}
	if diagCount(diags, "Type mismatch") != 1 {
		t.Errorf("expected the if body's own type mismatch to still be reported, got %v", diags)
	}
}

// Formals populate the body scope and that scope must stay current for the
// body, not be popped and replaced with an empty one - regression test for
// a bug where referencing a formal anywhere in the body reported
// undeclaredID.
func TestFnBodyCanReferenceFormals(t *testing.T) {
	nameOK, typeOK, diags := compile(t, `int f(int a, bool b){ return a; } void main(){ f(1, true); }`)
	if !nameOK || !typeOK {
		t.Errorf("expected formals to resolve inside the function body, got %v", diags)
	}
}

// A type mismatch must be checked before classifying the LHS as a
// function/struct-name/struct-variable assignment - those classifications
// only apply when both sides already have the same type.
func TestAssignMismatchReportsTypeMismatchNotKind(t *testing.T) {
	_, typeOK, diags := compile(t, `struct S { int x; }; void main(){ S s; s = 5; }`)
	if typeOK {
		t.Fatal("expected type analysis to reject assigning an int to a struct variable")
	}
	if diagCount(diags, "Type mismatch") != 1 {
		t.Errorf("expected exactly one typeMismatch diagnostic, got %v", diags)
	}
	if diagCount(diags, "Struct variable assignment") != 0 {
		t.Errorf("expected no assignStructVar diagnostic for a type mismatch, got %v", diags)
	}
}

// Assigning to a function whose RHS already poisoned to ERROR must not add
// a second diagnostic about the LHS - the cascade-suppression invariant.
func TestAssignToFunctionCascadeSuppressed(t *testing.T) {
	_, typeOK, diags := compile(t, `int f(){ return 1; } void main(){ f = true + 3; }`)
	if typeOK {
		t.Fatal("expected type analysis to reject the assignment")
	}
	if len(diags) != 1 {
		t.Errorf("expected only the RHS's own badMath diagnostic, got %v", diags)
	}
	if diagCount(diags, "Function assignment") != 0 {
		t.Errorf("expected no assignFunction diagnostic once the RHS already poisoned to ERROR, got %v", diags)
	}
}

// A type mismatch must be checked before classifying an equality as a
// void/function/struct comparison - those classifications only apply when
// both sides already have the same type.
func TestEqualityMismatchReportsTypeMismatchNotVoidEq(t *testing.T) {
	_, typeOK, diags := compile(t, `void f(){ } void main(){ if (f() == 3) { } }`)
	if typeOK {
		t.Fatal("expected type analysis to reject comparing a void call to an int")
	}
	if diagCount(diags, "Type mismatch") != 1 {
		t.Errorf("expected exactly one typeMismatch diagnostic, got %v", diags)
	}
	if diagCount(diags, "Equality operator applied to void functions") != 0 {
		t.Errorf("expected no voidEq diagnostic for a type mismatch, got %v", diags)
	}
}

func TestEqualityMismatchReportsTypeMismatchNotStructVarEq(t *testing.T) {
	_, typeOK, diags := compile(t, `struct S { int x; }; void main(){ S s; if (s == 3) { } }`)
	if typeOK {
		t.Fatal("expected type analysis to reject comparing a struct variable to an int")
	}
	if diagCount(diags, "Type mismatch") != 1 {
		t.Errorf("expected exactly one typeMismatch diagnostic, got %v", diags)
	}
	if diagCount(diags, "Equality operator applied to struct variables") != 0 {
		t.Errorf("expected no structVarEq diagnostic for a type mismatch, got %v", diags)
	}
}

func TestAcceptsStructFieldAssignment(t *testing.T) {
	nameOK, typeOK, diags := compile(t, `struct Point { int x; int y; }; void main(){ Point p; p.x = 1; p.y = 2; }`)
	if !nameOK || !typeOK {
		t.Errorf("expected valid struct field assignment to be accepted, got %v", diags)
	}
}

func TestEqualsAndNotEqualsReportAtDifferentPositions(t *testing.T) {
	// == reports at the left operand's position; != reports at the
	// operator's own position (see EqualsExpr's doc comment). Both sides
	// of "3 <op> true" put the left operand at the same column, so if the
	// two diagnostics land at different positions, != is not just copying
	// =='s rule.
	_, eqTypeOK, eqDiags := compile(t, `void main(){ output << 3 == true; }`)
	_, neTypeOK, neDiags := compile(t, `void main(){ output << 3 != true; }`)
	if eqTypeOK || neTypeOK {
		t.Fatal("expected both comparisons against a bool operand to be rejected")
	}
	if len(eqDiags) != 1 || len(neDiags) != 1 {
		t.Fatalf("expected exactly one diagnostic each, got == %v and != %v", eqDiags, neDiags)
	}
	eqPos := strings.SplitN(eqDiags[0], " ", 2)[0]
	nePos := strings.SplitN(neDiags[0], " ", 2)[0]
	if eqPos == nePos {
		t.Errorf("expected == and != to report at different positions given their asymmetric rule, both got %q", eqPos)
	}
}

func TestBadDotRHSSuggestsClosestField(t *testing.T) {
	p := parser.New(lexer.New(`struct S { int xy; }; void main(){ S s; s.xz = 1; }`))
	prog, errs := p.ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	r := NewReporter()
	r.DotHints = true
	stack := symtab.NewStack()
	if NameAnalysis(prog, r, stack) {
		t.Fatal("expected name analysis to reject s.xz")
	}
	found := false
	for _, d := range r.Diagnostics() {
		if strings.Contains(d, `did you mean "xy"?`) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a hint suggesting the closest field name, got %v", r.Diagnostics())
	}
}

func TestBadDotRHSNoHintWhenDisabled(t *testing.T) {
	_, _, diags := compile(t, `struct S { int xy; }; void main(){ S s; s.xz = 1; }`)
	for _, d := range diags {
		if strings.Contains(d, "did you mean") {
			t.Errorf("expected no hint when DotHints is off, got %v", diags)
		}
	}
}

func TestUndeclaredIdentifier(t *testing.T) {
	nameOK, _, diags := compile(t, `void main(){ x = 1; }`)
	if nameOK {
		t.Fatal("expected name analysis to reject the undeclared identifier")
	}
	if diagCount(diags, "Undeclared identifier") != 1 {
		t.Errorf("expected exactly one undeclaredID diagnostic, got %v", diags)
	}
}

func TestShadowingAcrossScopesAllowed(t *testing.T) {
	nameOK, typeOK, diags := compile(t, `void main(){ int x; if (true) { int x; x = 1; } }`)
	if !nameOK || !typeOK {
		t.Errorf("expected an inner-scope redeclaration to shadow, not collide, got %v", diags)
	}
}

func TestFnDeclCollisionCheckedAgainstEnclosingScope(t *testing.T) {
	nameOK, _, diags := compile(t, `void f(){ } void f(){ } void main(){ }`)
	if nameOK {
		t.Fatal("expected the second f to collide with the first in the enclosing scope")
	}
	if diagCount(diags, "Multiply declared identifiers") != 1 {
		t.Errorf("expected exactly one multiDecl diagnostic, got %v", diags)
	}
}
