// Package types classifies LIL'C's canonical type strings.
//
// DESIGN CHOICE: a type is a plain string, classified by these predicates,
// rather than a parsed sum-type. Every symbol and every expression's
// analyzed type already IS a type string (see package symtab's doc
// comment); giving type analysis a second, richer representation to
// translate into and out of would only be a source of divergence bugs
// between "what symtab stored" and "what type analysis compared against".
// The predicates below are exactly the classification the original
// toolchain's LilC_Types helper performs, kept as free functions so any
// caller holding a bare string (not a symtab.Symbol) can still classify it.
package types

import "strings"

// Error is the type-poison sentinel: once an expression's type is Error,
// type analysis has already reported a diagnostic for it (or one of its
// subexpressions), and every consumer of that type silently propagates
// Error rather than reporting a second, cascading diagnostic.
const Error = "ERROR"

// IsFnSig reports whether typeStr is a function signature ("T1,...,Tn->R").
// Function signatures are the only type strings containing "->".
func IsFnSig(typeStr string) bool {
	return strings.Contains(typeStr, "->")
}

// IsStructName reports whether typeStr is a struct's field-set signature
// ("{f1,f2,...,fk,}"). Struct signatures are the only type strings
// containing "{".
func IsStructName(typeStr string) bool {
	return strings.Contains(typeStr, "{")
}

// IsVoid reports whether typeStr is exactly "void".
func IsVoid(typeStr string) bool {
	return typeStr == "void"
}

// IsPrimitive reports whether typeStr is one of LIL'C's four primitive
// types. Note this is true for "void" as well, even though a void-typed
// value can never actually be held by a variable - it classifies the type
// string's syntactic shape, not whether a value of that type is usable in
// a given context (that is why WriteStmt's type check tests IsVoid
// separately).
func IsPrimitive(typeStr string) bool {
	switch typeStr {
	case "bool", "void", "int", "string":
		return true
	default:
		return false
	}
}
