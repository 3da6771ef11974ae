// Package lexer turns LIL'C source text into a stream of position-tagged
// tokens for the parser.
package lexer

import "strconv"

// Position marks a single location in the source file.
//
// DESIGN CHOICE: Position is a value type (two ints), not a pointer, because:
// - it is copied into every token and every AST node, and pointer chasing
//   for something this small would only add GC pressure
// - it is immutable once produced by the scanner
//
// Line and Column are both 1-based, matching how every LIL'C diagnostic is
// printed ("<line>:<col> ***ERROR*** ..."). Column counts bytes from the
// start of the line, so a multi-byte UTF-8 character earlier on the same
// line advances the column by more than one.
type Position struct {
	Line   int
	Column int
}

// String renders the position the way every diagnostic in this compiler
// expects it: "line:column". There is no filename component - LIL'C compiles
// exactly one file per invocation, so the CLI driver already knows which
// file a diagnostic came from.
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether this position was ever set from a real token,
// rather than left as the zero value.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Zero is the position every container node (declaration lists, statement
// lists, formal lists) is tagged with at construction; they don't appear in
// diagnostics directly, so they don't need a real position. Using a named
// zero value rather than a bare Position{} makes that intent explicit at
// call sites.
var Zero = Position{}
