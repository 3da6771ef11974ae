// Package codegen implements LIL'C's downstream code generator: a
// stack-machine MIPS backend that walks a name- and type-checked AST and
// emits pseudo-assembly text. It never runs unless both semantic passes
// have already returned true, and it introduces no new user-facing
// diagnostics - anything it can't handle is an internal error, since a
// type-checked tree cannot contain a shape this package doesn't expect.
//
// Grounded on the stack-machine primitives of the toolchain's MIPS backend:
// generate/genPush/genPop/genLabel/nextLabel writing labeled pseudo-ops to
// an io.Writer, one label per function and straight-line stack code per
// statement. This package implements no optimizations (constant folding,
// dead code elimination) - those are out of scope for a semantic-analysis
// front end and the teacher's SSA-shaped optimizer package doesn't fit a
// stack machine's code shape, so it was not adapted (see DESIGN.md).
package codegen

import (
	"fmt"
	"io"
)

// Register names for the subset of MIPS registers this backend targets.
const (
	RegFP = "$fp"
	RegSP = "$sp"
	RegRA = "$ra"
	RegV0 = "$v0"
	RegV1 = "$v1"
	RegA0 = "$a0"
	RegT0 = "$t0"
	RegT1 = "$t1"
)

const (
	wordSize   = 4
	trueValue  = "1"
	falseValue = "0"
)

// Backend writes pseudo-assembly to out, tracking label allocation the way
// every function's control flow (if/else branches, while loops) needs a
// pair of unique labels to jump between.
type Backend struct {
	out       io.Writer
	currLabel int
}

// NewBackend returns a Backend that writes generated code to out.
func NewBackend(out io.Writer) *Backend {
	return &Backend{out: out}
}

// generate writes "opcode arg1, arg2, arg3" (empty args omitted), always
// ending the line with a newline.
func (b *Backend) generate(opcode string, args ...string) {
	line := opcode
	nonEmpty := make([]string, 0, len(args))
	for _, a := range args {
		if a != "" {
			nonEmpty = append(nonEmpty, a)
		}
	}
	if len(nonEmpty) > 0 {
		line += "\t" + joinArgs(nonEmpty)
	}
	fmt.Fprintln(b.out, line)
}

// generateWithComment is generate, followed by a "# comment" on its own
// line.
func (b *Backend) generateWithComment(opcode, comment string, args ...string) {
	b.generate(opcode, args...)
	if comment != "" {
		fmt.Fprintf(b.out, "\t# %s\n", comment)
	}
}

// generateIndexed writes "opcode arg1, offset(arg2)  # comment" - the form
// every load/store of a stack-relative local uses.
func (b *Backend) generateIndexed(opcode, arg1, arg2 string, offset int, comment string) {
	line := fmt.Sprintf("%s\t%s, %d(%s)", opcode, arg1, offset, arg2)
	if comment != "" {
		line += "\t# " + comment
	}
	fmt.Fprintln(b.out, line)
}

// generateLabeled writes "label:\topcode arg1  # comment".
func (b *Backend) generateLabeled(label, opcode, comment string, arg string) {
	line := label + ":\t" + opcode
	if arg != "" {
		line += "\t" + arg
	}
	if comment != "" {
		line += "\t# " + comment
	}
	fmt.Fprintln(b.out, line)
}

// genPush writes code to push a value already in a register onto the
// stack: decrement $sp by one word, then store the value there.
func (b *Backend) genPush(reg string) {
	b.generate("subu", RegSP, RegSP, "4")
	b.generateIndexed("sw", reg, RegSP, 0, "push")
}

// genPop writes code to pop the top of the stack into reg.
func (b *Backend) genPop(reg string) {
	b.generateIndexed("lw", reg, RegSP, 0, "pop")
	b.generate("addu", RegSP, RegSP, "4")
}

// genLabel writes "label:" on its own line, with an optional comment.
func (b *Backend) genLabel(label, comment string) {
	if comment != "" {
		fmt.Fprintf(b.out, "%s:\t# %s\n", label, comment)
		return
	}
	fmt.Fprintf(b.out, "%s:\n", label)
}

// nextLabel returns a fresh, never-repeated label: L0, L1, L2, ...
func (b *Backend) nextLabel() string {
	label := fmt.Sprintf("L%d", b.currLabel)
	b.currLabel++
	return label
}

func joinArgs(args []string) string {
	out := args[0]
	for _, a := range args[1:] {
		out += ", " + a
	}
	return out
}
