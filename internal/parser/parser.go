// Package parser implements a recursive-descent parser for LIL'C, turning a
// lexer.Lexer's token stream into an *ast.Program.
//
// PARSING STRATEGY: recursive descent for declarations and statements,
// precedence climbing (one level function per precedence tier) for
// expressions. LIL'C's operator set is small and fixed, so a table-driven
// Pratt parser would buy nothing a handful of direct level functions don't
// already give.
//
// ERROR HANDLING STRATEGY: accumulate every error found rather than
// stopping at the first one, using panic/recover to unwind to a
// synchronization point (the next ';' or block boundary) and keep parsing
// after a malformed declaration or statement.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hassan/lilcc/internal/ast"
	"github.com/hassan/lilcc/internal/lexer"
)

// Parser converts a lexer's token stream into an AST.
type Parser struct {
	lex *lexer.Lexer

	current  lexer.Token
	previous lexer.Token

	errors    []error
	panicMode bool
}

// New creates a Parser reading from l and primes it with the first token.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{lex: l}
	p.advance()
	return p
}

// ParseProgram parses a complete LIL'C source file: program := declList.
// It always returns a non-nil *ast.Program (possibly with fewer decls than
// the source actually contained, if errors forced a skip) along with every
// error accumulated along the way.
func (p *Parser) ParseProgram() (*ast.Program, []error) {
	prog := &ast.Program{}
	for !p.isAtEnd() {
		if d := p.parseDecl(); d != nil {
			prog.Decls = append(prog.Decls, d)
		}
	}
	return prog, p.errors
}

// --- Declarations ---

// parseDecl parses one top-level or nested declaration: a var, function, or
// struct declaration. On a malformed declaration it records an error and
// synchronizes to the next likely declaration/statement boundary, so that a
// single bad declaration doesn't abort the whole parse.
func (p *Parser) parseDecl() (decl ast.Decl) {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
			decl = nil
		}
	}()

	switch p.current.Type {
	case lexer.TokenStruct:
		return p.parseStructDecl()
	case lexer.TokenInt, lexer.TokenBool, lexer.TokenVoid, lexer.TokenID:
		return p.parseVarOrFnDecl()
	default:
		p.error(fmt.Sprintf("expected a declaration, got %s", p.current.Type))
		panic("invalid declaration")
	}
}

// parseVarOrFnDecl parses "type id ';'" or "type id '(' formals ')' '{' ... '}'" -
// the two productions share a type+id prefix, so both are parsed here and
// disambiguated on whatever comes right after the name.
func (p *Parser) parseVarOrFnDecl() ast.Decl {
	typeNode := p.parseType()
	nameTok := p.expectID("expected a name after type")
	name := &ast.Id{StartPos: nameTok.Pos, Name: nameTok.Value}

	if p.check(lexer.TokenLParen) {
		return p.parseFnDeclTail(typeNode, name)
	}

	p.consume(lexer.TokenSemi, "expected ';' after variable declaration")
	return &ast.VarDecl{StartPos: typeNode.Pos(), Type: typeNode, Name: name}
}

func (p *Parser) parseFnDeclTail(retType ast.TypeNode, name *ast.Id) *ast.FuncDecl {
	p.consume(lexer.TokenLParen, "expected '(' after function name")
	formals := p.parseFormals()
	p.consume(lexer.TokenRParen, "expected ')' after formals")

	p.consume(lexer.TokenLBrace, "expected '{' to start function body")
	decls, stmts := p.parseDeclStmtList()
	p.consume(lexer.TokenRBrace, "expected '}' to close function body")

	return &ast.FuncDecl{
		StartPos: retType.Pos(),
		RetType:  retType,
		Name:     name,
		Formals:  formals,
		Body:     &ast.FnBody{Decls: decls, Stmts: stmts},
	}
}

func (p *Parser) parseFormals() []*ast.FormalDecl {
	var formals []*ast.FormalDecl
	if p.check(lexer.TokenRParen) {
		return formals
	}
	for {
		typeNode := p.parseType()
		nameTok := p.expectID("expected a formal parameter name")
		formals = append(formals, &ast.FormalDecl{
			StartPos: typeNode.Pos(),
			Type:     typeNode,
			Name:     &ast.Id{StartPos: nameTok.Pos, Name: nameTok.Value},
		})
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	return formals
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	structPos := p.current.Pos
	p.advance() // 'struct'
	nameTok := p.expectID("expected a struct name")
	name := &ast.Id{StartPos: nameTok.Pos, Name: nameTok.Value}

	p.consume(lexer.TokenLBrace, "expected '{' to start struct body")
	var fields []*ast.VarDecl
	for !p.check(lexer.TokenRBrace) && !p.isAtEnd() {
		typeNode := p.parseType()
		fieldNameTok := p.expectID("expected a field name")
		p.consume(lexer.TokenSemi, "expected ';' after field declaration")
		fields = append(fields, &ast.VarDecl{
			StartPos: typeNode.Pos(),
			Type:     typeNode,
			Name:     &ast.Id{StartPos: fieldNameTok.Pos, Name: fieldNameTok.Value},
		})
	}
	p.consume(lexer.TokenRBrace, "expected '}' to close struct body")
	p.consume(lexer.TokenSemi, "expected ';' after struct declaration")

	return &ast.StructDecl{StartPos: structPos, Name: name, Fields: fields}
}

// parseType parses a type annotation: 'int', 'bool', 'void', or a bare
// identifier naming a struct type.
func (p *Parser) parseType() ast.TypeNode {
	tok := p.current
	switch tok.Type {
	case lexer.TokenInt:
		p.advance()
		return &ast.IntTypeNode{StartPos: tok.Pos}
	case lexer.TokenBool:
		p.advance()
		return &ast.BoolTypeNode{StartPos: tok.Pos}
	case lexer.TokenVoid:
		p.advance()
		return &ast.VoidTypeNode{StartPos: tok.Pos}
	case lexer.TokenID:
		p.advance()
		return &ast.StructTypeNode{StartPos: tok.Pos, Name: tok.Value}
	default:
		p.error(fmt.Sprintf("expected a type, got %s", tok.Type))
		panic("invalid type")
	}
}

// --- Statements ---

// parseDeclStmtList parses "declList stmtList": every declaration a block
// can open with, followed by every statement, matching LIL'C's rule that
// declarations and statements never interleave within one block.
func (p *Parser) parseDeclStmtList() ([]ast.Decl, []ast.Stmt) {
	var decls []ast.Decl
	for p.startsDecl() {
		if d := p.parseDecl(); d != nil {
			decls = append(decls, d)
		}
	}
	var stmts []ast.Stmt
	for !p.check(lexer.TokenRBrace) && !p.isAtEnd() {
		if s := p.parseStmt(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return decls, stmts
}

// startsDecl reports whether the current token can only begin a
// declaration, not a statement - needed to know where declList ends and
// stmtList begins, since both a var declaration and an assignment statement
// start with an identifier in general, but only a declaration starts with a
// type keyword or "ID ID".
func (p *Parser) startsDecl() bool {
	switch p.current.Type {
	case lexer.TokenInt, lexer.TokenBool, lexer.TokenVoid, lexer.TokenStruct:
		return true
	case lexer.TokenID:
		return p.lookaheadIsType()
	default:
		return false
	}
}

// lookaheadIsType peeks one token past the current ID to see whether this
// is "StructName id" (a declaration) rather than "id ..." (a statement
// beginning with a variable reference). Lexing is cheap enough in this
// toolchain that re-scanning ahead a single token, rather than maintaining
// a general multi-token lookahead buffer, is the simplest way to resolve
// this one ambiguity in the grammar.
func (p *Parser) lookaheadIsType() bool {
	save := *p.lex
	savedCurrent, savedPrevious := p.current, p.previous
	savedErrCount := len(p.errors)

	p.advance() // consume the ID speculatively
	isType := p.current.Type == lexer.TokenID

	*p.lex = save
	p.current, p.previous = savedCurrent, savedPrevious
	p.errors = p.errors[:savedErrCount]
	return isType
}

func (p *Parser) parseStmt() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
			stmt = nil
		}
	}()

	switch p.current.Type {
	case lexer.TokenInput:
		return p.parseReadStmt()
	case lexer.TokenOutput:
		return p.parseWriteStmt()
	case lexer.TokenIf:
		return p.parseIfStmt()
	case lexer.TokenWhile:
		return p.parseWhileStmt()
	case lexer.TokenReturn:
		return p.parseReturnStmt()
	case lexer.TokenID:
		return p.parseIDLeadStmt()
	default:
		p.error(fmt.Sprintf("expected a statement, got %s", p.current.Type))
		panic("invalid statement")
	}
}

func (p *Parser) parseReadStmt() *ast.ReadStmt {
	pos := p.current.Pos
	p.advance() // 'input'
	p.consume(lexer.TokenRead, "expected '>>' after 'input'")
	target := p.parseLoc()
	p.consume(lexer.TokenSemi, "expected ';' after read statement")
	return &ast.ReadStmt{StartPos: pos, Target: target}
}

func (p *Parser) parseWriteStmt() *ast.WriteStmt {
	pos := p.current.Pos
	p.advance() // 'output'
	p.consume(lexer.TokenWrite, "expected '<<' after 'output'")
	value := p.parseExpr()
	p.consume(lexer.TokenSemi, "expected ';' after write statement")
	return &ast.WriteStmt{StartPos: pos, Value: value}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	pos := p.current.Pos
	p.advance() // 'if'
	p.consume(lexer.TokenLParen, "expected '(' after 'if'")
	cond := p.parseExpr()
	p.consume(lexer.TokenRParen, "expected ')' after if condition")

	p.consume(lexer.TokenLBrace, "expected '{' to start if body")
	declsT, stmtsT := p.parseDeclStmtList()
	p.consume(lexer.TokenRBrace, "expected '}' to close if body")

	if !p.match(lexer.TokenElse) {
		return &ast.IfStmt{StartPos: pos, Cond: cond, Decls: declsT, Stmts: stmtsT}
	}

	p.consume(lexer.TokenLBrace, "expected '{' to start else body")
	declsF, stmtsF := p.parseDeclStmtList()
	p.consume(lexer.TokenRBrace, "expected '}' to close else body")

	return &ast.IfElseStmt{
		StartPos: pos, Cond: cond,
		DeclsT: declsT, StmtsT: stmtsT,
		DeclsF: declsF, StmtsF: stmtsF,
	}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	pos := p.current.Pos
	p.advance() // 'while'
	p.consume(lexer.TokenLParen, "expected '(' after 'while'")
	cond := p.parseExpr()
	p.consume(lexer.TokenRParen, "expected ')' after while condition")

	p.consume(lexer.TokenLBrace, "expected '{' to start while body")
	decls, stmts := p.parseDeclStmtList()
	p.consume(lexer.TokenRBrace, "expected '}' to close while body")

	return &ast.WhileStmt{StartPos: pos, Cond: cond, Decls: decls, Stmts: stmts}
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	pos := p.current.Pos
	p.advance() // 'return'
	var value ast.Expr
	if !p.check(lexer.TokenSemi) {
		value = p.parseExpr()
	}
	p.consume(lexer.TokenSemi, "expected ';' after return statement")
	return &ast.ReturnStmt{StartPos: pos, Value: value}
}

// parseIDLeadStmt parses every statement form that starts with an
// identifier: an assignment, a post-increment/decrement, or a call used as
// a statement. All three share a common "id, then optional dot chain or
// call" prefix, so that prefix is parsed once and the statement form is
// picked by whatever token follows it.
func (p *Parser) parseIDLeadStmt() ast.Stmt {
	target := p.parseLocOrCall()

	if call, ok := target.(*ast.CallExpr); ok {
		p.consume(lexer.TokenSemi, "expected ';' after call statement")
		return &ast.CallStmt{Call: call}
	}

	switch p.current.Type {
	case lexer.TokenAssign:
		pos := p.current.Pos
		p.advance()
		rhs := p.parseExpr()
		p.consume(lexer.TokenSemi, "expected ';' after assignment")
		return &ast.AssignStmt{Assign: &ast.AssignExpr{StartPos: pos, LHS: target, RHS: rhs}}
	case lexer.TokenPlusPlus:
		pos := p.current.Pos
		p.advance()
		p.consume(lexer.TokenSemi, "expected ';' after '++'")
		return &ast.PostIncStmt{StartPos: pos, Target: target}
	case lexer.TokenMinusMinus:
		pos := p.current.Pos
		p.advance()
		p.consume(lexer.TokenSemi, "expected ';' after '--'")
		return &ast.PostDecStmt{StartPos: pos, Target: target}
	default:
		p.error(fmt.Sprintf("expected '=', '++', '--', or a call after %s, got %s", target.Pos(), p.current.Type))
		panic("invalid statement")
	}
}

// --- Expressions ---

// parseLoc parses "loc := id | loc '.' id" with no trailing call allowed -
// used for assignment/read/postfix targets, which the grammar never lets be
// a function call.
func (p *Parser) parseLoc() ast.Expr {
	nameTok := p.expectID("expected a variable or field name")
	var result ast.Expr = &ast.Id{StartPos: nameTok.Pos, Name: nameTok.Value}
	for p.check(lexer.TokenDot) {
		dotPos := p.current.Pos
		p.advance()
		fieldTok := p.expectID("expected a field name after '.'")
		result = &ast.DotAccess{
			StartPos: dotPos,
			Base:     result,
			Field:    &ast.Id{StartPos: fieldTok.Pos, Name: fieldTok.Value},
		}
	}
	return result
}

// parseLocOrCall parses an identifier that may turn out to be a bare loc
// (Id or dotted DotAccess chain) or a function call - "fncall := id '('
// (exp (',' exp)*)? ')'" only ever calls a bare id, never a dotted path, so
// the call check happens before any dot is consumed.
func (p *Parser) parseLocOrCall() ast.Expr {
	nameTok := p.expectID("expected an identifier")
	id := &ast.Id{StartPos: nameTok.Pos, Name: nameTok.Value}
	if p.check(lexer.TokenLParen) {
		return p.parseCallTail(id)
	}
	var result ast.Expr = id
	for p.check(lexer.TokenDot) {
		dotPos := p.current.Pos
		p.advance()
		fieldTok := p.expectID("expected a field name after '.'")
		result = &ast.DotAccess{
			StartPos: dotPos,
			Base:     result,
			Field:    &ast.Id{StartPos: fieldTok.Pos, Name: fieldTok.Value},
		}
	}
	return result
}

func (p *Parser) parseCallTail(fn *ast.Id) *ast.CallExpr {
	p.consume(lexer.TokenLParen, "expected '(' to start call arguments")
	var args []ast.Expr
	if !p.check(lexer.TokenRParen) {
		for {
			args = append(args, p.parseExpr())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRParen, "expected ')' after call arguments")
	return &ast.CallExpr{StartPos: fn.StartPos, Fn: fn, Args: args}
}

// parseExpr parses "exp := assignExp | binExp | term". Assignment sits
// outside the usual precedence ladder: its left side must already have
// parsed as a loc (an Id or DotAccess), never an arbitrary subexpression,
// so it's checked for after climbing through every other operator rather
// than climbed through itself.
func (p *Parser) parseExpr() ast.Expr {
	left := p.parseOr()
	if !p.check(lexer.TokenAssign) {
		return left
	}
	if !isLoc(left) {
		p.error(fmt.Sprintf("%s: left side of '=' must be a variable or field", left.Pos()))
		panic("invalid assignment target")
	}
	pos := p.current.Pos
	p.advance()
	rhs := p.parseExpr() // right-associative: x = y = 3
	return &ast.AssignExpr{StartPos: pos, LHS: left, RHS: rhs}
}

func isLoc(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Id, *ast.DotAccess:
		return true
	default:
		return false
	}
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.check(lexer.TokenOr) {
		pos := p.current.Pos
		p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpr{StartPos: pos, Op: ast.OpOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.check(lexer.TokenAnd) {
		pos := p.current.Pos
		p.advance()
		right := p.parseEquality()
		left = &ast.BinaryExpr{StartPos: pos, Op: ast.OpAnd, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.check(lexer.TokenEquals) || p.check(lexer.TokenNotEqual) {
		op := p.current
		p.advance()
		right := p.parseRelational()
		if op.Type == lexer.TokenEquals {
			left = &ast.EqualsExpr{StartPos: left.Pos(), Left: left, Right: right}
		} else {
			left = &ast.NotEqualsExpr{StartPos: op.Pos, Left: left, Right: right}
		}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for {
		var op ast.BinOp
		switch p.current.Type {
		case lexer.TokenLess:
			op = ast.OpLess
		case lexer.TokenLessEq:
			op = ast.OpLessEq
		case lexer.TokenGreater:
			op = ast.OpGreater
		case lexer.TokenGreaterEq:
			op = ast.OpGreaterEq
		default:
			return left
		}
		pos := p.current.Pos
		p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{StartPos: pos, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for {
		var op ast.BinOp
		switch p.current.Type {
		case lexer.TokenPlus:
			op = ast.OpPlus
		case lexer.TokenMinus:
			op = ast.OpMinus
		default:
			return left
		}
		pos := p.current.Pos
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{StartPos: pos, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for {
		var op ast.BinOp
		switch p.current.Type {
		case lexer.TokenTimes:
			op = ast.OpTimes
		case lexer.TokenDivide:
			op = ast.OpDivide
		default:
			return left
		}
		pos := p.current.Pos
		p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{StartPos: pos, Op: op, Left: left, Right: right}
	}
}

// parseUnary parses "'-' term | '!' term | term" - unary operators recurse
// on themselves (so "!!x" and "- -x" both parse; "--x" without a space
// lexes as the decrement token and is not a prefix negation), then fall
// through to a primary expression.
func (p *Parser) parseUnary() ast.Expr {
	switch p.current.Type {
	case lexer.TokenMinus:
		pos := p.current.Pos
		p.advance()
		return &ast.UnaryMinus{StartPos: pos, Operand: p.parseUnary()}
	case lexer.TokenNot:
		pos := p.current.Pos
		p.advance()
		return &ast.Not{StartPos: pos, Operand: p.parseUnary()}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.current
	switch tok.Type {
	case lexer.TokenLParen:
		p.advance()
		e := p.parseExpr()
		p.consume(lexer.TokenRParen, "expected ')' after expression")
		return e
	case lexer.TokenIntLit:
		p.advance()
		v, err := strconv.Atoi(tok.Value)
		if err != nil {
			p.error(fmt.Sprintf("%s: invalid integer literal %q", tok.Pos, tok.Value))
			v = 0
		}
		return &ast.IntLit{StartPos: tok.Pos, Value: v}
	case lexer.TokenStringLit:
		p.advance()
		return &ast.StringLit{StartPos: tok.Pos, Value: unquoteString(tok.Value)}
	case lexer.TokenTrue:
		p.advance()
		return &ast.TrueLit{StartPos: tok.Pos}
	case lexer.TokenFalse:
		p.advance()
		return &ast.FalseLit{StartPos: tok.Pos}
	case lexer.TokenID:
		return p.parseLocOrCall()
	default:
		p.error(fmt.Sprintf("expected an expression, got %s", tok.Type))
		panic("invalid expression")
	}
}

// unquoteString strips the surrounding quotes from a raw string-literal
// lexeme and resolves backslash escapes. The lexer hands back the lexeme
// verbatim (quotes included, escapes undecoded) since LIL'C strings are
// write-only and nothing before code generation needs the decoded form.
func unquoteString(lexeme string) string {
	if len(lexeme) < 2 {
		return ""
	}
	body := lexeme[1 : len(lexeme)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
			switch body[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(body[i])
			}
			continue
		}
		b.WriteByte(body[i])
	}
	return b.String()
}

// --- Token-stream helpers ---

func (p *Parser) advance() {
	p.previous = p.current
	tok, err := p.lex.NextToken()
	if err != nil {
		p.error(err.Error())
		p.current = lexer.Token{Type: lexer.TokenInvalid, Pos: tok.Pos}
		return
	}
	p.current = tok
}

func (p *Parser) check(tt lexer.TokenType) bool { return p.current.Type == tt }

func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(tt lexer.TokenType, msg string) {
	if p.check(tt) {
		p.advance()
		return
	}
	p.error(msg + ", got " + p.current.Type.String())
	panic(msg)
}

func (p *Parser) expectID(msg string) lexer.Token {
	if !p.check(lexer.TokenID) {
		p.error(msg + ", got " + p.current.Type.String())
		panic(msg)
	}
	tok := p.current
	p.advance()
	return tok
}

func (p *Parser) isAtEnd() bool { return p.current.Type == lexer.TokenEOF }

func (p *Parser) error(msg string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.errors = append(p.errors, fmt.Errorf("%s ***ERROR*** %s", p.current.Pos.String(), msg))
}

// synchronize discards tokens until the next statement/declaration
// boundary, so one malformed construct doesn't cascade into spurious
// errors for everything that follows it in the same block. It always
// skips the token the error was reported at, so a caller that retries
// parsing after it makes progress.
func (p *Parser) synchronize() {
	p.panicMode = false
	p.advance()
	for !p.isAtEnd() {
		if p.previous.Type == lexer.TokenSemi || p.previous.Type == lexer.TokenRBrace {
			return
		}
		switch p.current.Type {
		case lexer.TokenInt, lexer.TokenBool, lexer.TokenVoid, lexer.TokenStruct,
			lexer.TokenIf, lexer.TokenWhile, lexer.TokenReturn,
			lexer.TokenInput, lexer.TokenOutput:
			return
		}
		p.advance()
	}
}
