package symtab

// scope is a single level of the Stack: a flat name -> Symbol map. It has
// no parent pointer - the Stack itself is the chain of scopes, walked
// front-to-back on lookup.
type scope struct {
	symbols map[string]Symbol
}

func newScope() *scope {
	return &scope{symbols: make(map[string]Symbol)}
}

func (s *scope) find(name string) (Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Stack is LIL'C's symbol table: a LIFO stack of scopes implementing
// lexical scoping. EnterScope pushes a new, empty scope; ExitScope pops the
// innermost one. Lookup walks from the innermost scope outward, so an inner
// declaration shadows an outer one of the same name.
//
// DESIGN CHOICE: a stack of flat maps, not a tree of scopes with parent
// pointers. LIL'C has no closures and no nested function declarations
// (Non-goal), so a scope never needs to be revisited once its block exits;
// a stack is both the simplest representation and the one the analysis
// passes are written against (every "enterScope ... exitScope" pair in
// name analysis is a push/pop, never a tree traversal).
type Stack struct {
	scopes []*scope // scopes[0] is the innermost (current) scope
}

// NewStack returns an empty symbol table with no scopes pushed. Callers
// must EnterScope before adding or looking up any symbol; name analysis
// always pushes the program's outermost scope as its first action.
func NewStack() *Stack {
	return &Stack{}
}

// EnterScope pushes a new, empty scope, which becomes the current scope.
func (s *Stack) EnterScope() {
	s.scopes = append([]*scope{newScope()}, s.scopes...)
}

// ExitScope pops the current scope. Calling it with no scope pushed is a
// programming error in the caller (an unbalanced enter/exit pair), not a
// user-facing condition, so it panics rather than returning an error.
func (s *Stack) ExitScope() {
	if len(s.scopes) == 0 {
		panic("symtab: ExitScope called with no scope on the stack")
	}
	s.scopes = s.scopes[1:]
}

// currentScope returns the innermost scope. Panics if called with no scope
// pushed, for the same reason ExitScope does.
func (s *Stack) currentScope() *scope {
	if len(s.scopes) == 0 {
		panic("symtab: no scope on the stack")
	}
	return s.scopes[0]
}

// Collides reports whether name is already declared in the CURRENT scope
// only. Shadowing a name from an outer scope is allowed; redeclaring a name
// within the same scope is not, and this is the check name analysis uses to
// report Err.multiDecl before constructing a new symbol.
func (s *Stack) Collides(name string) bool {
	_, ok := s.currentScope().find(name)
	return ok
}

// Add inserts sym into the current scope under name. It returns false
// without modifying the table if name already collides in the current
// scope - callers that have already checked Collides use this only as a
// final safety net, matching SymbolTable::add in the source this table is
// modeled on.
func (s *Stack) Add(name string, sym Symbol) bool {
	if s.Collides(name) {
		return false
	}
	s.currentScope().symbols[name] = sym
	return true
}

// AddEnclosing inserts sym under name into the scope just outside the
// current one, leaving the current scope untouched. This is for FnDecl:
// the function name belongs to the scope it was declared in, not the body
// scope that holds its formals, but by the time name analysis is ready to
// add it, EnterScope has already pushed the body scope to receive them.
// Mirrors the source this is modeled on, which saves a pointer to the
// outer ScopeTable before entering the body scope and adds the function
// symbol through that pointer while the body scope stays current. Returns
// false without modifying the table if name already collides in that
// enclosing scope, or if there is no enclosing scope to add to.
func (s *Stack) AddEnclosing(name string, sym Symbol) bool {
	if len(s.scopes) < 2 {
		return false
	}
	enclosing := s.scopes[1]
	if _, ok := enclosing.find(name); ok {
		return false
	}
	enclosing.symbols[name] = sym
	return true
}

// Lookup searches the current scope and every enclosing scope, innermost
// first, and returns the first match. This is the lexical-scoping lookup
// used to resolve every identifier reference.
func (s *Stack) Lookup(name string) (Symbol, bool) {
	for _, sc := range s.scopes {
		if sym, ok := sc.find(name); ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupTypeDefn resolves a syntactic type string to the StructSymbol it
// names, for use when constructing a VarSymbol. A primitive type string
// (int/bool/void/string) resolves to (nil, true): it's a valid type with no
// composite definition, which is not an error. A type string that isn't
// primitive and isn't a declared struct resolves to (nil, false); the
// caller reports Err.undefType in that case.
func (s *Stack) LookupTypeDefn(typeStr string) (*StructSymbol, bool) {
	switch typeStr {
	case "bool", "int", "void", "string":
		return nil, true
	}
	sym, ok := s.Lookup(typeStr)
	if !ok {
		return nil, false
	}
	structSym, ok := sym.(*StructSymbol)
	if !ok {
		return nil, false
	}
	return structSym, true
}
