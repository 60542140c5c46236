// Package scope implements Kush's nested lexical scopes and symbol
// tables (component F), grounded on original_source/include/kush/scope.h's
// parent-chained lookup model.
package scope

import "github.com/kush-lang/kushc/compiler/ast"

// Kind identifies what introduced a Scope. EnclosingFunction and
// EnclosingLoop search the parent chain by it; the analyzer itself
// does not read it.
type Kind int

const (
	ModuleScope Kind = iota
	FunctionScope
	BlockScope
	LoopScope
)

// Modifier is a bitset describing how a Symbol was declared.
type Modifier int

const (
	ModifierNone     Modifier = 0
	ModifierConstant Modifier = 1 << iota
	ModifierVariable
	ModifierExternal
	// ModifierPrivate is reserved for a future visibility model; Kush's
	// grammar has no visibility keywords, so nothing ever sets it.
	ModifierPrivate
)

// Symbol is one declared name: a variable, parameter, function,
// structure, or import alias.
type Symbol struct {
	Name         string
	Discriminator string // "variable" | "constant" | "function" | "structure" | "parameter" | "label"
	Ticket       int     // declaration order within its Scope, for stable iteration
	Modifiers    Modifier
	Decl         ast.Node
}

// Scope is one lexical nesting level. Parent is the only edge name
// resolution walks; Children is filled in by New and is not read
// anywhere else (imported aliases are declared in the root scope
// through Declare).
type Scope struct {
	Name     string
	Kind     Kind
	Parent   *Scope
	Children []*Scope
	symbols  map[string]*Symbol
	nextTicket int
	Owner    *Symbol // the function/structure Symbol this scope belongs to, if any
}

// New creates a scope nested under parent (nil for the module's root
// scope).
func New(name string, kind Kind, parent *Scope) *Scope {
	s := &Scope{Name: name, Kind: kind, Parent: parent, symbols: make(map[string]*Symbol)}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Declare adds a new Symbol to this scope, assigning it the next
// ticket. The caller must have already checked for redeclaration via
// LookupLocal (one case per collision kind, since spec §7 wants a specific
// error code per pair of declaration kinds colliding).
func (s *Scope) Declare(name, discriminator string, modifiers Modifier, decl ast.Node) *Symbol {
	sym := &Symbol{
		Name:          name,
		Discriminator: discriminator,
		Ticket:        s.nextTicket,
		Modifiers:     modifiers,
		Decl:          decl,
	}
	s.nextTicket++
	s.symbols[name] = sym
	return sym
}

// LookupLocal returns the Symbol named name declared directly in this
// scope, without walking Parent.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Lookup walks the parent chain starting at s, returning the nearest
// Symbol named name.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Symbols returns every Symbol declared directly in this scope,
// ordered by declaration Ticket.
func (s *Scope) Symbols() []*Symbol {
	out := make([]*Symbol, s.nextTicket)
	count := 0
	for _, sym := range s.symbols {
		out[sym.Ticket] = sym
		count++
	}
	return out[:count]
}

// EnclosingFunction walks up from s to find the nearest FunctionScope.
// The analyzer does not call it and does not check a `return` value
// against the declared return type.
func (s *Scope) EnclosingFunction() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind == FunctionScope {
			return cur
		}
	}
	return nil
}

// EnclosingLoop walks up from s to find the nearest LoopScope. The
// analyzer does not call it and does not check `break` placement.
func (s *Scope) EnclosingLoop() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind == LoopScope {
			return cur
		}
	}
	return nil
}

// VisibleNames returns every name resolvable from s, walking the parent
// chain. Used by the analyzer to offer a "did you mean" suggestion
// alongside UndeclaredIdentifier.
func (s *Scope) VisibleNames() []string {
	var names []string
	for cur := s; cur != nil; cur = cur.Parent {
		for name := range cur.symbols {
			names = append(names, name)
		}
	}
	return names
}
