// Package scope implements the lexical scope stack described in spec.md
// §4.1: a spine of scopes sharing a per-member variable table, used to
// assign sequential variable ids and to detect duplicate declarations
// while the AST is being built.
package scope

import "github.com/yangfawu/decaf-compiler/internal/types"

// Kind distinguishes a formal parameter from a local variable.
type Kind int

const (
	Formal Kind = iota
	Local
)

// Variable is spec.md's VariableRecord: name, kind, type, a member-scoped
// 1-based id, and a transient value-register slot the code generator fills
// in on first use.
type Variable struct {
	Name     string
	Kind     Kind
	Type     types.Type
	ID       int
	ValueReg string // "" until the code generator allocates a register
}

// Table is the ordered per-member list of every formal and local,
// referenced by spec.md as the "variable table".
type Table struct {
	Vars []*Variable
}

func (t *Table) append(v *Variable) {
	t.Vars = append(t.Vars, v)
}

// Scope is one frame of the lexical scope stack.
type Scope struct {
	parent          *Scope
	symbols         map[string]*Variable
	table           *Table // shared across every scope within one member
	containingClass string
	blockChild      bool
}

// NewClassScope starts a fresh spine for a class body. It holds no
// variables of its own and is marked block_child so that method bodies
// nested under it cannot see past it into some other class's names
// (spec.md §4.1).
func NewClassScope(containingClass string) *Scope {
	return &Scope{
		symbols:         make(map[string]*Variable),
		table:           &Table{},
		containingClass: containingClass,
		blockChild:      true,
	}
}

// NewMemberScope starts a fresh variable table for a method or
// constructor body, rooted at the owning class's scope.
func NewMemberScope(classScope *Scope) *Scope {
	return &Scope{
		parent:          classScope,
		symbols:         make(map[string]*Variable),
		table:           &Table{},
		containingClass: classScope.containingClass,
	}
}

// Child opens a nested scope. When shareTable is true the child reuses
// this scope's symbol table, used so a method's formal-parameter scope
// and its top-level block body share names, making a redeclaration of a
// formal as a local a duplicate (spec.md §4.1's share_table_with_child).
// The per-member variable table is always inherited, since variable ids
// are numbered across the whole member regardless of nesting.
func (s *Scope) Child(shareTable bool) *Scope {
	symbols := s.symbols
	if !shareTable {
		symbols = make(map[string]*Variable)
	}
	return &Scope{
		parent:          s,
		symbols:         symbols,
		table:           s.table,
		containingClass: s.containingClass,
	}
}

// ContainingClass returns the class name this scope was rooted under.
func (s *Scope) ContainingClass() string { return s.containingClass }

// VariableTable returns the shared per-member variable table.
func (s *Scope) VariableTable() *Table { return s.table }

// Add registers name in the current scope's symbol table. It fails
// (ok=false) if name already exists in that table; otherwise it assigns a
// 1-based id equal to one plus the current size of the owning member's
// variable table, appends the variable to that table, and returns it.
func (s *Scope) Add(name string, kind Kind, t types.Type) (v *Variable, ok bool) {
	if _, exists := s.symbols[name]; exists {
		return nil, false
	}
	v = &Variable{
		Name: name,
		Kind: kind,
		Type: t,
		ID:   len(s.table.Vars) + 1,
	}
	s.symbols[name] = v
	s.table.append(v)
	return v, true
}

// Lookup walks this scope and its ancestors, stopping after checking a
// scope marked block_child, until it finds name or runs out of scopes
// (spec.md §4.1).
func (s *Scope) Lookup(name string) (*Variable, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.symbols[name]; ok {
			return v, true
		}
		if cur.blockChild {
			break
		}
	}
	return nil, false
}
