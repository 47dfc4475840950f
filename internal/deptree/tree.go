package deptree

import "github.com/yangfawu/decaf-compiler/internal/types"

// Tree is spec.md's DependencyTree: a name→node map plus a synthetic root
// whose children are classes without `extends`. It is constructed empty
// before type-checking and mutated only by RegisterClass; all other
// methods are read-only.
type Tree struct {
	nodes map[string]*ClassRecord
}

// New constructs an empty dependency tree, already seeded with the
// synthetic root class (no fields, no methods, no super).
func New() *Tree {
	t := &Tree{nodes: make(map[string]*ClassRecord)}
	t.nodes[RootClassName] = newClassRecord(RootClassName, "")
	return t
}

// Lookup returns the registered class record for name, if any.
func (t *Tree) Lookup(name string) (*ClassRecord, bool) {
	c, ok := t.nodes[name]
	return c, ok
}

// RegisterClass links a new class node under its parent (or the synthetic
// root if it declares no super). It fails if the name is already
// registered, or if `extends X` names a class that is not yet registered
// (spec.md §4.2).
func (t *Tree) RegisterClass(name, super string) (*ClassRecord, bool) {
	if _, exists := t.nodes[name]; exists {
		return nil, false
	}
	parent := super
	if parent == "" {
		parent = RootClassName
	} else if _, ok := t.nodes[parent]; !ok {
		return nil, false
	}
	rec := newClassRecord(name, parent)
	t.nodes[name] = rec
	return rec, true
}

// parentOf adapts the tree to types.IsSubtype / types.AncestorChain's
// ascend-by-name contract.
func (t *Tree) parentOf(name string) (string, bool) {
	c, ok := t.nodes[name]
	if !ok || c.Super == "" {
		return "", false
	}
	return c.Super, true
}

// IsSubtype implements spec.md §3's subtype relation over this tree's
// inheritance chains.
func (t *Tree) IsSubtype(a, b types.Type) bool {
	return types.IsSubtype(a, b, t.parentOf)
}

// AncestorChain returns the class names from name up to (and including)
// the synthetic root.
func (t *Tree) AncestorChain(name string) []string {
	return types.AncestorChain(name, t.parentOf)
}

// ResolveField walks ascending from class, returning the first entry whose
// key matches "<kind>:name" (spec.md §4.2, §8 property 4: resolution
// shadowing returns the closest ancestor's declaration).
func (t *Tree) ResolveField(className, fieldName string, static bool) (*FieldRecord, bool) {
	key := fieldKey(fieldName, static)
	for _, name := range t.AncestorChain(className) {
		c, ok := t.nodes[name]
		if !ok {
			continue
		}
		if f, ok := c.fieldByKey[key]; ok {
			return f, true
		}
	}
	return nil, false
}

// ResolveMethod is ResolveField's counterpart for methods.
func (t *Tree) ResolveMethod(className, methodName string, static bool) (*MethodRecord, bool) {
	key := methodKey(methodName, static)
	for _, name := range t.AncestorChain(className) {
		c, ok := t.nodes[name]
		if !ok {
			continue
		}
		if m, ok := c.methodByKey[key]; ok {
			return m, true
		}
	}
	return nil, false
}

func fieldKey(name string, static bool) string {
	if static {
		return "static:" + name
	}
	return "instance:" + name
}

func methodKey(name string, static bool) string {
	return fieldKey(name, static)
}

// AllClasses returns every registered class except the synthetic root, in
// no particular order; used by the layout pass's caller to iterate classes
// it registered (the layout pass itself walks the caller-supplied order,
// spec.md §4.4).
func (t *Tree) AllClasses() []*ClassRecord {
	out := make([]*ClassRecord, 0, len(t.nodes))
	for name, c := range t.nodes {
		if name == RootClassName {
			continue
		}
		out = append(out, c)
	}
	return out
}
