// Package types implements the Decaf type lattice described in spec.md §3:
// built-in singletons, user class types, class-literal types, and the
// subtype relation between them.
package types

import "fmt"

// Type is the interface every Decaf type value implements.
type Type interface {
	String() string
	typeNode()
}

// Basic is a built-in singleton type. Values are interned at module load
// (see the Int/Float/... vars below) so identity comparison via == is
// always sound for basic types.
type Basic struct {
	name string
}

func (b *Basic) String() string { return b.name }
func (b *Basic) typeNode()      {}

// Interned basic-type singletons.
var (
	Int     = &Basic{name: "int"}
	Float   = &Basic{name: "float"}
	Boolean = &Basic{name: "boolean"}
	String  = &Basic{name: "string"}
	Void    = &Basic{name: "void"}
	Null    = &Basic{name: "null"}
	Error   = &Basic{name: "error"}
)

// User is the type of an instance of a named class: `User(name)`.
type User struct {
	Name string
}

func (u *User) String() string { return u.Name }
func (u *User) typeNode()      {}

// ClassLit is the type of a name that denotes the class itself, used for
// static-field and static-method access: `ClassLit(name)`.
type ClassLit struct {
	Name string
}

func (c *ClassLit) String() string { return fmt.Sprintf("class %s", c.Name) }
func (c *ClassLit) typeNode()      {}

// NewUser interns nothing (user types are per-class-name, not singletons)
// but is provided for symmetry with NewClassLit.
func NewUser(name string) *User { return &User{Name: name} }

// NewClassLit constructs a class-literal type for name.
func NewClassLit(name string) *ClassLit { return &ClassLit{Name: name} }

// AncestorChain reports, given a class name, the chain of class names from
// that class up to (and including) the root, using parentOf to ascend.
// It is the shared walk both IsSubtype and the dependency tree's
// resolution helpers are built from.
func AncestorChain(name string, parentOf func(string) (string, bool)) []string {
	chain := []string{name}
	cur := name
	for {
		parent, ok := parentOf(cur)
		if !ok {
			break
		}
		chain = append(chain, parent)
		cur = parent
	}
	return chain
}

func contains(chain []string, name string) bool {
	for _, c := range chain {
		if c == name {
			return true
		}
	}
	return false
}

// IsSubtype implements the relation of spec.md §3:
//
//	reflexive; int <: float; null <: User(*); User(A) <: User(B) iff B is
//	reachable from A by ascending parents; ClassLit(A) <: ClassLit(B) under
//	the same chain. error is never a subtype of anything, and nothing is a
//	subtype of error (poison).
//
// parentOf reports the immediate super-class name of a class, or ok=false
// for the synthetic root.
func IsSubtype(a, b Type, parentOf func(string) (string, bool)) bool {
	if a == Error || b == Error {
		return false
	}
	if a == b {
		return true
	}
	if a == Int && b == Float {
		return true
	}
	if a == Null {
		if _, ok := b.(*User); ok {
			return true
		}
		return false
	}
	switch av := a.(type) {
	case *User:
		bv, ok := b.(*User)
		if !ok {
			return false
		}
		return contains(AncestorChain(av.Name, parentOf), bv.Name)
	case *ClassLit:
		bv, ok := b.(*ClassLit)
		if !ok {
			return false
		}
		return contains(AncestorChain(av.Name, parentOf), bv.Name)
	}
	return false
}

// IsNumeric reports whether t is int or float.
func IsNumeric(t Type) bool { return t == Int || t == Float }

// Resolve maps a raw type keyword or class-name identifier, as written in
// source, to a Type. Built-ins resolve to their interned singleton; any
// other name becomes a User type whose existence the analyzer checks
// against the dependency tree (spec.md §4.3). Both the parser (for
// variable declarations, which must know a variable's type as soon as it
// enters scope) and the analyzer (for field/param/return types) resolve
// through this one function so the mapping never drifts between the two.
func Resolve(name string) Type {
	switch name {
	case "int":
		return Int
	case "float":
		return Float
	case "boolean":
		return Boolean
	case "string":
		return String
	case "void":
		return Void
	default:
		return NewUser(name)
	}
}
