// Package deptree implements the process-wide (per injected Counters,
// spec.md §9) inheritance forest used for subtype queries and
// field/method resolution, plus the class/member record types it indexes.
package deptree

import (
	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/scope"
	"github.com/yangfawu/decaf-compiler/internal/types"
)

// RootClassName is the synthetic root every class without an explicit
// `extends` hangs off of (original_source/src/decaf_ast.py's `Object`).
const RootClassName = "Object"

// Counters are the process-wide, per-kind monotonic id generators for
// fields, methods, and constructors (spec.md §3). Per DESIGN NOTES §9 they
// are injected rather than held in package globals, so one Go process can
// run independent compilations (e.g. the rpc server handling concurrent
// requests) without one compile's ids leaking into another's.
type Counters struct {
	nextField       int
	nextMethod      int
	nextConstructor int
}

// NewCounters returns a fresh, zeroed set of id counters.
func NewCounters() *Counters { return &Counters{} }

// NextFieldID, NextMethodID, and NextConstructorID hand out the next
// monotonic id in their respective kind, for the analyzer to stamp onto a
// new FieldRecord/MethodRecord/ConstructorRecord as it registers classes.
func (c *Counters) NextFieldID() int {
	c.nextField++
	return c.nextField
}

func (c *Counters) NextMethodID() int {
	c.nextMethod++
	return c.nextMethod
}

func (c *Counters) NextConstructorID() int {
	c.nextConstructor++
	return c.nextConstructor
}

// Param is a resolved formal parameter: a name paired with its checked type.
type Param struct {
	Name string
	Type types.Type
}

// FieldRecord is spec.md's FieldRecord.
type FieldRecord struct {
	ID              int
	Visibility      ast.Visibility
	Applicability   ast.Applicability
	Type            types.Type
	Name            string
	ContainingClass string

	// Offset is filled in by the layout pass (spec.md §4.4): the static
	// slot offset for a static field, or the instance offset for an
	// instance field. -1 until assigned.
	Offset int
}

// MethodRecord is spec.md's MethodRecord.
type MethodRecord struct {
	ID              int
	Visibility      ast.Visibility
	Applicability   ast.Applicability
	Name            string
	Params          []Param
	ReturnType      types.Type // types.Void for a void method
	ContainingClass string

	Body          *ast.BlockStatement
	VariableTable *scope.Table
}

// ConstructorRecord is spec.md's ConstructorRecord: same shape as a
// MethodRecord but with no return type and implicitly-instance
// applicability (spec.md §3).
type ConstructorRecord struct {
	ID              int
	Visibility      ast.Visibility
	ContainingClass string

	Params        []Param
	Body          *ast.BlockStatement
	VariableTable *scope.Table
}

func memberKey(app ast.Applicability, name string) string {
	if app == ast.Static {
		return "static:" + name
	}
	return "instance:" + name
}

// ClassRecord is spec.md's ClassRecord.
type ClassRecord struct {
	Name        string
	Super       string // RootClassName for a class with no `extends`; "" only for the synthetic root itself
	Constructor *ConstructorRecord
	Methods     []*MethodRecord
	Fields      []*FieldRecord

	// Size is the class's total instance slot count, set exactly once by
	// the layout pass (spec.md §3 invariant).
	Size       int
	sizeIsSet  bool
	fieldByKey map[string]*FieldRecord
	methodByKey map[string]*MethodRecord
}

func newClassRecord(name, super string) *ClassRecord {
	return &ClassRecord{
		Name:        name,
		Super:       super,
		fieldByKey:  make(map[string]*FieldRecord),
		methodByKey: make(map[string]*MethodRecord),
	}
}

// SetSize assigns the class's size exactly once; a second call panics,
// enforcing the invariant from spec.md §3 / original_source's
// `assert self.size is None`.
func (c *ClassRecord) SetSize(size int) {
	if c.sizeIsSet {
		panic("deptree: class " + c.Name + " size set more than once")
	}
	c.Size = size
	c.sizeIsSet = true
}

// SizeIsSet reports whether the layout pass has already visited this class.
func (c *ClassRecord) SizeIsSet() bool { return c.sizeIsSet }

// AddField registers a field under this class. It fails if the key
// (applicability:name) is already taken, enforcing "distinct field keys
// within a class" (spec.md §3).
func (c *ClassRecord) AddField(f *FieldRecord) bool {
	key := memberKey(f.Applicability, f.Name)
	if _, exists := c.fieldByKey[key]; exists {
		return false
	}
	c.fieldByKey[key] = f
	c.Fields = append(c.Fields, f)
	return true
}

// AddMethod registers a method under this class. It fails if the key is
// already taken, enforcing "distinct method keys within a class (no
// overloading)" (spec.md §3).
func (c *ClassRecord) AddMethod(m *MethodRecord) bool {
	key := memberKey(m.Applicability, m.Name)
	if _, exists := c.methodByKey[key]; exists {
		return false
	}
	c.methodByKey[key] = m
	c.Methods = append(c.Methods, m)
	return true
}

// SetConstructor registers the class's sole constructor. It fails if one
// is already set, enforcing "at most one constructor" (spec.md §3).
func (c *ClassRecord) SetConstructor(ctor *ConstructorRecord) bool {
	if c.Constructor != nil {
		return false
	}
	c.Constructor = ctor
	return true
}
