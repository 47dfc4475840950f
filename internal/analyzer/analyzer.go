// Package analyzer implements the type-checking pass described in
// spec.md §4.3: it registers every class into a dependency tree, builds
// the field/method/constructor records that hang off it, verifies that
// every declared type names a real class, and then recursively
// type-checks every constructor and method body. Name resolution for
// bare identifiers already happened in the parser, against the lexical
// scope stack (spec.md §4.1); this pass resolves everything that needs
// the class hierarchy instead: fields, methods, constructors, and
// super/this.
package analyzer

import (
	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/deptree"
	"github.com/yangfawu/decaf-compiler/internal/diagnostics"
	"github.com/yangfawu/decaf-compiler/internal/types"
)

// Analyzer runs the registration and type-checking pass over a Program.
type Analyzer struct {
	tree     *deptree.Tree
	counters *deptree.Counters
	errs     []*diagnostics.DiagnosticError
}

// New constructs an Analyzer over an (already-constructed, possibly
// freshly-seeded) dependency tree and id counters.
func New(tree *deptree.Tree, counters *deptree.Counters) *Analyzer {
	return &Analyzer{tree: tree, counters: counters}
}

// Tree exposes the dependency tree so later passes (layout, codegen) can
// share it without re-registering classes.
func (a *Analyzer) Tree() *deptree.Tree { return a.tree }

// ctx threads the information a nested expression/statement check needs
// about the member it lives in.
type ctx struct {
	containingClass string
	isStatic        bool
	isConstructor   bool
	returnType      types.Type // types.Void for a void method; unused for constructors
}

// Analyze registers every class in prog in declaration order and
// type-checks every body. It returns every diagnostic collected; an
// empty slice means the program is well-typed.
func (a *Analyzer) Analyze(prog *ast.Program) []*diagnostics.DiagnosticError {
	a.errs = nil
	for _, class := range prog.Classes {
		a.registerClass(class)
	}
	for _, class := range prog.Classes {
		a.checkClassBodies(class)
	}
	return a.errs
}

func (a *Analyzer) err(code diagnostics.Code, tok ast.Node, format string, args ...interface{}) {
	a.errs = append(a.errs, diagnostics.Newf(code, tok.GetToken(), format, args...))
}

// registerClass links class into the dependency tree and builds its
// field/method/constructor records, per spec.md §4.2/§4.3's "for each
// class in declaration order: register it; verify every declared type".
func (a *Analyzer) registerClass(class *ast.ClassDecl) {
	rec, ok := a.tree.RegisterClass(class.Name, class.Super)
	if !ok {
		switch {
		case class.Super == class.Name:
			a.err(diagnostics.ErrD002, class, "class %s cannot extend itself", class.Name)
		case func() bool { _, exists := a.tree.Lookup(class.Name); return exists }():
			a.err(diagnostics.ErrD001, class, "class %s is already declared", class.Name)
		default:
			a.err(diagnostics.ErrD003, class, "class %s extends unknown class %s", class.Name, class.Super)
		}
		return
	}

	for _, f := range class.Fields {
		a.registerField(rec, class, f)
	}
	for _, m := range class.Methods {
		a.registerMethod(rec, class, m)
	}
	if class.Constructor != nil {
		a.registerConstructor(rec, class, class.Constructor)
	}
}

func (a *Analyzer) checkDeclaredType(t types.Type, tok ast.Node) types.Type {
	u, ok := t.(*types.User)
	if !ok {
		return t
	}
	if _, exists := a.tree.Lookup(u.Name); !exists {
		a.err(diagnostics.ErrT001, tok, "unknown class %s", u.Name)
		return types.Error
	}
	return t
}

func (a *Analyzer) applicability(isStatic bool) ast.Applicability {
	if isStatic {
		return ast.Static
	}
	return ast.Instance
}

func (a *Analyzer) registerField(rec *deptree.ClassRecord, class *ast.ClassDecl, f *ast.FieldDecl) {
	declared := types.Resolve(f.Type.Name)
	checked := a.checkDeclaredType(declared, f)
	fr := &deptree.FieldRecord{
		ID:              a.counters.NextFieldID(),
		Visibility:      f.Modifiers.Visibility,
		Applicability:   a.applicability(f.Modifiers.IsStatic),
		Type:            checked,
		Name:            f.Name,
		ContainingClass: class.Name,
		Offset:          -1,
	}
	if !rec.AddField(fr) {
		a.err(diagnostics.ErrD004, f, "class %s already declares a member named %s", class.Name, f.Name)
	}
}

func (a *Analyzer) resolveParams(params []*ast.Param) []deptree.Param {
	out := make([]deptree.Param, 0, len(params))
	for _, p := range params {
		t := a.checkDeclaredType(types.Resolve(p.Type.Name), p)
		out = append(out, deptree.Param{Name: p.Name, Type: t})
	}
	return out
}

func (a *Analyzer) registerMethod(rec *deptree.ClassRecord, class *ast.ClassDecl, m *ast.MethodDecl) {
	var retType types.Type = types.Void
	if m.ReturnType != nil {
		retType = a.checkDeclaredType(types.Resolve(m.ReturnType.Name), m)
	}
	mr := &deptree.MethodRecord{
		ID:              a.counters.NextMethodID(),
		Visibility:      m.Modifiers.Visibility,
		Applicability:   a.applicability(m.Modifiers.IsStatic),
		Name:            m.Name,
		Params:          a.resolveParams(m.Params),
		ReturnType:      retType,
		ContainingClass: class.Name,
		Body:            m.Body,
		VariableTable:   m.VarTable,
	}
	if !rec.AddMethod(mr) {
		a.err(diagnostics.ErrD004, m, "class %s already declares a member named %s", class.Name, m.Name)
	}
}

func (a *Analyzer) registerConstructor(rec *deptree.ClassRecord, class *ast.ClassDecl, c *ast.ConstructorDecl) {
	cr := &deptree.ConstructorRecord{
		ID:              a.counters.NextConstructorID(),
		Visibility:      c.Modifiers.Visibility,
		ContainingClass: class.Name,
		Params:          a.resolveParams(c.Params),
		Body:            c.Body,
		VariableTable:   c.VarTable,
	}
	// A second constructor was already flagged as ErrD007 by the parser
	// (which keeps only the first one on class.Constructor), so this call
	// cannot fail in practice; SetConstructor's bool return exists for the
	// record type's own invariant, not for us to re-check here.
	rec.SetConstructor(cr)
}

func (a *Analyzer) checkClassBodies(class *ast.ClassDecl) {
	rec, ok := a.tree.Lookup(class.Name)
	if !ok {
		return // registration already failed and was reported
	}
	for _, m := range rec.Methods {
		c := &ctx{
			containingClass: class.Name,
			isStatic:        m.Applicability == ast.Static,
			returnType:      m.ReturnType,
		}
		a.checkStmt(m.Body, c)
	}
	if rec.Constructor != nil {
		c := &ctx{
			containingClass: class.Name,
			isStatic:        false,
			isConstructor:   true,
		}
		a.checkStmt(rec.Constructor.Body, c)
	}
}
