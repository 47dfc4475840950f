package parser

import (
	"testing"

	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/diagnostics"
	"github.com/yangfawu/decaf-compiler/internal/lexer"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, errs := ParseProgram(lexer.All(source))
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return prog
}

func hasCode(errs []*diagnostics.DiagnosticError, code diagnostics.Code) bool {
	for _, e := range errs {
		if e.Code == code {
			return true
		}
	}
	return false
}

func TestParseBareIdentifierBoundToFormalResolvesToVar(t *testing.T) {
	prog := mustParse(t, `
class A {
    public A() {}
    public int f(int x) { return x; }
}
`)
	ret := prog.Classes[0].Methods[0].Body.Statements[0].(*ast.ReturnStatement)
	if _, ok := ret.Value.(*ast.VarExpr); !ok {
		t.Errorf("a bare identifier bound to a formal should parse as a VarExpr, got %T", ret.Value)
	}
}

func TestParseBareIdentifierWithNoBindingResolvesToClassRef(t *testing.T) {
	prog := mustParse(t, `
class A {
    public A() {}
    public int f() { return Widget.count; }
}
`)
	ret := prog.Classes[0].Methods[0].Body.Statements[0].(*ast.ReturnStatement)
	access, ok := ret.Value.(*ast.FieldAccessExpr)
	if !ok {
		t.Fatalf("Widget.count should parse as a field access, got %T", ret.Value)
	}
	if _, ok := access.Base.(*ast.ClassReferenceExpr); !ok {
		t.Errorf("an unbound bare identifier used as a base should parse as a ClassReferenceExpr, got %T", access.Base)
	}
}

func TestParseFormalShadowedByLocalIsDuplicate(t *testing.T) {
	_, errs := ParseProgram(lexer.All(`
class A {
    public A() {}
    public int f(int x) {
        int x;
        return x;
    }
}
`))
	if !hasCode(errs, diagnostics.ErrD006) {
		t.Errorf("redeclaring a formal as a local in the method's top-level block should report D006, got %v", errs)
	}
}

func TestParseLocalShadowedInNestedBlockIsAllowed(t *testing.T) {
	_, errs := ParseProgram(lexer.All(`
class A {
    public A() {}
    public int f(int x) {
        if (true) {
            int x;
        }
        return x;
    }
}
`))
	if len(errs) != 0 {
		t.Errorf("shadowing a formal inside a nested block should be legal, got %v", errs)
	}
}

func TestParseDuplicateFormalParameter(t *testing.T) {
	_, errs := ParseProgram(lexer.All(`
class A {
    public A() {}
    public int f(int x, int x) { return x; }
}
`))
	if !hasCode(errs, diagnostics.ErrD005) {
		t.Errorf("expected D005 for a duplicate formal parameter, got %v", errs)
	}
}

func TestParseSecondConstructorReportsD007AndKeepsFirst(t *testing.T) {
	prog, errs := ParseProgram(lexer.All(`
class A {
    public A() {}
    private A(int x) {}
}
`))
	if !hasCode(errs, diagnostics.ErrD007) {
		t.Errorf("expected D007 for a second constructor, got %v", errs)
	}
	ctor := prog.Classes[0].Constructor
	if ctor == nil || len(ctor.Params) != 0 {
		t.Errorf("the first constructor should be kept, got %+v", ctor)
	}
}

func TestParseBareSemicolonIsSkipStatement(t *testing.T) {
	prog := mustParse(t, `
class A {
    public A() {}
    public void f() { ; }
}
`)
	body := prog.Classes[0].Methods[0].Body
	if len(body.Statements) != 1 {
		t.Fatalf("expected exactly one statement, got %d", len(body.Statements))
	}
	if _, ok := body.Statements[0].(*ast.SkipStatement); !ok {
		t.Errorf("a bare ';' should parse as a SkipStatement, got %T", body.Statements[0])
	}
}

func TestParseClassWithNoExtendsDefaultsSuperEmpty(t *testing.T) {
	prog := mustParse(t, `class A { public A() {} }`)
	if prog.Classes[0].Super != "" {
		t.Errorf("a class with no explicit extends should leave Super empty for the analyzer to default, got %q", prog.Classes[0].Super)
	}
}

func TestParseModifiersDefaultToPrivateNonStatic(t *testing.T) {
	prog := mustParse(t, `
class A {
    int x;
    public A() {}
}
`)
	f := prog.Classes[0].Fields[0]
	if f.Modifiers.Visibility != ast.Private || f.Modifiers.IsStatic {
		t.Errorf("a field with no modifiers should default to private, non-static, got %+v", f.Modifiers)
	}
}
