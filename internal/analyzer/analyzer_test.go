package analyzer

import (
	"testing"

	"github.com/yangfawu/decaf-compiler/internal/deptree"
	"github.com/yangfawu/decaf-compiler/internal/diagnostics"
	"github.com/yangfawu/decaf-compiler/internal/lexer"
	"github.com/yangfawu/decaf-compiler/internal/parser"
)

// analyze lexes, parses, and type-checks source, failing the test if
// parsing itself produced errors (those would mask the analyzer's own).
func analyze(t *testing.T, source string) []*diagnostics.DiagnosticError {
	t.Helper()
	tokens := lexer.All(source)
	prog, perrs := parser.ParseProgram(tokens)
	if len(perrs) > 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	az := New(deptree.New(), deptree.NewCounters())
	return az.Analyze(prog)
}

func hasCode(errs []*diagnostics.DiagnosticError, code diagnostics.Code) bool {
	for _, e := range errs {
		if e.Code == code {
			return true
		}
	}
	return false
}

func TestAnalyzeWellTypedProgramHasNoErrors(t *testing.T) {
	src := `
class A {
    private int x;
    public A() { this.x = 1; }
    public int getX() { return this.x; }
}
`
	if errs := analyze(t, src); len(errs) != 0 {
		t.Errorf("well-typed program reported errors: %v", errs)
	}
}

func TestAnalyzeClassExtendsItself(t *testing.T) {
	src := `class A extends A { public A() {} }`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrD002) {
		t.Errorf("expected D002 for self-extension, got %v", errs)
	}
}

func TestAnalyzePrivateCrossClassAccess(t *testing.T) {
	src := `
class A { private static int x; }
class B { public static int f() { return A.x; } }
`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrT005) {
		t.Errorf("expected T005 for private field accessed outside its class, got %v", errs)
	}
}

func TestAnalyzeDuplicateClass(t *testing.T) {
	src := `
class A { public A() {} }
class A { public A() {} }
`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrD001) {
		t.Errorf("expected D001 for duplicate class, got %v", errs)
	}
}

func TestAnalyzeExtendsUnknownClass(t *testing.T) {
	src := `class B extends Ghost { public B() {} }`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrD003) {
		t.Errorf("expected D003 for extending an unknown class, got %v", errs)
	}
}

func TestAnalyzeDuplicateMember(t *testing.T) {
	src := `
class A {
    private int x;
    private int x;
    public A() {}
}
`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrD004) {
		t.Errorf("expected D004 for duplicate member, got %v", errs)
	}
}

func TestAnalyzeMoreThanOneConstructor(t *testing.T) {
	src := `
class A {
    public A() {}
    public A() {}
}
`
	// D007 is reported by the parser, which keeps only the first
	// constructor, so the analyzer never sees the second one.
	_, errs := parser.ParseProgram(lexer.All(src))
	if !hasCode(errs, diagnostics.ErrD007) {
		t.Errorf("expected D007 for a second constructor, got %v", errs)
	}
}

func TestAnalyzeOperandTypeMismatch(t *testing.T) {
	src := `
class A {
    public A() {}
    public boolean f() { return 1 + true; }
}
`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrT002) {
		t.Errorf("expected T002 for int + boolean, got %v", errs)
	}
}

func TestAnalyzeAssignmentNotSubtype(t *testing.T) {
	src := `
class A {
    private int x;
    public A() { this.x = true; }
}
`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrT003) {
		t.Errorf("expected T003 for assigning boolean to int, got %v", errs)
	}
}

func TestAnalyzeUnknownFieldOrMethod(t *testing.T) {
	src := `
class A {
    public A() {}
    public int f() { return this.ghost; }
}
`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrT004) {
		t.Errorf("expected T004 for an unknown field, got %v", errs)
	}
}

func TestAnalyzeArityMismatch(t *testing.T) {
	src := `
class A {
    public A() {}
    public int f(int x) { return x; }
    public int g() { return this.f(1, 2); }
}
`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrT006) {
		t.Errorf("expected T006 for a call with the wrong number of arguments, got %v", errs)
	}
}

func TestAnalyzeArgumentNotSubtype(t *testing.T) {
	src := `
class A {
    public A() {}
    public int f(int x) { return x; }
    public int g() { return this.f(true); }
}
`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrT007) {
		t.Errorf("expected T007 for passing boolean where int is expected, got %v", errs)
	}
}

func TestAnalyzeReturnTypeMismatch(t *testing.T) {
	src := `
class A {
    public A() {}
    public int f() { return true; }
}
`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrT009) {
		t.Errorf("expected T009 for returning boolean from an int method, got %v", errs)
	}
}

func TestAnalyzeReturnIntFromFloatMethodIsAllowed(t *testing.T) {
	// int is a subtype of float, so returning an int literal from a
	// float-returning method should type-check cleanly.
	src := `
class A {
    public A() {}
    public float f() { return 1; }
}
`
	if errs := analyze(t, src); len(errs) != 0 {
		t.Errorf("returning int from a float method should be allowed, got %v", errs)
	}
}

func TestAnalyzeNonBoolCondition(t *testing.T) {
	src := `
class A {
    public A() {}
    public void f() { if (1) {} }
}
`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrT010) {
		t.Errorf("expected T010 for a non-boolean if condition, got %v", errs)
	}
}

func TestAnalyzeSuperOutsideSubclass(t *testing.T) {
	src := `
class A {
    public A() {}
    public void f() { super.f(); }
}
`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrT011) {
		t.Errorf("expected T011 for super used outside a subclass, got %v", errs)
	}
}

func TestAnalyzeNewOnClassWithNoConstructor(t *testing.T) {
	src := `
class A {}
class B {
    public B() {}
    public A f() { return new A(); }
}
`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrT012) {
		t.Errorf("expected T012 for new on a class with no declared constructor, got %v", errs)
	}
}

func TestAnalyzeThisInStaticContext(t *testing.T) {
	src := `
class A {
    public A() {}
    public static void f() { this.f(); }
}
`
	errs := analyze(t, src)
	if !hasCode(errs, diagnostics.ErrT013) {
		t.Errorf("expected T013 for this used in a static method, got %v", errs)
	}
}

func TestAnalyzePublicStaticFieldVisibleAcrossClasses(t *testing.T) {
	src := `
class A { public static int x; public A() {} }
class B extends A { public static int f() { return A.x; } }
`
	if errs := analyze(t, src); len(errs) != 0 {
		t.Errorf("public static field access across classes should be allowed, got %v", errs)
	}
}
