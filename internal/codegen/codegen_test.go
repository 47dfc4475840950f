package codegen

import (
	"strings"
	"testing"

	"github.com/yangfawu/decaf-compiler/internal/analyzer"
	"github.com/yangfawu/decaf-compiler/internal/deptree"
	"github.com/yangfawu/decaf-compiler/internal/emitter"
	"github.com/yangfawu/decaf-compiler/internal/layout"
	"github.com/yangfawu/decaf-compiler/internal/lexer"
	"github.com/yangfawu/decaf-compiler/internal/parser"
)

// compile runs source through the full front end (lex, parse, analyze,
// layout) and returns the code generator's rendered AMI text. It fails
// the test on any diagnostic, since every fixture here is meant to be
// well-typed.
func compile(t *testing.T, source string) string {
	t.Helper()
	tokens := lexer.All(source)
	prog, perrs := parser.ParseProgram(tokens)
	if len(perrs) > 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	tree := deptree.New()
	az := analyzer.New(tree, deptree.NewCounters())
	if errs := az.Analyze(prog); len(errs) > 0 {
		t.Fatalf("unexpected analyzer errors: %v", errs)
	}
	layout.Run(tree, tree.AllClasses())

	g := New(tree)
	lines := g.Compile(prog)
	if errs := g.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected codegen errors: %v", errs)
	}
	return emitter.Write(lines, false)
}

func countOccurrences(text, substr string) int {
	return strings.Count(text, substr)
}

func TestCodegenIntPromotedInFloatArithmetic(t *testing.T) {
	src := `
class A {
    public A() {}
    public float f() { return 1 + 2.0; }
}
`
	out := compile(t, src)
	if !strings.Contains(out, "itof") {
		t.Errorf("expected an itof promotion for the int operand, got:\n%s", out)
	}
	if !strings.Contains(out, "fadd") {
		t.Errorf("expected a float add once both operands are float, got:\n%s", out)
	}
}

func TestCodegenEqualityUsesTwoComparisonTrick(t *testing.T) {
	src := `
class A {
    public A() {}
    public boolean f(int x, int y) { return x == y; }
}
`
	out := compile(t, src)
	if !strings.Contains(out, "ilt") || !strings.Contains(out, "igt") {
		t.Errorf("equality should lower to an ilt and an igt comparison, got:\n%s", out)
	}
	if countOccurrences(out, "iadd") == 0 {
		t.Errorf("equality should or the two comparisons via iadd+igt, got:\n%s", out)
	}
	if !strings.Contains(out, "isub") {
		t.Errorf("== should flip the != result with a 1 - neq isub, got:\n%s", out)
	}
}

func TestCodegenNewAndMethodCallConventions(t *testing.T) {
	src := `
class A {
    public A() {}
    public int get() { return 1; }
}
class B {
    public B() {}
    public int f() {
        A a;
        a = new A();
        return a.get();
    }
}
`
	out := compile(t, src)
	if !strings.Contains(out, "halloc") {
		t.Errorf("new A() should emit halloc, got:\n%s", out)
	}
	if !strings.Contains(out, "call C_") {
		t.Errorf("new A() should call the constructor label, got:\n%s", out)
	}
	if !strings.Contains(out, "call M_get_") {
		t.Errorf("a.get() should call the method label, got:\n%s", out)
	}
	if countOccurrences(out, "save a0") == 0 {
		t.Errorf("every call site should save a0 around the call, got:\n%s", out)
	}
}

func TestCodegenReturnIntFromFloatMethodPromotes(t *testing.T) {
	src := `
class A {
    public A() {}
    public float f() { return 1; }
}
`
	out := compile(t, src)
	if !strings.Contains(out, "itof") {
		t.Errorf("returning an int literal from a float method should promote via itof, got:\n%s", out)
	}
	if !strings.Contains(out, "move a0,") {
		t.Errorf("return should move its (possibly promoted) value into a0, got:\n%s", out)
	}
}

func TestCodegenVoidMethodCallYieldsZero(t *testing.T) {
	src := `
class A {
    public A() {}
    public void noop() {}
    public int f() {
        this.noop();
        return 0;
    }
}
`
	out := compile(t, src)
	if !strings.Contains(out, "call M_noop_") {
		t.Fatalf("expected a call to noop, got:\n%s", out)
	}
	// The call's result temporary is t0 (the counter is reset to the
	// pre-call seed of 0), and a void callee leaves it holding 0.
	afterCall := out[strings.Index(out, "call M_noop_"):]
	if !strings.Contains(afterCall, "move_immed_i t0, 0") {
		t.Errorf("a void call's result should be loaded as 0, got:\n%s", out)
	}
}

func TestCodegenDeterministicAcrossRuns(t *testing.T) {
	src := `
class A {
    private int x;
    public A(int x) { this.x = x; }
    public int get() { return this.x; }
}
`
	first := compile(t, src)
	second := compile(t, src)
	if first != second {
		t.Errorf("code generation should be deterministic for a fixed input:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestCodegenUnaryNegSynthesizedFromMultiplyByNegOne(t *testing.T) {
	src := `
class A {
    public A() {}
    public int f(int x) { return -x; }
    public float h(float y) { return -y; }
    public boolean g(boolean b) { return !b; }
}
`
	out := compile(t, src)
	if !strings.Contains(out, "-1") || !strings.Contains(out, "imul") {
		t.Errorf("unary - on int should load -1 and synthesize via imul, got:\n%s", out)
	}
	if !strings.Contains(out, "-1.0") || !strings.Contains(out, "fmul") {
		t.Errorf("unary - on float should load -1.0 and synthesize via fmul, got:\n%s", out)
	}
	if !strings.Contains(out, "isub") {
		t.Errorf("unary ! should still synthesize via isub (1 - b), got:\n%s", out)
	}
}

func TestCodegenStaticDataDirectiveFormat(t *testing.T) {
	src := `
class A {
    public static int counter;
    public A() {}
}
`
	_ = compile(t, src)
	directive := emitter.StaticDataDirective(1)
	if directive != ".static_data 1" {
		t.Errorf("StaticDataDirective(1) = %q, want %q", directive, ".static_data 1")
	}
}
