package pipeline_test

import (
	"strings"
	"testing"

	"github.com/yangfawu/decaf-compiler/internal/analyzer"
	"github.com/yangfawu/decaf-compiler/internal/codegen"
	"github.com/yangfawu/decaf-compiler/internal/emitter"
	"github.com/yangfawu/decaf-compiler/internal/layout"
	"github.com/yangfawu/decaf-compiler/internal/parser"
	"github.com/yangfawu/decaf-compiler/internal/pipeline"
)

const twoClassSource = `
class Shape {
    private int sides;
    public Shape(int sides) { this.sides = sides; }
    public int getSides() { return this.sides; }
}

class Polygon extends Shape {
    public static int instances;
    public Polygon(int sides) { Polygon.instances = Polygon.instances + 1; }
    public boolean isTriangle() { return this.getSides() == 3; }
}
`

func run(buildID, source string) *pipeline.Context {
	ctx := pipeline.NewContext(buildID, "fixture.decaf", source)
	p := pipeline.New(&parser.Processor{}, &analyzer.Processor{}, &layout.Processor{}, &codegen.Processor{})
	return p.Run(ctx)
}

func TestPipelineCompilesTwoClassProgramCleanly(t *testing.T) {
	ctx := run("build-1", twoClassSource)
	if !ctx.OK() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Errors)
	}
	if ctx.StaticSlots != 1 {
		t.Errorf("StaticSlots = %d, want 1 (Polygon.instances)", ctx.StaticSlots)
	}

	out := emitter.Write(ctx.AMI, false)
	out += emitter.StaticDataDirective(ctx.StaticSlots) + "\n"

	if !strings.Contains(out, "# class Shape") {
		t.Errorf("expected a class Shape header, got:\n%s", out)
	}
	if !strings.Contains(out, "# class Polygon") {
		t.Errorf("expected a class Polygon header, got:\n%s", out)
	}
	if !strings.HasSuffix(strings.TrimRight(out, "\n"), ".static_data 1") {
		t.Errorf("expected the static data directive as the final line, got:\n%s", out)
	}
}

func TestPipelineCodegenIsDeterministicAcrossRuns(t *testing.T) {
	first := run("build-a", twoClassSource)
	second := run("build-b", twoClassSource)
	if !first.OK() || !second.OK() {
		t.Fatalf("unexpected diagnostics: first=%v second=%v", first.Errors, second.Errors)
	}

	firstText := emitter.Write(first.AMI, false)
	secondText := emitter.Write(second.AMI, false)
	if firstText != secondText {
		t.Errorf("identical source compiled twice produced different AMI text:\nfirst:\n%s\nsecond:\n%s", firstText, secondText)
	}
}

func TestPipelineStopsAtFirstUnresolvableClass(t *testing.T) {
	ctx := run("build-1", `class A extends Ghost { public A() {} }`)
	if ctx.OK() {
		t.Fatalf("expected diagnostics for an unknown superclass")
	}
	if len(ctx.AMI) != 0 {
		t.Errorf("codegen should not run once the analyzer reports errors, got AMI = %v", ctx.AMI)
	}
}
