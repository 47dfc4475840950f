package layout

import (
	"testing"

	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/deptree"
)

func addInstanceField(c *deptree.ClassRecord, name string) {
	c.AddField(&deptree.FieldRecord{Name: name, Applicability: ast.Instance, ContainingClass: c.Name, Offset: -1})
}

func addStaticField(c *deptree.ClassRecord, name string) {
	c.AddField(&deptree.FieldRecord{Name: name, Applicability: ast.Static, ContainingClass: c.Name, Offset: -1})
}

func TestLayoutSubclassStartsAtSuperSize(t *testing.T) {
	tree := deptree.New()
	a, _ := tree.RegisterClass("A", "")
	addInstanceField(a, "x")
	addInstanceField(a, "y")

	b, _ := tree.RegisterClass("B", "A")
	addInstanceField(b, "z")

	Run(tree, []*deptree.ClassRecord{a, b})

	if a.Size != 2 {
		t.Fatalf("A.Size = %d, want 2", a.Size)
	}
	if b.Size != 3 {
		t.Fatalf("B.Size = %d, want 3 (super's 2 + own 1)", b.Size)
	}

	zField := b.Fields[0]
	if zField.Offset != 2 {
		t.Errorf("B.z offset = %d, want 2 (starts after super's fields)", zField.Offset)
	}
}

func TestLayoutDistinctOffsetsWithinClass(t *testing.T) {
	tree := deptree.New()
	a, _ := tree.RegisterClass("A", "")
	addInstanceField(a, "x")
	addInstanceField(a, "y")
	addInstanceField(a, "z")

	Run(tree, []*deptree.ClassRecord{a})

	seen := map[int]bool{}
	for _, f := range a.Fields {
		if seen[f.Offset] {
			t.Errorf("duplicate offset %d within class A", f.Offset)
		}
		seen[f.Offset] = true
		if f.Offset >= a.Size {
			t.Errorf("field offset %d >= class size %d", f.Offset, a.Size)
		}
	}
}

func TestLayoutStaticCounterSharedAcrossClasses(t *testing.T) {
	tree := deptree.New()
	a, _ := tree.RegisterClass("A", "")
	addStaticField(a, "sx")
	b, _ := tree.RegisterClass("B", "")
	addStaticField(b, "sy")
	addStaticField(b, "sz")

	result := Run(tree, []*deptree.ClassRecord{a, b})

	if result.StaticSlots != 3 {
		t.Fatalf("StaticSlots = %d, want 3", result.StaticSlots)
	}

	allOffsets := map[int]bool{}
	for _, f := range a.Fields {
		allOffsets[f.Offset] = true
	}
	for _, f := range b.Fields {
		if allOffsets[f.Offset] {
			t.Errorf("static field offset %d collides across classes", f.Offset)
		}
		allOffsets[f.Offset] = true
	}
}

func TestLayoutMonotoneSizeNeverShrinksBelowSuper(t *testing.T) {
	tree := deptree.New()
	a, _ := tree.RegisterClass("A", "")
	addInstanceField(a, "x")
	b, _ := tree.RegisterClass("B", "A") // B declares no new fields

	Run(tree, []*deptree.ClassRecord{a, b})

	if b.Size < a.Size {
		t.Errorf("B.Size (%d) < A.Size (%d)", b.Size, a.Size)
	}
}

func TestLayoutOutOfOrderInputStillWorks(t *testing.T) {
	tree := deptree.New()
	a, _ := tree.RegisterClass("A", "")
	addInstanceField(a, "x")
	b, _ := tree.RegisterClass("B", "A")
	addInstanceField(b, "y")

	// Hand the layout pass B before A.
	Run(tree, []*deptree.ClassRecord{b, a})

	if a.Size != 1 {
		t.Errorf("A.Size = %d, want 1", a.Size)
	}
	if b.Size != 2 {
		t.Errorf("B.Size = %d, want 2", b.Size)
	}
}
