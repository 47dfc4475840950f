package scope

import (
	"testing"

	"github.com/yangfawu/decaf-compiler/internal/types"
)

func TestAddAssignsSequentialIdsAcrossSharedTable(t *testing.T) {
	class := NewClassScope("A")
	member := NewMemberScope(class)
	p, ok := member.Add("x", Formal, types.Int)
	if !ok || p.ID != 1 {
		t.Fatalf("first Add: id = %d, ok = %v, want 1, true", p.ID, ok)
	}
	body := member.Child(true)
	l, ok := body.Add("y", Local, types.Float)
	if !ok || l.ID != 2 {
		t.Fatalf("second Add (nested, shared table): id = %d, ok = %v, want 2, true", l.ID, ok)
	}
}

func TestAddRejectsDuplicateInSameScope(t *testing.T) {
	member := NewMemberScope(NewClassScope("A"))
	if _, ok := member.Add("x", Formal, types.Int); !ok {
		t.Fatalf("first Add should succeed")
	}
	if _, ok := member.Add("x", Local, types.Int); ok {
		t.Errorf("redeclaring x in the same scope should fail")
	}
}

func TestChildSharedTableMakesFormalShadowingADuplicate(t *testing.T) {
	member := NewMemberScope(NewClassScope("A"))
	member.Add("x", Formal, types.Int)
	// The top-level block shares the member scope's symbol table, so
	// redeclaring a formal as a local inside it is a duplicate, not a
	// legal shadow.
	body := member.Child(true)
	if _, ok := body.Add("x", Local, types.Int); ok {
		t.Errorf("redeclaring a formal as a local in the shared-table child should fail")
	}
}

func TestChildUnsharedTableAllowsShadowing(t *testing.T) {
	member := NewMemberScope(NewClassScope("A"))
	outer, _ := member.Add("x", Local, types.Int)
	nested := member.Child(true).Child(false)
	inner, ok := nested.Add("x", Local, types.Float)
	if !ok {
		t.Fatalf("shadowing x in an unshared nested scope should succeed")
	}
	if inner == outer {
		t.Errorf("the nested x should be a distinct variable from the outer one")
	}
	got, ok := nested.Lookup("x")
	if !ok || got != inner {
		t.Errorf("Lookup from the nested scope should find the inner shadow")
	}
}

func TestLookupInSeparateClassSpineDoesNotSeeOtherLocals(t *testing.T) {
	outer := NewMemberScope(NewClassScope("A"))
	outer.Add("x", Local, types.Int)
	// NewClassScope marks its own frame block_child, but the boundary that
	// matters here is the one a VarExpr could actually cross: a scope
	// rooted fresh with no parent chain to outer must not see outer's x.
	isolated := NewClassScope("B")
	if _, ok := isolated.Lookup("x"); ok {
		t.Errorf("a scope in a different class's spine should not see another class's locals")
	}
}

func TestLookupFindsNameInAncestorScope(t *testing.T) {
	member := NewMemberScope(NewClassScope("A"))
	v, _ := member.Add("x", Formal, types.Int)
	nested := member.Child(true).Child(false).Child(false)
	got, ok := nested.Lookup("x")
	if !ok || got != v {
		t.Errorf("Lookup should walk up through unshared child scopes to find a formal")
	}
}

func TestVariableTableIsSharedAcrossTheWholeMember(t *testing.T) {
	member := NewMemberScope(NewClassScope("A"))
	member.Add("a", Formal, types.Int)
	member.Child(true).Add("b", Local, types.Int)
	member.Child(true).Child(false).Add("c", Local, types.Int)

	table := member.VariableTable()
	if len(table.Vars) != 3 {
		t.Fatalf("VariableTable has %d entries, want 3", len(table.Vars))
	}
	for i, v := range table.Vars {
		if v.ID != i+1 {
			t.Errorf("Vars[%d].ID = %d, want %d", i, v.ID, i+1)
		}
	}
}
