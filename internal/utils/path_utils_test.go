package utils

import (
	"path/filepath"
	"testing"
)

func TestOutputPathNextToSourceByDefault(t *testing.T) {
	got := OutputPath(filepath.Join("src", "Widget.decaf"), "")
	want := filepath.Join("src", "Widget.ami")
	if got != want {
		t.Errorf("OutputPath(src/Widget.decaf, \"\") = %q, want %q", got, want)
	}
}

func TestOutputPathHonorsOutDir(t *testing.T) {
	got := OutputPath(filepath.Join("src", "Widget.decaf"), "build")
	want := filepath.Join("build", "Widget.ami")
	if got != want {
		t.Errorf("OutputPath with an outDir = %q, want %q", got, want)
	}
}

func TestModuleNameTrimsSourceExtension(t *testing.T) {
	if got := ModuleName(filepath.Join("src", "Widget.decaf")); got != "Widget" {
		t.Errorf("ModuleName = %q, want %q", got, "Widget")
	}
}
