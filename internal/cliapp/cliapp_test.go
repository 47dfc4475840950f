package cliapp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunCompilesAndWritesAmiFile(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "A.decaf", `
class A {
    public A() {}
    public int f() { return 1; }
}
`)
	if code := Run(Options{SourcePath: src}); code != 0 {
		t.Fatalf("Run returned %d, want 0", code)
	}

	outPath := filepath.Join(dir, "A.ami")
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", outPath, err)
	}
	out := string(data)
	if !strings.HasPrefix(out, "# build ") {
		t.Errorf("output should start with a build-id comment, got:\n%s", out)
	}
	if !strings.Contains(out, ".static_data") {
		t.Errorf("output is missing its static data directive:\n%s", out)
	}
}

func TestRunWritesToOutputDirWhenSet(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	src := writeSource(t, dir, "A.decaf", `class A { public A() {} }`)

	if code := Run(Options{SourcePath: src, OutputDir: outDir}); code != 0 {
		t.Fatalf("Run returned %d, want 0", code)
	}
	if _, err := os.Stat(filepath.Join(outDir, "A.ami")); err != nil {
		t.Errorf("expected the .ami file in OutputDir: %v", err)
	}
}

func TestRunReturnsOneOnDeclarationError(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "A.decaf", `class A extends Ghost { public A() {} }`)
	if code := Run(Options{SourcePath: src}); code != 1 {
		t.Errorf("Run with an unresolvable superclass = %d, want 1", code)
	}
}

func TestRunReturnsTwoOnMissingSourceFile(t *testing.T) {
	dir := t.TempDir()
	if code := Run(Options{SourcePath: filepath.Join(dir, "missing.decaf")}); code != 2 {
		t.Errorf("Run with a missing source file = %d, want 2", code)
	}
}

func TestRunCacheHitReplaysStoredAmiVerbatim(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	if err := os.Mkdir(cacheDir, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	src := writeSource(t, dir, "A.decaf", `class A { public A() {} }`)

	if code := Run(Options{SourcePath: src, CacheDir: cacheDir}); code != 0 {
		t.Fatalf("first Run returned %d, want 0", code)
	}
	first, err := os.ReadFile(filepath.Join(dir, "A.ami"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if code := Run(Options{SourcePath: src, CacheDir: cacheDir}); code != 0 {
		t.Fatalf("second (cached) Run returned %d, want 0", code)
	}
	second, err := os.ReadFile(filepath.Join(dir, "A.ami"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("a cache hit should replay the exact stored AMI text, including its original build id, got:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}
