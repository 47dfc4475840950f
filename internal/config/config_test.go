package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHasSourceExt(t *testing.T) {
	if !HasSourceExt("foo.decaf") {
		t.Errorf("foo.decaf should have a recognized source extension")
	}
	if HasSourceExt("foo.txt") {
		t.Errorf("foo.txt should not have a recognized source extension")
	}
}

func TestTrimSourceExt(t *testing.T) {
	if got := TrimSourceExt("Widget.decaf"); got != "Widget" {
		t.Errorf("TrimSourceExt(%q) = %q, want %q", "Widget.decaf", got, "Widget")
	}
	if got := TrimSourceExt("Widget"); got != "Widget" {
		t.Errorf("TrimSourceExt should leave a name with no recognized extension untouched, got %q", got)
	}
}

func TestLoadMissingFileReturnsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load(missing) returned an error: %v", err)
	}
	if cfg.Debug || cfg.OutputDir != "" {
		t.Errorf("Load(missing) = %+v, want the zero Config", cfg)
	}
}

func TestLoadParsesYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decafc.yaml")
	if err := os.WriteFile(path, []byte("debug: true\noutput_dir: build\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Debug || cfg.OutputDir != "build" {
		t.Errorf("Load(%q) = %+v, want Debug=true, OutputDir=%q", path, cfg, "build")
	}
}

func TestFindConfigReturnsEmptyWhenAbsent(t *testing.T) {
	if got := FindConfig(t.TempDir()); got != "" {
		t.Errorf("FindConfig(empty dir) = %q, want \"\"", got)
	}
}

func TestFindConfigLocatesDecafcYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decafc.yaml")
	if err := os.WriteFile(path, []byte("debug: false\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got := FindConfig(dir); got != path {
		t.Errorf("FindConfig(%q) = %q, want %q", dir, got, path)
	}
}
