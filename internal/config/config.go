// Package config holds the compiler's build-time constants and the
// decafc.yaml-loaded project settings.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Version is the current decafc version. Set at build time by a release
// script via -ldflags, or by editing this value directly.
var Version = "0.1.0"

// SourceFileExt is the canonical Decaf source extension.
const SourceFileExt = ".decaf"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".decaf"}

// OutputFileExt is the AMI assembly output extension (spec.md §5).
const OutputFileExt = ".ami"

// HasSourceExt returns true if path ends with a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized source extension from name, if present.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// Config is the optional decafc.yaml project configuration: settings that
// apply across an invocation rather than varying per source file.
type Config struct {
	// Debug turns on the emitter's blank-line-after-comment formatting
	// (spec.md §4.6) for every file compiled under this config.
	Debug bool `yaml:"debug"`

	// OutputDir overrides the directory .ami files are written into;
	// empty means "next to the source file" (spec.md §5's default).
	OutputDir string `yaml:"output_dir"`
}

// Load reads and parses a decafc.yaml file. A missing file is not an
// error; it returns the zero Config, matching the CLI's "config is
// entirely optional" behavior.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig looks for decafc.yaml in dir and returns its path, or "" if
// none exists.
func FindConfig(dir string) string {
	candidate := filepath.Join(dir, "decafc.yaml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}
