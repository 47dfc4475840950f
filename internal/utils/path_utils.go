// Package utils holds small path helpers shared by the CLI and rpc
// front ends.
package utils

import (
	"path/filepath"

	"github.com/yangfawu/decaf-compiler/internal/config"
)

// OutputPath derives the .ami path a compiled sourcePath is written to
// (spec.md §5): same basename with the source extension trimmed and
// OutputFileExt appended, placed in outDir if non-empty, otherwise next
// to the source file.
func OutputPath(sourcePath, outDir string) string {
	base := config.TrimSourceExt(filepath.Base(sourcePath)) + config.OutputFileExt
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(sourcePath), base)
}

// ModuleName derives a program's display name from its source path: the
// base filename with any recognized source extension trimmed.
func ModuleName(path string) string {
	return config.TrimSourceExt(filepath.Base(path))
}
