// Package cliapp implements decafc's command-line driver: read a source
// file, run it through the full compile pipeline, and on success write
// the resulting AMI assembly next to the source file.
package cliapp

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/yangfawu/decaf-compiler/internal/analyzer"
	"github.com/yangfawu/decaf-compiler/internal/cache"
	"github.com/yangfawu/decaf-compiler/internal/codegen"
	"github.com/yangfawu/decaf-compiler/internal/config"
	"github.com/yangfawu/decaf-compiler/internal/emitter"
	"github.com/yangfawu/decaf-compiler/internal/layout"
	"github.com/yangfawu/decaf-compiler/internal/parser"
	"github.com/yangfawu/decaf-compiler/internal/pipeline"
	"github.com/yangfawu/decaf-compiler/internal/utils"
)

// Options controls a single Run invocation, separated from os.Args
// parsing so tests can drive Run directly.
type Options struct {
	SourcePath string
	OutputDir  string
	Debug      bool
	NoColor    bool

	// CacheDir, if non-empty, memoizes compiled output keyed by source
	// hash (spec.md DOMAIN STACK §3's internal/cache).
	CacheDir   string
	CacheStats bool
}

// Run compiles the source file named by opts.SourcePath and writes the
// resulting .ami file. It returns the process exit code: 0 on success,
// 1 if the source failed to compile, 2 on an I/O error reading or
// writing a file.
func Run(opts Options) int {
	source, err := os.ReadFile(opts.SourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decafc: %s\n", err)
		return 2
	}

	var c *cache.Cache
	var cacheKey string
	if opts.CacheDir != "" {
		c, err = cache.Open(opts.CacheDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "decafc: opening cache: %s\n", err)
			return 2
		}
		defer c.Close()

		cacheKey = cache.Key(string(source))
		if body, hit, err := c.Lookup(cacheKey); err == nil && hit {
			return writeOutput(opts, body)
		}
	}

	buildID := uuid.New().String()
	ctx := pipeline.NewContext(buildID, opts.SourcePath, string(source))

	p := pipeline.New(
		&parser.Processor{},
		&analyzer.Processor{},
		&layout.Processor{},
		&codegen.Processor{},
	)
	ctx = p.Run(ctx)

	if !ctx.OK() {
		printDiagnostics(os.Stderr, ctx, opts.NoColor)
		return 1
	}

	body := fmt.Sprintf("# build %s\n", buildID)
	body += emitter.Write(ctx.AMI, opts.Debug)
	body += emitter.StaticDataDirective(ctx.StaticSlots) + "\n"

	if c != nil {
		if err := c.Store(cacheKey, body); err != nil {
			fmt.Fprintf(os.Stderr, "decafc: warning: caching result: %s\n", err)
		}
		if opts.CacheStats {
			if stats, err := c.FormatStats(); err == nil {
				fmt.Fprintf(os.Stderr, "decafc: cache: %s\n", stats)
			}
		}
	}

	return writeOutput(opts, body)
}

func writeOutput(opts Options, body string) int {
	outPath := utils.OutputPath(opts.SourcePath, opts.OutputDir)
	if err := os.WriteFile(outPath, []byte(body), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "decafc: %s\n", err)
		return 2
	}
	return 0
}

// printDiagnostics writes every accumulated error to w, one per line,
// colorizing the error code when w is a real terminal.
func printDiagnostics(w *os.File, ctx *pipeline.Context, noColor bool) {
	useColor := !noColor && isatty.IsTerminal(w.Fd())
	for _, e := range ctx.Errors {
		if useColor {
			fmt.Fprintf(w, "\x1b[31m%s\x1b[0m\n", e.Error())
		} else {
			fmt.Fprintln(w, e.Error())
		}
	}
}

// Usage prints the command's usage string to stdout, matching the
// original compiler's historical behavior of exiting 0 when invoked
// with no file argument (spec.md §5 Open Questions).
func Usage(prog string) {
	fmt.Printf("Usage: %s <source%s>\n", prog, config.SourceFileExt)
}
