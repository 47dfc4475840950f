// Command decafc is the Decaf-to-AMI batch compiler's entry point: flags
// scanned linearly out of os.Args, a single positional source path, and
// os.Exit carrying the pipeline's result code.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/yangfawu/decaf-compiler/internal/cliapp"
	"github.com/yangfawu/decaf-compiler/internal/rpc"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) < 2 {
		cliapp.Usage(args[0])
		return 0
	}

	if args[1] == "serve" {
		return runServe(args[2:])
	}

	opts := cliapp.Options{}
	for i := 1; i < len(args); i++ {
		switch {
		case args[i] == "-o" && i+1 < len(args):
			opts.OutputDir = args[i+1]
			i++
		case args[i] == "--debug":
			opts.Debug = true
		case args[i] == "--no-color":
			opts.NoColor = true
		case args[i] == "--cache" && i+1 < len(args):
			opts.CacheDir = args[i+1]
			i++
		case args[i] == "--cache-stats":
			opts.CacheStats = true
		case strings.HasPrefix(args[i], "-"):
			// unrecognized flag, ignore
		default:
			opts.SourcePath = args[i]
		}
	}

	if opts.SourcePath == "" {
		cliapp.Usage(args[0])
		return 0
	}

	return cliapp.Run(opts)
}

// runServe implements `decafc serve --addr host:port`, hosting the
// compile pipeline as a gRPC service (internal/rpc).
func runServe(args []string) int {
	addr := ":50051"
	for i := 0; i < len(args); i++ {
		if args[i] == "--addr" && i+1 < len(args) {
			addr = args[i+1]
			i++
		}
	}

	srv, err := rpc.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "decafc: %s\n", err)
		return 2
	}
	if err := srv.Serve(addr); err != nil {
		fmt.Fprintf(os.Stderr, "decafc: %s\n", err)
		return 2
	}
	return 0
}
