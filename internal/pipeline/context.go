package pipeline

import (
	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/deptree"
	"github.com/yangfawu/decaf-compiler/internal/diagnostics"
	"github.com/yangfawu/decaf-compiler/internal/token"
)

// Context is the shared, mutable state every pipeline stage reads from
// and writes to as it moves from raw source through tokens, an AST,
// layout, and finally emitted AMI.
type Context struct {
	// BuildID tags this compilation run; stamped once at pipeline
	// construction (see cliapp / rpc) with a uuid.New() value.
	BuildID string

	FilePath string
	Source   string
	Tokens   []token.Token

	AstRoot *ast.Program

	Tree     *deptree.Tree
	Counters *deptree.Counters

	// StaticSlots is the total static-field slot count, filled in by the
	// layout pass (spec.md §4.4's return value).
	StaticSlots int

	// AMI holds the code generator's emitted program, ready for the
	// emitter to write out (spec.md §4.5: "a tree-structured list of
	// strings").
	AMI []interface{}

	Errors []*diagnostics.DiagnosticError
}

// NewContext seeds a Context for compiling source from filePath.
func NewContext(buildID, filePath, source string) *Context {
	return &Context{
		BuildID:  buildID,
		FilePath: filePath,
		Source:   source,
		Tree:     deptree.New(),
		Counters: deptree.NewCounters(),
	}
}

// OK reports whether the pipeline has accumulated no errors so far.
func (c *Context) OK() bool { return len(c.Errors) == 0 }

// AddError appends a diagnostic and stamps its file if unset.
func (c *Context) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = c.FilePath
	}
	c.Errors = append(c.Errors, err)
}
