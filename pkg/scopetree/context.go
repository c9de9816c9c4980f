package scopetree

import (
	"github.com/gnana997/callgraph/pkg/source"
	"github.com/gnana997/callgraph/pkg/symbols"
)

// ProcessingContext bundles a file's scope Tree with its definition
// Builder, so callers processing normalized captures in a single pass
// get scope-ID assignment and definition attachment together. This is
// the per-file object pass around as "the scope
// processor" and "the definition builder" collaborating.
type ProcessingContext struct {
	Tree    *Tree
	Builder *symbols.Builder
}

func NewProcessingContext(filePath string, fileRange source.Range) *ProcessingContext {
	return &ProcessingContext{
		Tree:    NewTree(filePath, fileRange),
		Builder: symbols.NewBuilder(filePath),
	}
}

// DeclareScope inserts a scope for a scope-category capture and returns
// its ID.
func (c *ProcessingContext) DeclareScope(kind Kind, name string, rng source.Range) string {
	return c.Tree.Insert(kind, name, rng)
}

// AttachContainer resolves def's declaring scope from its Range, stores
// the scope ID on def, folds it through the builder (for orphan
// reattachment), and registers it in that scope's symbol table.
func (c *ProcessingContext) AttachContainer(def *symbols.Definition) *symbols.Definition {
	def.ScopeID = c.Tree.ScopeIDForLocation(def.Range)
	def = c.Builder.AddContainer(def)
	c.Tree.AddSymbol(def.ScopeID, def)
	return def
}

// AttachVariable is AttachContainer's counterpart for non-container
// definitions (variables, constants, imports, type aliases).
func (c *ProcessingContext) AttachVariable(def *symbols.Definition) *symbols.Definition {
	def.ScopeID = c.Tree.ScopeIDForLocation(def.Range)
	def = c.Builder.AddVariable(def)
	c.Tree.AddSymbol(def.ScopeID, def)
	return def
}

// AttachMethod, AttachProperty, AttachConstructor, AttachParameter mirror
// AttachContainer for the orphan-reattachable child kinds. These are not
// registered in the scope symbol table under their own name — per
// they live off their parent's Methods/Properties/
// Parameters slices, not as independently resolvable scope bindings —
// except parameters, which ARE locally resolvable within their owning
// function's scope.
func (c *ProcessingContext) AttachMethod(def *symbols.Definition) *symbols.Definition {
	def.ScopeID = c.Tree.ScopeIDForLocation(def.Range)
	return c.Builder.AddMethod(def)
}

func (c *ProcessingContext) AttachProperty(def *symbols.Definition) *symbols.Definition {
	def.ScopeID = c.Tree.ScopeIDForLocation(def.Range)
	return c.Builder.AddProperty(def)
}

func (c *ProcessingContext) AttachConstructor(def *symbols.Definition) *symbols.Definition {
	def.ScopeID = c.Tree.ScopeIDForLocation(def.Range)
	return c.Builder.AddConstructor(def)
}

func (c *ProcessingContext) AttachParameter(def *symbols.Definition) *symbols.Definition {
	def.ScopeID = c.Tree.ScopeIDForLocation(def.Range)
	def = c.Builder.AddParameter(def)
	c.Tree.AddSymbol(def.ScopeID, def)
	return def
}

// Definitions returns the finished, ordered top-level definitions for
// this file.
func (c *ProcessingContext) Definitions() []*symbols.Definition {
	return c.Builder.Build()
}
