package scopetree

import (
	"testing"

	"github.com/gnana997/callgraph/pkg/source"
	"github.com/gnana997/callgraph/pkg/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rng(sr, sc, er, ec uint32) source.Range {
	return source.Range{Start: source.Position{Row: sr, Column: sc}, End: source.Position{Row: er, Column: ec}}
}

func TestTree_InsertNestsUnderSmallestContaining(t *testing.T) {
	tree := NewTree("a.ts", rng(0, 0, 100, 0))

	fn := tree.Insert(KindFunction, "outer", rng(1, 0, 20, 0))
	block := tree.Insert(KindBlock, "", rng(2, 2, 10, 2))

	assert.Equal(t, fn, tree.Node(block).ParentID)
	assert.Equal(t, tree.RootID, tree.Node(fn).ParentID)
}

func TestTree_InsertIsIdempotent(t *testing.T) {
	tree := NewTree("a.ts", rng(0, 0, 100, 0))
	a := tree.Insert(KindFunction, "f", rng(1, 0, 5, 0))
	b := tree.Insert(KindFunction, "f", rng(1, 0, 5, 0))
	assert.Equal(t, a, b)
}

func TestTree_LookupWalksAncestorChain(t *testing.T) {
	tree := NewTree("a.ts", rng(0, 0, 100, 0))
	fn := tree.Insert(KindFunction, "outer", rng(1, 0, 20, 0))
	block := tree.Insert(KindBlock, "", rng(2, 2, 10, 2))

	def := &symbols.Definition{Name: "x", Kind: symbols.KindVariable}
	tree.AddSymbol(fn, def)

	found, ok := tree.Lookup(block, "x")
	require.True(t, ok)
	assert.Same(t, def, found)

	_, ok = tree.Lookup(block, "missing")
	assert.False(t, ok)
}

func TestTree_DepthMemoizes(t *testing.T) {
	tree := NewTree("a.ts", rng(0, 0, 100, 0))
	fn := tree.Insert(KindFunction, "outer", rng(1, 0, 20, 0))
	block := tree.Insert(KindBlock, "", rng(2, 2, 10, 2))

	assert.Equal(t, 0, tree.Depth(tree.RootID))
	assert.Equal(t, 1, tree.Depth(fn))
	assert.Equal(t, 2, tree.Depth(block))
}

func TestProcessingContext_AttachContainerAndMethod(t *testing.T) {
	ctx := NewProcessingContext("a.ts", rng(0, 0, 100, 0))
	classScope := ctx.DeclareScope(KindClass, "Widget", rng(1, 0, 10, 1))

	class := ctx.AttachContainer(&symbols.Definition{Name: "Widget", Kind: symbols.KindClass, Range: rng(1, 0, 1, 6), EnclosingRange: rng(1, 0, 10, 1)})
	assert.Equal(t, classScope, class.ScopeID)

	method := ctx.AttachMethod(&symbols.Definition{Name: "render", Kind: symbols.KindMethod, Range: rng(2, 2, 2, 8), EnclosingRange: rng(2, 2, 4, 3)})

	require.Len(t, class.Methods, 1)
	assert.Same(t, method, class.Methods[0])

	defs := ctx.Definitions()
	require.Len(t, defs, 1)
	assert.Equal(t, "Widget", defs[0].Name)
}
