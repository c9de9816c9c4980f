// Package scopetree implements the scope processor: it
// assembles the per-file nested lexical scope structure used to resolve
// names by deepest-enclosing-scope lookup, and hosts the symbol table
// each scope owns once the definition builder has run.
//
// Generalizes the single-scope-string-per-symbol bookkeeping of a flat
// extractor into an explicit tree with deterministic IDs and
// smallest-area insertion, since a call graph's scope model is richer
// than a flat one.
package scopetree

import (
	"fmt"

	"github.com/gnana997/callgraph/pkg/source"
	"github.com/gnana997/callgraph/pkg/symbols"
)

// Kind enumerates the scope kinds a Node can have.
type Kind string

const (
	KindModule    Kind = "module"
	KindNamespace Kind = "namespace"
	KindClass     Kind = "class"
	KindFunction  Kind = "function"
	KindBlock     Kind = "block"
)

// Node is one lexical scope. ParentID is empty for the module root.
type Node struct {
	ID       string
	ParentID string
	Kind     Kind
	Name     string
	Range    source.Range

	ChildIDs []string

	// Symbols holds the definitions whose declaring scope is this node,
	// keyed by simple name. Populated after the definition builder runs.
	Symbols map[string]*symbols.Definition

	depth int // memoized by ProcessingContext, -1 until computed
}

// id builds a deterministic scope ID per the step 1:
// kind:file:row:col:end_row:end_col[:name].
func id(filePath string, kind Kind, rng source.Range, name string) string {
	base := fmt.Sprintf("%s:%s:%d:%d:%d:%d", kind, filePath, rng.Start.Row, rng.Start.Column, rng.End.Row, rng.End.Column)
	if name != "" {
		return base + ":" + name
	}
	return base
}

// Tree is the full set of scopes for one file.
type Tree struct {
	FilePath string
	RootID   string
	nodes    map[string]*Node
}

// NewTree creates a tree with a single module-level root scope spanning
// fileRange.
func NewTree(filePath string, fileRange source.Range) *Tree {
	root := &Node{
		ID:      id(filePath, KindModule, fileRange, ""),
		Kind:    KindModule,
		Name:    "",
		Range:   fileRange,
		Symbols: map[string]*symbols.Definition{},
	}
	return &Tree{
		FilePath: filePath,
		RootID:   root.ID,
		nodes:    map[string]*Node{root.ID: root},
	}
}

// Node returns the node for a scope ID, or nil.
func (t *Tree) Node(scopeID string) *Node { return t.nodes[scopeID] }

// Root returns the module-level root node.
func (t *Tree) Root() *Node { return t.nodes[t.RootID] }

// Insert adds a new scope of kind/name/rng, attaching it under the
// smallest-area existing scope that contains rng,
// and returns its ID. Re-inserting the same (kind, rng, name) returns the
// existing node's ID rather than duplicating it.
func (t *Tree) Insert(kind Kind, name string, rng source.Range) string {
	nodeID := id(t.FilePath, kind, rng, name)
	if _, exists := t.nodes[nodeID]; exists {
		return nodeID
	}

	parent := t.smallestContaining(rng, nodeID)
	node := &Node{
		ID:       nodeID,
		ParentID: parent.ID,
		Kind:     kind,
		Name:     name,
		Range:    rng,
		Symbols:  map[string]*symbols.Definition{},
		depth:    -1,
	}
	t.nodes[nodeID] = node
	parent.ChildIDs = append(parent.ChildIDs, nodeID)
	return nodeID
}

// smallestContaining finds the smallest-area existing scope whose Range
// contains rng, excluding excludeID (to avoid self-containment once a
// node has been registered). Falls back to the root scope, which always
// contains every in-file range.
func (t *Tree) smallestContaining(rng source.Range, excludeID string) *Node {
	var best *Node
	var bestArea int64 = -1
	for nid, n := range t.nodes {
		if nid == excludeID {
			continue
		}
		if !n.Range.Contains(rng) {
			continue
		}
		area := n.Range.Area()
		if best == nil || area < bestArea {
			best, bestArea = n, area
		}
	}
	if best == nil {
		return t.Root()
	}
	return best
}

// ScopeIDForLocation returns the ID of the smallest-area scope
// containing loc — the deepest-enclosing-scope lookup // names for mapping a capture's location back to its declaring scope.
func (t *Tree) ScopeIDForLocation(loc source.Range) string {
	best := t.Root()
	var bestArea int64 = best.Range.Area()
	for _, n := range t.nodes {
		if n.ID == best.ID {
			continue
		}
		if !n.Range.Contains(loc) {
			continue
		}
		area := n.Range.Area()
		if area < bestArea {
			best, bestArea = n, area
		}
	}
	return best.ID
}

// AddSymbol registers def under the scope scopeID, creating no new scope
// (scopeID must already exist; callers pass the ID returned from Insert
// or ScopeIDForLocation). A no-op if scopeID is unknown, which can only
// happen if a capture is malformed.
func (t *Tree) AddSymbol(scopeID string, def *symbols.Definition) {
	n, ok := t.nodes[scopeID]
	if !ok {
		return
	}
	n.Symbols[def.Name] = def
}

// Ancestors returns the chain of scope IDs from scopeID up to and
// including the root, in innermost-first order. Used by resolvers
// walking the scope chain outward.
func (t *Tree) Ancestors(scopeID string) []string {
	var chain []string
	seen := make(map[string]bool)
	cur := scopeID
	for cur != "" {
		if seen[cur] {
			// Cycle guard: a malformed insertion sequence could in
			// principle loop; break rather than hang.
			break
		}
		seen[cur] = true
		chain = append(chain, cur)
		n, ok := t.nodes[cur]
		if !ok {
			break
		}
		cur = n.ParentID
	}
	return chain
}

// Depth returns scopeID's distance from the root (root is 0), memoizing
// the result on the node.
func (t *Tree) Depth(scopeID string) int {
	n, ok := t.nodes[scopeID]
	if !ok {
		return 0
	}
	if n.depth >= 0 {
		return n.depth
	}
	if n.ParentID == "" {
		n.depth = 0
		return 0
	}
	n.depth = t.Depth(n.ParentID) + 1
	return n.depth
}

// Lookup resolves name by walking the scope chain from scopeID outward
// to the root, returning the first matching symbol found: the
// deepest-enclosing-scope rule every language-specific resolver starts
// from.
func (t *Tree) Lookup(scopeID, name string) (*symbols.Definition, bool) {
	for _, sid := range t.Ancestors(scopeID) {
		n := t.nodes[sid]
		if n == nil {
			continue
		}
		if def, ok := n.Symbols[name]; ok {
			return def, true
		}
	}
	return nil, false
}

// AllNodes returns every scope node, for diagnostics and traversal.
func (t *Tree) AllNodes() map[string]*Node { return t.nodes }
