package queries

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/callgraph/pkg/capture"
	"github.com/gnana997/callgraph/pkg/source"
)

// nodeAdapter implements capture.Node over a *ts.Node, giving
// pkg/capture's extractors field/parent access without pkg/capture
// importing the tree-sitter bindings directly.
type nodeAdapter struct {
	node *ts.Node
	src  []byte
}

func newNodeAdapter(n *ts.Node, src []byte) *nodeAdapter {
	if n == nil {
		return nil
	}
	return &nodeAdapter{node: n, src: src}
}

func (a *nodeAdapter) Range() source.Range {
	start := a.node.StartPosition()
	end := a.node.EndPosition()
	return source.Range{
		Start: source.Position{Row: uint32(start.Row), Column: uint32(start.Column)},
		End:   source.Position{Row: uint32(end.Row), Column: uint32(end.Column)},
	}
}

func (a *nodeAdapter) Type() string {
	return a.node.Kind()
}

func (a *nodeAdapter) Text() string {
	return a.node.Utf8Text(a.src)
}

func (a *nodeAdapter) ChildByField(name string) (capture.Node, bool) {
	child := a.node.ChildByFieldName(name)
	if child == nil {
		return nil, false
	}
	return newNodeAdapter(child, a.src), true
}

func (a *nodeAdapter) Parent() (capture.Node, bool) {
	parent := a.node.Parent()
	if parent == nil {
		return nil, false
	}
	return newNodeAdapter(parent, a.src), true
}
