// Package callgraph implements the call-graph builder:
// the two-phase immutable pipeline that turns per-file definitions,
// references, and the symbol resolver into a queryable project-wide
// call graph.
//
// Combines a three-phase discover/process/index scan pipeline with
// O(1) query maps over the built graph: nodes are definitions, edges
// are FunctionCalls, and cross-file call resolution is the analogue of
// the prebuilt-index query pattern used elsewhere in this codebase.
package callgraph

import "github.com/gnana997/callgraph/pkg/source"

// CallType distinguishes a direct function call from a receiver-qualified
// method call on a graph edge.
type CallType string

const (
	CallDirect CallType = "direct"
	CallMethod CallType = "method"
)

// ModuleCallerID is the synthetic id for code executed at file load
// time, per the "well-known id ${file_path}#<module>".
func ModuleCallerID(filePath string) string { return filePath + "#<module>" }

// UnresolvedCalleeID is the synthetic id a resolver timeout or cycle
// yields, per the failure semantics.
const UnresolvedCalleeID = "<builtin>#unresolved"

// FunctionCall is one call site discovered during Phase 1, before its
// callee has been resolved against the project-wide graph.
type FunctionCall struct {
	CallerID          string
	CalleeID          string
	CallLocation      source.Position
	IsMethodCall      bool
	IsConstructorCall bool
}

// CallRef is one entry in a node's `calls` sequence: the call site plus
// its resolved target.
type CallRef struct {
	Symbol             string
	Range              source.Range
	Kind               string
	ResolvedDefinition string // symbol id, possibly UnresolvedCalleeID
}

// Node is one entry in a CallGraph's `nodes` mapping.
type Node struct {
	ID         string
	Label      string
	File       string
	Kind       string
	Range      source.Range
	IsExported bool
	Calls      []CallRef
	CalledBy   []string
}

// Edge is one entry in a CallGraph's `edges` sequence.
type Edge struct {
	From     string
	To       string
	Location source.Range
	CallType CallType
}

// CallGraph is CallGraph: the flattened, queryable result
// of a full or filtered build.
type CallGraph struct {
	Nodes         map[string]*Node
	Edges         []Edge
	TopLevelNodes []string
}

// NodeOrder holds node IDs in file-then-first-appearance order. No code
// in the package uses it; phase 2 keeps its own ordering slice for
// TopLevelNodes.
type NodeOrder struct {
	ids []string
}

func (o *NodeOrder) Append(id string) { o.ids = append(o.ids, id) }
func (o *NodeOrder) IDs() []string {
	out := make([]string, len(o.ids))
	copy(out, o.ids)
	return out
}
