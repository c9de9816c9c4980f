package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/callgraph/pkg/callgraph"
	"github.com/gnana997/callgraph/pkg/diag"
	"github.com/gnana997/callgraph/pkg/refs"
	"github.com/gnana997/callgraph/pkg/resolve"
	"github.com/gnana997/callgraph/pkg/scopetree"
	"github.com/gnana997/callgraph/pkg/source"
	"github.com/gnana997/callgraph/pkg/symbols"
)

func rng(sr, sc, er, ec uint32) source.Range {
	return source.Range{Start: source.Position{Row: sr, Column: sc}, End: source.Position{Row: er, Column: ec}}
}

// buildTestGraph constructs class C { greet() { return 1 } } function f()
// { const c = new C(); c.greet(); }, the same fixture pkg/callgraph uses.
func buildTestGraph() (*callgraph.CallGraph, callgraph.FileInput) {
	tree := scopetree.NewTree("a.js", rng(0, 0, 100, 0))
	fc := resolve.NewFileContext("a.js", "javascript", tree)

	greet := &symbols.Definition{ID: "a.js#C.greet", Name: "greet", Kind: symbols.KindMethod, FilePath: "a.js",
		Range: rng(1, 16, 1, 21), EnclosingRange: rng(1, 16, 1, 36)}
	class := &symbols.Definition{ID: "a.js#C", Name: "C", Kind: symbols.KindClass, FilePath: "a.js",
		Range: rng(1, 6, 1, 7), EnclosingRange: rng(1, 0, 1, 38), Methods: []*symbols.Definition{greet}, IsExported: true}
	fn := &symbols.Definition{ID: "a.js#f", Name: "f", Kind: symbols.KindFunction, FilePath: "a.js",
		Range: rng(2, 9, 2, 10), EnclosingRange: rng(2, 0, 2, 60)}

	assign := &refs.Reference{
		Type: refs.TypeAssignment, Kind: refs.KindAssignment, Name: "c",
		Location: rng(2, 17, 2, 34), AssignmentTarget: "c", ScopeID: tree.RootID,
	}
	construct := &refs.Reference{
		Type: refs.TypeConstruct, Kind: refs.KindConstructorCall, Name: "C",
		Location: rng(2, 25, 2, 33), ScopeID: tree.RootID,
	}
	methodCall := &refs.Reference{
		Type: refs.TypeCall, Kind: refs.KindMethodCall, Name: "greet",
		Location: rng(2, 36, 2, 47), ScopeID: tree.RootID,
		ReceiverName: "c", PropertyChain: []string{"c"},
	}

	in := callgraph.FileInput{
		FilePath:    "a.js",
		FileContext: fc,
		Definitions: []*symbols.Definition{class, fn},
		References:  []*refs.Reference{assign, construct, methodCall},
		Exports:     []callgraph.ExportResult{{Name: "C", Def: class}},
	}

	graph, _ := callgraph.NewBuilder(&diag.Collector{}).BuildSync([]callgraph.FileInput{in})
	return graph, in
}

func testServerWithGraph() *Server {
	s := &Server{slogger: nil, diags: &diag.Collector{}}
	graph, in := buildTestGraph()
	s.project = callgraph.NewProject(graph, []callgraph.FileInput{in})
	return s
}

func callResult(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestHandleGetCallGraph_NotBuiltYet(t *testing.T) {
	s := &Server{}
	result, err := s.handleGetCallGraph(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleGetCallGraph_ReturnsGraph(t *testing.T) {
	s := testServerWithGraph()
	result, err := s.handleGetCallGraph(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var graph callgraph.CallGraph
	require.NoError(t, json.Unmarshal([]byte(callResult(t, result)), &graph))
	assert.Contains(t, graph.Nodes, "a.js#f")
	assert.Contains(t, graph.Nodes, "a.js#C.greet")
}

func toolReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestHandleGetCallsFromDefinition(t *testing.T) {
	s := testServerWithGraph()
	result, err := s.handleGetCallsFromDefinition(context.Background(), toolReq(map[string]any{"definition_id": "a.js#f"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var calls []callgraph.CallRef
	require.NoError(t, json.Unmarshal([]byte(callResult(t, result)), &calls))
	assert.NotEmpty(t, calls)
}

func TestHandleGetCallsFromDefinition_MissingArg(t *testing.T) {
	s := testServerWithGraph()
	result, err := s.handleGetCallsFromDefinition(context.Background(), toolReq(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleIsDefinitionExported(t *testing.T) {
	s := testServerWithGraph()
	result, err := s.handleIsDefinitionExported(context.Background(), toolReq(map[string]any{
		"file_path": "a.js", "name": "C",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var body map[string]bool
	require.NoError(t, json.Unmarshal([]byte(callResult(t, result)), &body))
	assert.True(t, body["exported"])
}

func TestHandleGoToDefinition_ResolvesCallSite(t *testing.T) {
	s := testServerWithGraph()
	result, err := s.handleGoToDefinition(context.Background(), toolReq(map[string]any{
		"file_path": "a.js", "row": float64(2), "column": float64(40),
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(callResult(t, result)), &body))
	assert.Equal(t, true, body["found"])
}

func TestHandleGetImportsWithDefinitions_Empty(t *testing.T) {
	s := testServerWithGraph()
	result, err := s.handleGetImportsWithDefinitions(context.Background(), toolReq(map[string]any{"file_path": "a.js"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "[]", callResult(t, result))
}
