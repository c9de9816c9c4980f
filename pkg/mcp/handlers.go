package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/callgraph/pkg/extractor"
	"github.com/gnana997/callgraph/pkg/indexer"
	"github.com/gnana997/callgraph/pkg/source"
)

func textResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func requiredString(req mcp.CallToolRequest, key string) (string, error) {
	args := req.GetArguments()
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("argument %q must be a non-empty string", key)
	}
	return s, nil
}

func requiredInt(req mcp.CallToolRequest, key string) (int, error) {
	args := req.GetArguments()
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("argument %q must be a number", key)
	}
	return int(f), nil
}

// handleBuildCallGraph scans root_path and (re)builds the server's call
// graph, replacing any previously built one.
func (s *Server) handleBuildCallGraph(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := requiredString(req, "root_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	parserMgr := s.parserMgr
	queryMgr := s.queryMgr
	ext := extractor.NewExtractor(parserMgr, queryMgr, s.slogger)
	index := indexer.NewCallGraphIndex(indexer.DefaultIndexConfig(), s.slogger)
	defer index.Close()

	scanner := indexer.NewProjectScanner(ext, index, s.slogger)
	stats, err := scanner.ScanWorkspace(root, indexer.DefaultScanOptions(), nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	graph, diags := scanner.BuildCallGraph(s.diags)

	s.mu.Lock()
	s.project = newProject(graph, scanner)
	s.mu.Unlock()

	return textResult(map[string]any{
		"files_indexed":         stats.FilesIndexed,
		"files_failed":          stats.FilesFailed,
		"definitions_extracted": stats.DefinitionsExtracted,
		"node_count":            len(graph.Nodes),
		"edge_count":            len(graph.Edges),
		"diagnostic_count":      len(diags),
	})
}

// handleGetCallGraph returns the full graph from the most recent build.
func (s *Server) handleGetCallGraph(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	proj := s.project
	s.mu.Unlock()
	if proj == nil {
		return mcp.NewToolResultError("no call graph built yet — call build_call_graph first"), nil
	}
	return textResult(proj.Graph)
}

func (s *Server) handleGetCallsFromDefinition(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	proj := s.project
	s.mu.Unlock()
	if proj == nil {
		return mcp.NewToolResultError("no call graph built yet — call build_call_graph first"), nil
	}
	defID, err := requiredString(req, "definition_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(proj.Graph.GetCallsFromDefinition(defID))
}

func (s *Server) handleGetModuleLevelCalls(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	proj := s.project
	s.mu.Unlock()
	if proj == nil {
		return mcp.NewToolResultError("no call graph built yet — call build_call_graph first"), nil
	}
	filePath, err := requiredString(req, "file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(proj.Graph.GetModuleLevelCalls(filePath))
}

func (s *Server) handleIsDefinitionExported(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	proj := s.project
	s.mu.Unlock()
	if proj == nil {
		return mcp.NewToolResultError("no call graph built yet — call build_call_graph first"), nil
	}
	filePath, err := requiredString(req, "file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := requiredString(req, "name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(map[string]bool{"exported": proj.Graph.IsDefinitionExported(filePath, name)})
}

func (s *Server) handleGoToDefinition(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	proj := s.project
	s.mu.Unlock()
	if proj == nil {
		return mcp.NewToolResultError("no call graph built yet — call build_call_graph first"), nil
	}
	filePath, err := requiredString(req, "file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	row, err := requiredInt(req, "row")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	col, err := requiredInt(req, "column")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	def, ok := proj.GoToDefinition(filePath, source.Position{Row: uint32(row), Column: uint32(col)})
	if !ok {
		return textResult(map[string]any{"found": false})
	}
	return textResult(map[string]any{"found": true, "definition": def})
}

func (s *Server) handleGetImportsWithDefinitions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	proj := s.project
	s.mu.Unlock()
	if proj == nil {
		return mcp.NewToolResultError("no call graph built yet — call build_call_graph first"), nil
	}
	filePath, err := requiredString(req, "file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(proj.GetImportsWithDefinitions(filePath))
}
