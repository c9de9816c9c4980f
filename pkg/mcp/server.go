package mcp

import (
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/callgraph/pkg/callgraph"
	"github.com/gnana997/callgraph/pkg/diag"
	"github.com/gnana997/callgraph/pkg/indexer"
	"github.com/gnana997/callgraph/pkg/mcplog"
	"github.com/gnana997/callgraph/pkg/parser"
	"github.com/gnana997/callgraph/pkg/parser/queries"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server for callgraph, exposing call-graph
// build and query tools over stdio.
//
// Keeps the MCPServer-plus-optional-logging-middleware shape, with the
// tool set swapped for build_call_graph/get_call_graph/query tools.
type Server struct {
	mcpServer *server.MCPServer
	logger    *mcplog.Logger // may be nil if logging is disabled
	slogger   *slog.Logger

	parserMgr *parser.ParserManager
	queryMgr  *queries.QueryManager
	diags     *diag.Collector

	mu      sync.Mutex
	project *callgraph.Project
}

// NewServer creates a new MCP server. Pass nil for logger to disable
// per-tool-call JSONL logging.
func NewServer(logger *mcplog.Logger, slogger *slog.Logger) *Server {
	if slogger == nil {
		slogger = slog.Default()
	}

	parserMgr := parser.NewParserManager(slogger)
	queryMgr := queries.NewQueryManager(parserMgr, slogger)

	s := &Server{
		logger:    logger,
		slogger:   slogger,
		parserMgr: parserMgr,
		queryMgr:  queryMgr,
		diags:     &diag.Collector{},
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("callgraph", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: buildCallGraphTool(), Handler: s.handleBuildCallGraph},
		server.ServerTool{Tool: getCallGraphTool(), Handler: s.handleGetCallGraph},
		server.ServerTool{Tool: getCallsFromDefinitionTool(), Handler: s.handleGetCallsFromDefinition},
		server.ServerTool{Tool: getModuleLevelCallsTool(), Handler: s.handleGetModuleLevelCalls},
		server.ServerTool{Tool: isDefinitionExportedTool(), Handler: s.handleIsDefinitionExported},
		server.ServerTool{Tool: goToDefinitionTool(), Handler: s.handleGoToDefinition},
		server.ServerTool{Tool: getImportsWithDefinitionsTool(), Handler: s.handleGetImportsWithDefinitions},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Close shuts down the parser/query managers and the logger, if any.
// Should be deferred after NewServer.
func (s *Server) Close() error {
	s.queryMgr.Close()
	s.parserMgr.Close()
	if s.logger != nil {
		return s.logger.Close()
	}
	return nil
}

// newProject bundles a finished scan's CallGraph with the FileInputs the
// scanner cached, for go_to_definition/get_imports_with_definitions.
func newProject(graph *callgraph.CallGraph, scanner *indexer.ProjectScanner) *callgraph.Project {
	inputs := scanner.GetIndex().GetAllFileInputs()
	return callgraph.NewProject(graph, inputs)
}
