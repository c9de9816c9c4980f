package mcp

import "github.com/mark3labs/mcp-go/mcp"

// buildCallGraphTool scans a project root and (re)builds its call graph.
func buildCallGraphTool() mcp.Tool {
	return mcp.NewTool("build_call_graph",
		mcp.WithDescription("Scan a project root (JS/TS/Python/Rust) and build its call graph"),
		mcp.WithString("root_path", mcp.Required(), mcp.Description("Absolute or cwd-relative path to the project root")),
	)
}

// getCallGraphTool returns the most recently built call graph in full.
func getCallGraphTool() mcp.Tool {
	return mcp.NewTool("get_call_graph",
		mcp.WithDescription("Return the full call graph from the most recent build_call_graph call"),
	)
}

// getCallsFromDefinitionTool exposes callgraph.GetCallsFromDefinition.
func getCallsFromDefinitionTool() mcp.Tool {
	return mcp.NewTool("get_calls_from_definition",
		mcp.WithDescription("Return the ordered calls a definition makes"),
		mcp.WithString("definition_id", mcp.Required(), mcp.Description("Symbol id, e.g. src/a.js#C.greet")),
	)
}

// getModuleLevelCallsTool exposes callgraph.GetModuleLevelCalls.
func getModuleLevelCallsTool() mcp.Tool {
	return mcp.NewTool("get_module_level_calls",
		mcp.WithDescription("Return the calls made at module load time (outside any function/class)"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("File path as it appears in the built graph")),
	)
}

// isDefinitionExportedTool exposes callgraph.IsDefinitionExported.
func isDefinitionExportedTool() mcp.Tool {
	return mcp.NewTool("is_definition_exported",
		mcp.WithDescription("Report whether a file exports a given top-level name"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("File path as it appears in the built graph")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Top-level definition name")),
	)
}

// goToDefinitionTool exposes callgraph.Project.GoToDefinition.
func goToDefinitionTool() mcp.Tool {
	return mcp.NewTool("go_to_definition",
		mcp.WithDescription("Resolve the call site at a file position to the definition it targets"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("File path as it appears in the built graph")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Zero-based row of the call site")),
		mcp.WithNumber("column", mcp.Required(), mcp.Description("Zero-based column of the call site")),
	)
}

// getImportsWithDefinitionsTool exposes callgraph.Project.GetImportsWithDefinitions.
func getImportsWithDefinitionsTool() mcp.Tool {
	return mcp.NewTool("get_imports_with_definitions",
		mcp.WithDescription("Return a file's import bindings resolved against the project"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("File path as it appears in the built graph")),
	)
}
