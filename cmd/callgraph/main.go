package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnana997/callgraph/pkg/diag"
	"github.com/gnana997/callgraph/pkg/extractor"
	"github.com/gnana997/callgraph/pkg/indexer"
	mcpserver "github.com/gnana997/callgraph/pkg/mcp"
	"github.com/gnana997/callgraph/pkg/mcplog"
	"github.com/gnana997/callgraph/pkg/parser"
	"github.com/gnana997/callgraph/pkg/parser/queries"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "build":
		runBuild(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "setup":
		runSetup(os.Args[2:])
	case "version":
		fmt.Printf("callgraph %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runBuild scans a project root, builds its call graph, and prints a
// summary (or the full graph with --json).
func runBuild(args []string) {
	var root string
	asJSON := false
	for _, arg := range args {
		switch arg {
		case "--json":
			asJSON = true
		default:
			if !strings.HasPrefix(arg, "--") {
				root = arg
			}
		}
	}
	if root == "" {
		root = "."
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load project config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	parserMgr := parser.NewParserManager(logger)
	defer parserMgr.Close()
	queryMgr := queries.NewQueryManager(parserMgr, logger)
	defer queryMgr.Close()
	ext := extractor.NewExtractor(parserMgr, queryMgr, logger)

	index := indexer.NewCallGraphIndex(indexer.DefaultIndexConfig(), logger)
	defer index.Close()

	scanner := indexer.NewProjectScanner(ext, index, logger)
	if cfg != nil && cfg.WorkerConcurrency > 0 {
		scanner.SetWorkerCount(cfg.WorkerConcurrency)
	}

	stats, err := scanner.ScanWorkspace(root, scanOptionsFromConfig(cfg), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		os.Exit(1)
	}

	graph, diags := scanner.BuildCallGraph(&diag.Collector{})

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(graph)
		return
	}

	fmt.Printf("files indexed: %d (failed: %d)\n", stats.FilesIndexed, stats.FilesFailed)
	fmt.Printf("definitions extracted: %d\n", stats.DefinitionsExtracted)
	fmt.Printf("nodes: %d, edges: %d\n", len(graph.Nodes), len(graph.Edges))
	if len(diags) > 0 {
		fmt.Printf("diagnostics: %d\n", len(diags))
		for _, d := range diags {
			fmt.Printf("  [%s] %s: %s\n", d.Kind, d.FilePath, d.Message)
		}
	}
}

// runServe starts the MCP stdio server.
func runServe(args []string) {
	logPath := ""
	for i, arg := range args {
		if arg == "--log" && i+1 < len(args) {
			logPath = args[i+1]
		}
	}

	mlog, err := mcplog.NewLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open mcp log: %v\n", err)
		os.Exit(1)
	}

	srv := mcpserver.NewServer(mlog, nil)
	defer srv.Close()

	if err := srv.ServeStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: callgraph <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  build      Build a call graph for a project path (default: .)")
	fmt.Println("  serve      Start MCP server")
	fmt.Println("  setup      Configure detected AI agents to use this MCP server")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
}
