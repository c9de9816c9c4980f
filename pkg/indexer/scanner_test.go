package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/callgraph/pkg/diag"
	"github.com/gnana997/callgraph/pkg/extractor"
	"github.com/gnana997/callgraph/pkg/parser"
	"github.com/gnana997/callgraph/pkg/parser/queries"
	"github.com/gnana997/callgraph/pkg/util"
)

// TestWorkerPool_Basic verifies basic worker pool functionality
func TestWorkerPool_Basic(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	parserMgr := parser.NewParserManager(logger)
	defer parserMgr.Close()

	queryMgr := queries.NewQueryManager(parserMgr, logger)
	defer queryMgr.Close()

	ext := extractor.NewExtractor(parserMgr, queryMgr, logger)

	pool := NewWorkerPool(4, ext, logger)
	pool.Start()
	defer pool.Stop()

	// Note: these files don't exist, so they'll error — this tests error
	// handling in the worker pool itself, not a real extraction.
	testFiles := []string{
		"test1.ts",
		"test2.ts",
		"test3.ts",
	}

	for i, file := range testFiles {
		err := pool.Submit(FileJob{FilePath: file, JobID: i})
		assert.NoError(t, err)
	}

	errorCount := 0
	for i := 0; i < len(testFiles); i++ {
		select {
		case <-pool.Results():
			t.Fail() // Shouldn't get results for non-existent files
		case <-pool.Errors():
			errorCount++
		}
	}

	assert.Equal(t, len(testFiles), errorCount)
	stats := pool.GetStats()
	assert.Equal(t, int64(3), stats.JobsSubmitted)
	assert.Equal(t, int64(3), stats.JobsFailed)
}

// TestFileWatcher_Basic tests basic file watcher functionality
func TestFileWatcher_Basic(t *testing.T) {
	t.Skip("File watcher test requires manual file modifications - skipping in automated tests")

	logger := util.NewLogger(util.DefaultLoggerConfig())
	parserMgr := parser.NewParserManager(logger)
	defer parserMgr.Close()

	queryMgr := queries.NewQueryManager(parserMgr, logger)
	defer queryMgr.Close()

	ext := extractor.NewExtractor(parserMgr, queryMgr, logger)
	index := NewCallGraphIndex(DefaultIndexConfig(), logger)
	defer index.Close()

	watcher := NewFileWatcher(index, ext, DefaultWatchOptions(), logger)

	tempDir := t.TempDir()

	err := watcher.Start(tempDir)
	require.NoError(t, err)
	defer watcher.Stop()

	stats := watcher.GetStats()
	assert.True(t, stats.IsRunning)
}

// TestProjectScanner_ScanAndBuild exercises the full discovery → parallel
// extraction → link → build pipeline against real files on disk.
func TestProjectScanner_ScanAndBuild(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	parserMgr := parser.NewParserManager(logger)
	defer parserMgr.Close()

	queryMgr := queries.NewQueryManager(parserMgr, logger)
	defer queryMgr.Close()

	ext := extractor.NewExtractor(parserMgr, queryMgr, logger)
	index := NewCallGraphIndex(DefaultIndexConfig(), logger)
	defer index.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "widget.js"), []byte(`
class Widget {
  constructor(name) {
    this.name = name;
  }
  render() {
    return helper(this.name);
  }
}

function helper(x) {
  return x;
}

module.exports = { Widget };
`), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.js"), []byte(`
const { Widget } = require('./widget');

function main() {
  const w = new Widget('demo');
  w.render();
}
`), 0o644))

	scanner := NewProjectScanner(ext, index, logger)
	stats, err := scanner.ScanWorkspace(dir, DefaultScanOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesIndexed)
	assert.Equal(t, 0, stats.FilesFailed)
	assert.Greater(t, stats.DefinitionsExtracted, 0)

	graph, diags := scanner.BuildCallGraph(&diag.Collector{})
	require.NotNil(t, graph)
	assert.Empty(t, diags)
	assert.NotEmpty(t, graph.Nodes)
}
