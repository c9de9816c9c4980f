package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gnana997/callgraph/pkg/callgraph"
	"github.com/gnana997/callgraph/pkg/diag"
	"github.com/gnana997/callgraph/pkg/extractor"
	"github.com/gnana997/callgraph/pkg/parser"
	"github.com/gnana997/callgraph/pkg/util"
)

// ProjectScanner discovers every source file under a project root and
// extracts them in parallel, caching the result in a CallGraphIndex.
//
// **Three-Phase Pipeline:**
//  1. File Discovery - Walk directory tree and find matching files
//  2. Parallel Extraction - Parse + query + normalize using a worker pool
//  3. Indexing - Store FileInputs in the CallGraphIndex
//
// **Usage:**
//
//	scanner := NewProjectScanner(extractor, index, logger)
//	stats, err := scanner.ScanWorkspace(
//	    "/path/to/project",
//	    DefaultScanOptions(),
//	    func(indexed, total int, file string) {
//	        fmt.Printf("Progress: %d/%d - %s\n", indexed, total, file)
//	    },
//	)
//	graph, diags := scanner.BuildCallGraph(&diag.Collector{})
type ProjectScanner struct {
	extractor *extractor.Extractor
	index     *CallGraphIndex
	logger    *slog.Logger

	// workerOverride, when > 0, replaces util.GetOptimalPoolSize() as the
	// worker pool size (the project config's worker concurrency override).
	workerOverride int
}

// NewProjectScanner creates a new project scanner.
func NewProjectScanner(ext *extractor.Extractor, index *CallGraphIndex, logger *slog.Logger) *ProjectScanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectScanner{
		extractor: ext,
		index:     index,
		logger:    logger,
	}
}

// SetWorkerCount overrides the worker pool size used by ScanWorkspace. A
// value <= 0 reverts to util.GetOptimalPoolSize() auto-detection.
func (ws *ProjectScanner) SetWorkerCount(n int) {
	ws.workerOverride = n
}

// ScanWorkspace discovers and extracts every matching file under
// rootPath, caching each file's FileInput in the scanner's
// CallGraphIndex. Call BuildCallGraph afterward to link imports and run
// the two-phase builder over the cached set.
//
// **Performance:** Uses a worker pool sized by util.GetOptimalPoolSize()
// for parallel extraction.
func (ws *ProjectScanner) ScanWorkspace(
	rootPath string,
	options ScanOptions,
	progressCallback ProgressCallback,
) (*ScanStats, error) {
	startTime := time.Now()
	stats := &ScanStats{
		StartTime: startTime,
		Errors:    make([]FileError, 0),
	}

	ws.logger.Info("Starting workspace scan", "root", rootPath)

	discoveryStart := time.Now()
	files, err := ws.discoverFiles(rootPath, options)
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}
	stats.FilesDiscovered = len(files)
	stats.DiscoveryTimeMs = time.Since(discoveryStart).Milliseconds()

	ws.logger.Info("File discovery complete",
		"files_found", len(files),
		"duration_ms", stats.DiscoveryTimeMs)

	if len(files) == 0 {
		ws.logger.Warn("No files found matching criteria")
		stats.EndTime = time.Now()
		stats.TotalTimeMs = time.Since(startTime).Milliseconds()
		return stats, nil
	}

	// Module path resolution only resolves
	// specifiers against files that actually exist in the project.
	ws.extractor.SetKnownFiles(files)

	indexingStart := time.Now()
	err = ws.processFilesParallel(files, stats, progressCallback)
	if err != nil {
		return nil, fmt.Errorf("file processing failed: %w", err)
	}
	stats.IndexingTimeMs = time.Since(indexingStart).Milliseconds()

	stats.EndTime = time.Now()
	stats.TotalTimeMs = time.Since(startTime).Milliseconds()

	if stats.FilesIndexed > 0 {
		stats.AverageFileTimeMs = float64(stats.IndexingTimeMs) / float64(stats.FilesIndexed)
		stats.FilesPerSecond = float64(stats.FilesIndexed) / (float64(stats.IndexingTimeMs) / 1000.0)
	}

	if stats.FilesDiscovered > 0 {
		stats.SuccessRate = float64(stats.FilesIndexed) / float64(stats.FilesDiscovered)
	}

	ws.logger.Info("Workspace scan complete",
		"files_indexed", stats.FilesIndexed,
		"files_failed", stats.FilesFailed,
		"definitions_extracted", stats.DefinitionsExtracted,
		"duration_ms", stats.TotalTimeMs,
		"files_per_second", fmt.Sprintf("%.1f", stats.FilesPerSecond))

	return stats, nil
}

// BuildCallGraph links every cached file's imports against the rest of
// the project and runs the two-phase builder over the
// result. Call after ScanWorkspace (or after incremental reindexing via
// FileWatcher) to produce the project's call graph.
func (ws *ProjectScanner) BuildCallGraph(diags *diag.Collector) (*callgraph.CallGraph, []diag.Diagnostic) {
	inputs := ws.index.GetAllFileInputs()
	extractor.LinkImports(inputs)
	return callgraph.NewBuilder(diags).BuildSync(inputs)
}

// discoverFiles walks the directory tree and finds all matching files.
func (ws *ProjectScanner) discoverFiles(rootPath string, options ScanOptions) ([]string, error) {
	var files []string

	for _, pattern := range options.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	for _, pattern := range options.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			ws.logger.Warn("Walk error", "path", path, "error", err)
			return nil // Continue walking
		}

		relPath, err := filepath.Rel(rootPath, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		for _, pattern := range options.Exclude {
			matched, _ := doublestar.PathMatch(pattern, relPath)
			if matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		if len(options.Include) > 0 {
			matched := false
			for _, pattern := range options.Include {
				if m, _ := doublestar.PathMatch(pattern, relPath); m {
					matched = true
					break
				}
			}
			if !matched {
				return nil
			}
		}

		if parser.DetectLanguage(path) == parser.LanguageUnknown {
			return nil
		}

		files = append(files, path)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// processFilesParallel extracts files using a worker pool.
func (ws *ProjectScanner) processFilesParallel(
	files []string,
	stats *ScanStats,
	progressCallback ProgressCallback,
) error {
	totalFiles := len(files)

	numWorkers := ws.workerOverride
	if numWorkers <= 0 {
		numWorkers = util.GetOptimalPoolSize()
	}
	stats.WorkerCount = numWorkers

	pool := NewWorkerPool(numWorkers, ws.extractor, ws.logger)
	pool.Start()
	defer pool.Stop()

	indexed := atomic.Int32{}
	failed := atomic.Int32{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Result collector goroutine.
	// **CRITICAL:** Start this BEFORE submitting jobs to prevent deadlock!
	// If we submit jobs first, the submission loop can block when the jobs
	// channel fills up, preventing the result collector from ever starting.
	done := make(chan struct{})
	go func() {
		defer close(done)
		ws.logger.Debug("Result collector started", "total_expected", totalFiles)

		for {
			select {
			case <-ctx.Done():
				ws.logger.Debug("Result collector cancelled via context")
				return

			case result, ok := <-pool.Results():
				if !ok {
					ws.logger.Debug("Result collector - results channel closed")
					return
				}

				ws.logger.Debug("Result collector - received result", "file", result.FilePath, "job_id", result.JobID)

				snapshot := ws.index.AddFileSnapshot(result.FilePath, result.Input, result.ContentHash)

				stats.DefinitionsExtracted += len(result.Input.Definitions)
				stats.ImportsExtracted += len(result.Input.FileContext.Imports.LocalNames())
				stats.ExportsExtracted += len(result.Input.Exports)
				stats.FilesIndexed++
				_ = snapshot

				count := indexed.Add(1)
				ws.logger.Debug("Result collector - indexed file", "count", count, "total", totalFiles, "failed", failed.Load())
				if progressCallback != nil {
					progressCallback(int(count), totalFiles, result.FilePath)
				}

				if int(count)+int(failed.Load()) >= totalFiles {
					ws.logger.Debug("Result collector - all files processed, cancelling", "indexed", count, "failed", failed.Load())
					cancel()
					return
				}

			case fileErr, ok := <-pool.Errors():
				if !ok {
					ws.logger.Debug("Result collector - errors channel closed")
					return
				}

				ws.logger.Debug("Result collector - received error", "file", fileErr.FilePath)

				stats.Errors = append(stats.Errors, fileErr)
				stats.FilesFailed++

				ws.logger.Warn("File processing failed",
					"file", fileErr.FilePath,
					"error", fileErr.Error)

				count := failed.Add(1)
				ws.logger.Debug("Result collector - file failed", "indexed", indexed.Load(), "failed", count, "total", totalFiles)
				if int(indexed.Load())+int(count) >= totalFiles {
					ws.logger.Debug("Result collector - all files processed (with errors), cancelling")
					cancel()
					return
				}
			}
		}
	}()

	ws.logger.Debug("Submitting jobs to worker pool", "count", totalFiles)
	for i, file := range files {
		err := pool.Submit(FileJob{
			FilePath: file,
			JobID:    i,
		})
		if err != nil {
			return fmt.Errorf("failed to submit job for %s: %w", file, err)
		}
	}

	ws.logger.Debug("Calling FinishSubmitting", "total_jobs", totalFiles)
	pool.FinishSubmitting()
	ws.logger.Debug("FinishSubmitting completed, waiting for results")

	ws.logger.Debug("Main thread waiting for result collector to finish")
	<-done
	ws.logger.Debug("Result collector finished", "indexed", indexed.Load(), "failed", failed.Load())

	return nil
}

// GetIndex returns the scanner's CallGraphIndex.
//
// Useful for accessing cached snapshots after scanning, e.g. for
// incremental rebuilds via FileWatcher.
func (ws *ProjectScanner) GetIndex() *CallGraphIndex {
	return ws.index
}
