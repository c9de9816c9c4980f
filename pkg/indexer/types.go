package indexer

import (
	"time"

	"github.com/gnana997/callgraph/pkg/callgraph"
)

// FileSnapshot is the cached extraction result for a single file: the
// callgraph.FileInput the extractor produced, plus bookkeeping the index
// needs for LRU eviction and lazy invalidation.
type FileSnapshot struct {
	// FilePath is the absolute path to the file.
	FilePath string

	// Input is what pkg/extractor.ExtractFile returned for this file:
	// its scope/import context, definitions, references, and exports.
	Input callgraph.FileInput

	// Timestamp when the file was indexed (Unix milliseconds).
	Timestamp int64

	// ContentHash is SHA-256 hash of file content (for change detection).
	// Optional - may be empty if not computed.
	ContentHash string

	// TokenCount is approximate number of tokens in file.
	// Used for chunking decisions in later phases.
	TokenCount int
}

// IndexConfig configures the call-graph index behavior.
type IndexConfig struct {
	// MaxCachedFiles is the maximum number of files to keep in the LRU cache.
	// When the cache is full, least recently used files are evicted.
	// Default: 1000 files
	MaxCachedFiles int

	// Debug enables verbose logging
	Debug bool
}

// DefaultIndexConfig returns the default configuration.
func DefaultIndexConfig() IndexConfig {
	return IndexConfig{
		MaxCachedFiles: 1000,
		Debug:          false,
	}
}

// IndexStats provides statistics about the indexer state.
//
// These metrics are useful for monitoring performance, debugging,
// and understanding cache effectiveness.
type IndexStats struct {
	// IndexedFiles is the total number of files indexed (including evicted)
	IndexedFiles int

	// TotalDefinitions is the count of definitions currently in the index
	TotalDefinitions int

	// CachedFiles is the number of files currently in the LRU cache
	CachedFiles int

	// DirtyFiles is the number of files marked for recomputation
	DirtyFiles int

	// CacheHits is the number of successful cache lookups
	CacheHits int64

	// CacheMisses is the number of failed cache lookups
	CacheMisses int64

	// CacheHitRate is the percentage of cache hits (0.0 - 1.0)
	CacheHitRate float64

	// Evictions is the number of LRU evictions that have occurred
	Evictions int64

	// MemoryEstimateBytes is rough estimate of memory usage
	// Calculation: (definitions * 200) + (cached files * 500KB)
	MemoryEstimateBytes int64

	// AverageIndexTimeMs is the average time to index a file
	AverageIndexTimeMs float64
}

// ScanOptions configures workspace scanning behavior.
type ScanOptions struct {
	// Include patterns (glob syntax, e.g., "**/*.ts")
	// If empty, uses default language extensions
	Include []string

	// Exclude patterns (glob syntax, e.g., "node_modules/**")
	// Used exactly as given; the default exclusions come from DefaultScanOptions
	Exclude []string

	// RespectGitignore is true in DefaultScanOptions. File discovery does
	// not read it: .gitignore files are not consulted.
	RespectGitignore bool

	// MaxDepth is 0 in DefaultScanOptions. File discovery does not read it
	// and walks directories to any depth.
	MaxDepth int

	// FollowSymlinks is false in DefaultScanOptions. File discovery does not
	// read it and never follows symbolic links to directories.
	FollowSymlinks bool
}

// DefaultScanOptions returns recommended scan options, covering every
// language names.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		Include: []string{
			"**/*.ts",
			"**/*.tsx",
			"**/*.js",
			"**/*.jsx",
			"**/*.py",
			"**/*.rs",
		},
		Exclude: []string{
			"node_modules/**",
			".git/**",
			"dist/**",
			"build/**",
			"target/**",
			"__pycache__/**",
			".venv/**",
			"venv/**",
			".vscode/**",
			"coverage/**",
			"out/**",
			".next/**",
		},
		RespectGitignore: true,
		MaxDepth:         0,
		FollowSymlinks:   false,
	}
}

// ScanStats contains statistics about a workspace scan.
type ScanStats struct {
	// FilesDiscovered is the total number of files found
	FilesDiscovered int

	// FilesIndexed is the number of files successfully indexed
	FilesIndexed int

	// FilesFailed is the number of files that failed to index
	FilesFailed int

	// FilesSkipped is the number of files skipped (e.g., excluded)
	FilesSkipped int

	// DefinitionsExtracted is the total number of definitions extracted
	DefinitionsExtracted int

	// ImportsExtracted is the total number of import bindings extracted
	ImportsExtracted int

	// ExportsExtracted is the total number of exports extracted
	ExportsExtracted int

	// TotalTimeMs is the total scan duration in milliseconds
	TotalTimeMs int64

	// DiscoveryTimeMs is time spent discovering files
	DiscoveryTimeMs int64

	// IndexingTimeMs is time spent indexing files
	IndexingTimeMs int64

	// AverageFileTimeMs is average time per file
	AverageFileTimeMs float64

	// FilesPerSecond is the throughput rate
	FilesPerSecond float64

	// PeakMemoryBytes is the peak memory usage during scan
	PeakMemoryBytes int64

	// WorkerCount is the number of workers used
	WorkerCount int

	// SuccessRate is the percentage of files successfully indexed (0.0 - 1.0)
	SuccessRate float64

	// Errors contains per-file errors (if any)
	Errors []FileError

	// Cancelled indicates if the scan was cancelled
	Cancelled bool

	// StartTime is when the scan started
	StartTime time.Time

	// EndTime is when the scan completed
	EndTime time.Time
}

// FileError represents an error that occurred while processing a file.
type FileError struct {
	FilePath string
	Error    error
}

// ProgressCallback is called periodically during workspace scanning.
//
// Parameters:
//   - indexed: Number of files indexed so far
//   - total: Total number of files to index
//   - currentFile: Path of the file currently being indexed
type ProgressCallback func(indexed, total int, currentFile string)

// WatchOptions configures file watching behavior.
type WatchOptions struct {
	// DebounceMs is the debounce delay in milliseconds
	// Multiple rapid changes are grouped into a single reindex
	// Default: 200ms
	DebounceMs int

	// IgnorePatterns are patterns to ignore during watching
	// Uses the same doublestar glob syntax as ScanOptions.Exclude, matched
	// against the base name of each file or directory
	IgnorePatterns []string

	// BatchSize is 1 in DefaultWatchOptions. The watcher does not read it:
	// each file is reindexed on its own once its debounce delay expires.
	BatchSize int
}

// DefaultWatchOptions returns recommended watch options.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		DebounceMs: 200,
		IgnorePatterns: []string{
			"**/*.swp",
			"**/*.tmp",
			"**/*~",
			".git/**",
		},
		BatchSize: 1,
	}
}

// WatchEvent represents a file system change event.
type WatchEvent struct {
	// FilePath is the absolute path to the changed file
	FilePath string

	// Op is the operation that occurred (Create, Write, Remove, Rename, Chmod)
	Op string

	// Timestamp is when the event occurred
	Timestamp time.Time
}
