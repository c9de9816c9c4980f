package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/callgraph/pkg/callgraph"
	"github.com/gnana997/callgraph/pkg/symbols"
)

// CallGraphIndex caches per-file extraction results (Phase 1
// output, before cross-file linking) so an incremental rebuild only
// re-extracts files a watcher marked dirty, re-running LinkImports and
// callgraph.Builder over the full, mostly-cached snapshot set instead of
// re-parsing the whole project.
//
// **Architecture:**
//   - Hash map for O(1) definition lookups by symbol id
//   - LRU cache for automatic memory management of per-file snapshots
//   - Lazy invalidation (Salsa pattern) for efficiency
//   - Reverse index for efficient file removal
//
// **Thread Safety:**
//   - Uses sync.RWMutex for concurrent access
//   - Multiple readers, single writer pattern
//   - Atomic counters for statistics
type CallGraphIndex struct {
	// Primary storage: symbol id → Definition (O(1) lookups)
	definitions map[string]*symbols.Definition

	// LRU cache: FilePath → FileSnapshot
	// Automatically evicts least recently used files
	fileCache *lru.Cache[string, *FileSnapshot]

	// Reverse index: FilePath → []symbol id
	// Enables efficient cleanup when file is removed
	fileToDefs map[string][]string

	// Lazy invalidation tracking: FilePath → isDirty
	dirtyFiles map[string]bool

	// Thread safety
	mu sync.RWMutex

	// Statistics (atomic for lock-free reads)
	indexedFiles   atomic.Int64
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	evictions      atomic.Int64
	totalIndexTime atomic.Int64 // Microseconds

	// Configuration
	config IndexConfig

	// Logger
	logger *slog.Logger
}

// NewCallGraphIndex creates a new call-graph index.
//
// The index is ready to use immediately. Call Close() when done
// to release resources.
func NewCallGraphIndex(config IndexConfig, logger *slog.Logger) *CallGraphIndex {
	if logger == nil {
		logger = slog.Default()
	}
	if config.MaxCachedFiles == 0 {
		config.MaxCachedFiles = 1000
	}

	cache, err := lru.NewWithEvict(config.MaxCachedFiles, func(key string, value *FileSnapshot) {
		if config.Debug {
			logger.Debug("LRU evicting file", "path", key, "definitions", len(value.Input.Definitions))
		}
	})
	if err != nil {
		// This should never happen with valid MaxCachedFiles
		panic(fmt.Sprintf("failed to create LRU cache: %v", err))
	}

	ci := &CallGraphIndex{
		definitions: make(map[string]*symbols.Definition, 10000),
		fileCache:   cache,
		fileToDefs:  make(map[string][]string, 1000),
		dirtyFiles:  make(map[string]bool, 100),
		config:      config,
		logger:      logger,
	}

	logger.Info("CallGraphIndex initialized", "max_cached_files", config.MaxCachedFiles)
	return ci
}

// AddFileSnapshot adds one file's extraction result to the index.
//
// **Performance:** O(n) where n is number of definitions in file.
//
// **Thread Safety:** Safe for concurrent calls.
func (ci *CallGraphIndex) AddFileSnapshot(filePath string, input callgraph.FileInput, contentHash string) *FileSnapshot {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start).Microseconds()
		ci.totalIndexTime.Add(elapsed)
	}()

	ci.mu.Lock()
	defer ci.mu.Unlock()

	// Remove old snapshot for this file (if any)
	ci.removeFileSnapshotUnsafe(filePath)

	snapshot := &FileSnapshot{
		FilePath:    filePath,
		Input:       input,
		Timestamp:   time.Now().UnixMilli(),
		ContentHash: contentHash,
		TokenCount:  estimateTokenCount(input.Definitions),
	}

	ids := make([]string, 0, len(input.Definitions))
	for _, def := range flattenDefinitions(input.Definitions) {
		ci.definitions[def.ID] = def
		ids = append(ids, def.ID)
	}
	ci.fileToDefs[filePath] = ids

	evicted := ci.fileCache.Add(filePath, snapshot)
	if evicted {
		ci.evictions.Add(1)
	}

	delete(ci.dirtyFiles, filePath)
	ci.indexedFiles.Add(1)

	if ci.config.Debug {
		ci.logger.Debug("Indexed file", "path", filePath, "definitions", len(input.Definitions), "exports", len(input.Exports))
	}

	return snapshot
}

// flattenDefinitions walks each top-level definition's methods/properties/
// parameters/members so every definition the extractor produced gets a
// lookup entry, not just the top-level ones.
func flattenDefinitions(defs []*symbols.Definition) []*symbols.Definition {
	out := make([]*symbols.Definition, 0, len(defs))
	var walk func(*symbols.Definition)
	walk = func(d *symbols.Definition) {
		out = append(out, d)
		for _, m := range d.Methods {
			walk(m)
		}
		for _, p := range d.Properties {
			walk(p)
		}
		for _, p := range d.Parameters {
			walk(p)
		}
		for _, m := range d.Members {
			walk(m)
		}
	}
	for _, d := range defs {
		walk(d)
	}
	return out
}

// GetDefinition retrieves a definition by its symbol id.
//
// **Performance:** O(1) hash map lookup.
//
// **Thread Safety:** Safe for concurrent calls.
func (ci *CallGraphIndex) GetDefinition(id string) (*symbols.Definition, bool) {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	def, found := ci.definitions[id]
	return def, found
}

// GetFileSnapshot retrieves the cached snapshot for a file.
//
// **Performance:** O(1) cache lookup if file is in LRU cache.
//
// **Thread Safety:** Safe for concurrent calls.
func (ci *CallGraphIndex) GetFileSnapshot(filePath string) (*FileSnapshot, bool) {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	snapshot, found := ci.fileCache.Get(filePath)
	if found {
		ci.cacheHits.Add(1)
	} else {
		ci.cacheMisses.Add(1)
	}

	return snapshot, found
}

// GetAllFileSnapshots returns all cached file snapshots.
//
// **Thread Safety:** Safe for concurrent calls. Returns a snapshot.
func (ci *CallGraphIndex) GetAllFileSnapshots() []*FileSnapshot {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	keys := ci.fileCache.Keys()
	result := make([]*FileSnapshot, 0, len(keys))

	for _, key := range keys {
		if fs, ok := ci.fileCache.Peek(key); ok {
			result = append(result, fs)
		}
	}

	return result
}

// GetAllFileInputs returns every cached file's callgraph.FileInput, ready
// to hand to extractor.LinkImports and callgraph.Builder for a project
// rebuild that reuses every file the watcher hasn't marked dirty.
func (ci *CallGraphIndex) GetAllFileInputs() []callgraph.FileInput {
	snapshots := ci.GetAllFileSnapshots()
	out := make([]callgraph.FileInput, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, s.Input)
	}
	return out
}

// FindDefinitions searches for definitions matching a predicate.
//
// **Performance:** O(n) where n is total number of definitions.
//
// **Thread Safety:** Safe for concurrent calls.
func (ci *CallGraphIndex) FindDefinitions(predicate func(*symbols.Definition) bool) []*symbols.Definition {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	result := make([]*symbols.Definition, 0, 100)
	for _, def := range ci.definitions {
		if predicate(def) {
			result = append(result, def)
		}
	}

	return result
}

// InvalidateFile marks a file as dirty for lazy recomputation.
//
// **Lazy Invalidation (Salsa Pattern):**
//   - Does NOT immediately remove the cached snapshot
//   - Marks file as dirty (O(1) operation)
//   - Caller can detect dirty state and reindex if needed
//
// **Thread Safety:** Safe for concurrent calls.
func (ci *CallGraphIndex) InvalidateFile(filePath string) {
	ci.mu.Lock()
	ci.dirtyFiles[filePath] = true
	ci.mu.Unlock()

	if ci.config.Debug {
		ci.logger.Debug("Invalidated file", "path", filePath)
	}
}

// IsDirty checks if a file is marked for recomputation.
//
// **Thread Safety:** Safe for concurrent calls.
func (ci *CallGraphIndex) IsDirty(filePath string) bool {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	return ci.dirtyFiles[filePath]
}

// RemoveFile completely removes a file and its definitions from the index.
//
// **Thread Safety:** Safe for concurrent calls.
func (ci *CallGraphIndex) RemoveFile(filePath string) {
	ci.mu.Lock()
	defer ci.mu.Unlock()

	ci.removeFileSnapshotUnsafe(filePath)

	if ci.config.Debug {
		ci.logger.Debug("Removed file", "path", filePath)
	}
}

// removeFileSnapshotUnsafe removes the snapshot for a file.
//
// **IMPORTANT:** Must be called with write lock held.
func (ci *CallGraphIndex) removeFileSnapshotUnsafe(filePath string) {
	ci.fileCache.Remove(filePath)

	if ids, exists := ci.fileToDefs[filePath]; exists {
		for _, id := range ids {
			delete(ci.definitions, id)
		}
		delete(ci.fileToDefs, filePath)
	}

	delete(ci.dirtyFiles, filePath)
}

// GetStats returns current indexer statistics.
//
// **Thread Safety:** Safe for concurrent calls.
func (ci *CallGraphIndex) GetStats() IndexStats {
	ci.mu.RLock()

	totalDefs := len(ci.definitions)
	cachedFiles := ci.fileCache.Len()
	dirtyFiles := len(ci.dirtyFiles)

	ci.mu.RUnlock()

	hits := ci.cacheHits.Load()
	misses := ci.cacheMisses.Load()
	totalAccesses := hits + misses
	hitRate := 0.0
	if totalAccesses > 0 {
		hitRate = float64(hits) / float64(totalAccesses)
	}

	totalTime := ci.totalIndexTime.Load()
	indexedCount := ci.indexedFiles.Load()
	avgTime := 0.0
	if indexedCount > 0 {
		avgTime = float64(totalTime) / float64(indexedCount) / 1000.0 // Convert μs to ms
	}

	// Rough estimate: 200 bytes per definition + 500KB per cached file
	memoryEstimate := int64(totalDefs)*200 + int64(cachedFiles)*500*1024

	return IndexStats{
		IndexedFiles:        int(indexedCount),
		TotalDefinitions:    totalDefs,
		CachedFiles:         cachedFiles,
		DirtyFiles:          dirtyFiles,
		CacheHits:           hits,
		CacheMisses:         misses,
		CacheHitRate:        hitRate,
		Evictions:           ci.evictions.Load(),
		MemoryEstimateBytes: memoryEstimate,
		AverageIndexTimeMs:  avgTime,
	}
}

// ComputeContentHash computes SHA-256 hash of file content.
//
// **Use Case:** Detect if file content actually changed, to skip
// reindexing of unchanged files.
func ComputeContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// estimateTokenCount provides a rough estimate of tokens in file.
//
// Heuristic: name length plus a fixed amount per parameter/method
// (conservative estimate, not an actual tokenizer run).
func estimateTokenCount(defs []*symbols.Definition) int {
	totalChars := 0
	for _, def := range defs {
		totalChars += len(def.Name) * 10
		totalChars += len(def.Parameters) * 50
		totalChars += len(def.Methods) * 50
	}
	return totalChars / 4
}

// Close releases all resources held by the index.
//
// **IMPORTANT:** Index cannot be used after calling Close().
//
// **Thread Safety:** Safe to call, but caller must ensure no
// concurrent operations are in progress.
func (ci *CallGraphIndex) Close() {
	ci.mu.Lock()
	defer ci.mu.Unlock()

	ci.definitions = nil
	ci.fileCache.Purge()
	ci.fileToDefs = nil
	ci.dirtyFiles = nil

	ci.logger.Info("CallGraphIndex closed")
}
