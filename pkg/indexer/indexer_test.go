package indexer

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/callgraph/pkg/callgraph"
	"github.com/gnana997/callgraph/pkg/resolve"
	"github.com/gnana997/callgraph/pkg/scopetree"
	"github.com/gnana997/callgraph/pkg/source"
	"github.com/gnana997/callgraph/pkg/symbols"
	"github.com/gnana997/callgraph/pkg/util"
)

// buildFileInput constructs a minimal but realistic callgraph.FileInput
// for a file declaring the given top-level function names, mirroring
// what pkg/extractor.ExtractFile would have produced.
func buildFileInput(filePath string, names ...string) callgraph.FileInput {
	fileRange := source.Range{End: source.Position{Row: 100}}
	tree := scopetree.NewTree(filePath, fileRange)
	fc := resolve.NewFileContext(filePath, "javascript", tree)

	defs := make([]*symbols.Definition, 0, len(names))
	var exports []callgraph.ExportResult
	for i, name := range names {
		def := &symbols.Definition{
			ID:       fmt.Sprintf("%s#%s", filePath, name),
			Name:     name,
			Kind:     symbols.KindFunction,
			FilePath: filePath,
			Range:    source.Range{Start: source.Position{Row: uint32(i)}},
		}
		defs = append(defs, def)
		fc.ByID[def.ID] = def
		exports = append(exports, callgraph.ExportResult{Name: name, Def: def})
	}

	return callgraph.FileInput{
		FilePath:    filePath,
		FileContext: fc,
		Definitions: defs,
		Exports:     exports,
	}
}

func TestNewCallGraphIndex(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	config := DefaultIndexConfig()

	index := NewCallGraphIndex(config, logger)
	require.NotNil(t, index)
	defer index.Close()

	assert.NotNil(t, index.definitions)
	assert.NotNil(t, index.fileCache)
	assert.NotNil(t, index.fileToDefs)
	assert.NotNil(t, index.dirtyFiles)
	assert.Equal(t, config.MaxCachedFiles, index.config.MaxCachedFiles)
}

func TestAddFileSnapshot_Basic(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	index := NewCallGraphIndex(DefaultIndexConfig(), logger)
	defer index.Close()

	filePath := "TestFile.ts"
	input := buildFileInput(filePath, "a", "b", "c")

	snapshot := index.AddFileSnapshot(filePath, input, "hash1")

	require.NotNil(t, snapshot)
	assert.Equal(t, filePath, snapshot.FilePath)
	assert.Equal(t, 3, len(snapshot.Input.Definitions))
	assert.Greater(t, snapshot.Timestamp, int64(0))

	for _, def := range input.Definitions {
		retrieved, found := index.GetDefinition(def.ID)
		assert.True(t, found)
		assert.Equal(t, def.Name, retrieved.Name)
	}

	cached, found := index.GetFileSnapshot(filePath)
	assert.True(t, found)
	assert.Equal(t, snapshot, cached)

	stats := index.GetStats()
	assert.Equal(t, 3, stats.TotalDefinitions)
	assert.Equal(t, 1, stats.CachedFiles)
	assert.Equal(t, 1, stats.IndexedFiles)
}

func TestGetDefinition_O1Lookup(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	index := NewCallGraphIndex(DefaultIndexConfig(), logger)
	defer index.Close()

	for i := 0; i < 20; i++ {
		filePath := fmt.Sprintf("File%d.ts", i)
		index.AddFileSnapshot(filePath, buildFileInput(filePath, "f0", "f1"), "")
	}

	for i := 0; i < 20; i++ {
		for _, name := range []string{"f0", "f1"} {
			id := fmt.Sprintf("File%d.ts#%s", i, name)
			def, found := index.GetDefinition(id)
			assert.True(t, found, "definition %s should exist", id)
			assert.Equal(t, name, def.Name)
		}
	}

	stats := index.GetStats()
	assert.Equal(t, 40, stats.TotalDefinitions)
	assert.Equal(t, 20, stats.IndexedFiles)
}

func TestInvalidateFile_LazyPattern(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	index := NewCallGraphIndex(DefaultIndexConfig(), logger)
	defer index.Close()

	filePath := "TestFile.ts"
	index.AddFileSnapshot(filePath, buildFileInput(filePath, "a"), "")

	assert.False(t, index.IsDirty(filePath))

	index.InvalidateFile(filePath)
	assert.True(t, index.IsDirty(filePath))

	// Still accessible (lazy invalidation!)
	def, found := index.GetDefinition("TestFile.ts#a")
	assert.True(t, found)
	assert.NotNil(t, def)

	// Re-adding clears the dirty flag
	index.AddFileSnapshot(filePath, buildFileInput(filePath, "a"), "")
	assert.False(t, index.IsDirty(filePath))
}

func TestRemoveFile(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	index := NewCallGraphIndex(DefaultIndexConfig(), logger)
	defer index.Close()

	filePath := "TestFile.ts"
	index.AddFileSnapshot(filePath, buildFileInput(filePath, "a"), "")

	_, found := index.GetDefinition("TestFile.ts#a")
	assert.True(t, found)

	index.RemoveFile(filePath)

	_, found = index.GetDefinition("TestFile.ts#a")
	assert.False(t, found)

	_, found = index.GetFileSnapshot(filePath)
	assert.False(t, found)

	stats := index.GetStats()
	assert.Equal(t, 0, stats.TotalDefinitions)
}

func TestLRUEviction(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	config := DefaultIndexConfig()
	config.MaxCachedFiles = 10
	index := NewCallGraphIndex(config, logger)
	defer index.Close()

	for i := 0; i < 15; i++ {
		filePath := fmt.Sprintf("File%d.ts", i)
		index.AddFileSnapshot(filePath, buildFileInput(filePath, "f0", "f1", "f2"), "")
	}

	stats := index.GetStats()
	assert.Equal(t, 15, stats.IndexedFiles)
	assert.Equal(t, 10, stats.CachedFiles)
	assert.Equal(t, 45, stats.TotalDefinitions)
	assert.Equal(t, int64(5), stats.Evictions)

	// Definitions from evicted files remain reachable; only the
	// FileSnapshot itself is evicted.
	def, found := index.GetDefinition("File0.ts#f0")
	assert.True(t, found)
	assert.NotNil(t, def)
}

func TestFindDefinitions(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	index := NewCallGraphIndex(DefaultIndexConfig(), logger)
	defer index.Close()

	input := buildFileInput("File.ts", "Func1", "Func2")
	input.Definitions[1].Kind = symbols.KindClass
	index.AddFileSnapshot("File.ts", input, "")

	functions := index.FindDefinitions(func(d *symbols.Definition) bool {
		return d.Kind == symbols.KindFunction
	})
	assert.Equal(t, 1, len(functions))
	assert.Equal(t, "Func1", functions[0].Name)

	classes := index.FindDefinitions(func(d *symbols.Definition) bool {
		return d.Kind == symbols.KindClass
	})
	assert.Equal(t, 1, len(classes))
	assert.Equal(t, "Func2", classes[0].Name)
}

func TestGetAllFileInputs(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	index := NewCallGraphIndex(DefaultIndexConfig(), logger)
	defer index.Close()

	index.AddFileSnapshot("a.ts", buildFileInput("a.ts", "x"), "")
	index.AddFileSnapshot("b.ts", buildFileInput("b.ts", "y"), "")

	inputs := index.GetAllFileInputs()
	assert.Equal(t, 2, len(inputs))
}

func TestConcurrentAccess(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	index := NewCallGraphIndex(DefaultIndexConfig(), logger)
	defer index.Close()

	for i := 0; i < 10; i++ {
		filePath := fmt.Sprintf("File%d.ts", i)
		index.AddFileSnapshot(filePath, buildFileInput(filePath, "f0", "f1"), "")
	}

	const numGoroutines = 50
	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()

			switch id % 4 {
			case 0:
				filePath := fmt.Sprintf("Concurrent%d.ts", id)
				index.AddFileSnapshot(filePath, buildFileInput(filePath, "f0"), "")
			case 1:
				index.GetDefinition(fmt.Sprintf("File%d.ts#f0", id%10))
			case 2:
				index.GetFileSnapshot(fmt.Sprintf("File%d.ts", id%10))
			case 3:
				index.FindDefinitions(func(d *symbols.Definition) bool {
					return d.Kind == symbols.KindFunction
				})
			}
		}(i)
	}

	wg.Wait()

	stats := index.GetStats()
	assert.Greater(t, stats.TotalDefinitions, 20)
	assert.Greater(t, stats.IndexedFiles, 10)
}

func TestGetStats(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	index := NewCallGraphIndex(DefaultIndexConfig(), logger)
	defer index.Close()

	stats := index.GetStats()
	assert.Equal(t, 0, stats.TotalDefinitions)
	assert.Equal(t, 0, stats.CachedFiles)
	assert.Equal(t, 0, stats.IndexedFiles)

	for i := 0; i < 5; i++ {
		filePath := fmt.Sprintf("File%d.ts", i)
		index.AddFileSnapshot(filePath, buildFileInput(filePath, "f0", "f1"), "")
	}

	stats = index.GetStats()
	assert.Equal(t, 10, stats.TotalDefinitions)
	assert.Equal(t, 5, stats.CachedFiles)
	assert.Equal(t, 5, stats.IndexedFiles)
	assert.Greater(t, stats.MemoryEstimateBytes, int64(0))

	index.GetFileSnapshot("File0.ts")
	stats = index.GetStats()
	assert.Equal(t, int64(1), stats.CacheHits)

	index.GetFileSnapshot("NonExistent.ts")
	stats = index.GetStats()
	assert.Equal(t, int64(1), stats.CacheMisses)

	assert.Equal(t, 0.5, stats.CacheHitRate)
}

func TestEdgeCases(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	index := NewCallGraphIndex(DefaultIndexConfig(), logger)
	defer index.Close()

	t.Run("Empty definitions", func(t *testing.T) {
		fs := index.AddFileSnapshot("Empty.ts", buildFileInput("Empty.ts"), "")
		assert.NotNil(t, fs)
		assert.Equal(t, 0, len(fs.Input.Definitions))
	})

	t.Run("Duplicate file path", func(t *testing.T) {
		index.AddFileSnapshot("Dup.ts", buildFileInput("Dup.ts", "old"), "")
		index.AddFileSnapshot("Dup.ts", buildFileInput("Dup.ts", "new"), "")

		_, found := index.GetDefinition("Dup.ts#old")
		assert.False(t, found)

		_, found = index.GetDefinition("Dup.ts#new")
		assert.True(t, found)
	})

	t.Run("Remove non-existent file", func(t *testing.T) {
		index.RemoveFile("NonExistent.ts")
	})

	t.Run("Invalidate non-existent file", func(t *testing.T) {
		index.InvalidateFile("NonExistent.ts")
	})
}

func TestComputeContentHash(t *testing.T) {
	content1 := []byte("const x = 1;")
	content2 := []byte("const x = 1;")
	content3 := []byte("const x = 2;")

	hash1 := ComputeContentHash(content1)
	hash2 := ComputeContentHash(content2)
	hash3 := ComputeContentHash(content3)

	assert.Equal(t, hash1, hash2)
	assert.NotEqual(t, hash1, hash3)
	assert.Equal(t, 64, len(hash1))
}

// ============================================================================
// BENCHMARKS
// ============================================================================

func BenchmarkDefinitionLookup(b *testing.B) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	index := NewCallGraphIndex(DefaultIndexConfig(), logger)
	defer index.Close()

	for i := 0; i < 1000; i++ {
		filePath := fmt.Sprintf("File%d.ts", i)
		index.AddFileSnapshot(filePath, buildFileInput(filePath, "f0", "f1"), "")
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		index.GetDefinition("File500.ts#f0")
	}
}

func BenchmarkAddFileSnapshot(b *testing.B) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	index := NewCallGraphIndex(DefaultIndexConfig(), logger)
	defer index.Close()

	input := buildFileInput("TestFile.ts", "f0", "f1", "f2")

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		index.AddFileSnapshot(fmt.Sprintf("File%d.ts", i), input, "")
	}
}
