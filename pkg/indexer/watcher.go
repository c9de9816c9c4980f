package indexer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/callgraph/pkg/extractor"
	"github.com/gnana997/callgraph/pkg/parser"
)

// FileWatcher watches for file system changes and re-indexes files
// incrementally: it only triggers reindexing, the call graph itself is
// rebuilt by calling ProjectScanner.BuildCallGraph once the watcher has
// settled.
//
// **Features:**
//   - Debouncing - Groups rapid changes to avoid redundant reindexing
//   - Selective - Only reindexes changed files (not entire project)
//
// **Usage:**
//
//	watcher := NewFileWatcher(index, extractor, DefaultWatchOptions(), logger)
//	err := watcher.Start("/path/to/project")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer watcher.Stop()
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	index     *CallGraphIndex
	extractor *extractor.Extractor
	logger    *slog.Logger
	options   WatchOptions

	// Debouncing
	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	// Lifecycle
	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewFileWatcher creates a new file watcher.
func NewFileWatcher(
	index *CallGraphIndex,
	ext *extractor.Extractor,
	options WatchOptions,
	logger *slog.Logger,
) *FileWatcher {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		panic(fmt.Sprintf("failed to create file watcher: %v", err))
	}
	if logger == nil {
		logger = slog.Default()
	}

	if options.DebounceMs == 0 {
		options.DebounceMs = 200 // Default debounce
	}

	return &FileWatcher{
		watcher:        watcher,
		index:          index,
		extractor:      ext,
		logger:         logger,
		options:        options,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}
}

// Start begins watching the specified directory.
//
// **Thread Safety:** Returns an error once Stop has been called. Calling it
// again on a running watcher adds the watches again and starts a second
// event loop.
//
// **Performance:** Runs in background goroutine.
func (fw *FileWatcher) Start(rootPath string) error {
	fw.mu.Lock()
	if fw.stopped {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	fw.mu.Unlock()

	err := fw.watcher.Add(rootPath)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", rootPath, err)
	}

	err = filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Continue on error
		}

		if info.IsDir() {
			if fw.shouldIgnore(path) {
				return filepath.SkipDir
			}

			if err := fw.watcher.Add(path); err != nil {
				fw.logger.Warn("Failed to watch directory", "path", path, "error", err)
			}
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to setup watches: %w", err)
	}

	fw.logger.Info("File watcher started", "root", rootPath)

	go fw.eventLoop()

	return nil
}

// Stop stops the file watcher.
//
// **Thread Safety:** Safe to call multiple times (idempotent).
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.stopped {
		return nil
	}

	fw.stopped = true
	close(fw.stopChan)

	fw.debounceMu.Lock()
	for _, timer := range fw.debounceTimers {
		timer.Stop()
	}
	fw.debounceTimers = make(map[string]*time.Timer)
	fw.debounceMu.Unlock()

	err := fw.watcher.Close()
	fw.logger.Info("File watcher stopped")
	return err
}

// eventLoop is the main event processing loop.
func (fw *FileWatcher) eventLoop() {
	for {
		select {
		case <-fw.stopChan:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("File watcher error", "error", err)
		}
	}
}

// handleEvent processes a file system event.
func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	filePath := event.Name

	if fw.shouldIgnore(filePath) {
		return
	}

	if parser.DetectLanguage(filePath) == parser.LanguageUnknown {
		return
	}

	fw.logger.Debug("File event", "op", event.Op.String(), "file", filePath)

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		fw.debounceReindex(filePath)

	case event.Op&fsnotify.Create == fsnotify.Create:
		fw.debounceReindex(filePath)

	case event.Op&fsnotify.Remove == fsnotify.Remove:
		fw.removeFile(filePath)

	case event.Op&fsnotify.Rename == fsnotify.Rename:
		fw.removeFile(filePath)
	}
}

// debounceReindex schedules a reindex after debounce delay.
//
// If multiple events for the same file occur within debounce window,
// only the last one triggers reindexing (saves unnecessary work).
func (fw *FileWatcher) debounceReindex(filePath string) {
	fw.debounceMu.Lock()
	defer fw.debounceMu.Unlock()

	if timer, exists := fw.debounceTimers[filePath]; exists {
		timer.Stop()
	}

	fw.debounceTimers[filePath] = time.AfterFunc(
		time.Duration(fw.options.DebounceMs)*time.Millisecond,
		func() {
			fw.reindexFile(filePath)

			fw.debounceMu.Lock()
			delete(fw.debounceTimers, filePath)
			fw.debounceMu.Unlock()
		},
	)
}

// reindexFile re-extracts a single file and refreshes its cached
// snapshot. The project's call graph must be rebuilt separately (via
// ProjectScanner.BuildCallGraph) once all pending reindexes settle,
// since a single file's references may now resolve against a changed
// export elsewhere.
func (fw *FileWatcher) reindexFile(filePath string) {
	fw.logger.Debug("Reindexing file", "file", filePath)

	// Mark as dirty first (instant feedback)
	fw.index.InvalidateFile(filePath)

	content, err := os.ReadFile(filePath)
	if err != nil {
		fw.logger.Warn("Failed to read file for reindexing",
			"file", filePath,
			"error", err)
		return
	}

	input, err := fw.extractor.ExtractFile(filePath, content)
	if err != nil {
		fw.logger.Warn("Failed to extract file",
			"file", filePath,
			"error", err)
		return
	}

	fw.index.AddFileSnapshot(filePath, input, ComputeContentHash(content))

	fw.logger.Debug("File reindexed",
		"file", filePath,
		"definitions", len(input.Definitions),
		"exports", len(input.Exports))
}

// removeFile removes a file from the index.
func (fw *FileWatcher) removeFile(filePath string) {
	fw.logger.Debug("Removing file from index", "file", filePath)
	fw.index.RemoveFile(filePath)
}

// shouldIgnore checks if a path should be ignored.
func (fw *FileWatcher) shouldIgnore(path string) bool {
	for _, pattern := range fw.options.IgnorePatterns {
		if matched, _ := doublestar.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}

	base := filepath.Base(path)
	switch base {
	case "node_modules", ".git", "dist", "build", ".next", "target", "__pycache__", ".venv", "venv":
		return true
	}

	return false
}

// GetStats returns file watcher statistics.
func (fw *FileWatcher) GetStats() FileWatcherStats {
	fw.debounceMu.Lock()
	pendingReindexes := len(fw.debounceTimers)
	fw.debounceMu.Unlock()

	return FileWatcherStats{
		PendingReindexes: pendingReindexes,
		IsRunning:        !fw.stopped,
	}
}

// FileWatcherStats contains file watcher statistics.
type FileWatcherStats struct {
	PendingReindexes int
	IsRunning        bool
}
