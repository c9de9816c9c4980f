// Package extractor implements per-file extraction: parse a
// file once, run the combined scope/definition/reference/import/export
// query over its tree, normalize the raw captures, and fold them into a
// callgraph.FileInput ready for the two-phase builder.
//
// Keeps a parse-once, query-once orchestration with log/slog logging,
// generalized from a flat Symbol/ImportInfo/ExportInfo model onto the
// richer capture/scopetree/symbols/refs/resolve pipeline a call graph
// needs.
package extractor

import (
	"log/slog"

	"github.com/gnana997/callgraph/pkg/parser"
	"github.com/gnana997/callgraph/pkg/parser/queries"
)

// Extractor performs unified per-file extraction, parsing a file once and
// running every downstream stage (scope tree, definition builder,
// reference builder, import/export wiring) off that single tree.
type Extractor struct {
	parserManager *parser.ParserManager
	queryManager  *queries.QueryManager
	logger        *slog.Logger

	// known, when set, is the project's full set of file paths,
	// consulted by resolveModulePath so import/use specifiers only
	// resolve to files that actually exist.
	known map[string]bool
}

// NewExtractor creates a per-file extractor. Call SetKnownFiles once the
// project's file listing is available; a single out-of-project
// extraction still works without it, using best-effort module path
// guesses.
func NewExtractor(pm *parser.ParserManager, qm *queries.QueryManager, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{parserManager: pm, queryManager: qm, logger: logger}
}

// SetKnownFiles records the project's full file set for import-path
// resolution.
func (e *Extractor) SetKnownFiles(files []string) {
	m := make(map[string]bool, len(files))
	for _, f := range files {
		m[f] = true
	}
	e.known = m
}
