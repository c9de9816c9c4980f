package extractor

import (
	"fmt"
	"sort"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/callgraph/pkg/callgraph"
	"github.com/gnana997/callgraph/pkg/capture"
	"github.com/gnana997/callgraph/pkg/parser"
	"github.com/gnana997/callgraph/pkg/parser/queries"
	"github.com/gnana997/callgraph/pkg/refs"
	"github.com/gnana997/callgraph/pkg/resolve"
	"github.com/gnana997/callgraph/pkg/scopetree"
	"github.com/gnana997/callgraph/pkg/source"
	"github.com/gnana997/callgraph/pkg/symbols"
)

func configFor(lang parser.Language) (capture.Config, bool) {
	switch lang {
	case parser.LanguageJavaScript:
		return capture.JavaScriptConfig, true
	case parser.LanguageTypeScript:
		return capture.TypeScriptConfig, true
	case parser.LanguagePython:
		return capture.PythonConfig, true
	case parser.LanguageRust:
		return capture.RustConfig, true
	default:
		return nil, false
	}
}

func tsRange(n *ts.Node) source.Range {
	start, end := n.StartPosition(), n.EndPosition()
	return source.Range{
		Start: source.Position{Row: start.Row, Column: start.Column},
		End:   source.Position{Row: end.Row, Column: end.Column},
	}
}

// ExtractFile parses one file and runs the full per-file pipeline: scope
// declaration, definition folding, reference derivation, import/export
// detection. It returns a callgraph.FileInput
// with every import record's ImportedDef left nil — LinkImports fills
// those in once every file in the project has been extracted, since
// resolving an import requires having already extracted its source file.
func (e *Extractor) ExtractFile(filePath string, src []byte) (callgraph.FileInput, error) {
	lang := parser.DetectLanguage(filePath)
	if lang == parser.LanguageUnknown {
		return callgraph.FileInput{}, fmt.Errorf("extractor: unrecognized language for %s", filePath)
	}
	cfg, ok := configFor(lang)
	if !ok {
		return callgraph.FileInput{}, fmt.Errorf("extractor: no capture config for %s", lang)
	}

	tree, err := e.parserManager.Parse(src, lang, parser.IsTSXFile(filePath))
	if err != nil {
		return callgraph.FileInput{}, fmt.Errorf("extractor: parse %s: %w", filePath, err)
	}
	defer tree.Close()

	query, err := e.queryManager.GetQuery(lang, queries.QueryTypeSymbols)
	if err != nil {
		return callgraph.FileInput{}, fmt.Errorf("extractor: query for %s: %w", filePath, err)
	}

	raws, err := e.queryManager.ExecuteNormalized(tree, query, src)
	if err != nil {
		return callgraph.FileInput{}, fmt.Errorf("extractor: execute query on %s: %w", filePath, err)
	}

	captures := capture.NewNormalizer(cfg).Normalize(raws)
	fileRange := tsRange(tree.RootNode())

	pc := scopetree.NewProcessingContext(filePath, fileRange)
	fc := resolve.NewFileContext(filePath, lang.String(), pc.Tree)

	byCategory := bucketByCategory(captures)

	declareScopes(pc, byCategory[capture.CategoryScope])

	for _, nc := range byCategory[capture.CategoryDefinition] {
		e.attachDefinition(pc, fc, nc)
	}
	defs := pc.Definitions()

	attachDecorators(defs, byCategory[capture.CategoryDecorator])
	assignIDs(filePath, defs)
	fc.ByID = indexByID(defs)

	for _, nc := range byCategory[capture.CategoryImport] {
		e.attachImport(pc, fc, filePath, lang, nc)
	}

	exports := buildExports(byCategory[capture.CategoryExport], topLevelByName(defs))

	var refCaptures []capture.NormalizedCapture
	refCaptures = append(refCaptures, byCategory[capture.CategoryReference]...)
	refCaptures = append(refCaptures, byCategory[capture.CategoryAssignment]...)
	refCaptures = append(refCaptures, byCategory[capture.CategoryReturn]...)

	var references []*refs.Reference
	for _, nc := range refCaptures {
		scopeID := pc.Tree.ScopeIDForLocation(nc.NodeLocation)
		if ref, ok := refs.FromCapture(nc, scopeID); ok {
			references = append(references, ref)
		}
	}

	return callgraph.FileInput{
		FilePath:    filePath,
		FileContext: fc,
		Definitions: defs,
		References:  references,
		Exports:     exports,
	}, nil
}

func bucketByCategory(captures []capture.NormalizedCapture) map[capture.Category][]capture.NormalizedCapture {
	out := map[capture.Category][]capture.NormalizedCapture{}
	for _, nc := range captures {
		out[nc.Category] = append(out[nc.Category], nc)
	}
	return out
}

// declareScopes inserts every scope capture largest-area first, so a
// child scope's Insert always finds its parent already registered — the
// smallest-containing-scope rule depends on insertion order, not on the
// order captures happened to arrive in.
func declareScopes(pc *scopetree.ProcessingContext, scopeCaptures []capture.NormalizedCapture) {
	sorted := make([]capture.NormalizedCapture, len(scopeCaptures))
	copy(sorted, scopeCaptures)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].NodeLocation.Area() > sorted[j].NodeLocation.Area()
	})
	for _, nc := range sorted {
		kind, ok := scopeKindFor(nc.Entity)
		if !ok {
			continue
		}
		pc.DeclareScope(kind, "", nc.NodeLocation)
	}
}

// attachDefinition folds one definition capture into the scope tree and
// definition builder, dispatching on entity kind.
func (e *Extractor) attachDefinition(pc *scopetree.ProcessingContext, fc *resolve.FileContext, nc capture.NormalizedCapture) {
	kind, ok := defKindFor(nc.Entity)
	if !ok {
		return
	}

	def := &symbols.Definition{
		Name:  nc.SymbolName,
		Kind:  kind,
		Range: nc.NodeLocation,
	}
	if rng, ok := nc.ContextRange("enclosing_range"); ok {
		def.EnclosingRange = rng
	} else {
		def.EnclosingRange = nc.NodeLocation
	}
	def.Availability = symbols.FilePrivate()

	switch {
	case kind == symbols.KindMethod:
		if implType, ok := nc.ContextText("impl_type"); ok {
			pc.Builder.AttachImplMethod(implType, def)
			def.ScopeID = pc.Tree.ScopeIDForLocation(def.Range)
			return
		}
		pc.AttachMethod(def)
	case kind == symbols.KindConstructor:
		pc.AttachConstructor(def)
	case kind == symbols.KindProperty || kind == symbols.KindField:
		pc.AttachProperty(def)
	case kind == symbols.KindParameter:
		pc.AttachParameter(def)
	case isContainerKind(kind):
		d := pc.AttachContainer(def)
		if scopeID := ownScopeID(pc, def.EnclosingRange); scopeID != "" {
			fc.ScopeOwner[scopeID] = d
		}
	default:
		pc.AttachVariable(def)
	}
}

// ownScopeID finds the scope a class/interface/function/namespace
// definition itself declares — as opposed to the enclosing scope
// AttachContainer assigned it to — by matching the scope node whose
// Range exactly equals the definition's EnclosingRange (the same tree
// node produced both: the scope capture on the construct itself, and
// ctxEnclosingRange walking up from the definition's name node).
// Populates FileContext.ScopeOwner for Python's self/cls resolution,
// since a class's own Definition is registered as a
// symbol in its PARENT's scope, not the scope it creates.
func ownScopeID(pc *scopetree.ProcessingContext, enclosing source.Range) string {
	for id, node := range pc.Tree.AllNodes() {
		if node.Range == enclosing {
			return id
		}
	}
	return ""
}
