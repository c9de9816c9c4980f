package extractor

import (
	"strings"

	"github.com/gnana997/callgraph/pkg/callgraph"
	"github.com/gnana997/callgraph/pkg/capture"
	"github.com/gnana997/callgraph/pkg/parser"
	"github.com/gnana997/callgraph/pkg/resolve"
	"github.com/gnana997/callgraph/pkg/scopetree"
	"github.com/gnana997/callgraph/pkg/source"
	"github.com/gnana997/callgraph/pkg/symbols"
)

// attachImport folds one import-category capture into fc's import table
// and registers a KindImport binding in the scope tree, so a later
// reference to the same name resolves to this record via the normal
// scope-chain walk.
func (e *Extractor) attachImport(pc *scopetree.ProcessingContext, fc *resolve.FileContext, filePath string, lang parser.Language, nc capture.NormalizedCapture) {
	if lang == parser.LanguageRust {
		e.attachRustUse(pc, fc, filePath, nc)
		return
	}

	src, _ := nc.ContextText("source_node")
	resolved := resolveModulePath(filePath, src, e.known, lang)

	rec := &resolve.Record{
		Statement:    nc.NodeLocation,
		LocalName:    nc.SymbolName,
		SourceModule: resolved,
		IsDefault:    nc.BoolModifier("is_default"),
		IsNamespace:  nc.BoolModifier("is_namespace"),
	}
	fc.Imports.Add(rec)
	registerImportBinding(pc, nc.SymbolName, nc.NodeLocation)
}

// attachRustUse handles `use` captures, which carry no separate source
// field the way JS/TS/Python imports do — the whole matched text is
// either a single `crate::foo::Bar` path or a `{Bar, Baz}` group hanging
// off a shared module prefix recovered from the source text itself.
func (e *Extractor) attachRustUse(pc *scopetree.ProcessingContext, fc *resolve.FileContext, filePath string, nc capture.NormalizedCapture) {
	text := strings.TrimSpace(nc.SymbolName)
	if i := strings.Index(text, "{"); i >= 0 && strings.HasSuffix(text, "}") {
		prefix := strings.TrimSuffix(strings.TrimSuffix(text[:i], "::"), ":")
		inner := text[i+1 : len(text)-1]
		names := splitUseGroupNames(inner)
		modulePath := resolveModulePath(filePath, prefix, e.known, parser.LanguageRust)
		for _, rec := range resolve.ExpandUseGroup(modulePath, names) {
			r := rec
			fc.Imports.Add(&r)
			registerImportBinding(pc, r.LocalName, nc.NodeLocation)
		}
		return
	}

	local := text
	modulePath := text
	if idx := strings.LastIndex(text, "::"); idx >= 0 {
		local = text[idx+2:]
		modulePath = text[:idx]
	}
	if asIdx := strings.Index(local, " as "); asIdx >= 0 {
		local = strings.TrimSpace(local[asIdx+4:])
	}

	rec := &resolve.Record{
		Statement:    nc.NodeLocation,
		LocalName:    local,
		SourceModule: resolveModulePath(filePath, modulePath, e.known, parser.LanguageRust),
	}
	fc.Imports.Add(rec)
	registerImportBinding(pc, local, nc.NodeLocation)
}

func splitUseGroupNames(inner string) []string {
	parts := strings.Split(inner, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if asIdx := strings.Index(p, " as "); asIdx >= 0 {
			p = strings.TrimSpace(p[asIdx+4:])
		}
		out = append(out, p)
	}
	return out
}

func registerImportBinding(pc *scopetree.ProcessingContext, name string, loc source.Range) {
	pc.AttachVariable(&symbols.Definition{
		Name:  name,
		Kind:  symbols.KindImport,
		Range: loc,
	})
}

// topLevelByName indexes a file's top-level definitions by name, for
// matching an export capture's referenced name back to its definition.
func topLevelByName(defs []*symbols.Definition) map[string]*symbols.Definition {
	out := make(map[string]*symbols.Definition, len(defs))
	for _, d := range defs {
		out[d.Name] = d
	}
	return out
}

// buildExports turns export-category captures into callgraph.ExportResult
// entries, distinguishing default/reexport/named exports via the
// is_default/is_reexport modifiers step 2 derives from.
//
// A default export's capture text is either a bare identifier
// (`export default App;`) or a full declaration (`export default class
// App {}`), since JS's export_statement grammar captures the same
// `value` field either way. resolveExportDef handles both: an exact name
// match first, falling back to a definition whose name appears as a
// whole word in the captured text.
func buildExports(exportCaptures []capture.NormalizedCapture, byName map[string]*symbols.Definition) []callgraph.ExportResult {
	var out []callgraph.ExportResult
	for _, nc := range exportCaptures {
		name := nc.SymbolName
		def := resolveExportDef(name, byName)
		if def != nil {
			name = def.Name
		}
		out = append(out, callgraph.ExportResult{
			Name:       name,
			Def:        def,
			IsDefault:  nc.BoolModifier("is_default"),
			IsReexport: nc.BoolModifier("is_reexport"),
		})
	}
	return out
}

func resolveExportDef(text string, byName map[string]*symbols.Definition) *symbols.Definition {
	if def, ok := byName[text]; ok {
		return def
	}
	for name, def := range byName {
		if containsWholeWord(text, name) {
			return def
		}
	}
	return nil
}

func containsWholeWord(text, word string) bool {
	if word == "" {
		return false
	}
	idx := strings.Index(text, word)
	for idx >= 0 {
		before := idx == 0 || !isWordByte(text[idx-1])
		afterIdx := idx + len(word)
		after := afterIdx >= len(text) || !isWordByte(text[afterIdx])
		if before && after {
			return true
		}
		rest := text[idx+1:]
		next := strings.Index(rest, word)
		if next < 0 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
