package resolve

import (
	"sort"

	"github.com/gnana997/callgraph/pkg/diag"
	"github.com/gnana997/callgraph/pkg/symbols"
)

// Entry is one exported binding in the project-wide registry:
// `exported_type_name → {class_name, class_def, source_file}`.
type Entry struct {
	ClassName  string
	Def        *symbols.Definition
	SourceFile string
}

// Registry is ProjectTypeRegistry, built fresh for each full
// build and consulted by the resolver's
// fallback step and by cross-file member-access resolution.
type Registry struct {
	// byFileAndName maps (file, export_name) → definition.
	byFileAndName map[string]map[string]*symbols.Definition
	// byExportedName maps exported_type_name → Entry, last-write-wins by
	// lexicographically smaller file path.
	byExportedName map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{
		byFileAndName:  map[string]map[string]*symbols.Definition{},
		byExportedName: map[string]Entry{},
	}
}

// Register records filePath's export of name as def. On a conflicting
// second registration of the same name from a different file, the
// lexicographically smaller file path wins and a
// RegistryConflict diagnostic is emitted.
func (r *Registry) Register(filePath, name string, def *symbols.Definition, diags *diag.Collector) {
	if r.byFileAndName[filePath] == nil {
		r.byFileAndName[filePath] = map[string]*symbols.Definition{}
	}
	r.byFileAndName[filePath][name] = def

	existing, ok := r.byExportedName[name]
	if !ok {
		r.byExportedName[name] = Entry{ClassName: name, Def: def, SourceFile: filePath}
		return
	}
	if existing.SourceFile == filePath {
		r.byExportedName[name] = Entry{ClassName: name, Def: def, SourceFile: filePath}
		return
	}

	winner := existing.SourceFile
	if filePath < winner {
		winner = filePath
	}
	if winner != existing.SourceFile {
		r.byExportedName[name] = Entry{ClassName: name, Def: def, SourceFile: filePath}
	}
	if diags != nil {
		diags.Addf(diag.RegistryConflict, filePath,
			"export \""+name+"\" conflicts with "+existing.SourceFile+"; resolved to "+winner)
	}
}

// Lookup resolves an exported name regardless of which file defined it.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.byExportedName[name]
	return e, ok
}

// LookupInFile resolves name as exported specifically by filePath, used
// when a namespace-import binding needs `ns.member` semantics.
func (r *Registry) LookupInFile(filePath, name string) (*symbols.Definition, bool) {
	m, ok := r.byFileAndName[filePath]
	if !ok {
		return nil, false
	}
	def, ok := m[name]
	return def, ok
}

// ExportsOf returns a copy of filePath's exported-name → definition map,
// for building namespace-import member maps. The map is unordered.
func (r *Registry) ExportsOf(filePath string) map[string]*symbols.Definition {
	m, ok := r.byFileAndName[filePath]
	if !ok {
		return map[string]*symbols.Definition{}
	}
	out := make(map[string]*symbols.Definition, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// SortedFiles returns the files with registered exports, lexicographic,
// for deterministic Phase 2 iteration.
func (r *Registry) SortedFiles() []string {
	files := make([]string, 0, len(r.byFileAndName))
	for f := range r.byFileAndName {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
