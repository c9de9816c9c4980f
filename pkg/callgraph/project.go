package callgraph

import (
	"sort"

	"github.com/gnana997/callgraph/pkg/resolve"
	"github.com/gnana997/callgraph/pkg/source"
	"github.com/gnana997/callgraph/pkg/symbols"
)

// Project is the query-facing handle over a built call graph: a
// CallGraph plus enough per-file resolver state to answer editor-style
// navigation queries the flattened graph alone can't — go_to_definition
// wants the reference under a cursor, not an already-resolved call edge;
// get_imports_with_definitions wants a file's import table, not a node.
//
// Build once from a finished scan, serve every query off the prebuilt
// state rather than re-walking files per call.
type Project struct {
	Graph        *CallGraph
	fileContexts map[string]*resolve.FileContext
}

// NewProject bundles a built CallGraph with the FileContexts of the
// FileInputs that produced it.
func NewProject(graph *CallGraph, inputs []FileInput) *Project {
	p := &Project{
		Graph:        graph,
		fileContexts: make(map[string]*resolve.FileContext, len(inputs)),
	}
	for _, in := range inputs {
		p.fileContexts[in.FilePath] = in.FileContext
	}
	return p
}

// GoToDefinition resolves the call site covering pos in filePath to the
// definition it targets: go_to_definition(file_path, position).
func (p *Project) GoToDefinition(filePath string, pos source.Position) (*symbols.Definition, bool) {
	for _, e := range p.Graph.Edges {
		from, ok := p.Graph.Nodes[e.From]
		if !ok || from.File != filePath {
			continue
		}
		if !e.Location.ContainsPosition(pos) {
			continue
		}
		to, ok := p.Graph.Nodes[e.To]
		if !ok {
			return nil, false
		}
		return p.definitionForNode(to)
	}
	return nil, false
}

func (p *Project) definitionForNode(n *Node) (*symbols.Definition, bool) {
	fc, ok := p.fileContexts[n.File]
	if !ok {
		return nil, false
	}
	def, ok := fc.ByID[n.ID]
	return def, ok
}

// ImportWithDefinition pairs one of a file's import bindings with the
// definition it resolved to, if any.
type ImportWithDefinition struct {
	LocalName    string
	SourceModule string
	Definition   *symbols.Definition // nil for an unresolved or glob import
}

// GetImportsWithDefinitions returns filePath's import table resolved
// against the project: get_imports_with_definitions(file_path). Results
// are ordered by local name for deterministic output.
func (p *Project) GetImportsWithDefinitions(filePath string) []ImportWithDefinition {
	fc, ok := p.fileContexts[filePath]
	if !ok {
		return nil
	}

	names := fc.Imports.LocalNames()
	sort.Strings(names)

	out := make([]ImportWithDefinition, 0, len(names))
	for _, name := range names {
		rec, ok := fc.Imports.Lookup(name)
		if !ok {
			continue
		}
		out = append(out, ImportWithDefinition{
			LocalName:    rec.LocalName,
			SourceModule: rec.SourceModule,
			Definition:   rec.ImportedDef,
		})
	}
	return out
}
