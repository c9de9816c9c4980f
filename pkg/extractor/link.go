package extractor

import (
	"github.com/gnana997/callgraph/pkg/callgraph"
	"github.com/gnana997/callgraph/pkg/symbols"
)

// LinkImports runs the cross-file linking pass that must happen after
// every file in the project has been extracted but before the two-phase
// builder runs: it resolves each file's import records against the
// exports of the files they name, populating Record.ImportedDef (and
// NamespaceMembers for namespace bindings) so callgraph.Builder's Phase 2
// wireImportedClasses step has something to wire.
//
// Grounded on callgraph/phase2.go's wireImportedClasses, which documents
// this exact precondition: it only acts on import records whose
// ImportedDef is already non-nil.
func LinkImports(inputs []callgraph.FileInput) {
	exportsByFile := make(map[string]map[string]*symbols.Definition, len(inputs))
	defaultByFile := make(map[string]*symbols.Definition, len(inputs))

	for _, in := range inputs {
		named := make(map[string]*symbols.Definition, len(in.Exports))
		for _, exp := range in.Exports {
			if exp.Def == nil {
				continue
			}
			named[exp.Name] = exp.Def
			if exp.IsDefault {
				defaultByFile[in.FilePath] = exp.Def
			}
		}
		exportsByFile[in.FilePath] = named
	}

	for _, in := range inputs {
		fc := in.FileContext
		for _, localName := range fc.Imports.LocalNames() {
			rec, ok := fc.Imports.Lookup(localName)
			if !ok {
				continue
			}

			if rec.IsNamespace {
				rec.NamespaceMembers = exportsByFile[rec.SourceModule]
				continue
			}

			exports := exportsByFile[rec.SourceModule]
			if rec.IsDefault {
				rec.ImportedDef = defaultByFile[rec.SourceModule]
				continue
			}

			lookupName := rec.ExportedName
			if lookupName == "" {
				lookupName = rec.LocalName
			}
			if def, ok := exports[lookupName]; ok {
				rec.ImportedDef = def
			}
		}
	}
}
