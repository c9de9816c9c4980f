// Package resolve implements the symbol resolver: a
// generic core resolution strategy over the scope tree and import table,
// plus per-language strategies for JavaScript/TypeScript, Python, and
// Rust.
//
// Grounded on DeusData-codebase-memory-mcp's internal/pipeline/resolver.go
// FunctionRegistry (exact-match map + byName fallback list, bounded
// suffix/import-distance scoring) generalized into scope-chain
// walk plus bounded import-following and a project-wide export registry.
package resolve

import (
	"github.com/gnana997/callgraph/pkg/diag"
	"github.com/gnana997/callgraph/pkg/scopetree"
	"github.com/gnana997/callgraph/pkg/symbols"
	"github.com/gnana997/callgraph/pkg/typetrack"
)

// maxImportDepth bounds import-chain following so a cyclic or
// deeply-nested re-export chain cannot recurse indefinitely.
const maxImportDepth = 16

// FileContext is everything the resolver needs about one file: its scope
// tree, import table, and type tracker. Built by pkg/extractor during
// Phase 1 and handed to the resolver unchanged thereafter.
type FileContext struct {
	FilePath string
	Language string
	Tree     *scopetree.Tree
	Imports  *Table
	Tracker  *typetrack.Tracker

	// ByID indexes every definition (including methods/properties
	// flattened out of their parents) declared in this file, by symbol id.
	ByID map[string]*symbols.Definition

	// Classes lists every class/interface/struct/impl-target definition
	// in this file, for member-access and associated-function search.
	Classes []*symbols.Definition

	// ScopeOwner maps a scope id created FOR a class/function/module
	// back to the Definition that owns it, e.g. a class body's scope id
	// back to the class's own Definition. Populated by the extractor when
	// it declares the scope. Needed because a class's Definition is
	// registered as a symbol in its ENCLOSING scope, not in the scope it
	// creates, so Python's self/cls resolution cannot find it via a plain
	// Tree.Lookup.
	ScopeOwner map[string]*symbols.Definition
}

func NewFileContext(filePath, language string, tree *scopetree.Tree) *FileContext {
	return &FileContext{
		FilePath:   filePath,
		Language:   language,
		Tree:       tree,
		Imports:    NewTable(),
		Tracker:    typetrack.New(),
		ByID:       map[string]*symbols.Definition{},
		ScopeOwner: map[string]*symbols.Definition{},
	}
}

// ResolveLocal is the single-file subset of ResolveName usable during
// Phase 1, before cross-file import tables and the
// project registry exist: it walks the scope chain and follows at most
// one import hop using only this file's own import table.
func (fc *FileContext) ResolveLocal(scopeID, name string) (*symbols.Definition, bool) {
	def, ok := fc.Tree.Lookup(scopeID, name)
	if !ok {
		return nil, false
	}
	if def.Kind != symbols.KindImport {
		return def, true
	}
	rec, ok := fc.Imports.Lookup(def.Name)
	if !ok || rec.ImportedDef == nil || rec.ImportedDef.Kind == symbols.KindImport {
		return nil, false
	}
	return rec.ImportedDef, true
}

// Project bundles every file's context plus the project-wide export
// registry, giving the resolver what it needs to follow imports and
// member accesses across file boundaries.
type Project struct {
	Registry *Registry
	Files    map[string]*FileContext
	Diags    *diag.Collector
}

func NewProject(diags *diag.Collector) *Project {
	return &Project{Registry: NewRegistry(), Files: map[string]*FileContext{}, Diags: diags}
}

// ResolveName implements the generic core resolution strategy: walk the
// scope chain from scopeID to root, return the first matching symbol; if it is
// an import, follow it (bounded depth); otherwise fall back to the
// project registry.
func (p *Project) ResolveName(fc *FileContext, scopeID, name string) (*symbols.Definition, bool) {
	if def, ok := fc.Tree.Lookup(scopeID, name); ok {
		if def.Kind != symbols.KindImport {
			return def, true
		}
		if rec, ok := fc.Imports.Lookup(def.Name); ok {
			if resolved, ok := p.followImport(rec, 0); ok {
				return resolved, true
			}
		}
		// Import present but unresolved locally; still try the registry
		// for the underlying exported name before giving up.
	}

	if entry, ok := p.Registry.Lookup(name); ok {
		return entry.Def, true
	}
	return nil, false
}

// followImport walks a chain of re-exports: rec.ImportedDef may itself be
// an import binding in its own file, in which case we look up that
// file's import table and continue, bounded by maxImportDepth.
func (p *Project) followImport(rec *Record, depth int) (*symbols.Definition, bool) {
	if depth > maxImportDepth {
		if p.Diags != nil {
			p.Diags.Addf(diag.ResolverCycle, "", "import chain exceeded depth "+itoa(maxImportDepth))
		}
		return nil, false
	}
	if rec.ImportedDef == nil {
		return nil, false
	}
	if rec.ImportedDef.Kind != symbols.KindImport {
		return rec.ImportedDef, true
	}

	next, ok := p.Files[rec.ImportedDef.FilePath]
	if !ok {
		return rec.ImportedDef, true
	}
	nextRec, ok := next.Imports.Lookup(rec.ImportedDef.Name)
	if !ok {
		return rec.ImportedDef, true
	}
	return p.followImport(nextRec, depth+1)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// FindMethod searches class.Methods for a method named name. Shared by the JS/Python
// receiver-type search and the Rust impl-block search.
func FindMethod(class *symbols.Definition, name string) (*symbols.Definition, bool) {
	if class == nil {
		return nil, false
	}
	for _, m := range class.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// ResolveMemberCall resolves `receiverName.methodName` using fc's type
// tracker to find receiverName's class, then searching that class's
// methods. Shared core for JS/TS and Python method-call resolution.
func (p *Project) ResolveMemberCall(fc *FileContext, receiverName, methodName string) (*symbols.Definition, bool) {
	info, ok := fc.Tracker.Lookup(receiverName)
	if ok {
		if def, ok := info.ClassDef.(*symbols.Definition); ok {
			if m, ok := FindMethod(def, methodName); ok {
				return m, true
			}
		}
	}

	if imported, ok := fc.Tracker.LookupImported(receiverName); ok {
		if def, ok := imported.ClassDef.(*symbols.Definition); ok {
			if m, ok := FindMethod(def, methodName); ok {
				return m, true
			}
		}
		if target, ok := p.Files[imported.SourceFile]; ok {
			for _, class := range target.Classes {
				if class.Name == imported.ClassName {
					if m, ok := FindMethod(class, methodName); ok {
						return m, true
					}
				}
			}
		}
	}

	return nil, false
}
