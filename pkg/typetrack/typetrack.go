// Package typetrack implements the light intra-file type tracking shared
// by all language resolvers: a flow-insensitive,
// last-write-wins mapping from variable name to the class it was most
// recently assigned, used to resolve `obj.method()` without a type
// checker.
//
// Follows pkg/util/filecache's immutable-snapshot style (Stats()/Get()
// return value copies, never shared mutable state); type tracking stays
// a flat mapping rather than a lattice with narrowing.
package typetrack

import "github.com/gnana997/callgraph/pkg/source"

// ClassInfo is lightweight TypeInfo: "at position P,
// variable V is of class C". ClassDef is opaque here (any, usually
// *symbols.Definition) to avoid an import-cycle-prone dependency; callers
// type-assert it back.
type ClassInfo struct {
	ClassName           string
	ClassDef            any
	DeclarationPosition source.Position
}

// ImportedClassInfo is ClassInfo for a binding that resolved to a class
// defined in a different file, carrying the source file path for display
// and for the project type registry.
type ImportedClassInfo struct {
	ClassName  string
	ClassDef   any
	SourceFile string
}

// ScopeKind distinguishes a TypeDiscovery's lifetime: local to one
// function body, or file-scoped (module-level assignment).
type ScopeKind string

const (
	ScopeLocal ScopeKind = "local"
	ScopeFile  ScopeKind = "file"
)

// Discovery is TypeDiscovery: the result of recognizing a
// constructor call on the right-hand side of an assignment to an
// identifier.
type Discovery struct {
	Variable string
	Info     ClassInfo
	Scope    ScopeKind
}

// Tracker is an immutable snapshot mapping name → ClassInfo (local types)
// plus name → ImportedClassInfo (imported class bindings). Every mutating
// method returns a new Tracker, leaving the receiver untouched, matching
// "flat mapping, do not attempt narrowing" directive and its
// copy-on-write framing for persistent state.
type Tracker struct {
	locals   map[string]ClassInfo
	imported map[string]ImportedClassInfo
}

// New returns an empty tracker. Used both as a per-function
// LocalTypeTracker and, at module scope, as the FileTypeTracker —
// describes these as the same shape at different scopes.
func New() *Tracker {
	return &Tracker{locals: map[string]ClassInfo{}, imported: map[string]ImportedClassInfo{}}
}

// WithDiscovery returns a new Tracker reflecting d, overwriting any prior
// entry for d.Variable (last-write-wins; ).
func (t *Tracker) WithDiscovery(d Discovery) *Tracker {
	next := t.clone()
	next.locals[d.Variable] = d.Info
	return next
}

// WithImportedClass returns a new Tracker with name bound to info.
func (t *Tracker) WithImportedClass(name string, info ImportedClassInfo) *Tracker {
	next := t.clone()
	next.imported[name] = info
	return next
}

func (t *Tracker) clone() *Tracker {
	next := &Tracker{
		locals:   make(map[string]ClassInfo, len(t.locals)+1),
		imported: make(map[string]ImportedClassInfo, len(t.imported)+1),
	}
	for k, v := range t.locals {
		next.locals[k] = v
	}
	for k, v := range t.imported {
		next.imported[k] = v
	}
	return next
}

// Lookup returns the most recently recorded local class for name.
func (t *Tracker) Lookup(name string) (ClassInfo, bool) {
	info, ok := t.locals[name]
	return info, ok
}

// LookupImported returns the imported-class binding for name, if any.
func (t *Tracker) LookupImported(name string) (ImportedClassInfo, bool) {
	info, ok := t.imported[name]
	return info, ok
}

// Merge layers child (e.g. a nested function's LocalTypeTracker) over
// base (e.g. the enclosing FileTypeTracker), with child's bindings taking
// priority — the same last-write-wins rule applied across scope levels.
func Merge(base, child *Tracker) *Tracker {
	merged := base.clone()
	for k, v := range child.locals {
		merged.locals[k] = v
	}
	for k, v := range child.imported {
		merged.imported[k] = v
	}
	return merged
}
