package resolve

import (
	"github.com/gnana997/callgraph/pkg/scopetree"
	"github.com/gnana997/callgraph/pkg/symbols"
)

// HoistTarget implements JS/TS hoisting rule: function
// declarations and `var` bindings are registered at the enclosing
// function/module scope regardless of their textual position, while
// `let`/`const`/class declarations stay lexically scoped at declScopeID.
//
// Per design note, this must be applied at scope-tree build
// time — callers invoke it before attaching the definition, not as a
// later re-parenting pass.
func HoistTarget(tree *scopetree.Tree, declScopeID string, isHoistable bool) string {
	if !isHoistable {
		return declScopeID
	}
	for _, sid := range tree.Ancestors(declScopeID) {
		n := tree.Node(sid)
		if n == nil {
			continue
		}
		if n.Kind == scopetree.KindFunction || n.Kind == scopetree.KindModule {
			return sid
		}
	}
	return declScopeID
}

// ResolveNamespaceMember resolves `ns.member` for a JS/TS namespace
// import binding (`import * as ns from './mod'`).
func (p *Project) ResolveNamespaceMember(fc *FileContext, nsLocalName, member string) (*symbols.Definition, bool) {
	if def, ok := fc.Imports.MemberOfNamespace(nsLocalName, member); ok {
		return def, true
	}
	rec, ok := fc.Imports.Lookup(nsLocalName)
	if !ok || !rec.IsNamespace {
		return nil, false
	}
	// Namespace members may not have been materialized locally yet if
	// this file was processed before its target in Phase 1; fall back to
	// the project registry, scoped to the target file.
	target, ok := p.Files[rec.SourceModule]
	if !ok {
		return nil, false
	}
	return p.Registry.LookupInFile(target.FilePath, member)
}
