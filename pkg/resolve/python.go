package resolve

import (
	"github.com/gnana997/callgraph/pkg/scopetree"
	"github.com/gnana997/callgraph/pkg/symbols"
)

// pythonBuiltins is the fixed terminal fallback set // describes for Python's LEGB chain. Not exhaustive — just the names
// common enough that treating them as unresolved-but-builtin rather than
// unresolved-and-unknown is worth it for call-graph display.
var pythonBuiltins = map[string]bool{
	"print": true, "len": true, "range": true, "str": true, "int": true,
	"float": true, "bool": true, "list": true, "dict": true, "set": true,
	"tuple": true, "super": true, "isinstance": true, "enumerate": true,
	"zip": true, "map": true, "filter": true, "sorted": true, "sum": true,
	"min": true, "max": true, "open": true, "type": true, "object": true,
	"classmethod": true, "staticmethod": true, "property": true,
	"Exception": true, "ValueError": true, "TypeError": true, "KeyError": true,
	"StopIteration": true, "None": true, "True": true, "False": true,
}

// BuiltinDefinition returns the synthetic `<builtin>#name` definition
// symbol-id format reserves for language built-ins.
func BuiltinDefinition(name string) *symbols.Definition {
	return &symbols.Definition{
		ID:       "<builtin>#" + name,
		Name:     name,
		Kind:     symbols.KindFunction,
		FilePath: "<builtin>",
	}
}

// ResolvePython implements Python resolution: `global`
// forces module-scope resolution; `nonlocal` searches enclosing function
// scopes (never class scopes) up to but not including the module scope;
// otherwise LEGB applies, skipping class scopes for any scope other than
// the reference's own local scope; `self`/`cls` resolve to the enclosing
// class; unresolved names fall back to a fixed built-in set.
func (p *Project) ResolvePython(fc *FileContext, scopeID, name string, isGlobal, isNonlocal bool) (*symbols.Definition, bool) {
	if name == "self" || name == "cls" {
		if cls, ok := enclosingClass(fc, scopeID); ok {
			return cls, true
		}
	}

	if isGlobal {
		if def, ok := fc.Tree.Root().Symbols[name]; ok {
			return def, true
		}
		return nil, false
	}

	if isNonlocal {
		chain := fc.Tree.Ancestors(scopeID)
		for _, sid := range chain[1:] {
			n := fc.Tree.Node(sid)
			if n == nil {
				continue
			}
			if n.Kind == scopetree.KindModule {
				break
			}
			if n.Kind == scopetree.KindClass {
				continue
			}
			if def, ok := n.Symbols[name]; ok {
				return def, true
			}
		}
		return nil, false
	}

	for _, sid := range fc.Tree.Ancestors(scopeID) {
		n := fc.Tree.Node(sid)
		if n == nil {
			continue
		}
		if n.Kind == scopetree.KindClass && sid != scopeID {
			continue
		}
		if def, ok := n.Symbols[name]; ok {
			return def, true
		}
	}

	if pythonBuiltins[name] {
		return BuiltinDefinition(name), true
	}
	if entry, ok := p.Registry.Lookup(name); ok {
		return entry.Def, true
	}
	return nil, false
}

func enclosingClass(fc *FileContext, scopeID string) (*symbols.Definition, bool) {
	for _, sid := range fc.Tree.Ancestors(scopeID) {
		n := fc.Tree.Node(sid)
		if n == nil {
			continue
		}
		if n.Kind == scopetree.KindClass {
			if owner, ok := fc.ScopeOwner[sid]; ok {
				return owner, true
			}
		}
	}
	return nil, false
}

// ComputeDunderAll implements __all__ export restriction:
// when present and literally a sequence of string literals, it restricts
// the exported name set; otherwise every non-underscore-prefixed
// module-level name is exported. allLiteral is the parsed string list
// (nil if __all__ was absent or not a literal list).
func ComputeDunderAll(moduleLevelNames []string, allLiteral []string, allLiteralPresent bool) []string {
	if allLiteralPresent {
		out := make([]string, len(allLiteral))
		copy(out, allLiteral)
		return out
	}
	out := make([]string, 0, len(moduleLevelNames))
	for _, n := range moduleLevelNames {
		if len(n) > 0 && n[0] != '_' {
			out = append(out, n)
		}
	}
	return out
}
