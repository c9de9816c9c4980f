package callgraph

import (
	"github.com/gnana997/callgraph/pkg/diag"
	"github.com/gnana997/callgraph/pkg/refs"
	"github.com/gnana997/callgraph/pkg/resolve"
	"github.com/gnana997/callgraph/pkg/source"
	"github.com/gnana997/callgraph/pkg/symbols"
	"github.com/gnana997/callgraph/pkg/typetrack"
)

// assemble is Phase 2: aggregate the project registry,
// wire imported-class bindings, retry references Phase 1 could not
// resolve locally, and flatten every FunctionCall into a CallGraph.
func (b *Builder) assemble(analyses []FileAnalysisData) (*CallGraph, []diag.Diagnostic) {
	diags := b.Diags
	if diags == nil {
		diags = &diag.Collector{}
	}

	proj := resolve.NewProject(diags)
	for _, a := range analyses {
		proj.Files[a.FilePath] = a.FileContext
	}

	// Step 1: aggregate the project-wide export registry.
	for _, a := range analyses {
		for _, exp := range a.Exports {
			if exp.Def == nil {
				continue
			}
			proj.Registry.Register(a.FilePath, exp.Name, exp.Def, diags)
		}
	}

	// Step 2: convert each file's imports into importedClasses entries.
	for _, a := range analyses {
		wireImportedClasses(proj, a.FileContext)
	}

	// Step 3: re-run resolution for any reference whose first pass
	// failed, now that cross-file import tables and the registry are
	// complete.
	allCalls := make([]FunctionCall, 0)
	for _, a := range analyses {
		allCalls = append(allCalls, a.Calls...)
		for _, p := range a.pendingRefs {
			def, ok := resolveCrossFile(proj, a.FileContext, p.ref)
			calleeID := UnresolvedCalleeID
			if ok {
				calleeID = def.ID
			} else {
				diags.Addf(diag.ResolverCycle, a.FilePath, "could not resolve reference \""+p.ref.Name+"\"")
			}
			allCalls = append(allCalls, callFromRef(p.callerID, calleeID, p.ref))
		}
	}

	// Step 4: flatten into nodes + edges.
	nodes := map[string]*Node{}
	var order []string
	for _, a := range analyses {
		exported := exportSet(a.Exports)
		for _, d := range flattenNodes(a.Definitions) {
			if _, exists := nodes[d.ID]; exists {
				continue
			}
			nodes[d.ID] = &Node{
				ID:         d.ID,
				Label:      d.Name,
				File:       a.FilePath,
				Kind:       string(d.Kind),
				Range:      d.Range,
				IsExported: d.IsExported || exported[d.Name],
			}
			order = append(order, d.ID)
		}
	}

	var edges []Edge
	for _, c := range allCalls {
		callType := CallDirect
		if c.IsMethodCall {
			callType = CallMethod
		}
		edges = append(edges, Edge{From: c.CallerID, To: c.CalleeID, Location: pointRange(c.CallLocation), CallType: callType})

		if n, ok := nodes[c.CalleeID]; ok {
			n.CalledBy = append(n.CalledBy, c.CallerID)
		}
		if n, ok := nodes[c.CallerID]; ok {
			kind := "function"
			if c.IsMethodCall {
				kind = "method"
			}
			if c.IsConstructorCall {
				kind = "constructor"
			}
			n.Calls = append(n.Calls, CallRef{Symbol: c.CalleeID, Range: edges[len(edges)-1].Location, Kind: kind, ResolvedDefinition: c.CalleeID})
		}
	}

	graph := &CallGraph{Nodes: nodes, Edges: edges}
	graph.TopLevelNodes = orderedTopLevel(graph, order)

	return graph, diags.All()
}

// pointRange builds a zero-width range from a FunctionCall's call site,
// since a FunctionCall's location is a single Position while an Edge's
// location is a Range.
func pointRange(p source.Position) source.Range {
	return source.Range{Start: p, End: p}
}

// wireImportedClasses implements step 2: for each of fc's
// imports, if the project registry has that export, register it in fc's
// tracker as an imported class; else if the resolved definition is
// itself a class, register that directly.
func wireImportedClasses(proj *resolve.Project, fc *resolve.FileContext) {
	for _, name := range fc.Imports.LocalNames() {
		rec, _ := fc.Imports.Lookup(name)
		if rec.ImportedDef == nil {
			continue
		}

		if entry, ok := proj.Registry.Lookup(rec.ImportedDef.Name); ok && entry.Def.Kind == symbols.KindClass {
			fc.Tracker = fc.Tracker.WithImportedClass(name, typetrack.ImportedClassInfo{
				ClassName: entry.ClassName, ClassDef: entry.Def, SourceFile: entry.SourceFile,
			})
			continue
		}

		if rec.ImportedDef.Kind == symbols.KindClass {
			fc.Tracker = fc.Tracker.WithImportedClass(name, typetrack.ImportedClassInfo{
				ClassName: rec.ImportedDef.Name, ClassDef: rec.ImportedDef, SourceFile: rec.ImportedDef.FilePath,
			})
		}
	}
}

// resolveCrossFile retries a reference with full project state available,
// dispatching to the language-specific resolution strategy.
func resolveCrossFile(proj *resolve.Project, fc *resolve.FileContext, ref *refs.Reference) (*symbols.Definition, bool) {
	switch fc.Language {
	case "python":
		if ref.ReceiverName != "" {
			return proj.ResolveMemberCall(fc, ref.ReceiverName, ref.Name)
		}
		return proj.ResolvePython(fc, ref.ScopeID, ref.Name, ref.IsGlobal, ref.IsNonlocal)
	case "rust":
		if ref.ConstructTargetLocation != nil {
			return proj.ResolveAssociatedCall(fc, ref.ReceiverName, ref.Name)
		}
		if ref.ReceiverName != "" {
			return proj.ResolveRustMethodCall(fc, ref.ReceiverName, ref.Name)
		}
		return proj.ResolveName(fc, ref.ScopeID, ref.Name)
	default:
		if ref.ReceiverName != "" {
			if def, ok := proj.ResolveMemberCall(fc, ref.ReceiverName, ref.Name); ok {
				return def, true
			}
			if def, ok := proj.ResolveNamespaceMember(fc, ref.ReceiverName, ref.Name); ok {
				return def, true
			}
			return nil, false
		}
		return proj.ResolveName(fc, ref.ScopeID, ref.Name)
	}
}

// exportSet returns the set of names a file exports, for is_exported
// fallback when a definition's own IsExported flag was not set by the
// extractor.
func exportSet(exports []ExportResult) map[string]bool {
	out := make(map[string]bool, len(exports))
	for _, e := range exports {
		out[e.Name] = true
	}
	return out
}

// flattenNodes collects every function/class/method/enum/namespace
// definition reachable from defs, per the CallGraph.nodes rule.
func flattenNodes(defs []*symbols.Definition) []*symbols.Definition {
	var out []*symbols.Definition
	var walk func(d *symbols.Definition)
	walk = func(d *symbols.Definition) {
		if isNodeKind(d.Kind) {
			out = append(out, d)
		}
		for _, m := range d.Methods {
			walk(m)
		}
	}
	for _, d := range defs {
		walk(d)
	}
	return out
}

func isNodeKind(k symbols.Kind) bool {
	switch k {
	case symbols.KindFunction, symbols.KindMethod, symbols.KindConstructor,
		symbols.KindClass, symbols.KindEnum, symbols.KindNamespace, symbols.KindInterface:
		return true
	default:
		return false
	}
}

// orderedTopLevel recomputes top_level_nodes (id belongs in it iff no
// edge has to = id and from ≠ id) while preserving the
// file-then-first-appearance order required for determinism.
func orderedTopLevel(g *CallGraph, order []string) []string {
	hasIncoming := map[string]bool{}
	for _, e := range g.Edges {
		if e.From != e.To {
			hasIncoming[e.To] = true
		}
	}
	var out []string
	for _, id := range order {
		if !hasIncoming[id] {
			out = append(out, id)
		}
	}
	return out
}
