package callgraph

import (
	"context"
	"sort"

	"github.com/gnana997/callgraph/pkg/diag"
	"github.com/gnana997/callgraph/pkg/refs"
	"github.com/gnana997/callgraph/pkg/resolve"
	"github.com/gnana997/callgraph/pkg/source"
	"github.com/gnana997/callgraph/pkg/symbols"
	"github.com/gnana997/callgraph/pkg/typetrack"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// defaultConcurrency is "bounded worker count (default 100
// concurrent files)".
const defaultConcurrency = 100

// ExportResult is step 2's ExportDetectionResult.
type ExportResult struct {
	Name       string
	Def        *symbols.Definition
	IsDefault  bool
	IsReexport bool
}

// FileInput is everything Phase 1 needs about one file, assembled by the
// extractor from a single parse: its scope/import context, its top-level
// definitions (with methods/properties/parameters already attached), its
// references, and its detected exports.
type FileInput struct {
	FilePath    string
	FileContext *resolve.FileContext
	Definitions []*symbols.Definition
	References  []*refs.Reference
	Exports     []ExportResult
}

// FileAnalysisData is Phase 1 output:
// FileAnalysisData{exports, imports, calls, type_tracker}.
type FileAnalysisData struct {
	FilePath    string
	FileContext *resolve.FileContext
	Definitions []*symbols.Definition
	Exports     []ExportResult
	Calls       []FunctionCall

	// pendingRefs holds references Phase 1 could not resolve locally
	// (cross-file member access, namespace lookups, etc.), retried in
	// Phase 2 step 3 once import tables are complete project-wide.
	pendingRefs []pendingRef
}

type pendingRef struct {
	ref      *refs.Reference
	callerID string
}

// Builder runs the two-phase pipeline: per-file extraction (Phase 1)
// followed by cross-file assembly (Phase 2).
type Builder struct {
	Diags       *diag.Collector
	Concurrency int
}

func NewBuilder(diags *diag.Collector) *Builder {
	return &Builder{Diags: diags, Concurrency: defaultConcurrency}
}

// AnalyzeFile is Phase 1: a pure function of file input,
// safe to run concurrently across files.
func (b *Builder) AnalyzeFile(in FileInput) FileAnalysisData {
	fc := in.FileContext
	if len(fc.Classes) == 0 {
		fc.Classes = flattenClasses(in.Definitions)
	}

	for _, d := range discoverTypeDiscoveries(in.References) {
		resolveDiscoveryClass(fc, &d)
		fc.Tracker = fc.Tracker.WithDiscovery(d)
	}

	callable := flattenCallable(in.Definitions)

	out := FileAnalysisData{
		FilePath:    in.FilePath,
		FileContext: fc,
		Definitions: in.Definitions,
		Exports:     in.Exports,
	}

	for _, ref := range in.References {
		if !ref.IsCall() {
			continue
		}
		callerID := callerFor(callable, ref.Location, in.FilePath)

		def, ok := resolveLocally(fc, ref)
		if !ok {
			out.pendingRefs = append(out.pendingRefs, pendingRef{ref: ref, callerID: callerID})
			continue
		}
		out.Calls = append(out.Calls, callFromRef(callerID, def.ID, ref))
	}

	return out
}

// resolveLocally dispatches to the language-specific strategy using only
// this file's own data (no cross-file project state), matching the
// Phase-1 purity requirement.
func resolveLocally(fc *resolve.FileContext, ref *refs.Reference) (*symbols.Definition, bool) {
	switch fc.Language {
	case "python":
		// `global`/`nonlocal` and LEGB only ever touch this file's own
		// scope tree, so the full Python resolver can run here directly
		// rather than being deferred to Phase 2.
		proj := localProject(fc)
		if ref.ReceiverName != "" {
			if def, ok := proj.ResolveMemberCall(fc, ref.ReceiverName, ref.Name); ok {
				return def, true
			}
			return nil, false
		}
		return proj.ResolvePython(fc, scopeOf(ref), ref.Name, ref.IsGlobal, ref.IsNonlocal)
	case "rust":
		proj := localProject(fc)
		if ref.ConstructTargetLocation != nil || ref.ReceiverName != "" {
			if ref.ReceiverName != "" {
				if def, ok := proj.ResolveRustMethodCall(fc, ref.ReceiverName, ref.Name); ok {
					return def, true
				}
			}
			return nil, false
		}
		return fc.ResolveLocal(scopeOf(ref), ref.Name)
	default: // javascript, typescript
		if ref.ReceiverName != "" {
			proj := localProject(fc)
			if def, ok := proj.ResolveMemberCall(fc, ref.ReceiverName, ref.Name); ok {
				return def, true
			}
			return nil, false
		}
		return fc.ResolveLocal(scopeOf(ref), ref.Name)
	}
}

func localProject(fc *resolve.FileContext) *resolve.Project {
	return &resolve.Project{Registry: resolve.NewRegistry(), Files: map[string]*resolve.FileContext{fc.FilePath: fc}}
}

func scopeOf(ref *refs.Reference) string { return ref.ScopeID }

func callFromRef(callerID, calleeID string, ref *refs.Reference) FunctionCall {
	return FunctionCall{
		CallerID:          callerID,
		CalleeID:          calleeID,
		CallLocation:      ref.Location.Start,
		IsMethodCall:      ref.IsMethodCall() || ref.ReceiverName != "",
		IsConstructorCall: ref.IsConstructorCall(),
	}
}

// flattenCallable collects every function/method/constructor definition
// reachable from defs, recursing into classes' Methods, for caller
// attribution.
func flattenCallable(defs []*symbols.Definition) []*symbols.Definition {
	var out []*symbols.Definition
	var walk func(d *symbols.Definition)
	walk = func(d *symbols.Definition) {
		switch d.Kind {
		case symbols.KindFunction, symbols.KindMethod, symbols.KindConstructor:
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

// flattenClasses collects every class/interface/struct-shaped definition
// reachable from defs, for type-discovery resolution and member-call
// search.
func flattenClasses(defs []*symbols.Definition) []*symbols.Definition {
	var out []*symbols.Definition
	var walk func(d *symbols.Definition)
	walk = func(d *symbols.Definition) {
		if d.Kind == symbols.KindClass || d.Kind == symbols.KindInterface {
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

// resolveDiscoveryClass fills in a TypeDiscovery's ClassDef by name
// lookup against this file's classes, or its import table when the
// constructed name came from another file — "else attempt
// to resolve C to a class definition in the current or target file".
func resolveDiscoveryClass(fc *resolve.FileContext, d *typetrack.Discovery) {
	for _, class := range fc.Classes {
		if class.Name == d.Info.ClassName {
			d.Info.ClassDef = class
			return
		}
	}
	if rec, ok := fc.Imports.Lookup(d.Info.ClassName); ok && rec.ImportedDef != nil && rec.ImportedDef.Kind == symbols.KindClass {
		d.Info.ClassDef = rec.ImportedDef
	}
}

// callerFor finds the smallest-area callable definition whose enclosing
// range contains loc, falling back to the synthetic module caller.
func callerFor(callable []*symbols.Definition, loc source.Range, filePath string) string {
	var best *symbols.Definition
	var bestArea int64 = -1
	for _, d := range callable {
		if !d.EnclosingRange.Contains(loc) {
			continue
		}
		area := d.EnclosingRange.Area()
		if best == nil || area < bestArea {
			best, bestArea = d, area
		}
	}
	if best == nil {
		return ModuleCallerID(filePath)
	}
	return best.ID
}

// discoverTypeDiscoveries implements the constructor-discovery rule: an
// ASSIGNMENT reference whose location contains a CONSTRUCTOR_CALL
// reference produces a TypeDiscovery keyed by the assignment's target
// variable.
func discoverTypeDiscoveries(all []*refs.Reference) []typetrack.Discovery {
	var assigns, constructs []*refs.Reference
	for _, r := range all {
		switch r.Type {
		case refs.TypeAssignment:
			assigns = append(assigns, r)
		default:
			if r.Kind == refs.KindConstructorCall {
				constructs = append(constructs, r)
			}
		}
	}

	var discoveries []typetrack.Discovery
	for _, a := range assigns {
		if a.AssignmentTarget == "" {
			continue
		}
		for _, c := range constructs {
			if !a.Location.Contains(c.Location) {
				continue
			}
			discoveries = append(discoveries, typetrack.Discovery{
				Variable: a.AssignmentTarget,
				Info:     typetrack.ClassInfo{ClassName: c.Name, DeclarationPosition: c.Location.Start},
				Scope:    typetrack.ScopeLocal,
			})
			break
		}
	}
	return discoveries
}

// BuildSync runs Phase 1 sequentially across files then Phase 2,
// synchronous entry point.
func (b *Builder) BuildSync(inputs []FileInput) (*CallGraph, []diag.Diagnostic) {
	sorted := sortedInputs(inputs)
	analyses := make([]FileAnalysisData, 0, len(sorted))
	for _, in := range sorted {
		analyses = append(analyses, b.AnalyzeFile(in))
	}
	return b.assemble(analyses)
}

// BuildAsync runs Phase 1 concurrently across files (bounded by
// b.Concurrency) then Phase 2 serially: the asynchronous entry point for
// large workspaces where bounded concurrency matters.
//
// Grounded on DeusData-codebase-memory-mcp's internal/pipeline/pipeline.go
// (errgroup.Group + a semaphore bounding concurrent file analysis).
func (b *Builder) BuildAsync(ctx context.Context, inputs []FileInput) (*CallGraph, []diag.Diagnostic, error) {
	sorted := sortedInputs(inputs)

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	sem := semaphore.NewWeighted(int64(concurrency))

	results := make([]FileAnalysisData, len(sorted))
	g, gctx := errgroup.WithContext(ctx)

	for i, in := range sorted {
		i, in := i, in
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = b.AnalyzeFile(in)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	graph, diags := b.assemble(results)
	return graph, diags, nil
}

func sortedInputs(inputs []FileInput) []FileInput {
	sorted := make([]FileInput, len(inputs))
	copy(sorted, inputs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].FilePath < sorted[j].FilePath })
	return sorted
}
