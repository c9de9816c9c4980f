package symbols

import (
	"fmt"

	"github.com/gnana997/callgraph/pkg/source"
)

// locKey produces a stable string key for a location, used to index the
// orphan maps and to deduplicate definitions for the same
// (kind, location, name).
func locKey(rng source.Range) string {
	return fmt.Sprintf("%d:%d:%d:%d", rng.Start.Row, rng.Start.Column, rng.End.Row, rng.End.Column)
}

// orphanKind classifies which orphan bucket a pending child belongs to.
type orphanKind int

const (
	orphanMethod orphanKind = iota
	orphanProperty
	orphanParameter
	orphanConstructor
)

type orphan struct {
	kind orphanKind
	def  *Definition
}

// Builder folds definition/decorator captures into structured Definitions,
// tolerating out-of-order arrival (methods before their class, parameters
// before their method) via orphan reattachment, using parent-id-keyed
// attachment maps and location-keyed orphan maps.
type Builder struct {
	filePath string

	byKey map[string]*Definition // locKey(range)+kind+name -> def, for duplicate-update-in-place

	// topLevel holds the root-level definitions in first-seen order.
	topLevel []*Definition

	// orphans holds methods/properties/parameters/constructors whose
	// parent has not yet been seen, keyed by their own location.
	orphans map[string]orphan

	// containers holds every class/interface/function/method/constructor
	// added so far, for orphan-containment rescans, in insertion order.
	containers []*Definition

	// namedOrphans holds Rust impl-block methods awaiting a struct
	// definition with a matching name, keyed by that name.
	namedOrphans map[string][]*Definition
}

func NewBuilder(filePath string) *Builder {
	return &Builder{
		filePath: filePath,
		byKey:    make(map[string]*Definition),
		orphans:  make(map[string]orphan),
	}
}

// upsert returns the existing definition for (kind, range, name) if one
// was already added, updating it in place; otherwise registers def as new.
// This implements "duplicate captures update in place
// rather than duplicate" guarantee.
func (b *Builder) upsert(def *Definition) *Definition {
	key := string(def.Kind) + "|" + def.Name + "|" + locKey(def.Range)
	if existing, ok := b.byKey[key]; ok {
		existing.ScopeID = def.ScopeID
		existing.EnclosingRange = def.EnclosingRange
		existing.Availability = def.Availability
		existing.IsExported = existing.IsExported || def.IsExported
		return existing
	}
	def.EnsureArrays()
	b.byKey[key] = def
	return def
}

// AddContainer adds a class, interface, enum, function, namespace,
// constructor, or method definition — anything that can itself be a
// parent for orphaned children, or can itself be reattached once its own
// parent is seen.
func (b *Builder) AddContainer(def *Definition) *Definition {
	def.FilePath = b.filePath
	def = b.upsert(def)
	b.containers = append(b.containers, def)

	if isTopLevelKind(def.Kind) {
		b.addTopLevelOnce(def)
	}

	b.reattachOrphans(def)

	if def.Kind == KindClass {
		if pending, ok := b.namedOrphans[def.Name]; ok {
			for _, m := range pending {
				def.Methods = appendOnce(def.Methods, m)
			}
			delete(b.namedOrphans, def.Name)
		}
	}

	return def
}

// AddVariable adds a non-container definition: variable, constant,
// import, type alias. These never have children and are never orphans
// themselves, though they may be attached to a class as a property.
func (b *Builder) AddVariable(def *Definition) *Definition {
	def.FilePath = b.filePath
	def = b.upsert(def)
	if isTopLevelKind(def.Kind) {
		b.addTopLevelOnce(def)
	}
	return def
}

func (b *Builder) addTopLevelOnce(def *Definition) {
	for _, d := range b.topLevel {
		if d == def {
			return
		}
	}
	b.topLevel = append(b.topLevel, def)
}

func isTopLevelKind(k Kind) bool {
	switch k {
	case KindClass, KindInterface, KindEnum, KindFunction, KindNamespace, KindVariable, KindConstant, KindImport, KindTypeAlias:
		return true
	default:
		return false
	}
}

// AddMethod folds a method capture, attaching it to its class/interface
// immediately if that parent is already known, or parking it as an
// orphan (keyed by its own location) otherwise. A method is itself
// registered as a container, since its own parameters must be able to
// find it via findSmallestContainer.
func (b *Builder) AddMethod(def *Definition) *Definition {
	return b.addOrphanableContainerChild(def, orphanMethod)
}

// AddProperty folds a property/field capture the same way AddMethod does.
// Properties never hold nested children, so they are not registered as
// containers.
func (b *Builder) AddProperty(def *Definition) *Definition {
	return b.addOrphanableChild(def, orphanProperty)
}

// AddConstructor folds a constructor capture the same way AddMethod does,
// also registering it as a container for its own parameters.
func (b *Builder) AddConstructor(def *Definition) *Definition {
	return b.addOrphanableContainerChild(def, orphanConstructor)
}

// AddParameter attaches a parameter to the smallest enclosing
// method/constructor/function/interface-method-signature seen so far, in
// that priority order, or parks it as an orphan.
func (b *Builder) AddParameter(def *Definition) *Definition {
	return b.addOrphanableChild(def, orphanParameter)
}

func (b *Builder) addOrphanableChild(def *Definition, kind orphanKind) *Definition {
	def.FilePath = b.filePath
	def = b.upsert(def)

	parent := b.findSmallestContainer(def.Range, kind)
	if parent == nil {
		b.orphans[locKey(def.Range)] = orphan{kind: kind, def: def}
		return def
	}
	attach(parent, def, kind)
	return def
}

// addOrphanableContainerChild is addOrphanableChild plus registration of
// def itself as a container, and an immediate orphan rescan so that any
// parameter captured before this method/constructor can now attach to it.
func (b *Builder) addOrphanableContainerChild(def *Definition, kind orphanKind) *Definition {
	def.FilePath = b.filePath
	def = b.upsert(def)
	b.containers = append(b.containers, def)

	parent := b.findSmallestContainer(def.Range, kind)
	if parent == nil {
		b.orphans[locKey(def.Range)] = orphan{kind: kind, def: def}
	} else {
		attach(parent, def, kind)
	}

	b.reattachOrphans(def)
	return def
}

// findSmallestContainer returns the smallest-area already-known container
// whose enclosing range strictly contains loc, honoring the
// method/constructor/interface-method priority order for parameters that
// specifies.
func (b *Builder) findSmallestContainer(loc source.Range, kind orphanKind) *Definition {
	var best *Definition
	var bestArea int64 = -1

	for _, c := range b.containers {
		if !acceptsChild(c.Kind, kind) {
			continue
		}
		if !c.EnclosingRange.Contains(loc) {
			continue
		}
		area := c.EnclosingRange.Area()
		if best == nil || area < bestArea {
			best, bestArea = c, area
		} else if area == bestArea {
			// Ambiguous orphan attachment:
			// keep the first-seen candidate deterministically.
		}
	}
	return best
}

func acceptsChild(parentKind Kind, childKind orphanKind) bool {
	switch childKind {
	case orphanMethod, orphanProperty, orphanConstructor:
		return parentKind == KindClass || parentKind == KindInterface
	case orphanParameter:
		return parentKind == KindMethod || parentKind == KindConstructor || parentKind == KindFunction || parentKind == KindInterface
	default:
		return false
	}
}

func attach(parent *Definition, child *Definition, kind orphanKind) {
	switch kind {
	case orphanMethod:
		parent.Methods = appendOnce(parent.Methods, child)
	case orphanProperty:
		parent.Properties = appendOnce(parent.Properties, child)
	case orphanConstructor:
		parent.Methods = appendOnce(parent.Methods, child)
	case orphanParameter:
		parent.Parameters = appendOnce(parent.Parameters, child)
	}
}

func appendOnce(list []*Definition, def *Definition) []*Definition {
	for _, d := range list {
		if d == def {
			return list
		}
	}
	return append(list, def)
}

// reattachOrphans rescans pending orphans after a new container is added,
// reparenting any whose location is strictly contained within the new
// parent's enclosing range.
func (b *Builder) reattachOrphans(newParent *Definition) {
	for key, o := range b.orphans {
		if !acceptsChild(newParent.Kind, o.kind) {
			continue
		}
		if !newParent.EnclosingRange.Contains(o.def.Range) {
			continue
		}
		attach(newParent, o.def, o.kind)
		delete(b.orphans, key)
	}
}

// Build returns a fresh ordered sequence of top-level definitions. Build
// is idempotent and the Builder remains usable afterward, including any
// previously built entities.
func (b *Builder) Build() []*Definition {
	out := make([]*Definition, len(b.topLevel))
	copy(out, b.topLevel)
	for _, d := range out {
		d.EnsureArrays()
		ensureArraysDeep(d)
	}
	return out
}

func ensureArraysDeep(d *Definition) {
	for _, m := range d.Methods {
		m.EnsureArrays()
		ensureArraysDeep(m)
	}
	for _, p := range d.Properties {
		p.EnsureArrays()
	}
	for _, p := range d.Parameters {
		p.EnsureArrays()
	}
}

// OrphanCount returns the number of still-unattached orphans. Used by
// property 3 (orphan convergence) tests.
func (b *Builder) OrphanCount() int {
	return len(b.orphans)
}

// AttachImplMethod attaches a Rust impl-block method to the struct named
// structName by name rather than by spatial containment, since `impl T`
// blocks are textually separate from `struct T` (Rust
// resolution notes). If the struct has not been seen yet, the method is
// parked in a name-keyed orphan bucket and reattached the moment
// AddContainer sees a class with that name.
func (b *Builder) AttachImplMethod(structName string, method *Definition) *Definition {
	method.FilePath = b.filePath
	method = b.upsert(method)

	for _, c := range b.containers {
		if c.Kind == KindClass && c.Name == structName {
			c.Methods = appendOnce(c.Methods, method)
			return method
		}
	}

	if b.namedOrphans == nil {
		b.namedOrphans = map[string][]*Definition{}
	}
	b.namedOrphans[structName] = append(b.namedOrphans[structName], method)
	return method
}
