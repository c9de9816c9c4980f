// Package symbols implements the definition builder: it
// folds normalized definition/decorator captures into structured
// SymbolDefinition entities with non-null-array guarantees and orphan
// reattachment.
//
// Generalizes buildSymbol/findDeclarationNode/buildFQN/isExported from a
// single flat Symbol struct into the richer class/interface/function/
// variable shape a call graph needs, plus orphan-reattachment machinery
// for captures that arrive out of order (methods before their class).
package symbols

import "github.com/gnana997/callgraph/pkg/source"

// Kind enumerates the definition kinds a Definition can have.
type Kind string

const (
	KindClass       Kind = "class"
	KindInterface   Kind = "interface"
	KindEnum        Kind = "enum"
	KindFunction    Kind = "function"
	KindMethod      Kind = "method"
	KindConstructor Kind = "constructor"
	KindProperty    Kind = "property"
	KindField       Kind = "field"
	KindVariable    Kind = "variable"
	KindConstant    Kind = "constant"
	KindParameter   Kind = "parameter"
	KindImport      Kind = "import"
	KindTypeAlias   Kind = "type_alias"
	KindNamespace   Kind = "namespace"
	KindDecorator   Kind = "decorator"
	KindModule      Kind = "module"
)

// AvailabilityKind distinguishes how wide a definition's visibility is.
type AvailabilityKind string

const (
	AvailabilityFilePrivate AvailabilityKind = "file-private"
	AvailabilityFileExport  AvailabilityKind = "file-export"
	AvailabilityPublic      AvailabilityKind = "public"
)

// Availability is the {file-private, file-export{...}, public} union of
// export visibility plus the metadata export status carries.
type Availability struct {
	Kind       AvailabilityKind
	ExportName string // set when Kind == AvailabilityFileExport
	IsDefault  bool
	IsReexport bool
}

func FilePrivate() Availability { return Availability{Kind: AvailabilityFilePrivate} }
func Public() Availability      { return Availability{Kind: AvailabilityPublic} }
func FileExport(name string, isDefault, isReexport bool) Availability {
	return Availability{Kind: AvailabilityFileExport, ExportName: name, IsDefault: isDefault, IsReexport: isReexport}
}

// Definition is SymbolDefinition.
type Definition struct {
	ID      string // "${file_path}#${name}" or "${file_path}#${owner}.${name}"
	Name    string
	Kind    Kind
	Range   source.Range
	ScopeID string

	Availability Availability
	ImportSource string // optional: non-empty when Kind == KindImport
	IsHoisted    bool
	IsExported   bool
	IsImported   bool

	FilePath string

	// Class/interface/function-only fields. Always present as (possibly
	// empty) ordered slices, never nil, per the property 2.
	Methods    []*Definition
	Properties []*Definition
	Parameters []*Definition
	Decorators []string
	Extends    []string
	Members    []*Definition // enum members / namespace members

	// EnclosingRange is the full construct body, distinct from Range
	// (the identifier). Used for orphan containment checks and for
	// Phase 1 reference collection.
	EnclosingRange source.Range
}

// EnsureArrays guarantees the non-null-array invariant regardless of
// how the definition was constructed.
func (d *Definition) EnsureArrays() {
	if d.Methods == nil {
		d.Methods = []*Definition{}
	}
	if d.Properties == nil {
		d.Properties = []*Definition{}
	}
	if d.Parameters == nil {
		d.Parameters = []*Definition{}
	}
	if d.Decorators == nil {
		d.Decorators = []string{}
	}
	if d.Extends == nil {
		d.Extends = []string{}
	}
	if d.Members == nil {
		d.Members = []*Definition{}
	}
}

// IsCallable reports whether this definition kind can be the target of a
// FunctionCall, per the step 4d.
func (d *Definition) IsCallable() bool {
	switch d.Kind {
	case KindFunction, KindMethod, KindClass, KindConstructor:
		return true
	default:
		return false
	}
}
