// Package capture implements the capture normalizer: it
// maps raw per-language tree-sitter query captures into a uniform,
// language-agnostic tuple the rest of the pipeline consumes.
//
// Builds on pkg/parser/queries's capture model (QueryMatch/QueryCapture
// with dotted "category.field" names), generalized from a flat
// Symbol/ImportInfo/ExportInfo shape into the richer NormalizedCapture a
// call graph needs.
package capture

import "github.com/gnana997/callgraph/pkg/source"

// Category is the coarse classification of a normalized capture.
type Category string

const (
	CategoryScope      Category = "scope"
	CategoryDefinition Category = "definition"
	CategoryReference  Category = "reference"
	CategoryImport     Category = "import"
	CategoryExport     Category = "export"
	CategoryType       Category = "type"
	CategoryAssignment Category = "assignment"
	CategoryReturn     Category = "return"
	CategoryDecorator  Category = "decorator"
	CategoryModifier   Category = "modifier"
)

// Entity is an open enum: any string naming the syntactic entity a
// capture represents (class, function, method, constructor, property,
// variable, type, call, super, this, ...). New languages may introduce
// new entity names without changing this type.
type Entity string

const (
	EntityModule      Entity = "module"
	EntityNamespace   Entity = "namespace"
	EntityClass       Entity = "class"
	EntityInterface   Entity = "interface"
	EntityEnum        Entity = "enum"
	EntityFunction    Entity = "function"
	EntityClosure     Entity = "closure"
	EntityMethod      Entity = "method"
	EntityConstructor Entity = "constructor"
	EntityProperty    Entity = "property"
	EntityField       Entity = "field"
	EntityVariable    Entity = "variable"
	EntityConstant    Entity = "constant"
	EntityParameter   Entity = "parameter"
	EntityImport      Entity = "import"
	EntityTypeAlias   Entity = "type_alias"
	EntityDecorator   Entity = "decorator"
	EntityBlock       Entity = "block"
	EntityCall        Entity = "call"
	EntitySuper       Entity = "super"
	EntityThis        Entity = "this"
)

// ContextValue holds a context entry. Most entries are either a source
// Position (for "receiver_node", "target_node", "construct_target"), a
// string (for "type_name", "source_node"), or a []string (for
// "property_chain"/"type_arguments").
type ContextValue struct {
	Position      *source.Position
	Range         *source.Range
	Text          string
	StringList    []string
	HasPosition   bool
	HasRange      bool
	HasText       bool
	HasStringList bool
}

// PositionValue wraps a Position as a ContextValue.
func PositionValue(p source.Position) ContextValue {
	return ContextValue{Position: &p, HasPosition: true}
}

// RangeValue wraps a Range as a ContextValue, used for
// "enclosing_range" (a definition's full body, distinct from its name
// location).
func RangeValue(r source.Range) ContextValue {
	return ContextValue{Range: &r, HasRange: true}
}

// TextValue wraps a string as a ContextValue.
func TextValue(s string) ContextValue {
	return ContextValue{Text: s, HasText: true}
}

// ListValue wraps a string list (e.g. a property chain) as a ContextValue.
func ListValue(items []string) ContextValue {
	return ContextValue{StringList: items, HasStringList: true}
}

// NormalizedCapture is the uniform tuple the capture normalizer produces
// for every raw capture the language's table maps.
type NormalizedCapture struct {
	Category     Category
	Entity       Entity
	SymbolName   string
	NodeLocation source.Range
	NodeType     string
	Modifiers    map[string]ModifierValue
	Context      map[string]ContextValue
}

// ModifierValue is a bool-or-string modifier value, e.g.
// {"is_constructor": true} or {"visibility": "private"}.
type ModifierValue struct {
	Bool   bool
	Str    string
	IsBool bool
	IsStr  bool
}

func BoolModifier(b bool) ModifierValue     { return ModifierValue{Bool: b, IsBool: true} }
func StringModifier(s string) ModifierValue { return ModifierValue{Str: s, IsStr: true} }

// BoolModifier reads a boolean modifier, defaulting to false when absent
// or of the wrong kind.
func (n NormalizedCapture) BoolModifier(name string) bool {
	if v, ok := n.Modifiers[name]; ok && v.IsBool {
		return v.Bool
	}
	return false
}

// StringModifier reads a string modifier, defaulting to "" when absent.
func (n NormalizedCapture) StringModifier(name string) string {
	if v, ok := n.Modifiers[name]; ok && v.IsStr {
		return v.Str
	}
	return ""
}

// ContextPosition reads a position-valued context entry.
func (n NormalizedCapture) ContextPosition(name string) (source.Position, bool) {
	if v, ok := n.Context[name]; ok && v.HasPosition {
		return *v.Position, true
	}
	return source.Position{}, false
}

// ContextRange reads a range-valued context entry.
func (n NormalizedCapture) ContextRange(name string) (source.Range, bool) {
	if v, ok := n.Context[name]; ok && v.HasRange {
		return *v.Range, true
	}
	return source.Range{}, false
}

// ContextText reads a text-valued context entry.
func (n NormalizedCapture) ContextText(name string) (string, bool) {
	if v, ok := n.Context[name]; ok && v.HasText {
		return v.Text, true
	}
	return "", false
}

// ContextList reads a list-valued context entry.
func (n NormalizedCapture) ContextList(name string) ([]string, bool) {
	if v, ok := n.Context[name]; ok && v.HasStringList {
		return v.StringList, true
	}
	return nil, false
}
