package resolve

import (
	"github.com/gnana997/callgraph/pkg/source"
	"github.com/gnana997/callgraph/pkg/symbols"
)

// Record is ImportRecord: the result of resolving one import
// binding to a definition in the source file's export table.
type Record struct {
	Statement    source.Range
	LocalName    string
	SourceModule string
	ImportedDef  *symbols.Definition // nil for star/glob imports

	// ExportedName is the name as exported by SourceModule, when it
	// differs from LocalName (an aliased named import). Empty means no
	// alias: look up LocalName directly in the source module's exports.
	ExportedName string

	// IsDefault marks a binding that resolves to its source module's
	// default export regardless of ExportedName/LocalName.
	IsDefault bool

	IsNamespace      bool
	NamespaceMembers map[string]*symbols.Definition // populated for namespace bindings
}

// Table is one file's local-name → import-record mapping, the "file's
// import table" step 1 follows.
type Table struct {
	byLocalName map[string]*Record
}

func NewTable() *Table { return &Table{byLocalName: map[string]*Record{}} }

func (t *Table) Add(r *Record) { t.byLocalName[r.LocalName] = r }

func (t *Table) Lookup(localName string) (*Record, bool) {
	r, ok := t.byLocalName[localName]
	return r, ok
}

// LocalNames returns every locally-bound import name in this table, for
// Phase 2's importedClasses wiring pass.
func (t *Table) LocalNames() []string {
	out := make([]string, 0, len(t.byLocalName))
	for name := range t.byLocalName {
		out = append(out, name)
	}
	return out
}

// MemberOfNamespace resolves `ns.member` for a namespace import binding,
// per the JS/TS namespace-import rule.
func (t *Table) MemberOfNamespace(localName, member string) (*symbols.Definition, bool) {
	r, ok := t.byLocalName[localName]
	if !ok || !r.IsNamespace {
		return nil, false
	}
	def, ok := r.NamespaceMembers[member]
	return def, ok
}
