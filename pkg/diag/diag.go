// Package diag defines the structured diagnostic taxonomy of // Diagnostics are collected on build results rather than thrown; no
// error aborts a build except UnknownLanguage or "all files failed to
// parse".
package diag

// Kind enumerates the five error kinds names.
type Kind string

const (
	ParseFailure              Kind = "ParseFailure"
	UnknownLanguage           Kind = "UnknownLanguage"
	ResolverCycle             Kind = "ResolverCycle"
	OrphanAttachmentAmbiguous Kind = "OrphanAttachmentAmbiguous"
	RegistryConflict          Kind = "RegistryConflict"
)

// Diagnostic is one structured, non-fatal build event.
type Diagnostic struct {
	Kind     Kind
	Message  string
	FilePath string
}

func New(kind Kind, filePath, message string) Diagnostic {
	return Diagnostic{Kind: kind, FilePath: filePath, Message: message}
}

// Collector accumulates diagnostics across a build without aborting it.
type Collector struct {
	items []Diagnostic
}

func (c *Collector) Add(d Diagnostic) { c.items = append(c.items, d) }

func (c *Collector) Addf(kind Kind, filePath, message string) {
	c.Add(New(kind, filePath, message))
}

func (c *Collector) All() []Diagnostic {
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collector) HasKind(kind Kind) bool {
	for _, d := range c.items {
		if d.Kind == kind {
			return true
		}
	}
	return false
}
