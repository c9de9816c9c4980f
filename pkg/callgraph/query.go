package callgraph

import "strings"

// GetCallsFromDefinition returns the ordered calls a definition makes.
//
// O(1) map lookup over a prebuilt index rather than scanning edges.
func (g *CallGraph) GetCallsFromDefinition(defID string) []CallRef {
	n, ok := g.Nodes[defID]
	if !ok {
		return nil
	}
	out := make([]CallRef, len(n.Calls))
	copy(out, n.Calls)
	return out
}

// GetModuleLevelCalls returns the calls whose caller is the synthetic
// `<module>` definition for filePath.
func (g *CallGraph) GetModuleLevelCalls(filePath string) []Edge {
	moduleID := ModuleCallerID(filePath)
	var out []Edge
	for _, e := range g.Edges {
		if e.From == moduleID {
			out = append(out, e)
		}
	}
	return out
}

// IsDefinitionExported reports whether filePath exports a top-level
// definition named name.
func (g *CallGraph) IsDefinitionExported(filePath, name string) bool {
	for id, n := range g.Nodes {
		if n.File != filePath || n.Label != name {
			continue
		}
		if n.IsExported {
			return true
		}
		_ = id
	}
	return false
}

// DefinitionIDFor builds the standard symbol id: top-level
// definitions get `${file}#${name}`, methods get `${file}#${owner}.${name}`.
func DefinitionIDFor(filePath, owner, name string) string {
	if owner == "" {
		return filePath + "#" + name
	}
	return filePath + "#" + owner + "." + name
}

// ParseOwnerAndName splits a method-shaped label (`Owner.method`) back
// into its parts, the inverse of the method-id convention, for display
// purposes.
func ParseOwnerAndName(label string) (owner, name string) {
	idx := strings.LastIndex(label, ".")
	if idx < 0 {
		return "", label
	}
	return label[:idx], label[idx+1:]
}
