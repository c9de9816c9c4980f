package callgraph

// Options is CallGraphOptions.
type Options struct {
	FileFilter     func(filePath string) bool
	MaxDepth       *int // non-negative when set
	IncludePrivate bool
	IncludeTests   bool
}

// Apply implements step 5: file_filter prunes nodes whose
// file fails the predicate, then max_depth performs a breadth-first
// descent from top_level_nodes, retaining only nodes reachable within
// max_depth hops, with edges filtered to match.
func (o Options) Apply(g *CallGraph) *CallGraph {
	filtered := g
	if o.FileFilter != nil {
		filtered = filterByFile(filtered, o.FileFilter)
	}
	if o.MaxDepth != nil {
		filtered = limitDepth(filtered, *o.MaxDepth)
	}
	return filtered
}

func filterByFile(g *CallGraph, keep func(string) bool) *CallGraph {
	out := &CallGraph{Nodes: map[string]*Node{}}
	for id, n := range g.Nodes {
		if keep(n.File) {
			out.Nodes[id] = n
		}
	}
	for _, e := range g.Edges {
		_, fromOK := out.Nodes[e.From]
		_, toOK := out.Nodes[e.To]
		if fromOK && toOK {
			out.Edges = append(out.Edges, e)
		} else if fromOK && isSynthetic(e.To) {
			out.Edges = append(out.Edges, e)
		}
	}
	out.TopLevelNodes = recomputeTopLevel(out)
	return out
}

func limitDepth(g *CallGraph, maxDepth int) *CallGraph {
	reachable := map[string]bool{}
	frontier := make([]string, 0, len(g.TopLevelNodes))
	for _, id := range g.TopLevelNodes {
		reachable[id] = true
		frontier = append(frontier, id)
	}

	adjacency := map[string][]Edge{}
	for _, e := range g.Edges {
		adjacency[e.From] = append(adjacency[e.From], e)
	}

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			for _, e := range adjacency[id] {
				if reachable[e.To] {
					continue
				}
				reachable[e.To] = true
				next = append(next, e.To)
			}
		}
		frontier = next
	}

	out := &CallGraph{Nodes: map[string]*Node{}}
	for id, n := range g.Nodes {
		if reachable[id] {
			out.Nodes[id] = n
		}
	}
	for _, e := range g.Edges {
		if reachable[e.From] && (reachable[e.To] || isSynthetic(e.To)) {
			out.Edges = append(out.Edges, e)
		}
	}
	for _, id := range g.TopLevelNodes {
		if reachable[id] {
			out.TopLevelNodes = append(out.TopLevelNodes, id)
		}
	}
	return out
}

func isSynthetic(id string) bool {
	return len(id) >= 10 && id[:10] == "<builtin>#"
}

// recomputeTopLevel recomputes top_level_nodes: id belongs in it iff no
// edge has to = id and from ≠ id.
func recomputeTopLevel(g *CallGraph) []string {
	hasIncoming := map[string]bool{}
	for _, e := range g.Edges {
		if e.From != e.To {
			hasIncoming[e.To] = true
		}
	}
	var out []string
	for id := range g.Nodes {
		if !hasIncoming[id] {
			out = append(out, id)
		}
	}
	return out
}
