package extractor

import (
	"github.com/gnana997/callgraph/pkg/capture"
	"github.com/gnana997/callgraph/pkg/symbols"
)

// attachDecorators assigns each decorator capture's text to the nearest
// definition that starts on or after the decorator's own end line, since
// a decorator capture is never inside its owning definition's range (it
// precedes it in source order) — there is no containment relation to
// exploit the way there is for methods/properties/parameters.
func attachDecorators(defs []*symbols.Definition, decoratorCaptures []capture.NormalizedCapture) {
	if len(decoratorCaptures) == 0 {
		return
	}
	all := flattenAll(defs)
	for _, nc := range decoratorCaptures {
		target := nearestFollowing(all, nc.NodeLocation.End.Row)
		if target == nil {
			continue
		}
		target.Decorators = append(target.Decorators, nc.SymbolName)
	}
}

func flattenAll(defs []*symbols.Definition) []*symbols.Definition {
	var out []*symbols.Definition
	var walk func(d *symbols.Definition)
	walk = func(d *symbols.Definition) {
		out = append(out, d)
		for _, m := range d.Methods {
			walk(m)
		}
		for _, p := range d.Properties {
			walk(p)
		}
	}
	for _, d := range defs {
		walk(d)
	}
	return out
}

func nearestFollowing(all []*symbols.Definition, afterRow uint32) *symbols.Definition {
	var best *symbols.Definition
	var bestDistance int64 = -1
	for _, d := range all {
		start := int64(d.EnclosingRange.Start.Row)
		dist := start - int64(afterRow)
		if dist < 0 {
			continue
		}
		if best == nil || dist < bestDistance {
			best, bestDistance = d, dist
		}
	}
	return best
}
