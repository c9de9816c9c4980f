package capture

import "github.com/gnana997/callgraph/pkg/source"

// Node is the minimal surface the normalizer needs from a parsed
// tree-sitter node; pkg/parser/queries adapts ts.Node into this so this
// package never imports the tree-sitter bindings directly.
type Node interface {
	Range() source.Range
	Type() string
	Text() string
	ChildByField(name string) (Node, bool)
	Parent() (Node, bool)
}

// RawCapture is a single capture as produced by query execution, before
// normalization: a dotted capture name (e.g. "def.class", "ref.call",
// "import.named.alias"), the matched node, and its text.
type RawCapture struct {
	Name string
	Node Node
	Text string
}

// Extractor computes a modifier or a context value from a raw capture's
// node. An extractor that panics is treated as an empty extraction — the
// capture is still emitted with no modifier/context contribution from
// that extractor.
type ModifierExtractor func(n Node) (name string, value ModifierValue, ok bool)
type ContextExtractor func(n Node) (name string, value ContextValue, ok bool)

// CaptureEntry is one row of a language's capture configuration table:
// capture_name → {category, entity, extractors}.
type CaptureEntry struct {
	Category           Category
	Entity             Entity
	ModifierExtractors []ModifierExtractor
	ContextExtractors  []ContextExtractor
}

// Config is a language capture configuration: capture_name → entry.
// Per the call-graph design, this table is data the core consumes, not part of the
// core algorithm itself — see pkg/capture/config_*.go for the concrete
// per-language tables.
type Config map[string]CaptureEntry

// Normalizer applies a Config to a sequence of raw captures, in O(captures).
// It never inspects parent context except through the extractors supplied
// in the Config — the normalizer itself is purely table-driven.
type Normalizer struct {
	config Config
}

func NewNormalizer(config Config) *Normalizer {
	return &Normalizer{config: config}
}

// Normalize maps raw captures to NormalizedCapture tuples. Captures with
// no mapping in the config are silently dropped.
func (n *Normalizer) Normalize(raws []RawCapture) []NormalizedCapture {
	out := make([]NormalizedCapture, 0, len(raws))
	for _, raw := range raws {
		entry, ok := n.config[raw.Name]
		if !ok {
			continue
		}
		out = append(out, n.apply(raw, entry))
	}
	return out
}

func (n *Normalizer) apply(raw RawCapture, entry CaptureEntry) NormalizedCapture {
	nc := NormalizedCapture{
		Category:     entry.Category,
		Entity:       entry.Entity,
		SymbolName:   raw.Text,
		NodeLocation: raw.Node.Range(),
		NodeType:     raw.Node.Type(),
		Modifiers:    make(map[string]ModifierValue),
		Context:      make(map[string]ContextValue),
	}

	for _, extract := range entry.ModifierExtractors {
		name, value, ok := safeModifierExtract(extract, raw.Node)
		if ok {
			nc.Modifiers[name] = value
		}
	}
	for _, extract := range entry.ContextExtractors {
		name, value, ok := safeContextExtract(extract, raw.Node)
		if ok {
			nc.Context[name] = value
		}
	}

	return nc
}

// safeModifierExtract treats a panicking extractor as an empty
// extraction.
func safeModifierExtract(extract ModifierExtractor, node Node) (name string, value ModifierValue, ok bool) {
	defer func() {
		if recover() != nil {
			name, value, ok = "", ModifierValue{}, false
		}
	}()
	return extract(node)
}

func safeContextExtract(extract ContextExtractor, node Node) (name string, value ContextValue, ok bool) {
	defer func() {
		if recover() != nil {
			name, value, ok = "", ContextValue{}, false
		}
	}()
	return extract(node)
}
