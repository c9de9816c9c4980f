package capture

import "strings"

// Shared modifier/context extractors reused across language tables.
// These read from named fields via Node.ChildByField, which
// pkg/parser/queries implements over the tree-sitter node.

func modIsConstructor(n Node) (string, ModifierValue, bool) {
	name := n.Text()
	return "is_constructor", BoolModifier(name == "new" || strings.HasSuffix(name, "::new")), true
}

func modIsStatic(n Node) (string, ModifierValue, bool) {
	if _, ok := n.ChildByField("static"); ok {
		return "is_static", BoolModifier(true), true
	}
	return "is_static", BoolModifier(false), true
}

func modIsAsync(n Node) (string, ModifierValue, bool) {
	if _, ok := n.ChildByField("async"); ok {
		return "is_async", BoolModifier(true), true
	}
	return "is_async", BoolModifier(false), true
}

// fieldUpward looks for a named field on n, then on a bounded number of
// ancestors. Every capture in the query tables binds to the innermost name
// node (so Range/SymbolName come out right), but fields like "object" or
// "type" live on that name's enclosing construct — so context extractors
// walk upward the same way ctxSource/ctxEnclosingRange do instead of
// expecting the capture to already sit on the bigger node.
func fieldUpward(n Node, depth int, fields ...string) (Node, bool) {
	cur := n
	for i := 0; i < depth; i++ {
		for _, f := range fields {
			if v, ok := cur.ChildByField(f); ok {
				return v, true
			}
		}
		parent, ok := cur.Parent()
		if !ok {
			break
		}
		cur = parent
	}
	return nil, false
}

func ctxReceiver(n Node) (string, ContextValue, bool) {
	recv, ok := fieldUpward(n, 2, "object", "receiver", "value")
	if !ok {
		return "", ContextValue{}, false
	}
	r := recv.Range()
	return "receiver_node", PositionValue(r.Start), true
}

func ctxConstructTarget(n Node) (string, ContextValue, bool) {
	target, ok := fieldUpward(n, 2, "constructor", "function")
	if !ok {
		return "", ContextValue{}, false
	}
	return "construct_target", PositionValue(target.Range().Start), true
}

func ctxTypeName(n Node) (string, ContextValue, bool) {
	t, ok := fieldUpward(n, 2, "type")
	if !ok {
		return "", ContextValue{}, false
	}
	return "type_name", TextValue(t.Text()), true
}

func ctxReturnType(n Node) (string, ContextValue, bool) {
	t, ok := fieldUpward(n, 2, "return_type")
	if !ok {
		return "", ContextValue{}, false
	}
	return "return_type", TextValue(t.Text()), true
}

// ctxSource finds the module-path string for an import/export capture.
// The "source" field usually lives on an ancestor statement node (an
// import_specifier's source sits on its enclosing import_statement), so
// this walks up a bounded number of parents looking for it.
func ctxSource(n Node) (string, ContextValue, bool) {
	cur := n
	for i := 0; i < 6; i++ {
		if s, ok := cur.ChildByField("source"); ok {
			return "source_node", TextValue(strings.Trim(s.Text(), `"'`)), true
		}
		if s, ok := cur.ChildByField("module_name"); ok {
			return "source_node", TextValue(strings.Trim(s.Text(), `"'`)), true
		}
		parent, ok := cur.Parent()
		if !ok {
			break
		}
		cur = parent
	}
	return "", ContextValue{}, false
}

// ctxEnclosingRange resolves a definition capture's full body range from
// its immediate parent, since every def.* entry in the query tables
// captures the name node and the declaration node is that name's direct
// parent (function_declaration.name, class_definition.name, ...).
func ctxEnclosingRange(n Node) (string, ContextValue, bool) {
	parent, ok := n.Parent()
	if !ok {
		return "", ContextValue{}, false
	}
	return "enclosing_range", RangeValue(parent.Range()), true
}

// ctxImplType finds the struct/enum name an `impl` block's method
// belongs to, by walking up to the nearest "impl_item" ancestor and
// reading its "type" field. Rust's impl blocks are textually separate
// from the struct they extend, so this is how def.impl_fn tells the
// definition builder which struct to attach itself to by name rather
// than by spatial containment.
func ctxImplType(n Node) (string, ContextValue, bool) {
	cur := n
	for i := 0; i < 8; i++ {
		parent, ok := cur.Parent()
		if !ok {
			break
		}
		if parent.Type() == "impl_item" {
			if t, ok := parent.ChildByField("type"); ok {
				return "impl_type", TextValue(t.Text()), true
			}
			break
		}
		cur = parent
	}
	return "", ContextValue{}, false
}

// propertyField reads a member/attribute-access node's "property" (or
// "attribute") field and its "object" field. obj is nil when the node has
// no object field to chain further through.
func propertyField(n Node) (obj Node, prop Node, ok bool) {
	prop, ok = n.ChildByField("property")
	if !ok {
		prop, ok = n.ChildByField("attribute")
	}
	if !ok {
		return nil, nil, false
	}
	obj, ok = n.ChildByField("object")
	if !ok {
		obj, _ = n.ChildByField("value")
	}
	return obj, prop, true
}

func ctxPropertyChain(n Node) (string, ContextValue, bool) {
	cur := n
	if _, _, ok := propertyField(cur); !ok {
		parent, ok := n.Parent()
		if !ok {
			return "", ContextValue{}, false
		}
		cur = parent
	}

	var chain []string
	for {
		obj, prop, ok := propertyField(cur)
		if !ok {
			break
		}
		chain = append([]string{prop.Text()}, chain...)
		if obj == nil {
			break
		}
		cur = obj
	}
	if len(chain) == 0 {
		return "", ContextValue{}, false
	}
	return "property_chain", ListValue(chain), true
}
