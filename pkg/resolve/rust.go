package resolve

import "github.com/gnana997/callgraph/pkg/symbols"

// ResolveRustMethodCall implements `recv.method()` rule:
// find the type T of recv via local type tracking, then search
// definitions whose symbol id equals `${file_without_.rs}#T.method`, or
// whose range is within T's impl block (already folded into T's Methods
// by the extractor via Builder.AttachImplMethod, so a Methods-list
// search covers both cases once attachment has happened).
//
// Per open question, a missing receiver_location means
// "receiver unknown" — callers must not guess one; this function only
// ever receives a receiver name that was actually captured.
func (p *Project) ResolveRustMethodCall(fc *FileContext, receiverName, methodName string) (*symbols.Definition, bool) {
	if info, ok := fc.Tracker.Lookup(receiverName); ok {
		if def, ok := info.ClassDef.(*symbols.Definition); ok {
			if m, ok := FindMethod(def, methodName); ok {
				return m, true
			}
		}
	}
	if imported, ok := fc.Tracker.LookupImported(receiverName); ok {
		if def, ok := imported.ClassDef.(*symbols.Definition); ok {
			if m, ok := FindMethod(def, methodName); ok {
				return m, true
			}
		}
		if target, ok := p.Files[imported.SourceFile]; ok {
			if m, ok := findByNameAndMethod(target, imported.ClassName, methodName); ok {
				return m, true
			}
		}
	}
	return nil, false
}

// ResolveAssociatedCall implements `Type::method()` rule:
// a static/associated call resolved by finding Type (possibly through
// `use` imports), then searching methods named method in that type's
// file.
func (p *Project) ResolveAssociatedCall(fc *FileContext, typeName, methodName string) (*symbols.Definition, bool) {
	if m, ok := findByNameAndMethod(fc, typeName, methodName); ok {
		return m, true
	}

	if rec, ok := fc.Imports.Lookup(typeName); ok && rec.ImportedDef != nil {
		targetFile := rec.ImportedDef.FilePath
		if target, ok := p.Files[targetFile]; ok {
			if m, ok := findByNameAndMethod(target, typeName, methodName); ok {
				return m, true
			}
		}
	}

	return nil, false
}

func findByNameAndMethod(fc *FileContext, typeName, methodName string) (*symbols.Definition, bool) {
	for _, class := range fc.Classes {
		if class.Name != typeName {
			continue
		}
		if m, ok := FindMethod(class, methodName); ok {
			return m, true
		}
	}
	return nil, false
}

// ExpandUseGroup implements `use` group expansion: a
// single `use crate::foo::{Bar, Baz}` statement is expanded into
// individual bindings, one per named item, all sharing the same source
// module path.
func ExpandUseGroup(modulePath string, names []string) []Record {
	out := make([]Record, 0, len(names))
	for _, n := range names {
		out = append(out, Record{LocalName: n, SourceModule: modulePath})
	}
	return out
}
