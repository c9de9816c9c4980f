package extractor

import (
	"github.com/gnana997/callgraph/pkg/capture"
	"github.com/gnana997/callgraph/pkg/scopetree"
	"github.com/gnana997/callgraph/pkg/symbols"
)

// scopeKindFor maps a scope-category capture's Entity onto the narrower
// scopetree.Kind enum works with.
func scopeKindFor(e capture.Entity) (scopetree.Kind, bool) {
	switch e {
	case capture.EntityModule:
		return scopetree.KindModule, true
	case capture.EntityNamespace:
		return scopetree.KindNamespace, true
	case capture.EntityClass, capture.EntityInterface, capture.EntityEnum:
		return scopetree.KindClass, true
	case capture.EntityFunction, capture.EntityClosure, capture.EntityMethod, capture.EntityConstructor:
		return scopetree.KindFunction, true
	case capture.EntityBlock:
		return scopetree.KindBlock, true
	default:
		return "", false
	}
}

// defKindFor maps a definition-category capture's Entity onto
// symbols.Kind, or reports false for entities that are not definitions
// in their own right (decorators are folded into their owner separately).
func defKindFor(e capture.Entity) (symbols.Kind, bool) {
	switch e {
	case capture.EntityClass:
		return symbols.KindClass, true
	case capture.EntityInterface:
		return symbols.KindInterface, true
	case capture.EntityEnum:
		return symbols.KindEnum, true
	case capture.EntityFunction:
		return symbols.KindFunction, true
	case capture.EntityNamespace:
		return symbols.KindNamespace, true
	case capture.EntityMethod:
		return symbols.KindMethod, true
	case capture.EntityConstructor:
		return symbols.KindConstructor, true
	case capture.EntityProperty:
		return symbols.KindProperty, true
	case capture.EntityField:
		return symbols.KindField, true
	case capture.EntityVariable:
		return symbols.KindVariable, true
	case capture.EntityConstant:
		return symbols.KindConstant, true
	case capture.EntityParameter:
		return symbols.KindParameter, true
	case capture.EntityTypeAlias:
		return symbols.KindTypeAlias, true
	default:
		return "", false
	}
}

// isContainerKind reports whether a definition kind attaches via
// ProcessingContext.AttachContainer (classes, interfaces, enums,
// functions, namespaces).
func isContainerKind(k symbols.Kind) bool {
	switch k {
	case symbols.KindClass, symbols.KindInterface, symbols.KindEnum, symbols.KindFunction, symbols.KindNamespace:
		return true
	default:
		return false
	}
}
