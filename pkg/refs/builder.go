package refs

import (
	"github.com/gnana997/callgraph/pkg/capture"
	"github.com/gnana997/callgraph/pkg/source"
)

// FromCapture derives a Reference from a normalized capture whose
// category is reference, assignment, or return, plus the scope id the
// scope processor resolved for its location. Captures of any other
// category are not meaningful input and return (nil, false).
//
// Implements the category-to-Type/Kind derivation table.
func FromCapture(nc capture.NormalizedCapture, scopeID string) (*Reference, bool) {
	switch nc.Category {
	case capture.CategoryReference, capture.CategoryAssignment, capture.CategoryReturn:
		// handled below
	default:
		return nil, false
	}

	kind := deriveKind(nc)
	r := &Reference{
		Location: nc.NodeLocation,
		Type:     kindToType[kind],
		ScopeID:  scopeID,
		Name:     nc.SymbolName,
		Kind:     kind,
	}

	attachCallType(r, kind)
	attachReceiver(r, nc)
	attachPropertyChain(r, nc)
	attachConstructTarget(r, nc)
	attachTypeInfo(r, nc, kind)
	attachAssignment(r, nc, kind)

	r.IsGlobal = nc.BoolModifier("is_global")
	r.IsNonlocal = nc.BoolModifier("is_nonlocal")
	if len(r.PropertyChain) > 0 {
		r.ReceiverName = r.PropertyChain[0]
	}

	return r, true
}

// deriveKind implements step 1.
func deriveKind(nc capture.NormalizedCapture) Kind {
	switch nc.Category {
	case capture.CategoryAssignment:
		return KindAssignment
	case capture.CategoryReturn:
		return KindReturn
	}

	switch nc.Entity {
	case capture.EntityCall:
		if nc.BoolModifier("is_constructor") {
			return KindConstructorCall
		}
		if _, ok := nc.ContextPosition("receiver_node"); ok {
			return KindMethodCall
		}
		return KindFunctionCall
	case capture.EntitySuper:
		return KindSuperCall
	case capture.EntityMethod:
		return KindMethodCall
	case capture.EntityProperty, capture.EntityField:
		return KindPropertyAccess
	case capture.EntityTypeAlias, capture.EntityClass, capture.EntityInterface, capture.EntityEnum:
		return KindTypeReference
	default:
		return KindVariableReference
	}
}

func attachCallType(r *Reference, kind Kind) {
	var ct CallType
	switch kind {
	case KindFunctionCall:
		ct = CallTypeFunction
	case KindMethodCall:
		ct = CallTypeMethod
	case KindConstructorCall:
		ct = CallTypeConstructor
	case KindSuperCall:
		ct = CallTypeSuper
	default:
		return
	}
	r.CallType = &ct
}

func attachReceiver(r *Reference, nc capture.NormalizedCapture) {
	pos, ok := nc.ContextPosition("receiver_node")
	if !ok {
		return
	}
	loc := source.Range{Start: pos, End: pos}
	r.ReceiverLocation = &loc

	if r.Kind == KindMethodCall || r.Kind == KindPropertyAccess {
		access := AccessMethod
		if r.Kind == KindPropertyAccess {
			access = AccessProperty
		}
		r.MemberAccess = &MemberAccess{
			AccessType:      access,
			IsOptionalChain: nc.BoolModifier("is_optional_chain"),
		}
	}
}

func attachPropertyChain(r *Reference, nc capture.NormalizedCapture) {
	if chain, ok := nc.ContextList("property_chain"); ok {
		r.PropertyChain = chain
	}
}

func attachConstructTarget(r *Reference, nc capture.NormalizedCapture) {
	pos, ok := nc.ContextPosition("construct_target")
	if !ok {
		return
	}
	loc := source.Range{Start: pos, End: pos}
	r.ConstructTargetLocation = &loc
}

// attachTypeInfo implements steps 3-4 for type_info,
// type_flow, and the generic-argument advisory-text rule.
func attachTypeInfo(r *Reference, nc capture.NormalizedCapture, kind Kind) {
	name, ok := nc.ContextText("type_name")
	certainty := CertaintyInferred
	if !ok {
		name, ok = nc.ContextText("return_type")
		if ok {
			certainty = CertaintyDeclared
		}
	} else {
		certainty = CertaintyDeclared
	}
	if !ok {
		return
	}

	if args, ok := nc.ContextList("type_arguments"); ok && len(args) > 0 && kind == KindMethodCall {
		for _, a := range args {
			name += "<" + a + ">"
		}
	}

	r.TypeInfo = &TypeInfo{TypeName: name, Certainty: certainty}

	if kind == KindReturn {
		r.TypeFlow = &TypeFlow{SourceType: name}
	}
}

func attachAssignment(r *Reference, nc capture.NormalizedCapture, kind Kind) {
	if kind != KindAssignment {
		return
	}
	r.AssignmentTarget = nc.SymbolName
	if src, ok := nc.ContextText("source_type"); ok {
		r.AssignmentSource = src
	}
	if typeName, ok := nc.ContextText("type_name"); ok {
		r.TypeFlow = &TypeFlow{TargetType: typeName}
	}
}
