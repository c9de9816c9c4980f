// Package refs implements the reference builder: it folds
// normalized reference/assignment/return captures into typed
// SymbolReference records carrying receiver, property-chain, and
// declared-type metadata for the resolver (pkg/resolve) to consume.
//
// Extends pkg/parser/queries's capture-to-match pipeline
// (QueryMatch/QueryCapture with parsed "category.field" names) with a
// ReferenceKind derivation table a flat query-match shape doesn't need.
package refs

import "github.com/gnana997/callgraph/pkg/source"

// Kind is the internal classification derived from category+entity+modifiers,
// before being mapped down to the coarser public Type.
type Kind string

const (
	KindAssignment        Kind = "ASSIGNMENT"
	KindReturn            Kind = "RETURN"
	KindConstructorCall   Kind = "CONSTRUCTOR_CALL"
	KindMethodCall        Kind = "METHOD_CALL"
	KindFunctionCall      Kind = "FUNCTION_CALL"
	KindSuperCall         Kind = "SUPER_CALL"
	KindPropertyAccess    Kind = "PROPERTY_ACCESS"
	KindTypeReference     Kind = "TYPE_REFERENCE"
	KindVariableReference Kind = "VARIABLE_REFERENCE"
)

// Type is SymbolReference.type — the public, coarser
// classification Kind maps onto.
type Type string

const (
	TypeRead         Type = "read"
	TypeCall         Type = "call"
	TypeConstruct    Type = "construct"
	TypeMemberAccess Type = "member_access"
	TypeType         Type = "type"
	TypeAssignment   Type = "assignment"
	TypeReturn       Type = "return"
)

// kindToType implements step 2.
var kindToType = map[Kind]Type{
	KindAssignment:        TypeAssignment,
	KindReturn:            TypeReturn,
	KindConstructorCall:   TypeConstruct,
	KindMethodCall:        TypeCall,
	KindFunctionCall:      TypeCall,
	KindSuperCall:         TypeCall,
	KindPropertyAccess:    TypeMemberAccess,
	KindTypeReference:     TypeType,
	KindVariableReference: TypeRead,
}

// CallType is the optional call_type carried by call-shaped references.
type CallType string

const (
	CallTypeFunction    CallType = "function"
	CallTypeMethod      CallType = "method"
	CallTypeConstructor CallType = "constructor"
	CallTypeSuper       CallType = "super"
)

// AccessType distinguishes a member_access reference's flavor.
type AccessType string

const (
	AccessProperty AccessType = "property"
	AccessMethod   AccessType = "method"
)

// Certainty marks whether type_info came from an explicit annotation or
// was inferred from flow.
type Certainty string

const (
	CertaintyDeclared Certainty = "declared"
	CertaintyInferred Certainty = "inferred"
)

type MemberAccess struct {
	ObjectType      string // optional; empty when unknown
	AccessType      AccessType
	IsOptionalChain bool
}

type TypeInfo struct {
	TypeName  string
	Certainty Certainty
}

type TypeFlow struct {
	SourceType string // optional
	TargetType string // optional
}

// Reference is SymbolReference.
type Reference struct {
	Location source.Range
	Type     Type
	ScopeID  string
	Name     string

	Kind Kind // internal classification, not exposed on the public reference shape

	CallType *CallType

	MemberAccess *MemberAccess
	TypeInfo     *TypeInfo
	TypeFlow     *TypeFlow

	ReceiverLocation        *source.Range
	PropertyChain           []string
	ConstructTargetLocation *source.Range

	// AssignmentTarget/AssignmentSource hold the identifier names on
	// either side of an ASSIGNMENT reference.
	AssignmentTarget string
	AssignmentSource string

	// IsGlobal/IsNonlocal surface Python's `global`/`nonlocal` modifiers
	// for the resolver.
	IsGlobal   bool
	IsNonlocal bool

	// ReceiverName is the simple name of the call/access's receiver
	// (the first element of PropertyChain), when known. Empty means
	// "receiver unknown" — open question on Rust directs
	// callers never to guess one.
	ReceiverName string
}

// IsCall reports whether this reference denotes any flavor of call
// (function, method, constructor, or super), per the step 4d.
func (r *Reference) IsCall() bool {
	switch r.Kind {
	case KindFunctionCall, KindMethodCall, KindConstructorCall, KindSuperCall:
		return true
	default:
		return false
	}
}

// IsConstructorCall reports whether this reference is a construct
// expression, per the step 4d's is_constructor_call derivation.
func (r *Reference) IsConstructorCall() bool {
	return r.Kind == KindConstructorCall
}

// IsMethodCall reports whether this reference is a receiver-qualified
// call, used to derive is_method_call alongside the textual `.`/`::`
// pattern step 4d also allows.
func (r *Reference) IsMethodCall() bool {
	return r.Kind == KindMethodCall
}
