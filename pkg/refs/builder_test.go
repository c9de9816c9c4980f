package refs

import (
	"testing"

	"github.com/gnana997/callgraph/pkg/capture"
	"github.com/gnana997/callgraph/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCapture_MethodCallViaReceiver(t *testing.T) {
	nc := capture.NormalizedCapture{
		Category:   capture.CategoryReference,
		Entity:     capture.EntityCall,
		SymbolName: "greet",
		Context: map[string]capture.ContextValue{
			"receiver_node": capture.PositionValue(source.Position{Row: 3, Column: 4}),
		},
	}

	ref, ok := FromCapture(nc, "scope-1")
	require.True(t, ok)
	assert.Equal(t, KindMethodCall, ref.Kind)
	assert.Equal(t, TypeCall, ref.Type)
	require.NotNil(t, ref.CallType)
	assert.Equal(t, CallTypeMethod, *ref.CallType)
	require.NotNil(t, ref.ReceiverLocation)
}

func TestFromCapture_ConstructorCall(t *testing.T) {
	nc := capture.NormalizedCapture{
		Category:   capture.CategoryReference,
		Entity:     capture.EntityCall,
		SymbolName: "Widget",
		Modifiers:  map[string]capture.ModifierValue{"is_constructor": capture.BoolModifier(true)},
	}

	ref, ok := FromCapture(nc, "scope-1")
	require.True(t, ok)
	assert.Equal(t, KindConstructorCall, ref.Kind)
	assert.Equal(t, TypeConstruct, ref.Type)
	assert.True(t, ref.IsConstructorCall())
}

func TestFromCapture_FunctionCallFallback(t *testing.T) {
	nc := capture.NormalizedCapture{Category: capture.CategoryReference, Entity: capture.EntityCall, SymbolName: "compute"}
	ref, ok := FromCapture(nc, "scope-1")
	require.True(t, ok)
	assert.Equal(t, KindFunctionCall, ref.Kind)
}

func TestFromCapture_Assignment(t *testing.T) {
	nc := capture.NormalizedCapture{
		Category:   capture.CategoryAssignment,
		Entity:     capture.EntityVariable,
		SymbolName: "c",
		Context:    map[string]capture.ContextValue{"type_name": capture.TextValue("Widget")},
	}
	ref, ok := FromCapture(nc, "scope-1")
	require.True(t, ok)
	assert.Equal(t, TypeAssignment, ref.Type)
	assert.Equal(t, "c", ref.AssignmentTarget)
	require.NotNil(t, ref.TypeFlow)
	assert.Equal(t, "Widget", ref.TypeFlow.TargetType)
}

func TestFromCapture_NonReferenceCategoryRejected(t *testing.T) {
	nc := capture.NormalizedCapture{Category: capture.CategoryDefinition, Entity: capture.EntityClass}
	_, ok := FromCapture(nc, "scope-1")
	assert.False(t, ok)
}
