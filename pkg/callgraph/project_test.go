package callgraph

import (
	"testing"

	"github.com/gnana997/callgraph/pkg/diag"
	"github.com/gnana997/callgraph/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_GoToDefinition_ResolvesCallSite(t *testing.T) {
	in := buildScenarioS1()
	b := NewBuilder(&diag.Collector{})
	graph, _ := b.BuildSync([]FileInput{in})

	proj := NewProject(graph, []FileInput{in})

	// position inside the `c.greet()` call site (rng(2, 36, 2, 47))
	def, ok := proj.GoToDefinition("a.js", source.Position{Row: 2, Column: 40})
	require.True(t, ok)
	assert.Equal(t, "a.js#C.greet", def.ID)
}

func TestProject_GoToDefinition_NoCallAtPosition(t *testing.T) {
	in := buildScenarioS1()
	b := NewBuilder(&diag.Collector{})
	graph, _ := b.BuildSync([]FileInput{in})

	proj := NewProject(graph, []FileInput{in})

	_, ok := proj.GoToDefinition("a.js", source.Position{Row: 50, Column: 0})
	assert.False(t, ok)
}

func TestProject_GetImportsWithDefinitions_UnknownFile(t *testing.T) {
	in := buildScenarioS1()
	b := NewBuilder(&diag.Collector{})
	graph, _ := b.BuildSync([]FileInput{in})

	proj := NewProject(graph, []FileInput{in})

	assert.Nil(t, proj.GetImportsWithDefinitions("nope.js"))
}

func TestProject_GetImportsWithDefinitions_Empty(t *testing.T) {
	in := buildScenarioS1()
	b := NewBuilder(&diag.Collector{})
	graph, _ := b.BuildSync([]FileInput{in})

	proj := NewProject(graph, []FileInput{in})

	assert.Empty(t, proj.GetImportsWithDefinitions("a.js"))
}
