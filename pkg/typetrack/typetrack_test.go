package typetrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_LastWriteWins(t *testing.T) {
	base := New()
	withC := base.WithDiscovery(Discovery{Variable: "c", Info: ClassInfo{ClassName: "Widget"}, Scope: ScopeLocal})
	withD := withC.WithDiscovery(Discovery{Variable: "c", Info: ClassInfo{ClassName: "Gadget"}, Scope: ScopeLocal})

	info, ok := withD.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, "Gadget", info.ClassName)

	// Original snapshot is untouched.
	prior, ok := withC.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, "Widget", prior.ClassName)

	_, ok = base.Lookup("c")
	assert.False(t, ok)
}

func TestTracker_MergeChildOverridesBase(t *testing.T) {
	base := New().WithDiscovery(Discovery{Variable: "c", Info: ClassInfo{ClassName: "Widget"}, Scope: ScopeFile})
	child := New().WithDiscovery(Discovery{Variable: "c", Info: ClassInfo{ClassName: "Local"}, Scope: ScopeLocal})

	merged := Merge(base, child)
	info, ok := merged.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, "Local", info.ClassName)
}

func TestTracker_ImportedClass(t *testing.T) {
	tr := New().WithImportedClass("Cfg", ImportedClassInfo{ClassName: "Cfg", SourceFile: "lib.rs"})
	info, ok := tr.LookupImported("Cfg")
	require.True(t, ok)
	assert.Equal(t, "lib.rs", info.SourceFile)
}
