package resolve

import (
	"testing"

	"github.com/gnana997/callgraph/pkg/diag"
	"github.com/gnana997/callgraph/pkg/scopetree"
	"github.com/gnana997/callgraph/pkg/symbols"
	"github.com/gnana997/callgraph/pkg/typetrack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mirrors the call-graph design scenario S3: `Cfg::new()` resolved across files via a
// `use crate::Cfg;` import.
func TestResolveAssociatedCall_AcrossFiles(t *testing.T) {
	newFn := &symbols.Definition{Name: "new", Kind: symbols.KindMethod, FilePath: "lib.rs"}
	cfg := &symbols.Definition{Name: "Cfg", Kind: symbols.KindClass, FilePath: "lib.rs", Methods: []*symbols.Definition{newFn}}

	fcLib := NewFileContext("lib.rs", "rust", scopetree.NewTree("lib.rs", rng(0, 0, 100, 0)))
	fcLib.Classes = append(fcLib.Classes, cfg)

	fcMain := NewFileContext("main.rs", "rust", scopetree.NewTree("main.rs", rng(0, 0, 100, 0)))
	fcMain.Imports.Add(&Record{LocalName: "Cfg", SourceModule: "lib.rs", ImportedDef: cfg})

	proj := NewProject(&diag.Collector{})
	proj.Files["lib.rs"] = fcLib
	proj.Files["main.rs"] = fcMain

	found, ok := proj.ResolveAssociatedCall(fcMain, "Cfg", "new")
	require.True(t, ok)
	assert.Same(t, newFn, found)
}

func TestResolveRustMethodCall_ViaLocalType(t *testing.T) {
	connect := &symbols.Definition{Name: "connect", Kind: symbols.KindMethod, FilePath: "lib.rs"}
	client := &symbols.Definition{Name: "Client", Kind: symbols.KindClass, FilePath: "lib.rs", Methods: []*symbols.Definition{connect}}

	fc := NewFileContext("lib.rs", "rust", scopetree.NewTree("lib.rs", rng(0, 0, 100, 0)))
	fc.Tracker = fc.Tracker.WithDiscovery(typetrack.Discovery{
		Variable: "c",
		Info:     typetrack.ClassInfo{ClassName: "Client", ClassDef: client},
	})

	proj := NewProject(&diag.Collector{})
	proj.Files["lib.rs"] = fc

	found, ok := proj.ResolveRustMethodCall(fc, "c", "connect")
	require.True(t, ok)
	assert.Same(t, connect, found)
}

func TestExpandUseGroup(t *testing.T) {
	recs := ExpandUseGroup("crate::foo", []string{"Bar", "Baz"})
	require.Len(t, recs, 2)
	assert.Equal(t, "Bar", recs[0].LocalName)
	assert.Equal(t, "crate::foo", recs[1].SourceModule)
}
