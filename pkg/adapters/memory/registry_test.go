package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/timeoverwrite/pkg/adapters/memory"
	"github.com/aretw0/timeoverwrite/pkg/core"
)

func locations(hints []memory.ActiveHint) []core.Region {
	out := make([]core.Region, 0, len(hints))
	for _, h := range hints {
		out = append(out, h.Location)
	}
	return out
}

func TestRegistry_RemapAcrossEdits(t *testing.T) {
	reg := memory.NewRegistry(nil)
	ctx := context.TODO()

	require.NoError(t, reg.AddHints(ctx, "run-1", core.PluginID, []core.Card{
		{Location: core.Region{11, 16}},
		{Location: core.Region{37, 42}},
	}))

	reg.ApplyEdit(memory.Edit{Start: 0, End: 0, Inserted: 8})

	got, err := reg.UpdateLocationToCurrentIndex(ctx, "run-1", core.Region{11, 16})
	require.NoError(t, err)
	assert.Equal(t, core.Region{19, 24}, got)

	if diff := cmp.Diff([]core.Region{{19, 24}, {45, 50}}, locations(reg.Hints(core.PluginID))); diff != "" {
		t.Errorf("stored locations mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_RunBaseline(t *testing.T) {
	reg := memory.NewRegistry(nil)
	ctx := context.TODO()

	reg.ApplyEdit(memory.Edit{Start: 0, End: 0, Inserted: 5})

	// A run first seen after the edit is already in current coordinates.
	require.NoError(t, reg.AddHints(ctx, "run-2", core.PluginID, []core.Card{{Location: core.Region{10, 15}}}))
	got, err := reg.UpdateLocationToCurrentIndex(ctx, "run-2", core.Region{10, 15})
	require.NoError(t, err)
	assert.Equal(t, core.Region{10, 15}, got)
}

func TestRegistry_RemoveHintsInRegion(t *testing.T) {
	reg := memory.NewRegistry(nil)
	ctx := context.TODO()

	require.NoError(t, reg.AddHints(ctx, "run-1", core.PluginID, []core.Card{
		{Location: core.Region{11, 16}},
		{Location: core.Region{37, 42}},
	}))
	require.NoError(t, reg.AddHints(ctx, "run-1", "other-plugin", []core.Card{{Location: core.Region{11, 16}}}))

	require.NoError(t, reg.RemoveHintsInRegion(ctx, core.Region{0, 20}, "run-1", core.PluginID))

	hints := reg.Hints("")
	require.Len(t, hints, 2)
	assert.Equal(t, "other-plugin", hints[0].PluginID)
	assert.Equal(t, core.Region{37, 42}, hints[1].Location)
}

func TestRegistry_RemoveHintsAtLocation_Missing(t *testing.T) {
	reg := memory.NewRegistry(nil)
	ctx := context.TODO()

	require.NoError(t, reg.AddHints(ctx, "run-1", core.PluginID, []core.Card{{Location: core.Region{1, 2}}}))
	require.NoError(t, reg.RemoveHintsAtLocation(ctx, core.Region{1, 2}, "run-1", core.PluginID))
	assert.NoError(t, reg.RemoveHintsAtLocation(ctx, core.Region{1, 2}, "run-1", core.PluginID))
	assert.Zero(t, reg.Len())
}

func TestRegistry_ConcurrentRuns(t *testing.T) {
	reg := memory.NewRegistry(nil)
	p := core.NewPlugin(core.Config{})
	ctx := context.TODO()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			contexts := []core.Context{{
				Region:  core.Region{offset * 10, offset*10 + 5},
				Triples: []core.Triple{{Object: "10:00", Datatype: core.TimeDatatype}},
			}}
			_, err := p.Register(ctx, fmt.Sprintf("run-%d", offset), contexts, reg, nil)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 16, reg.Len())
	state := reg.State().(memory.RegistryState)
	assert.Equal(t, 16, state.Runs)
	for i, h := range reg.Hints(core.PluginID) {
		assert.Equal(t, fmt.Sprintf("run-%d", i), h.RunID)
		assert.Equal(t, core.Region{i * 10, i*10 + 5}, h.Location)
	}
}
