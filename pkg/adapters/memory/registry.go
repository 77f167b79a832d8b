// Package memory provides in-memory implementations of the host ports: a
// hints registry that keeps locations valid across edits and a plain text
// document that acts as an editor.
package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/timeoverwrite/pkg/core"
)

// ActiveHint is a registered card and its location in current coordinates.
type ActiveHint struct {
	RunID    string
	PluginID string
	Location core.Region
	Card     core.Card
}

type run struct {
	// baseline is the number of edits known when the run was first seen.
	baseline int
}

// Registry implements core.HintsRegistry in memory.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	runs   map[string]*run
	hints  []ActiveHint
	edits  []Edit
	logger *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		runs:   make(map[string]*run),
		logger: logger,
	}
}

// touch records the run baseline on first sight. Callers hold mu.
func (r *Registry) touch(runID string) *run {
	rn, ok := r.runs[runID]
	if !ok {
		rn = &run{baseline: len(r.edits)}
		r.runs[runID] = rn
	}
	return rn
}

// remap replays the edits made since the run's baseline. Callers hold mu.
func (r *Registry) remap(runID string, location core.Region) core.Region {
	rn := r.touch(runID)
	for _, e := range r.edits[rn.baseline:] {
		location = e.Apply(location)
	}
	return location
}

// ApplyEdit records an edit of the document and moves every stored hint.
// Its signature matches EditListener, so it can be passed to Document.OnEdit.
func (r *Registry) ApplyEdit(e Edit) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.edits = append(r.edits, e)
	for i := range r.hints {
		r.hints[i].Location = e.Apply(r.hints[i].Location)
	}
}

// RemoveHintsInRegion implements core.HintsRegistry. The region is expressed
// in the coordinates of runID.
func (r *Registry) RemoveHintsInRegion(ctx context.Context, region core.Region, runID, pluginID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.remap(runID, region)
	removed := r.removeLocked(pluginID, func(h ActiveHint) bool {
		return current.Contains(h.Location)
	})
	if removed > 0 {
		r.logger.Debug("removed hints in region", "run", runID, "region", current, "count", removed)
	}
	return nil
}

// RemoveHintsAtLocation implements core.HintsRegistry.
func (r *Registry) RemoveHintsAtLocation(ctx context.Context, location core.Region, runID, pluginID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.touch(runID)
	removed := r.removeLocked(pluginID, func(h ActiveHint) bool {
		return h.Location == location
	})
	r.logger.Debug("removed hints at location", "run", runID, "location", location, "count", removed)
	return nil
}

func (r *Registry) removeLocked(pluginID string, match func(ActiveHint) bool) int {
	kept := r.hints[:0]
	removed := 0
	for _, h := range r.hints {
		if h.PluginID == pluginID && match(h) {
			removed++
			continue
		}
		kept = append(kept, h)
	}
	// Clear the tail so dropped cards can be collected.
	for i := len(kept); i < len(r.hints); i++ {
		r.hints[i] = ActiveHint{}
	}
	r.hints = kept
	return removed
}

// UpdateLocationToCurrentIndex implements core.HintsRegistry.
func (r *Registry) UpdateLocationToCurrentIndex(ctx context.Context, runID string, location core.Region) (core.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remap(runID, location), nil
}

// AddHints implements core.HintsRegistry. Card locations are expressed in the
// coordinates of runID.
func (r *Registry) AddHints(ctx context.Context, runID, pluginID string, cards []core.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range cards {
		r.hints = append(r.hints, ActiveHint{
			RunID:    runID,
			PluginID: pluginID,
			Location: r.remap(runID, c.Location),
			Card:     c,
		})
	}
	r.logger.Debug("added hints", "run", runID, "plugin", pluginID, "count", len(cards))
	return nil
}

// Hints returns the active hints of pluginID ordered by location.
// An empty pluginID returns every hint.
func (r *Registry) Hints(pluginID string) []ActiveHint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ActiveHint, 0, len(r.hints))
	for _, h := range r.hints {
		if pluginID == "" || h.PluginID == pluginID {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Location[0] < out[j].Location[0]
	})
	return out
}

// Len returns the number of active hints.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hints)
}

// RegistryState exposes internal state for observability.
type RegistryState struct {
	Runs  int `json:"runs"`
	Hints int `json:"hints"`
	Edits int `json:"edits"`
}

// State implements introspection.Introspectable.
func (r *Registry) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RegistryState{
		Runs:  len(r.runs),
		Hints: len(r.hints),
		Edits: len(r.edits),
	}
}

// ComponentType implements introspection.Component.
func (r *Registry) ComponentType() string {
	return "hints-registry"
}

var _ core.HintsRegistry = (*Registry)(nil)
var _ introspection.Introspectable = (*Registry)(nil)
var _ introspection.Component = (*Registry)(nil)
