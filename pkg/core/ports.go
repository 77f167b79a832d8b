package core

import "context"

// HintsRegistry is the host's store of active hints. Locations handed to it
// are in the registry's current coordinate space unless stated otherwise.
type HintsRegistry interface {
	// RemoveHintsInRegion drops every hint of pluginID inside region.
	RemoveHintsInRegion(ctx context.Context, region Region, runID, pluginID string) error

	// RemoveHintsAtLocation drops the hints of pluginID at exactly location.
	// Finding nothing to remove is not an error.
	RemoveHintsAtLocation(ctx context.Context, location Region, runID, pluginID string) error

	// UpdateLocationToCurrentIndex re-expresses a location recorded during run
	// runID in the current coordinate space, accounting for later edits.
	UpdateLocationToCurrentIndex(ctx context.Context, runID string, location Region) (Region, error)

	// AddHints registers a batch of cards for a run.
	AddHints(ctx context.Context, runID, pluginID string, cards []Card) error
}

// SelectOptions narrows a selection to contexts of a given datatype.
type SelectOptions struct {
	Datatype string
}

// Selection is an opaque handle returned by Editor.SelectContext.
type Selection struct {
	Region Region
	// Ref is adapter specific (e.g. an annotation index).
	Ref any
}

// Attributes are the annotated-node attributes an update may set.
type Attributes struct {
	Content   string
	InnerHTML string
}

// UpdateSpec describes a mutation applied to a selection.
type UpdateSpec struct {
	Set Attributes
}

// Editor is the host editor. All document mutation goes through it.
type Editor interface {
	SelectContext(ctx context.Context, location Region, opts SelectOptions) (Selection, error)
	Update(ctx context.Context, sel Selection, spec UpdateSpec) error
	ReplaceTextWithHTML(ctx context.Context, location Region, html string) error
}

// ContextSource supplies annotated contexts (the host's RDFa pipeline).
type ContextSource interface {
	Contexts(ctx context.Context) ([]Context, error)
}
