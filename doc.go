// Package timeoverwrite is the Composition Root of the time overwrite plugin.
//
// The plugin watches RDFa annotated documents for spans typed as
// xsd:time, offers a correction card for each of them and, when the user
// submits a new time, rewrites the annotated value in 24-hour form.
//
// It connects the core logic (pkg/core) with adapters for the host ports
// (pkg/adapters/memory, pkg/adapters/fs) using the Hexagonal Architecture
// pattern. The host editor and its hints registry are reached only through
// the core.HintsRegistry and core.Editor interfaces.
//
// Usage:
//
//	plugin, err := timeoverwrite.New(timeoverwrite.WithLogger(logger))
//
//	// Called by the host for every batch of changed contexts.
//	n, err := plugin.Register(ctx, runID, contexts, registry, editor)
//
//	// Called by the UI when the user submits a correction on a card.
//	ok, err := card.Submit(ctx, "2:30 PM")
package timeoverwrite
