package core

import (
	"context"
	"fmt"
	"html"
	"log/slog"
)

// CommitMode selects how a validated correction is written back.
type CommitMode string

const (
	// CommitUpdate selects the annotated node and updates its content and inner HTML.
	CommitUpdate CommitMode = "update"
	// CommitHTML replaces the text at the location with a freshly rendered RDFa span.
	CommitHTML CommitMode = "html"
)

// Config holds the configuration of a Plugin.
type Config struct {
	ID     string // defaults to PluginID
	Logger *slog.Logger
	Commit CommitMode // defaults to CommitUpdate
}

// Plugin detects time annotations, registers correction cards for them and
// commits user corrections. It holds no mutable state, so one Plugin may serve
// concurrent runs.
type Plugin struct {
	id     string
	logger *slog.Logger
	commit CommitMode
}

// NewPlugin creates a new Plugin.
func NewPlugin(config Config) *Plugin {
	p := &Plugin{
		id:     config.ID,
		logger: config.Logger,
		commit: config.Commit,
	}
	if p.id == "" {
		p.id = PluginID
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	if p.commit == "" {
		p.commit = CommitUpdate
	}
	return p
}

// ID returns the identity under which hints are registered.
func (p *Plugin) ID() string { return p.id }

// Register scans contexts and registers one card per time annotation under
// runID. It returns the number of cards registered.
//
// Workflow:
//  1. Return immediately, without touching the registry, if contexts is empty.
//  2. For each relevant context, clear this plugin's hints in its region.
//  3. Build a card per hint.
//  4. Register all cards as one batch.
func (p *Plugin) Register(ctx context.Context, runID string, contexts []Context, registry HintsRegistry, editor Editor) (int, error) {
	if len(contexts) == 0 {
		return 0, nil
	}

	var hints []Hint
	for _, c := range contexts {
		if !IsRelevant(c) {
			continue
		}
		if err := registry.RemoveHintsInRegion(ctx, c.Region, runID, p.id); err != nil {
			return 0, fmt.Errorf("failed to clear hints in region %v: %w", c.Region, err)
		}
		hints = append(hints, HintFor(c))
	}

	if len(hints) == 0 {
		return 0, nil
	}

	cards := make([]Card, 0, len(hints))
	for _, h := range hints {
		cards = append(cards, p.NewCard(runID, registry, editor, h))
	}

	if err := registry.AddHints(ctx, runID, p.id, cards); err != nil {
		return 0, fmt.Errorf("failed to add hints: %w", err)
	}

	p.logger.Debug("registered time hints", "run", runID, "count", len(cards))
	return len(cards), nil
}

// NewCard builds the card presenting hint h.
func (p *Plugin) NewCard(runID string, registry HintsRegistry, editor Editor, h Hint) Card {
	return Card{
		Label:      p.id,
		HrID:       runID,
		Registry:   registry,
		Editor:     editor,
		Location:   h.Location,
		Value:      TruncateSeconds(h.Value),
		RawValue:   h.Value,
		PlainValue: h.Text,
		Datatype:   h.Datatype,
		Content:    h.Content,
		Predicate:  h.Predicate,
		plugin:     p,
	}
}

// Submit validates input and, if it is a valid time, replaces the card's
// annotated value with its 24-hour form. An invalid input returns false and
// a nil error: the hint simply stays in place.
func (p *Plugin) Submit(ctx context.Context, card Card, input string) (bool, error) {
	in, err := ParseInput(input)
	if err != nil {
		p.logger.Debug("rejected time correction", "run", card.HrID, "input", input, "reason", err)
		return false, nil
	}
	value := in.To24Hour()

	// The card's location dates from registration; edits may have moved it since.
	location, err := card.Registry.UpdateLocationToCurrentIndex(ctx, card.HrID, card.Location)
	if err != nil {
		return false, fmt.Errorf("failed to remap location %v: %w", card.Location, err)
	}

	if err := card.Registry.RemoveHintsAtLocation(ctx, location, card.HrID, p.id); err != nil {
		return false, fmt.Errorf("failed to remove hint at %v: %w", location, err)
	}

	switch p.commit {
	case CommitHTML:
		err = card.Editor.ReplaceTextWithHTML(ctx, location, renderSpan(card, value, in.Text))
	default:
		err = p.update(ctx, card, location, value, in.Text)
	}
	if err != nil {
		return false, err
	}

	p.logger.Info("time corrected", "run", card.HrID, "location", location, "value", value)
	return true, nil
}

func (p *Plugin) update(ctx context.Context, card Card, location Region, value, text string) error {
	sel, err := card.Editor.SelectContext(ctx, location, SelectOptions{Datatype: card.Datatype})
	if err != nil {
		return fmt.Errorf("failed to select context at %v: %w", location, err)
	}
	err = card.Editor.Update(ctx, sel, UpdateSpec{Set: Attributes{Content: value, InnerHTML: text}})
	if err != nil {
		return fmt.Errorf("failed to update context at %v: %w", location, err)
	}
	return nil
}

func renderSpan(card Card, value, text string) string {
	return fmt.Sprintf(`<span property="%s" datatype="%s" content="%s">%s</span>`,
		html.EscapeString(card.Predicate),
		html.EscapeString(card.Datatype),
		html.EscapeString(value),
		html.EscapeString(text),
	)
}
