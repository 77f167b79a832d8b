package core

import "context"

// Card is what the UI presents for a hint. It is an immutable view: every
// field is fixed when the plugin builds it.
type Card struct {
	Label    string // identity of the plugin that built the card
	HrID     string // run identifier
	Registry HintsRegistry
	Editor   Editor

	Location   Region // location at registration time
	Value      string // display value, HH:MM
	RawValue   string // annotated value as found
	PlainValue string // visible text of the span
	Datatype   string
	Content    string
	Predicate  string

	plugin *Plugin
}

// Submit forwards the user's input to the plugin that built the card.
// A card built outside a Plugin (a literal) is submitted by a default plugin
// registered under the card's Label: it commits with CommitUpdate and does
// not log.
func (c Card) Submit(ctx context.Context, input string) (bool, error) {
	p := c.plugin
	if p == nil {
		p = NewPlugin(Config{ID: c.Label})
	}
	return p.Submit(ctx, c, input)
}
