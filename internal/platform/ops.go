package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/timeoverwrite/pkg/adapters/fs"
	"github.com/aretw0/timeoverwrite/pkg/adapters/memory"
	"github.com/aretw0/timeoverwrite/pkg/core"
)

// Session wires the plugin to an in-memory registry and a document loaded
// from a fixture file, standing in for a host editor.
type Session struct {
	// RunID identifies the latest registration run. Each Register after the
	// first starts a new run, since contexts are read in current offsets.
	RunID string

	registered bool

	plugin   *core.Plugin
	store    *fs.Store
	path     string
	doc      *memory.Document
	registry *memory.Registry
}

// Open loads the fixture at path and wires a session around it.
func Open(path string, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	plugin, err := newPlugin(o)
	if err != nil {
		return nil, err
	}
	store, err := newStore(o)
	if err != nil {
		return nil, err
	}
	doc, err := store.Load(path)
	if err != nil {
		return nil, err
	}

	runID := o.runID
	if runID == "" {
		runID = NewRunID()
	}

	registry := memory.NewRegistry(o.logger)
	doc.OnEdit(registry.ApplyEdit)

	return &Session{
		RunID:    runID,
		plugin:   plugin,
		store:    store,
		path:     path,
		doc:      doc,
		registry: registry,
	}, nil
}

// Register scans the document and registers its time hints.
func (s *Session) Register(ctx context.Context) (int, error) {
	contexts, err := s.doc.Contexts(ctx)
	if err != nil {
		return 0, err
	}
	if s.registered {
		s.RunID = NewRunID()
	}
	s.registered = true
	return s.plugin.Register(ctx, s.RunID, contexts, s.registry, s.doc)
}

// Cards returns the active cards of the plugin ordered by location.
func (s *Session) Cards() []core.Card {
	hints := s.registry.Hints(s.plugin.ID())
	cards := make([]core.Card, 0, len(hints))
	for _, h := range hints {
		cards = append(cards, h.Card)
	}
	return cards
}

// Submit submits input on the card at index (as returned by Cards).
func (s *Session) Submit(ctx context.Context, index int, input string) (bool, error) {
	cards := s.Cards()
	if index < 0 || index >= len(cards) {
		return false, fmt.Errorf("no hint #%d (have %d)", index, len(cards))
	}
	return cards[index].Submit(ctx, input)
}

// Save writes the document back to path, or to the opened file when path is empty.
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.path
	}
	return s.store.Save(path, s.doc)
}

// Document returns the session's document.
func (s *Session) Document() *memory.Document { return s.doc }

// Registry returns the session's hints registry.
func (s *Session) Registry() *memory.Registry { return s.registry }

// Plugin returns the session's plugin.
func (s *Session) Plugin() *core.Plugin { return s.plugin }

// ScanFile returns the time hints found in the fixture at path.
func ScanFile(ctx context.Context, path string, opts ...Option) ([]core.Hint, error) {
	store, err := NewStore(opts...)
	if err != nil {
		return nil, err
	}
	doc, err := store.Load(path)
	if err != nil {
		return nil, err
	}
	contexts, err := doc.Contexts(ctx)
	if err != nil {
		return nil, err
	}
	return core.Scan(contexts), nil
}
