// Package lifecycle bridges fixture change events to the lifecycle runtime.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/timeoverwrite/pkg/core"
)

// fixtureSource forwards fixture events, collapsing the bursts a single save
// produces (a CREATE followed by one or more WRITEs) into one event.
type fixtureSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
	last   map[string]core.Event
}

// NewSource creates a lifecycle.Source from a watcher channel. Events for a
// path already forwarded within the same second are dropped, unless either
// one is a deletion. The source closes once events closes or ctx ends.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &fixtureSource{
		events: events,
		out:    make(chan lifecycle.Event),
		last:   make(map[string]core.Event),
	}
}

func (s *fixtureSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *fixtureSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if s.duplicate(e) {
					continue
				}
				s.last[e.Path] = e
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

// duplicate reports whether e repeats a change already forwarded. Only the
// forwarding goroutine touches last.
func (s *fixtureSource) duplicate(e core.Event) bool {
	prev, ok := s.last[e.Path]
	if !ok || prev.Timestamp != e.Timestamp {
		return false
	}
	return prev.Type != core.EventDelete && e.Type != core.EventDelete
}
