package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/timeoverwrite/pkg/adapters/lifecycle"
	"github.com/aretw0/timeoverwrite/pkg/core"
)

func TestSource_Forwards(t *testing.T) {
	in := make(chan core.Event, 1)
	src := lifecycle.NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, src.Start(ctx))

	in <- core.Event{Type: core.EventModify, Path: "agenda.yaml"}

	select {
	case e := <-src.Events():
		assert.Equal(t, "MODIFY agenda.yaml", e.String())
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for forwarded event")
	}

	close(in)
	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "source must close once upstream closes")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for close")
	}
}

func TestSource_CoalescesBursts(t *testing.T) {
	in := make(chan core.Event, 5)
	in <- core.Event{Type: core.EventCreate, Path: "agenda.yaml", Timestamp: 100}
	in <- core.Event{Type: core.EventModify, Path: "agenda.yaml", Timestamp: 100}
	in <- core.Event{Type: core.EventModify, Path: "minutes.yaml", Timestamp: 100}
	in <- core.Event{Type: core.EventDelete, Path: "agenda.yaml", Timestamp: 100}
	in <- core.Event{Type: core.EventModify, Path: "agenda.yaml", Timestamp: 101}
	close(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := lifecycle.NewSource(in)
	require.NoError(t, src.Start(ctx))

	var got []string
	timeout := time.After(2 * time.Second)
	for done := false; !done; {
		select {
		case e, ok := <-src.Events():
			if !ok {
				done = true
				continue
			}
			got = append(got, e.String())
		case <-timeout:
			t.Fatal("timeout waiting for source to close")
		}
	}

	assert.Equal(t, []string{
		"CREATE agenda.yaml",
		"MODIFY minutes.yaml",
		"DELETE agenda.yaml",
		"MODIFY agenda.yaml",
	}, got)
}
