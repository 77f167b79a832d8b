package fs_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/timeoverwrite/pkg/adapters/fs"
	"github.com/aretw0/timeoverwrite/pkg/core"
)

func TestStore_Watch(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	store := fs.NewStore(fs.Config{Root: dir})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx, "**/*.yaml")
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "agenda.yaml"), agendaYAML)

	deadline := time.After(5 * time.Second)
	seen := false
	for !seen {
		select {
		case e := <-events:
			require.Equal(t, "agenda.yaml", e.Path, "unexpected event %v", e)
			seen = e.Type == core.EventCreate || e.Type == core.EventModify
		case <-deadline:
			t.Fatal("timeout waiting for fixture event")
		}
	}
	require.True(t, store.State().(fs.StoreState).WatcherActive)

	cancel()
	// Drain until the worker closes the channel.
	for range events {
	}
	require.False(t, store.State().(fs.StoreState).WatcherActive)
}

func TestStore_Watch_InvalidPattern(t *testing.T) {
	store := fs.NewStore(fs.Config{Root: t.TempDir()})
	_, err := store.Watch(context.Background(), "[")
	require.Error(t, err)
}
