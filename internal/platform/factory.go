package platform

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aretw0/timeoverwrite/pkg/adapters/fs"
	"github.com/aretw0/timeoverwrite/pkg/core"
)

// New creates the plugin configured by opts.
//
//	p, err := timeoverwrite.New(timeoverwrite.WithCommitMode(core.CommitHTML))
func New(opts ...Option) (*core.Plugin, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return newPlugin(o)
}

func newPlugin(o *options) (*core.Plugin, error) {
	switch o.commit {
	case core.CommitUpdate, core.CommitHTML:
	default:
		return nil, fmt.Errorf("unknown commit mode: %s", o.commit)
	}
	return core.NewPlugin(core.Config{
		ID:     o.pluginID,
		Logger: o.logger,
		Commit: o.commit,
	}), nil
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// NewStore creates the fixture store configured by opts.
func NewStore(opts ...Option) (*fs.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return newStore(o)
}

func newStore(o *options) (*fs.Store, error) {
	store := fs.NewStore(fs.Config{
		Root:   o.root,
		Logger: o.logger,
	})

	for ext, s := range o.serializers {
		serializer, ok := s.(fs.Serializer)
		if !ok {
			if o.logger != nil {
				o.logger.Warn("invalid serializer type ignored", "ext", ext, "expected", "fs.Serializer")
			}
			return nil, fmt.Errorf("serializer for %s must implement fs.Serializer", ext)
		}
		store.RegisterSerializer(ext, serializer)
	}
	return store, nil
}
