package timeoverwrite

import (
	"context"
	"log/slog"

	"github.com/aretw0/timeoverwrite/internal/platform"
	"github.com/aretw0/timeoverwrite/pkg/adapters/fs"
	"github.com/aretw0/timeoverwrite/pkg/core"
)

// Version of the library.
const Version = "0.1.0"

// --- Types ---

// Session is a plugin wired to a fixture document and an in-memory registry.
type Session = platform.Session

// --- Configuration ---

// Option defines a functional option for configuring the plugin.
type Option = platform.Option

// WithLogger sets the logger for the plugin and adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithPluginID overrides the identity under which hints are registered.
func WithPluginID(id string) Option {
	return platform.WithPluginID(id)
}

// WithCommitMode selects how corrections are written back.
func WithCommitMode(mode core.CommitMode) Option {
	return platform.WithCommitMode(mode)
}

// WithRunID fixes the run identifier of a Session.
func WithRunID(id string) Option {
	return platform.WithRunID(id)
}

// WithRoot sets the directory fixture paths resolve against.
func WithRoot(dir string) Option {
	return platform.WithRoot(dir)
}

// WithSerializer registers a custom fixture serializer (an fs.Serializer).
func WithSerializer(ext string, s any) Option {
	return platform.WithSerializer(ext, s)
}

// --- Factory ---

// New creates a new Plugin.
func New(opts ...Option) (*core.Plugin, error) {
	return platform.New(opts...)
}

// Open loads a fixture document and wires a Session around it.
func Open(path string, opts ...Option) (*Session, error) {
	return platform.Open(path, opts...)
}

// NewStore creates a fixture store honoring WithRoot, WithLogger and WithSerializer.
func NewStore(opts ...Option) (*fs.Store, error) {
	return platform.NewStore(opts...)
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return platform.NewRunID()
}

// --- Operations ---

// ScanFile returns the time hints found in a fixture file.
func ScanFile(ctx context.Context, path string, opts ...Option) ([]core.Hint, error) {
	return platform.ScanFile(ctx, path, opts...)
}
