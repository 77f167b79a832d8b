package platform

import (
	"log/slog"

	"github.com/aretw0/timeoverwrite/pkg/core"
)

// options holds the internal configuration of the plugin and its adapters.
type options struct {
	logger      *slog.Logger
	pluginID    string
	commit      core.CommitMode
	runID       string
	root        string
	serializers map[string]any
}

// Option defines a functional option for configuring the plugin.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		pluginID:    core.PluginID,
		commit:      core.CommitUpdate,
		root:        ".",
		serializers: make(map[string]any),
	}
}

// WithLogger sets the logger for the plugin and adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPluginID overrides the identity under which hints are registered.
func WithPluginID(id string) Option {
	return func(o *options) {
		o.pluginID = id
	}
}

// WithCommitMode selects how corrections are written back ("update" or "html").
func WithCommitMode(mode core.CommitMode) Option {
	return func(o *options) {
		o.commit = mode
	}
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(o *options) {
		o.runID = id
	}
}

// WithRoot sets the directory fixture paths resolve against. Defaults to ".".
func WithRoot(dir string) Option {
	return func(o *options) {
		o.root = dir
	}
}

// WithSerializer registers a custom serializer for a fixture extension.
// The serializer 's' must implement fs.Serializer; this is checked when the
// store is built.
func WithSerializer(ext string, s any) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}
