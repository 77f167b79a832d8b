package core

import (
	"github.com/aretw0/introspection"
)

// PluginState exposes the plugin configuration for observability.
type PluginState struct {
	ID       string `json:"id"`
	Datatype string `json:"datatype"`
	Commit   string `json:"commit"`
}

// State implements introspection.Introspectable.
func (p *Plugin) State() any {
	return PluginState{
		ID:       p.id,
		Datatype: TimeDatatype,
		Commit:   string(p.commit),
	}
}

// ComponentType implements introspection.Component.
func (p *Plugin) ComponentType() string {
	return "plugin"
}

var _ introspection.Introspectable = (*Plugin)(nil)
var _ introspection.Component = (*Plugin)(nil)
