// Package core holds the domain of the time overwrite plugin: the RDFa
// contexts it reads, the hints and cards it derives from them, and the ports
// through which it talks to the host editor.
package core

const (
	// TimeDatatype is the XSD datatype the plugin reacts to.
	TimeDatatype = "http://www.w3.org/2001/XMLSchema#time"

	// PluginID identifies the plugin's hints in the registry.
	PluginID = "editor-plugins/time-overwrite-card"
)

// Region is a [start, end] pair of offsets into the full document text.
type Region [2]int

// Start returns the first offset.
func (r Region) Start() int { return r[0] }

// End returns the second offset.
func (r Region) End() int { return r[1] }

// Len returns the number of characters covered by the region.
func (r Region) Len() int { return r[1] - r[0] }

// Valid reports whether the region is well ordered and non-negative.
func (r Region) Valid() bool {
	return r[0] >= 0 && r[0] <= r[1]
}

// Contains reports whether other lies entirely within r.
func (r Region) Contains(other Region) bool {
	return other[0] >= r[0] && other[1] <= r[1]
}

// NormalizeLocation maps a location expressed relative to reference back
// into absolute document offsets.
func NormalizeLocation(location, reference Region) Region {
	return Region{location[0] + reference[0], location[1] + reference[0]}
}

// Triple is a single RDFa statement attached to a span of text.
type Triple struct {
	Subject   string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Predicate string `json:"predicate,omitempty" yaml:"predicate,omitempty"`
	Object    string `json:"object,omitempty" yaml:"object,omitempty"`
	Datatype  string `json:"datatype,omitempty" yaml:"datatype,omitempty"`
	Content   string `json:"content,omitempty" yaml:"content,omitempty"`
}

// Context is an immutable snapshot of a span of document text and the chain
// of triples annotating it. The last triple is the most specific one.
type Context struct {
	Region  Region
	Text    string
	Triples []Triple
}

// Last returns the dominant triple of the chain.
func (c Context) Last() (Triple, bool) {
	if len(c.Triples) == 0 {
		return Triple{}, false
	}
	return c.Triples[len(c.Triples)-1], true
}

// Hint is a correctable time value detected in a Context.
type Hint struct {
	Text     string
	Location Region
	Value    string
	Content  string
	Datatype string

	// Predicate of the dominant triple, used when rendering RDFa markup.
	Predicate string
}

// EventType represents the kind of change observed by a watcher.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event reports a change to a source of contexts (e.g. a fixture file).
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return string(e.Type) + " " + e.Path
}
