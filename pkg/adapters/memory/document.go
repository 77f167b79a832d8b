package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/introspection"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/aretw0/timeoverwrite/pkg/core"
)

// Annotation is a span of text carrying a chain of triples.
type Annotation struct {
	Region  core.Region   `json:"region" yaml:"region,flow"`
	Triples []core.Triple `json:"triples" yaml:"triples"`
}

// EditListener is notified after every text change.
type EditListener func(Edit)

// Document is a plain text buffer with RDFa-like annotations. It implements
// core.Editor and core.ContextSource. Offsets count runes.
type Document struct {
	mu          sync.RWMutex
	text        []rune
	annotations []Annotation
	listeners   []EditListener
}

// NewDocument creates a document. Annotations are copied.
func NewDocument(text string, annotations []Annotation) *Document {
	d := &Document{text: []rune(text)}
	for _, a := range annotations {
		d.annotations = append(d.annotations, copyAnnotation(a))
	}
	return d
}

func copyAnnotation(a Annotation) Annotation {
	return Annotation{
		Region:  a.Region,
		Triples: append([]core.Triple(nil), a.Triples...),
	}
}

// OnEdit registers a listener for text changes.
func (d *Document) OnEdit(fn EditListener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, fn)
}

// Text returns the current text.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return string(d.text)
}

// Annotations returns a copy of the annotations ordered by start offset.
func (d *Document) Annotations() []Annotation {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Annotation, 0, len(d.annotations))
	for _, a := range d.annotations {
		out = append(out, copyAnnotation(a))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Region[0] < out[j].Region[0]
	})
	return out
}

// Contexts implements core.ContextSource.
func (d *Document) Contexts(ctx context.Context) ([]core.Context, error) {
	annotations := d.Annotations()

	d.mu.RLock()
	defer d.mu.RUnlock()

	contexts := make([]core.Context, 0, len(annotations))
	for _, a := range annotations {
		if !d.inBounds(a.Region) {
			return nil, fmt.Errorf("annotation region %v outside document of length %d", a.Region, len(d.text))
		}
		contexts = append(contexts, core.Context{
			Region:  a.Region,
			Text:    string(d.text[a.Region[0]:a.Region[1]]),
			Triples: a.Triples,
		})
	}
	return contexts, nil
}

func (d *Document) inBounds(r core.Region) bool {
	return r.Valid() && r[1] <= len(d.text)
}

// SelectContext implements core.Editor. It selects the annotation spanning
// exactly location whose dominant triple has the requested datatype.
func (d *Document) SelectContext(ctx context.Context, location core.Region, opts core.SelectOptions) (core.Selection, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for i, a := range d.annotations {
		if a.Region != location || len(a.Triples) == 0 {
			continue
		}
		if opts.Datatype != "" && a.Triples[len(a.Triples)-1].Datatype != opts.Datatype {
			continue
		}
		return core.Selection{Region: location, Ref: i}, nil
	}
	return core.Selection{}, fmt.Errorf("%v: %w", location, core.ErrNoSelection)
}

// Update implements core.Editor. It sets the content of the dominant triple
// and, when InnerHTML is given, replaces the visible text.
func (d *Document) Update(ctx context.Context, sel core.Selection, spec core.UpdateSpec) error {
	idx, ok := sel.Ref.(int)

	d.mu.Lock()
	if !ok || idx < 0 || idx >= len(d.annotations) || d.annotations[idx].Region != sel.Region {
		d.mu.Unlock()
		return fmt.Errorf("stale selection %v: %w", sel.Region, core.ErrNoSelection)
	}
	a := &d.annotations[idx]
	last := &a.Triples[len(a.Triples)-1]
	last.Content = spec.Set.Content
	last.Object = spec.Set.Content

	if spec.Set.InnerHTML == "" {
		d.mu.Unlock()
		return nil
	}
	edit, listeners, err := d.replaceLocked(sel.Region, spec.Set.InnerHTML)
	d.mu.Unlock()
	if err != nil {
		return err
	}
	notify(listeners, edit)
	return nil
}

// ReplaceTextWithHTML implements core.Editor. A single RDFa span is turned
// into text plus an annotation; any other markup is inserted as its text.
func (d *Document) ReplaceTextWithHTML(ctx context.Context, location core.Region, markup string) error {
	text, triple, annotated, err := parseSpan(markup)
	if err != nil {
		return err
	}

	d.mu.Lock()
	if !d.inBounds(location) {
		d.mu.Unlock()
		return fmt.Errorf("region %v outside document of length %d", location, len(d.text))
	}
	// Annotations covering exactly the replaced text are superseded. The
	// rendered span only declares the dominant triple; the rest of the
	// chain carries over.
	var chain []core.Triple
	kept := d.annotations[:0]
	for _, a := range d.annotations {
		if a.Region != location {
			kept = append(kept, a)
			continue
		}
		if chain == nil && len(a.Triples) > 1 {
			chain = append(chain, a.Triples[:len(a.Triples)-1]...)
		}
	}
	d.annotations = kept

	edit, listeners, err := d.replaceLocked(location, text)
	if err != nil {
		d.mu.Unlock()
		return err
	}
	if annotated {
		d.annotations = append(d.annotations, Annotation{
			Region:  core.Region{location[0], location[0] + len([]rune(text))},
			Triples: append(chain, triple),
		})
	}
	d.mu.Unlock()

	notify(listeners, edit)
	return nil
}

// InsertText inserts s at pos, as a user typing elsewhere in the document would.
func (d *Document) InsertText(pos int, s string) error {
	d.mu.Lock()
	edit, listeners, err := d.replaceLocked(core.Region{pos, pos}, s)
	d.mu.Unlock()
	if err != nil {
		return err
	}
	notify(listeners, edit)
	return nil
}

// replaceLocked swaps the text in r for s and shifts annotations.
// Callers hold mu and notify the returned listeners after unlocking.
func (d *Document) replaceLocked(r core.Region, s string) (Edit, []EditListener, error) {
	if !d.inBounds(r) {
		return Edit{}, nil, fmt.Errorf("region %v outside document of length %d", r, len(d.text))
	}
	inserted := []rune(s)

	text := make([]rune, 0, len(d.text)-r.Len()+len(inserted))
	text = append(text, d.text[:r[0]]...)
	text = append(text, inserted...)
	text = append(text, d.text[r[1]:]...)
	d.text = text

	edit := Edit{Start: r[0], End: r[1], Inserted: len(inserted)}
	for i := range d.annotations {
		d.annotations[i].Region = edit.Apply(d.annotations[i].Region)
	}
	return edit, append([]EditListener(nil), d.listeners...), nil
}

func notify(listeners []EditListener, e Edit) {
	for _, fn := range listeners {
		fn(e)
	}
}

// parseSpan extracts the text of markup and, when its root element carries a
// datatype, the triple it declares.
func parseSpan(markup string) (text string, triple core.Triple, annotated bool, err error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return "", core.Triple{}, false, fmt.Errorf("invalid html: %w", err)
	}

	var sb strings.Builder
	for _, n := range nodes {
		collectText(&sb, n)
		if n.Type != html.ElementNode || annotated {
			continue
		}
		for _, attr := range n.Attr {
			switch attr.Key {
			case "property":
				triple.Predicate = attr.Val
			case "datatype":
				triple.Datatype = attr.Val
				annotated = true
			case "content":
				triple.Content = attr.Val
				triple.Object = attr.Val
			case "about":
				triple.Subject = attr.Val
			}
		}
	}
	return sb.String(), triple, annotated, nil
}

func collectText(sb *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(sb, c)
	}
}

// DocumentState exposes internal state for observability.
type DocumentState struct {
	Length      int `json:"length"`
	Annotations int `json:"annotations"`
	Listeners   int `json:"listeners"`
}

// State implements introspection.Introspectable.
func (d *Document) State() any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return DocumentState{
		Length:      len(d.text),
		Annotations: len(d.annotations),
		Listeners:   len(d.listeners),
	}
}

// ComponentType implements introspection.Component.
func (d *Document) ComponentType() string {
	return "editor"
}

var _ core.Editor = (*Document)(nil)
var _ core.ContextSource = (*Document)(nil)
var _ introspection.Introspectable = (*Document)(nil)
var _ introspection.Component = (*Document)(nil)
