package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/timeoverwrite/pkg/adapters/memory"
	"github.com/aretw0/timeoverwrite/pkg/core"
)

const agenda = "Meeting at 10:15 in room 3, lunch at 12:30."

func timeAnnotation(start, end int, value string) memory.Annotation {
	return memory.Annotation{
		Region: core.Region{start, end},
		Triples: []core.Triple{
			{Subject: "#agenda", Predicate: "http://schema.org/startTime", Object: value, Datatype: core.TimeDatatype},
		},
	}
}

func newAgenda() *memory.Document {
	return memory.NewDocument(agenda, []memory.Annotation{
		timeAnnotation(37, 42, "12:30:00"),
		timeAnnotation(11, 16, "10:15:00"),
	})
}

func TestDocument_Contexts(t *testing.T) {
	doc := newAgenda()

	contexts, err := doc.Contexts(context.TODO())
	require.NoError(t, err)
	require.Len(t, contexts, 2)
	assert.Equal(t, "10:15", contexts[0].Text)
	assert.Equal(t, "12:30", contexts[1].Text)
}

func TestDocument_Contexts_OutOfBounds(t *testing.T) {
	doc := memory.NewDocument("short", []memory.Annotation{timeAnnotation(2, 40, "10:00")})
	_, err := doc.Contexts(context.TODO())
	assert.Error(t, err)
}

func TestDocument_SelectAndUpdate(t *testing.T) {
	doc := newAgenda()
	ctx := context.TODO()

	var edits []memory.Edit
	doc.OnEdit(func(e memory.Edit) { edits = append(edits, e) })

	sel, err := doc.SelectContext(ctx, core.Region{11, 16}, core.SelectOptions{Datatype: core.TimeDatatype})
	require.NoError(t, err)

	err = doc.Update(ctx, sel, core.UpdateSpec{Set: core.Attributes{Content: "14:30", InnerHTML: "2:30 PM"}})
	require.NoError(t, err)

	assert.Equal(t, "Meeting at 2:30 PM in room 3, lunch at 12:30.", doc.Text())
	assert.Equal(t, []memory.Edit{{Start: 11, End: 16, Inserted: 7}}, edits)

	annotations := doc.Annotations()
	assert.Equal(t, core.Region{11, 18}, annotations[0].Region)
	assert.Equal(t, "14:30", annotations[0].Triples[0].Content)
	assert.Equal(t, core.Region{39, 44}, annotations[1].Region)

	// The old selection no longer matches the moved annotation.
	err = doc.Update(ctx, sel, core.UpdateSpec{Set: core.Attributes{Content: "15:00"}})
	assert.ErrorIs(t, err, core.ErrNoSelection)
}

func TestDocument_SelectContext_Missing(t *testing.T) {
	doc := newAgenda()
	_, err := doc.SelectContext(context.TODO(), core.Region{11, 15}, core.SelectOptions{})
	assert.ErrorIs(t, err, core.ErrNoSelection)

	_, err = doc.SelectContext(context.TODO(), core.Region{11, 16}, core.SelectOptions{Datatype: "http://www.w3.org/2001/XMLSchema#date"})
	assert.ErrorIs(t, err, core.ErrNoSelection)
}

func TestDocument_ReplaceTextWithHTML(t *testing.T) {
	doc := newAgenda()

	markup := `<span property="http://schema.org/startTime" datatype="http://www.w3.org/2001/XMLSchema#time" content="9:05">9:05 AM</span>`
	require.NoError(t, doc.ReplaceTextWithHTML(context.TODO(), core.Region{11, 16}, markup))

	assert.Equal(t, "Meeting at 9:05 AM in room 3, lunch at 12:30.", doc.Text())
	annotations := doc.Annotations()
	require.Len(t, annotations, 2)
	assert.Equal(t, core.Region{11, 18}, annotations[0].Region)
	assert.Equal(t, "9:05", annotations[0].Triples[0].Content)
	assert.Equal(t, core.TimeDatatype, annotations[0].Triples[0].Datatype)
}

func TestDocument_ReplaceTextWithHTML_KeepsChain(t *testing.T) {
	session := core.Triple{Subject: "#meeting", Predicate: "http://data.vlaanderen.be/ns/besluit#heeftZitting"}
	start := timeAnnotation(11, 16, "10:15:00")
	start.Triples = append([]core.Triple{session}, start.Triples...)
	doc := memory.NewDocument(agenda, []memory.Annotation{start})

	markup := `<span property="http://schema.org/startTime" datatype="http://www.w3.org/2001/XMLSchema#time" content="14:30">2:30 PM</span>`
	require.NoError(t, doc.ReplaceTextWithHTML(context.TODO(), core.Region{11, 16}, markup))

	annotations := doc.Annotations()
	require.Len(t, annotations, 1)
	require.Len(t, annotations[0].Triples, 2)
	assert.Equal(t, session, annotations[0].Triples[0])
	assert.Equal(t, "14:30", annotations[0].Triples[1].Content)
	assert.Equal(t, core.Region{11, 18}, annotations[0].Region)
}

func TestDocument_ReplaceTextWithHTML_PlainText(t *testing.T) {
	doc := newAgenda()
	require.NoError(t, doc.ReplaceTextWithHTML(context.TODO(), core.Region{0, 7}, "<b>Call</b>"))

	assert.Equal(t, "Call at 10:15 in room 3, lunch at 12:30.", doc.Text())
	assert.Len(t, doc.Annotations(), 2)
}

func TestDocument_State(t *testing.T) {
	doc := newAgenda()
	state := doc.State().(memory.DocumentState)
	assert.Equal(t, len(agenda), state.Length)
	assert.Equal(t, 2, state.Annotations)
}
