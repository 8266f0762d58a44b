package tokens

import (
	"sync"
	"testing"

	"github.com/agentic-research/lumiere/api"
	"github.com/agentic-research/lumiere/internal/source"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(origin, category string, tokens ...api.Token) source.Record {
	return source.Record{Origin: origin, Categories: []api.Category{{Name: category, Tokens: tokens}}}
}

func TestAggregate_ShallowUnionInOrder(t *testing.T) {
	doc, err := Aggregate(
		rec("colors", "lumiere", api.Token{Name: "navy", Value: "#1B1F3B"}),
		rec("typography", "fonts", api.Token{Name: "body", Value: "Open Sans, sans-serif"}),
		rec("spacing", "spacing", api.Token{Name: "sm", Value: "8px"}),
	)
	require.NoError(t, err)

	want := &api.Document{Categories: []api.Category{
		{Name: "lumiere", Tokens: []api.Token{{Name: "navy", Value: "#1B1F3B"}}},
		{Name: "fonts", Tokens: []api.Token{{Name: "body", Value: "Open Sans, sans-serif"}}},
		{Name: "spacing", Tokens: []api.Token{{Name: "sm", Value: "8px"}}},
	}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_Collision(t *testing.T) {
	_, err := Aggregate(
		rec("a.js", "spacing", api.Token{Name: "sm", Value: "8px"}),
		rec("b.js", "spacing", api.Token{Name: "sm", Value: "10px"}),
	)
	var ce *CollisionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "spacing", ce.Category)
	assert.Equal(t, "a.js", ce.First)
	assert.Equal(t, "b.js", ce.Second)
}

func TestAggregate_NoRecords(t *testing.T) {
	doc, err := Aggregate()
	require.NoError(t, err)
	assert.Empty(t, doc.Categories)
}

func TestAggregate_DoesNotAliasSources(t *testing.T) {
	r := rec("colors", "lumiere", api.Token{Name: "navy", Value: "#1B1F3B"})
	doc, err := Aggregate(r)
	require.NoError(t, err)

	r.Categories[0].Tokens[0].Value = "#000000"
	v, _ := doc.Lookup("lumiere", "navy")
	assert.Equal(t, "#1B1F3B", v)
}

func TestDefault(t *testing.T) {
	doc := Default()
	assert.Equal(t, []string{"lumiere", "fonts", "fontSizes", "spacing"}, doc.Names())

	v, ok := doc.Lookup("spacing", "2xl")
	assert.True(t, ok)
	assert.Equal(t, "48px", v)
}

func TestHolder_Swap(t *testing.T) {
	h := NewHolder(Default())
	assert.Equal(t, uint64(0), h.Version())

	next := &api.Document{}
	h.Swap(next)
	assert.Same(t, next, h.Current())
	assert.Equal(t, uint64(1), h.Version())
}

func TestHolder_ConcurrentReaders(t *testing.T) {
	h := NewHolder(Default())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = h.Current().Names()
			}
		}()
	}
	for j := 0; j < 10; j++ {
		h.Swap(Default())
	}
	wg.Wait()
	assert.Equal(t, uint64(10), h.Version())
}
