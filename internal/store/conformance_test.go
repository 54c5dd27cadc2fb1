package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

type testDoc struct {
	ID          string     `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Category    string     `json:"category" bson:"category"`
	Stock       int        `json:"stock" bson:"stock"`
	Items       []testItem `json:"items" bson:"items"`
}

// runConformance exercises the Store contract against a backend. Each
// call must receive an empty store.
func runConformance(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("insert assigns object ids", func(t *testing.T) {
		id, err := s.Insert(ctx, "conf_insert", testDoc{ID: "ignored", Title: "Vase"})
		require.NoError(t, err)
		assert.True(t, ValidID(id))
		assert.NotEqual(t, "ignored", id)

		var docs []testDoc
		require.NoError(t, s.Find(ctx, "conf_insert", ByID(id), &docs))
		require.Len(t, docs, 1)
		assert.Equal(t, id, docs[0].ID)
		assert.Equal(t, "Vase", docs[0].Title)
	})

	t.Run("find keeps insertion order and honours limit", func(t *testing.T) {
		titles := []string{"first", "second", "third"}
		for _, title := range titles {
			_, err := s.Insert(ctx, "conf_order", testDoc{Title: title})
			require.NoError(t, err)
		}

		var all []testDoc
		require.NoError(t, s.Find(ctx, "conf_order", Query{}, &all))
		require.Len(t, all, 3)
		for i, doc := range all {
			assert.Equal(t, titles[i], doc.Title)
		}

		var limited []testDoc
		require.NoError(t, s.Find(ctx, "conf_order", Query{Limit: 2}, &limited))
		assert.Len(t, limited, 2)
	})

	t.Run("empty result decodes to an empty slice", func(t *testing.T) {
		docs := []testDoc{}
		require.NoError(t, s.Find(ctx, "conf_empty", Where("title", "nothing"), &docs))
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})

	t.Run("equality and text match compose with AND", func(t *testing.T) {
		seed := []testDoc{
			{Title: "Crystal Bowl", Description: "Hand blown", Category: "glassware"},
			{Title: "Porcelain Cup", Description: "Fine Glass inlay", Category: "ceramics"},
			{Title: "Oak Box", Description: "Sturdy", Category: "glassware"},
			{Title: "100% Cotton_Wrap", Description: "Soft", Category: "textiles"},
		}
		for _, doc := range seed {
			_, err := s.Insert(ctx, "conf_search", doc)
			require.NoError(t, err)
		}

		search := func(q Query) []string {
			var docs []testDoc
			require.NoError(t, s.Find(ctx, "conf_search", q, &docs))
			var out []string
			for _, d := range docs {
				out = append(out, d.Title)
			}
			return out
		}

		text := func(term string) *TextMatch {
			return &TextMatch{Fields: []string{"title", "description"}, Term: term}
		}

		assert.Equal(t, []string{"Porcelain Cup"}, search(Query{Match: text("glass")}))
		assert.Equal(t, []string{"Crystal Bowl", "Oak Box"}, search(Where("category", "glassware")))
		assert.Equal(t, []string{"Crystal Bowl"}, search(Query{
			Equals: map[string]string{"category": "glassware"},
			Match:  text("BLOWN"),
		}))
		assert.Equal(t, []string{"100% Cotton_Wrap"}, search(Query{Match: text("0% cotton_")}))
		assert.Empty(t, search(Query{Match: text("c.p")}))
	})

	t.Run("id queries select a batch", func(t *testing.T) {
		a, err := s.Insert(ctx, "conf_batch", testDoc{Title: "a"})
		require.NoError(t, err)
		_, err = s.Insert(ctx, "conf_batch", testDoc{Title: "b"})
		require.NoError(t, err)
		c, err := s.Insert(ctx, "conf_batch", testDoc{Title: "c"})
		require.NoError(t, err)

		var docs []testDoc
		require.NoError(t, s.Find(ctx, "conf_batch", Query{IDs: []string{c, a, NewID()}}, &docs))
		require.Len(t, docs, 2)
		assert.Equal(t, "a", docs[0].Title)
		assert.Equal(t, "c", docs[1].Title)
	})

	t.Run("malformed ids are rejected", func(t *testing.T) {
		var docs []testDoc
		err := s.Find(ctx, "conf_batch", ByID("not-an-id"), &docs)
		assert.True(t, errors.Is(err, ErrInvalidID))

		_, err = s.Update(ctx, "conf_batch", "xyz", map[string]any{"title": "x"})
		assert.True(t, errors.Is(err, ErrInvalidID))

		_, err = s.Increment(ctx, "conf_batch", "xyz", "stock", 1)
		assert.True(t, errors.Is(err, ErrInvalidID))
	})

	t.Run("update replaces top-level fields", func(t *testing.T) {
		id, err := s.Insert(ctx, "conf_update", testDoc{
			Title: "cart",
			Items: []testItem{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}},
		})
		require.NoError(t, err)

		matched, err := s.Update(ctx, "conf_update", id, map[string]any{"items": []testItem{}})
		require.NoError(t, err)
		assert.True(t, matched)

		var docs []testDoc
		require.NoError(t, s.Find(ctx, "conf_update", ByID(id), &docs))
		require.Len(t, docs, 1)
		assert.Empty(t, docs[0].Items)
		assert.Equal(t, "cart", docs[0].Title)

		matched, err = s.Update(ctx, "conf_update", NewID(), map[string]any{"title": "x"})
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("increment adjusts numeric fields", func(t *testing.T) {
		id, err := s.Insert(ctx, "conf_inc", testDoc{Title: "vase", Stock: 5})
		require.NoError(t, err)

		matched, err := s.Increment(ctx, "conf_inc", id, "stock", -2)
		require.NoError(t, err)
		assert.True(t, matched)

		var docs []testDoc
		require.NoError(t, s.Find(ctx, "conf_inc", ByID(id), &docs))
		require.Len(t, docs, 1)
		assert.Equal(t, 3, docs[0].Stock)

		matched, err = s.Increment(ctx, "conf_inc", NewID(), "stock", -1)
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("collections lists written collections", func(t *testing.T) {
		names, err := s.Collections(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, "conf_inc")
	})
}
