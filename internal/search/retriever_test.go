package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVectorSearcher struct {
	hits []VectorHit
	err  error
}

func (f *fakeVectorSearcher) SearchVectors(ctx context.Context, vector []float32, limit int) ([]VectorHit, error) {
	return f.hits, f.err
}

type fakeLexicalSearcher struct {
	ids []string
	err error
}

func (f *fakeLexicalSearcher) SearchLexical(ctx context.Context, terms []string, location string, limit int) ([]string, error) {
	return f.ids, f.err
}

func TestRetrieverMerge(t *testing.T) {
	t.Parallel()

	vec := []float32{0.1, 0.2}
	terms := []string{"python"}

	t.Run("dedup keeps vector score", func(t *testing.T) {
		r := NewRetriever(
			&fakeVectorSearcher{hits: []VectorHit{{ID: "1", Score: 0.9}, {ID: "2", Score: 0.5}}},
			&fakeLexicalSearcher{ids: []string{"2", "3"}},
		)

		got := r.Retrieve(context.Background(), vec, terms, "", 10)
		require.Len(t, got, 3)

		byID := make(map[string]Candidate, len(got))
		for _, c := range got {
			byID[c.JobID] = c
		}

		assert.Equal(t, 0.9, byID["1"].SemanticScore)
		assert.False(t, byID["1"].FromLexical)

		// Found by both: vector score wins, lexical flag set.
		assert.Equal(t, 0.5, byID["2"].SemanticScore)
		assert.True(t, byID["2"].FromLexical)

		assert.Equal(t, 0.0, byID["3"].SemanticScore)
		assert.True(t, byID["3"].FromLexical)
	})

	t.Run("vector failure degrades to lexical", func(t *testing.T) {
		r := NewRetriever(
			&fakeVectorSearcher{err: errors.New("index down")},
			&fakeLexicalSearcher{ids: []string{"a", "b"}},
		)

		got := r.Retrieve(context.Background(), vec, terms, "", 10)
		require.Len(t, got, 2)
		assert.True(t, got[0].FromLexical)
	})

	t.Run("lexical failure degrades to vector", func(t *testing.T) {
		r := NewRetriever(
			&fakeVectorSearcher{hits: []VectorHit{{ID: "1", Score: 0.7}}},
			&fakeLexicalSearcher{err: errors.New("db down")},
		)

		got := r.Retrieve(context.Background(), vec, terms, "", 10)
		require.Len(t, got, 1)
		assert.Equal(t, "1", got[0].JobID)
	})

	t.Run("both sources failing yields empty set", func(t *testing.T) {
		r := NewRetriever(
			&fakeVectorSearcher{err: errors.New("index down")},
			&fakeLexicalSearcher{err: errors.New("db down")},
		)

		got := r.Retrieve(context.Background(), vec, terms, "", 10)
		assert.Empty(t, got)
	})

	t.Run("empty query vector skips vector side", func(t *testing.T) {
		r := NewRetriever(
			&fakeVectorSearcher{hits: []VectorHit{{ID: "should-not-appear", Score: 1}}},
			&fakeLexicalSearcher{ids: []string{"x"}},
		)

		got := r.Retrieve(context.Background(), nil, terms, "", 10)
		require.Len(t, got, 1)
		assert.Equal(t, "x", got[0].JobID)
	})

	t.Run("duplicate vector hits collapsed", func(t *testing.T) {
		r := NewRetriever(
			&fakeVectorSearcher{hits: []VectorHit{{ID: "1", Score: 0.9}, {ID: "1", Score: 0.4}}},
			&fakeLexicalSearcher{},
		)

		got := r.Retrieve(context.Background(), vec, terms, "", 10)
		require.Len(t, got, 1)
		assert.Equal(t, 0.9, got[0].SemanticScore)
	})
}
