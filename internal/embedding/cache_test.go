package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	raw       []byte
	updatedAt time.Time
	loadErr   error

	saved     [][]byte
	savedAt   []time.Time
	saveErr   error
	clearCnt  int
	clearErr  error
}

func (s *fakeStore) LoadEmbedding(ctx context.Context, ownerID string) ([]byte, time.Time, error) {
	return s.raw, s.updatedAt, s.loadErr
}

func (s *fakeStore) SaveEmbedding(ctx context.Context, ownerID string, raw []byte, updatedAt time.Time) error {
	s.saved = append(s.saved, raw)
	s.savedAt = append(s.savedAt, updatedAt)
	return s.saveErr
}

func (s *fakeStore) ClearEmbedding(ctx context.Context, ownerID string) error {
	s.clearCnt++
	return s.clearErr
}

type fakeEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	return e.vec, e.err
}

func (e *fakeEmbedder) Dimensions() int { return len(e.vec) }

func encodeVec(t *testing.T, vec []float32) []byte {
	t.Helper()
	raw, err := json.Marshal(vec)
	require.NoError(t, err)
	return raw
}

func TestCacheManagerGetOrRefresh(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newManager := func(store *fakeStore, emb *fakeEmbedder) *CacheManager {
		m := NewCacheManager(store, emb, 0, 0)
		m.now = func() time.Time { return fixed }
		return m
	}

	t.Run("fresh cache skips generator", func(t *testing.T) {
		store := &fakeStore{
			raw:       encodeVec(t, []float32{0.1, 0.2}),
			updatedAt: fixed.Add(-24 * time.Hour),
		}
		emb := &fakeEmbedder{vec: []float32{9, 9}}
		m := newManager(store, emb)

		got := m.GetOrRefresh(context.Background(), "p1", "some text", false)

		assert.Equal(t, []float32{0.1, 0.2}, got)
		assert.Equal(t, 0, emb.calls)
		assert.Empty(t, store.saved)
	})

	t.Run("stale cache regenerates and saves", func(t *testing.T) {
		store := &fakeStore{
			raw:       encodeVec(t, []float32{0.1, 0.2}),
			updatedAt: fixed.Add(-8 * 24 * time.Hour),
		}
		emb := &fakeEmbedder{vec: []float32{0.3, 0.4}}
		m := newManager(store, emb)

		got := m.GetOrRefresh(context.Background(), "p1", "some text", false)

		assert.Equal(t, []float32{0.3, 0.4}, got)
		assert.Equal(t, 1, emb.calls)
		require.Len(t, store.saved, 1)
		assert.Equal(t, encodeVec(t, []float32{0.3, 0.4}), store.saved[0])
		assert.Equal(t, fixed, store.savedAt[0])
	})

	t.Run("missing cache generates", func(t *testing.T) {
		store := &fakeStore{}
		emb := &fakeEmbedder{vec: []float32{1, 2, 3}}
		m := newManager(store, emb)

		got := m.GetOrRefresh(context.Background(), "p1", "some text", false)

		assert.Equal(t, []float32{1, 2, 3}, got)
		assert.Equal(t, 1, emb.calls)
	})

	t.Run("force bypasses fresh cache", func(t *testing.T) {
		store := &fakeStore{
			raw:       encodeVec(t, []float32{0.1}),
			updatedAt: fixed.Add(-time.Hour),
		}
		emb := &fakeEmbedder{vec: []float32{0.5}}
		m := newManager(store, emb)

		got := m.GetOrRefresh(context.Background(), "p1", "some text", true)

		assert.Equal(t, []float32{0.5}, got)
		assert.Equal(t, 1, emb.calls)
	})

	t.Run("generator failure falls back to stale cache", func(t *testing.T) {
		store := &fakeStore{
			raw:       encodeVec(t, []float32{0.7}),
			updatedAt: fixed.Add(-30 * 24 * time.Hour), // far past validity
		}
		emb := &fakeEmbedder{err: errors.New("embedder down")}
		m := newManager(store, emb)

		got := m.GetOrRefresh(context.Background(), "p1", "some text", false)

		assert.Equal(t, []float32{0.7}, got)
		assert.Empty(t, store.saved)
	})

	t.Run("generator failure with no cache returns empty", func(t *testing.T) {
		store := &fakeStore{}
		emb := &fakeEmbedder{err: errors.New("embedder down")}
		m := newManager(store, emb)

		got := m.GetOrRefresh(context.Background(), "p1", "some text", false)

		assert.Empty(t, got)
	})

	t.Run("empty source text not embedded or cached", func(t *testing.T) {
		store := &fakeStore{}
		emb := &fakeEmbedder{vec: []float32{1}}
		m := newManager(store, emb)

		got := m.GetOrRefresh(context.Background(), "p1", "", false)

		assert.Empty(t, got)
		assert.Equal(t, 0, emb.calls)
		assert.Empty(t, store.saved)
	})

	t.Run("load error does not break generation", func(t *testing.T) {
		store := &fakeStore{loadErr: errors.New("db gone")}
		emb := &fakeEmbedder{vec: []float32{2}}
		m := newManager(store, emb)

		got := m.GetOrRefresh(context.Background(), "p1", "some text", false)

		assert.Equal(t, []float32{2}, got)
	})

	t.Run("save error still returns vector", func(t *testing.T) {
		store := &fakeStore{saveErr: errors.New("disk full")}
		emb := &fakeEmbedder{vec: []float32{3}}
		m := newManager(store, emb)

		got := m.GetOrRefresh(context.Background(), "p1", "some text", false)

		assert.Equal(t, []float32{3}, got)
	})
}

func TestCacheManagerInvalidate(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	m := NewCacheManager(store, &fakeEmbedder{}, 0, 0)

	require.NoError(t, m.Invalidate(context.Background(), "p1"))
	assert.Equal(t, 1, store.clearCnt)
}
