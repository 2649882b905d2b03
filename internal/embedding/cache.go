package embedding

import (
	"context"
	"encoding/json"
	"time"

	"jobmatch_backend/internal/logger"
)

// DefaultCacheValidity is how long a cached vector stays fresh before lazy
// regeneration kicks in.
const DefaultCacheValidity = 7 * 24 * time.Hour

// CacheStore persists one serialized vector plus timestamp per owner,
// typically as two columns on the owning profile row. Concurrent writers for
// the same owner resolve last-writer-wins; the cache is an optimization, not
// a source of truth.
type CacheStore interface {
	LoadEmbedding(ctx context.Context, ownerID string) (raw []byte, updatedAt time.Time, err error)
	SaveEmbedding(ctx context.Context, ownerID string, raw []byte, updatedAt time.Time) error
	ClearEmbedding(ctx context.Context, ownerID string) error
}

// CacheManager implements the embedding cache lifecycle:
// MISSING -> FRESH on first generation, FRESH -> STALE when the validity
// window elapses, STALE -> FRESH on regeneration. Stale entries remain usable
// as a degraded fallback when the generator fails.
type CacheManager struct {
	store    CacheStore
	embedder Embedder
	validity time.Duration
	timeout  time.Duration

	now func() time.Time // injectable clock for tests
}

// NewCacheManager wires a cache manager with the given store and generator.
// validity <= 0 falls back to DefaultCacheValidity; timeout bounds each
// generator call, with expiry treated as a generator failure.
func NewCacheManager(store CacheStore, embedder Embedder, validity, timeout time.Duration) *CacheManager {
	if validity <= 0 {
		validity = DefaultCacheValidity
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &CacheManager{
		store:    store,
		embedder: embedder,
		validity: validity,
		timeout:  timeout,
		now:      time.Now,
	}
}

// GetOrRefresh returns the owner's embedding vector, regenerating it from
// sourceText when the cache is missing, stale or force is set. It never
// returns an error: generator failures degrade to the last cached vector
// (however stale) or to an empty vector.
func (m *CacheManager) GetOrRefresh(ctx context.Context, ownerID, sourceText string, force bool) []float32 {
	raw, updatedAt, loadErr := m.store.LoadEmbedding(ctx, ownerID)
	if loadErr != nil {
		logger.CtxWarn(ctx, "embedding cache load failed", "owner_id", ownerID, "error", loadErr)
	}

	if !force && len(raw) > 0 && m.now().Sub(updatedAt) <= m.validity {
		if vec := decodeVector(raw); len(vec) > 0 {
			return vec // cache hit, generator untouched
		}
	}

	if sourceText == "" {
		return nil // nothing meaningful to embed; do not cache
	}

	embedCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	vec, err := m.embedder.Embed(embedCtx, sourceText)
	if err != nil {
		// Degraded path: serve whatever we have, however old. The original
		// behavior sets no upper bound on fallback staleness.
		if fallback := decodeVector(raw); len(fallback) > 0 {
			logger.CtxWarn(ctx, "embedding generation failed, serving stale cache",
				"owner_id", ownerID, "cache_age", m.now().Sub(updatedAt).String(), "error", err)
			return fallback
		}
		logger.CtxWarn(ctx, "embedding generation failed with no cached fallback", "owner_id", ownerID, "error", err)
		return nil
	}

	encoded, err := json.Marshal(vec)
	if err == nil {
		if saveErr := m.store.SaveEmbedding(ctx, ownerID, encoded, m.now()); saveErr != nil {
			logger.CtxWarn(ctx, "embedding cache save failed", "owner_id", ownerID, "error", saveErr)
		}
	}

	return vec
}

// Invalidate clears the owner's cache entry. Callers must invoke this (or
// pass force to GetOrRefresh) whenever the source fields behind the
// embedding change, since staleness is otherwise only time-based.
func (m *CacheManager) Invalidate(ctx context.Context, ownerID string) error {
	return m.store.ClearEmbedding(ctx, ownerID)
}

func decodeVector(raw []byte) []float32 {
	if len(raw) == 0 {
		return nil
	}
	var vec []float32
	if err := json.Unmarshal(raw, &vec); err != nil {
		return nil
	}
	return vec
}
