package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"jobmatch_backend/internal/logger"
)

// VectorHit is one result from the vector index.
type VectorHit struct {
	ID    string
	Score float64
}

// VectorSearcher is the vector-index side of hybrid retrieval.
type VectorSearcher interface {
	SearchVectors(ctx context.Context, vector []float32, limit int) ([]VectorHit, error)
}

// LexicalSearcher is the keyword side of hybrid retrieval. terms are
// matched as substrings against job title and description; location, when
// non-empty, widens the match to the job location column.
type LexicalSearcher interface {
	SearchLexical(ctx context.Context, terms []string, location string, limit int) ([]string, error)
}

// Candidate is a retrieved job identifier before reranking. SemanticScore
// is zero when the job was discovered only lexically.
type Candidate struct {
	JobID         string
	SemanticScore float64
	FromLexical   bool
}

// Retriever merges vector and lexical search into one deduplicated
// candidate set. Both sources are queried concurrently; a failing source
// degrades the set instead of failing the request.
type Retriever struct {
	vectors VectorSearcher
	lexical LexicalSearcher
}

func NewRetriever(vectors VectorSearcher, lexical LexicalSearcher) *Retriever {
	return &Retriever{vectors: vectors, lexical: lexical}
}

// Retrieve queries both indices and merges the results. A job found by
// both keeps its vector similarity; lexical discovery never overrides it.
// An empty queryVector skips the vector side entirely.
func (r *Retriever) Retrieve(ctx context.Context, queryVector []float32, terms []string, location string, limit int) []Candidate {
	var (
		vectorHits []VectorHit
		lexicalIDs []string
		vectorErr  error
		lexicalErr error
	)

	g, gctx := errgroup.WithContext(ctx)

	if len(queryVector) > 0 && r.vectors != nil {
		g.Go(func() error {
			vectorHits, vectorErr = r.vectors.SearchVectors(gctx, queryVector, limit)
			return nil // degradation, not propagation
		})
	}

	if r.lexical != nil {
		g.Go(func() error {
			lexicalIDs, lexicalErr = r.lexical.SearchLexical(gctx, terms, location, limit)
			return nil
		})
	}

	_ = g.Wait()

	if vectorErr != nil {
		logger.CtxWarn(ctx, "vector search failed, degrading to lexical only", "error", vectorErr)
		vectorHits = nil
	}
	if lexicalErr != nil {
		logger.CtxWarn(ctx, "lexical search failed, degrading to vector only", "error", lexicalErr)
		lexicalIDs = nil
	}
	if vectorErr != nil && lexicalErr != nil {
		// Distinct from a genuine zero-result search.
		logger.CtxError(ctx, "both retrieval sources failed", "vector_error", vectorErr, "lexical_error", lexicalErr)
	}

	seen := make(map[string]int, len(vectorHits)+len(lexicalIDs))
	candidates := make([]Candidate, 0, len(vectorHits)+len(lexicalIDs))

	for _, hit := range vectorHits {
		if _, ok := seen[hit.ID]; ok {
			continue
		}
		seen[hit.ID] = len(candidates)
		candidates = append(candidates, Candidate{JobID: hit.ID, SemanticScore: hit.Score})
	}

	for _, id := range lexicalIDs {
		if idx, ok := seen[id]; ok {
			candidates[idx].FromLexical = true
			continue
		}
		seen[id] = len(candidates)
		candidates = append(candidates, Candidate{JobID: id, FromLexical: true})
	}

	return candidates
}
