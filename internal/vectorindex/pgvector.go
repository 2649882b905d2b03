package vectorindex

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"jobmatch_backend/internal/search"
)

// Index is the write side of the vector store plus the search contract the
// retrieval coordinator consumes. The approximate-NN work itself lives in
// Postgres via the pgvector extension; this package only adapts it.
type Index interface {
	search.VectorSearcher
	Upsert(ctx context.Context, id string, vector []float32) error
	Delete(ctx context.Context, id string) error
}

// PgVectorIndex stores job embeddings in the jobs table's vector column and
// searches them by cosine distance.
type PgVectorIndex struct {
	db *gorm.DB
}

func NewPgVectorIndex(db *gorm.DB) *PgVectorIndex {
	return &PgVectorIndex{db: db}
}

// SearchVectors returns the closest active jobs by cosine similarity.
// Scores are 1 - cosine distance, so higher is more similar.
func (idx *PgVectorIndex) SearchVectors(ctx context.Context, vector []float32, limit int) ([]search.VectorHit, error) {
	if len(vector) == 0 {
		return nil, nil
	}

	vec := pgvector.NewVector(vector)

	var rows []struct {
		ID    string
		Score float64
	}
	err := idx.db.WithContext(ctx).Raw(`
		SELECT id, 1 - (embedding <=> ?) AS score
		FROM jobs
		WHERE is_active = true AND embedding IS NOT NULL
		ORDER BY embedding <=> ?
		LIMIT ?`, vec, vec, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	hits := make([]search.VectorHit, len(rows))
	for i, row := range rows {
		hits[i] = search.VectorHit{ID: row.ID, Score: row.Score}
	}
	return hits, nil
}

// Upsert writes the job's embedding column.
func (idx *PgVectorIndex) Upsert(ctx context.Context, id string, vector []float32) error {
	return idx.db.WithContext(ctx).
		Exec("UPDATE jobs SET embedding = ? WHERE id = ?", pgvector.NewVector(vector), id).Error
}

// Delete clears the job's embedding so it no longer surfaces in vector search.
func (idx *PgVectorIndex) Delete(ctx context.Context, id string) error {
	return idx.db.WithContext(ctx).
		Exec("UPDATE jobs SET embedding = NULL WHERE id = ?", id).Error
}
