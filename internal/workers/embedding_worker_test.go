package workers

import (
	"context"
	"testing"
	"time"

	"jobmatch_backend/internal/embedding"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileStore struct {
	stale []models.StudentProfile

	embeddings map[string][]byte
	updatedAt  map[string]time.Time
	listCalls  int
}

func newFakeProfileStore(stale ...models.StudentProfile) *fakeProfileStore {
	return &fakeProfileStore{
		stale:      stale,
		embeddings: make(map[string][]byte),
		updatedAt:  make(map[string]time.Time),
	}
}

func (f *fakeProfileStore) CreateStudentProfile(ctx context.Context, p *models.StudentProfile) error {
	return nil
}

func (f *fakeProfileStore) FindStudentProfileByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileStore) UpdateStudentProfile(ctx context.Context, p *models.StudentProfile) error {
	return nil
}

func (f *fakeProfileStore) ListProfilesWithStaleEmbeddings(ctx context.Context, olderThan time.Time, limit int) ([]models.StudentProfile, error) {
	f.listCalls++
	if len(f.stale) > limit {
		return f.stale[:limit], nil
	}
	return f.stale, nil
}

func (f *fakeProfileStore) CreateEmployerProfile(ctx context.Context, p *models.EmployerProfile) error {
	return nil
}

func (f *fakeProfileStore) FindEmployerProfileByUserID(ctx context.Context, userID string) (*models.EmployerProfile, error) {
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileStore) UpdateEmployerProfile(ctx context.Context, p *models.EmployerProfile) error {
	return nil
}

func (f *fakeProfileStore) LoadEmbedding(ctx context.Context, ownerID string) ([]byte, time.Time, error) {
	return f.embeddings[ownerID], f.updatedAt[ownerID], nil
}

func (f *fakeProfileStore) SaveEmbedding(ctx context.Context, ownerID string, raw []byte, updatedAt time.Time) error {
	f.embeddings[ownerID] = raw
	f.updatedAt[ownerID] = updatedAt
	return nil
}

func (f *fakeProfileStore) ClearEmbedding(ctx context.Context, ownerID string) error {
	delete(f.embeddings, ownerID)
	delete(f.updatedAt, ownerID)
	return nil
}

type countingEmbedder struct {
	calls int
}

func (e *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	return []float32{0.1, 0.2}, nil
}

func (e *countingEmbedder) Dimensions() int { return 2 }

func staleProfile(id string, skillList []string, resume string) models.StudentProfile {
	p := models.StudentProfile{ResumeText: resume}
	p.ID = id
	p.SetSkills(skillList)
	return p
}

func TestEmbeddingWorkerRefreshBatch(t *testing.T) {
	t.Parallel()

	t.Run("re-embeds stale profiles", func(t *testing.T) {
		store := newFakeProfileStore(
			staleProfile("p1", []string{"python"}, "data pipelines"),
			staleProfile("p2", []string{"react"}, "frontend work"),
		)
		emb := &countingEmbedder{}
		cache := embedding.NewCacheManager(store, emb, 7*24*time.Hour, time.Second)

		w := NewEmbeddingWorker(store, cache, time.Minute, 7*24*time.Hour, 50)
		w.refreshBatch(context.Background())

		assert.Equal(t, 2, emb.calls)
		assert.Contains(t, store.embeddings, "p1")
		assert.Contains(t, store.embeddings, "p2")
	})

	t.Run("skips profiles with no embeddable text", func(t *testing.T) {
		store := newFakeProfileStore(staleProfile("p1", nil, ""))
		emb := &countingEmbedder{}
		cache := embedding.NewCacheManager(store, emb, 7*24*time.Hour, time.Second)

		w := NewEmbeddingWorker(store, cache, time.Minute, 7*24*time.Hour, 50)
		w.refreshBatch(context.Background())

		assert.Zero(t, emb.calls)
		assert.Empty(t, store.embeddings)
	})

	t.Run("respects the batch limit", func(t *testing.T) {
		store := newFakeProfileStore(
			staleProfile("p1", []string{"python"}, "a"),
			staleProfile("p2", []string{"sql"}, "b"),
			staleProfile("p3", []string{"go"}, "c"),
		)
		emb := &countingEmbedder{}
		cache := embedding.NewCacheManager(store, emb, 7*24*time.Hour, time.Second)

		w := NewEmbeddingWorker(store, cache, time.Minute, 7*24*time.Hour, 2)
		w.refreshBatch(context.Background())

		require.Equal(t, 1, store.listCalls)
		assert.Equal(t, 2, emb.calls)
	})
}
