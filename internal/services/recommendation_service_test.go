package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmatch_backend/internal/embedding"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/repositories"
	"jobmatch_backend/internal/search"
	"jobmatch_backend/internal/skills"
)

type fakeProfileRepo struct {
	students  map[string]*models.StudentProfile // keyed by user ID
	employers map[string]*models.EmployerProfile

	embeddings map[string][]byte
	updatedAt  map[string]time.Time
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		students:   make(map[string]*models.StudentProfile),
		employers:  make(map[string]*models.EmployerProfile),
		embeddings: make(map[string][]byte),
		updatedAt:  make(map[string]time.Time),
	}
}

func (f *fakeProfileRepo) CreateStudentProfile(ctx context.Context, p *models.StudentProfile) error {
	f.students[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) FindStudentProfileByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	if p, ok := f.students[userID]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileRepo) UpdateStudentProfile(ctx context.Context, p *models.StudentProfile) error {
	f.students[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) ListProfilesWithStaleEmbeddings(ctx context.Context, olderThan time.Time, limit int) ([]models.StudentProfile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) CreateEmployerProfile(ctx context.Context, p *models.EmployerProfile) error {
	f.employers[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) FindEmployerProfileByUserID(ctx context.Context, userID string) (*models.EmployerProfile, error) {
	if p, ok := f.employers[userID]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileRepo) UpdateEmployerProfile(ctx context.Context, p *models.EmployerProfile) error {
	f.employers[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) LoadEmbedding(ctx context.Context, ownerID string) ([]byte, time.Time, error) {
	return f.embeddings[ownerID], f.updatedAt[ownerID], nil
}

func (f *fakeProfileRepo) SaveEmbedding(ctx context.Context, ownerID string, raw []byte, updatedAt time.Time) error {
	f.embeddings[ownerID] = raw
	f.updatedAt[ownerID] = updatedAt
	return nil
}

func (f *fakeProfileRepo) ClearEmbedding(ctx context.Context, ownerID string) error {
	delete(f.embeddings, ownerID)
	delete(f.updatedAt, ownerID)
	return nil
}

func studentProfile(userID, profileID, name, location string, skillList []string, resume string) *models.StudentProfile {
	p := &models.StudentProfile{
		UserID:     userID,
		Name:       name,
		Location:   location,
		ResumeText: resume,
	}
	p.ID = profileID
	p.SetSkills(skillList)
	return p
}

func TestRecommendationService(t *testing.T) {
	t.Parallel()

	newService := func(profiles *fakeProfileRepo, jobs *fakeJobRepo, index *fakeVectorIndex, emb *stubEmbedder) RecommendationService {
		catalog := skills.NewCatalog()
		cache := embedding.NewCacheManager(profiles, emb, 0, time.Second)
		retriever := search.NewRetriever(index, jobs)
		ranker := search.NewRanker(catalog, 0)
		return NewRecommendationService(catalog, cache, retriever, ranker, jobs, profiles)
	}

	t.Run("ranks jobs for profile", func(t *testing.T) {
		profiles := newFakeProfileRepo()
		profiles.students["u1"] = studentProfile("u1", "p1", "Sam", "Lahore", []string{"python", "sql"}, "built data pipelines")

		jobs := &fakeJobRepo{
			jobs: map[string]models.Job{
				"j1": activeJob("j1", "Data Engineer", "python and sql pipelines", "Lahore", models.JobTypeFullTime),
				"j2": activeJob("j2", "Chef", "cooking", "Karachi", models.JobTypeFullTime),
			},
		}
		index := &fakeVectorIndex{hits: []search.VectorHit{{ID: "j1", Score: 0.8}, {ID: "j2", Score: 0.3}}}
		svc := newService(profiles, jobs, index, &stubEmbedder{vec: []float32{0.5}})

		res, err := svc.GetRecommendations(context.Background(), "u1", 10)
		require.NoError(t, err)
		require.Len(t, res.Results, 2)
		assert.Equal(t, "j1", res.Results[0].Job.ID)
		// semantic 0.8*0.5 + skill 1.0*0.3 + location 1.0*0.2 = 0.9
		assert.Equal(t, 90.0, res.Results[0].Score)
	})

	t.Run("profile embedding cached across calls", func(t *testing.T) {
		profiles := newFakeProfileRepo()
		profiles.students["u1"] = studentProfile("u1", "p1", "Sam", "", []string{"python"}, "")

		jobs := &fakeJobRepo{jobs: map[string]models.Job{}}
		emb := &stubEmbedder{vec: []float32{0.5}}
		svc := newService(profiles, jobs, &fakeVectorIndex{}, emb)

		_, err := svc.GetRecommendations(context.Background(), "u1", 5)
		require.NoError(t, err)
		_, err = svc.GetRecommendations(context.Background(), "u1", 5)
		require.NoError(t, err)

		// Second call hits the cache written by the first.
		assert.NotEmpty(t, profiles.embeddings["p1"])
	})

	t.Run("skills derived from resume when none declared", func(t *testing.T) {
		profiles := newFakeProfileRepo()
		profiles.students["u1"] = studentProfile("u1", "p1", "Sam", "", nil, "I have used django and docker at work")

		jobs := &fakeJobRepo{
			jobs: map[string]models.Job{
				"j1": activeJob("j1", "Django Developer", "django and docker", "remote", models.JobTypeRemote),
			},
		}
		index := &fakeVectorIndex{hits: []search.VectorHit{{ID: "j1", Score: 0.6}}}
		svc := newService(profiles, jobs, index, &stubEmbedder{vec: []float32{0.5}})

		res, err := svc.GetRecommendations(context.Background(), "u1", 5)
		require.NoError(t, err)
		require.Len(t, res.Results, 1)
		assert.Contains(t, res.Results[0].MatchedSkills, "django")
	})

	t.Run("empty profile rejected", func(t *testing.T) {
		profiles := newFakeProfileRepo()
		profiles.students["u1"] = studentProfile("u1", "p1", "Sam", "", nil, "")

		svc := newService(profiles, &fakeJobRepo{}, &fakeVectorIndex{}, &stubEmbedder{vec: []float32{0.5}})

		_, err := svc.GetRecommendations(context.Background(), "u1", 5)
		assert.Error(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := newService(newFakeProfileRepo(), &fakeJobRepo{}, &fakeVectorIndex{}, &stubEmbedder{vec: []float32{0.5}})

		_, err := svc.GetRecommendations(context.Background(), "missing", 5)
		assert.Error(t, err)
	})
}
