package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/services/dto"
	"jobmatch_backend/pkg/apperrors"
)

func employerProfile(userID, profileID, company string) *models.EmployerProfile {
	p := &models.EmployerProfile{UserID: userID, CompanyName: company}
	p.ID = profileID
	return p
}

func TestJobServiceVectorSync(t *testing.T) {
	t.Parallel()

	setup := func() (*fakeProfileRepo, *fakeJobRepo, *fakeVectorIndex, JobService) {
		profiles := newFakeProfileRepo()
		profiles.employers["emp-u"] = employerProfile("emp-u", "e1", "Acme")

		repo := &fakeJobRepo{jobs: map[string]models.Job{}}
		index := &fakeVectorIndex{}
		emb := &stubEmbedder{vec: []float32{0.1, 0.2}}
		svc := NewJobService(repo, profiles, emb, index, time.Second)
		return profiles, repo, index, svc
	}

	seedJob := func(repo *fakeJobRepo, active bool) {
		j := activeJob("j1", "Backend Engineer", "Go and Postgres", "Almaty", models.JobTypeFullTime)
		j.EmployerID = "e1"
		j.IsActive = active
		repo.jobs["j1"] = j
	}

	t.Run("create embeds and indexes the new job", func(t *testing.T) {
		_, repo, index, svc := setup()

		resp, err := svc.Create(context.Background(), "emp-u", &dto.CreateJobRequest{
			Title:       "Backend Engineer",
			Description: "Go and Postgres",
			JobType:     string(models.JobTypeFullTime),
		})
		require.NoError(t, err)
		assert.True(t, resp.IsActive)
		assert.Contains(t, index.upserted, resp.ID)
		assert.Contains(t, repo.jobs, resp.ID)
	})

	t.Run("deactivation clears the vector", func(t *testing.T) {
		_, repo, index, svc := setup()
		seedJob(repo, true)

		inactive := false
		_, err := svc.Update(context.Background(), "emp-u", "j1", &dto.UpdateJobRequest{IsActive: &inactive})
		require.NoError(t, err)
		assert.Equal(t, []string{"j1"}, index.deleted)
		assert.Empty(t, index.upserted)
		assert.False(t, repo.jobs["j1"].IsActive)
	})

	t.Run("reactivation re-embeds without a text change", func(t *testing.T) {
		_, repo, index, svc := setup()
		seedJob(repo, false)

		active := true
		_, err := svc.Update(context.Background(), "emp-u", "j1", &dto.UpdateJobRequest{IsActive: &active})
		require.NoError(t, err)
		assert.Equal(t, []string{"j1"}, index.upserted)
		assert.Empty(t, index.deleted)
		assert.True(t, repo.jobs["j1"].IsActive)
	})

	t.Run("text edit on an active job re-embeds once", func(t *testing.T) {
		_, repo, index, svc := setup()
		seedJob(repo, true)

		title := "Senior Backend Engineer"
		_, err := svc.Update(context.Background(), "emp-u", "j1", &dto.UpdateJobRequest{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, []string{"j1"}, index.upserted)
		assert.Empty(t, index.deleted)
	})

	t.Run("delete removes the vector and the row", func(t *testing.T) {
		_, repo, index, svc := setup()
		seedJob(repo, true)

		require.NoError(t, svc.Delete(context.Background(), "emp-u", "j1"))
		assert.Equal(t, []string{"j1"}, index.deleted)
		assert.NotContains(t, repo.jobs, "j1")
	})

	t.Run("non-owner cannot modify", func(t *testing.T) {
		profiles, repo, _, svc := setup()
		profiles.employers["other-u"] = employerProfile("other-u", "e2", "Umbrella")
		seedJob(repo, true)

		title := "Hijacked"
		_, err := svc.Update(context.Background(), "other-u", "j1", &dto.UpdateJobRequest{Title: &title})
		assert.ErrorIs(t, err, apperrors.ErrNotJobOwner)
	})
}
