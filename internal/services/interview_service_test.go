package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmatch_backend/internal/models"
	"jobmatch_backend/pkg/apperrors"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

const validPrepJSON = `{
	"technical_questions": [
		{"question": "Explain Go channels", "expected_answer_key_points": "blocking; buffering; select", "difficulty": "Medium"}
	],
	"behavioral_questions": [
		{"question": "Tell me about a conflict", "tip": "Use STAR"}
	],
	"resume_feedback": "Add metrics. Mention Go projects."
}`

func TestInterviewService(t *testing.T) {
	t.Parallel()

	setup := func(gen *fakeGenerator) (InterviewService, *fakeProfileRepo, *fakeJobRepo) {
		profiles := newFakeProfileRepo()
		profiles.students["u1"] = studentProfile("u1", "p1", "Sam", "Lahore", []string{"python"}, "resume body")

		jobs := &fakeJobRepo{
			jobs: map[string]models.Job{
				"j1": activeJob("j1", "Backend Engineer", "Go and Postgres", "Lahore", models.JobTypeFullTime),
			},
		}
		return NewInterviewService(gen, jobs, profiles), profiles, jobs
	}

	t.Run("parses generator output", func(t *testing.T) {
		gen := &fakeGenerator{response: validPrepJSON}
		svc, _, _ := setup(gen)

		prep, err := svc.PrepareForJob(context.Background(), "u1", "j1")
		require.NoError(t, err)
		require.Len(t, prep.TechnicalQuestions, 1)
		assert.Equal(t, "Medium", prep.TechnicalQuestions[0].Difficulty)
		require.Len(t, prep.BehavioralQuestions, 1)
		assert.NotEmpty(t, prep.ResumeFeedback)

		// Prompt carries the job and the resume.
		require.Len(t, gen.prompts, 1)
		assert.Contains(t, gen.prompts[0], "Backend Engineer")
		assert.Contains(t, gen.prompts[0], "resume body")
	})

	t.Run("strips markdown fences", func(t *testing.T) {
		gen := &fakeGenerator{response: "```json\n" + validPrepJSON + "\n```"}
		svc, _, _ := setup(gen)

		prep, err := svc.PrepareForJob(context.Background(), "u1", "j1")
		require.NoError(t, err)
		assert.Len(t, prep.TechnicalQuestions, 1)
	})

	t.Run("generator failure surfaces as external service error", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("llm down")}
		svc, _, _ := setup(gen)

		_, err := svc.PrepareForJob(context.Background(), "u1", "j1")
		assert.Error(t, err)
	})

	t.Run("malformed json rejected", func(t *testing.T) {
		gen := &fakeGenerator{response: "sorry, I can't do that"}
		svc, _, _ := setup(gen)

		_, err := svc.PrepareForJob(context.Background(), "u1", "j1")
		assert.Error(t, err)
	})

	t.Run("unknown job", func(t *testing.T) {
		gen := &fakeGenerator{response: validPrepJSON}
		svc, _, _ := setup(gen)

		_, err := svc.PrepareForJob(context.Background(), "u1", "missing")
		assert.Error(t, err)
	})

	t.Run("deactivated job rejected", func(t *testing.T) {
		gen := &fakeGenerator{response: validPrepJSON}
		svc, _, jobs := setup(gen)
		closed := jobs.jobs["j1"]
		closed.IsActive = false
		jobs.jobs["j1"] = closed

		_, err := svc.PrepareForJob(context.Background(), "u1", "j1")
		assert.ErrorIs(t, err, apperrors.ErrJobInactive)
		assert.Empty(t, gen.prompts)
	})
}
