package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobPayload struct {
	Title   string `json:"title" validate:"required,min=3"`
	JobType string `json:"job_type" validate:"required,is-job-type"`
	Role    string `json:"role" validate:"omitempty,is-user-role"`
}

func TestValidate(t *testing.T) {
	t.Parallel()
	v := New()

	t.Run("accepts a valid payload", func(t *testing.T) {
		err := v.Validate(&jobPayload{Title: "Data Engineer", JobType: "full-time", Role: "student"})
		assert.NoError(t, err)
	})

	t.Run("reports field names from json tags", func(t *testing.T) {
		err := v.Validate(&jobPayload{Title: "ab", JobType: "gig"})
		require.Error(t, err)

		validationErr, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Contains(t, validationErr.Errors, "title")
		assert.Contains(t, validationErr.Errors, "job_type")
	})

	t.Run("rejects unknown job type", func(t *testing.T) {
		err := v.Validate(&jobPayload{Title: "Data Engineer", JobType: "freelance"})
		require.Error(t, err)

		validationErr, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Equal(t, "Must be a valid job type", validationErr.Errors["job_type"])
	})

	t.Run("rejects unknown user role", func(t *testing.T) {
		err := v.Validate(&jobPayload{Title: "Data Engineer", JobType: "remote", Role: "mentor"})
		require.Error(t, err)

		validationErr, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Equal(t, "Must be a valid user role", validationErr.Errors["role"])
	})

	t.Run("error string mentions failing fields", func(t *testing.T) {
		err := v.Validate(&jobPayload{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Validation failed")
	})
}
