package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobmatch_backend/internal/skills"
)

func TestExtractIntent(t *testing.T) {
	t.Parallel()

	catalog := skills.NewCatalog()

	t.Run("remote intent wins over intern", func(t *testing.T) {
		meta := ExtractIntent(catalog, "remote python internship")
		assert.Equal(t, IntentRemote, meta.Intent)
	})

	t.Run("internship intent", func(t *testing.T) {
		meta := ExtractIntent(catalog, "Software Engineering Intern in Lahore")
		assert.Equal(t, IntentInternship, meta.Intent)
		assert.Equal(t, "lahore", meta.Location)
	})

	t.Run("general intent by default", func(t *testing.T) {
		meta := ExtractIntent(catalog, "backend developer jobs")
		assert.Equal(t, IntentGeneral, meta.Intent)
		assert.Empty(t, meta.Location)
	})

	t.Run("skills extracted from query", func(t *testing.T) {
		meta := ExtractIntent(catalog, "python and react developer")
		assert.Contains(t, meta.Skills, "python")
		assert.Contains(t, meta.Skills, "react")
	})

	t.Run("first gazetteer match wins", func(t *testing.T) {
		meta := ExtractIntent(catalog, "jobs in karachi or islamabad")
		assert.Equal(t, "karachi", meta.Location)
	})

	t.Run("raw query preserved", func(t *testing.T) {
		meta := ExtractIntent(catalog, "Django Developer")
		assert.Equal(t, "Django Developer", meta.RawQuery)
	})

	t.Run("empty query", func(t *testing.T) {
		meta := ExtractIntent(catalog, "")
		assert.Equal(t, IntentGeneral, meta.Intent)
		assert.Empty(t, meta.Skills)
		assert.Empty(t, meta.Location)
	})
}
