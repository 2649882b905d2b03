package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "machine learning", Normalize("Machine-Learning"))
	assert.Equal(t, "scikit learn", Normalize("  scikit_learn "))
	assert.Equal(t, "c++", Normalize("C++"))
	assert.Equal(t, "", Normalize("   "))

	// Idempotence: normalizing a normalized token is a no-op.
	for _, s := range []string{"Node.JS", "CI/CD", "react-native", "  Deep_Learning "} {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", s)
	}
}

func TestCatalogVariants(t *testing.T) {
	t.Parallel()
	c := NewCatalog()

	t.Run("synonyms resolve to one group", func(t *testing.T) {
		// Closure: every variant of a group yields the same variant set.
		base := c.VariantsOf("javascript")
		assert.Contains(t, base, "js")
		assert.Contains(t, base, "nodejs")
		for _, variant := range base {
			assert.ElementsMatch(t, base, c.VariantsOf(variant), "variant %q left its group", variant)
			assert.Equal(t, "javascript", c.CanonicalKey(variant))
		}
	})

	t.Run("unknown skill maps to itself", func(t *testing.T) {
		assert.Equal(t, []string{"cobol"}, c.VariantsOf("COBOL"))
		assert.Equal(t, "cobol", c.CanonicalKey("Cobol"))
	})

	t.Run("flattened variant list is sorted and deduplicated", func(t *testing.T) {
		all := c.KnownVariants()
		assert.NotEmpty(t, all)
		for i := 1; i < len(all); i++ {
			assert.Less(t, all[i-1], all[i])
		}
	})

	t.Run("overlapping variants resolve to the first declaring group", func(t *testing.T) {
		// mysql, postgresql and postgres are listed both under "sql" and
		// under their own groups; the sql group is declared first and must
		// win on every construction, not depending on build order.
		for i := 0; i < 50; i++ {
			fresh := NewCatalog()
			assert.Equal(t, "sql", fresh.CanonicalKey("mysql"))
			assert.Equal(t, "sql", fresh.CanonicalKey("postgresql"))
			assert.Equal(t, "sql", fresh.CanonicalKey("postgres"))
			assert.Equal(t, "mysql", fresh.CanonicalKey("my sql"))
			assert.Equal(t, "postgresql", fresh.CanonicalKey("psql"))
		}
	})
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "JavaScript", Display("javascript"))
	assert.Equal(t, "C++", Display("c++"))
	assert.Equal(t, "CI/CD", Display("ci-cd"))
	assert.Equal(t, "Machine Learning", Display("machine_learning"))
	assert.Equal(t, "Distributed Systems", Display("distributed systems"))
	assert.Equal(t, "COBOL", Display("COBOL"), "acronyms pass through unchanged")
	assert.Equal(t, "", Display(""))
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, Similarity("python", "python"))
	assert.Equal(t, 1.0, Similarity("Python", "python"), "case-insensitive")
	assert.GreaterOrEqual(t, Similarity("python", "pyhton"), 0.8, "transposition typo stays above default threshold")
	assert.Equal(t, 0.0, Similarity("aaa", "zzz"), "disjoint strings score zero")
	assert.Less(t, Similarity("python", "qwerty"), DefaultFuzzyThreshold)

	// Matching-blocks ratio: 2*M/(len(a)+len(b)). "pyhton" keeps the blocks
	// "py", "on" and one of the shuffled middle characters (M=5 of 12).
	assert.InDelta(t, 0.8333, Similarity("python", "pyhton"), 0.001)

	// A shared prefix alone must not clear the threshold; prefix-weighted
	// metrics score this pair 0.848 and make "read" match the skill "react".
	assert.Less(t, Similarity("react", "read"), DefaultFuzzyThreshold)
	assert.InDelta(t, 0.6667, Similarity("react", "read"), 0.001)

	// Symmetry.
	assert.Equal(t, Similarity("react", "redux"), Similarity("redux", "react"))
}
