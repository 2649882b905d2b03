package skills

import (
	"sort"
	"strings"
)

// displayNames maps canonical keys to human-friendly renderings that
// title-casing would get wrong.
var displayNames = map[string]string{
	"c++":              "C++",
	"c#":               "C#",
	"ci/cd":            "CI/CD",
	"api":              "API",
	"aws":              "AWS",
	"gcp":              "GCP",
	"sql":              "SQL",
	"mysql":            "MySQL",
	"mongodb":          "MongoDB",
	"node":             "Node.js",
	"nodejs":           "Node.js",
	"fastapi":          "FastAPI",
	"javascript":       "JavaScript",
	"typescript":       "TypeScript",
	"python":           "Python",
	"java":             "Java",
	"php":              "PHP",
	"html":             "HTML",
	"css":              "CSS",
	"machine learning": "Machine Learning",
	"deep learning":    "Deep Learning",
	"scikit-learn":     "scikit-learn",
}

// displayIndex re-keys displayNames by their separator-folded form so a
// lookup hits no matter which separator the caller used: "ci-cd", "ci/cd"
// and "ci cd" all resolve to the same entry.
var displayIndex = func() map[string]string {
	idx := make(map[string]string, len(displayNames))
	for key, name := range displayNames {
		idx[displayKey(key)] = name
	}
	return idx
}()

func displayKey(s string) string {
	return strings.ReplaceAll(Normalize(s), "/", " ")
}

// synonymGroup pairs a canonical skill key with every variant spelling that
// should resolve to it. The table is ordered: when a variant appears in more
// than one group (mysql is both its own group and a member of "sql"), the
// first group listed owns it, so resolution is stable across constructions.
type synonymGroup struct {
	key      string
	variants []string
}

var synonymGroups = []synonymGroup{
	// Programming languages
	{"javascript", []string{"js", "javascript", "ecmascript", "es6", "es5", "node", "nodejs", "node.js"}},
	{"python", []string{"python", "python3", "py", "python2"}},
	{"java", []string{"java", "java se", "java ee", "jdk"}},
	{"typescript", []string{"typescript", "ts"}},
	{"c++", []string{"c++", "cpp", "cplusplus"}},
	{"c#", []string{"c#", "csharp", "c sharp", ".net"}},
	{"php", []string{"php", "php7", "php8"}},
	{"ruby", []string{"ruby", "ruby on rails", "rails", "ror"}},
	{"go", []string{"go", "golang"}},
	{"rust", []string{"rust", "rust-lang"}},
	{"swift", []string{"swift", "swiftui"}},
	{"kotlin", []string{"kotlin", "kt"}},
	{"html", []string{"html", "html5", "html 5"}},
	{"css", []string{"css", "css3", "css 3", "cascading style sheets"}},

	// Frontend frameworks
	{"react", []string{"react", "reactjs", "react.js", "react native", "react-native"}},
	{"angular", []string{"angular", "angularjs", "angular.js", "ng"}},
	{"vue", []string{"vue", "vuejs", "vue.js", "nuxt"}},
	{"svelte", []string{"svelte", "sveltekit"}},

	// Backend frameworks
	{"django", []string{"django", "django rest", "drf"}},
	{"flask", []string{"flask", "flask-restful"}},
	{"express", []string{"express", "expressjs", "express.js"}},
	{"fastapi", []string{"fastapi", "fast api"}},
	{"spring", []string{"spring", "spring boot", "springboot"}},

	// Databases
	{"sql", []string{"sql", "mysql", "postgresql", "postgres", "sqlite", "mssql", "sql server"}},
	{"mysql", []string{"mysql", "my sql"}},
	{"postgresql", []string{"postgresql", "postgres", "psql"}},
	{"mongodb", []string{"mongodb", "mongo", "mongoose"}},
	{"redis", []string{"redis", "redis cache"}},

	// DevOps and cloud
	{"docker", []string{"docker", "containerization", "containers"}},
	{"kubernetes", []string{"kubernetes", "k8s", "kubectl"}},
	{"aws", []string{"aws", "amazon web services", "ec2", "s3", "lambda"}},
	{"azure", []string{"azure", "microsoft azure"}},
	{"gcp", []string{"gcp", "google cloud", "google cloud platform"}},
	{"ci/cd", []string{"ci/cd", "cicd", "continuous integration", "continuous deployment", "jenkins", "gitlab ci", "github actions"}},

	// Data science and ML
	{"machine learning", []string{"machine learning", "ml", "artificial intelligence", "ai"}},
	{"deep learning", []string{"deep learning", "neural networks", "dl"}},
	{"tensorflow", []string{"tensorflow", "tf", "keras"}},
	{"pytorch", []string{"pytorch", "torch"}},
	{"pandas", []string{"pandas", "pd"}},
	{"numpy", []string{"numpy", "np"}},
	{"scikit-learn", []string{"scikit-learn", "sklearn", "scikit"}},

	// Other tools
	{"git", []string{"git", "github", "gitlab", "version control"}},
	{"api", []string{"api", "rest api", "restful", "graphql"}},
	{"testing", []string{"testing", "unit testing", "jest", "pytest", "junit", "tdd"}},
}

// Catalog resolves skill tokens against the static synonym table.
// It is immutable after construction and safe for concurrent reads.
type Catalog struct {
	variantToKey map[string]string   // normalized variant -> canonical key
	keyToSet     map[string][]string // canonical key -> normalized variant set
	allVariants  []string            // flattened variant list, deterministic order
}

// NewCatalog builds the variant index from the static synonym table. The
// table is walked in declaration order and the first group claiming a variant
// keeps it, so every variant resolves to exactly one group on every build.
func NewCatalog() *Catalog {
	c := &Catalog{
		variantToKey: make(map[string]string),
		keyToSet:     make(map[string][]string),
	}
	for _, group := range synonymGroups {
		seen := make(map[string]bool, len(group.variants))
		set := make([]string, 0, len(group.variants))
		for _, v := range group.variants {
			n := Normalize(v)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			set = append(set, n)
			if _, claimed := c.variantToKey[n]; !claimed {
				c.variantToKey[n] = group.key
			}
		}
		c.keyToSet[group.key] = set
	}
	for variant := range c.variantToKey {
		c.allVariants = append(c.allVariants, variant)
	}
	sort.Strings(c.allVariants)
	return c
}

// Normalize lower-cases a skill token, trims it and collapses the "-" and "_"
// separators to spaces. Normalizing an already normalized token returns it
// unchanged.
func Normalize(skill string) string {
	s := strings.ToLower(strings.TrimSpace(skill))
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return s
}

// CanonicalKey returns the synonym-group key for a skill, or the normalized
// skill itself when the catalog does not know it.
func (c *Catalog) CanonicalKey(skill string) string {
	n := Normalize(skill)
	if key, ok := c.variantToKey[n]; ok {
		return key
	}
	return n
}

// VariantsOf returns every normalized synonym sharing the skill's group.
// Unknown skills map to a single-element set so they stay matchable literally.
func (c *Catalog) VariantsOf(skill string) []string {
	n := Normalize(skill)
	if key, ok := c.variantToKey[n]; ok {
		return c.keyToSet[key]
	}
	return []string{n}
}

// KnownVariants returns the flattened variant list in a fixed sorted order.
// Used by the query intent extractor to scan for skill mentions.
func (c *Catalog) KnownVariants() []string {
	return c.allVariants
}

// Display renders a canonical key as a human-friendly skill name. Keys missing
// from the display table are title-cased word by word; all-uppercase tokens
// (acronyms) pass through unchanged.
func Display(skill string) string {
	if skill == "" {
		return ""
	}
	n := Normalize(skill)
	if name, ok := displayIndex[displayKey(skill)]; ok {
		return name
	}
	if trimmed := strings.TrimSpace(skill); trimmed == strings.ToUpper(trimmed) && trimmed != strings.ToLower(trimmed) {
		return trimmed
	}
	words := strings.Fields(n)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
