package embedding

import (
	"fmt"
	"strings"
)

// Character caps keep generator cost bounded for long free-text fields.
const (
	resumeTextCap     = 2000
	jobDescriptionCap = 2000
)

// BuildProfileText assembles the embeddable blob for a candidate profile.
// Skills lead because they dominate the semantic signal; resume text follows,
// whitespace-normalized and capped. Pure function: identical input always
// yields the identical blob, which the cache relies on.
func BuildProfileText(skills, resumeText string) string {
	var parts []string

	if strings.TrimSpace(skills) != "" {
		parts = append(parts, fmt.Sprintf("My skills are: %s.", strings.TrimSpace(skills)))
	}

	clean := normalizeWhitespace(resumeText)
	if clean != "" {
		parts = append(parts, "Experience: "+truncate(clean, resumeTextCap))
	}

	return strings.Join(parts, " ")
}

// BuildJobText assembles the embeddable blob for a job posting: title first,
// then description (capped), type, location and optional skills.
func BuildJobText(title, description, jobType, location, skills string) string {
	parts := []string{
		title,
		truncate(normalizeWhitespace(description), jobDescriptionCap),
		jobType,
		location,
	}
	if strings.TrimSpace(skills) != "" {
		parts = append(parts, "Required skills: "+strings.TrimSpace(skills))
	}

	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return normalizeWhitespace(strings.Join(nonEmpty, " "))
}

// normalizeWhitespace collapses all whitespace runs to single spaces and trims.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
