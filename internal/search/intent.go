package search

import (
	"strings"

	"jobmatch_backend/internal/skills"
)

// Intent classifies what a free-text query is after.
type Intent string

const (
	IntentGeneral    Intent = "search"
	IntentRemote     Intent = "remote_search"
	IntentInternship Intent = "internship_search"
)

// locationGazetteer is scanned in fixed order; the first hit wins.
var locationGazetteer = []string{
	"lahore",
	"karachi",
	"islamabad",
	"boca raton",
	"remote",
}

// QueryMetadata is the structured view of a free-text query.
type QueryMetadata struct {
	Intent   Intent
	Skills   []string
	Location string
	RawQuery string
}

// ExtractIntent classifies a query and pulls out skill and location tokens.
// Pure heuristic over the lower-cased query; never fails, absent matches
// leave the fields empty.
func ExtractIntent(catalog *skills.Catalog, query string) QueryMetadata {
	queryLower := strings.ToLower(query)

	intent := IntentGeneral
	switch {
	case strings.Contains(queryLower, "remote"):
		intent = IntentRemote
	case strings.Contains(queryLower, "intern"):
		intent = IntentInternship
	}

	var location string
	for _, city := range locationGazetteer {
		if strings.Contains(queryLower, city) {
			location = city
			break
		}
	}

	return QueryMetadata{
		Intent:   intent,
		Skills:   catalog.ExtractFromText(queryLower),
		Location: location,
		RawQuery: query,
	}
}
