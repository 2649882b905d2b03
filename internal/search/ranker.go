package search

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"jobmatch_backend/internal/skills"
)

// Weights is one scoring profile. The intent component is zero for
// profiles that do not use it.
type Weights struct {
	Semantic float64
	Skill    float64
	Location float64
	Intent   float64
}

var (
	// QueryWeights ranks free-text chat/search queries.
	QueryWeights = Weights{Semantic: 0.40, Skill: 0.30, Location: 0.20, Intent: 0.10}

	// RecommendationWeights ranks jobs against a candidate profile.
	RecommendationWeights = Weights{Semantic: 0.50, Skill: 0.30, Location: 0.20}
)

// JobRecord is the slice of a job posting the ranker needs.
type JobRecord struct {
	ID          string
	Title       string
	Description string
	Location    string
	JobType     string
	IsActive    bool
}

// ScoredMatch is one ranked result. Score is on a 0..100 scale with one
// decimal place.
type ScoredMatch struct {
	JobID         string
	Score         float64
	MatchedSkills []string
	MissingSkills []string
	Rationale     string
}

// RankRequest bundles everything one ranking pass needs.
type RankRequest struct {
	Candidates      []Candidate
	Jobs            map[string]JobRecord
	CandidateSkills []string
	Location        string
	Intent          Intent
	Weights         Weights
	FuzzyThreshold  float64
	Limit           int
}

// Ranker scores retrieval candidates with a weighted sub-score formula.
type Ranker struct {
	catalog        *skills.Catalog
	fuzzyThreshold float64
}

// NewRanker builds a ranker. fuzzyThreshold <= 0 falls back to
// skills.DefaultFuzzyThreshold.
func NewRanker(catalog *skills.Catalog, fuzzyThreshold float64) *Ranker {
	return &Ranker{catalog: catalog, fuzzyThreshold: fuzzyThreshold}
}

// Rank scores every candidate whose job record is present and active,
// then orders descending by score with job ID as the tie-breaker.
func (r *Ranker) Rank(req RankRequest) []ScoredMatch {
	results := make([]ScoredMatch, 0, len(req.Candidates))

	for _, cand := range req.Candidates {
		job, ok := req.Jobs[cand.JobID]
		if !ok || !job.IsActive {
			continue
		}

		threshold := req.FuzzyThreshold
		if threshold <= 0 {
			threshold = r.fuzzyThreshold
		}

		jobText := job.Title + " " + job.Description
		matched, missing := r.catalog.MatchSkills(req.CandidateSkills, jobText, threshold)
		skillScore := skills.OverlapRatio(matched, req.CandidateSkills)
		locScore := scoreLocation(req.Location, job.Location)
		boost := scoreIntent(req.Intent, job.JobType)

		weighted := cand.SemanticScore*req.Weights.Semantic +
			skillScore*req.Weights.Skill +
			locScore*req.Weights.Location +
			boost*req.Weights.Intent

		results = append(results, ScoredMatch{
			JobID:         job.ID,
			Score:         round1(weighted * 100),
			MatchedSkills: matched,
			MissingSkills: missing,
			Rationale:     r.buildRationale(cand.SemanticScore, matched, locScore, boost),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].JobID < results[j].JobID
	})

	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}
	return results
}

// scoreLocation: exact substring match beats everything, a remote job is
// still relevant when no exact match exists, anything else scores zero.
func scoreLocation(wanted, jobLocation string) float64 {
	jobLoc := strings.ToLower(strings.TrimSpace(jobLocation))
	if wanted != "" && jobLoc != "" && strings.Contains(jobLoc, strings.ToLower(wanted)) {
		return 1.0
	}
	if jobLoc == "remote" {
		return 0.8
	}
	return 0.0
}

func scoreIntent(intent Intent, jobType string) float64 {
	if intent == IntentInternship && strings.Contains(strings.ToLower(jobType), "intern") {
		return 1.0
	}
	return 0.0
}

// buildRationale renders a deterministic explanation from the sub-scores.
// No language model involved: identical inputs always produce the same text.
func (r *Ranker) buildRationale(semantic float64, matched []string, locScore, intentScore float64) string {
	parts := []string{fmt.Sprintf("Semantic relevance %.0f%%", semantic*100)}

	if len(matched) > 0 {
		shown := matched
		if len(shown) > 3 {
			shown = shown[:3]
		}
		names := make([]string, len(shown))
		for i, s := range shown {
			names[i] = skills.Display(s)
		}
		parts = append(parts, "matches your skills: "+strings.Join(names, ", "))
	}

	switch locScore {
	case 1.0:
		parts = append(parts, "located in your area")
	case 0.8:
		parts = append(parts, "remote friendly")
	}

	if intentScore == 1.0 {
		parts = append(parts, "internship position")
	}

	return strings.Join(parts, "; ")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
