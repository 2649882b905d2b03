package dto

// SearchRequest is a free-text query against the job corpus.
type SearchRequest struct {
	Query string `json:"query" form:"q"`
	Limit int    `json:"limit" form:"limit"`
}

// ScoredJob is one ranked search or recommendation result.
type ScoredJob struct {
	Job           JobResponse `json:"job"`
	Score         float64     `json:"score"`
	MatchedSkills []string    `json:"matched_skills"`
	MissingSkills []string    `json:"missing_skills"`
	Rationale     string      `json:"rationale"`
}

// SearchResponse wraps ranked results plus what the engine understood
// from the query.
type SearchResponse struct {
	Results  []ScoredJob `json:"results"`
	Intent   string      `json:"intent"`
	Skills   []string    `json:"skills"`
	Location string      `json:"location,omitempty"`
}

// ChatRequest is the conversational variant of search.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Limit   int    `json:"limit"`
}

// ChatResponse carries a templated natural-language answer plus the
// underlying ranked results.
type ChatResponse struct {
	Answer  string      `json:"answer"`
	Results []ScoredJob `json:"results"`
}

// RecommendationsResponse is the personalized ranking for one profile.
type RecommendationsResponse struct {
	Results []ScoredJob `json:"results"`
}
