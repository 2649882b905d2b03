package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobmatch_backend/internal/embedding"
	"jobmatch_backend/internal/logger"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/repositories"
	"jobmatch_backend/internal/search"
	"jobmatch_backend/internal/services/dto"
	"jobmatch_backend/internal/skills"
)

const defaultSearchLimit = 10

type SearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type searchService struct {
	catalog      *skills.Catalog
	embedder     embedding.Embedder
	retriever    *search.Retriever
	ranker       *search.Ranker
	jobRepo      repositories.JobRepository
	embedTimeout time.Duration
	defaultLimit int
}

func NewSearchService(
	catalog *skills.Catalog,
	embedder embedding.Embedder,
	retriever *search.Retriever,
	ranker *search.Ranker,
	jobRepo repositories.JobRepository,
	embedTimeout time.Duration,
	defaultLimit int,
) SearchService {
	if embedTimeout <= 0 {
		embedTimeout = 10 * time.Second
	}
	if defaultLimit <= 0 {
		defaultLimit = defaultSearchLimit
	}
	return &searchService{
		catalog:      catalog,
		embedder:     embedder,
		retriever:    retriever,
		ranker:       ranker,
		jobRepo:      jobRepo,
		embedTimeout: embedTimeout,
		defaultLimit: defaultLimit,
	}
}

// Search runs the full query pipeline: intent extraction, query embedding,
// hybrid retrieval, weighted reranking.
func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		// Empty query is a valid zero-result search, not an error.
		return &dto.SearchResponse{Results: []dto.ScoredJob{}, Intent: string(search.IntentGeneral)}, nil
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	meta := search.ExtractIntent(s.catalog, query)

	queryVector := s.embedQuery(ctx, query)

	terms := append([]string{query}, meta.Skills...)
	candidates := s.retriever.Retrieve(ctx, queryVector, terms, meta.Location, limit)

	jobs, err := s.hydrateJobs(ctx, candidates)
	if err != nil {
		return nil, err
	}

	ranked := s.ranker.Rank(search.RankRequest{
		Candidates:      candidates,
		Jobs:            toJobRecords(jobs),
		CandidateSkills: meta.Skills,
		Location:        meta.Location,
		Intent:          meta.Intent,
		Weights:         search.QueryWeights,
		Limit:           limit,
	})

	return &dto.SearchResponse{
		Results:  toScoredJobs(ranked, jobs),
		Intent:   string(meta.Intent),
		Skills:   meta.Skills,
		Location: meta.Location,
	}, nil
}

// Chat is Search plus a templated natural-language answer. The answer is
// deterministic: no language model sits on this path.
func (s *searchService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	res, err := s.Search(ctx, &dto.SearchRequest{Query: req.Message, Limit: req.Limit})
	if err != nil {
		return nil, err
	}

	top := res.Results
	if len(top) > 5 {
		top = top[:5]
	}

	var answer string
	if len(top) == 0 {
		answer = fmt.Sprintf("I couldn't find any jobs for '%s'. Try broader keywords.", strings.TrimSpace(req.Message))
	} else {
		best := top[0]
		answer = fmt.Sprintf("I found %d jobs. The best match is '%s' (%.1f%% match).", len(top), best.Job.Title, best.Score)
		if len(res.Skills) > 0 {
			answer += fmt.Sprintf(" It matches your interest in %s.", strings.Join(res.Skills, ", "))
		}
	}

	return &dto.ChatResponse{Answer: answer, Results: top}, nil
}

// embedQuery generates the query vector on a best-effort basis. Failures
// degrade retrieval to the lexical side only.
func (s *searchService) embedQuery(ctx context.Context, query string) []float32 {
	embedCtx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	defer cancel()

	vec, err := s.embedder.Embed(embedCtx, query)
	if err != nil {
		logger.CtxWarn(ctx, "query embedding failed, lexical search only", "error", err)
		return nil
	}
	return vec
}

func (s *searchService) hydrateJobs(ctx context.Context, candidates []search.Candidate) (map[string]models.Job, error) {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.JobID
	}

	jobs, err := s.jobRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}
	return byID, nil
}

func toJobRecords(jobs map[string]models.Job) map[string]search.JobRecord {
	records := make(map[string]search.JobRecord, len(jobs))
	for id, j := range jobs {
		records[id] = search.JobRecord{
			ID:          j.ID,
			Title:       j.Title,
			Description: j.Description,
			Location:    j.Location,
			JobType:     string(j.JobType),
			IsActive:    j.IsActive,
		}
	}
	return records
}

func toScoredJobs(ranked []search.ScoredMatch, jobs map[string]models.Job) []dto.ScoredJob {
	out := make([]dto.ScoredJob, 0, len(ranked))
	for _, m := range ranked {
		job, ok := jobs[m.JobID]
		if !ok {
			continue
		}
		out = append(out, dto.ScoredJob{
			Job:           *toJobResponse(&job),
			Score:         m.Score,
			MatchedSkills: m.MatchedSkills,
			MissingSkills: m.MissingSkills,
			Rationale:     m.Rationale,
		})
	}
	return out
}
