package services

import (
	"context"
	"strings"

	"jobmatch_backend/internal/embedding"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/repositories"
	"jobmatch_backend/internal/search"
	"jobmatch_backend/internal/services/dto"
	"jobmatch_backend/internal/skills"
	"jobmatch_backend/pkg/apperrors"
)

type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID string, limit int) (*dto.RecommendationsResponse, error)
}

type recommendationService struct {
	catalog     *skills.Catalog
	cache       *embedding.CacheManager
	retriever   *search.Retriever
	ranker      *search.Ranker
	jobRepo     repositories.JobRepository
	profileRepo repositories.ProfileRepository
}

func NewRecommendationService(
	catalog *skills.Catalog,
	cache *embedding.CacheManager,
	retriever *search.Retriever,
	ranker *search.Ranker,
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
) RecommendationService {
	return &recommendationService{
		catalog:     catalog,
		cache:       cache,
		retriever:   retriever,
		ranker:      ranker,
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
	}
}

// GetRecommendations ranks active jobs against the student's profile using
// the recommendation weight profile. The profile embedding comes from the
// cache manager, so repeated calls within the validity window do not touch
// the embedding generator.
func (s *recommendationService) GetRecommendations(ctx context.Context, userID string, limit int) (*dto.RecommendationsResponse, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	profile, err := s.profileRepo.FindStudentProfileByUserID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.ErrDatabase(err, "profile")
	}

	profileSkills := profile.GetSkills()
	if len(profileSkills) == 0 && strings.TrimSpace(profile.ResumeText) != "" {
		// No declared skills: fall back to the ones mentioned in the resume.
		profileSkills = s.catalog.ExtractFromText(profile.ResumeText)
	}
	if len(profileSkills) == 0 && strings.TrimSpace(profile.ResumeText) == "" {
		return nil, apperrors.ErrProfileIncomplete
	}

	sourceText := embedding.BuildProfileText(strings.Join(profileSkills, ", "), profile.ResumeText)
	vector := s.cache.GetOrRefresh(ctx, profile.ID, sourceText, false)

	candidates := s.retriever.Retrieve(ctx, vector, profileSkills, profile.Location, limit)

	jobs, err := s.hydrateJobs(ctx, candidates)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "job")
	}

	ranked := s.ranker.Rank(search.RankRequest{
		Candidates:      candidates,
		Jobs:            toJobRecords(jobs),
		CandidateSkills: profileSkills,
		Location:        strings.ToLower(profile.Location),
		Weights:         search.RecommendationWeights,
		Limit:           limit,
	})

	return &dto.RecommendationsResponse{Results: toScoredJobs(ranked, jobs)}, nil
}

func (s *recommendationService) hydrateJobs(ctx context.Context, candidates []search.Candidate) (map[string]models.Job, error) {
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
