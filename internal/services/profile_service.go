package services

import (
	"context"
	"strings"
	"time"

	"jobmatch_backend/internal/embedding"
	"jobmatch_backend/internal/logger"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/repositories"
	"jobmatch_backend/internal/services/dto"
	"jobmatch_backend/internal/skills"
	"jobmatch_backend/pkg/apperrors"
)

type ProfileService interface {
	GetStudentProfile(ctx context.Context, userID string) (*dto.StudentProfileResponse, error)
	UpdateStudentProfile(ctx context.Context, userID string, req *dto.UpdateStudentProfileRequest) (*dto.StudentProfileResponse, error)
	ExtractSkillsFromResume(ctx context.Context, userID string) ([]string, error)

	GetEmployerProfile(ctx context.Context, userID string) (*dto.EmployerProfileResponse, error)
	UpdateEmployerProfile(ctx context.Context, userID string, req *dto.UpdateEmployerProfileRequest) (*dto.EmployerProfileResponse, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
	cache       *embedding.CacheManager
	catalog     *skills.Catalog
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	cache *embedding.CacheManager,
	catalog *skills.Catalog,
) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		cache:       cache,
		catalog:     catalog,
	}
}

func (s *profileService) GetStudentProfile(ctx context.Context, userID string) (*dto.StudentProfileResponse, error) {
	profile, err := s.profileRepo.FindStudentProfileByUserID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.ErrDatabase(err, "profile")
	}
	return toStudentProfileResponse(profile), nil
}

// UpdateStudentProfile applies the changes and, when skills or resume text
// changed, invalidates the embedding cache and refreshes it in the
// background so the next ranking request does not pay the generation cost.
func (s *profileService) UpdateStudentProfile(ctx context.Context, userID string, req *dto.UpdateStudentProfileRequest) (*dto.StudentProfileResponse, error) {
	profile, err := s.profileRepo.FindStudentProfileByUserID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.ErrDatabase(err, "profile")
	}

	embeddingInputChanged := false
	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Skills != nil {
		profile.SetSkills(normalizeSkillList(s.catalog, req.Skills))
		embeddingInputChanged = true
	}
	if req.ResumeText != nil && *req.ResumeText != profile.ResumeText {
		profile.ResumeText = *req.ResumeText
		embeddingInputChanged = true
	}

	if err := s.profileRepo.UpdateStudentProfile(ctx, profile); err != nil {
		return nil, apperrors.ErrDatabase(err, "profile")
	}

	if embeddingInputChanged {
		if err := s.cache.Invalidate(ctx, profile.ID); err != nil {
			logger.CtxWarn(ctx, "embedding cache invalidation failed", "profile_id", profile.ID, "error", err)
		}
		s.refreshEmbeddingAsync(profile)
	}

	return toStudentProfileResponse(profile), nil
}

// ExtractSkillsFromResume scans the stored resume text for known skills and
// returns the canonical keys, without modifying the profile.
func (s *profileService) ExtractSkillsFromResume(ctx context.Context, userID string) ([]string, error) {
	profile, err := s.profileRepo.FindStudentProfileByUserID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.ErrDatabase(err, "profile")
	}
	return s.catalog.ExtractFromText(profile.ResumeText), nil
}

func (s *profileService) GetEmployerProfile(ctx context.Context, userID string) (*dto.EmployerProfileResponse, error) {
	profile, err := s.profileRepo.FindEmployerProfileByUserID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.ErrDatabase(err, "profile")
	}
	return toEmployerProfileResponse(profile), nil
}

func (s *profileService) UpdateEmployerProfile(ctx context.Context, userID string, req *dto.UpdateEmployerProfileRequest) (*dto.EmployerProfileResponse, error) {
	profile, err := s.profileRepo.FindEmployerProfileByUserID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.ErrDatabase(err, "profile")
	}

	if req.CompanyName != nil {
		profile.CompanyName = *req.CompanyName
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}

	if err := s.profileRepo.UpdateEmployerProfile(ctx, profile); err != nil {
		return nil, apperrors.ErrDatabase(err, "profile")
	}
	return toEmployerProfileResponse(profile), nil
}

// refreshEmbeddingAsync regenerates the profile embedding off the request
// path. The request context is gone by the time this runs, so it uses its
// own bounded context.
func (s *profileService) refreshEmbeddingAsync(profile *models.StudentProfile) {
	skillsStr := strings.Join(profile.GetSkills(), ", ")
	resumeText := profile.ResumeText
	profileID := profile.ID

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		text := embedding.BuildProfileText(skillsStr, resumeText)
		s.cache.GetOrRefresh(ctx, profileID, text, true)
	}()
}

// normalizeSkillList maps free-form skill input to deduplicated canonical
// keys so synonyms collapse to one stored skill.
func normalizeSkillList(catalog *skills.Catalog, raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, s := range raw {
		key := catalog.CanonicalKey(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

func toStudentProfileResponse(p *models.StudentProfile) *dto.StudentProfileResponse {
	return &dto.StudentProfileResponse{
		ID:                 p.ID,
		UserID:             p.UserID,
		Name:               p.Name,
		Location:           p.Location,
		Skills:             p.GetSkills(),
		ResumeText:         p.ResumeText,
		EmbeddingUpdatedAt: p.EmbeddingUpdatedAt,
	}
}

func toEmployerProfileResponse(p *models.EmployerProfile) *dto.EmployerProfileResponse {
	return &dto.EmployerProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		CompanyName: p.CompanyName,
		Website:     p.Website,
		City:        p.City,
		Description: p.Description,
		IsVerified:  p.IsVerified,
	}
}
