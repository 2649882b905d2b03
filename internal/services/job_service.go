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
	"jobmatch_backend/internal/vectorindex"
	"jobmatch_backend/pkg/apperrors"
)

type JobService interface {
	Create(ctx context.Context, employerUserID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetByID(ctx context.Context, id string) (*dto.JobResponse, error)
	Update(ctx context.Context, employerUserID, id string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	Delete(ctx context.Context, employerUserID, id string) error
	ListByEmployer(ctx context.Context, employerUserID string, page, pageSize int) (*dto.PaginatedJobsResponse, error)
}

type jobService struct {
	jobRepo      repositories.JobRepository
	profileRepo  repositories.ProfileRepository
	embedder     embedding.Embedder
	index        vectorindex.Index
	embedTimeout time.Duration
}

func NewJobService(
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	embedder embedding.Embedder,
	index vectorindex.Index,
	embedTimeout time.Duration,
) JobService {
	if embedTimeout <= 0 {
		embedTimeout = 10 * time.Second
	}
	return &jobService{
		jobRepo:      jobRepo,
		profileRepo:  profileRepo,
		embedder:     embedder,
		index:        index,
		embedTimeout: embedTimeout,
	}
}

func (s *jobService) Create(ctx context.Context, employerUserID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	employer, err := s.profileRepo.FindEmployerProfileByUserID(ctx, employerUserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.ErrDatabase(err, "profile")
	}

	job := &models.Job{
		EmployerID:  employer.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		JobType:     models.JobType(req.JobType),
		SalaryRange: req.SalaryRange,
		IsActive:    true,
	}
	job.SetSkills(req.Skills)

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, apperrors.ErrDatabase(err, "job")
	}

	s.syncVector(ctx, job)

	return toJobResponse(job), nil
}

func (s *jobService) GetByID(ctx context.Context, id string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.ErrDatabase(err, "job")
	}
	return toJobResponse(job), nil
}

func (s *jobService) Update(ctx context.Context, employerUserID, id string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.loadOwnedJob(ctx, employerUserID, id)
	if err != nil {
		return nil, err
	}

	wasActive := job.IsActive
	textChanged := false
	if req.Title != nil && *req.Title != job.Title {
		job.Title = *req.Title
		textChanged = true
	}
	if req.Description != nil && *req.Description != job.Description {
		job.Description = *req.Description
		textChanged = true
	}
	if req.Location != nil && *req.Location != job.Location {
		job.Location = *req.Location
		textChanged = true
	}
	if req.JobType != nil && *req.JobType != string(job.JobType) {
		job.JobType = models.JobType(*req.JobType)
		textChanged = true
	}
	if req.SalaryRange != nil {
		job.SalaryRange = *req.SalaryRange
	}
	if req.Skills != nil {
		job.SetSkills(req.Skills)
		textChanged = true
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, apperrors.ErrDatabase(err, "job")
	}

	if !job.IsActive {
		if wasActive {
			if err := s.index.Delete(ctx, job.ID); err != nil {
				logger.CtxWarn(ctx, "vector removal failed for deactivated job", "job_id", job.ID, "error", err)
			}
		}
	} else if textChanged || !wasActive {
		// Reactivation re-embeds even without text edits; deactivation
		// cleared the vector, so the job would otherwise stay invisible
		// to vector retrieval.
		s.syncVector(ctx, job)
	}

	return toJobResponse(job), nil
}

func (s *jobService) Delete(ctx context.Context, employerUserID, id string) error {
	if _, err := s.loadOwnedJob(ctx, employerUserID, id); err != nil {
		return err
	}

	if err := s.index.Delete(ctx, id); err != nil {
		logger.CtxWarn(ctx, "vector removal failed for deleted job", "job_id", id, "error", err)
	}
	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return apperrors.ErrDatabase(err, "job")
	}
	return nil
}

func (s *jobService) ListByEmployer(ctx context.Context, employerUserID string, page, pageSize int) (*dto.PaginatedJobsResponse, error) {
	employer, err := s.profileRepo.FindEmployerProfileByUserID(ctx, employerUserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.ErrDatabase(err, "profile")
	}

	jobs, total, err := s.jobRepo.ListByEmployer(ctx, employer.ID, page, pageSize)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "job")
	}

	out := make([]dto.JobResponse, len(jobs))
	for i := range jobs {
		out[i] = *toJobResponse(&jobs[i])
	}
	return &dto.PaginatedJobsResponse{Jobs: out, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *jobService) loadOwnedJob(ctx context.Context, employerUserID, id string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.ErrDatabase(err, "job")
	}

	employer, err := s.profileRepo.FindEmployerProfileByUserID(ctx, employerUserID)
	if err != nil {
		return nil, apperrors.ErrNotJobOwner
	}
	if job.EmployerID != employer.ID {
		return nil, apperrors.ErrNotJobOwner
	}
	return job, nil
}

// syncVector regenerates the job's embedding and writes it to the vector
// index. Best-effort: a failure leaves the job searchable lexically.
func (s *jobService) syncVector(ctx context.Context, job *models.Job) {
	text := embedding.BuildJobText(job.Title, job.Description, string(job.JobType), job.Location, strings.Join(job.GetSkills(), ", "))
	if text == "" {
		return
	}

	embedCtx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	defer cancel()

	vec, err := s.embedder.Embed(embedCtx, text)
	if err != nil {
		logger.CtxWarn(ctx, "job embedding failed, vector index not updated", "job_id", job.ID, "error", err)
		return
	}

	if err := s.index.Upsert(ctx, job.ID, vec); err != nil {
		logger.CtxWarn(ctx, "vector index upsert failed", "job_id", job.ID, "error", err)
	}
}

func toJobResponse(job *models.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:          job.ID,
		EmployerID:  job.EmployerID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		JobType:     string(job.JobType),
		SalaryRange: job.SalaryRange,
		Skills:      job.GetSkills(),
		IsActive:    job.IsActive,
		CreatedAt:   job.CreatedAt,
	}
}
