package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobmatch_backend/internal/repositories"
	"jobmatch_backend/internal/services/dto"
	"jobmatch_backend/pkg/apperrors"
)

const interviewSystemPrompt = `You are an expert Senior Technical Recruiter and Interview Coach.

Analyze the job title, the job description and the candidate's resume, then
generate interview preparation material focused on SKILL GAPS between the job
requirements and the resume.

STRICT OUTPUT RULES:
- Output ONLY valid JSON
- Do NOT include markdown
- Do NOT include explanations outside JSON
- All fields must be present
- Do NOT add extra keys

JSON SCHEMA (must match exactly):
{
  "technical_questions": [
    {
      "question": "Clear and role-specific technical interview question",
      "expected_answer_key_points": "Bullet-style key points separated by semicolons",
      "difficulty": "Easy | Medium | Hard"
    }
  ],
  "behavioral_questions": [
    {
      "question": "Behavioral interview question",
      "tip": "Short coaching tip on how to answer using STAR method"
    }
  ],
  "resume_feedback": "Exactly 2 concise sentences explaining how to better align the resume with the job."
}

CONTENT REQUIREMENTS:
- Generate EXACTLY 5 technical questions
- Generate EXACTLY 3 behavioral questions
- At least 3 technical questions must address skills missing or weak in the resume
- Difficulty distribution: 1 Easy, 3 Medium, 1 Hard
- Questions must be specific to the provided job title and description`

const resumePromptCap = 3000

// ContentGenerator is the LLM dependency of the interview service.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type InterviewService interface {
	PrepareForJob(ctx context.Context, userID, jobID string) (*dto.InterviewPrep, error)
}

type interviewService struct {
	generator   ContentGenerator
	jobRepo     repositories.JobRepository
	profileRepo repositories.ProfileRepository
}

func NewInterviewService(
	generator ContentGenerator,
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
) InterviewService {
	return &interviewService{
		generator:   generator,
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
	}
}

// PrepareForJob builds gap-focused interview material for the student and
// the given job. This is the only path in the system that calls a language
// model; ranking and chat answers stay deterministic.
func (s *interviewService) PrepareForJob(ctx context.Context, userID, jobID string) (*dto.InterviewPrep, error) {
	if s.generator == nil {
		return nil, apperrors.ErrInvalidOperation("interview", "Interview preparation is not configured")
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.ErrDatabase(err, "job")
	}
	if !job.IsActive {
		return nil, apperrors.ErrJobInactive
	}

	profile, err := s.profileRepo.FindStudentProfileByUserID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.ErrDatabase(err, "profile")
	}

	resume := profile.ResumeText
	if len(resume) > resumePromptCap {
		resume = resume[:resumePromptCap]
	}

	prompt := fmt.Sprintf("%s\n\nJOB TITLE:\n%s\n\nJOB DESCRIPTION:\n%s\n\nCANDIDATE RESUME:\n%s",
		interviewSystemPrompt, job.Title, job.Description, resume)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, apperrors.ErrExternalService(err, "interview", "Interview preparation service failed")
	}

	prep, err := parseInterviewPrep(raw)
	if err != nil {
		return nil, apperrors.ErrExternalService(err, "interview", "Interview preparation service returned an invalid response")
	}
	return prep, nil
}

// parseInterviewPrep tolerates models that wrap JSON in markdown fences.
func parseInterviewPrep(raw string) (*dto.InterviewPrep, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var prep dto.InterviewPrep
	if err := json.Unmarshal([]byte(cleaned), &prep); err != nil {
		return nil, fmt.Errorf("parse interview prep response: %w", err)
	}
	if len(prep.TechnicalQuestions) == 0 && len(prep.BehavioralQuestions) == 0 {
		return nil, fmt.Errorf("interview prep response contained no questions")
	}
	return &prep, nil
}
