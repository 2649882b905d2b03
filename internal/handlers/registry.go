package handlers

import (
	"jobmatch_backend/internal/services"
	"jobmatch_backend/internal/validator"
)

// AppHandlers holds every constructed HTTP handler so route
// registration needs a single argument.
type AppHandlers struct {
	AuthHandler           *AuthHandler
	ProfileHandler        *ProfileHandler
	JobHandler            *JobHandler
	SearchHandler         *SearchHandler
	RecommendationHandler *RecommendationHandler
	InterviewHandler      *InterviewHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator, jwtSecret string) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:           NewAuthHandler(base, container.AuthService),
		ProfileHandler:        NewProfileHandler(base, container.ProfileService, jwtSecret),
		JobHandler:            NewJobHandler(base, container.JobService, jwtSecret),
		SearchHandler:         NewSearchHandler(base, container.SearchService),
		RecommendationHandler: NewRecommendationHandler(base, container.RecommendationService, jwtSecret),
		InterviewHandler:      NewInterviewHandler(base, container.InterviewService, jwtSecret),
	}
}
