package services

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService           AuthService
	ProfileService        ProfileService
	JobService            JobService
	SearchService         SearchService
	RecommendationService RecommendationService
	InterviewService      InterviewService
}
