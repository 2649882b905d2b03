package dto

import "time"

type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"required,max=10000"`
	Location    string   `json:"location" validate:"omitempty,max=100"`
	JobType     string   `json:"job_type" validate:"required,is-job-type"`
	SalaryRange string   `json:"salary_range" validate:"omitempty,max=100"`
	Skills      []string `json:"skills" validate:"omitempty,max=50"`
}

type UpdateJobRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=10000"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,max=100"`
	JobType     *string  `json:"job_type,omitempty" validate:"omitempty,is-job-type"`
	SalaryRange *string  `json:"salary_range,omitempty" validate:"omitempty,max=100"`
	Skills      []string `json:"skills,omitempty" validate:"omitempty,max=50"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type JobResponse struct {
	ID          string    `json:"id"`
	EmployerID  string    `json:"employer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	JobType     string    `json:"job_type"`
	SalaryRange string    `json:"salary_range"`
	Skills      []string  `json:"skills"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type PaginatedJobsResponse struct {
	Jobs     []JobResponse `json:"jobs"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}
