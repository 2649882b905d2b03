package dto

import "time"

// UpdateStudentProfileRequest updates the matchable profile fields. Any
// change to skills or resume text invalidates the embedding cache.
type UpdateStudentProfileRequest struct {
	Name       *string  `json:"name,omitempty"`
	Location   *string  `json:"location,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	ResumeText *string  `json:"resume_text,omitempty"`
}

type StudentProfileResponse struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Name               string     `json:"name"`
	Location           string     `json:"location"`
	Skills             []string   `json:"skills"`
	ResumeText         string     `json:"resume_text"`
	EmbeddingUpdatedAt *time.Time `json:"embedding_updated_at,omitempty"`
}

type UpdateEmployerProfileRequest struct {
	CompanyName *string `json:"company_name,omitempty"`
	Website     *string `json:"website,omitempty"`
	City        *string `json:"city,omitempty"`
	Description *string `json:"description,omitempty"`
}

type EmployerProfileResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	CompanyName string `json:"company_name"`
	Website     string `json:"website"`
	City        string `json:"city"`
	Description string `json:"description"`
	IsVerified  bool   `json:"is_verified"`
}
