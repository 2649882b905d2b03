package models

type UserStatus string
type UserRole string
type JobType string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserRoleStudent  UserRole = "student"
	UserRoleEmployer UserRole = "employer"
	UserRoleAdmin    UserRole = "admin"

	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeInternship JobType = "internship"
	JobTypeContract   JobType = "contract"
	JobTypeRemote     JobType = "remote"
)
