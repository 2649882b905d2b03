package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for the common business-logic
errors of the job matching domain.
*/

// =========================================================================
// Factory functions (wrap repository errors)
// =========================================================================

// ErrNotFound converts a repository error (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409 AppError.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic conflict factory (409).
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrDatabase wraps an unexpected database failure (500).
func ErrDatabase(err error, domain string) *AppError {
	return Wrap(err, CodeDatabaseError, domain, "Database operation failed", http.StatusInternalServerError)
}

// ErrExternalService wraps a failure of an upstream dependency (503).
func ErrExternalService(err error, domain, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, message, http.StatusServiceUnavailable)
}

// =========================================================================
// Factory functions (new errors)
// =========================================================================

// ErrInvalidOperation builds a 400 error for operations the current
// state does not allow.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 400 error for invalid status transitions.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Predefined variables (frequent, static errors)
// =========================================================================

// --- Auth & user status ---

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Jobs ---

var ErrJobNotFound = New(
	CodeNotFound,
	"job",
	"Job not found",
	http.StatusNotFound,
)

var ErrJobInactive = New(
	CodeInvalidStatus,
	"job",
	"Job posting is no longer active",
	http.StatusConflict,
)

var ErrNotJobOwner = New(
	CodeForbidden,
	"job",
	"You do not have permission to modify this job",
	http.StatusForbidden,
)

// --- Profiles ---

var ErrProfileNotFound = New(
	CodeNotFound,
	"profile",
	"Student profile not found",
	http.StatusNotFound,
)

var ErrProfileIncomplete = New(
	CodeInvalidOperation,
	"profile",
	"Profile has no skills or resume text to match against",
	http.StatusBadRequest,
)
