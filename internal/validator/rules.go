package validator

import (
	"log"

	"jobmatch_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain-specific validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-job-type", validateJobType)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty values are handled by 'required'
	}
	switch models.UserRole(value) {
	case models.UserRoleStudent, models.UserRoleEmployer, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateJobType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.JobType(value) {
	case models.JobTypeFullTime, models.JobTypePartTime, models.JobTypeInternship,
		models.JobTypeContract, models.JobTypeRemote:
		return true
	default:
		return false
	}
}
