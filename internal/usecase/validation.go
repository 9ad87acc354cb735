package usecase

import (
	"fmt"
	"strings"

	"github.com/restroiq/crm-api/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func joinValidationErrors(errs []ValidationError) *DomainError {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return newValidationError(strings.Join(parts, ", "))
}

// trimOrEmpty collapses whitespace-only input to the empty string so that
// "   " fails the same required checks as a missing field.
func trimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errs []ValidationError

	if trimOrEmpty(input.RestaurantName) == "" {
		errs = append(errs, ValidationError{"restaurantName", "is required"})
	}
	if trimOrEmpty(input.Phone) == "" {
		errs = append(errs, ValidationError{"phone", "is required"})
	}
	if trimOrEmpty(input.City) == "" {
		errs = append(errs, ValidationError{"city", "is required"})
	}
	if s := trimOrEmpty(input.CurrentStatus); s != "" && !entity.IsValidStatus(s) {
		errs = append(errs, ValidationError{"currentStatus", "is not a known status"})
	}
	if s := trimOrEmpty(input.LeadStage); s != "" && !entity.IsValidStage(s) {
		errs = append(errs, ValidationError{"leadStage", "must be Cold, Warm, Hot or Closed"})
	}
	if input.NextFollowUpDate != "" {
		if _, err := entity.ParseDate(input.NextFollowUpDate); err != nil {
			errs = append(errs, ValidationError{"nextFollowUpDate", "must be a valid date (YYYY-MM-DD)"})
		}
	}
	return errs
}

func ValidateLogFollowUpInput(input LogFollowUpInput) []ValidationError {
	var errs []ValidationError

	if trimOrEmpty(input.LeadID) == "" {
		errs = append(errs, ValidationError{"leadId", "is required"})
	}
	if trimOrEmpty(input.Status) == "" {
		errs = append(errs, ValidationError{"status", "is required"})
	} else if !entity.IsValidStatus(trimOrEmpty(input.Status)) {
		errs = append(errs, ValidationError{"status", "is not a known status"})
	}
	if s := trimOrEmpty(input.LeadStage); s != "" && !entity.IsValidStage(s) {
		errs = append(errs, ValidationError{"leadStage", "must be Cold, Warm, Hot or Closed"})
	}
	if input.NextFollowUpDate != "" {
		if _, err := entity.ParseDate(input.NextFollowUpDate); err != nil {
			errs = append(errs, ValidationError{"nextFollowUpDate", "must be a valid date (YYYY-MM-DD)"})
		}
	}
	return errs
}
