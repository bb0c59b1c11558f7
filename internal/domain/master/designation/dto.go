package designation

import (
	"github.com/workzen/hrms-backend-go/internal/pkg/validator"
)

// DesignationResponse represents the response structure for a designation.
type DesignationResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

// CreateDesignationRequest represents the request structure for creating a designation.
type CreateDesignationRequest struct {
	Title string `json:"title"`
	Level int    `json:"level"`
}

func (r *CreateDesignationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(r.Title) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 100 characters",
		})
	}
	if r.Level < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "level",
			Message: "level must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateDesignationRequest represents the request structure for updating a designation.
type UpdateDesignationRequest struct {
	ID    string  `json:"-"`
	Title *string `json:"title,omitempty"`
	Level *int    `json:"level,omitempty"`
}

func (r *UpdateDesignationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Title != nil {
		if validator.IsEmpty(*r.Title) {
			errs = append(errs, validator.ValidationError{
				Field:   "title",
				Message: "title must not be empty",
			})
		}
		if len(*r.Title) > 100 {
			errs = append(errs, validator.ValidationError{
				Field:   "title",
				Message: "title must not exceed 100 characters",
			})
		}
	}
	if r.Level != nil && *r.Level < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "level",
			Message: "level must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
