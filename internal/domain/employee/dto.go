package employee

import (
	"time"

	"github.com/workzen/hrms-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	UserID             string  `json:"user_id"`
	DepartmentID       string  `json:"department_id"`
	DesignationID      string  `json:"designation_id"`
	DateOfJoining      string  `json:"date_of_joining"` // YYYY-MM-DD
	ReportingManagerID *string `json:"reporting_manager_id,omitempty"`
	BankName           *string `json:"bank_name,omitempty"`
	BankAccountNumber  *string `json:"bank_account_number,omitempty"`
	PAN                *string `json:"pan,omitempty"`
	UAN                *string `json:"uan,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	}
	if validator.IsEmpty(r.DepartmentID) {
		errs = append(errs, validator.ValidationError{Field: "department_id", Message: "department_id is required"})
	}
	if validator.IsEmpty(r.DesignationID) {
		errs = append(errs, validator.ValidationError{Field: "designation_id", Message: "designation_id is required"})
	}
	if validator.IsEmpty(r.DateOfJoining) {
		errs = append(errs, validator.ValidationError{Field: "date_of_joining", Message: "date_of_joining is required"})
	} else if _, ok := validator.IsValidDate(r.DateOfJoining); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_of_joining", Message: "date_of_joining must be in YYYY-MM-DD format"})
	}
	if r.PAN != nil && !validator.IsValidPAN(*r.PAN) {
		errs = append(errs, validator.ValidationError{Field: "pan", Message: "invalid PAN format"})
	}
	if r.UAN != nil && !validator.IsValidUAN(*r.UAN) {
		errs = append(errs, validator.ValidationError{Field: "uan", Message: "UAN must be 12 digits"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateEmployeeRequest) ToEntity() Employee {
	date, _ := validator.IsValidDate(r.DateOfJoining)
	return Employee{
		UserID:             r.UserID,
		DepartmentID:       r.DepartmentID,
		DesignationID:      r.DesignationID,
		DateOfJoining:      date,
		Status:             StatusActive,
		ReportingManagerID: r.ReportingManagerID,
		BankName:           r.BankName,
		BankAccountNumber:  r.BankAccountNumber,
		PAN:                r.PAN,
		UAN:                r.UAN,
	}
}

type UpdateEmployeeRequest struct {
	ID                 string  `json:"-"`
	DepartmentID       *string `json:"department_id,omitempty"`
	DesignationID      *string `json:"designation_id,omitempty"`
	Status             *string `json:"status,omitempty"`
	ReportingManagerID *string `json:"reporting_manager_id,omitempty"`
	BankName           *string `json:"bank_name,omitempty"`
	BankAccountNumber  *string `json:"bank_account_number,omitempty"`
	PAN                *string `json:"pan,omitempty"`
	UAN                *string `json:"uan,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !IsValidStatus(*r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be Active, Inactive or Resigned"})
	}
	if r.PAN != nil && !validator.IsValidPAN(*r.PAN) {
		errs = append(errs, validator.ValidationError{Field: "pan", Message: "invalid PAN format"})
	}
	if r.UAN != nil && !validator.IsValidUAN(*r.UAN) {
		errs = append(errs, validator.ValidationError{Field: "uan", Message: "UAN must be 12 digits"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	FullName           *string   `json:"full_name,omitempty"`
	Email              *string   `json:"email,omitempty"`
	LoginID            *string   `json:"login_id,omitempty"`
	DepartmentID       string    `json:"department_id"`
	DepartmentName     *string   `json:"department_name,omitempty"`
	DesignationID      string    `json:"designation_id"`
	DesignationName    *string   `json:"designation_name,omitempty"`
	DateOfJoining      time.Time `json:"date_of_joining"`
	Status             string    `json:"status"`
	ReportingManagerID *string   `json:"reporting_manager_id,omitempty"`
	ManagerName        *string   `json:"manager_name,omitempty"`
	BankName           *string   `json:"bank_name,omitempty"`
	BankAccountNumber  *string   `json:"bank_account_number,omitempty"`
	PAN                *string   `json:"pan,omitempty"`
	UAN                *string   `json:"uan,omitempty"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                 e.ID,
		UserID:             e.UserID,
		FullName:           e.FullName,
		Email:              e.Email,
		LoginID:            e.LoginID,
		DepartmentID:       e.DepartmentID,
		DepartmentName:     e.DepartmentName,
		DesignationID:      e.DesignationID,
		DesignationName:    e.DesignationName,
		DateOfJoining:      e.DateOfJoining,
		Status:             string(e.Status),
		ReportingManagerID: e.ReportingManagerID,
		ManagerName:        e.ManagerName,
		BankName:           e.BankName,
		BankAccountNumber:  e.BankAccountNumber,
		PAN:                e.PAN,
		UAN:                e.UAN,
	}
}

func ToResponses(employees []Employee) []EmployeeResponse {
	result := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		result = append(result, ToResponse(e))
	}
	return result
}
