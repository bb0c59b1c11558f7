package leave

import (
	"time"

	"github.com/workzen/hrms-backend-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name        string `json:"name"`
	IsPaid      bool   `json:"is_paid"`
	DefaultDays int    `json:"default_days"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.DefaultDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_days",
			Message: "default_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsPaid      bool   `json:"is_paid"`
	DefaultDays int    `json:"default_days"`
}

func ToLeaveTypeResponse(t *LeaveType) *LeaveTypeResponse {
	return &LeaveTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		IsPaid:      t.IsPaid,
		DefaultDays: t.DefaultDays,
	}
}

type ApplyLeaveRequest struct {
	EmployeeID  string `json:"-"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewLeaveRequest struct {
	ID         string `json:"-"`
	ReviewerID string `json:"-"`
	Status     string `json:"status"`
}

func (r *ReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != StatusApproved && r.Status != StatusRejected {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be Approved or Rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	LoginID       *string `json:"login_id,omitempty"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	IsPaid        *bool   `json:"is_paid,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Days          int     `json:"days"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	ReviewerName  *string `json:"reviewer_name,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func ToLeaveRequestResponse(lr *LeaveRequest) *LeaveRequestResponse {
	resp := &LeaveRequestResponse{
		ID:            lr.ID,
		EmployeeID:    lr.EmployeeID,
		EmployeeName:  lr.EmployeeName,
		LoginID:       lr.LoginID,
		LeaveTypeID:   lr.LeaveTypeID,
		LeaveTypeName: lr.LeaveTypeName,
		IsPaid:        lr.IsPaid,
		StartDate:     lr.StartDate.Format("2006-01-02"),
		EndDate:       lr.EndDate.Format("2006-01-02"),
		Days:          lr.Days,
		Reason:        lr.Reason,
		Status:        lr.Status,
		ReviewerName:  lr.ReviewerName,
		CreatedAt:     lr.CreatedAt.Format(time.RFC3339),
	}
	if lr.ReviewedAt != nil {
		at := lr.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &at
	}
	return resp
}

func ToLeaveRequestResponses(requests []*LeaveRequest) []*LeaveRequestResponse {
	responses := make([]*LeaveRequestResponse, 0, len(requests))
	for _, lr := range requests {
		responses = append(responses, ToLeaveRequestResponse(lr))
	}
	return responses
}

type SetAllocationRequest struct {
	EmployeeID  string `json:"-"`
	LeaveTypeID string `json:"leave_type_id"`
	Year        int    `json:"year"`
	TotalDays   int    `json:"total_days"`
}

func (r *SetAllocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	if r.TotalDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_days",
			Message: "total_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveBalanceResponse struct {
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	IsPaid        bool   `json:"is_paid"`
	Year          int    `json:"year"`
	TotalDays     int    `json:"total_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
}

func ToLeaveBalanceResponse(a *LeaveAllocation) *LeaveBalanceResponse {
	resp := &LeaveBalanceResponse{
		LeaveTypeID:   a.LeaveTypeID,
		Year:          a.Year,
		TotalDays:     a.TotalDays,
		UsedDays:      a.UsedDays,
		RemainingDays: a.RemainingDays(),
	}
	if a.LeaveTypeName != nil {
		resp.LeaveTypeName = *a.LeaveTypeName
	}
	if a.IsPaid != nil {
		resp.IsPaid = *a.IsPaid
	}
	return resp
}
