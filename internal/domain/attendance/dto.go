package attendance

import (
	"time"

	"github.com/workzen/hrms-backend-go/internal/pkg/validator"
)

type MarkAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Remarks    *string `json:"remarks,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !IsValidStatus(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be Present, Absent, or Half Day",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckInRequest struct {
	EmployeeID string `json:"-"`
}

type CheckOutRequest struct {
	EmployeeID string `json:"-"`
}

type ListAttendanceRequest struct {
	EmployeeID *string
	Month      int
	Year       int
}

func (r *ListAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2200",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	LoginID      *string `json:"login_id,omitempty"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	Remarks      *string `json:"remarks,omitempty"`
}

func ToAttendanceResponse(a *Attendance) *AttendanceResponse {
	resp := &AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		LoginID:      a.LoginID,
		Date:         a.Date.Format("2006-01-02"),
		Status:       a.Status,
		Remarks:      a.Remarks,
	}
	if a.CheckIn != nil {
		in := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &in
	}
	if a.CheckOut != nil {
		out := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &out
	}
	return resp
}

func ToAttendanceResponses(records []*Attendance) []*AttendanceResponse {
	responses := make([]*AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, ToAttendanceResponse(a))
	}
	return responses
}

type AttendanceSummaryResponse struct {
	EmployeeID  string  `json:"employee_id"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	PresentDays float64 `json:"present_days"`
	AbsentDays  int     `json:"absent_days"`
	HalfDays    int     `json:"half_days"`
	TotalDays   int     `json:"total_days"`
}
