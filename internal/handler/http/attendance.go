package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/auth"
	"github.com/workzen/hrms-backend-go/internal/domain/user"
	"github.com/workzen/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	MarkAbsentees(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// employeeIDFromClaims resolves the linked employee profile out of the
// access token. Users without a profile (pure admin accounts) get an error.
func employeeIDFromClaims(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", user.ErrEmployeeProfileNotLinked
	}
	return employeeID, nil
}

// monthYearFromQuery parses month/year query params, defaulting to the
// current period when absent.
func monthYearFromQuery(r *http.Request) (int, int) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if m := r.URL.Query().Get("month"); m != "" {
		if parsed, err := strconv.Atoi(m); err == nil {
			month = parsed
		}
	}
	if y := r.URL.Query().Get("year"); y != "" {
		if parsed, err := strconv.Atoi(y); err == nil {
			year = parsed
		}
	}
	return month, year
}

// Mark implements AttendanceHandler
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var markReq attendance.MarkAttendanceRequest

	if err := json.NewDecoder(r.Body).Decode(&markReq); err != nil {
		slog.Error("Mark attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := markReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	attendanceResponse, err := h.attendanceService.Mark(r.Context(), &markReq)
	if err != nil {
		slog.Error("Mark attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked successfully", attendanceResponse)
}

// CheckIn implements AttendanceHandler
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	attendanceResponse, err := h.attendanceService.CheckIn(r.Context(), employeeID)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", attendanceResponse)
}

// CheckOut implements AttendanceHandler
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	attendanceResponse, err := h.attendanceService.CheckOut(r.Context(), employeeID)
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", attendanceResponse)
}

// List implements AttendanceHandler - all employees, optionally filtered
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	month, year := monthYearFromQuery(r)

	listReq := attendance.ListAttendanceRequest{
		Month: month,
		Year:  year,
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		listReq.EmployeeID = &employeeID
	}

	if err := listReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.List(r.Context(), &listReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListMy implements AttendanceHandler - the caller's own records
func (h *attendanceHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	month, year := monthYearFromQuery(r)
	listReq := attendance.ListAttendanceRequest{
		EmployeeID: &employeeID,
		Month:      month,
		Year:       year,
	}

	if err := listReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.List(r.Context(), &listReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetSummary implements AttendanceHandler
func (h *attendanceHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	month, year := monthYearFromQuery(r)

	summary, err := h.attendanceService.GetSummary(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// MarkAbsentees implements AttendanceHandler - manual trigger for the
// nightly absentee sweep.
func (h *attendanceHandlerImpl) MarkAbsentees(w http.ResponseWriter, r *http.Request) {
	marked, err := h.attendanceService.MarkAbsentees(r.Context())
	if err != nil {
		slog.Error("MarkAbsentees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Absentees marked", "count", marked)
	response.SuccessWithMessage(w, "Absentees marked successfully", map[string]int64{"marked": marked})
}
