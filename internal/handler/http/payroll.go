package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/workzen/hrms-backend-go/internal/domain/auth"
	"github.com/workzen/hrms-backend-go/internal/domain/payroll"
	"github.com/workzen/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type PayrollHandler interface {
	CreateSalaryComponent(w http.ResponseWriter, r *http.Request)
	GetCurrentSalaryComponent(w http.ResponseWriter, r *http.Request)
	ListSalaryComponents(w http.ResponseWriter, r *http.Request)

	GeneratePayrun(w http.ResponseWriter, r *http.Request)
	ValidatePayrun(w http.ResponseWriter, r *http.Request)
	ComputePayslip(w http.ResponseWriter, r *http.Request)
	ValidatePayslip(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)

	GetWarnings(w http.ResponseWriter, r *http.Request)
	GetPayrunHistory(w http.ResponseWriter, r *http.Request)
	GetEmployerCostSeries(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

func userIDFromClaims(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}
	return userID, nil
}

// CreateSalaryComponent implements PayrollHandler - appends a new
// effective-dated salary structure for an employee.
func (h *payrollHandlerImpl) CreateSalaryComponent(w http.ResponseWriter, r *http.Request) {
	var createReq payroll.CreateSalaryComponentRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateSalaryComponent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	createReq.EmployeeID = chi.URLParam(r, "employeeID")

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	componentResponse, err := h.payrollService.CreateSalaryComponent(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateSalaryComponent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Salary component created successfully", "employee_id", createReq.EmployeeID)
	response.Created(w, "Salary component created successfully", componentResponse)
}

// GetCurrentSalaryComponent implements PayrollHandler
func (h *payrollHandlerImpl) GetCurrentSalaryComponent(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	componentResponse, err := h.payrollService.GetCurrentSalaryComponent(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, componentResponse)
}

// ListSalaryComponents implements PayrollHandler - full effective-dated history
func (h *payrollHandlerImpl) ListSalaryComponents(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	components, err := h.payrollService.ListSalaryComponents(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, components)
}

// GeneratePayrun implements PayrollHandler
func (h *payrollHandlerImpl) GeneratePayrun(w http.ResponseWriter, r *http.Request) {
	generatedBy, err := userIDFromClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var generateReq payroll.GeneratePayrunRequest

	if err := json.NewDecoder(r.Body).Decode(&generateReq); err != nil {
		slog.Error("GeneratePayrun decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := generateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	payrunResponse, err := h.payrollService.GeneratePayrun(r.Context(), generateReq, generatedBy)
	if err != nil {
		slog.Error("GeneratePayrun service error", "error", err, "month", generateReq.Month, "year", generateReq.Year)
		response.HandleError(w, err)
		return
	}

	slog.Info("Payrun generated successfully", "month", generateReq.Month, "year", generateReq.Year, "count", payrunResponse.Count)
	response.Created(w, "Payrun generated successfully", payrunResponse)
}

// ValidatePayrun implements PayrollHandler - bulk validation of a period
func (h *payrollHandlerImpl) ValidatePayrun(w http.ResponseWriter, r *http.Request) {
	validatedBy, err := userIDFromClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var validateReq payroll.ValidatePayrunRequest

	if err := json.NewDecoder(r.Body).Decode(&validateReq); err != nil {
		slog.Error("ValidatePayrun decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	validateResponse, err := h.payrollService.ValidatePayrun(r.Context(), validateReq, validatedBy)
	if err != nil {
		slog.Error("ValidatePayrun service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payrun validated successfully", validateResponse)
}

// ComputePayslip implements PayrollHandler
func (h *payrollHandlerImpl) ComputePayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	payslipResponse, err := h.payrollService.ComputePayslip(r.Context(), id)
	if err != nil {
		slog.Error("ComputePayslip service error", "error", err, "payslip_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip computed successfully", payslipResponse)
}

// ValidatePayslip implements PayrollHandler - marks a single payslip Done
func (h *payrollHandlerImpl) ValidatePayslip(w http.ResponseWriter, r *http.Request) {
	validatedBy, err := userIDFromClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	payslipResponse, err := h.payrollService.ValidatePayslip(r.Context(), id, validatedBy)
	if err != nil {
		slog.Error("ValidatePayslip service error", "error", err, "payslip_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip validated successfully", payslipResponse)
}

// ListPayslips implements PayrollHandler
func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	month, _ := strconv.Atoi(chi.URLParam(r, "month"))
	year, _ := strconv.Atoi(chi.URLParam(r, "year"))

	listReq := payroll.GeneratePayrunRequest{Month: month, Year: year}
	if err := listReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	payslips, err := h.payrollService.ListPayslips(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslips)
}

// GetWarnings implements PayrollHandler - pre-run data quality checks
func (h *payrollHandlerImpl) GetWarnings(w http.ResponseWriter, r *http.Request) {
	warnings, err := h.payrollService.GetWarnings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, warnings)
}

// GetPayrunHistory implements PayrollHandler
func (h *payrollHandlerImpl) GetPayrunHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.payrollService.GetPayrunHistory(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

// GetEmployerCostSeries implements PayrollHandler - trailing 12 months of
// total employer cost for dashboard charting.
func (h *payrollHandlerImpl) GetEmployerCostSeries(w http.ResponseWriter, r *http.Request) {
	series, err := h.payrollService.GetEmployerCostSeries(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, series)
}
