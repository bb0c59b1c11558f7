package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/workzen/hrms-backend-go/internal/domain/auth"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type LeaveHandler interface {
	CreateLeaveType(w http.ResponseWriter, r *http.Request)
	ListLeaveTypes(w http.ResponseWriter, r *http.Request)
	Apply(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	GetMyBalance(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	SetAllocation(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// CreateLeaveType implements LeaveHandler
func (h *leaveHandlerImpl) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	var createReq leave.CreateLeaveTypeRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateLeaveType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	leaveTypeResponse, err := h.leaveService.CreateLeaveType(r.Context(), &createReq)
	if err != nil {
		slog.Error("CreateLeaveType service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", leaveTypeResponse)
}

// ListLeaveTypes implements LeaveHandler
func (h *leaveHandlerImpl) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	leaveTypes, err := h.leaveService.ListLeaveTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveTypes)
}

// Apply implements LeaveHandler
func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var applyReq leave.ApplyLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&applyReq); err != nil {
		slog.Error("Apply leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	applyReq.EmployeeID = employeeID

	if err := applyReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	leaveResponse, err := h.leaveService.Apply(r.Context(), &applyReq)
	if err != nil {
		slog.Error("Apply leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", leaveResponse)
}

// Review implements LeaveHandler - approve or reject a pending request
func (h *leaveHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	reviewerID, _ := claims["user_id"].(string)

	var reviewReq leave.ReviewLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&reviewReq); err != nil {
		slog.Error("Review leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	reviewReq.ID = chi.URLParam(r, "id")
	reviewReq.ReviewerID = reviewerID

	if err := reviewReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	leaveResponse, err := h.leaveService.Review(r.Context(), &reviewReq)
	if err != nil {
		slog.Error("Review leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request reviewed successfully", leaveResponse)
}

// ListMy implements LeaveHandler
func (h *leaveHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.leaveService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListPending implements LeaveHandler
func (h *leaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListAll implements LeaveHandler
func (h *leaveHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetMyBalance implements LeaveHandler
func (h *leaveHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.writeBalance(w, r, employeeID)
}

// GetBalance implements LeaveHandler
func (h *leaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	h.writeBalance(w, r, employeeID)
}

// SetAllocation implements LeaveHandler - HR sets the yearly entitlement
// for one employee and leave type.
func (h *leaveHandlerImpl) SetAllocation(w http.ResponseWriter, r *http.Request) {
	var setReq leave.SetAllocationRequest

	if err := json.NewDecoder(r.Body).Decode(&setReq); err != nil {
		slog.Error("SetAllocation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	setReq.EmployeeID = chi.URLParam(r, "employeeID")
	if setReq.EmployeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	if err := setReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	balance, err := h.leaveService.SetAllocation(r.Context(), &setReq)
	if err != nil {
		slog.Error("SetAllocation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

func (h *leaveHandlerImpl) writeBalance(w http.ResponseWriter, r *http.Request, employeeID string) {
	year := time.Now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		if parsed, err := strconv.Atoi(y); err == nil {
			year = parsed
		}
	}

	balances, err := h.leaveService.GetBalance(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}
