package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/workzen/hrms-backend-go/internal/domain/master/department"
	"github.com/workzen/hrms-backend-go/internal/domain/master/designation"
	"github.com/workzen/hrms-backend-go/internal/handler/http/response"
	"github.com/workzen/hrms-backend-go/internal/service/master"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	CreateDepartment(w http.ResponseWriter, r *http.Request)
	GetDepartment(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	UpdateDepartment(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)

	CreateDesignation(w http.ResponseWriter, r *http.Request)
	GetDesignation(w http.ResponseWriter, r *http.Request)
	ListDesignations(w http.ResponseWriter, r *http.Request)
	UpdateDesignation(w http.ResponseWriter, r *http.Request)
	DeleteDesignation(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== DEPARTMENT OPERATIONS ====================

// CreateDepartment implements MasterHandler
func (h *masterHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var createReq department.CreateDepartmentRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateDepartment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	departmentResponse, err := h.masterService.CreateDepartment(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateDepartment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created successfully", departmentResponse)
}

// GetDepartment implements MasterHandler
func (h *masterHandlerImpl) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Department ID is required", nil)
		return
	}

	departmentResponse, err := h.masterService.GetDepartment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departmentResponse)
}

// ListDepartments implements MasterHandler
func (h *masterHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.masterService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departments)
}

// UpdateDepartment implements MasterHandler
func (h *masterHandlerImpl) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var updateReq department.UpdateDepartmentRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateDepartment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	departmentResponse, err := h.masterService.UpdateDepartment(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateDepartment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department updated successfully", departmentResponse)
}

// DeleteDepartment implements MasterHandler
func (h *masterHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Department ID is required", nil)
		return
	}

	if err := h.masterService.DeleteDepartment(r.Context(), id); err != nil {
		slog.Error("DeleteDepartment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deleted successfully", nil)
}

// ==================== DESIGNATION OPERATIONS ====================

// CreateDesignation implements MasterHandler
func (h *masterHandlerImpl) CreateDesignation(w http.ResponseWriter, r *http.Request) {
	var createReq designation.CreateDesignationRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateDesignation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	designationResponse, err := h.masterService.CreateDesignation(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateDesignation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Designation created successfully", designationResponse)
}

// GetDesignation implements MasterHandler
func (h *masterHandlerImpl) GetDesignation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Designation ID is required", nil)
		return
	}

	designationResponse, err := h.masterService.GetDesignation(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, designationResponse)
}

// ListDesignations implements MasterHandler
func (h *masterHandlerImpl) ListDesignations(w http.ResponseWriter, r *http.Request) {
	designations, err := h.masterService.ListDesignations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, designations)
}

// UpdateDesignation implements MasterHandler
func (h *masterHandlerImpl) UpdateDesignation(w http.ResponseWriter, r *http.Request) {
	var updateReq designation.UpdateDesignationRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateDesignation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	designationResponse, err := h.masterService.UpdateDesignation(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateDesignation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Designation updated successfully", designationResponse)
}

// DeleteDesignation implements MasterHandler
func (h *masterHandlerImpl) DeleteDesignation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Designation ID is required", nil)
		return
	}

	if err := h.masterService.DeleteDesignation(r.Context(), id); err != nil {
		slog.Error("DeleteDesignation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Designation deleted successfully", nil)
}
