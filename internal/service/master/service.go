package master

import (
	"context"
	"errors"

	"github.com/workzen/hrms-backend-go/internal/domain/master/department"
	"github.com/workzen/hrms-backend-go/internal/domain/master/designation"
)

type MasterService interface {
	// Department operations
	CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (*department.DepartmentResponse, error)
	GetDepartment(ctx context.Context, id string) (*department.DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]*department.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (*department.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error

	// Designation operations
	CreateDesignation(ctx context.Context, req designation.CreateDesignationRequest) (*designation.DesignationResponse, error)
	GetDesignation(ctx context.Context, id string) (*designation.DesignationResponse, error)
	ListDesignations(ctx context.Context) ([]*designation.DesignationResponse, error)
	UpdateDesignation(ctx context.Context, req designation.UpdateDesignationRequest) (*designation.DesignationResponse, error)
	DeleteDesignation(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	departmentRepo  department.DepartmentRepository
	designationRepo designation.DesignationRepository
}

func NewMasterService(
	departmentRepo department.DepartmentRepository,
	designationRepo designation.DesignationRepository,
) MasterService {
	return &masterServiceImpl{
		departmentRepo:  departmentRepo,
		designationRepo: designationRepo,
	}
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (*department.DepartmentResponse, error) {
	existing, err := s.departmentRepo.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, department.ErrDepartmentNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, department.ErrDepartmentNameExists
	}

	dept := &department.Department{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.departmentRepo.Create(ctx, dept); err != nil {
		return nil, err
	}
	return dept.ToResponse(), nil
}

func (s *masterServiceImpl) GetDepartment(ctx context.Context, id string) (*department.DepartmentResponse, error) {
	dept, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dept.ToResponse(), nil
}

func (s *masterServiceImpl) ListDepartments(ctx context.Context) ([]*department.DepartmentResponse, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*department.DepartmentResponse, 0, len(departments))
	for _, dept := range departments {
		responses = append(responses, dept.ToResponse())
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (*department.DepartmentResponse, error) {
	dept, err := s.departmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != dept.Name {
		existing, err := s.departmentRepo.GetByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, department.ErrDepartmentNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, department.ErrDepartmentNameExists
		}
		dept.Name = *req.Name
	}
	if req.Description != nil {
		dept.Description = req.Description
	}

	if err := s.departmentRepo.Update(ctx, dept); err != nil {
		return nil, err
	}
	return dept.ToResponse(), nil
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	count, err := s.departmentRepo.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return department.ErrDepartmentInUse
	}
	return s.departmentRepo.Delete(ctx, id)
}

// ==================== DESIGNATION OPERATIONS ====================

func (s *masterServiceImpl) CreateDesignation(ctx context.Context, req designation.CreateDesignationRequest) (*designation.DesignationResponse, error) {
	existing, err := s.designationRepo.GetByTitle(ctx, req.Title)
	if err != nil && !errors.Is(err, designation.ErrDesignationNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, designation.ErrDesignationTitleExists
	}

	desig := &designation.Designation{
		Title: req.Title,
		Level: req.Level,
	}
	if err := s.designationRepo.Create(ctx, desig); err != nil {
		return nil, err
	}
	return desig.ToResponse(), nil
}

func (s *masterServiceImpl) GetDesignation(ctx context.Context, id string) (*designation.DesignationResponse, error) {
	desig, err := s.designationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return desig.ToResponse(), nil
}

func (s *masterServiceImpl) ListDesignations(ctx context.Context) ([]*designation.DesignationResponse, error) {
	designations, err := s.designationRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*designation.DesignationResponse, 0, len(designations))
	for _, desig := range designations {
		responses = append(responses, desig.ToResponse())
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateDesignation(ctx context.Context, req designation.UpdateDesignationRequest) (*designation.DesignationResponse, error) {
	desig, err := s.designationRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != desig.Title {
		existing, err := s.designationRepo.GetByTitle(ctx, *req.Title)
		if err != nil && !errors.Is(err, designation.ErrDesignationNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, designation.ErrDesignationTitleExists
		}
		desig.Title = *req.Title
	}
	if req.Level != nil {
		desig.Level = *req.Level
	}

	if err := s.designationRepo.Update(ctx, desig); err != nil {
		return nil, err
	}
	return desig.ToResponse(), nil
}

func (s *masterServiceImpl) DeleteDesignation(ctx context.Context, id string) error {
	count, err := s.designationRepo.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return designation.ErrDesignationInUse
	}
	return s.designationRepo.Delete(ctx, id)
}
