package department

import "context"

type Department struct {
	ID          string
	Name        string
	Description *string
}

func (d *Department) ToResponse() *DepartmentResponse {
	return &DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
	}
}

type DepartmentRepository interface {
	Create(ctx context.Context, dept *Department) error
	GetByID(ctx context.Context, id string) (*Department, error)
	GetByName(ctx context.Context, name string) (*Department, error)
	List(ctx context.Context) ([]*Department, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id string) error
	CountEmployees(ctx context.Context, id string) (int64, error)
}
