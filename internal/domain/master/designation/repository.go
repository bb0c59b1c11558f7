package designation

import "context"

type Designation struct {
	ID    string
	Title string
	Level int
}

func (d *Designation) ToResponse() *DesignationResponse {
	return &DesignationResponse{
		ID:    d.ID,
		Title: d.Title,
		Level: d.Level,
	}
}

type DesignationRepository interface {
	Create(ctx context.Context, desig *Designation) error
	GetByID(ctx context.Context, id string) (*Designation, error)
	GetByTitle(ctx context.Context, title string) (*Designation, error)
	List(ctx context.Context) ([]*Designation, error)
	Update(ctx context.Context, desig *Designation) error
	Delete(ctx context.Context, id string) error
	CountEmployees(ctx context.Context, id string) (int64, error)
}
