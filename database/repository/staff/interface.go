package staffRepo

import (
	"context"

	"glowbook/models"
)

// StaffRepository defines data access for the provider directory.
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*models.Staff, error)
	GetAll(ctx context.Context) ([]models.Staff, error)
	// GetByServiceID retrieves all staff offering a given service category.
	GetByServiceID(ctx context.Context, serviceID string) ([]models.Staff, error)
}
