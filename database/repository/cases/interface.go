package casesRepo

import (
	"context"
	"errors"

	"propcare/models"
	"propcare/services/access"
)

var ErrCaseNotFound = errors.New("case not found")

// CaseRepository reads and writes maintenance cases. Every list query takes
// the caller's resolved scope; there is no unscoped list.
type CaseRepository interface {
	GetByID(ctx context.Context, id string) (*models.MaintenanceCase, error)
	ListScoped(ctx context.Context, scope access.Scope, limit int64) ([]models.MaintenanceCase, error)
	ListMarketplace(ctx context.Context, specialtyIDs []string, limit int64) ([]models.MaintenanceCase, error)
	AssignedPropertyIDs(ctx context.Context, contractorID string) ([]string, error)
	Create(ctx context.Context, c *models.MaintenanceCase) error
}
