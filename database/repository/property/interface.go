package propertyRepo

import (
	"context"
	"errors"

	"propcare/models"
	"propcare/services/access"
)

var ErrPropertyNotFound = errors.New("property not found")

type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (*models.Property, error)
	// ListScoped lists properties inside scope. Contractor scopes need the
	// property IDs of the contractor's assigned cases.
	ListScoped(ctx context.Context, scope access.Scope, assignedPropertyIDs []string, limit int64) ([]models.Property, error)
}
