package orgRepo

import (
	"context"
	"errors"

	"propcare/models"
)

var ErrOrgNotFound = errors.New("organization not found")

type OrgRepository interface {
	GetByID(ctx context.Context, id string) (*models.Organization, error)
	OrgExists(ctx context.Context, id string) (bool, error)
}
