package eligibilityRepo

import (
	"context"

	"propcare/services/marketplace"
)

// EligibilityRepository is the mongo-backed system of record for
// favorites, org links and contractor specialties.
type EligibilityRepository interface {
	marketplace.EligibilitySource
	SetFavorite(ctx context.Context, orgID, contractorID string, favorite bool) error
	SetOrgLink(ctx context.Context, orgID, contractorID string, active bool) error
}
