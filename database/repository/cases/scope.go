package casesRepo

import (
	"fmt"

	"propcare/models"
	"propcare/services/access"

	"go.mongodb.org/mongo-driver/bson"
)

// unassigned matches cases nobody has claimed yet.
var unassigned = bson.M{"assigned_contractor_id": bson.M{"$in": bson.A{nil, ""}}}

// ScopeFilter turns a resolved case scope into a query. Contractor scopes
// return the candidate set (own assignments plus open marketplace cases);
// the marketplace gate still has to run over the results.
func ScopeFilter(scope access.Scope) (bson.M, error) {
	if scope.Resource != access.ResourceCase {
		return nil, fmt.Errorf("%w: %s scope used for cases", access.ErrAccessDenied, scope.Resource)
	}
	switch scope.Kind {
	case access.ScopeAll:
		return bson.M{}, nil
	case access.ScopeOrg:
		if scope.OrgID == "" {
			return nil, access.ErrAccessDenied
		}
		return bson.M{"org_id": scope.OrgID}, nil
	case access.ScopeTenant:
		if scope.UserID == "" {
			return nil, access.ErrAccessDenied
		}
		return bson.M{"tenant_id": scope.UserID}, nil
	case access.ScopeContractor:
		if scope.UserID == "" {
			return nil, access.ErrAccessDenied
		}
		return bson.M{"$or": bson.A{
			bson.M{"assigned_contractor_id": scope.UserID},
			unassigned,
		}}, nil
	}
	return nil, access.ErrAccessDenied
}

// MarketplaceFilter selects open, unassigned cases, narrowed to the given
// specialties. Untagged cases are always candidates.
func MarketplaceFilter(specialtyIDs []string) bson.M {
	specialty := bson.A{nil, ""}
	for _, s := range specialtyIDs {
		specialty = append(specialty, s)
	}
	return bson.M{
		"$and": bson.A{
			unassigned,
			bson.M{"status": bson.M{"$in": bson.A{models.CaseOpen, models.CaseScheduling}}},
			bson.M{"specialty_id": bson.M{"$in": specialty}},
		},
	}
}
