package access

import (
	"context"
	"fmt"

	"propcare/models"
	"propcare/services/marketplace"
)

// Authorizer combines the resolver with the marketplace gate so callers get a
// single yes/no per record.
type Authorizer struct {
	Eligibility marketplace.EligibilitySource
}

func NewAuthorizer(src marketplace.EligibilitySource) *Authorizer {
	return &Authorizer{Eligibility: src}
}

// AuthorizeCase returns nil when the request may read c, ErrAccessDenied or
// ErrImpersonationStateInconsistent otherwise. Lookup failures deny.
func (a *Authorizer) AuthorizeCase(ctx context.Context, rc RequestContext, c models.MaintenanceCase) error {
	scope, err := Resolve(rc, ResourceCase)
	if err != nil {
		return err
	}
	if scope.Kind != ScopeContractor {
		if scope.AllowsCase(c) {
			return nil
		}
		return ErrAccessDenied
	}

	el, err := a.eligibilityFor(ctx, scope.UserID, c)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}
	if marketplace.CanContractorSeeCase(scope.UserID, c.VisibilityContext(), el) {
		return nil
	}
	return ErrAccessDenied
}

// FilterCases keeps the cases the request may read, in order. Contractor
// requests go through the marketplace listing filter, which also applies the
// specialty pre-filter to unassigned cases.
func (a *Authorizer) FilterCases(ctx context.Context, rc RequestContext, cases []models.MaintenanceCase) ([]models.MaintenanceCase, error) {
	scope, err := Resolve(rc, ResourceCase)
	if err != nil {
		return nil, err
	}
	if scope.Kind != ScopeContractor {
		out := make([]models.MaintenanceCase, 0, len(cases))
		for _, c := range cases {
			if scope.AllowsCase(c) {
				out = append(out, c)
			}
		}
		return out, nil
	}

	orgs := make([]string, 0, len(cases))
	for _, c := range cases {
		orgs = append(orgs, c.OrgID)
	}
	el, err := a.load(ctx, scope.UserID, orgs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}
	return marketplace.FilterListing(scope.UserID, cases, el), nil
}

func (a *Authorizer) eligibilityFor(ctx context.Context, contractorID string, c models.MaintenanceCase) (marketplace.ContractorEligibility, error) {
	if c.AssignedContractorID != "" {
		// Assignment alone decides; no lookups needed.
		return nil, nil
	}
	return a.load(ctx, contractorID, []string{c.OrgID})
}

func (a *Authorizer) load(ctx context.Context, contractorID string, orgs []string) (marketplace.ContractorEligibility, error) {
	if a.Eligibility == nil {
		return nil, fmt.Errorf("no eligibility source configured")
	}
	return marketplace.LoadEligibility(ctx, a.Eligibility, contractorID, orgs)
}
