// Package marketplace decides which maintenance cases a contractor may see.
package marketplace

import (
	"propcare/models"
)

// ContractorEligibility answers the per-organization questions the gate asks
// about one contractor.
type ContractorEligibility interface {
	SpecialtyIDs() []string
	IsFavoriteOf(orgID string) bool
	HasActiveOrgLink(orgID string) bool
}

// CanContractorSeeCase applies the marketplace exposure rules to one case.
//
// Assigned work is always visible to its assignee and never to anyone else.
// An unassigned case requires an active link between the contractor and the
// case's organization. Past that, urgency bypasses the favorites-only
// restriction. Urgency does not bypass the org link requirement.
//
// Specialty matching is not evaluated here; see MatchesSpecialty.
func CanContractorSeeCase(contractorID string, c models.CaseVisibilityContext, el ContractorEligibility) bool {
	if contractorID == "" {
		return false
	}
	if c.AssignedContractorID != "" {
		return c.AssignedContractorID == contractorID
	}
	if el == nil || c.OrgID == "" {
		return false
	}
	if !el.HasActiveOrgLink(c.OrgID) {
		return false
	}
	if c.IsUrgent {
		return true
	}
	if c.RestrictToFavorites {
		return el.IsFavoriteOf(c.OrgID)
	}
	return true
}

// MatchesSpecialty is the listing pre-filter. Cases without a specialty tag
// match every contractor.
func MatchesSpecialty(specialtyID string, el ContractorEligibility) bool {
	if specialtyID == "" {
		return true
	}
	if el == nil {
		return false
	}
	for _, s := range el.SpecialtyIDs() {
		if s == specialtyID {
			return true
		}
	}
	return false
}

// FilterListing narrows candidate cases to the contractor's marketplace view:
// specialty pre-filter first, then the visibility decision. Order is kept.
func FilterListing(contractorID string, cases []models.MaintenanceCase, el ContractorEligibility) []models.MaintenanceCase {
	out := make([]models.MaintenanceCase, 0, len(cases))
	for _, c := range cases {
		if c.AssignedContractorID == "" && !MatchesSpecialty(c.SpecialtyID, el) {
			continue
		}
		if CanContractorSeeCase(contractorID, c.VisibilityContext(), el) {
			out = append(out, c)
		}
	}
	return out
}
