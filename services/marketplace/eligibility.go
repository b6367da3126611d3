package marketplace

import (
	"context"
	"fmt"
	"sort"
)

// EligibilitySource is the system of record for favorites, org links and
// specialties.
type EligibilitySource interface {
	IsFavorite(ctx context.Context, orgID, contractorID string) (bool, error)
	HasActiveOrgLink(ctx context.Context, orgID, contractorID string) (bool, error)
	SpecialtiesOf(ctx context.Context, contractorID string) ([]string, error)
}

// Snapshot is a ContractorEligibility loaded for a fixed set of organizations.
// Organizations that were not loaded answer false.
type Snapshot struct {
	ContractorID string
	Specialties  []string
	Favorites    map[string]bool
	Links        map[string]bool
}

func (s *Snapshot) SpecialtyIDs() []string { return s.Specialties }

func (s *Snapshot) IsFavoriteOf(orgID string) bool { return s.Favorites[orgID] }

func (s *Snapshot) HasActiveOrgLink(orgID string) bool { return s.Links[orgID] }

// LoadEligibility reads the contractor's facts for every org in orgIDs. Any
// lookup failure aborts the load so callers fail closed.
func LoadEligibility(ctx context.Context, src EligibilitySource, contractorID string, orgIDs []string) (*Snapshot, error) {
	specialties, err := src.SpecialtiesOf(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("load specialties for %s: %w", contractorID, err)
	}

	snap := &Snapshot{
		ContractorID: contractorID,
		Specialties:  specialties,
		Favorites:    make(map[string]bool),
		Links:        make(map[string]bool),
	}
	for _, orgID := range uniqueOrgs(orgIDs) {
		linked, err := src.HasActiveOrgLink(ctx, orgID, contractorID)
		if err != nil {
			return nil, fmt.Errorf("load org link %s/%s: %w", orgID, contractorID, err)
		}
		snap.Links[orgID] = linked

		fav, err := src.IsFavorite(ctx, orgID, contractorID)
		if err != nil {
			return nil, fmt.Errorf("load favorite %s/%s: %w", orgID, contractorID, err)
		}
		snap.Favorites[orgID] = fav
	}
	return snap, nil
}

func uniqueOrgs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
