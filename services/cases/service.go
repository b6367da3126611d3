// Package cases is the read and intake layer for maintenance cases and the
// properties they belong to. Every read goes through the access resolver.
package cases

import (
	"context"
	"errors"
	"fmt"
	"time"

	casesRepo "propcare/database/repository/cases"
	propertyRepo "propcare/database/repository/property"
	"propcare/models"
	"propcare/services/access"
	"propcare/services/interval"
	"propcare/services/triage"
	"propcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUnknownUnit     = errors.New("unit does not belong to property")
	ErrInvalidDuration = errors.New("job duration must not be negative")
)

const defaultListLimit = 200

type Service struct {
	Cases            casesRepo.CaseRepository
	Properties       propertyRepo.PropertyRepository
	Authorizer       *access.Authorizer
	Oracle           triage.Oracle
	UrgencyThreshold float64
	Now              func() time.Time
}

func NewService(cases casesRepo.CaseRepository, props propertyRepo.PropertyRepository, authz *access.Authorizer, oracle triage.Oracle, threshold float64) *Service {
	if oracle == nil {
		oracle = triage.NopOracle{}
	}
	return &Service{
		Cases:            cases,
		Properties:       props,
		Authorizer:       authz,
		Oracle:           oracle,
		UrgencyThreshold: threshold,
		Now:              time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create opens a case. Tenants may open cases only for the unit they live
// in; admins for any property their scope covers.
func (s *Service) Create(ctx context.Context, rc access.RequestContext, in models.CaseIntake) (*models.MaintenanceCase, error) {
	prop, err := s.Properties.GetByID(ctx, in.PropertyID)
	if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
		return nil, access.ErrAccessDenied
	}
	if err != nil {
		return nil, err
	}

	scope, err := access.Resolve(rc, access.ResourceProperty)
	if err != nil {
		return nil, err
	}
	if scope.Kind != access.ScopeAll && scope.Kind != access.ScopeOrg && scope.Kind != access.ScopeTenant {
		return nil, access.ErrAccessDenied
	}
	if !scope.AllowsProperty(*prop) {
		return nil, access.ErrAccessDenied
	}

	unit, ok := findUnit(*prop, in.UnitID)
	if !ok {
		return nil, ErrUnknownUnit
	}

	var tenantID string
	if scope.Kind == access.ScopeTenant {
		if !contains(unit.TenantIDs, scope.UserID) {
			return nil, access.ErrAccessDenied
		}
		tenantID = scope.UserID
	} else if len(unit.TenantIDs) > 0 {
		tenantID = unit.TenantIDs[0]
	}

	for i, iv := range in.TenantAvailability {
		if err := interval.Validate(iv); err != nil {
			return nil, fmt.Errorf("availability %d: %w", i, err)
		}
	}
	if in.JobDurationMinutes < 0 {
		return nil, ErrInvalidDuration
	}

	now := s.now()
	c := &models.MaintenanceCase{
		ID:                  uuid.New().String(),
		OrgID:               prop.OrgID,
		PropertyID:          prop.ID,
		UnitID:              unit.ID,
		TenantID:            tenantID,
		Title:               in.Title,
		Description:         in.Description,
		SpecialtyID:         in.SpecialtyID,
		RestrictToFavorites: in.RestrictToFavorites,
		Status:              models.CaseOpen,
		TenantAvailability:  in.TenantAvailability,
		JobDurationMinutes:  in.JobDurationMinutes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	s.triage(ctx, c)

	if err := s.Cases.Create(ctx, c); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Case opened",
		zap.String("caseId", c.ID),
		zap.String("orgId", c.OrgID),
		zap.Bool("urgent", c.IsUrgent),
		zap.Bool("impersonated", scope.Impersonated))
	return c, nil
}

// triage never blocks intake: a failed score leaves the case non-urgent.
func (s *Service) triage(ctx context.Context, c *models.MaintenanceCase) {
	score, err := s.Oracle.ScoreUrgency(ctx, *c)
	if err != nil {
		utils.GetLogger().Warn("Urgency triage failed", zap.String("caseId", c.ID), zap.Error(err))
		return
	}
	c.UrgencyScore = score
	c.IsUrgent = s.UrgencyThreshold > 0 && score >= s.UrgencyThreshold
}

// Get returns the case when the request may read it. A missing case is
// reported as access denied.
func (s *Service) Get(ctx context.Context, rc access.RequestContext, id string) (*models.MaintenanceCase, error) {
	c, err := s.Cases.GetByID(ctx, id)
	if errors.Is(err, casesRepo.ErrCaseNotFound) {
		return nil, access.ErrAccessDenied
	}
	if err != nil {
		return nil, err
	}
	if err := s.Authorizer.AuthorizeCase(ctx, rc, *c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns every case the request may read. The query is narrowed by
// scope first; the authorizer then applies per-row rules the query cannot
// express.
func (s *Service) List(ctx context.Context, rc access.RequestContext) ([]models.MaintenanceCase, error) {
	scope, err := access.Resolve(rc, access.ResourceCase)
	if err != nil {
		return nil, err
	}
	rows, err := s.Cases.ListScoped(ctx, scope, defaultListLimit)
	if err != nil {
		return nil, err
	}
	return s.Authorizer.FilterCases(ctx, rc, rows)
}

// Marketplace lists unassigned cases a contractor may bid on.
func (s *Service) Marketplace(ctx context.Context, rc access.RequestContext) ([]models.MaintenanceCase, error) {
	scope, err := access.Resolve(rc, access.ResourceCase)
	if err != nil {
		return nil, err
	}
	if scope.Kind != access.ScopeContractor {
		return nil, access.ErrAccessDenied
	}
	specialties, err := s.Authorizer.Eligibility.SpecialtiesOf(ctx, scope.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", access.ErrAccessDenied, err)
	}
	rows, err := s.Cases.ListMarketplace(ctx, specialties, defaultListLimit)
	if err != nil {
		return nil, err
	}
	return s.Authorizer.FilterCases(ctx, rc, rows)
}

// ListProperties returns the properties in scope. Contractors see the
// properties of the cases assigned to them.
func (s *Service) ListProperties(ctx context.Context, rc access.RequestContext) ([]models.Property, error) {
	scope, err := access.Resolve(rc, access.ResourceProperty)
	if err != nil {
		return nil, err
	}
	var assigned []string
	if scope.Kind == access.ScopeContractor {
		if assigned, err = s.Cases.AssignedPropertyIDs(ctx, scope.UserID); err != nil {
			return nil, fmt.Errorf("%w: %v", access.ErrAccessDenied, err)
		}
	}
	return s.Properties.ListScoped(ctx, scope, assigned, defaultListLimit)
}

func (s *Service) GetProperty(ctx context.Context, rc access.RequestContext, id string) (*models.Property, error) {
	scope, err := access.Resolve(rc, access.ResourceProperty)
	if err != nil {
		return nil, err
	}
	p, err := s.Properties.GetByID(ctx, id)
	if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
		return nil, access.ErrAccessDenied
	}
	if err != nil {
		return nil, err
	}

	if scope.Kind == access.ScopeContractor {
		assigned, err := s.Cases.AssignedPropertyIDs(ctx, scope.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", access.ErrAccessDenied, err)
		}
		if contains(assigned, p.ID) {
			return p, nil
		}
		return nil, access.ErrAccessDenied
	}
	if !scope.AllowsProperty(*p) {
		return nil, access.ErrAccessDenied
	}
	return p, nil
}

func findUnit(p models.Property, unitID string) (models.Unit, bool) {
	for _, u := range p.Units {
		if u.ID == unitID {
			return u, true
		}
	}
	return models.Unit{}, false
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
