// Package session owns the admin impersonation lifecycle. Start and Stop are
// the only writers; request handling reads a snapshot once per request.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"propcare/models"
	"propcare/services/access"
	"propcare/utils"

	"go.uber.org/zap"
)

var (
	ErrNotSuperAdmin = errors.New("only platform super admins can impersonate")
	ErrUnknownOrg    = errors.New("organization does not exist")
)

// OrgDirectory answers whether an organization still exists.
type OrgDirectory interface {
	OrgExists(ctx context.Context, orgID string) (bool, error)
}

type Service struct {
	Store ImpersonationStore
	Orgs  OrgDirectory
	TTL   time.Duration
	Now   func() time.Time
}

func NewService(store ImpersonationStore, orgs OrgDirectory, ttl time.Duration) *Service {
	return &Service{Store: store, Orgs: orgs, TTL: ttl, Now: time.Now}
}

// Start begins viewing as orgID. It replaces any previous target.
func (s *Service) Start(ctx context.Context, admin models.Principal, orgID string) (*ImpersonationRecord, error) {
	if admin.Role != models.RolePlatformSuperAdmin || admin.UserID == "" {
		return nil, ErrNotSuperAdmin
	}
	exists, err := s.Orgs.OrgExists(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("check organization %s: %w", orgID, err)
	}
	if !exists {
		return nil, ErrUnknownOrg
	}

	rec := ImpersonationRecord{AdminUserID: admin.UserID, OrgID: orgID, StartedAt: s.now()}
	if err := s.Store.Set(ctx, rec, s.TTL); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("impersonation started",
		zap.String("adminUserID", admin.UserID), zap.String("orgID", orgID))
	return &rec, nil
}

// Stop ends the admin's impersonation. Stopping when none is active is a no-op.
func (s *Service) Stop(ctx context.Context, admin models.Principal) error {
	if admin.Role != models.RolePlatformSuperAdmin || admin.UserID == "" {
		return ErrNotSuperAdmin
	}
	if err := s.Store.Delete(ctx, admin.UserID); err != nil {
		return fmt.Errorf("failed to clear impersonation session: %w", err)
	}
	utils.GetLogger().Info("impersonation stopped", zap.String("adminUserID", admin.UserID))
	return nil
}

// Current is the read-only view used by status endpoints.
func (s *Service) Current(ctx context.Context, adminUserID string) (*ImpersonationRecord, error) {
	return s.Store.Get(ctx, adminUserID)
}

// Snapshot builds the request's authorization context. The store is read at
// most once; a later Start or Stop from another tab does not affect a request
// already holding its snapshot.
func (s *Service) Snapshot(ctx context.Context, p models.Principal) (access.RequestContext, error) {
	if p.Role != models.RolePlatformSuperAdmin {
		return access.NewRequestContext(p, nil), nil
	}

	rec, err := s.Store.Get(ctx, p.UserID)
	if err != nil {
		return access.RequestContext{}, err
	}
	if rec == nil {
		return access.NewRequestContext(p, nil), nil
	}

	exists, err := s.Orgs.OrgExists(ctx, rec.OrgID)
	if err != nil {
		return access.RequestContext{}, fmt.Errorf("check impersonated organization %s: %w", rec.OrgID, err)
	}
	if !exists {
		utils.GetLogger().Warn("impersonation target no longer exists",
			zap.String("adminUserID", p.UserID), zap.String("orgID", rec.OrgID))
	}
	return access.NewRequestContext(p, &access.Impersonation{OrgID: rec.OrgID, OrgExists: exists}), nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
