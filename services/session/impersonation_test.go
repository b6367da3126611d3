package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"propcare/models"
	"propcare/services/access"
)

type memoryStore struct {
	records map[string]ImpersonationRecord
	gets    int
	ttl     time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[string]ImpersonationRecord{}}
}

func (m *memoryStore) Get(ctx context.Context, adminUserID string) (*ImpersonationRecord, error) {
	m.gets++
	rec, ok := m.records[adminUserID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memoryStore) Set(ctx context.Context, rec ImpersonationRecord, ttl time.Duration) error {
	m.records[rec.AdminUserID] = rec
	m.ttl = ttl
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, adminUserID string) error {
	delete(m.records, adminUserID)
	return nil
}

type orgSet map[string]bool

func (o orgSet) OrgExists(ctx context.Context, orgID string) (bool, error) {
	return o[orgID], nil
}

var admin = models.Principal{UserID: "admin-1", Role: models.RolePlatformSuperAdmin}

func TestStartStopAndSnapshot(t *testing.T) {
	store := newMemoryStore()
	orgs := orgSet{"org-7": true}
	svc := NewService(store, orgs, time.Hour)
	ctx := context.Background()

	if _, err := svc.Start(ctx, admin, "org-7"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if store.ttl != time.Hour {
		t.Errorf("ttl = %s, want 1h", store.ttl)
	}

	rc, err := svc.Snapshot(ctx, admin)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	scope, err := access.Resolve(rc, access.ResourceCase)
	if err != nil || scope.Kind != access.ScopeOrg || scope.OrgID != "org-7" || !scope.Impersonated {
		t.Fatalf("impersonating scope = %+v, %v", scope, err)
	}

	if err := svc.Stop(ctx, admin); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	rc, err = svc.Snapshot(ctx, admin)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	scope, err = access.Resolve(rc, access.ResourceCase)
	if err != nil || scope.Kind != access.ScopeAll {
		t.Errorf("after stop scope = %+v, %v", scope, err)
	}
}

func TestStartRejectsUnknownOrgAndNonAdmins(t *testing.T) {
	svc := NewService(newMemoryStore(), orgSet{}, time.Hour)
	ctx := context.Background()

	if _, err := svc.Start(ctx, admin, "org-404"); !errors.Is(err, ErrUnknownOrg) {
		t.Errorf("got %v, want ErrUnknownOrg", err)
	}
	orgAdmin := models.Principal{UserID: "u", Role: models.RoleOrgAdmin, OrgID: "org-1"}
	if _, err := svc.Start(ctx, orgAdmin, "org-1"); !errors.Is(err, ErrNotSuperAdmin) {
		t.Errorf("got %v, want ErrNotSuperAdmin", err)
	}
	if err := svc.Stop(ctx, orgAdmin); !errors.Is(err, ErrNotSuperAdmin) {
		t.Errorf("got %v, want ErrNotSuperAdmin", err)
	}
}

func TestSnapshot_DeletedOrgFailsClosed(t *testing.T) {
	store := newMemoryStore()
	orgs := orgSet{"org-7": true}
	svc := NewService(store, orgs, time.Hour)
	ctx := context.Background()

	if _, err := svc.Start(ctx, admin, "org-7"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	delete(orgs, "org-7")

	rc, err := svc.Snapshot(ctx, admin)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	scope, err := access.Resolve(rc, access.ResourceProperty)
	if !errors.Is(err, access.ErrImpersonationStateInconsistent) || scope.Kind != access.ScopeDeny {
		t.Errorf("got %+v / %v, want deny with ErrImpersonationStateInconsistent", scope, err)
	}
}

func TestSnapshot_NonAdminsSkipStore(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, orgSet{}, time.Hour)

	p := models.Principal{UserID: "con-1", Role: models.RoleContractor, ViewAsOrgID: "org-7"}
	rc, err := svc.Snapshot(context.Background(), p)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if store.gets != 0 {
		t.Errorf("store read %d times for a contractor", store.gets)
	}
	if rc.Principal.ViewAsOrgID != "" || rc.Impersonation != nil {
		t.Errorf("contractor context carries impersonation: %+v", rc)
	}
}

func TestSnapshot_ReadsStoreOnce(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, orgSet{"org-7": true}, time.Hour)
	ctx := context.Background()
	if _, err := svc.Start(ctx, admin, "org-7"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	rc, err := svc.Snapshot(ctx, admin)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	// A stop from another tab after the snapshot does not change this request.
	if err := svc.Stop(ctx, admin); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	scope, err := access.Resolve(rc, access.ResourceCase)
	if err != nil || scope.OrgID != "org-7" {
		t.Errorf("snapshot changed after stop: %+v / %v", scope, err)
	}
	if store.gets != 1 {
		t.Errorf("store read %d times, want 1", store.gets)
	}
}
