// Package access maps a principal to the set of properties and maintenance
// cases it may read.
package access

import (
	"fmt"

	"propcare/models"
)

type Resource string

const (
	ResourceProperty Resource = "property"
	ResourceCase     Resource = "case"
)

type ScopeKind int

const (
	ScopeDeny ScopeKind = iota
	ScopeAll
	ScopeOrg
	ScopeContractor
	ScopeTenant
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeAll:
		return "all"
	case ScopeOrg:
		return "org"
	case ScopeContractor:
		return "contractor"
	case ScopeTenant:
		return "tenant"
	default:
		return "deny"
	}
}

// Scope is the row filter for one resource kind.
type Scope struct {
	Kind     ScopeKind
	Resource Resource
	OrgID    string
	UserID   string

	// Impersonated is set when an admin is viewing as OrgID.
	Impersonated bool
}

// Resolve evaluates the decision table top to bottom:
//
//  1. super admin impersonating an org: scoped to that org
//  2. super admin: unscoped
//  3. org admin: own org
//  4. contractor: per-case marketplace decision
//  5. tenant: own unit and cases
//  6. anything else: deny
//
// A denied scope is always returned together with ErrAccessDenied.
func Resolve(rc RequestContext, res Resource) (Scope, error) {
	if res != ResourceProperty && res != ResourceCase {
		return deny(res), fmt.Errorf("%w: unknown resource %q", ErrAccessDenied, res)
	}

	p := rc.Principal
	if p.UserID == "" {
		return deny(res), ErrAccessDenied
	}

	switch p.Role {
	case models.RolePlatformSuperAdmin:
		if imp := rc.Impersonation; imp != nil {
			if imp.OrgID == "" || !imp.OrgExists || imp.OrgID != p.ViewAsOrgID {
				return deny(res), ErrImpersonationStateInconsistent
			}
			return Scope{Kind: ScopeOrg, Resource: res, OrgID: imp.OrgID, UserID: p.UserID, Impersonated: true}, nil
		}
		if p.ViewAsOrgID != "" {
			// A view-as target that did not come through the snapshot was
			// never validated.
			return deny(res), ErrImpersonationStateInconsistent
		}
		return Scope{Kind: ScopeAll, Resource: res, UserID: p.UserID}, nil

	case models.RoleOrgAdmin:
		if p.OrgID == "" || p.ViewAsOrgID != "" || rc.Impersonation != nil {
			return deny(res), ErrAccessDenied
		}
		return Scope{Kind: ScopeOrg, Resource: res, OrgID: p.OrgID, UserID: p.UserID}, nil

	case models.RoleContractor:
		if p.ViewAsOrgID != "" || rc.Impersonation != nil {
			return deny(res), ErrAccessDenied
		}
		return Scope{Kind: ScopeContractor, Resource: res, UserID: p.UserID}, nil

	case models.RoleTenant:
		if p.ViewAsOrgID != "" || rc.Impersonation != nil {
			return deny(res), ErrAccessDenied
		}
		return Scope{Kind: ScopeTenant, Resource: res, OrgID: p.OrgID, UserID: p.UserID}, nil
	}

	return deny(res), ErrAccessDenied
}

func deny(res Resource) Scope {
	return Scope{Kind: ScopeDeny, Resource: res}
}

// AllowsProperty decides a single property against the scope. Contractor
// scopes cannot be decided from the property alone and return false; callers
// resolve them through the contractor's assigned cases.
func (s Scope) AllowsProperty(p models.Property) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeOrg:
		return p.OrgID == s.OrgID
	case ScopeTenant:
		return p.HasTenant(s.UserID)
	}
	return false
}

// AllowsCase decides a single case. Contractor scopes need the marketplace
// gate and return false here; see Authorizer.
func (s Scope) AllowsCase(c models.MaintenanceCase) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeOrg:
		return c.OrgID == s.OrgID
	case ScopeTenant:
		return c.TenantID == s.UserID
	}
	return false
}
