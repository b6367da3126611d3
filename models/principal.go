package models

// Role is the closed set of principal roles.
type Role string

const (
	RolePlatformSuperAdmin Role = "platform_super_admin"
	RoleOrgAdmin           Role = "org_admin"
	RoleContractor         Role = "contractor"
	RoleTenant             Role = "tenant"
)

// Principal is the authenticated caller. ViewAsOrgID is only ever set on a
// platform super admin while an impersonation session is active.
type Principal struct {
	UserID      string `json:"userId"`
	Role        Role   `json:"role"`
	OrgID       string `json:"orgId,omitempty"`
	ViewAsOrgID string `json:"viewAsOrgId,omitempty"`
}

func (p Principal) IsImpersonating() bool {
	return p.ViewAsOrgID != ""
}
