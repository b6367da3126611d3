package access

import "propcare/models"

// Impersonation is the admin-set view-as target captured at request start.
type Impersonation struct {
	OrgID     string
	OrgExists bool
}

// RequestContext is the explicit per-request authorization input. It is
// built once when the request enters and never re-read from session state.
type RequestContext struct {
	Principal     models.Principal
	Impersonation *Impersonation
}

// NewRequestContext binds an impersonation snapshot to the principal.
func NewRequestContext(p models.Principal, imp *Impersonation) RequestContext {
	p.ViewAsOrgID = ""
	if imp != nil {
		p.ViewAsOrgID = imp.OrgID
	}
	return RequestContext{Principal: p, Impersonation: imp}
}
