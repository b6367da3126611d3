package models

import "time"

type Unit struct {
	ID        string   `bson:"id" json:"id"`
	Label     string   `bson:"label" json:"label"`
	TenantIDs []string `bson:"tenant_ids" json:"tenantIds"`
}

type Property struct {
	ID        string    `bson:"id" json:"id"`
	OrgID     string    `bson:"org_id" json:"orgId"`
	Name      string    `bson:"name" json:"name"`
	Address   string    `bson:"address" json:"address"`
	Units     []Unit    `bson:"units" json:"units"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// HasTenant reports whether userID lives in any unit of the property.
func (p Property) HasTenant(userID string) bool {
	for _, u := range p.Units {
		for _, t := range u.TenantIDs {
			if t == userID {
				return true
			}
		}
	}
	return false
}

type Organization struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Timezone string `bson:"timezone" json:"timezone"`
}
