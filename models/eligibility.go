package models

import "time"

// Favorite marks a contractor as preferred by an organization.
type Favorite struct {
	OrgID        string    `bson:"org_id" json:"orgId"`
	ContractorID string    `bson:"contractor_id" json:"contractorId"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// OrgLink is the contractor-to-organization relationship required for any
// marketplace exposure.
type OrgLink struct {
	OrgID        string    `bson:"org_id" json:"orgId"`
	ContractorID string    `bson:"contractor_id" json:"contractorId"`
	Active       bool      `bson:"active" json:"active"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

type ContractorProfile struct {
	ID           string   `bson:"id" json:"id"`
	DisplayName  string   `bson:"display_name" json:"displayName"`
	SpecialtyIDs []string `bson:"specialty_ids" json:"specialtyIds"`
}
