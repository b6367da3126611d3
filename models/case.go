package models

import "time"

type CaseStatus string

const (
	CaseOpen       CaseStatus = "open"
	CaseScheduling CaseStatus = "scheduling"
	CaseScheduled  CaseStatus = "scheduled"
	CaseResolved   CaseStatus = "resolved"
)

// MaintenanceCase is a repair request raised against a property unit.
type MaintenanceCase struct {
	ID                   string         `bson:"id" json:"id"`
	OrgID                string         `bson:"org_id" json:"orgId"`
	PropertyID           string         `bson:"property_id" json:"propertyId"`
	UnitID               string         `bson:"unit_id" json:"unitId"`
	TenantID             string         `bson:"tenant_id" json:"tenantId"`
	Title                string         `bson:"title" json:"title"`
	Description          string         `bson:"description" json:"description"`
	SpecialtyID          string         `bson:"specialty_id,omitempty" json:"specialtyId,omitempty"`
	AssignedContractorID string         `bson:"assigned_contractor_id,omitempty" json:"assignedContractorId,omitempty"`
	IsUrgent             bool           `bson:"is_urgent" json:"isUrgent"`
	UrgencyScore         float64        `bson:"urgency_score" json:"urgencyScore"`
	RestrictToFavorites  bool           `bson:"restrict_to_favorites" json:"restrictToFavorites"`
	Status               CaseStatus     `bson:"status" json:"status"`
	TenantAvailability   []TimeInterval `bson:"tenant_availability" json:"tenantAvailability"`
	JobDurationMinutes   int            `bson:"job_duration_minutes" json:"jobDurationMinutes"`
	CurrentJobID         string         `bson:"current_job_id,omitempty" json:"currentJobId,omitempty"`
	CreatedAt            time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt            time.Time      `bson:"updated_at" json:"updatedAt"`
}

// VisibilityContext extracts the facts the marketplace gate needs.
func (c MaintenanceCase) VisibilityContext() CaseVisibilityContext {
	return CaseVisibilityContext{
		CaseID:               c.ID,
		AssignedContractorID: c.AssignedContractorID,
		OrgID:                c.OrgID,
		IsUrgent:             c.IsUrgent,
		RestrictToFavorites:  c.RestrictToFavorites,
	}
}

// ProposedSlots numbers the tenant's availability in submission order.
func (c MaintenanceCase) ProposedSlots() []ProposedSlot {
	slots := make([]ProposedSlot, len(c.TenantAvailability))
	for i, iv := range c.TenantAvailability {
		slots[i] = ProposedSlot{Index: i, Interval: iv}
	}
	return slots
}

// CaseVisibilityContext holds the facts needed to decide marketplace exposure
// of a single case.
type CaseVisibilityContext struct {
	CaseID               string
	AssignedContractorID string
	OrgID                string
	IsUrgent             bool
	RestrictToFavorites  bool
}

// CaseIntake is the payload accepted when a tenant or org admin opens a case.
type CaseIntake struct {
	PropertyID          string         `json:"propertyId" binding:"required"`
	UnitID              string         `json:"unitId" binding:"required"`
	Title               string         `json:"title" binding:"required"`
	Description         string         `json:"description"`
	SpecialtyID         string         `json:"specialtyId"`
	RestrictToFavorites bool           `json:"restrictToFavorites"`
	TenantAvailability  []TimeInterval `json:"tenantAvailability"`
	JobDurationMinutes  int            `json:"jobDurationMinutes"`
}
