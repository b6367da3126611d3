package models

import "time"

type JobStatus string

const (
	JobScheduled  JobStatus = "scheduled"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// ScheduledJob is an existing contractor commitment.
type ScheduledJob struct {
	ID           string    `bson:"id" json:"id" yaml:"id"`
	ContractorID string    `bson:"contractor_id" json:"contractorId" yaml:"contractorId"`
	CaseID       string    `bson:"case_id" json:"caseId" yaml:"caseId"`
	OrgID        string    `bson:"org_id" json:"orgId" yaml:"orgId"`
	Start        time.Time `bson:"start" json:"start" yaml:"start"`
	End          time.Time `bson:"end" json:"end" yaml:"end"`
	Status       JobStatus `bson:"status" json:"status" yaml:"status"`
}

// Interval returns the job's [Start, End) range.
func (j ScheduledJob) Interval() TimeInterval {
	return TimeInterval{Start: j.Start, End: j.End}
}
