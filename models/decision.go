package models

import "time"

type DecisionKind string

const (
	DecisionSelectionConfirmed DecisionKind = "selection_confirmed"
	DecisionTopMatchAccepted   DecisionKind = "top_match_accepted"
)

// Recipient addresses one connected client group of the fan-out.
type Recipient struct {
	UserID string `json:"userId"`
	OrgID  string `json:"orgId"`
}

// ScheduleDecision is the record handed to the notification fan-out once an
// appointment window has been settled.
type ScheduleDecision struct {
	ID                string       `json:"id"`
	Kind              DecisionKind `json:"kind"`
	CaseID            string       `json:"caseId"`
	OrgID             string       `json:"orgId"`
	ContractorID      string       `json:"contractorId"`
	ProposedSlotIndex int          `json:"proposedSlotIndex"`
	Interval          TimeInterval `json:"interval"`
	DurationMismatch  bool         `json:"durationMismatch"`
	DecidedBy         string       `json:"decidedBy"`
	Recipients        []Recipient  `json:"recipients"`
	DecidedAt         time.Time    `json:"decidedAt"`
}
