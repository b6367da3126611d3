package models

import "time"

// TimeInterval is a half-open [Start, End) range of absolute instants.
type TimeInterval struct {
	Start time.Time `bson:"start" json:"start" yaml:"start"`
	End   time.Time `bson:"end" json:"end" yaml:"end"`
}

// ProposedSlot is a tenant-submitted candidate window. Index is the stable
// handle handed back to the caller on acceptance.
type ProposedSlot struct {
	Index    int          `json:"index"`
	Interval TimeInterval `json:"interval"`
}

// MatchResult is derived per request and never stored.
type MatchResult struct {
	ProposedSlotIndex int          `json:"proposedSlotIndex"`
	Interval          TimeInterval `json:"interval"`
	FreeHours         int          `json:"freeHours"`
	IsFullyFree       bool         `json:"isFullyFree"`
}

// SelectedInterval is an ad-hoc interval picked by the contractor inside a
// perfect-match region.
type SelectedInterval struct {
	Interval TimeInterval `json:"interval" binding:"required"`
}

// SelectionResult is returned once a SelectedInterval passed validation.
type SelectionResult struct {
	ProposedSlotIndex int  `json:"proposedSlotIndex"`
	DurationMinutes   int  `json:"durationMinutes"`
	ExpectedMinutes   int  `json:"expectedMinutes"`
	DurationMismatch  bool `json:"durationMismatch"`
}

// GridCell is one cell of a day grid with its perfect-match verdict.
type GridCell struct {
	Interval        TimeInterval `json:"interval"`
	TenantAvailable bool         `json:"tenantAvailable"`
	HasExistingJob  bool         `json:"hasExistingJob"`
	PerfectMatch    bool         `json:"perfectMatch"`
}
