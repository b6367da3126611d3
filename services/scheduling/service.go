// Package scheduling settles appointment windows for maintenance cases. It
// loads the case and the contractor's schedule, runs the matching engine
// and records the outcome.
package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	casesRepo "propcare/database/repository/cases"
	jobRepo "propcare/database/repository/job"
	orgRepo "propcare/database/repository/org"
	schedulerRepo "propcare/database/repository/scheduler"
	"propcare/models"
	"propcare/services/access"
	"propcare/services/interval"
	"propcare/services/matching"
	"propcare/services/notification"
	"propcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNoContractor = errors.New("case has no contractor to schedule against")
	ErrInvalidDate  = errors.New("date must be formatted as YYYY-MM-DD")
)

// Window is the displayed part of a day grid in local hours.
type Window struct {
	StartHour int
	EndHour   int
}

type Service struct {
	Cases      casesRepo.CaseRepository
	Jobs       jobRepo.JobRepository
	Orgs       orgRepo.OrgRepository
	Bookings   schedulerRepo.SchedulerRepository
	Authorizer *access.Authorizer
	Publisher  notification.Publisher

	// Location is used when an organization has no usable timezone.
	Location    *time.Location
	GridMinutes int
	Window      Window
	Now         func() time.Time
}

// Confirmation is the result of settling a case's appointment.
type Confirmation struct {
	Selection models.SelectionResult  `json:"selection"`
	Job       models.ScheduledJob     `json:"job"`
	Decision  models.ScheduleDecision `json:"decision"`
}

// DayGrid is one day of grid cells in the organization's timezone.
type DayGrid struct {
	Date        string            `json:"date"`
	Timezone    string            `json:"timezone"`
	GridMinutes int               `json:"gridMinutes"`
	Cells       []models.GridCell `json:"cells"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RankProposals scores the tenant's proposed slots against the contractor's
// schedule.
func (s *Service) RankProposals(ctx context.Context, rc access.RequestContext, caseID string) ([]models.MatchResult, error) {
	c, err := s.loadCase(ctx, rc, caseID)
	if err != nil {
		return nil, err
	}
	contractorID, err := contractorFor(rc, *c)
	if err != nil {
		return nil, err
	}
	engine, err := s.engine(ctx, *c, contractorID)
	if err != nil {
		return nil, err
	}
	return engine.RankSlots(), nil
}

// DayGrid lays out date (YYYY-MM-DD, in the case org's timezone) over the
// display window.
func (s *Service) DayGrid(ctx context.Context, rc access.RequestContext, caseID, date string) (*DayGrid, error) {
	c, err := s.loadCase(ctx, rc, caseID)
	if err != nil {
		return nil, err
	}
	contractorID, err := contractorFor(rc, *c)
	if err != nil {
		return nil, err
	}

	loc := s.location(ctx, c.OrgID)
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, ErrInvalidDate
	}
	span, err := interval.Between(day, s.Window.StartHour, 0, s.Window.EndHour, 0, loc)
	if err != nil {
		return nil, fmt.Errorf("display window: %w", err)
	}

	engine, err := s.engine(ctx, *c, contractorID)
	if err != nil {
		return nil, err
	}
	cells, err := engine.Cells(span, s.GridMinutes)
	if err != nil {
		return nil, err
	}
	return &DayGrid{Date: date, Timezone: loc.String(), GridMinutes: s.GridMinutes, Cells: cells}, nil
}

// ConfirmSelection books a contractor-picked interval. The interval must
// overlap one of the tenant's proposals; a duration that differs from the
// expected job duration is accepted and flagged.
func (s *Service) ConfirmSelection(ctx context.Context, rc access.RequestContext, caseID string, sel models.SelectedInterval) (*Confirmation, error) {
	c, err := s.loadCase(ctx, rc, caseID)
	if err != nil {
		return nil, err
	}
	if err := canConfirm(rc, *c); err != nil {
		return nil, err
	}
	engine, err := s.engine(ctx, *c, c.AssignedContractorID)
	if err != nil {
		return nil, err
	}

	res, err := engine.ValidateSelection(sel)
	if err != nil {
		return nil, err
	}
	if res.DurationMismatch {
		utils.GetLogger().Info("Selection duration differs from expected job duration",
			zap.String("caseId", c.ID),
			zap.Int("minutes", res.DurationMinutes),
			zap.Int("expectedMinutes", res.ExpectedMinutes))
	}
	return s.book(ctx, rc, *c, models.DecisionSelectionConfirmed, res, sel.Interval)
}

// AcceptTopMatch books the best-ranked fully free proposal, starting at the
// slot's start and lasting the expected job duration.
func (s *Service) AcceptTopMatch(ctx context.Context, rc access.RequestContext, caseID string) (*Confirmation, error) {
	c, err := s.loadCase(ctx, rc, caseID)
	if err != nil {
		return nil, err
	}
	if err := canConfirm(rc, *c); err != nil {
		return nil, err
	}
	engine, err := s.engine(ctx, *c, c.AssignedContractorID)
	if err != nil {
		return nil, err
	}

	top, err := engine.AcceptTopMatch()
	if err != nil {
		return nil, err
	}
	booked := bookedInterval(top.Interval, c.JobDurationMinutes)
	res := models.SelectionResult{
		ProposedSlotIndex: top.ProposedSlotIndex,
		DurationMinutes:   interval.DurationMinutes(booked),
		ExpectedMinutes:   c.JobDurationMinutes,
	}
	res.DurationMismatch = c.JobDurationMinutes > 0 && res.DurationMinutes != c.JobDurationMinutes
	return s.book(ctx, rc, *c, models.DecisionTopMatchAccepted, res, booked)
}

// bookedInterval runs from the slot's start for the job duration, clipped to
// the slot. A zero duration books the whole slot.
func bookedInterval(slot models.TimeInterval, durationMinutes int) models.TimeInterval {
	if durationMinutes <= 0 {
		return slot
	}
	end := slot.Start.Add(time.Duration(durationMinutes) * time.Minute)
	if end.After(slot.End) {
		end = slot.End
	}
	return models.TimeInterval{Start: slot.Start, End: end}
}

func (s *Service) book(ctx context.Context, rc access.RequestContext, c models.MaintenanceCase, kind models.DecisionKind, res models.SelectionResult, iv models.TimeInterval) (*Confirmation, error) {
	logger := utils.GetLogger()

	jobID := c.CurrentJobID
	if jobID == "" {
		jobID = uuid.New().String()
	}
	job := models.ScheduledJob{
		ID:           jobID,
		ContractorID: c.AssignedContractorID,
		CaseID:       c.ID,
		OrgID:        c.OrgID,
		Start:        iv.Start,
		End:          iv.End,
		Status:       models.JobScheduled,
	}
	if err := s.Bookings.BookJob(ctx, job); err != nil {
		return nil, err
	}

	decision := models.ScheduleDecision{
		ID:                uuid.New().String(),
		Kind:              kind,
		CaseID:            c.ID,
		OrgID:             c.OrgID,
		ContractorID:      c.AssignedContractorID,
		ProposedSlotIndex: res.ProposedSlotIndex,
		Interval:          iv,
		DurationMismatch:  res.DurationMismatch,
		DecidedBy:         rc.Principal.UserID,
		Recipients:        recipients(c),
		DecidedAt:         s.now(),
	}
	if s.Publisher != nil {
		if err := s.Publisher.PublishDecision(ctx, decision); err != nil {
			logger.Error("Failed to publish schedule decision",
				zap.String("caseId", c.ID), zap.String("decisionId", decision.ID), zap.Error(err))
		}
	}

	logger.Info("Appointment booked",
		zap.String("caseId", c.ID),
		zap.String("jobId", job.ID),
		zap.String("kind", string(kind)),
		zap.Int("proposedSlotIndex", res.ProposedSlotIndex),
		zap.Time("start", iv.Start),
		zap.Time("end", iv.End),
		zap.Bool("impersonated", rc.Impersonation != nil))

	return &Confirmation{Selection: res, Job: job, Decision: decision}, nil
}

// loadCase returns the case if the request may read it; a missing case is
// indistinguishable from a hidden one.
func (s *Service) loadCase(ctx context.Context, rc access.RequestContext, caseID string) (*models.MaintenanceCase, error) {
	c, err := s.Cases.GetByID(ctx, caseID)
	if errors.Is(err, casesRepo.ErrCaseNotFound) {
		return nil, access.ErrAccessDenied
	}
	if err != nil {
		return nil, err
	}
	if err := s.Authorizer.AuthorizeCase(ctx, rc, *c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) engine(ctx context.Context, c models.MaintenanceCase, contractorID string) (*matching.Engine, error) {
	jobs, err := s.Jobs.ListScheduledJobs(ctx, contractorID, c.CurrentJobID)
	if err != nil {
		return nil, err
	}
	return matching.NewEngine(matching.Input{
		TenantSlots:        c.ProposedSlots(),
		ContractorJobs:     jobs,
		ExcludeJobID:       c.CurrentJobID,
		JobDurationMinutes: c.JobDurationMinutes,
	})
}

// location resolves the org's timezone, falling back to the service default.
func (s *Service) location(ctx context.Context, orgID string) *time.Location {
	fallback := s.Location
	if fallback == nil {
		fallback = time.UTC
	}
	if s.Orgs == nil {
		return fallback
	}
	org, err := s.Orgs.GetByID(ctx, orgID)
	if err != nil || org.Timezone == "" {
		return fallback
	}
	loc, err := interval.LoadLocation(org.Timezone)
	if err != nil {
		utils.GetLogger().Warn("Organization has an unknown timezone",
			zap.String("orgId", orgID), zap.String("timezone", org.Timezone))
		return fallback
	}
	return loc
}

// contractorFor picks whose schedule to rank against: the assignee, or a
// contractor browsing an unassigned case.
func contractorFor(rc access.RequestContext, c models.MaintenanceCase) (string, error) {
	if c.AssignedContractorID != "" {
		return c.AssignedContractorID, nil
	}
	if rc.Principal.Role == models.RoleContractor {
		return rc.Principal.UserID, nil
	}
	return "", ErrNoContractor
}

// canConfirm allows the assigned contractor and admins whose scope covers the
// case. Read access has already been checked.
func canConfirm(rc access.RequestContext, c models.MaintenanceCase) error {
	if c.AssignedContractorID == "" {
		return ErrNoContractor
	}
	scope, err := access.Resolve(rc, access.ResourceCase)
	if err != nil {
		return err
	}
	switch scope.Kind {
	case access.ScopeContractor:
		if c.AssignedContractorID == scope.UserID {
			return nil
		}
	case access.ScopeAll, access.ScopeOrg:
		if scope.AllowsCase(c) {
			return nil
		}
	}
	return access.ErrAccessDenied
}

func recipients(c models.MaintenanceCase) []models.Recipient {
	var out []models.Recipient
	if c.TenantID != "" {
		out = append(out, models.Recipient{UserID: c.TenantID, OrgID: c.OrgID})
	}
	if c.AssignedContractorID != "" {
		out = append(out, models.Recipient{UserID: c.AssignedContractorID, OrgID: c.OrgID})
	}
	return out
}
