// Package matching reconciles a tenant's proposed availability against a
// contractor's existing jobs.
//
// An Engine is a snapshot of one request's inputs. It holds no caches, so
// every predicate is recomputed from the snapshot on each call and an
// Engine may be shared between goroutines.
package matching

import (
	"fmt"
	"sort"
	"time"

	"propcare/models"
	"propcare/services/interval"
)

// rankStep is the fixed walk used when scoring a proposed slot.
const rankStep = 60 * time.Minute

// Input is everything one matching request needs.
type Input struct {
	TenantSlots        []models.ProposedSlot
	ContractorJobs     []models.ScheduledJob
	ExcludeJobID       string
	JobDurationMinutes int
}

type Engine struct {
	slots        []models.ProposedSlot
	jobs         []models.ScheduledJob
	excludeJobID string
	durationMins int
}

// NewEngine validates and copies the input. Any interval with start >= end
// fails with interval.ErrMalformedInterval.
func NewEngine(in Input) (*Engine, error) {
	for _, s := range in.TenantSlots {
		if err := interval.Validate(s.Interval); err != nil {
			return nil, fmt.Errorf("proposed slot %d: %w", s.Index, err)
		}
	}
	for _, j := range in.ContractorJobs {
		if err := interval.Validate(j.Interval()); err != nil {
			return nil, fmt.Errorf("scheduled job %s: %w", j.ID, err)
		}
	}

	slots := make([]models.ProposedSlot, len(in.TenantSlots))
	copy(slots, in.TenantSlots)
	jobs := make([]models.ScheduledJob, len(in.ContractorJobs))
	copy(jobs, in.ContractorJobs)

	return &Engine{
		slots:        slots,
		jobs:         jobs,
		excludeJobID: in.ExcludeJobID,
		durationMins: in.JobDurationMinutes,
	}, nil
}

// IsTenantAvailable reports whether cell overlaps (inclusively) any proposed slot.
func (e *Engine) IsTenantAvailable(cell models.TimeInterval) bool {
	for _, s := range e.slots {
		if interval.Overlaps(cell, s.Interval, true) {
			return true
		}
	}
	return false
}

// HasExistingJob reports whether cell overlaps (inclusively) any contractor
// job other than the one being rescheduled.
func (e *Engine) HasExistingJob(cell models.TimeInterval) bool {
	return e.conflicts(cell, true)
}

// IsPerfectMatch gates which cells are selectable.
func (e *Engine) IsPerfectMatch(cell models.TimeInterval) bool {
	return e.IsTenantAvailable(cell) && !e.HasExistingJob(cell)
}

func (e *Engine) conflicts(cell models.TimeInterval, inclusive bool) bool {
	for _, j := range e.jobs {
		if e.excludeJobID != "" && j.ID == e.excludeJobID {
			continue
		}
		if interval.Overlaps(cell, j.Interval(), inclusive) {
			return true
		}
	}
	return false
}

// RankSlots scores each proposed slot by walking it hour by hour and counting
// the hours the contractor has nothing booked. The last probe is clipped to
// the slot's end. Probes use strict overlap: a job ending exactly at the top
// of an hour does not consume that hour.
// Results are ordered by free hours, descending; ties keep submission order.
func (e *Engine) RankSlots() []models.MatchResult {
	results := make([]models.MatchResult, 0, len(e.slots))
	for _, s := range e.slots {
		free, steps := 0, 0
		for cur := s.Interval.Start; cur.Before(s.Interval.End); cur = cur.Add(rankStep) {
			steps++
			end := cur.Add(rankStep)
			if end.After(s.Interval.End) {
				end = s.Interval.End
			}
			probe := models.TimeInterval{Start: cur, End: end}
			if !e.conflicts(probe, false) {
				free++
			}
		}
		results = append(results, models.MatchResult{
			ProposedSlotIndex: s.Index,
			Interval:          s.Interval,
			FreeHours:         free,
			IsFullyFree:       free == steps,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FreeHours > results[j].FreeHours
	})
	return results
}

// ValidateSelection maps a contractor-chosen interval onto the lowest-index
// proposed slot it overlaps. A duration that differs from the expected job
// duration is reported, never corrected.
func (e *Engine) ValidateSelection(sel models.SelectedInterval) (models.SelectionResult, error) {
	if err := interval.Validate(sel.Interval); err != nil {
		return models.SelectionResult{}, err
	}

	best := -1
	for _, s := range e.slots {
		if !interval.Overlaps(sel.Interval, s.Interval, true) {
			continue
		}
		if best == -1 || s.Index < best {
			best = s.Index
		}
	}
	if best == -1 {
		return models.SelectionResult{}, ErrNoOverlappingProposal
	}

	mins := interval.DurationMinutes(sel.Interval)
	return models.SelectionResult{
		ProposedSlotIndex: best,
		DurationMinutes:   mins,
		ExpectedMinutes:   e.durationMins,
		DurationMismatch:  e.durationMins > 0 && mins != e.durationMins,
	}, nil
}

// AcceptTopMatch returns the best-ranked slot that is fully free.
func (e *Engine) AcceptTopMatch() (models.MatchResult, error) {
	if len(e.slots) == 0 {
		return models.MatchResult{}, ErrNoProposals
	}
	for _, r := range e.RankSlots() {
		if r.IsFullyFree {
			return r, nil
		}
	}
	return models.MatchResult{}, ErrNoFullyFreeSlot
}

// Cells lays span out in gridMinutes cells and evaluates each one. The span
// is whatever the caller chooses to display; it has no effect on the verdicts.
func (e *Engine) Cells(span models.TimeInterval, gridMinutes int) ([]models.GridCell, error) {
	if err := interval.Validate(span); err != nil {
		return nil, err
	}
	if gridMinutes <= 0 {
		return nil, fmt.Errorf("grid must be positive, got %d minutes", gridMinutes)
	}

	step := time.Duration(gridMinutes) * time.Minute
	var cells []models.GridCell
	for cur := span.Start; cur.Before(span.End); cur = cur.Add(step) {
		end := cur.Add(step)
		if end.After(span.End) {
			end = span.End
		}
		cell := models.TimeInterval{Start: cur, End: end}
		tenant := e.IsTenantAvailable(cell)
		busy := e.HasExistingJob(cell)
		cells = append(cells, models.GridCell{
			Interval:        cell,
			TenantAvailable: tenant,
			HasExistingJob:  busy,
			PerfectMatch:    tenant && !busy,
		})
	}
	return cells, nil
}
