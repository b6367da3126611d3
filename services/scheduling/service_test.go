package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	casesRepo "propcare/database/repository/cases"
	jobRepo "propcare/database/repository/job"
	orgRepo "propcare/database/repository/org"
	"propcare/models"
	"propcare/services/access"
	"propcare/services/matching"
)

type memCases struct {
	byID map[string]models.MaintenanceCase
}

func (m *memCases) GetByID(ctx context.Context, id string) (*models.MaintenanceCase, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, casesRepo.ErrCaseNotFound
	}
	return &c, nil
}

func (m *memCases) ListScoped(context.Context, access.Scope, int64) ([]models.MaintenanceCase, error) {
	return nil, nil
}

func (m *memCases) ListMarketplace(context.Context, []string, int64) ([]models.MaintenanceCase, error) {
	return nil, nil
}

func (m *memCases) AssignedPropertyIDs(context.Context, string) ([]string, error) { return nil, nil }

func (m *memCases) Create(context.Context, *models.MaintenanceCase) error { return nil }

type memJobs struct {
	jobs     []models.ScheduledJob
	excluded []string
}

func (m *memJobs) ListScheduledJobs(ctx context.Context, contractorID, excludeJobID string) ([]models.ScheduledJob, error) {
	m.excluded = append(m.excluded, excludeJobID)
	var out []models.ScheduledJob
	for _, j := range m.jobs {
		if j.ContractorID == contractorID && j.ID != excludeJobID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *memJobs) GetByID(ctx context.Context, id string) (*models.ScheduledJob, error) {
	return nil, jobRepo.ErrJobNotFound
}

type memBookings struct {
	saved     []models.ScheduledJob
	scheduled map[string]string
}

func (m *memBookings) BookJob(ctx context.Context, job models.ScheduledJob) error {
	m.saved = append(m.saved, job)
	m.scheduled[job.CaseID] = job.ID
	return nil
}

type memOrgs map[string]models.Organization

func (m memOrgs) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	o, ok := m[id]
	if !ok {
		return nil, orgRepo.ErrOrgNotFound
	}
	return &o, nil
}

func (m memOrgs) OrgExists(ctx context.Context, id string) (bool, error) {
	_, ok := m[id]
	return ok, nil
}

type recordingPublisher struct {
	decisions []models.ScheduleDecision
	err       error
}

func (r *recordingPublisher) PublishDecision(ctx context.Context, d models.ScheduleDecision) error {
	r.decisions = append(r.decisions, d)
	return r.err
}

type linkedEverywhere struct{}

func (linkedEverywhere) IsFavorite(context.Context, string, string) (bool, error)       { return false, nil }
func (linkedEverywhere) HasActiveOrgLink(context.Context, string, string) (bool, error) { return true, nil }
func (linkedEverywhere) SpecialtiesOf(context.Context, string) ([]string, error)        { return nil, nil }

var (
	contractor = access.NewRequestContext(models.Principal{UserID: "con-1", Role: models.RoleContractor}, nil)
	stranger   = access.NewRequestContext(models.Principal{UserID: "con-2", Role: models.RoleContractor}, nil)
	tenant     = access.NewRequestContext(models.Principal{UserID: "ten-1", Role: models.RoleTenant, OrgID: "org-7"}, nil)
	orgAdmin   = access.NewRequestContext(models.Principal{UserID: "oa-7", Role: models.RoleOrgAdmin, OrgID: "org-7"}, nil)
)

type fixture struct {
	svc   *Service
	cases *memCases
	jobs  *memJobs
	books *memBookings
	pub   *recordingPublisher
	ny    *time.Location
}

func on(loc *time.Location, day, sh, sm, eh, em int) models.TimeInterval {
	return models.TimeInterval{
		Start: time.Date(2025, time.March, day, sh, sm, 0, 0, loc),
		End:   time.Date(2025, time.March, day, eh, em, 0, 0, loc),
	}
}

// Monday 2025-03-03 09:00-11:00 and Tuesday 2025-03-04 14:00-16:00 in New
// York, with the contractor already busy Monday 09:00-10:00.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	c := models.MaintenanceCase{
		ID:                   "case-1",
		OrgID:                "org-7",
		TenantID:             "ten-1",
		AssignedContractorID: "con-1",
		Status:               models.CaseScheduling,
		TenantAvailability:   []models.TimeInterval{on(ny, 3, 9, 0, 11, 0), on(ny, 4, 14, 0, 16, 0)},
		JobDurationMinutes:   120,
	}
	open := c
	open.ID = "case-open"
	open.AssignedContractorID = ""

	busy := on(ny, 3, 9, 0, 10, 0)
	f := &fixture{
		cases: &memCases{
			byID: map[string]models.MaintenanceCase{c.ID: c, open.ID: open},
		},
		jobs: &memJobs{jobs: []models.ScheduledJob{
			{ID: "job-other", ContractorID: "con-1", Start: busy.Start, End: busy.End, Status: models.JobScheduled},
		}},
		books: &memBookings{scheduled: map[string]string{}},
		pub:   &recordingPublisher{},
		ny:    ny,
	}
	f.svc = &Service{
		Cases:       f.cases,
		Jobs:        f.jobs,
		Bookings:    f.books,
		Orgs:        memOrgs{"org-7": {ID: "org-7", Timezone: "America/New_York"}},
		Authorizer:  access.NewAuthorizer(linkedEverywhere{}),
		Publisher:   f.pub,
		Location:    time.UTC,
		GridMinutes: 30,
		Window:      Window{StartHour: 6, EndHour: 22},
		Now:         func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
	return f
}

func TestRankProposals(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.RankProposals(context.Background(), contractor, "case-1")
	if err != nil {
		t.Fatalf("RankProposals: %v", err)
	}
	if len(got) != 2 || got[0].ProposedSlotIndex != 1 || got[0].FreeHours != 2 || !got[0].IsFullyFree {
		t.Fatalf("ranking = %+v", got)
	}
	if got[1].FreeHours != 1 || got[1].IsFullyFree {
		t.Errorf("monday = %+v", got[1])
	}

	if _, err := f.svc.RankProposals(context.Background(), stranger, "case-1"); !errors.Is(err, access.ErrAccessDenied) {
		t.Errorf("other contractor: got %v", err)
	}
	if _, err := f.svc.RankProposals(context.Background(), contractor, "missing"); !errors.Is(err, access.ErrAccessDenied) {
		t.Errorf("missing case: got %v", err)
	}
	if _, err := f.svc.RankProposals(context.Background(), orgAdmin, "case-open"); !errors.Is(err, ErrNoContractor) {
		t.Errorf("unassigned case for admin: got %v", err)
	}
	if _, err := f.svc.RankProposals(context.Background(), stranger, "case-open"); err != nil {
		t.Errorf("marketplace contractor ranking an open case: %v", err)
	}
}

func TestAcceptTopMatch(t *testing.T) {
	f := newFixture(t)

	conf, err := f.svc.AcceptTopMatch(context.Background(), contractor, "case-1")
	if err != nil {
		t.Fatalf("AcceptTopMatch: %v", err)
	}
	want := on(f.ny, 4, 14, 0, 16, 0)
	if conf.Selection.ProposedSlotIndex != 1 || conf.Selection.DurationMismatch {
		t.Errorf("selection = %+v", conf.Selection)
	}
	if !conf.Job.Start.Equal(want.Start) || !conf.Job.End.Equal(want.End) {
		t.Errorf("job = %v..%v, want %v..%v", conf.Job.Start, conf.Job.End, want.Start, want.End)
	}
	if f.books.scheduled["case-1"] != conf.Job.ID || len(f.books.saved) != 1 {
		t.Errorf("case not marked scheduled: %v", f.books.scheduled)
	}
	if len(f.pub.decisions) != 1 {
		t.Fatalf("expected one published decision, got %d", len(f.pub.decisions))
	}
	d := f.pub.decisions[0]
	if d.Kind != models.DecisionTopMatchAccepted || d.DecidedBy != "con-1" || len(d.Recipients) != 2 {
		t.Errorf("decision = %+v", d)
	}
}

func TestAcceptTopMatch_NoFullyFreeSlot(t *testing.T) {
	f := newFixture(t)
	c := f.cases.byID["case-1"]
	c.TenantAvailability = c.TenantAvailability[:1]
	f.cases.byID["case-1"] = c

	if _, err := f.svc.AcceptTopMatch(context.Background(), contractor, "case-1"); !errors.Is(err, matching.ErrNoFullyFreeSlot) {
		t.Fatalf("got %v, want ErrNoFullyFreeSlot", err)
	}
	if len(f.books.saved) != 0 || len(f.pub.decisions) != 0 {
		t.Error("nothing should be booked")
	}
}

func TestConfirmSelection(t *testing.T) {
	t.Run("inside monday proposal", func(t *testing.T) {
		f := newFixture(t)
		sel := models.SelectedInterval{Interval: on(f.ny, 3, 10, 0, 11, 0)}

		conf, err := f.svc.ConfirmSelection(context.Background(), contractor, "case-1", sel)
		if err != nil {
			t.Fatalf("ConfirmSelection: %v", err)
		}
		if conf.Selection.ProposedSlotIndex != 0 {
			t.Errorf("slot = %d, want 0", conf.Selection.ProposedSlotIndex)
		}
		if !conf.Selection.DurationMismatch || conf.Selection.DurationMinutes != 60 || conf.Selection.ExpectedMinutes != 120 {
			t.Errorf("selection = %+v", conf.Selection)
		}
		if !conf.Decision.DurationMismatch || conf.Decision.Kind != models.DecisionSelectionConfirmed {
			t.Errorf("decision = %+v", conf.Decision)
		}
	})

	t.Run("outside every proposal", func(t *testing.T) {
		f := newFixture(t)
		sel := models.SelectedInterval{Interval: on(f.ny, 5, 9, 0, 10, 0)}
		if _, err := f.svc.ConfirmSelection(context.Background(), contractor, "case-1", sel); !errors.Is(err, matching.ErrNoOverlappingProposal) {
			t.Fatalf("got %v, want ErrNoOverlappingProposal", err)
		}
	})

	t.Run("tenant cannot confirm", func(t *testing.T) {
		f := newFixture(t)
		sel := models.SelectedInterval{Interval: on(f.ny, 3, 10, 0, 11, 0)}
		if _, err := f.svc.ConfirmSelection(context.Background(), tenant, "case-1", sel); !errors.Is(err, access.ErrAccessDenied) {
			t.Fatalf("got %v, want ErrAccessDenied", err)
		}
	})

	t.Run("org admin may confirm", func(t *testing.T) {
		f := newFixture(t)
		sel := models.SelectedInterval{Interval: on(f.ny, 4, 14, 0, 16, 0)}
		conf, err := f.svc.ConfirmSelection(context.Background(), orgAdmin, "case-1", sel)
		if err != nil {
			t.Fatalf("ConfirmSelection: %v", err)
		}
		if conf.Decision.DecidedBy != "oa-7" || conf.Job.ContractorID != "con-1" {
			t.Errorf("confirmation = %+v", conf)
		}
	})

	t.Run("publisher failure does not fail the booking", func(t *testing.T) {
		f := newFixture(t)
		f.pub.err = errors.New("queue down")
		sel := models.SelectedInterval{Interval: on(f.ny, 4, 14, 0, 16, 0)}
		if _, err := f.svc.ConfirmSelection(context.Background(), contractor, "case-1", sel); err != nil {
			t.Fatalf("ConfirmSelection: %v", err)
		}
		if len(f.books.saved) != 1 {
			t.Error("job should still be saved")
		}
	})

	t.Run("reschedule keeps the job and ignores its old slot", func(t *testing.T) {
		f := newFixture(t)
		c := f.cases.byID["case-1"]
		c.CurrentJobID = "job-other"
		f.cases.byID["case-1"] = c

		sel := models.SelectedInterval{Interval: on(f.ny, 3, 9, 0, 11, 0)}
		conf, err := f.svc.ConfirmSelection(context.Background(), contractor, "case-1", sel)
		if err != nil {
			t.Fatalf("ConfirmSelection: %v", err)
		}
		if conf.Job.ID != "job-other" {
			t.Errorf("job id = %s, want job-other", conf.Job.ID)
		}
		if f.jobs.excluded[0] != "job-other" {
			t.Errorf("excluded = %v", f.jobs.excluded)
		}
	})
}

func TestDayGrid(t *testing.T) {
	f := newFixture(t)

	grid, err := f.svc.DayGrid(context.Background(), contractor, "case-1", "2025-03-03")
	if err != nil {
		t.Fatalf("DayGrid: %v", err)
	}
	if grid.Timezone != "America/New_York" {
		t.Errorf("timezone = %s", grid.Timezone)
	}
	if len(grid.Cells) != 32 {
		t.Fatalf("cells = %d, want 32", len(grid.Cells))
	}
	// 09:00 is tenant-available but the contractor is busy.
	if c := grid.Cells[6]; !c.TenantAvailable || !c.HasExistingJob || c.PerfectMatch {
		t.Errorf("09:00 cell = %+v", c)
	}
	// 10:30 is free on both sides.
	if c := grid.Cells[9]; !c.PerfectMatch {
		t.Errorf("10:30 cell = %+v", c)
	}
	if c := grid.Cells[0]; c.TenantAvailable || c.PerfectMatch {
		t.Errorf("06:00 cell = %+v", c)
	}

	if _, err := f.svc.DayGrid(context.Background(), contractor, "case-1", "03/03/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("bad date: got %v", err)
	}
}

func TestBookedInterval(t *testing.T) {
	slot := models.TimeInterval{Start: time.Date(2025, 3, 4, 14, 0, 0, 0, time.UTC), End: time.Date(2025, 3, 4, 16, 0, 0, 0, time.UTC)}

	tests := []struct {
		name     string
		duration int
		wantEnd  time.Time
	}{
		{"fits", 90, slot.Start.Add(90 * time.Minute)},
		{"clipped", 240, slot.End},
		{"whole slot", 0, slot.End},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bookedInterval(slot, tt.duration)
			if !got.Start.Equal(slot.Start) || !got.End.Equal(tt.wantEnd) {
				t.Errorf("got %v..%v", got.Start, got.End)
			}
		})
	}
}
