package tasks

import (
	"testing"
	"time"

	"propcare/models"

	"github.com/hibiken/asynq"
)

func TestDecisionTaskRoundTrip(t *testing.T) {
	start := time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC)
	d := models.ScheduleDecision{
		ID:       "dec-1",
		Kind:     models.DecisionTopMatchAccepted,
		CaseID:   "case-1",
		OrgID:    "org-7",
		Interval: models.TimeInterval{Start: start, End: start.Add(time.Hour)},
		Recipients: []models.Recipient{
			{UserID: "ten-1", OrgID: "org-7"},
		},
	}

	task, opts, err := NewDecisionTask(d)
	if err != nil {
		t.Fatalf("NewDecisionTask: %v", err)
	}
	if task.Type() != TypeDecisionFanout {
		t.Errorf("type = %q", task.Type())
	}
	if len(opts) != 3 {
		t.Errorf("expected retry, queue and task id options, got %d", len(opts))
	}

	got, err := ParseDecisionTask(task)
	if err != nil {
		t.Fatalf("ParseDecisionTask: %v", err)
	}
	if got.ID != d.ID || !got.Interval.Start.Equal(start) || len(got.Recipients) != 1 {
		t.Errorf("decoded %+v", got)
	}
}

func TestParseDecisionTaskRejectsOtherTypes(t *testing.T) {
	if _, err := ParseDecisionTask(asynq.NewTask("reminder:send", []byte("{}"))); err == nil {
		t.Fatal("expected error for foreign task type")
	}
	if _, err := ParseDecisionTask(asynq.NewTask(TypeDecisionFanout, []byte("{"))); err == nil {
		t.Fatal("expected error for bad payload")
	}
}
