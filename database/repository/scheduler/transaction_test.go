package schedulerRepo

import (
	"testing"
	"time"

	"propcare/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCaseUpdate(t *testing.T) {
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	set, ok := caseUpdate("job-1", now)["$set"].(bson.M)
	if !ok {
		t.Fatal("expected a $set document")
	}
	if set["status"] != models.CaseScheduled || set["current_job_id"] != "job-1" || set["updated_at"] != now {
		t.Errorf("update = %v", set)
	}
}
