package jobRepo

import (
	"reflect"
	"testing"

	"propcare/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestScheduleFilter(t *testing.T) {
	got := scheduleFilter("con-1", "job-9")
	want := bson.M{
		"contractor_id": "con-1",
		"status":        bson.M{"$in": []models.JobStatus{models.JobScheduled, models.JobInProgress}},
		"id":            bson.M{"$ne": "job-9"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("filter = %v, want %v", got, want)
	}

	if _, ok := scheduleFilter("con-1", "")["id"]; ok {
		t.Errorf("no exclusion expected without a job id")
	}
}
