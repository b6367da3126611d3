package schedulerRepo

import (
	"context"
	"errors"

	"propcare/models"
)

var ErrCaseNotFound = errors.New("case to schedule not found")

// SchedulerRepository writes a booked appointment.
type SchedulerRepository interface {
	// BookJob upserts the job and points its case at it in one transaction.
	BookJob(ctx context.Context, job models.ScheduledJob) error
}
