package jobRepo

import (
	"context"

	"propcare/models"
)

// JobRepository is the contractor schedule source.
type JobRepository interface {
	// ListScheduledJobs returns the contractor's live commitments, leaving out
	// excludeJobID when it is set.
	ListScheduledJobs(ctx context.Context, contractorID, excludeJobID string) ([]models.ScheduledJob, error)
	GetByID(ctx context.Context, id string) (*models.ScheduledJob, error)
}
