package jobRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"propcare/database"
	"propcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrJobNotFound = errors.New("job not found")

// activeStatuses are the job states that occupy a contractor's time.
var activeStatuses = []models.JobStatus{models.JobScheduled, models.JobInProgress}

type MongoJobRepo struct {
	coll *mongo.Collection
}

func NewMongoJobRepo() JobRepository {
	repo := &MongoJobRepo{coll: database.DB().Collection("jobs")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create job indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// scheduleFilter is the query behind ListScheduledJobs.
func scheduleFilter(contractorID, excludeJobID string) bson.M {
	filter := bson.M{
		"contractor_id": contractorID,
		"status":        bson.M{"$in": activeStatuses},
	}
	if excludeJobID != "" {
		filter["id"] = bson.M{"$ne": excludeJobID}
	}
	return filter
}

func (r *MongoJobRepo) ListScheduledJobs(ctx context.Context, contractorID, excludeJobID string) ([]models.ScheduledJob, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, scheduleFilter(contractorID, excludeJobID), opts)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs for contractor %s: %w", contractorID, err)
	}
	defer cursor.Close(ctx)

	var jobs []models.ScheduledJob
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("error decoding jobs: %w", err)
	}
	return jobs, nil
}

func (r *MongoJobRepo) GetByID(ctx context.Context, id string) (*models.ScheduledJob, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var job models.ScheduledJob
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("error fetching job %s: %w", id, err)
	}
	return &job, nil
}
