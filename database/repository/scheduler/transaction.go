package schedulerRepo

import (
	"context"
	"fmt"
	"time"

	"propcare/database"
	"propcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoSchedulerRepo struct {
	jobColl  *mongo.Collection
	caseColl *mongo.Collection
}

func NewMongoSchedulerRepo() SchedulerRepository {
	db := database.DB()
	return &MongoSchedulerRepo{
		jobColl:  db.Collection("jobs"),
		caseColl: db.Collection("cases"),
	}
}

// caseUpdate marks a case scheduled against jobID.
func caseUpdate(jobID string, now time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"status":         models.CaseScheduled,
		"current_job_id": jobID,
		"updated_at":     now,
	}}
}

func (repo *MongoSchedulerRepo) BookJob(ctx context.Context, job models.ScheduledJob) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := repo.jobColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		opts := options.Replace().SetUpsert(true)
		if _, err := repo.jobColl.ReplaceOne(sc, bson.M{"id": job.ID}, job, opts); err != nil {
			return fmt.Errorf("save job failed: %w", err)
		}

		res, err := repo.caseColl.UpdateOne(sc, bson.M{"id": job.CaseID}, caseUpdate(job.ID, time.Now()))
		if err != nil {
			return fmt.Errorf("update case failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrCaseNotFound
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}
