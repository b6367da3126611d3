package orgRepo

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

type MongoOrgRepo struct {
	coll *mongo.Collection
}

func NewMongoOrgRepo() OrgRepository {
	repo := &MongoOrgRepo{coll: database.DB().Collection("organizations")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	idx := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := repo.coll.Indexes().CreateOne(ctx, idx); err != nil {
		fmt.Printf("failed to create organization index: %v\n", err)
	}
	return repo
}

func (r *MongoOrgRepo) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var org models.Organization
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&org); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("error fetching organization %s: %w", id, err)
	}
	return &org, nil
}

func (r *MongoOrgRepo) OrgExists(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking organization %s: %w", id, err)
	}
	return n > 0, nil
}
