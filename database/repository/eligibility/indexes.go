package eligibilityRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoEligibilityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pair := mongo.IndexModel{
		Keys:    bson.D{{Key: "org_id", Value: 1}, {Key: "contractor_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.favorites.Indexes().CreateOne(ctx, pair); err != nil {
		return fmt.Errorf("failed to create favorite index: %w", err)
	}
	if _, err := r.links.Indexes().CreateOne(ctx, pair); err != nil {
		return fmt.Errorf("failed to create org link index: %w", err)
	}
	profile := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := r.contractors.Indexes().CreateOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to create contractor index: %w", err)
	}
	return nil
}
