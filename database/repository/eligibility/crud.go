package eligibilityRepo

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

type MongoEligibilityRepo struct {
	favorites   *mongo.Collection
	links       *mongo.Collection
	contractors *mongo.Collection
}

func NewMongoEligibilityRepo() EligibilityRepository {
	db := database.DB()
	repo := &MongoEligibilityRepo{
		favorites:   db.Collection("favorites"),
		links:       db.Collection("org_links"),
		contractors: db.Collection("contractors"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create eligibility indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func pairFilter(orgID, contractorID string) bson.M {
	return bson.M{"org_id": orgID, "contractor_id": contractorID}
}

func (r *MongoEligibilityRepo) IsFavorite(ctx context.Context, orgID, contractorID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.favorites.CountDocuments(ctx, pairFilter(orgID, contractorID), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking favorite: %w", err)
	}
	return n > 0, nil
}

func (r *MongoEligibilityRepo) HasActiveOrgLink(ctx context.Context, orgID, contractorID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := pairFilter(orgID, contractorID)
	filter["active"] = true
	n, err := r.links.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking org link: %w", err)
	}
	return n > 0, nil
}

// SpecialtiesOf returns nil for an unknown contractor, which matches only
// untagged cases.
func (r *MongoEligibilityRepo) SpecialtiesOf(ctx context.Context, contractorID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.ContractorProfile
	err := r.contractors.FindOne(ctx, bson.M{"id": contractorID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching contractor %s: %w", contractorID, err)
	}
	return profile.SpecialtyIDs, nil
}

func (r *MongoEligibilityRepo) SetFavorite(ctx context.Context, orgID, contractorID string, favorite bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if !favorite {
		if _, err := r.favorites.DeleteOne(ctx, pairFilter(orgID, contractorID)); err != nil {
			return fmt.Errorf("error removing favorite: %w", err)
		}
		return nil
	}
	update := bson.M{"$setOnInsert": models.Favorite{OrgID: orgID, ContractorID: contractorID, CreatedAt: time.Now()}}
	if _, err := r.favorites.UpdateOne(ctx, pairFilter(orgID, contractorID), update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("error saving favorite: %w", err)
	}
	return nil
}

func (r *MongoEligibilityRepo) SetOrgLink(ctx context.Context, orgID, contractorID string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set":         bson.M{"active": active},
		"$setOnInsert": bson.M{"created_at": time.Now()},
	}
	if _, err := r.links.UpdateOne(ctx, pairFilter(orgID, contractorID), update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("error saving org link: %w", err)
	}
	return nil
}
