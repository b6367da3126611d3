package casesRepo

import (
	"context"
	"fmt"
	"time"

	"propcare/database"
	"propcare/models"
	"propcare/services/access"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCaseRepo struct {
	coll *mongo.Collection
}

func NewMongoCaseRepo() CaseRepository {
	repo := &MongoCaseRepo{coll: database.DB().Collection("cases")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create case indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCaseRepo) GetByID(ctx context.Context, id string) (*models.MaintenanceCase, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c models.MaintenanceCase
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("error fetching case %s: %w", id, err)
	}
	return &c, nil
}

func (r *MongoCaseRepo) ListScoped(ctx context.Context, scope access.Scope, limit int64) ([]models.MaintenanceCase, error) {
	filter, err := ScopeFilter(scope)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, filter, limit)
}

func (r *MongoCaseRepo) ListMarketplace(ctx context.Context, specialtyIDs []string, limit int64) ([]models.MaintenanceCase, error) {
	return r.find(ctx, MarketplaceFilter(specialtyIDs), limit)
}

func (r *MongoCaseRepo) find(ctx context.Context, filter bson.M, limit int64) ([]models.MaintenanceCase, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing cases: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.MaintenanceCase
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding cases: %w", err)
	}
	return out, nil
}

func (r *MongoCaseRepo) AssignedPropertyIDs(ctx context.Context, contractorID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "property_id", bson.M{"assigned_contractor_id": contractorID})
	if err != nil {
		return nil, fmt.Errorf("error listing properties for contractor %s: %w", contractorID, err)
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

func (r *MongoCaseRepo) Create(ctx context.Context, c *models.MaintenanceCase) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("error creating case: %w", err)
	}
	return nil
}
