package propertyRepo

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

type MongoPropertyRepo struct {
	coll *mongo.Collection
}

func NewMongoPropertyRepo() PropertyRepository {
	repo := &MongoPropertyRepo{coll: database.DB().Collection("properties")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create property indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ScopeFilter turns a resolved property scope into a query.
func ScopeFilter(scope access.Scope, assignedPropertyIDs []string) (bson.M, error) {
	if scope.Resource != access.ResourceProperty {
		return nil, fmt.Errorf("%w: %s scope used for properties", access.ErrAccessDenied, scope.Resource)
	}
	switch scope.Kind {
	case access.ScopeAll:
		return bson.M{}, nil
	case access.ScopeOrg:
		if scope.OrgID == "" {
			return nil, access.ErrAccessDenied
		}
		return bson.M{"org_id": scope.OrgID}, nil
	case access.ScopeTenant:
		if scope.UserID == "" {
			return nil, access.ErrAccessDenied
		}
		return bson.M{"units.tenant_ids": scope.UserID}, nil
	case access.ScopeContractor:
		ids := bson.A{}
		for _, id := range assignedPropertyIDs {
			ids = append(ids, id)
		}
		return bson.M{"id": bson.M{"$in": ids}}, nil
	}
	return nil, access.ErrAccessDenied
}

func (r *MongoPropertyRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Property
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("error fetching property %s: %w", id, err)
	}
	return &p, nil
}

func (r *MongoPropertyRepo) ListScoped(ctx context.Context, scope access.Scope, assignedPropertyIDs []string, limit int64) ([]models.Property, error) {
	filter, err := ScopeFilter(scope, assignedPropertyIDs)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing properties: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Property
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding properties: %w", err)
	}
	return out, nil
}
