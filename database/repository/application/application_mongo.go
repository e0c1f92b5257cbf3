package applicationRepo

import (
	"context"
	"fmt"
	"time"

	"tiffinpro/database"
	"tiffinpro/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoApplicationRepo implements ApplicationRepository using MongoDB.
type MongoApplicationRepo struct {
	coll *mongo.Collection
}

// NewMongoApplicationRepo creates a new instance of ApplicationRepository using MongoDB.
func NewMongoApplicationRepo() ApplicationRepository {
	coll := database.DB().Collection("applications")
	repo := &MongoApplicationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoApplicationRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customerId", Value: 1}}},
		{Keys: bson.D{{Key: "serviceId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new application document.
func (r *MongoApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, app); err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// GetByID retrieves an application by its unique ID.
func (r *MongoApplicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var app models.Application
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&app); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch application with id %s: %w", id, err)
	}
	return &app, nil
}

func (r *MongoApplicationRepo) list(ctx context.Context, filter bson.M) ([]models.Application, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "appliedAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve applications: %w", err)
	}
	defer cursor.Close(ctx)

	var apps []models.Application
	for cursor.Next(ctx) {
		var a models.Application
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, cursor.Err()
}

// ListByCustomer returns the customer's applications, newest first.
func (r *MongoApplicationRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Application, error) {
	return r.list(ctx, bson.M{"customerId": customerID})
}

// ListByService returns all applications referencing the service.
func (r *MongoApplicationRepo) ListByService(ctx context.Context, serviceID string) ([]models.Application, error) {
	return r.list(ctx, bson.M{"serviceId": serviceID})
}

// UpdateStatus overwrites the status field.
func (r *MongoApplicationRepo) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update application with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("application with id %s not found", id)
	}
	return nil
}
