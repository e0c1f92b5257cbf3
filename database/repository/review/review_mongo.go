package reviewRepo

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

// MongoReviewRepo implements ReviewRepository using MongoDB. It holds both
// the reviews and services collections because the rating aggregate lives on
// the service document and is updated in the same transaction as the review
// insert.
type MongoReviewRepo struct {
	client   *mongo.Client
	reviews  *mongo.Collection
	services *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	db := database.DB()
	repo := &MongoReviewRepo{
		client:   database.MongoClient,
		reviews:  db.Collection("reviews"),
		services: db.Collection("services"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "serviceId", Value: 1}}},
		{Keys: bson.D{{Key: "serviceId", Value: 1}, {Key: "customerId", Value: 1}}},
	}

	_, err := r.reviews.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Exists reports whether the customer already reviewed the service.
func (r *MongoReviewRepo) Exists(ctx context.Context, serviceID, customerID string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	count, err := r.reviews.CountDocuments(ctx, bson.M{"serviceId": serviceID, "customerId": customerID})
	if err != nil {
		return false, fmt.Errorf("failed to check review existence: %w", err)
	}
	return count > 0, nil
}

// ListByService returns the reviews for a service, newest first.
func (r *MongoReviewRepo) ListByService(ctx context.Context, serviceID string) ([]models.Review, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.reviews.Find(ctx, bson.M{"serviceId": serviceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews for service %s: %w", serviceID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	for cursor.Next(ctx) {
		var rv models.Review
		if err := cursor.Decode(&rv); err != nil {
			return nil, fmt.Errorf("failed to decode review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, cursor.Err()
}

// aggregate computes average and count over all reviews for the service.
// Must run inside the same session as the insert when called transactionally.
func (r *MongoReviewRepo) aggregate(ctx context.Context, serviceID string) (models.ServiceRatings, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "serviceId", Value: serviceID}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.reviews.Aggregate(ctx, pipeline)
	if err != nil {
		return models.ServiceRatings{}, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Average float64 `bson:"average"`
		Count   int     `bson:"count"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return models.ServiceRatings{}, fmt.Errorf("failed to decode rating aggregate: %w", err)
		}
	}
	return models.ServiceRatings{Average: result.Average, Count: result.Count}, nil
}

// SubmitAndRecompute inserts the review and refreshes the service's rating
// aggregate atomically.
func (r *MongoReviewRepo) SubmitAndRecompute(ctx context.Context, review *models.Review) (models.ServiceRatings, error) {
	ctx, cancel := newContext(ctx, 15*time.Second)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return models.ServiceRatings{}, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.reviews.InsertOne(sc, review); err != nil {
			return nil, fmt.Errorf("failed to insert review: %w", err)
		}

		ratings, err := r.aggregate(sc, review.ServiceID)
		if err != nil {
			return nil, err
		}

		update := bson.M{"$set": bson.M{"ratings": ratings, "updatedAt": time.Now()}}
		res, err := r.services.UpdateOne(sc, bson.M{"id": review.ServiceID}, update)
		if err != nil {
			return nil, fmt.Errorf("failed to update service ratings: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, fmt.Errorf("service with id %s not found", review.ServiceID)
		}
		return ratings, nil
	})
	if err != nil {
		return models.ServiceRatings{}, err
	}
	return result.(models.ServiceRatings), nil
}

// Recompute rebuilds the service's rating aggregate outside a submission.
func (r *MongoReviewRepo) Recompute(ctx context.Context, serviceID string) (models.ServiceRatings, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	ratings, err := r.aggregate(ctx, serviceID)
	if err != nil {
		return models.ServiceRatings{}, err
	}

	update := bson.M{"$set": bson.M{"ratings": ratings}}
	if _, err := r.services.UpdateOne(ctx, bson.M{"id": serviceID}, update); err != nil {
		return models.ServiceRatings{}, fmt.Errorf("failed to write recomputed ratings: %w", err)
	}
	return ratings, nil
}
