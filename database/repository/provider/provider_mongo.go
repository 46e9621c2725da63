package providerRepo

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fixitnow/config"
	"fixitnow/database"
	"fixitnow/models"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo() ProviderRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("providers")
	repo := &MongoProviderRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("provider repo: %v", err)
	}
	return repo
}

func (r *MongoProviderRepo) GetByID(id string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&provider); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) GetAll() ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve providers: %w", err)
	}
	defer cursor.Close(ctx)
	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

func (r *MongoProviderRepo) Create(p *models.Provider) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

func (r *MongoProviderRepo) Update(p *models.Provider) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": p.ID}, bson.M{"$set": p})
	if err != nil {
		return fmt.Errorf("failed to update provider with id %s: %w", p.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// QueryNear finds Verified providers offering the service within the
// radius, excluding the given ids. $geoNear must come first in the
// pipeline and yields candidates in ascending distance order.
func (r *MongoProviderRepo) QueryNear(q NearQuery) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if len(q.Location.Coordinates) != 2 {
		return nil, fmt.Errorf("invalid search center coordinates")
	}

	matchQuery := bson.M{
		"verificationStatus": models.StatusVerifiedAccount,
	}
	if q.ServiceID != "" {
		matchQuery["servicesOffered"] = q.ServiceID
	}
	if len(q.Excluded) > 0 {
		matchQuery["id"] = bson.M{"$nin": q.Excluded}
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$geoNear", Value: bson.D{
			{Key: "near", Value: bson.D{
				{Key: "type", Value: "Point"},
				{Key: "coordinates", Value: q.Location.Coordinates},
			}},
			{Key: "distanceField", Value: "distance"},
			{Key: "spherical", Value: true},
			{Key: "maxDistance", Value: q.RadiusMeters},
			{Key: "query", Value: matchQuery},
		}}},
	}
	if q.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: q.Limit}})
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("geospatial query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

func (r *MongoProviderRepo) UpdateLastAssigned(id string, t time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"lastAssignedAt": t}})
	if err != nil {
		return fmt.Errorf("failed to stamp last assignment for provider %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProviderRepo) UpdateAvailability(id string, entries []models.AvailabilityEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{"availability": entries, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update availability for provider %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProviderRepo) UpdateVerificationStatus(id string, status string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{"verificationStatus": status, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update verification status for provider %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProviderRepo) CountByVerification(status string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	count, err := r.coll.CountDocuments(ctx, bson.M{"verificationStatus": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count providers: %w", err)
	}
	return count, nil
}

// ensureIndexes creates indexes for frequently used fields in queries.
func (r *MongoProviderRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "locationGeo", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "servicesOffered", Value: 1}}},
		{Keys: bson.D{{Key: "verificationStatus", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
