package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("booking repo: %v", err)
	}
	return repo
}

func (r *MongoBookingRepo) Create(b *models.Booking) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) GetByUser(userID string) ([]models.Booking, error) {
	return r.find(bson.M{"userId": userID})
}

func (r *MongoBookingRepo) GetProviderPool(providerID string) ([]models.Booking, error) {
	// Assigned jobs plus the open request pool.
	return r.find(bson.M{"$or": bson.A{
		bson.M{"providerId": providerID},
		bson.M{"providerId": "", "status": models.StatusPending},
	}})
}

func (r *MongoBookingRepo) find(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)
	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// CompareAndSwap writes b keyed on the booking's prior status and
// provider. A matched count of zero means either a lost race or a
// missing document; the two are distinguished with a follow-up lookup.
func (r *MongoBookingRepo) CompareAndSwap(b *models.Booking, expectStatus models.BookingStatus, expectProviderID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{
		"id":         b.ID,
		"status":     expectStatus,
		"providerId": expectProviderID,
	}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": b})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", b.ID, err)
	}
	if result.MatchedCount == 0 {
		count, err := r.coll.CountDocuments(ctx, bson.M{"id": b.ID})
		if err != nil {
			return fmt.Errorf("failed to check booking with id %s: %w", b.ID, err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

func (r *MongoBookingRepo) UpdateSeen(id string, role models.Role, seen bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	field := "userSeen"
	if role == models.RoleProvider {
		field = "providerSeen"
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{field: seen}})
	if err != nil {
		return fmt.Errorf("failed to update seen flag for booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepo) CountByStatus(status models.BookingStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	count, err := r.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// ensureIndexes creates indexes for frequently used fields in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
