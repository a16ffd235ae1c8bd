package staffRepo

import (
	"context"
	"fmt"
	"time"

	"glowbook/database"
	"glowbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStaffRepo implements StaffRepository using MongoDB.
type MongoStaffRepo struct {
	coll *mongo.Collection
}

// NewMongoStaffRepo creates a new instance of StaffRepository using MongoDB.
func NewMongoStaffRepo() StaffRepository {
	coll := database.Collection("staff")
	return &MongoStaffRepo{coll: coll}
}

func (r *MongoStaffRepo) GetByID(ctx context.Context, id string) (*models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var staff models.Staff
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&staff); err != nil {
		return nil, fmt.Errorf("failed to fetch staff with id %s: %w", id, err)
	}
	return &staff, nil
}

func (r *MongoStaffRepo) GetAll(ctx context.Context) ([]models.Staff, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoStaffRepo) GetByServiceID(ctx context.Context, serviceID string) ([]models.Staff, error) {
	return r.find(ctx, bson.M{"service_id": serviceID})
}

func (r *MongoStaffRepo) find(ctx context.Context, filter bson.M) ([]models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve staff: %w", err)
	}
	defer cursor.Close(ctx)

	var all []models.Staff
	for cursor.Next(ctx) {
		var s models.Staff
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode staff: %w", err)
		}
		all = append(all, s)
	}
	return all, cursor.Err()
}
