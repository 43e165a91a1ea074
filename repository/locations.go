package repository

import (
	"context"
	"fmt"
	"os"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LocationsRepo reads the zone catalog. Rows are written by the
// external sync job, never by this service.
type LocationsRepo struct {
	MongoCollection *mongo.Collection
}

func GetLocationsRepo(client *mongo.Client) *LocationsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("LOCATIONS_COLLECTION")
	return &LocationsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *LocationsRepo) FindByQRCode(ctx context.Context, code string) (*model.Location, error) {
	timer := utils.TrackDBOperation("find", "locations")
	defer timer.ObserveDuration()

	if code == "" {
		return nil, fmt.Errorf("QR code cannot be empty")
	}

	var location model.Location
	err := r.MongoCollection.FindOne(ctx, bson.M{
		"qr_code": code,
		"active":  true,
	}).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "location_fetch_failed")
		return nil, fmt.Errorf("failed to fetch location: %w", err)
	}
	return &location, nil
}

func (r *LocationsRepo) FindByID(ctx context.Context, locationID string) (*model.Location, error) {
	timer := utils.TrackDBOperation("find", "locations")
	defer timer.ObserveDuration()

	var location model.Location
	err := r.MongoCollection.FindOne(ctx, bson.M{"location_id": locationID}).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch location: %w", err)
	}
	return &location, nil
}
