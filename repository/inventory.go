package repository

import (
	"context"
	"fmt"
	"os"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InventoryRepo struct {
	MongoCollection *mongo.Collection
}

func GetInventoryRepo(client *mongo.Client) *InventoryRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("INVENTORY_COLLECTION")
	return &InventoryRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *InventoryRepo) InsertItem(ctx context.Context, item *model.InventoryItem) error {
	timer := utils.TrackDBOperation("insert", "inventory")
	defer timer.ObserveDuration()

	if item.OwnerID == "" {
		return fmt.Errorf("owner ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, item)
	if err != nil {
		utils.TrackError("database", "inventory_insert_failed")
		return fmt.Errorf("failed to insert inventory item: %w", err)
	}
	return nil
}

// FindItem is owner-scoped: an item belonging to another subject is
// reported as absent, not as forbidden.
func (r *InventoryRepo) FindItem(ctx context.Context, itemID, ownerID string) (*model.InventoryItem, error) {
	timer := utils.TrackDBOperation("find", "inventory")
	defer timer.ObserveDuration()

	var item model.InventoryItem
	err := r.MongoCollection.FindOne(ctx, bson.M{
		"item_id":  itemID,
		"owner_id": ownerID,
	}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "inventory_fetch_failed")
		return nil, fmt.Errorf("failed to fetch inventory item: %w", err)
	}
	return &item, nil
}

func (r *InventoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.InventoryItem, error) {
	timer := utils.TrackDBOperation("find", "inventory")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*model.InventoryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode inventory items: %w", err)
	}
	return items, nil
}
