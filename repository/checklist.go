package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChecklistRepo struct {
	MongoCollection *mongo.Collection
}

func GetChecklistRepo(client *mongo.Client) *ChecklistRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("CHECKLIST_COLLECTION")
	return &ChecklistRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureIndexes backs the (session, item) uniqueness the reactivation
// semantics depend on.
func (r *ChecklistRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.MongoCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "item_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create checklist indexes: %w", err)
	}
	return nil
}

func (r *ChecklistRepo) FindEntry(ctx context.Context, sessionID, itemID string) (*model.ChecklistEntry, error) {
	timer := utils.TrackDBOperation("find", "checklist")
	defer timer.ObserveDuration()

	var entry model.ChecklistEntry
	err := r.MongoCollection.FindOne(ctx, bson.M{
		"session_id": sessionID,
		"item_id":    itemID,
	}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "checklist_fetch_failed")
		return nil, fmt.Errorf("failed to fetch checklist entry: %w", err)
	}
	return &entry, nil
}

func (r *ChecklistRepo) InsertEntry(ctx context.Context, entry *model.ChecklistEntry) error {
	timer := utils.TrackDBOperation("insert", "checklist")
	defer timer.ObserveDuration()

	if entry.SessionID == "" || entry.ItemID == "" {
		return fmt.Errorf("invalid checklist entry: missing required fields")
	}

	_, err := r.MongoCollection.InsertOne(ctx, entry)
	if err != nil {
		utils.TrackError("database", "checklist_insert_failed")
		return fmt.Errorf("failed to insert checklist entry: %w", err)
	}
	return nil
}

func (r *ChecklistRepo) SetEntryStatus(ctx context.Context, entryID, status, notes, evidencePhoto string) error {
	timer := utils.TrackDBOperation("update", "checklist")
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"status":         status,
			"notes":          notes,
			"evidence_photo": evidencePhoto,
			"updated_at":     time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"entry_id": entryID}, update)
	if err != nil {
		utils.TrackError("database", "checklist_update_failed")
		return fmt.Errorf("failed to update checklist entry: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("checklist entry not found")
	}
	return nil
}

func (r *ChecklistRepo) CountPresent(ctx context.Context, sessionID string) (int64, error) {
	timer := utils.TrackDBOperation("count", "checklist")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"session_id": sessionID,
		"status":     model.EntryPresent,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count checklist entries: %w", err)
	}
	return count, nil
}

func (r *ChecklistRepo) ListEntries(ctx context.Context, sessionID string) ([]*model.ChecklistEntry, error) {
	timer := utils.TrackDBOperation("find", "checklist")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*model.ChecklistEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode checklist entries: %w", err)
	}
	return entries, nil
}
