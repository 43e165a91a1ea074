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

type ActivitiesRepo struct {
	MongoCollection *mongo.Collection
}

func GetActivitiesRepo(client *mongo.Client) *ActivitiesRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("ACTIVITIES_COLLECTION")
	return &ActivitiesRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *ActivitiesRepo) InsertActivity(ctx context.Context, activity *model.Activity) error {
	timer := utils.TrackDBOperation("insert", "activities")
	defer timer.ObserveDuration()

	if activity.SessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, activity)
	if err != nil {
		utils.TrackError("database", "activity_insert_failed")
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// FindActivity is session-scoped so a subject can only touch
// activities belonging to their own visit.
func (r *ActivitiesRepo) FindActivity(ctx context.Context, activityID, sessionID string) (*model.Activity, error) {
	timer := utils.TrackDBOperation("find", "activities")
	defer timer.ObserveDuration()

	var activity model.Activity
	err := r.MongoCollection.FindOne(ctx, bson.M{
		"activity_id": activityID,
		"session_id":  sessionID,
	}).Decode(&activity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "activity_fetch_failed")
		return nil, fmt.Errorf("failed to fetch activity: %w", err)
	}
	return &activity, nil
}

func (r *ActivitiesRepo) FinishActivity(ctx context.Context, activityID, state, closingNote, closingPhoto string, endedAt time.Time) error {
	timer := utils.TrackDBOperation("update", "activities")
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"state":         state,
			"closing_note":  closingNote,
			"closing_photo": closingPhoto,
			"ended_at":      endedAt,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"activity_id": activityID}, update)
	if err != nil {
		utils.TrackError("database", "activity_update_failed")
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("activity not found")
	}
	return nil
}

func (r *ActivitiesRepo) CountOpen(ctx context.Context, sessionID string) (int64, error) {
	timer := utils.TrackDBOperation("count", "activities")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"session_id": sessionID,
		"state":      model.ActivityOpen,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count open activities: %w", err)
	}
	return count, nil
}

func (r *ActivitiesRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.Activity, error) {
	timer := utils.TrackDBOperation("find", "activities")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer cursor.Close(ctx)

	var activities []*model.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return activities, nil
}
