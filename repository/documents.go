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

type DocumentsRepo struct {
	MongoCollection *mongo.Collection
}

func GetDocumentsRepo(client *mongo.Client) *DocumentsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("DOCUMENTS_COLLECTION")
	return &DocumentsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *DocumentsRepo) InsertDocument(ctx context.Context, doc *model.Document) error {
	timer := utils.TrackDBOperation("insert", "documents")
	defer timer.ObserveDuration()

	if doc.UserID == "" || doc.SessionID == "" {
		return fmt.Errorf("invalid document: missing required fields")
	}

	_, err := r.MongoCollection.InsertOne(ctx, doc)
	if err != nil {
		utils.TrackError("database", "document_insert_failed")
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

func (r *DocumentsRepo) ListByUser(ctx context.Context, userID string) ([]*model.Document, error) {
	timer := utils.TrackDBOperation("find", "documents")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*model.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}
