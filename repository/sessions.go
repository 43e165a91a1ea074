package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"main/model"
	"main/services"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionsRepo struct {
	Client          *mongo.Client
	MongoCollection *mongo.Collection
	UsersCollection *mongo.Collection
}

func GetSessionsRepo(client *mongo.Client) *SessionsRepo {
	dbName := os.Getenv("MONGO_DB")
	return &SessionsRepo{
		Client:          client,
		MongoCollection: client.Database(dbName).Collection(os.Getenv("SESSIONS_COLLECTION")),
		UsersCollection: client.Database(dbName).Collection(os.Getenv("USERS_COLLECTION")),
	}
}

// EnsureIndexes creates the partial unique index that enforces "one
// non-closed session per subject" at the storage layer. An existence
// check before insert is not atomic; this index is what actually
// arbitrates concurrent opens.
func (r *SessionsRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.MongoCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "subject_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"state": bson.M{"$in": bson.A{model.StatePendingChecklist, model.StateActive}},
				}),
		},
		{
			Keys: bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "subject_id", Value: 1}, {Key: "entry_at", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	return nil
}

func (r *SessionsRepo) CreateSession(ctx context.Context, session *model.ZoneSession) error {
	timer := utils.TrackDBOperation("insert", "sessions")
	defer timer.ObserveDuration()

	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if session.SessionID == "" || session.SubjectID == "" {
		return fmt.Errorf("invalid session data: missing required fields")
	}

	_, err := r.MongoCollection.InsertOne(ctx, session)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// A concurrent open won the race for the subject slot.
			return services.ErrConflict
		}
		utils.TrackError("database", "session_creation_failed")
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionsRepo) FindActiveBySubject(ctx context.Context, subjectID string) (*model.ZoneSession, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	if subjectID == "" {
		return nil, fmt.Errorf("subjectID cannot be empty")
	}

	var session model.ZoneSession
	err := r.MongoCollection.FindOne(ctx, bson.M{
		"subject_id": subjectID,
		"state":      bson.M{"$ne": model.StateClosed},
	}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "session_fetch_failed")
		return nil, fmt.Errorf("failed to fetch active session: %w", err)
	}
	return &session, nil
}

func (r *SessionsRepo) FindByID(ctx context.Context, sessionID string) (*model.ZoneSession, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	if sessionID == "" {
		return nil, fmt.Errorf("sessionID cannot be empty")
	}

	var session model.ZoneSession
	err := r.MongoCollection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "session_fetch_failed")
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	return &session, nil
}

func (r *SessionsRepo) UpdateSession(ctx context.Context, session *model.ZoneSession) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	update := bson.M{
		"$set": bson.M{
			"state":        session.State,
			"exit_at":      session.ExitAt,
			"closure_note": session.ClosureNote,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"session_id": session.SessionID}, update)
	if err != nil {
		utils.TrackError("database", "session_update_failed")
		return fmt.Errorf("failed to update session: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

func (r *SessionsRepo) LinkDocument(ctx context.Context, sessionID, kind, documentID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	field := "entry_document_id"
	if kind == model.DocumentExit {
		field = "exit_document_id"
	}

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{field: documentID}},
	)
	if err != nil {
		return fmt.Errorf("failed to link document: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

// Reactivate reopens a closed session and rewrites the subject's
// workday cutoff inside one transaction. The expiry guard reads both
// rows; it must never observe the new cutoff with the old entry time
// or vice versa.
func (r *SessionsRepo) Reactivate(ctx context.Context, sessionID, cutoff string, entryAt time.Time) (*model.ZoneSession, error) {
	timer := utils.TrackDBOperation("transaction", "sessions")
	defer timer.ObserveDuration()

	mongoSession, err := r.Client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer mongoSession.EndSession(ctx)

	result, err := mongoSession.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var session model.ZoneSession
		if err := r.MongoCollection.FindOne(sc, bson.M{"session_id": sessionID}).Decode(&session); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, services.ErrNotFound
			}
			return nil, err
		}

		if _, err := r.UsersCollection.UpdateOne(sc,
			bson.M{"user_id": session.SubjectID},
			bson.M{"$set": bson.M{"workday_cutoff": cutoff}},
		); err != nil {
			return nil, err
		}

		update := bson.M{
			"$set": bson.M{
				"state":    model.StateActive,
				"entry_at": entryAt,
			},
			"$unset": bson.M{
				"exit_at":          "",
				"exit_document_id": "",
				"closure_note":     "",
			},
		}
		if _, err := r.MongoCollection.UpdateOne(sc, bson.M{"session_id": sessionID}, update); err != nil {
			return nil, err
		}

		session.State = model.StateActive
		session.EntryAt = entryAt
		session.ExitAt = nil
		session.ExitDocumentID = ""
		session.ClosureNote = ""
		return &session, nil
	})
	if err != nil {
		utils.TrackError("database", "session_reactivation_failed")
		return nil, err
	}

	return result.(*model.ZoneSession), nil
}

func (r *SessionsRepo) ListBySubject(ctx context.Context, subjectID string) ([]*model.ZoneSession, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "entry_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"subject_id": subjectID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*model.ZoneSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}

func (r *SessionsRepo) ListActive(ctx context.Context) ([]*model.ZoneSession, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"state": bson.M{"$ne": model.StateClosed}})
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*model.ZoneSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}
