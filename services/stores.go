package services

import (
	"context"
	"time"

	"main/model"
)

// Storage contracts consumed by the services. The Mongo
// implementations live in the repository package; tests provide
// in-memory fakes.

type SessionStore interface {
	CreateSession(ctx context.Context, session *model.ZoneSession) error
	// FindActiveBySubject returns the subject's single non-closed
	// session, or nil when the subject is free.
	FindActiveBySubject(ctx context.Context, subjectID string) (*model.ZoneSession, error)
	FindByID(ctx context.Context, sessionID string) (*model.ZoneSession, error)
	UpdateSession(ctx context.Context, session *model.ZoneSession) error
	// LinkDocument attaches an archived record reference without
	// touching lifecycle fields; the record is generated after the
	// transition commits and must not overwrite later state.
	LinkDocument(ctx context.Context, sessionID, kind, documentID string) error
	// Reactivate reopens a closed session and rewrites the subject's
	// workday cutoff in one transaction, so a concurrent expiry check
	// sees both writes or neither.
	Reactivate(ctx context.Context, sessionID, cutoff string, entryAt time.Time) (*model.ZoneSession, error)
	ListBySubject(ctx context.Context, subjectID string) ([]*model.ZoneSession, error)
	ListActive(ctx context.Context) ([]*model.ZoneSession, error)
}

type ChecklistStore interface {
	FindEntry(ctx context.Context, sessionID, itemID string) (*model.ChecklistEntry, error)
	InsertEntry(ctx context.Context, entry *model.ChecklistEntry) error
	SetEntryStatus(ctx context.Context, entryID, status, notes, evidencePhoto string) error
	CountPresent(ctx context.Context, sessionID string) (int64, error)
	ListEntries(ctx context.Context, sessionID string) ([]*model.ChecklistEntry, error)
}

type InventoryStore interface {
	InsertItem(ctx context.Context, item *model.InventoryItem) error
	// FindItem looks an item up scoped to its owner; nil when absent
	// or owned by someone else.
	FindItem(ctx context.Context, itemID, ownerID string) (*model.InventoryItem, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.InventoryItem, error)
}

type ActivityStore interface {
	InsertActivity(ctx context.Context, activity *model.Activity) error
	FindActivity(ctx context.Context, activityID, sessionID string) (*model.Activity, error)
	FinishActivity(ctx context.Context, activityID, state, closingNote, closingPhoto string, endedAt time.Time) error
	CountOpen(ctx context.Context, sessionID string) (int64, error)
	ListBySession(ctx context.Context, sessionID string) ([]*model.Activity, error)
}

type UserStore interface {
	FindByDocument(ctx context.Context, documentNumber string) (*model.User, error)
	FindByID(ctx context.Context, userID string) (*model.User, error)
}

type LocationStore interface {
	// FindByQRCode resolves an active zone by its QR asset tag; nil
	// when unknown or inactive.
	FindByQRCode(ctx context.Context, code string) (*model.Location, error)
	FindByID(ctx context.Context, locationID string) (*model.Location, error)
}

type DocumentStore interface {
	InsertDocument(ctx context.Context, doc *model.Document) error
}
