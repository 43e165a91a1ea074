package services

import (
	"context"
	"time"

	"main/model"
)

// In-memory store fakes shared by the service tests.

type fakeSessionStore struct {
	sessions map[string]*model.ZoneSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*model.ZoneSession)}
}

func (s *fakeSessionStore) CreateSession(_ context.Context, session *model.ZoneSession) error {
	for _, existing := range s.sessions {
		if existing.SubjectID == session.SubjectID && existing.IsOpen() {
			return ErrConflict
		}
	}
	copied := *session
	s.sessions[session.SessionID] = &copied
	return nil
}

func (s *fakeSessionStore) FindActiveBySubject(_ context.Context, subjectID string) (*model.ZoneSession, error) {
	for _, session := range s.sessions {
		if session.SubjectID == subjectID && session.IsOpen() {
			copied := *session
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeSessionStore) FindByID(_ context.Context, sessionID string) (*model.ZoneSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (s *fakeSessionStore) UpdateSession(_ context.Context, session *model.ZoneSession) error {
	copied := *session
	s.sessions[session.SessionID] = &copied
	return nil
}

func (s *fakeSessionStore) LinkDocument(_ context.Context, sessionID, kind, documentID string) error {
	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	if kind == model.DocumentEntry {
		session.EntryDocumentID = documentID
	} else {
		session.ExitDocumentID = documentID
	}
	return nil
}

func (s *fakeSessionStore) Reactivate(_ context.Context, sessionID, cutoff string, entryAt time.Time) (*model.ZoneSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	session.State = model.StateActive
	session.EntryAt = entryAt
	session.ExitAt = nil
	session.ExitDocumentID = ""
	session.ClosureNote = ""
	copied := *session
	return &copied, nil
}

func (s *fakeSessionStore) ListBySubject(_ context.Context, subjectID string) ([]*model.ZoneSession, error) {
	var out []*model.ZoneSession
	for _, session := range s.sessions {
		if session.SubjectID == subjectID {
			copied := *session
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeSessionStore) ListActive(_ context.Context) ([]*model.ZoneSession, error) {
	var out []*model.ZoneSession
	for _, session := range s.sessions {
		if session.IsOpen() {
			copied := *session
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeChecklistStore struct {
	entries map[string]*model.ChecklistEntry
}

func newFakeChecklistStore() *fakeChecklistStore {
	return &fakeChecklistStore{entries: make(map[string]*model.ChecklistEntry)}
}

func (s *fakeChecklistStore) FindEntry(_ context.Context, sessionID, itemID string) (*model.ChecklistEntry, error) {
	for _, entry := range s.entries {
		if entry.SessionID == sessionID && entry.ItemID == itemID {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeChecklistStore) InsertEntry(_ context.Context, entry *model.ChecklistEntry) error {
	copied := *entry
	s.entries[entry.EntryID] = &copied
	return nil
}

func (s *fakeChecklistStore) SetEntryStatus(_ context.Context, entryID, status, notes, evidencePhoto string) error {
	entry, ok := s.entries[entryID]
	if !ok {
		return ErrNotFound
	}
	entry.Status = status
	entry.Notes = notes
	entry.EvidencePhoto = evidencePhoto
	entry.UpdatedAt = time.Now()
	return nil
}

func (s *fakeChecklistStore) CountPresent(_ context.Context, sessionID string) (int64, error) {
	var count int64
	for _, entry := range s.entries {
		if entry.SessionID == sessionID && entry.Status == model.EntryPresent {
			count++
		}
	}
	return count, nil
}

func (s *fakeChecklistStore) ListEntries(_ context.Context, sessionID string) ([]*model.ChecklistEntry, error) {
	var out []*model.ChecklistEntry
	for _, entry := range s.entries {
		if entry.SessionID == sessionID {
			copied := *entry
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeInventoryStore struct {
	items map[string]*model.InventoryItem
}

func newFakeInventoryStore() *fakeInventoryStore {
	return &fakeInventoryStore{items: make(map[string]*model.InventoryItem)}
}

func (s *fakeInventoryStore) InsertItem(_ context.Context, item *model.InventoryItem) error {
	copied := *item
	s.items[item.ItemID] = &copied
	return nil
}

func (s *fakeInventoryStore) FindItem(_ context.Context, itemID, ownerID string) (*model.InventoryItem, error) {
	item, ok := s.items[itemID]
	if !ok || item.OwnerID != ownerID {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (s *fakeInventoryStore) ListByOwner(_ context.Context, ownerID string) ([]*model.InventoryItem, error) {
	var out []*model.InventoryItem
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeActivityStore struct {
	activities map[string]*model.Activity
}

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{activities: make(map[string]*model.Activity)}
}

func (s *fakeActivityStore) InsertActivity(_ context.Context, activity *model.Activity) error {
	copied := *activity
	s.activities[activity.ActivityID] = &copied
	return nil
}

func (s *fakeActivityStore) FindActivity(_ context.Context, activityID, sessionID string) (*model.Activity, error) {
	activity, ok := s.activities[activityID]
	if !ok || activity.SessionID != sessionID {
		return nil, nil
	}
	copied := *activity
	return &copied, nil
}

func (s *fakeActivityStore) FinishActivity(_ context.Context, activityID, state, closingNote, closingPhoto string, endedAt time.Time) error {
	activity, ok := s.activities[activityID]
	if !ok {
		return ErrNotFound
	}
	activity.State = state
	activity.ClosingNote = closingNote
	activity.ClosingPhoto = closingPhoto
	activity.EndedAt = &endedAt
	return nil
}

func (s *fakeActivityStore) CountOpen(_ context.Context, sessionID string) (int64, error) {
	var count int64
	for _, activity := range s.activities {
		if activity.SessionID == sessionID && activity.State == model.ActivityOpen {
			count++
		}
	}
	return count, nil
}

func (s *fakeActivityStore) ListBySession(_ context.Context, sessionID string) ([]*model.Activity, error) {
	var out []*model.Activity
	for _, activity := range s.activities {
		if activity.SessionID == sessionID {
			copied := *activity
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeUserStore struct {
	users map[string]*model.User
}

func newFakeUserStore(users ...*model.User) *fakeUserStore {
	store := &fakeUserStore{users: make(map[string]*model.User)}
	for _, user := range users {
		store.users[user.UserID] = user
	}
	return store
}

func (s *fakeUserStore) FindByDocument(_ context.Context, documentNumber string) (*model.User, error) {
	for _, user := range s.users {
		if user.DocumentNumber == documentNumber {
			return user, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, userID string) (*model.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	return user, nil
}

type fakeLocationStore struct {
	locations map[string]*model.Location
}

func newFakeLocationStore(locations ...*model.Location) *fakeLocationStore {
	store := &fakeLocationStore{locations: make(map[string]*model.Location)}
	for _, location := range locations {
		store.locations[location.QRCode] = location
	}
	return store
}

func (s *fakeLocationStore) FindByQRCode(_ context.Context, code string) (*model.Location, error) {
	location, ok := s.locations[code]
	if !ok || !location.Active {
		return nil, nil
	}
	return location, nil
}

func (s *fakeLocationStore) FindByID(_ context.Context, locationID string) (*model.Location, error) {
	for _, location := range s.locations {
		if location.LocationID == locationID {
			return location, nil
		}
	}
	return nil, nil
}
