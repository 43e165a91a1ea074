package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"main/model"
	"main/utils"

	"github.com/google/uuid"
)

// ZoneService drives the zone session lifecycle. It owns the state
// transitions; the guards and handlers only call into it.
type ZoneService struct {
	Sessions   SessionStore
	Checklist  ChecklistStore
	Activities ActivityStore
	Users      UserStore
	Locations  LocationStore
	Pipeline   DocumentPipeline

	// DefaultWorkday applies when the subject has no fixed cutoff.
	DefaultWorkday time.Duration
}

type OpenZoneInput struct {
	SponsorDocument string
	LocationCode    string
	Modality        string
	DeviceInfo      string
}

// Open creates a session for the subject, in PENDING_CHECKLIST when
// equipment is declared, ACTIVE otherwise.
func (s *ZoneService) Open(ctx context.Context, subject *model.User, input OpenZoneInput) (*model.ZoneSession, error) {
	if !model.ValidModality(input.Modality) {
		return nil, fmt.Errorf("%w: unknown modality %q", ErrPrecondition, input.Modality)
	}

	existing, err := s.Sessions.FindActiveBySubject(ctx, subject.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up current session: %w", err)
	}
	if existing != nil {
		return nil, ErrConflict
	}

	sponsor, err := s.Users.FindByDocument(ctx, input.SponsorDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sponsor: %w", err)
	}
	if sponsor == nil {
		return nil, fmt.Errorf("%w: sponsor is not registered", ErrNotFound)
	}
	if !sponsor.IsActive {
		return nil, fmt.Errorf("%w: sponsor %s is inactive", ErrPrecondition, sponsor.FullName)
	}
	if sponsor.UserID == subject.UserID {
		return nil, fmt.Errorf("%w: a visit cannot sponsor itself", ErrPrecondition)
	}

	location, err := s.Locations.FindByQRCode(ctx, input.LocationCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve zone code: %w", err)
	}
	if location == nil {
		return nil, fmt.Errorf("%w: code %q does not match a valid zone", ErrNotFound, input.LocationCode)
	}

	session := &model.ZoneSession{
		SessionID:  uuid.New().String(),
		SubjectID:  subject.UserID,
		SponsorID:  sponsor.UserID,
		LocationID: location.LocationID,
		Modality:   input.Modality,
		State:      model.InitialState(input.Modality),
		EntryAt:    time.Now(),
		DeviceInfo: input.DeviceInfo,
	}

	// The unique index on non-closed sessions is the real arbiter:
	// the existence check above is advisory under concurrency.
	if err := s.Sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	utils.SessionsOpened.Inc()
	s.dispatchRecord(session, model.DocumentEntry)
	return session, nil
}

// FinalizeChecklist advances PENDING_CHECKLIST -> ACTIVE. Equipment
// visits may not advance with an empty checklist.
func (s *ZoneService) FinalizeChecklist(ctx context.Context, session *model.ZoneSession) (*model.ZoneSession, error) {
	if session.State != model.StatePendingChecklist {
		return nil, fmt.Errorf("%w: session is not awaiting checklist", ErrPrecondition)
	}

	if session.Modality == model.ModalityWithEquipment {
		present, err := s.Checklist.CountPresent(ctx, session.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to count checklist entries: %w", err)
		}
		if present == 0 {
			return nil, fmt.Errorf("%w: declare at least one item before entering", ErrPrecondition)
		}
	}

	session.State = model.StateActive
	if err := s.Sessions.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to activate session: %w", err)
	}
	return session, nil
}

// Close ends the session voluntarily. Open activities block it.
func (s *ZoneService) Close(ctx context.Context, session *model.ZoneSession) (*model.ZoneSession, error) {
	if session.State == model.StateClosed {
		return nil, fmt.Errorf("%w: session is already closed", ErrPrecondition)
	}

	open, err := s.Activities.CountOpen(ctx, session.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count open activities: %w", err)
	}
	if open > 0 {
		return nil, fmt.Errorf("%w: you still have %d unfinished activities", ErrPrecondition, open)
	}

	now := time.Now()
	session.State = model.StateClosed
	session.ExitAt = &now
	if err := s.Sessions.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to close session: %w", err)
	}

	utils.SessionsClosed.WithLabelValues("voluntary").Inc()
	s.dispatchRecord(session, model.DocumentExit)
	return session, nil
}

// ForceCloseOnExpiry is the expiry guard's termination path. It closes
// unconditionally, bypassing the open-activity gate and any pending
// checklist step: the subject's request loop must be broken even when
// the visit is mid-step. The asymmetry with Close is intentional.
func (s *ZoneService) ForceCloseOnExpiry(ctx context.Context, session *model.ZoneSession) (*model.ZoneSession, error) {
	now := time.Now()
	session.State = model.StateClosed
	session.ExitAt = &now
	session.ClosureNote = model.ClosureNoteExpired
	if err := s.Sessions.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to force-close session: %w", err)
	}

	utils.SessionsClosed.WithLabelValues("expired").Inc()
	log.Printf("session %s force-closed: workday budget exhausted", session.SessionID)
	s.dispatchRecord(session, model.DocumentExit)
	return session, nil
}

// RemainingSeconds evaluates the subject's workday budget for the
// given session. Raw signed value; negative means expired.
func (s *ZoneService) RemainingSeconds(session *model.ZoneSession, subject *model.User, now time.Time) int64 {
	return RemainingSeconds(session.EntryAt, PolicyFor(subject, s.DefaultWorkday), now)
}

// Reactivate reopens a closed session with a fresh cutoff, an
// administrative exception flow. The store runs it transactionally.
func (s *ZoneService) Reactivate(ctx context.Context, sessionID, cutoff string) (*model.ZoneSession, error) {
	session, err := s.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session does not exist", ErrNotFound)
	}
	if session.State != model.StateClosed {
		return nil, fmt.Errorf("%w: only closed sessions can be reactivated", ErrPrecondition)
	}

	reopened, err := s.Sessions.Reactivate(ctx, sessionID, cutoff, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to reactivate session: %w", err)
	}
	return reopened, nil
}

// dispatchRecord hands the archived record off asynchronously. The
// transition is already committed; a pipeline failure is logged and
// swallowed.
func (s *ZoneService) dispatchRecord(session *model.ZoneSession, kind string) {
	if s.Pipeline == nil {
		return
	}
	snapshot := *session
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var doc *model.Document
		var err error
		if kind == model.DocumentEntry {
			doc, err = s.Pipeline.GenerateEntryRecord(ctx, &snapshot)
		} else {
			doc, err = s.Pipeline.GenerateExitRecord(ctx, &snapshot)
		}
		if err != nil {
			utils.TrackError("documents", "record_generation_failed")
			log.Printf("warning: failed to generate %s record for session %s: %v", kind, snapshot.SessionID, err)
			return
		}

		if err := s.Sessions.LinkDocument(ctx, snapshot.SessionID, kind, doc.DocumentID); err != nil {
			utils.TrackError("documents", "record_link_failed")
			log.Printf("warning: failed to link %s record to session %s: %v", kind, snapshot.SessionID, err)
		}
	}()
}
