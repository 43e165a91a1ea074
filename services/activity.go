package services

import (
	"context"
	"fmt"
	"time"

	"main/model"

	"github.com/google/uuid"
)

// ActivityService tracks the units of work performed during a session.
type ActivityService struct {
	Activities ActivityStore
}

// Start opens a new activity on the session.
func (s *ActivityService) Start(ctx context.Context, session *model.ZoneSession, title, openingNote, openingPhoto string) (*model.Activity, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: the activity title is required", ErrPrecondition)
	}

	activity := &model.Activity{
		ActivityID:   uuid.New().String(),
		SessionID:    session.SessionID,
		Title:        title,
		OpeningNote:  openingNote,
		OpeningPhoto: openingPhoto,
		State:        model.ActivityOpen,
		StartedAt:    time.Now(),
	}
	if err := s.Activities.InsertActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return activity, nil
}

// Finish closes an open activity.
func (s *ActivityService) Finish(ctx context.Context, session *model.ZoneSession, activityID, closingNote, closingPhoto string) (*model.Activity, error) {
	activity, err := s.Activities.FindActivity(ctx, activityID, session.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up activity: %w", err)
	}
	if activity == nil {
		return nil, fmt.Errorf("%w: activity does not exist or is not yours", ErrNotFound)
	}
	if activity.State != model.ActivityOpen {
		return nil, fmt.Errorf("%w: activity was already finished", ErrPrecondition)
	}

	now := time.Now()
	if err := s.Activities.FinishActivity(ctx, activityID, model.ActivityClosed, closingNote, closingPhoto, now); err != nil {
		return nil, fmt.Errorf("failed to finish activity: %w", err)
	}

	activity.State = model.ActivityClosed
	activity.ClosingNote = closingNote
	activity.ClosingPhoto = closingPhoto
	activity.EndedAt = &now
	return activity, nil
}

// Cancel abandons an open activity without recording completion.
func (s *ActivityService) Cancel(ctx context.Context, session *model.ZoneSession, activityID string) (*model.Activity, error) {
	activity, err := s.Activities.FindActivity(ctx, activityID, session.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up activity: %w", err)
	}
	if activity == nil {
		return nil, fmt.Errorf("%w: activity does not exist or is not yours", ErrNotFound)
	}
	if activity.State != model.ActivityOpen {
		return nil, fmt.Errorf("%w: only open activities can be cancelled", ErrPrecondition)
	}

	now := time.Now()
	if err := s.Activities.FinishActivity(ctx, activityID, model.ActivityCancelled, "", "", now); err != nil {
		return nil, fmt.Errorf("failed to cancel activity: %w", err)
	}

	activity.State = model.ActivityCancelled
	activity.EndedAt = &now
	return activity, nil
}

// List returns the session's activities, newest first.
func (s *ActivityService) List(ctx context.Context, session *model.ZoneSession) ([]*model.Activity, error) {
	return s.Activities.ListBySession(ctx, session.SessionID)
}
