package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"main/model"
)

func testZoneService() (*ZoneService, *fakeSessionStore, *fakeChecklistStore, *fakeActivityStore) {
	sessions := newFakeSessionStore()
	checklist := newFakeChecklistStore()
	activities := newFakeActivityStore()

	sponsor := &model.User{
		UserID:         "sponsor-1",
		FullName:       "Sponsor One",
		DocumentNumber: "900100",
		IsActive:       true,
	}
	zone := &ZoneService{
		Sessions:   sessions,
		Checklist:  checklist,
		Activities: activities,
		Users:      newFakeUserStore(sponsor),
		Locations: newFakeLocationStore(&model.Location{
			LocationID: "loc-1",
			Name:       "Server Room",
			QRCode:     "QR-1",
			Active:     true,
		}),
		DefaultWorkday: 8 * time.Hour,
	}
	return zone, sessions, checklist, activities
}

func testSubject() *model.User {
	return &model.User{
		UserID:         "subject-1",
		FullName:       "Subject One",
		DocumentNumber: "800200",
		IsActive:       true,
	}
}

func TestOpenZone(t *testing.T) {
	ctx := context.Background()

	t.Run("equipment visit starts pending", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		session, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityWithEquipment,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if session.State != model.StatePendingChecklist {
			t.Errorf("expected PENDING_CHECKLIST, got %s", session.State)
		}
	})

	t.Run("visit without equipment starts active", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		session, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityVisitOnly,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if session.State != model.StateActive {
			t.Errorf("expected ACTIVE, got %s", session.State)
		}
	})

	t.Run("second open conflicts", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		input := OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityVisitOnly,
		}
		if _, err := zone.Open(ctx, testSubject(), input); err != nil {
			t.Fatalf("first Open: %v", err)
		}
		_, err := zone.Open(ctx, testSubject(), input)
		if !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("unknown sponsor", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		_, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "nope",
			LocationCode:    "QR-1",
			Modality:        model.ModalityVisitOnly,
		})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("self sponsorship rejected", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		subject := testSubject()
		subject.DocumentNumber = "900100"
		subject.UserID = "sponsor-1"
		_, err := zone.Open(ctx, subject, OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityVisitOnly,
		})
		if !errors.Is(err, ErrPrecondition) {
			t.Errorf("expected ErrPrecondition, got %v", err)
		}
	})

	t.Run("unknown zone code", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		_, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-missing",
			Modality:        model.ModalityVisitOnly,
		})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("invalid modality", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		_, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        "SOMETHING_ELSE",
		})
		if !errors.Is(err, ErrPrecondition) {
			t.Errorf("expected ErrPrecondition, got %v", err)
		}
	})
}

func TestFinalizeChecklist(t *testing.T) {
	ctx := context.Background()

	t.Run("equipment visit needs at least one entry", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		session, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityWithEquipment,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}

		_, err = zone.FinalizeChecklist(ctx, session)
		if !errors.Is(err, ErrPrecondition) {
			t.Errorf("expected ErrPrecondition on an empty checklist, got %v", err)
		}
	})

	t.Run("activates once an item is present", func(t *testing.T) {
		zone, _, checklist, _ := testZoneService()
		session, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityWithEquipment,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}

		checklist.InsertEntry(ctx, &model.ChecklistEntry{
			EntryID:   "e1",
			SessionID: session.SessionID,
			ItemID:    "i1",
			Status:    model.EntryPresent,
		})

		activated, err := zone.FinalizeChecklist(ctx, session)
		if err != nil {
			t.Fatalf("FinalizeChecklist: %v", err)
		}
		if activated.State != model.StateActive {
			t.Errorf("expected ACTIVE, got %s", activated.State)
		}
	})

	t.Run("withdrawn entries do not count", func(t *testing.T) {
		zone, _, checklist, _ := testZoneService()
		session, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityWithEquipment,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}

		checklist.InsertEntry(ctx, &model.ChecklistEntry{
			EntryID:   "e1",
			SessionID: session.SessionID,
			ItemID:    "i1",
			Status:    model.EntryWithdrawn,
		})

		if _, err := zone.FinalizeChecklist(ctx, session); !errors.Is(err, ErrPrecondition) {
			t.Errorf("expected ErrPrecondition, got %v", err)
		}
	})

	t.Run("only pending sessions finalize", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		session, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityVisitOnly,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}

		if _, err := zone.FinalizeChecklist(ctx, session); !errors.Is(err, ErrPrecondition) {
			t.Errorf("expected ErrPrecondition for an ACTIVE session, got %v", err)
		}
	})
}

func TestCloseZone(t *testing.T) {
	ctx := context.Background()

	t.Run("open activities block voluntary close", func(t *testing.T) {
		zone, _, _, activities := testZoneService()
		session, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityActivitiesOnly,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}

		activities.InsertActivity(ctx, &model.Activity{
			ActivityID: "a1",
			SessionID:  session.SessionID,
			Title:      "patch the switch",
			State:      model.ActivityOpen,
		})

		if _, err := zone.Close(ctx, session); !errors.Is(err, ErrPrecondition) {
			t.Errorf("expected ErrPrecondition, got %v", err)
		}
	})

	t.Run("closes cleanly without open activities", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		session, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityVisitOnly,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}

		closed, err := zone.Close(ctx, session)
		if err != nil {
			t.Fatalf("Close: %v", err)
		}
		if closed.State != model.StateClosed {
			t.Errorf("expected CLOSED, got %s", closed.State)
		}
		if closed.ExitAt == nil {
			t.Error("exit timestamp not set")
		}
		if closed.ClosureNote != "" {
			t.Errorf("voluntary close must not annotate, got %q", closed.ClosureNote)
		}
	})

	t.Run("closing twice fails", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		session, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityVisitOnly,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if _, err := zone.Close(ctx, session); err != nil {
			t.Fatalf("Close: %v", err)
		}
		if _, err := zone.Close(ctx, session); !errors.Is(err, ErrPrecondition) {
			t.Errorf("expected ErrPrecondition, got %v", err)
		}
	})
}

func TestForceCloseOnExpiry(t *testing.T) {
	ctx := context.Background()

	t.Run("ignores the activity gate", func(t *testing.T) {
		zone, sessions, _, activities := testZoneService()
		session, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityActivitiesOnly,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}

		activities.InsertActivity(ctx, &model.Activity{
			ActivityID: "a1",
			SessionID:  session.SessionID,
			Title:      "patch the switch",
			State:      model.ActivityOpen,
		})

		closed, err := zone.ForceCloseOnExpiry(ctx, session)
		if err != nil {
			t.Fatalf("ForceCloseOnExpiry: %v", err)
		}
		if closed.State != model.StateClosed {
			t.Errorf("expected CLOSED, got %s", closed.State)
		}
		if closed.ClosureNote != model.ClosureNoteExpired {
			t.Errorf("expected the automatic closure note, got %q", closed.ClosureNote)
		}

		// The subject can open a fresh session immediately.
		if current, _ := sessions.FindActiveBySubject(ctx, "subject-1"); current != nil {
			t.Error("expired session still counted as open")
		}
	})

	t.Run("ignores the checklist gate", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		session, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityWithEquipment,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if session.State != model.StatePendingChecklist {
			t.Fatalf("expected PENDING_CHECKLIST, got %s", session.State)
		}

		closed, err := zone.ForceCloseOnExpiry(ctx, session)
		if err != nil {
			t.Fatalf("ForceCloseOnExpiry: %v", err)
		}
		if closed.State != model.StateClosed {
			t.Errorf("expected CLOSED, got %s", closed.State)
		}
	})
}

func TestReactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("reopens a closed session", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		session, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityVisitOnly,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if _, err := zone.ForceCloseOnExpiry(ctx, session); err != nil {
			t.Fatalf("ForceCloseOnExpiry: %v", err)
		}

		reopened, err := zone.Reactivate(ctx, session.SessionID, "20:00")
		if err != nil {
			t.Fatalf("Reactivate: %v", err)
		}
		if reopened.State != model.StateActive {
			t.Errorf("expected ACTIVE, got %s", reopened.State)
		}
		if reopened.ExitAt != nil {
			t.Error("exit timestamp should be cleared")
		}
		if reopened.ClosureNote != "" {
			t.Errorf("closure note should be cleared, got %q", reopened.ClosureNote)
		}
	})

	t.Run("only closed sessions reactivate", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		session, err := zone.Open(ctx, testSubject(), OpenZoneInput{
			SponsorDocument: "900100",
			LocationCode:    "QR-1",
			Modality:        model.ModalityVisitOnly,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}

		if _, err := zone.Reactivate(ctx, session.SessionID, "20:00"); !errors.Is(err, ErrPrecondition) {
			t.Errorf("expected ErrPrecondition, got %v", err)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		zone, _, _, _ := testZoneService()
		if _, err := zone.Reactivate(ctx, "missing", "20:00"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
