package model

import "time"

// Zone session lifecycle states. A session only ever advances
// PENDING_CHECKLIST -> ACTIVE -> CLOSED.
const (
	StatePendingChecklist = "PENDING_CHECKLIST"
	StateActive           = "ACTIVE"
	StateClosed           = "CLOSED"
)

// Declared nature of the visit.
const (
	ModalityWithEquipment  = "WITH_EQUIPMENT"
	ModalityActivitiesOnly = "ACTIVITIES_ONLY"
	ModalityVisitOnly      = "VISIT_ONLY"
)

// ClosureNoteExpired marks sessions that were terminated by the
// workday guard rather than by the subject.
const ClosureNoteExpired = "closed automatically: time budget exhausted"

type ZoneSession struct {
	SessionID       string     `bson:"session_id" json:"session_id"`
	SubjectID       string     `bson:"subject_id" json:"subject_id"`
	SponsorID       string     `bson:"sponsor_id" json:"sponsor_id"`
	LocationID      string     `bson:"location_id" json:"location_id"`
	Modality        string     `bson:"modality" json:"modality"`
	State           string     `bson:"state" json:"state"`
	EntryAt         time.Time  `bson:"entry_at" json:"entry_at"`
	ExitAt          *time.Time `bson:"exit_at,omitempty" json:"exit_at,omitempty"`
	EntryDocumentID string     `bson:"entry_document_id,omitempty" json:"entry_document_id,omitempty"`
	ExitDocumentID  string     `bson:"exit_document_id,omitempty" json:"exit_document_id,omitempty"`
	ClosureNote     string     `bson:"closure_note,omitempty" json:"closure_note,omitempty"`
	DeviceInfo      string     `bson:"device_info,omitempty" json:"device_info,omitempty"`
}

// InitialState returns the state a fresh session starts in. Equipment
// visits must pass through the checklist step first.
func InitialState(modality string) string {
	if modality == ModalityWithEquipment {
		return StatePendingChecklist
	}
	return StateActive
}

// ValidModality reports whether s is one of the declared modalities.
func ValidModality(s string) bool {
	switch s {
	case ModalityWithEquipment, ModalityActivitiesOnly, ModalityVisitOnly:
		return true
	}
	return false
}

// IsOpen reports whether the session still occupies the subject, i.e.
// the subject may not open another one while it holds.
func (s *ZoneSession) IsOpen() bool {
	return s.State != StateClosed
}
