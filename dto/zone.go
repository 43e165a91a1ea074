package dto

import (
	"time"

	"main/model"
)

type OpenZoneRequest struct {
	SponsorDocument string `json:"sponsor_document" binding:"required"`
	LocationCode    string `json:"location_code" binding:"required"`
	Modality        string `json:"modality" binding:"required,oneof=WITH_EQUIPMENT ACTIVITIES_ONLY VISIT_ONLY"`
}

type ZoneSessionResponse struct {
	ID               string     `json:"id"`
	LocationID       string     `json:"location_id"`
	Modality         string     `json:"modality"`
	State            string     `json:"state"`
	EntryAt          time.Time  `json:"entry_at"`
	ExitAt           *time.Time `json:"exit_at,omitempty"`
	ClosureNote      string     `json:"closure_note,omitempty"`
	RemainingSeconds *int64     `json:"remaining_seconds,omitempty"`
}

func ToZoneSessionResponse(session *model.ZoneSession) ZoneSessionResponse {
	return ZoneSessionResponse{
		ID:          session.SessionID,
		LocationID:  session.LocationID,
		Modality:    session.Modality,
		State:       session.State,
		EntryAt:     session.EntryAt,
		ExitAt:      session.ExitAt,
		ClosureNote: session.ClosureNote,
	}
}

// ToZoneStatusResponse attaches the computed workday budget to the
// session view. Negative values are clamped for display.
func ToZoneStatusResponse(session *model.ZoneSession, remaining int64) ZoneSessionResponse {
	if remaining < 0 {
		remaining = 0
	}
	response := ToZoneSessionResponse(session)
	response.RemainingSeconds = &remaining
	return response
}
