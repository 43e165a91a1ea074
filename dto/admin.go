package dto

import (
	"time"

	"main/model"
)

type ReactivateSessionRequest struct {
	// New workday cutoff applied to the subject, "HH:MM".
	WorkdayCutoff string `json:"workday_cutoff" binding:"required,timeofday"`
}

type AdminSessionResponse struct {
	ID          string     `json:"id"`
	SubjectID   string     `json:"subject_id"`
	SponsorID   string     `json:"sponsor_id"`
	LocationID  string     `json:"location_id"`
	Modality    string     `json:"modality"`
	State       string     `json:"state"`
	EntryAt     time.Time  `json:"entry_at"`
	ExitAt      *time.Time `json:"exit_at,omitempty"`
	ClosureNote string     `json:"closure_note,omitempty"`
	DeviceInfo  string     `json:"device_info,omitempty"`
}

func ToAdminSessionResponse(session *model.ZoneSession) AdminSessionResponse {
	return AdminSessionResponse{
		ID:          session.SessionID,
		SubjectID:   session.SubjectID,
		SponsorID:   session.SponsorID,
		LocationID:  session.LocationID,
		Modality:    session.Modality,
		State:       session.State,
		EntryAt:     session.EntryAt,
		ExitAt:      session.ExitAt,
		ClosureNote: session.ClosureNote,
		DeviceInfo:  session.DeviceInfo,
	}
}

func ToAdminSessionResponses(sessions []*model.ZoneSession) []AdminSessionResponse {
	responses := make([]AdminSessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = ToAdminSessionResponse(session)
	}
	return responses
}

type LocationResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	City        string `json:"city,omitempty"`
	Description string `json:"description,omitempty"`
}

func ToLocationResponse(location *model.Location) LocationResponse {
	return LocationResponse{
		ID:          location.LocationID,
		Name:        location.Name,
		City:        location.City,
		Description: location.Description,
	}
}
