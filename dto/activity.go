package dto

import (
	"time"

	"main/model"
)

type StartActivityRequest struct {
	Title        string `json:"title" binding:"required"`
	OpeningNote  string `json:"opening_note"`
	OpeningPhoto string `json:"opening_photo"`
}

type FinishActivityRequest struct {
	ClosingNote  string `json:"closing_note"`
	ClosingPhoto string `json:"closing_photo"`
}

type ActivityResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	OpeningNote  string     `json:"opening_note,omitempty"`
	ClosingNote  string     `json:"closing_note,omitempty"`
	OpeningPhoto string     `json:"opening_photo,omitempty"`
	ClosingPhoto string     `json:"closing_photo,omitempty"`
	State        string     `json:"state"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

func ToActivityResponse(activity *model.Activity) ActivityResponse {
	return ActivityResponse{
		ID:           activity.ActivityID,
		Title:        activity.Title,
		OpeningNote:  activity.OpeningNote,
		ClosingNote:  activity.ClosingNote,
		OpeningPhoto: activity.OpeningPhoto,
		ClosingPhoto: activity.ClosingPhoto,
		State:        activity.State,
		StartedAt:    activity.StartedAt,
		EndedAt:      activity.EndedAt,
	}
}

func ToActivityResponses(activities []*model.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, len(activities))
	for i, activity := range activities {
		responses[i] = ToActivityResponse(activity)
	}
	return responses
}
