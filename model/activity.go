package model

import "time"

// Activity states.
const (
	ActivityOpen      = "OPEN"
	ActivityClosed    = "CLOSED"
	ActivityCancelled = "CANCELLED"
)

// Activity is a unit of work performed during a zone session. A
// session cannot be closed voluntarily while any of its activities is
// still OPEN.
type Activity struct {
	ActivityID    string     `bson:"activity_id" json:"activity_id"`
	SessionID     string     `bson:"session_id" json:"session_id"`
	Title         string     `bson:"title" json:"title"`
	OpeningNote   string     `bson:"opening_note,omitempty" json:"opening_note,omitempty"`
	ClosingNote   string     `bson:"closing_note,omitempty" json:"closing_note,omitempty"`
	OpeningPhoto  string     `bson:"opening_photo,omitempty" json:"opening_photo,omitempty"`
	ClosingPhoto  string     `bson:"closing_photo,omitempty" json:"closing_photo,omitempty"`
	State         string     `bson:"state" json:"state"`
	StartedAt     time.Time  `bson:"started_at" json:"started_at"`
	EndedAt       *time.Time `bson:"ended_at,omitempty" json:"ended_at,omitempty"`
}
