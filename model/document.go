package model

import "time"

// Archived record kinds.
const (
	DocumentEntry = "ENTRY"
	DocumentExit  = "EXIT"
)

// Document is the archive row for a generated entry/exit record (the
// rendered PDF lives in external storage, FileRef points at it).
type Document struct {
	DocumentID  string    `bson:"document_id" json:"document_id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	SessionID   string    `bson:"session_id" json:"session_id"`
	Kind        string    `bson:"kind" json:"kind"`
	FileRef     string    `bson:"file_ref" json:"file_ref"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
