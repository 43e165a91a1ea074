package model

import "time"

// Catalog item categories.
const (
	CategoryTool    = "TOOL"
	CategoryCompute = "COMPUTE"
)

// InventoryItem is a reusable catalog entry owned by a subject: a tool
// or computing asset they habitually bring along.
type InventoryItem struct {
	ItemID         string    `bson:"item_id" json:"item_id"`
	OwnerID        string    `bson:"owner_id" json:"owner_id"`
	Category       string    `bson:"category" json:"category"`
	Label          string    `bson:"label" json:"label"`
	SerialRef      string    `bson:"serial_ref" json:"serial_ref"`
	ReferencePhoto string    `bson:"reference_photo,omitempty" json:"reference_photo,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Checklist entry statuses.
const (
	EntryPresent   = "PRESENT"
	EntryWithdrawn = "WITHDRAWN"
)

// ChecklistEntry joins a session to a catalog item, declaring the item
// currently present with the subject. Unique per (session, item):
// re-adding a withdrawn entry reactivates it instead of duplicating.
type ChecklistEntry struct {
	EntryID       string    `bson:"entry_id" json:"entry_id"`
	SessionID     string    `bson:"session_id" json:"session_id"`
	ItemID        string    `bson:"item_id" json:"item_id"`
	Status        string    `bson:"status" json:"status"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	EvidencePhoto string    `bson:"evidence_photo,omitempty" json:"evidence_photo,omitempty"`
	AddedAt       time.Time `bson:"added_at" json:"added_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
