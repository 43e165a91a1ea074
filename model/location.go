package model

import "time"

// Location is a controlled zone from the master catalog. Rows are
// synced from the asset-management system by an external job; this
// service only reads them.
type Location struct {
	LocationID  string    `bson:"location_id" json:"location_id"`
	Name        string    `bson:"name" json:"name"`
	QRCode      string    `bson:"qr_code" json:"qr_code"`
	City        string    `bson:"city,omitempty" json:"city,omitempty"`
	ExternalID  int64     `bson:"external_id" json:"external_id"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Active      bool      `bson:"active" json:"active"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
