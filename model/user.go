package model

import "time"

// User roles. Admins land on the back-office screens and may run the
// reactivation flow; everyone else is a visitor.
const (
	RoleAdmin   = "admin"
	RoleVisitor = "visitor"
)

type User struct {
	UserID         string    `bson:"user_id" json:"user_id"`
	FullName       string    `bson:"full_name" json:"full_name"`
	Email          string    `bson:"email" json:"email" validate:"email"`
	Role           string    `bson:"role" json:"role"`
	DocumentType   string    `bson:"document_type" json:"document_type"`
	DocumentNumber string    `bson:"document_number" json:"document_number"`
	IsActive       bool      `bson:"is_active" json:"is_active"`
	CompanyID      string    `bson:"company_id,omitempty" json:"company_id,omitempty"`
	PhotoRef       string    `bson:"photo_ref,omitempty" json:"photo_ref,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`

	// WorkdayCutoff is an optional "HH:MM" time of day at which the
	// subject's zone session must end. Empty means the default fixed
	// duration applies from entry.
	WorkdayCutoff string `bson:"workday_cutoff,omitempty" json:"workday_cutoff,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
