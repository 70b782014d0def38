package models

import "time"

// IdentifierPrefix is prepended to the generated row id to form the
// system-issued student identifier, e.g. "STD-42".
const IdentifierPrefix = "STD-"

// Student defines the student model based on the 'students' table.
// No two students may share identical (first name, last name, DOB)
// case-insensitively; collisions are routed to the duplicate-review queue
// instead of being written.
type Student struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	FirstName   string    `json:"firstName" db:"first_name" example:"Ama"`
	LastName    string    `json:"lastName" db:"last_name" example:"Mensah"`
	DateOfBirth time.Time `json:"dateOfBirth" db:"date_of_birth" example:"2010-01-01T00:00:00Z"`
	Gender      string    `json:"gender,omitempty" db:"gender" example:"F"`
	SchoolID    int64     `json:"schoolId" db:"school_id" example:"3"`
	LegacyClass *string   `json:"legacyClass,omitempty" db:"legacy_class"`
	PhotoURL    *string   `json:"photoUrl,omitempty" db:"photo_url"`
	Identifier  string    `json:"identifier" db:"identifier" example:"STD-1"` // Immutable once assigned
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	School *School `json:"school,omitempty"` // Relation, no db tag
	Parent *Parent `json:"parent,omitempty"` // Current guardian, no db tag
}
