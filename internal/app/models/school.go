package models

import "time"

// School defines the school model based on the 'schools' table.
// Schools are the tenant boundary: SCHOOL_ADMIN users only see rows
// belonging to their own school. Schools are never deleted.
type School struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Accra Grammar School"`
	Location  string    `json:"location,omitempty" db:"location" example:"Accra"`
	Verified  bool      `json:"verified" db:"verified" example:"true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
