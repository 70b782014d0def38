package models

import "time"

// Role defines the user role type
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleSchoolAdmin Role = "SCHOOL_ADMIN"
	RoleAdmissions  Role = "ADMISSIONS"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleSchoolAdmin, RoleAdmissions:
		return true
	}
	return false
}

// User defines the user model based on the 'users' table
type User struct {
	ID              int64      `json:"id" db:"id" example:"1"`
	Email           string     `json:"email" db:"email" example:"admin@school.edu.gh"`
	Password        string     `json:"-" db:"password"` // Hashed, excluded from JSON
	FullName        string     `json:"fullName" db:"full_name" example:"Kwame Osei"`
	Role            Role       `json:"role" db:"role" example:"SCHOOL_ADMIN"`
	SchoolID        *int64     `json:"schoolId,omitempty" db:"school_id"` // nil for SUPER_ADMIN
	IsActive        bool       `json:"isActive" db:"is_active"`
	ActivationToken *string    `json:"-" db:"activation_token"`
	TermsAccepted   bool       `json:"termsAccepted" db:"terms_accepted"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	LastLogoutAt    *time.Time `json:"lastLogoutAt,omitempty" db:"last_logout_at"`

	School *School `json:"school,omitempty"` // Relation, no db tag
}

// LoginEvent values for the login log
const (
	LoginEventLogin  = "LOGIN"
	LoginEventLogout = "LOGOUT"
)

// LoginLog is one append-only login/logout record
type LoginLog struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Event      string    `json:"event" db:"event"`
	OccurredAt time.Time `json:"occurredAt" db:"occurred_at"`
}
