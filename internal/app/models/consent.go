package models

import "time"

// ConsentStatus is the consent request lifecycle status.
// PENDING moves once to GRANTED or REJECTED; both are terminal.
type ConsentStatus string

const (
	ConsentPending  ConsentStatus = "PENDING"
	ConsentGranted  ConsentStatus = "GRANTED"
	ConsentRejected ConsentStatus = "REJECTED"
)

// Consent represents a requesting school's permission to view a flagged
// student's obligation detail, based on the 'consents' table.
type Consent struct {
	ID              int64         `json:"id" db:"id" example:"1"`
	StudentID       int64         `json:"studentId" db:"student_id"`
	SchoolID        int64         `json:"schoolId" db:"school_id"` // Requesting school
	Status          ConsentStatus `json:"status" db:"status" example:"PENDING"`
	ApprovedBy      *int64        `json:"approvedBy,omitempty" db:"approved_by"`
	ApprovedAt      *time.Time    `json:"approvedAt,omitempty" db:"approved_at"`
	RejectionReason *string       `json:"rejectionReason,omitempty" db:"rejection_reason"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`

	Student *Student `json:"student,omitempty"` // Relation, no db tag
	School  *School  `json:"school,omitempty"`  // Relation, no db tag
}
