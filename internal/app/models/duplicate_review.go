package models

import "time"

// ReviewDecision is the outcome of a duplicate review
type ReviewDecision string

const (
	DecisionMerged           ReviewDecision = "MERGED"
	DecisionDeclaredDistinct ReviewDecision = "DECLARED_DISTINCT"
)

// StudentSnapshot is the serialized form of an attempted student submission,
// stored on a duplicate review so the data is never silently dropped.
type StudentSnapshot struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	DateOfBirth string  `json:"dateOfBirth"` // YYYY-MM-DD
	Gender      string  `json:"gender,omitempty"`
	SchoolID    int64   `json:"schoolId"`
	LegacyClass *string `json:"legacyClass,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
	ParentID    *int64  `json:"parentId,omitempty"`
}

// DuplicateReview is an arbitration record created when a new student
// submission collides with an existing one on name+DOB, based on the
// 'duplicate_reviews' table. Decision stays NULL until an admin resolves it.
type DuplicateReview struct {
	ID                int64           `json:"id" db:"id" example:"1"`
	ExistingStudentID int64           `json:"existingStudentId" db:"existing_student_id"`
	Submission        StudentSnapshot `json:"submission" db:"submission"`
	Decision          *ReviewDecision `json:"decision,omitempty" db:"decision"`
	Reason            *string         `json:"reason,omitempty" db:"reason"`
	DecidedBy         *int64          `json:"decidedBy,omitempty" db:"decided_by"`
	CreatedStudentID  *int64          `json:"createdStudentId,omitempty" db:"created_student_id"` // Set on DECLARED_DISTINCT
	CreatedAt         time.Time       `json:"createdAt" db:"created_at"`
	DecidedAt         *time.Time      `json:"decidedAt,omitempty" db:"decided_at"`

	ExistingStudent *Student `json:"existingStudent,omitempty"` // Relation, no db tag
}
