package models

import "time"

// DisputeStatus is the dispute lifecycle status.
// OPEN -> UNDER_REVIEW -> RESOLVED_ACCEPTED | RESOLVED_REJECTED.
type DisputeStatus string

const (
	DisputeOpen             DisputeStatus = "OPEN"
	DisputeUnderReview      DisputeStatus = "UNDER_REVIEW"
	DisputeResolvedAccepted DisputeStatus = "RESOLVED_ACCEPTED"
	DisputeResolvedRejected DisputeStatus = "RESOLVED_REJECTED"
)

// Active reports whether the dispute still counts against the
// one-active-dispute-per-student invariant.
func (s DisputeStatus) Active() bool {
	return s == DisputeOpen || s == DisputeUnderReview
}

// DisputeRaisedBy values
const (
	RaisedByParent  = "PARENT"
	RaisedByStudent = "STUDENT"
	RaisedByAdmin   = "ADMIN"
)

// Dispute represents a contestation of a student's record, based on the
// 'disputes' table.
type Dispute struct {
	ID             int64         `json:"id" db:"id" example:"1"`
	StudentID      int64         `json:"studentId" db:"student_id"`
	RaisedBy       string        `json:"raisedBy" db:"raised_by" example:"PARENT"`
	Reason         string        `json:"reason" db:"reason"`
	Description    string        `json:"description,omitempty" db:"description"`
	ProofURL       *string       `json:"proofUrl,omitempty" db:"proof_url"`
	Status         DisputeStatus `json:"status" db:"status" example:"OPEN"`
	ResolvedBy     *int64        `json:"resolvedBy,omitempty" db:"resolved_by"`
	ResolutionNote *string       `json:"resolutionNote,omitempty" db:"resolution_note"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	ResolvedAt     *time.Time    `json:"resolvedAt,omitempty" db:"resolved_at"`

	Student *Student `json:"student,omitempty"` // Relation, no db tag
}
