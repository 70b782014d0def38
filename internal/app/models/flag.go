package models

import "time"

// FlagStatus is the flag lifecycle status. The transition is one-way:
// a CLEARED flag is terminal, a new debt requires a new flag row.
type FlagStatus string

const (
	FlagFlagged FlagStatus = "FLAGGED"
	FlagCleared FlagStatus = "CLEARED"
)

// Currency codes accepted on a flag
const (
	CurrencyGHS = "GHS"
	CurrencyUSD = "USD"
)

// DefaultFlagReason is recorded when the reporting school gives no reason
const DefaultFlagReason = "Unpaid fees"

// Flag defines the financial-obligation flag model based on the 'flags' table
type Flag struct {
	ID        int64      `json:"id" db:"id" example:"1"`
	StudentID int64      `json:"studentId" db:"student_id" example:"42"`
	ParentID  *int64     `json:"parentId,omitempty" db:"parent_id"`
	SchoolID  int64      `json:"schoolId" db:"school_id" example:"7"` // Reporting school
	Amount    float64    `json:"amount" db:"amount" example:"500"`
	Currency  string     `json:"currency" db:"currency" example:"GHS"`
	Reason    string     `json:"reason" db:"reason" example:"Unpaid fees"`
	Status    FlagStatus `json:"status" db:"status" example:"FLAGGED"`
	CreatedBy int64      `json:"createdBy" db:"created_by"`
	ClearedBy *int64     `json:"clearedBy,omitempty" db:"cleared_by"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	ClearedAt *time.Time `json:"clearedAt,omitempty" db:"cleared_at"`

	Student *Student `json:"student,omitempty"` // Relation, no db tag
	Parent  *Parent  `json:"parent,omitempty"`  // Relation, no db tag
	School  *School  `json:"school,omitempty"`  // Relation, no db tag
}

// FlagAuditLog is one append-only audit row. Audit rows are never updated
// or deleted; amount and currency are snapshotted at transition time.
type FlagAuditLog struct {
	ID        int64     `json:"id" db:"id"`
	FlagID    int64     `json:"flagId" db:"flag_id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	ParentID  *int64    `json:"parentId,omitempty" db:"parent_id"`
	SchoolID  int64     `json:"schoolId" db:"school_id"`
	Action    string    `json:"action" db:"action" example:"FLAGGED"`
	Amount    float64   `json:"amount" db:"amount"`
	Currency  string    `json:"currency" db:"currency"`
	ActorID   int64     `json:"actorId" db:"actor_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// FlagTotals is one row of the school dashboard aggregation
type FlagTotals struct {
	Month    string     `json:"month" db:"month"` // YYYY-MM
	Currency string     `json:"currency" db:"currency"`
	Status   FlagStatus `json:"status" db:"status"`
	Total    float64    `json:"total" db:"total"`
	Count    int64      `json:"count" db:"count"`
}
