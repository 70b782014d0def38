package dto

// CreateDisputeRequest raises a dispute against a student's record.
// Submitted as a multipart form; a proof file may accompany it under "proof".
type CreateDisputeRequest struct {
	StudentID   int64  `form:"studentId" json:"studentId" binding:"required,min=1"`
	RaisedBy    string `form:"raisedBy" json:"raisedBy"` // PARENT|STUDENT|ADMIN, default PARENT
	Reason      string `form:"reason" json:"reason" binding:"required,min=3"`
	Description string `form:"description" json:"description"`
}

// ResolveDisputeRequest closes a dispute under review
type ResolveDisputeRequest struct {
	Status string `json:"status" binding:"required"` // RESOLVED_ACCEPTED|RESOLVED_REJECTED
	Note   string `json:"note"`
}

// ActiveDisputeConflict surfaces the existing dispute blocking a new one
type ActiveDisputeConflict struct {
	ExistingDisputeID int64  `json:"existingDisputeId"`
	Status            string `json:"status"`
}
