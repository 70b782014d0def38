package dto

// CreateFlagRequest records a financial-obligation flag against a student
type CreateFlagRequest struct {
	StudentID int64    `json:"studentId" binding:"required,min=1"`
	SchoolID  int64    `json:"schoolId" binding:"required,min=1"`
	Amount    *float64 `json:"amount" binding:"required"`
	Currency  string   `json:"currency"` // Defaults GHS unless exactly "USD"
	ParentID  *int64   `json:"parentId"`
	Reason    string   `json:"reason"` // Defaults "Unpaid fees"
}

// CreateConsentRequest opens a consent request for a flagged student
type CreateConsentRequest struct {
	StudentID int64 `json:"studentId" binding:"required,min=1"`
	SchoolID  int64 `json:"schoolId" binding:"required,min=1"`
}

// RejectConsentRequest rejects a pending consent request; a reason is mandatory
type RejectConsentRequest struct {
	Reason string `json:"reason" binding:"required,min=1"`
}
