package dto

// CreateStudentRequest is the multipart form payload for student creation.
// A photo file may accompany the form under the "photo" field.
type CreateStudentRequest struct {
	FirstName   string `form:"firstName" json:"firstName" binding:"required,min=2,max=100"`
	LastName    string `form:"lastName" json:"lastName" binding:"required,min=2,max=100"`
	DateOfBirth string `form:"dateOfBirth" json:"dateOfBirth" binding:"required"` // YYYY-MM-DD
	Gender      string `form:"gender" json:"gender" binding:"omitempty,oneof=M F"`
	SchoolID    int64  `form:"schoolId" json:"schoolId" binding:"required,min=1"`
	LegacyClass string `form:"legacyClass" json:"legacyClass"`
	ParentID    *int64 `form:"parentId" json:"parentId"`

	// Inline parent creation, used when ParentID is absent
	ParentName  string `form:"parentName" json:"parentName"`
	ParentPhone string `form:"parentPhone" json:"parentPhone"`
}

// UpdateStudentSchoolRequest transfers a student to another school
type UpdateStudentSchoolRequest struct {
	SchoolID int64 `json:"schoolId" binding:"required,min=1"`
}

// AssignParentRequest reassigns the student's current guardian
type AssignParentRequest struct {
	ParentID int64 `json:"parentId" binding:"required,min=1"`
}

// CreateParentRequest creates a standalone parent record
type CreateParentRequest struct {
	FullName   string `json:"fullName" binding:"required,min=2,max=255"`
	Phone      string `json:"phone" binding:"required,max=30"`
	CardNumber string `json:"cardNumber" binding:"max=50"`
	Address    string `json:"address" binding:"max=255"`
}

// DuplicateConflict is returned when a submission collides with an
// existing student; the client receives the review id, never a student id.
type DuplicateConflict struct {
	ReviewID          int64 `json:"reviewId"`
	ExistingStudentID int64 `json:"existingStudentId"`
}

// ResolveReviewRequest decides a pending duplicate review
type ResolveReviewRequest struct {
	Decision string `json:"decision" binding:"required,oneof=MERGED DECLARED_DISTINCT"`
	Reason   string `json:"reason" binding:"required,min=3"`
}

// ImportResult summarizes one bulk import run
type ImportResult struct {
	Created    []ImportedStudent `json:"created"`
	Duplicates []ImportDuplicate `json:"duplicates"`
	Errors     []ImportRowError  `json:"errors"`
}

// ImportedStudent is one successfully created row
type ImportedStudent struct {
	RowNumber  int    `json:"row"`
	StudentID  int64  `json:"studentId"`
	Identifier string `json:"identifier"`
}

// ImportDuplicate is one row routed to duplicate review
type ImportDuplicate struct {
	RowNumber int   `json:"row"`
	ReviewID  int64 `json:"reviewId"`
}

// ImportRowError is one row rejected before any write
type ImportRowError struct {
	RowNumber int    `json:"row"`
	Message   string `json:"message"`
}
