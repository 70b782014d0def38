package dto

// CreateTeacherRequest creates a teacher record
type CreateTeacherRequest struct {
	FirstName     string `json:"firstName" binding:"required,min=2,max=100"`
	LastName      string `json:"lastName" binding:"required,min=2,max=100"`
	DateOfBirth   string `json:"dateOfBirth" binding:"omitempty"` // YYYY-MM-DD
	Gender        string `json:"gender" binding:"omitempty,oneof=M F"`
	Phone         string `json:"phone" binding:"max=30"`
	SchoolID      int64  `json:"schoolId" binding:"required,min=1"`
	Qualification string `json:"qualification" binding:"max=255"`
}

// UpdateTeacherRequest updates teacher details
type UpdateTeacherRequest struct {
	FirstName     string `json:"firstName" binding:"required,min=2,max=100"`
	LastName      string `json:"lastName" binding:"required,min=2,max=100"`
	Phone         string `json:"phone" binding:"max=30"`
	Qualification string `json:"qualification" binding:"max=255"`
}

// FlagTeacherRequest marks a teacher as flagged with a misconduct reason
type FlagTeacherRequest struct {
	Reason string `json:"reason" binding:"required,min=3"`
}
