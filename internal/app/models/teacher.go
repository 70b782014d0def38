package models

import "time"

// TeacherStatus is the teacher engagement status
type TeacherStatus string

const (
	TeacherEngaged TeacherStatus = "ENGAGED"
	TeacherFlagged TeacherStatus = "FLAGGED"
	TeacherCleared TeacherStatus = "CLEARED"
)

// Teacher defines the teacher model based on the 'teachers' table.
// SchoolID becomes NULL once a teacher is cleared (released from the school).
type Teacher struct {
	ID            int64         `json:"id" db:"id" example:"1"`
	FirstName     string        `json:"firstName" db:"first_name" example:"Yaw"`
	LastName      string        `json:"lastName" db:"last_name" example:"Boateng"`
	DateOfBirth   *time.Time    `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Gender        string        `json:"gender,omitempty" db:"gender"`
	Phone         *string       `json:"phone,omitempty" db:"phone"`
	SchoolID      *int64        `json:"schoolId,omitempty" db:"school_id"`
	Qualification string        `json:"qualification,omitempty" db:"qualification"`
	Status        TeacherStatus `json:"status" db:"status" example:"ENGAGED"`
	Reason        string        `json:"reason" db:"reason"` // Non-null by contract, may be empty
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`

	School   *School           `json:"school,omitempty"`   // Relation, no db tag
	Evidence []TeacherEvidence `json:"evidence,omitempty"` // Relation, no db tag
}

// TeacherEvidence is one stored evidence attachment for a teacher
type TeacherEvidence struct {
	ID         int64     `json:"id" db:"id"`
	TeacherID  int64     `json:"teacherId" db:"teacher_id"`
	FileURL    string    `json:"fileUrl" db:"file_url"`
	FileName   string    `json:"fileName" db:"file_name"`
	UploadedBy *int64    `json:"uploadedBy,omitempty" db:"uploaded_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
