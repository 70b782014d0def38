package dto

import "github.com/osei/edushield/internal/app/models"

// Overall verification status values
const (
	VerificationFlagged  = "FLAGGED"
	VerificationClear    = "CLEAR"
	VerificationEngaged  = "ENGAGED"
	VerificationNotFound = "NOT_FOUND"
)

// StudentVerificationResponse is the read-only student-first lookup result.
// Parents include both current guardians and historical guardians referenced
// by flags.
type StudentVerificationResponse struct {
	Status   string            `json:"status"` // FLAGGED or CLEAR
	Students []*models.Student `json:"students"`
	Flags    []*models.Flag    `json:"flags"`
	Parents  []*models.Parent  `json:"parents"`
}

// TeacherVerificationResponse is the read-only teacher-first lookup result
type TeacherVerificationResponse struct {
	Status   string            `json:"status"` // FLAGGED or ENGAGED
	Teachers []*models.Teacher `json:"teachers"`
	Summary  TeacherSummary    `json:"summary"`
}

// TeacherSummary counts engagement statuses among the matched teachers
type TeacherSummary struct {
	Engaged int `json:"engaged"`
	Flagged int `json:"flagged"`
	Cleared int `json:"cleared"`
}
