package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository            *UserRepository
	SchoolRepository          *SchoolRepository
	ParentRepository          *ParentRepository
	StudentRepository         *StudentRepository
	TeacherRepository         *TeacherRepository
	FlagRepository            *FlagRepository
	ConsentRepository         *ConsentRepository
	DisputeRepository         *DisputeRepository
	DuplicateReviewRepository *DuplicateReviewRepository
	VerificationRepository    *VerificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:            NewUserRepository(db),
		SchoolRepository:          NewSchoolRepository(db),
		ParentRepository:          NewParentRepository(db),
		StudentRepository:         NewStudentRepository(db),
		TeacherRepository:         NewTeacherRepository(db),
		FlagRepository:            NewFlagRepository(db),
		ConsentRepository:         NewConsentRepository(db),
		DisputeRepository:         NewDisputeRepository(db),
		DuplicateReviewRepository: NewDuplicateReviewRepository(db),
		VerificationRepository:    NewVerificationRepository(db),
	}
}
