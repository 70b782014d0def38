package services

import (
	"github.com/osei/edushield/internal/app/repositories"
	"github.com/osei/edushield/internal/pkg/auth"
	"github.com/osei/edushield/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService         *AuthService
	SchoolService       *SchoolService
	ParentService       *ParentService
	StudentService      *StudentService
	ImportService       *ImportService
	TeacherService      *TeacherService
	FlagService         *FlagService
	ConsentService      *ConsentService
	DisputeService      *DisputeService
	ReviewService       *ReviewService
	VerificationService *VerificationService
}

// NewServices wires all services onto the repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, storage filestorage.FileStorage) *Services {
	studentService := NewStudentService(
		repos.StudentRepository,
		repos.ParentRepository,
		repos.DuplicateReviewRepository,
		repos.SchoolRepository,
		storage,
	)

	return &Services{
		AuthService:         NewAuthService(repos.UserRepository, jwtService),
		SchoolService:       NewSchoolService(repos.SchoolRepository, repos.UserRepository),
		ParentService:       NewParentService(repos.ParentRepository),
		StudentService:      studentService,
		ImportService:       NewImportService(studentService),
		TeacherService:      NewTeacherService(repos.TeacherRepository, repos.SchoolRepository, storage),
		FlagService:         NewFlagService(repos.FlagRepository, repos.StudentRepository, repos.ParentRepository, repos.SchoolRepository),
		ConsentService:      NewConsentService(repos.ConsentRepository, repos.StudentRepository),
		DisputeService:      NewDisputeService(repos.DisputeRepository, repos.StudentRepository, storage),
		ReviewService:       NewReviewService(repos.DuplicateReviewRepository),
		VerificationService: NewVerificationService(repos.VerificationRepository),
	}
}
