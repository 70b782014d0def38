package dto

// CreateSchoolRequest creates a school tenant
type CreateSchoolRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Location string `json:"location" binding:"max=255"`
	Verified bool   `json:"verified"`
}

// UpdateSchoolRequest updates school details
type UpdateSchoolRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Location string `json:"location" binding:"max=255"`
	Verified *bool  `json:"verified"`
}

// CreateUserRequest creates a school-bound admin or admissions user.
// The user is created inactive with an activation token.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required,min=2,max=255"`
	Role     string `json:"role" binding:"required,oneof=SUPER_ADMIN SCHOOL_ADMIN ADMISSIONS"`
	SchoolID *int64 `json:"schoolId"` // Required unless role is SUPER_ADMIN
}

// CreateUserResponse returns the activation token for out-of-band delivery
type CreateUserResponse struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	ActivationToken string `json:"activationToken"`
}
