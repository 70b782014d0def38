package dto

// LoginRequest is the credential payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@school.edu.gh"`
	Password string `json:"password" binding:"required" example:"S3cret!pass"`
}

// LoginResponse carries the issued token pair
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"` // Seconds
	TokenType    string `json:"tokenType" example:"Bearer"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ActivateRequest redeems an activation token and sets the first password
type ActivateRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}
