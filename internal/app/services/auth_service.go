package services

import (
	"context"
	"errors"
	"time"

	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/apperrors"
	"github.com/osei/edushield/internal/pkg/auth"
	"github.com/osei/edushield/internal/pkg/logger"
)

// userStore is the slice of the user repository the auth service needs
type userStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Activate(ctx context.Context, token, hashedPassword string) (*models.User, error)
	RecordLogin(ctx context.Context, userID int64) error
	RecordLogout(ctx context.Context, userID int64) error
	AcceptTerms(ctx context.Context, userID int64) error
	SaveRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	ConsumeRefreshToken(ctx context.Context, token string) (int64, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo   userStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service instance
func NewAuthService(userRepo userStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues a token pair. Failed lookups and
// wrong passwords produce the same error so the response does not reveal
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a refresh token for a new pair. Refresh tokens are
// single use; the consumed row is gone before the new pair is issued.
func (s *AuthService) RefreshToken(ctx context.Context, token string) (*dto.LoginResponse, error) {
	userID, err := s.userRepo.ConsumeRefreshToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(
		user.ID, user.Email, string(user.Role), schoolIDValue(user))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveRefreshToken(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		TokenType:    "Bearer",
	}, nil
}

// Logout records the logout event for the user's audit trail
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.userRepo.RecordLogout(ctx, userID)
}

// Activate redeems an activation token: sets the first password and marks the
// account active. The token is valid exactly once.
func (s *AuthService) Activate(ctx context.Context, req *dto.ActivateRequest) (*models.User, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Activate(ctx, req.Token, hashed)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Msg("Account activated")
	return user, nil
}

// AcceptTerms records the user's acceptance of the usage terms
func (s *AuthService) AcceptTerms(ctx context.Context, userID int64) error {
	return s.userRepo.AcceptTerms(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.LoginResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(
		user.ID, user.Email, string(user.Role), schoolIDValue(user))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveRefreshToken(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	if err := s.userRepo.RecordLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		TokenType:    "Bearer",
	}, nil
}

// schoolIDValue maps the nullable school link to the zero-means-none claim
func schoolIDValue(user *models.User) int64 {
	if user.SchoolID == nil {
		return 0
	}
	return *user.SchoolID
}
