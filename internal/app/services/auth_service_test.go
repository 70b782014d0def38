package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/apperrors"
	"github.com/osei/edushield/internal/pkg/auth"
)

type fakeUserStore struct {
	users         map[int64]*models.User
	refreshTokens map[string]int64
	logins        int
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{users: map[int64]*models.User{}, refreshTokens: map[string]int64{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) Activate(_ context.Context, token, hashedPassword string) (*models.User, error) {
	for _, u := range f.users {
		if u.ActivationToken != nil && *u.ActivationToken == token {
			u.Password = hashedPassword
			u.IsActive = true
			u.ActivationToken = nil
			return u, nil
		}
	}
	return nil, apperrors.ErrInvalidActivation
}

func (f *fakeUserStore) RecordLogin(_ context.Context, _ int64) error {
	f.logins++
	return nil
}

func (f *fakeUserStore) RecordLogout(_ context.Context, _ int64) error { return nil }
func (f *fakeUserStore) AcceptTerms(_ context.Context, _ int64) error  { return nil }

func (f *fakeUserStore) SaveRefreshToken(_ context.Context, userID int64, token string, _ time.Time) error {
	f.refreshTokens[token] = userID
	return nil
}

func (f *fakeUserStore) ConsumeRefreshToken(_ context.Context, token string) (int64, error) {
	userID, ok := f.refreshTokens[token]
	if !ok {
		return 0, apperrors.ErrRefreshTokenInvalid
	}
	delete(f.refreshTokens, token)
	return userID, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserStore) {
	t.Helper()

	hashed, err := auth.HashPassword("S3cret!pass")
	require.NoError(t, err)

	schoolID := int64(7)
	store := newFakeUserStore(&models.User{
		ID:       1,
		Email:    "admin@school.edu.gh",
		Password: hashed,
		Role:     models.RoleSchoolAdmin,
		SchoolID: &schoolID,
		IsActive: true,
	})

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "edushield.test",
	})

	return NewAuthService(store, jwtService), store
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	svc, store := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@school.edu.gh",
		Password: "S3cret!pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 1, store.logins)
}

func TestLogin_UniformErrorForUnknownAndWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, unknownErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@school.edu.gh",
		Password: "S3cret!pass",
	})
	_, wrongErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@school.edu.gh",
		Password: "wrong",
	})

	assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, apperrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, store := newAuthFixture(t)
	store.users[1].IsActive = false

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@school.edu.gh",
		Password: "S3cret!pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountInactive)
}

func TestRefreshToken_SingleUse(t *testing.T) {
	svc, _ := newAuthFixture(t)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@school.edu.gh",
		Password: "S3cret!pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenInvalid)
}

func TestActivate_TokenValidOnce(t *testing.T) {
	svc, store := newAuthFixture(t)
	token := "activation-token"
	store.users[2] = &models.User{
		ID:              2,
		Email:           "new@school.edu.gh",
		Role:            models.RoleAdmissions,
		ActivationToken: &token,
	}

	user, err := svc.Activate(context.Background(), &dto.ActivateRequest{
		Token:    token,
		Password: "N3w!password",
	})
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	_, err = svc.Activate(context.Background(), &dto.ActivateRequest{
		Token:    token,
		Password: "N3w!password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidActivation)
}
