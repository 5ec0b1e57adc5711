package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	users map[string]user.User // keyed by email
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func newTestService(t *testing.T, active bool) auth.Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubUserRepo{users: map[string]user.User{
		"payroll@example.com": {
			ID:           "user-1",
			CompanyID:    "company-1",
			Email:        "payroll@example.com",
			PasswordHash: string(hash),
			Role:         user.RolePayroll,
			IsActive:     active,
		},
	}}
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	return NewService(repo, jwtService)
}

func TestLogin_Success(t *testing.T) {
	service := newTestService(t, true)

	tokens, err := service.Login(context.Background(), auth.LoginRequest{
		Email:    "payroll@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Greater(t, tokens.ExpiresAt, int64(0))
}

func TestLogin_WrongPassword(t *testing.T) {
	service := newTestService(t, true)

	_, err := service.Login(context.Background(), auth.LoginRequest{
		Email:    "payroll@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	service := newTestService(t, true)

	_, err := service.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	service := newTestService(t, false)

	_, err := service.Login(context.Background(), auth.LoginRequest{
		Email:    "payroll@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestRefresh_RotatesToken(t *testing.T) {
	service := newTestService(t, true)
	ctx := context.Background()

	tokens, err := service.Login(ctx, auth.LoginRequest{
		Email:    "payroll@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := service.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The consumed refresh token is revoked
	_, err = service.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	service := newTestService(t, true)
	ctx := context.Background()

	tokens, err := service.Login(ctx, auth.LoginRequest{
		Email:    "payroll@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Refresh(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_RevokesToken(t *testing.T) {
	service := newTestService(t, true)
	ctx := context.Background()

	tokens, err := service.Login(ctx, auth.LoginRequest{
		Email:    "payroll@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, tokens.RefreshToken))

	_, err = service.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}
