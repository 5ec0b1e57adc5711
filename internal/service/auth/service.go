package auth

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type ServiceImpl struct {
	userRepo   user.Repository
	jwtService jwt.Service
}

func NewService(userRepo user.Repository, jwtService jwt.Service) auth.Service {
	return &ServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login implements auth.Service. Unknown emails and bad passwords both
// resolve to ErrInvalidCredentials so the response never reveals which
// part failed.
func (s *ServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	account, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if !account.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(account)
}

// Refresh implements auth.Service.
func (s *ServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := s.validateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	account, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if !account.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	// Rotate: the old refresh token dies with the new issue
	s.jwtService.RevokeToken(refreshToken)

	return s.issueTokens(account)
}

// Logout implements auth.Service.
func (s *ServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.validateRefreshToken(refreshToken); err != nil {
		return err
	}

	s.jwtService.RevokeToken(refreshToken)
	return nil
}

func (s *ServiceImpl) issueTokens(account user.User) (auth.TokenResponse, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(account.ID, account.CompanyID, account.Role)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	refreshToken, _, err := s.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *ServiceImpl) validateRefreshToken(refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", auth.ErrInvalidToken
	}
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return "", auth.ErrTokenRevoked
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	if token.Expiration().Before(time.Now()) {
		return "", auth.ErrTokenExpired
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return "", auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}

	return userID, nil
}
