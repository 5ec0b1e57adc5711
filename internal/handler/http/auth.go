package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.Service
	jwtService  jwt.Service
}

func NewAuthHandler(authService auth.Service, jwtService jwt.Service) AuthHandler {
	return &authHandlerImpl{
		authService: authService,
		jwtService:  jwtService,
	}
}

// Login implements AuthHandler. The refresh token travels in an
// HTTP-only cookie; the body carries only the access token.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokens, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.setRefreshCookie(w, tokens.RefreshToken)

	response.SuccessWithMessage(w, "Login successful", auth.TokenResponse{
		AccessToken: tokens.AccessToken,
		ExpiresAt:   tokens.ExpiresAt,
	})
}

// RefreshToken implements AuthHandler.
func (h *authHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken := h.refreshTokenFrom(r)
	if refreshToken == "" {
		response.Unauthorized(w, "Refresh token is required")
		return
	}

	tokens, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.setRefreshCookie(w, tokens.RefreshToken)

	response.SuccessWithMessage(w, "Token refreshed", auth.TokenResponse{
		AccessToken: tokens.AccessToken,
		ExpiresAt:   tokens.ExpiresAt,
	})
}

// Logout implements AuthHandler.
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken := h.refreshTokenFrom(r)
	if refreshToken == "" {
		response.Unauthorized(w, "Refresh token is required")
		return
	}

	if err := h.authService.Logout(r.Context(), refreshToken); err != nil {
		response.HandleError(w, err)
		return
	}

	// Expire the cookie
	cookie := h.jwtService.RefreshTokenCookie("", time.Now().Add(-time.Hour).Unix())
	http.SetCookie(w, cookie)

	response.SuccessWithMessage(w, "Logout successful", nil)
}

func (h *authHandlerImpl) refreshTokenFrom(r *http.Request) string {
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return ""
	}
	return body.RefreshToken
}

func (h *authHandlerImpl) setRefreshCookie(w http.ResponseWriter, token string) {
	// Cookie lifetime tracks the refresh expiration embedded in the token
	expiresAt := time.Now().Add(7 * 24 * time.Hour).Unix()
	if decoded, err := h.jwtService.JWTAuth().Decode(token); err == nil {
		expiresAt = decoded.Expiration().Unix()
	}
	http.SetCookie(w, h.jwtService.RefreshTokenCookie(token, expiresAt))
}
