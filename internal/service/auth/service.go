package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminSubject is the token subject of the single administrator.
const AdminSubject = "admin"

type AuthServiceImpl struct {
	jwtService        jwt.Service
	adminPasswordHash string
}

func NewAuthService(jwtService jwt.Service, adminPasswordHash string) auth.AuthService {
	return &AuthServiceImpl{
		jwtService:        jwtService,
		adminPasswordHash: adminPasswordHash,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if a.adminPasswordHash == "" {
		return auth.TokenResponse{}, auth.ErrAdminLoginDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.adminPasswordHash), []byte(req.Password)); err != nil {
		slog.Warn("Admin login rejected")
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(AdminSubject, true)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("Admin logged in")
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresAt: expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, accessToken string) error {
	token, err := jwtauth.VerifyToken(a.jwtService.JWTAuth(), accessToken)
	if err != nil {
		return auth.ErrInvalidToken
	}

	a.jwtService.RevokeToken(accessToken, token.Expiration().Unix())
	return nil
}
