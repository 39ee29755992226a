package auth

import "context"

// AuthService authenticates the administrator of the time-clock
type AuthService interface {
	// Login checks the admin password and issues an access token
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Logout revokes an access token until it expires
	Logout(ctx context.Context, accessToken string) error
}
