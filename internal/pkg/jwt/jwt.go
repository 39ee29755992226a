package jwt

import (
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"

	sseTokenTTL = 5 * time.Minute
)

type Service interface {
	GenerateAccessToken(subject string, isAdmin bool) (token string, expiresAt int64, err error)
	GenerateSSEToken(subject string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (subject string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenTTL time.Duration
	tokenAuth      *jwtauth.JWTAuth
	revokedTokens  map[string]int64
	mu             sync.RWMutex
	now            func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenTTL time.Duration) Service {
	return &JWTService{
		accessTokenTTL: accessTokenTTL,
		tokenAuth:      jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:  make(map[string]int64),
		now:            time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(subject string, isAdmin bool) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":      subject,
		"is_admin": isAdmin,
		"type":     TokenTypeAccess,
		"exp":      expiresAt,
	})
	return tokenString, expiresAt, err
}

// RevokeToken blocks token until its own expiry. Expired entries are pruned on each call.
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	for t, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// GenerateSSEToken generates a short-lived token for the report stream,
// which cannot carry an Authorization header from EventSource.
func (j *JWTService) GenerateSSEToken(subject string) (token string, expiresIn int, err error) {
	expiresAt := j.now().Add(sseTokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  subject,
		"type": TokenTypeSSE,
		"exp":  expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(sseTokenTTL.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns its subject
func (j *JWTService) ValidateSSEToken(tokenString string) (subject string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeSSE {
		return "", jwt.ErrInvalidJWT()
	}

	if token.Subject() == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return token.Subject(), nil
}
