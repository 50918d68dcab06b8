package authclient

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkrupp/homecase-sessiongate/internal/domain"
)

// TokenInfo is metadata read from a session token without verifying it.
// It is for display and logging only and must never drive authorization.
type TokenInfo struct {
	Subject    string
	ExpiresAt  time.Time
	Structured bool // The token parsed as a JWT
}

// Inspect reads the subject and expiry from a JWT-shaped token. Opaque tokens
// yield a zero TokenInfo.
func Inspect(token domain.SessionToken) TokenInfo {
	claims := jwt.MapClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token.String(), claims); err != nil {
		return TokenInfo{}
	}

	info := TokenInfo{Structured: true}

	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}

	return info
}
