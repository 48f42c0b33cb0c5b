package tokenstore

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is a display-only peek at the access token's claims. The token
// is treated as opaque for authorization purposes; claims are parsed without
// signature verification and must never gate API calls.
type TokenInfo struct {
	UserID    int64
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Inspect parses token as an unverified JWT and extracts the claims the CLI
// shows in its status line. Returns an error for non-JWT tokens.
func Inspect(token string) (*TokenInfo, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("inspect token: %w", err)
	}

	info := &TokenInfo{}
	if id, ok := claims["user_id"].(float64); ok {
		info.UserID = int64(id)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	return info, nil
}
