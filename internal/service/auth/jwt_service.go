// Package auth issues and validates the bearer tokens that protect the
// generation endpoints when a signing secret is configured.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing API bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the given API client.
	GenerateToken(ctx context.Context, subject string) (string, error)

	// ValidateToken validates the token string and extracts its claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated claims of an access token.
type Claims struct {
	// Subject identifies the API client the token was issued for.
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
