package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes short-lived access tokens from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// IsValid checks if the kind is one of the known values.
func (k TokenKind) IsValid() bool {
	return k == TokenKindAccess || k == TokenKindRefresh
}

// Claims is the signed claim set. On the wire it is {"sub", "exp", "kind"}.
type Claims struct {
	Kind TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// SubjectID returns the subject the token was issued for.
func (c *Claims) SubjectID() string {
	return c.Subject
}

// ExpiresAtTime returns the absolute expiry, or the zero time when absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}

	return c.ExpiresAt.Time
}

// TokenPair is what a successful login or refresh hands back.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// TokenService issues and verifies signed tokens. Implementations hold no
// mutable state and are safe for concurrent use.
type TokenService interface {
	// IssueTokens mints a fresh access/refresh pair for subject.
	IssueTokens(subject string) (*TokenPair, error)

	// VerifyToken decodes token, checks its signature and expiry and that its
	// kind equals expected. Every failure is reported as ErrTokenInvalid.
	VerifyToken(token string, expected TokenKind) (*Claims, error)

	// AccessTokenTTL returns the configured lifetime of access tokens.
	AccessTokenTTL() time.Duration
}
