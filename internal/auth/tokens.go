// Package auth issues and verifies the signed tokens used for API access
// and password resets.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer = "naijaprep"

	purposeAccess = "access"
	purposeReset  = "password-reset"

	// ResetTTL is how long a password reset link stays valid.
	ResetTTL = time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	jwt.RegisteredClaims
	Purpose  string `json:"purpose"`
	Username string `json:"username,omitempty"`
}

type Tokens struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

func NewTokens(secret string, accessTTL time.Duration) *Tokens {
	return &Tokens{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (t *Tokens) WithClock(now func() time.Time) *Tokens {
	t.now = now
	return t
}

// IssueAccess returns a bearer token identifying userID.
func (t *Tokens) IssueAccess(userID, username string) (string, error) {
	return t.sign(userID, purposeAccess, username, t.accessTTL)
}

// ParseAccess returns the user id carried by an access token.
func (t *Tokens) ParseAccess(token string) (string, error) {
	claims, err := t.parse(token, purposeAccess)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// IssueReset returns a single-purpose token for resetting the password of
// the account registered under email.
func (t *Tokens) IssueReset(email string) (string, error) {
	return t.sign(email, purposeReset, "", ResetTTL)
}

// ParseReset returns the email carried by a reset token.
func (t *Tokens) ParseReset(token string) (string, error) {
	claims, err := t.parse(token, purposeReset)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (t *Tokens) sign(subject, purpose, username string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Purpose:  purpose,
		Username: username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *Tokens) parse(token, purpose string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Purpose != purpose || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
