package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/Manirmaths/Naijaprep/internal/id"
)

const (
	minUsername = 2
	maxUsername = 20

	// MinPasswordLength applies to changed and reset passwords.
	MinPasswordLength = 6
)

// ErrPasswordMismatch is returned when a password does not match its hash.
var ErrPasswordMismatch = errors.New("password does not match")

// ValidationError reports a single invalid field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Points       int
	CreatedAt    time.Time
}

// New validates registration input and hashes the password.
func New(username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < minUsername || n > maxUsername {
		return nil, &ValidationError{Field: "username", Reason: fmt.Sprintf("must be between %d and %d characters", minUsername, maxUsername)}
	}

	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "is required"}
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:           id.GenerateID(),
		Username:     username,
		Email:        normalized,
		PasswordHash: hash,
		Points:       0,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// NormalizeEmail validates an address and lower-cases it so lookups are
// case-insensitive.
func NormalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return "", &ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	return strings.ToLower(addr.Address), nil
}

// CheckPassword returns ErrPasswordMismatch if password is wrong.
func (u *User) CheckPassword(password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

// SetPassword replaces the hash after enforcing the minimum length.
func (u *User) SetPassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", &ValidationError{Field: "password", Reason: "is too long"}
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
