package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Manirmaths/Naijaprep/internal/auth"
	"github.com/Manirmaths/Naijaprep/internal/domain/user"
	"github.com/Manirmaths/Naijaprep/internal/notify"
	"github.com/Manirmaths/Naijaprep/internal/store"
)

// ErrInvalidCredentials is returned for a failed login or a wrong current
// password. It does not reveal which part was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Sender queues an outbound message. *notify.Dispatcher implements it.
type Sender interface {
	Send(msg notify.Message) string
}

type RegisterRequest struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type AuthService struct {
	store   store.Store
	tokens  *auth.Tokens
	sender  Sender
	baseURL string
	logger  *slog.Logger
}

func NewAuthService(s store.Store, tokens *auth.Tokens, sender Sender, baseURL string, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:   s,
		tokens:  tokens,
		sender:  sender,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (as *AuthService) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, &user.ValidationError{Field: "confirm_password", Reason: "must match password"}
	}

	u, err := user.New(req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if err := as.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	as.logger.Info("user registered", "user_id", u.ID)
	return u, nil
}

// Login returns a signed access token for the account registered under email.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	u, err := as.store.GetUserByEmail(ctx, normalized)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if err := u.CheckPassword(password); err != nil {
		if errors.Is(err, user.ErrPasswordMismatch) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	token, err := as.tokens.IssueAccess(u.ID, u.Username)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Authenticate resolves a bearer token to a user id.
func (as *AuthService) Authenticate(token string) (string, error) {
	return as.tokens.ParseAccess(token)
}

func (as *AuthService) ChangePassword(ctx context.Context, userID, current, next, confirm string) error {
	u, err := as.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := u.CheckPassword(current); err != nil {
		if errors.Is(err, user.ErrPasswordMismatch) {
			return ErrInvalidCredentials
		}
		return err
	}

	return as.setPassword(ctx, u, next, confirm)
}

// RequestReset queues a message carrying a one-hour reset link.
func (as *AuthService) RequestReset(ctx context.Context, email string) error {
	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		return err
	}

	u, err := as.store.GetUserByEmail(ctx, normalized)
	if err != nil {
		return err
	}

	token, err := as.tokens.IssueReset(u.Email)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s", as.baseURL, token)
	jobID := as.sender.Send(notify.Message{
		To:      u.Email,
		Subject: "Password Reset Request",
		Body:    "To reset your password, visit the following link:\n" + link + "\n\nIf you did not make this request, simply ignore this email.",
	})

	as.logger.Info("password reset requested", "user_id", u.ID, "job_id", jobID)
	return nil
}

func (as *AuthService) ResetPassword(ctx context.Context, token, next, confirm string) error {
	email, err := as.tokens.ParseReset(token)
	if err != nil {
		return err
	}

	u, err := as.store.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	return as.setPassword(ctx, u, next, confirm)
}

func (as *AuthService) setPassword(ctx context.Context, u *user.User, next, confirm string) error {
	if next != confirm {
		return &user.ValidationError{Field: "confirm_password", Reason: "must match password"}
	}
	if err := u.SetPassword(next); err != nil {
		return err
	}
	if err := as.store.UpdatePassword(ctx, u.ID, u.PasswordHash); err != nil {
		return err
	}

	as.logger.Info("password updated", "user_id", u.ID)
	return nil
}
