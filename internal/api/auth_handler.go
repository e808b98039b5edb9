package api

import (
	"errors"
	"net/http"

	"github.com/Manirmaths/Naijaprep/internal/domain/user"
	"github.com/Manirmaths/Naijaprep/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type RegisterRequest struct {
	Username        string `json:"username" example:"ada"`
	Email           string `json:"email" example:"ada@example.com"`
	Password        string `json:"password" example:"secret"`
	ConfirmPassword string `json:"confirm_password" example:"secret"`
}

func (r *RegisterRequest) Validate() error {
	if r.Username == "" {
		return errors.New("username is required")
	}
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"secret"`
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" {
		return errors.New("current_password is required")
	}
	if r.NewPassword == "" {
		return errors.New("new_password is required")
	}
	return nil
}

type ResetRequest struct {
	Email string `json:"email" example:"ada@example.com"`
}

func (r *ResetRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

type ResetPasswordRequest struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ResetPasswordRequest) Validate() error {
	if r.NewPassword == "" {
		return errors.New("new_password is required")
	}
	return nil
}

type UserResponse struct {
	ID       string `json:"id" example:"a1b2c3d4e5f6g7h8"`
	Username string `json:"username" example:"ada"`
	Email    string `json:"email" example:"ada@example.com"`
	Points   int    `json:"points" example:"120"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type" example:"Bearer"`
	User      UserResponse `json:"user"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email, Points: u.Points}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// register godoc
// @Summary      Create an account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Account details"
// @Success      201   {object}  UserResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string  "username or email already taken"
// @Router       /auth/register [post]
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := h.accounts.Register(r.Context(), service.RegisterRequest{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if h.handleError(w, err, "username or email") {
		return
	}

	respondJSON(w, http.StatusCreated, toUserResponse(u))
}

// login godoc
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  LoginResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, u, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if h.handleError(w, err, "user") {
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		User:      toUserResponse(u),
	})
}

// POST /auth/password
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.accounts.ChangePassword(r.Context(), userIDFrom(r.Context()), req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if h.handleError(w, err, "user") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /auth/reset
func (h *Handler) requestReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if h.handleError(w, h.accounts.RequestReset(r.Context(), req.Email), "account") {
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "reset link sent"})
}

// POST /auth/reset/{token}
func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.accounts.ResetPassword(r.Context(), r.PathValue("token"), req.NewPassword, req.ConfirmPassword)
	if h.handleError(w, err, "account") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
