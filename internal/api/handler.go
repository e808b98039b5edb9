// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Manirmaths/Naijaprep/internal/auth"
	"github.com/Manirmaths/Naijaprep/internal/domain/question"
	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
	"github.com/Manirmaths/Naijaprep/internal/domain/user"
	"github.com/Manirmaths/Naijaprep/internal/service"
	"github.com/Manirmaths/Naijaprep/internal/store"
)

const maxBodyBytes = 1 << 20

// Services groups the application services the handlers call into.
type Services struct {
	Quiz     *service.QuizService
	Review   *service.ReviewService
	Auth     *service.AuthService
	Stats    *service.StatsService
	Feedback *service.FeedbackService
}

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	quiz     *service.QuizService
	reviews  *service.ReviewService
	accounts *service.AuthService
	stats    *service.StatsService
	feedback *service.FeedbackService
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(svc Services, logger *slog.Logger) *Handler {
	return &Handler{
		quiz:     svc.Quiz,
		reviews:  svc.Review,
		accounts: svc.Auth,
		stats:    svc.Stats,
		feedback: svc.Feedback,
		logger:   logger,
	}
}

// validator is implemented by request bodies that check their own fields.
type validator interface {
	Validate() error
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads the request body into v. It writes a 400 and returns
// false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleError maps service and store errors to HTTP responses. Returns
// true if an error was handled (caller should return).
func (h *Handler) handleError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}

	var (
		invalidOption *question.InvalidOptionError
		pool          *quiz.InsufficientPoolError
		invalid       *user.ValidationError
	)

	switch {
	case errors.As(err, &invalidOption):
		respondError(w, http.StatusBadRequest, invalidOption.Error())
	case errors.As(err, &invalid):
		respondError(w, http.StatusBadRequest, invalid.Error())
	case errors.As(err, &pool):
		respondJSON(w, http.StatusConflict, map[string]string{
			"error": pool.Error(),
			"hint":  "choose another topic or take a general quiz",
		})
	case errors.Is(err, service.ErrAmbiguousFilter):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, unauthorizedMessage(err))
	case errors.Is(err, service.ErrNoSession), errors.Is(err, service.ErrNoResults):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, store.ErrAlreadyExists):
		respondError(w, http.StatusConflict, fmt.Sprintf("%s already exists", entity))
	default:
		h.logger.Error("request failed", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}

func unauthorizedMessage(err error) string {
	if errors.Is(err, auth.ErrInvalidToken) {
		return auth.ErrInvalidToken.Error()
	}
	return err.Error()
}
