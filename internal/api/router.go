// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Accounts
	mux.HandleFunc("POST /auth/register", h.register)
	mux.HandleFunc("POST /auth/login", h.login)
	mux.HandleFunc("POST /auth/password", h.requireAuth(h.changePassword))
	mux.HandleFunc("POST /auth/reset", h.requestReset)
	mux.HandleFunc("POST /auth/reset/{token}", h.resetPassword)

	// Quiz
	mux.HandleFunc("POST /quiz", h.requireAuth(h.startQuiz))
	mux.HandleFunc("GET /quiz", h.requireAuth(h.currentQuestion))
	mux.HandleFunc("POST /quiz/answer", h.requireAuth(h.submitAnswer))
	mux.HandleFunc("DELETE /quiz", h.requireAuth(h.abandonQuiz))
	mux.HandleFunc("POST /quiz/review", h.requireAuth(h.startReviewQuiz))

	// Results
	mux.HandleFunc("GET /results", h.requireAuth(h.recentResults))
	mux.HandleFunc("GET /dashboard", h.requireAuth(h.dashboard))
	mux.HandleFunc("POST /feedback", h.requireAuth(h.aiFeedback))

	// Questions
	mux.HandleFunc("GET /questions/{questionID}", h.requireAuth(h.getQuestion))
	mux.HandleFunc("GET /questions/{questionID}/explanation", h.requireAuth(h.explain))

	// Review marks
	mux.HandleFunc("GET /review", h.requireAuth(h.listReview))
	mux.HandleFunc("PUT /review/{questionID}", h.requireAuth(h.markReview))
	mux.HandleFunc("DELETE /review/{questionID}", h.requireAuth(h.unmarkReview))
}
