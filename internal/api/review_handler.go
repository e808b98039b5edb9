package api

import (
	"net/http"
)

type MarkReviewResponse struct {
	QuestionID string `json:"question_id"`
	Marked     bool   `json:"marked"`
	Created    bool   `json:"created"`
}

// GET /review
func (h *Handler) listReview(w http.ResponseWriter, r *http.Request) {
	questions, err := h.reviews.List(r.Context(), userIDFrom(r.Context()))
	if h.handleError(w, err, "review") {
		return
	}
	respondJSON(w, http.StatusOK, toQuestionResponses(questions))
}

// PUT /review/{questionID}
func (h *Handler) markReview(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionID")

	created, err := h.reviews.Mark(r.Context(), userIDFrom(r.Context()), questionID)
	if h.handleError(w, err, "question") {
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, MarkReviewResponse{QuestionID: questionID, Marked: true, Created: created})
}

// DELETE /review/{questionID}
func (h *Handler) unmarkReview(w http.ResponseWriter, r *http.Request) {
	err := h.reviews.Unmark(r.Context(), userIDFrom(r.Context()), r.PathValue("questionID"))
	if h.handleError(w, err, "review mark") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
