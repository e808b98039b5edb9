package api

import (
	"net/http"
	"time"

	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
)

// ── Request / Response types ────────────────────────────────────────────────

type ResultRowResponse struct {
	QuestionID string    `json:"question_id"`
	Prompt     string    `json:"prompt"`
	Selected   string    `json:"selected" example:"A. 1"`
	Correct    string    `json:"correct" example:"B. 2"`
	IsCorrect  bool      `json:"is_correct"`
	IsMarked   bool      `json:"is_marked"`
	AnsweredAt time.Time `json:"answered_at"`
}

type DashboardResponse struct {
	Username  string              `json:"username" example:"ada"`
	Points    int                 `json:"points" example:"120"`
	Topics    []quiz.TopicSummary `json:"topics"`
	Marked    []QuestionResponse  `json:"marked"`
	ExamYears []string            `json:"exam_years"`
}

type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /results
func (h *Handler) recentResults(w http.ResponseWriter, r *http.Request) {
	rows, err := h.stats.RecentResults(r.Context(), userIDFrom(r.Context()))
	if h.handleError(w, err, "results") {
		return
	}

	resp := make([]ResultRowResponse, len(rows))
	for i, row := range rows {
		resp[i] = ResultRowResponse(row)
	}
	respondJSON(w, http.StatusOK, resp)
}

// dashboard godoc
// @Summary      Progress dashboard
// @Description  Per-topic accuracy, points, marked questions and the exam-year filters available.
// @Tags         Results
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DashboardResponse
// @Router       /dashboard [get]
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.stats.Dashboard(r.Context(), userIDFrom(r.Context()))
	if h.handleError(w, err, "user") {
		return
	}

	topics := d.Topics
	if topics == nil {
		topics = []quiz.TopicSummary{}
	}
	years := d.ExamYears
	if years == nil {
		years = []string{}
	}

	respondJSON(w, http.StatusOK, DashboardResponse{
		Username:  d.Username,
		Points:    d.Points,
		Topics:    topics,
		Marked:    toQuestionResponses(d.Marked),
		ExamYears: years,
	})
}

// aiFeedback godoc
// @Summary      AI study feedback
// @Description  Ask the configured language model for advice based on per-topic accuracy.
// @Tags         Results
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  FeedbackResponse
// @Failure      503  {object}  FeedbackResponse  "feedback unavailable"
// @Router       /feedback [post]
func (h *Handler) aiFeedback(w http.ResponseWriter, r *http.Request) {
	res, err := h.feedback.Feedback(r.Context(), userIDFrom(r.Context()))
	if h.handleError(w, err, "user") {
		return
	}

	status := http.StatusOK
	if res.Degraded {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, FeedbackResponse{Feedback: res.Text})
}
