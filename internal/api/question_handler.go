package api

import (
	"net/http"

	"github.com/Manirmaths/Naijaprep/internal/domain/question"
)

// ── Request / Response types ────────────────────────────────────────────────

type OptionResponse struct {
	Letter string `json:"letter" example:"B"`
	Text   string `json:"text" example:"x = 2"`
}

// QuestionResponse never carries the answer key.
type QuestionResponse struct {
	ID         string           `json:"id" example:"q1w2e3r4t5y6u7i8"`
	Topic      string           `json:"topic" example:"Algebra"`
	Difficulty int              `json:"difficulty" example:"1"`
	Prompt     string           `json:"prompt" example:"Solve for x: 2x + 3 = 7"`
	Options    []OptionResponse `json:"options"`
	ExamYear   *string          `json:"exam_year,omitempty" example:"JAMB 2019"`
}

type ExplanationResponse struct {
	Explanation string `json:"explanation" example:"Subtract 3 from both sides, then divide by 2."`
}

func toQuestionResponse(q *question.Question) QuestionResponse {
	options := make([]OptionResponse, question.NumOptions)
	for i := range options {
		o := question.Option(i)
		options[i] = OptionResponse{Letter: o.String(), Text: q.OptionText(o)}
	}
	return QuestionResponse{
		ID:         q.ID,
		Topic:      q.Topic,
		Difficulty: q.Difficulty,
		Prompt:     q.Prompt,
		Options:    options,
		ExamYear:   q.ExamYear,
	}
}

func toQuestionResponses(questions []*question.Question) []QuestionResponse {
	out := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		out[i] = toQuestionResponse(q)
	}
	return out
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /questions/{questionID}
func (h *Handler) getQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.stats.Question(r.Context(), r.PathValue("questionID"))
	if h.handleError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, toQuestionResponse(q))
}

// explain godoc
// @Summary      Explain a question
// @Description  Return the worked explanation for a question, or a placeholder when none is stored.
// @Tags         Questions
// @Produce      json
// @Security     BearerAuth
// @Param        questionID  path      string  true  "Question ID"
// @Success      200         {object}  ExplanationResponse
// @Failure      404         {object}  map[string]string
// @Router       /questions/{questionID}/explanation [get]
func (h *Handler) explain(w http.ResponseWriter, r *http.Request) {
	text, err := h.stats.Explain(r.Context(), r.PathValue("questionID"))
	if h.handleError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, ExplanationResponse{Explanation: text})
}
