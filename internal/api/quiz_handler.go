package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
	"github.com/Manirmaths/Naijaprep/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartQuizRequest struct {
	Topic    string `json:"topic,omitempty" example:"Algebra"`
	ExamYear string `json:"exam_year,omitempty" example:"JAMB"`
}

func (r *StartQuizRequest) Validate() error {
	r.Topic = strings.TrimSpace(r.Topic)
	r.ExamYear = strings.TrimSpace(r.ExamYear)
	if r.Topic != "" && r.ExamYear != "" {
		return service.ErrAmbiguousFilter
	}
	return nil
}

type SubmitAnswerRequest struct {
	Option string `json:"option" example:"B"`
}

func (r *SubmitAnswerRequest) Validate() error {
	if r.Option == "" {
		return errors.New("option is required")
	}
	return nil
}

// ProgressResponse carries either the current question or, once the quiz
// has ended, the final result.
type ProgressResponse struct {
	Mode             quiz.Mode         `json:"mode" example:"adaptive"`
	Position         int               `json:"position" example:"1"`
	Total            int               `json:"total" example:"5"`
	Score            int               `json:"score" example:"0"`
	RemainingSeconds *int              `json:"remaining_seconds,omitempty" example:"600"`
	Resumed          bool              `json:"resumed,omitempty"`
	Question         *QuestionResponse `json:"question,omitempty"`
	Result           *quiz.Result      `json:"result,omitempty"`
	Previous         *quiz.Result      `json:"previous,omitempty"`
}

type AnswerResponse struct {
	Recorded      bool             `json:"recorded"`
	Correct       bool             `json:"correct"`
	Selected      string           `json:"selected" example:"B"`
	CorrectOption string           `json:"correct_option,omitempty" example:"B"`
	Explanation   string           `json:"explanation,omitempty"`
	PointsAwarded int              `json:"points_awarded"`
	Next          ProgressResponse `json:"next"`
}

func toProgressResponse(p *service.Progress) ProgressResponse {
	resp := ProgressResponse{
		Mode:     p.Mode,
		Position: p.Position,
		Total:    p.Total,
		Score:    p.Score,
		Resumed:  p.Resumed,
		Result:   p.Result,
		Previous: p.Previous,
	}
	if p.Remaining != nil {
		secs := int(p.Remaining.Seconds())
		resp.RemainingSeconds = &secs
	}
	if p.Question != nil {
		q := toQuestionResponse(p.Question)
		resp.Question = &q
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startQuiz godoc
// @Summary      Start a quiz
// @Description  Start a five-question quiz. Without filters the batch targets the weakest topic.
// @Description  A quiz already in progress is returned unchanged.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      StartQuizRequest  false  "Optional topic or exam-year filter"
// @Success      201   {object}  ProgressResponse
// @Success      200   {object}  ProgressResponse  "existing quiz resumed"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string  "not enough questions"
// @Router       /quiz [post]
func (h *Handler) startQuiz(w http.ResponseWriter, r *http.Request) {
	var req StartQuizRequest
	if r.ContentLength != 0 && !decodeAndValidate(w, r, &req) {
		return
	}

	h.start(w, r, service.StartRequest{Topic: req.Topic, ExamYear: req.ExamYear})
}

// POST /quiz/review
func (h *Handler) startReviewQuiz(w http.ResponseWriter, r *http.Request) {
	h.start(w, r, service.StartRequest{Review: true})
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request, req service.StartRequest) {
	p, err := h.quiz.Start(r.Context(), userIDFrom(r.Context()), req)
	if h.handleError(w, err, "quiz") {
		return
	}

	status := http.StatusCreated
	if p.Resumed {
		status = http.StatusOK
	}
	respondJSON(w, status, toProgressResponse(p))
}

// GET /quiz
func (h *Handler) currentQuestion(w http.ResponseWriter, r *http.Request) {
	p, err := h.quiz.Current(r.Context(), userIDFrom(r.Context()))
	if h.handleError(w, err, "quiz") {
		return
	}
	respondJSON(w, http.StatusOK, toProgressResponse(p))
}

// submitAnswer godoc
// @Summary      Answer the current question
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      SubmitAnswerRequest  true  "Selected option (A-D)"
// @Success      200   {object}  AnswerResponse
// @Failure      400   {object}  map[string]string  "invalid option"
// @Failure      404   {object}  map[string]string  "no quiz in progress"
// @Router       /quiz/answer [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	out, err := h.quiz.Answer(r.Context(), userIDFrom(r.Context()), req.Option)
	if h.handleError(w, err, "question") {
		return
	}

	resp := AnswerResponse{
		Recorded:      out.Recorded,
		Correct:       out.Correct,
		Selected:      out.Selected.String(),
		PointsAwarded: out.PointsAwarded,
		Next:          toProgressResponse(out.Next),
	}
	if out.Recorded {
		resp.CorrectOption = out.CorrectOption.String()
		resp.Explanation = out.Explanation
	}
	respondJSON(w, http.StatusOK, resp)
}

// DELETE /quiz
// Answers 204, or 200 with the final result when the deadline had already
// passed.
func (h *Handler) abandonQuiz(w http.ResponseWriter, r *http.Request) {
	final, err := h.quiz.Abandon(r.Context(), userIDFrom(r.Context()))
	if h.handleError(w, err, "quiz") {
		return
	}
	if final != nil {
		respondJSON(w, http.StatusOK, toProgressResponse(final))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
