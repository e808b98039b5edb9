package quiz

import (
	"time"
)

// Mode records how a batch was chosen.
type Mode string

const (
	ModeAdaptive Mode = "adaptive"
	ModeTopic    Mode = "topic"
	ModeExamYear Mode = "exam_year"
	ModeReview   Mode = "review"
)

// DefaultTimeLimit is the deadline applied to timed quizzes.
const DefaultTimeLimit = 600 * time.Second

// Session is the in-progress state of one quiz batch. A user with no
// stored Session is idle. The struct is JSON-encoded by session stores.
type Session struct {
	Mode        Mode       `json:"mode"`
	QuestionIDs []string   `json:"question_ids"`
	Index       int        `json:"index"`
	Score       int        `json:"score"`
	StartedAt   time.Time  `json:"started_at"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// Result is the final tally reported when a session ends.
type Result struct {
	Mode     Mode `json:"mode"`
	Score    int  `json:"score"`
	Total    int  `json:"total"`
	TimedOut bool `json:"timed_out"`
}

// NewSession starts a batch at index 0. A positive limit sets a deadline.
func NewSession(mode Mode, questionIDs []string, now time.Time, limit time.Duration) *Session {
	batch := make([]string, len(questionIDs))
	copy(batch, questionIDs)

	s := &Session{
		Mode:        mode,
		QuestionIDs: batch,
		StartedAt:   now.UTC(),
	}
	if limit > 0 {
		deadline := s.StartedAt.Add(limit)
		s.Deadline = &deadline
	}
	return s
}

// Validate checks the index invariant on state loaded from storage.
func (s *Session) Validate() error {
	if len(s.QuestionIDs) == 0 || s.Index < 0 || s.Index > len(s.QuestionIDs) || s.Score < 0 || s.Score > s.Index {
		return ErrCorruptSession
	}
	return nil
}

// Done reports whether every question in the batch has been answered.
func (s *Session) Done() bool {
	return s.Index >= len(s.QuestionIDs)
}

// Expired reports whether the deadline, if any, has passed.
func (s *Session) Expired(now time.Time) bool {
	return s.Deadline != nil && now.After(*s.Deadline)
}

// Remaining returns the time left before the deadline, or nil for untimed
// sessions. It never returns a negative duration.
func (s *Session) Remaining(now time.Time) *time.Duration {
	if s.Deadline == nil {
		return nil
	}
	d := max(s.Deadline.Sub(now), 0)
	return &d
}

// Current returns the ID of the question awaiting an answer.
func (s *Session) Current() (string, error) {
	if s.Done() {
		return "", ErrSessionComplete
	}
	return s.QuestionIDs[s.Index], nil
}

// Position is the 1-based number of the current question.
func (s *Session) Position() int {
	return min(s.Index+1, len(s.QuestionIDs))
}

// Record advances past the current question.
func (s *Session) Record(correct bool) error {
	if s.Done() {
		return ErrSessionComplete
	}
	if correct {
		s.Score++
	}
	s.Index++
	return nil
}

// Finish computes the final tally. When the deadline cut the batch short,
// only answered questions count toward the total.
func (s *Session) Finish(now time.Time) Result {
	r := Result{
		Mode:  s.Mode,
		Score: s.Score,
		Total: len(s.QuestionIDs),
	}
	if !s.Done() && s.Expired(now) {
		r.Total = s.Index
		r.TimedOut = true
	}
	return r
}
