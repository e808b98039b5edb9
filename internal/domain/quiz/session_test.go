package quiz_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
)

var fiveQuestions = []string{"q1", "q2", "q3", "q4", "q5"}

func TestNewSession(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := quiz.NewSession(quiz.ModeAdaptive, fiveQuestions, now, 600*time.Second)

	if s.Index != 0 || s.Score != 0 {
		t.Errorf("expected index 0 score 0, got %d/%d", s.Index, s.Score)
	}
	if s.Deadline == nil || !s.Deadline.Equal(now.Add(10*time.Minute)) {
		t.Errorf("expected deadline 10 minutes out, got %v", s.Deadline)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestNewSession_Untimed(t *testing.T) {
	s := quiz.NewSession(quiz.ModeReview, fiveQuestions, time.Now(), 0)

	if s.Deadline != nil {
		t.Error("expected no deadline")
	}
	if s.Remaining(time.Now()) != nil {
		t.Error("expected no remaining time for untimed session")
	}
	if s.Expired(time.Now().Add(24 * time.Hour)) {
		t.Error("untimed session must never expire")
	}
}

func TestNewSession_CopiesBatch(t *testing.T) {
	ids := []string{"a", "b"}
	s := quiz.NewSession(quiz.ModeTopic, ids, time.Now(), 0)

	ids[0] = "changed"
	if s.QuestionIDs[0] != "a" {
		t.Error("expected session to own its batch")
	}
}

func TestSession_CompletesAfterLastAnswer(t *testing.T) {
	now := time.Now()
	s := quiz.NewSession(quiz.ModeAdaptive, fiveQuestions, now, 600*time.Second)
	answers := []bool{true, false, true, true, false}

	completions := 0
	for i, correct := range answers {
		id, err := s.Current()
		if err != nil {
			t.Fatalf("answer %d: unexpected error: %v", i, err)
		}
		if id != fiveQuestions[i] {
			t.Errorf("answer %d: expected %s, got %s", i, fiveQuestions[i], id)
		}
		if s.Position() != i+1 {
			t.Errorf("answer %d: expected position %d, got %d", i, i+1, s.Position())
		}

		if err := s.Record(correct); err != nil {
			t.Fatalf("answer %d: unexpected error: %v", i, err)
		}
		if s.Done() {
			completions++
			if i != len(answers)-1 {
				t.Errorf("completed early after answer %d", i+1)
			}
		}
	}

	if completions != 1 {
		t.Errorf("expected exactly one completion, got %d", completions)
	}

	result := s.Finish(now.Add(time.Minute))
	if result.Score != 3 || result.Total != 5 || result.TimedOut {
		t.Errorf("expected 3/5 not timed out, got %+v", result)
	}
}

func TestSession_RecordAfterCompletion(t *testing.T) {
	s := quiz.NewSession(quiz.ModeAdaptive, []string{"q1"}, time.Now(), 0)
	if err := s.Record(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Record(true); !errors.Is(err, quiz.ErrSessionComplete) {
		t.Errorf("expected ErrSessionComplete, got %v", err)
	}
	if _, err := s.Current(); !errors.Is(err, quiz.ErrSessionComplete) {
		t.Errorf("expected ErrSessionComplete, got %v", err)
	}
	if s.Index != 1 || s.Score != 1 {
		t.Errorf("expected state untouched, got index %d score %d", s.Index, s.Score)
	}
}

func TestSession_DeadlineReportsAnsweredSoFar(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := quiz.NewSession(quiz.ModeAdaptive, fiveQuestions, start, 600*time.Second)

	s.Record(true)
	s.Record(false)

	at := start.Add(601 * time.Second)
	if !s.Expired(at) {
		t.Fatal("expected session to be expired at 601s")
	}

	result := s.Finish(at)
	if result.Total != 2 {
		t.Errorf("expected total 2 (answered so far), got %d", result.Total)
	}
	if result.Score != 1 {
		t.Errorf("expected score 1, got %d", result.Score)
	}
	if !result.TimedOut {
		t.Error("expected TimedOut")
	}
}

func TestSession_NotExpiredAtDeadline(t *testing.T) {
	start := time.Now()
	s := quiz.NewSession(quiz.ModeAdaptive, fiveQuestions, start, 600*time.Second)

	if s.Expired(start.Add(600 * time.Second)) {
		t.Error("expected session to still be live exactly at the deadline")
	}
	if r := s.Remaining(start.Add(700 * time.Second)); r == nil || *r != 0 {
		t.Errorf("expected remaining clamped to 0, got %v", r)
	}
}

func TestSession_Validate(t *testing.T) {
	tests := []struct {
		name string
		s    quiz.Session
	}{
		{"empty batch", quiz.Session{}},
		{"negative index", quiz.Session{QuestionIDs: fiveQuestions, Index: -1}},
		{"index past end", quiz.Session{QuestionIDs: fiveQuestions, Index: 6}},
		{"score above index", quiz.Session{QuestionIDs: fiveQuestions, Index: 1, Score: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.s.Validate(); !errors.Is(err, quiz.ErrCorruptSession) {
				t.Errorf("expected ErrCorruptSession, got %v", err)
			}
		})
	}
}
