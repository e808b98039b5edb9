package service_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Manirmaths/Naijaprep/internal/domain/question"
	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
	"github.com/Manirmaths/Naijaprep/internal/domain/user"
	"github.com/Manirmaths/Naijaprep/internal/metrics"
	"github.com/Manirmaths/Naijaprep/internal/service"
	"github.com/Manirmaths/Naijaprep/internal/sessionstore"
	"github.com/Manirmaths/Naijaprep/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// clock is a manually advanced time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type env struct {
	store *store.SQLiteStore
	quiz  *service.QuizService
	clock *clock
	user  *user.User
}

func openStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createUser(t *testing.T, s store.Store, name string) *user.User {
	t.Helper()
	u, err := user.New(name, name+"@example.com", "secret")
	if err != nil {
		t.Fatalf("failed to build user: %v", err)
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}

// seedQuestions stores count questions in topic. Every answer key is B.
func seedQuestions(t *testing.T, s store.Store, topic string, count int, examYear string) []*question.Question {
	t.Helper()
	var out []*question.Question
	for i := 0; i < count; i++ {
		q, err := question.New(topic, 1, fmt.Sprintf("%s question %d", topic, i),
			[question.NumOptions]string{"1", "2", "3", "4"}, question.B)
		if err != nil {
			t.Fatalf("failed to build question: %v", err)
		}
		q.SetExamYear(examYear)
		if err := s.SaveQuestion(context.Background(), q); err != nil {
			t.Fatalf("failed to save question: %v", err)
		}
		out = append(out, q)
	}
	return out
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := openStore(t)
	seedQuestions(t, s, "Algebra", 6, "JAMB 2019")
	seedQuestions(t, s, "Geometry", 5, "WAEC 2020")
	seedQuestions(t, s, "Statistics", 4, "")

	c := newClock()
	qs := service.NewQuizService(
		s,
		sessionstore.NewMemoryStore(),
		quiz.NewSelector(quiz.DefaultBatchSize, rand.NewSource(42)),
		service.QuizConfig{TimeLimit: quiz.DefaultTimeLimit, PointsPerCorrect: 10},
		metrics.New(),
		discardLogger(),
	).WithClock(c.Now)

	return &env{
		store: s,
		quiz:  qs,
		clock: c,
		user:  createUser(t, s, "ada"),
	}
}
