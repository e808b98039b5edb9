package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Manirmaths/Naijaprep/internal/api"
	"github.com/Manirmaths/Naijaprep/internal/auth"
	"github.com/Manirmaths/Naijaprep/internal/domain/question"
	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
	"github.com/Manirmaths/Naijaprep/internal/feedback"
	"github.com/Manirmaths/Naijaprep/internal/infrastructure/config"
	"github.com/Manirmaths/Naijaprep/internal/metrics"
	"github.com/Manirmaths/Naijaprep/internal/notify"
	"github.com/Manirmaths/Naijaprep/internal/service"
	"github.com/Manirmaths/Naijaprep/internal/sessionstore"
	"github.com/Manirmaths/Naijaprep/internal/store"
)

type testServer struct {
	*httptest.Server
	store *store.SQLiteStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	for _, topic := range []string{"Algebra", "Geometry"} {
		for i := 0; i < 5; i++ {
			q, _ := question.New(topic, 1, fmt.Sprintf("%s %d", topic, i),
				[question.NumOptions]string{"1", "2", "3", "4"}, question.B)
			if err := s.SaveQuestion(context.Background(), q); err != nil {
				t.Fatalf("failed to seed: %v", err)
			}
		}
	}

	m := metrics.New()
	dispatcher := notify.NewDispatcher(notify.NewLogNotifier(logger), 1, logger)
	t.Cleanup(dispatcher.Close)

	stats := service.NewStatsService(s)
	h := api.NewHandler(api.Services{
		Quiz: service.NewQuizService(s, sessionstore.NewMemoryStore(),
			quiz.NewSelector(quiz.DefaultBatchSize, rand.NewSource(7)),
			service.QuizConfig{TimeLimit: quiz.DefaultTimeLimit, PointsPerCorrect: 10}, m, logger),
		Review:   service.NewReviewService(s, logger),
		Auth:     service.NewAuthService(s, auth.NewTokens("secret", time.Hour), dispatcher, "http://localhost", logger),
		Stats:    stats,
		Feedback: service.NewFeedbackService(stats, feedback.Disabled{Err: &config.MissingError{Key: "OPENAI_API_KEY"}}, m, logger),
	}, logger)

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, h)

	srv := httptest.NewServer(api.Logging(logger, m)(api.CORS("*")(mux)))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, store: s}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, ts.URL+path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	raw, _ := io.ReadAll(resp.Body)
	json.Unmarshal(raw, &out)
	return resp, out
}

func (ts *testServer) login(t *testing.T) string {
	t.Helper()
	resp, _ := ts.do(t, "POST", "/auth/register", "", map[string]string{
		"username": "ada", "email": "ada@example.com", "password": "secret", "confirm_password": "secret",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on register, got %d", resp.StatusCode)
	}

	resp, body := ts.do(t, "POST", "/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "secret",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d", resp.StatusCode)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("expected a token")
	}
	return token
}

func TestQuizFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	resp, body := ts.do(t, "POST", "/quiz", token, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", resp.StatusCode, body)
	}
	if body["position"] != float64(1) || body["total"] != float64(5) || body["question"] == nil {
		t.Errorf("unexpected start body %v", body)
	}
	q := body["question"].(map[string]any)
	if _, leaked := q["correct"]; leaked {
		t.Error("question response must not carry the answer key")
	}

	resp, body = ts.do(t, "POST", "/quiz", token, nil)
	if resp.StatusCode != http.StatusOK || body["resumed"] != true {
		t.Errorf("expected resumed quiz, got %d %v", resp.StatusCode, body)
	}

	var last map[string]any
	for i := 0; i < 5; i++ {
		resp, last = ts.do(t, "POST", "/quiz/answer", token, map[string]string{"option": "B"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("answer %d: expected 200, got %d", i+1, resp.StatusCode)
		}
	}
	next := last["next"].(map[string]any)
	result, ok := next["result"].(map[string]any)
	if !ok {
		t.Fatalf("expected final result, got %v", next)
	}
	if result["score"] != float64(5) || result["total"] != float64(5) {
		t.Errorf("unexpected result %v", result)
	}

	resp, _ = ts.do(t, "GET", "/quiz", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 when idle, got %d", resp.StatusCode)
	}

	resp, body = ts.do(t, "GET", "/dashboard", token, nil)
	if resp.StatusCode != http.StatusOK || body["points"] != float64(50) {
		t.Errorf("expected 50 points on dashboard, got %d %v", resp.StatusCode, body)
	}

	req, _ := http.NewRequest("GET", ts.URL+"/results", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer res.Body.Close()
	var rows []map[string]any
	json.NewDecoder(res.Body).Decode(&rows)
	if len(rows) != 5 {
		t.Errorf("expected 5 result rows, got %d", len(rows))
	}
}

func TestInvalidOption(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)
	ts.do(t, "POST", "/quiz", token, nil)

	resp, _ := ts.do(t, "POST", "/quiz/answer", token, map[string]string{"option": "E"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	_, body := ts.do(t, "GET", "/quiz", token, nil)
	if body["position"] != float64(1) {
		t.Errorf("expected position to stay at 1, got %v", body["position"])
	}
}

func TestInsufficientPool(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	resp, body := ts.do(t, "POST", "/quiz", token, map[string]string{"topic": "Calculus"})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", resp.StatusCode)
	}
	if body["hint"] == nil {
		t.Errorf("expected fallback hint, got %v", body)
	}

	resp, _ = ts.do(t, "POST", "/quiz", token, map[string]string{"topic": "Algebra", "exam_year": "JAMB"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for two filters, got %d", resp.StatusCode)
	}
}

func TestReviewMarks(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)
	questions, _ := ts.store.ListQuestions(context.Background())
	qid := questions[0].ID

	resp, _ := ts.do(t, "PUT", "/review/"+qid, token, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201 on first mark, got %d", resp.StatusCode)
	}
	resp, _ = ts.do(t, "PUT", "/review/"+qid, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 on repeated mark, got %d", resp.StatusCode)
	}
	resp, _ = ts.do(t, "PUT", "/review/missing", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown question, got %d", resp.StatusCode)
	}

	resp, _ = ts.do(t, "POST", "/quiz/review", token, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 with one mark, got %d", resp.StatusCode)
	}

	resp, _ = ts.do(t, "DELETE", "/review/"+qid, token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	resp, _ = ts.do(t, "DELETE", "/review/"+qid, token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 on second unmark, got %d", resp.StatusCode)
	}
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	for _, tc := range []struct{ method, path, token string }{
		{"POST", "/quiz", ""},
		{"GET", "/dashboard", "not-a-token"},
		{"POST", "/feedback", ""},
	} {
		resp, _ := ts.do(t, tc.method, tc.path, tc.token, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", tc.method, tc.path, resp.StatusCode)
		}
	}

	resp, _ := ts.do(t, "POST", "/auth/login", "", map[string]string{"email": "ada@example.com", "password": "nope"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad login, got %d", resp.StatusCode)
	}
}

func TestFeedbackDegradesWithoutKey(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	resp, body := ts.do(t, "POST", "/feedback", token, nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
	if body["feedback"] != service.MsgFeedbackUnconfigured {
		t.Errorf("unexpected feedback %v", body["feedback"])
	}
}

func TestExplanation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)
	questions, _ := ts.store.ListQuestions(context.Background())

	resp, body := ts.do(t, "GET", "/questions/"+questions[0].ID+"/explanation", token, nil)
	if resp.StatusCode != http.StatusOK || body["explanation"] != "No explanation available." {
		t.Errorf("unexpected explanation %d %v", resp.StatusCode, body)
	}

	resp, _ = ts.do(t, "GET", "/questions/missing", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(t, "POST", "/auth/login", "", map[string]string{})
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for empty login, got %d", resp.StatusCode)
	}
}

func TestAbandonQuiz(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	resp, _ := ts.do(t, "DELETE", "/quiz", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 when idle, got %d", resp.StatusCode)
	}

	ts.do(t, "POST", "/quiz", token, nil)
	resp, _ = ts.do(t, "DELETE", "/quiz", token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}

	resp, _ = ts.do(t, "GET", "/quiz", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after abandon, got %d", resp.StatusCode)
	}
}
