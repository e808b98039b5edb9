// internal/service/quiz.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Manirmaths/Naijaprep/internal/domain/ledger"
	"github.com/Manirmaths/Naijaprep/internal/domain/question"
	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
	"github.com/Manirmaths/Naijaprep/internal/metrics"
	"github.com/Manirmaths/Naijaprep/internal/sessionstore"
	"github.com/Manirmaths/Naijaprep/internal/store"
)

var (
	// ErrNoSession is returned when an idle user asks for a question or
	// submits an answer.
	ErrNoSession = errors.New("no quiz in progress")

	// ErrAmbiguousFilter is returned when a start request names both a
	// topic and an exam year.
	ErrAmbiguousFilter = errors.New("choose either a topic or an exam year, not both")
)

// StartRequest selects how the next batch is chosen. With no fields set
// the batch is adaptive.
type StartRequest struct {
	Topic    string
	ExamYear string
	Review   bool
}

// Progress describes the session after an access. Exactly one of Question
// and Result is set: Question while the batch is running, Result once it
// has completed.
type Progress struct {
	Mode      quiz.Mode
	Question  *question.Question
	Position  int
	Total     int
	Score     int
	Remaining *time.Duration
	Resumed   bool
	Result    *quiz.Result

	// Previous is the tally of an expired batch that Start closed out
	// before beginning this one.
	Previous *quiz.Result
}

// AnswerOutcome is the result of submitting an answer. Recorded is false
// when the deadline had already passed and the answer was discarded.
type AnswerOutcome struct {
	Recorded      bool
	Correct       bool
	Selected      question.Option
	CorrectOption question.Option
	Explanation   string
	PointsAwarded int
	Next          *Progress
}

type QuizConfig struct {
	TimeLimit        time.Duration
	PointsPerCorrect int
}

// QuizService drives the per-user quiz state machine. Every operation
// that can change a user's session holds that user's lock.
type QuizService struct {
	store    store.Store
	sessions sessionstore.Store
	locker   *sessionstore.Locker
	selector *quiz.Selector
	metrics  *metrics.Metrics
	logger   *slog.Logger

	timeLimit time.Duration
	points    int
	now       func() time.Time
}

func NewQuizService(s store.Store, sessions sessionstore.Store, selector *quiz.Selector, cfg QuizConfig, m *metrics.Metrics, logger *slog.Logger) *QuizService {
	return &QuizService{
		store:     s,
		sessions:  sessions,
		locker:    sessionstore.NewLocker(),
		selector:  selector,
		metrics:   m,
		logger:    logger,
		timeLimit: cfg.TimeLimit,
		points:    cfg.PointsPerCorrect,
		now:       time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (qs *QuizService) WithClock(now func() time.Time) *QuizService {
	qs.now = now
	return qs
}

// ============================================================================
// Operations
// ============================================================================

// Start begins a new batch. A user who already has a batch running gets
// that batch back unchanged; an expired batch is completed first, its
// tally is reported in Previous and a new one is started.
func (qs *QuizService) Start(ctx context.Context, userID string, req StartRequest) (*Progress, error) {
	if req.Topic != "" && req.ExamYear != "" {
		return nil, ErrAmbiguousFilter
	}

	unlock := qs.locker.Lock(userID)
	defer unlock()

	now := qs.now()
	sess, err := qs.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	var previous *quiz.Result
	if sess != nil {
		if !sess.Expired(now) && !sess.Done() {
			p, err := qs.progress(ctx, sess, now)
			if err != nil {
				return nil, err
			}
			p.Resumed = true
			return p, nil
		}
		final, err := qs.complete(ctx, userID, sess, now)
		if err != nil {
			return nil, err
		}
		previous = final.Result
	}

	mode, batch, err := qs.selectBatch(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	limit := qs.timeLimit
	if mode == quiz.ModeReview {
		limit = 0
	}
	sess = quiz.NewSession(mode, batch, now, limit)
	if err := qs.sessions.Put(ctx, userID, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	qs.metrics.SessionStarted(string(mode))
	qs.logger.Info("quiz started", "user_id", userID, "mode", mode, "questions", len(batch))

	p, err := qs.progress(ctx, sess, now)
	if err != nil {
		return nil, err
	}
	p.Previous = previous
	return p, nil
}

// Current returns the question awaiting an answer, or the final result if
// the deadline has passed.
func (qs *QuizService) Current(ctx context.Context, userID string) (*Progress, error) {
	unlock := qs.locker.Lock(userID)
	defer unlock()

	now := qs.now()
	sess, err := qs.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNoSession
	}

	if sess.Expired(now) || sess.Done() {
		return qs.complete(ctx, userID, sess, now)
	}
	return qs.progress(ctx, sess, now)
}

// Answer grades letter against the current question. The option is
// validated before any state is touched.
func (qs *QuizService) Answer(ctx context.Context, userID, letter string) (*AnswerOutcome, error) {
	selected, err := question.ParseOption(letter)
	if err != nil {
		return nil, err
	}

	unlock := qs.locker.Lock(userID)
	defer unlock()

	now := qs.now()
	sess, err := qs.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNoSession
	}

	if sess.Expired(now) || sess.Done() {
		final, err := qs.complete(ctx, userID, sess, now)
		if err != nil {
			return nil, err
		}
		return &AnswerOutcome{Selected: selected, Next: final}, nil
	}

	qid, err := sess.Current()
	if err != nil {
		return nil, err
	}
	q, err := qs.store.GetQuestion(ctx, qid)
	if err != nil {
		return nil, fmt.Errorf("load question %s: %w", qid, err)
	}

	entry := ledger.NewEntry(userID, q, selected, now)
	points := 0
	if entry.Correct {
		points = qs.points
	}
	if err := qs.store.RecordAnswer(ctx, entry, points); err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}
	qs.metrics.AnswerRecorded(entry.Correct)

	if err := sess.Record(entry.Correct); err != nil {
		return nil, err
	}

	outcome := &AnswerOutcome{
		Recorded:      true,
		Correct:       entry.Correct,
		Selected:      selected,
		CorrectOption: q.Correct,
		Explanation:   q.ExplanationText(),
		PointsAwarded: points,
	}

	if sess.Done() {
		outcome.Next, err = qs.complete(ctx, userID, sess, now)
		return outcome, err
	}

	if err := qs.sessions.Put(ctx, userID, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	outcome.Next, err = qs.progress(ctx, sess, now)
	return outcome, err
}

// Abandon discards the running batch without reporting a result. A batch
// whose deadline has already passed is completed instead and its final
// progress is returned.
func (qs *QuizService) Abandon(ctx context.Context, userID string) (*Progress, error) {
	unlock := qs.locker.Lock(userID)
	defer unlock()

	now := qs.now()
	sess, err := qs.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNoSession
	}

	if sess.Expired(now) || sess.Done() {
		return qs.complete(ctx, userID, sess, now)
	}

	if err := qs.sessions.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("clear session: %w", err)
	}
	qs.metrics.SessionFinished("abandoned")
	qs.logger.Info("quiz abandoned", "user_id", userID, "answered", sess.Index)
	return nil, nil
}

// ============================================================================
// Helpers
// ============================================================================

// load returns the stored session, or nil when the user is idle. State
// that fails validation is discarded.
func (qs *QuizService) load(ctx context.Context, userID string) (*quiz.Session, error) {
	sess, ok, err := qs.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	if err := sess.Validate(); err != nil {
		qs.logger.Warn("discarding invalid session", "user_id", userID, "error", err)
		if err := qs.sessions.Clear(ctx, userID); err != nil {
			return nil, fmt.Errorf("clear session: %w", err)
		}
		return nil, nil
	}
	return sess, nil
}

func (qs *QuizService) complete(ctx context.Context, userID string, sess *quiz.Session, now time.Time) (*Progress, error) {
	result := sess.Finish(now)
	if err := qs.sessions.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("clear session: %w", err)
	}

	reason := "completed"
	if result.TimedOut {
		reason = "timed_out"
	}
	qs.metrics.SessionFinished(reason)
	qs.logger.Info("quiz finished", "user_id", userID, "mode", result.Mode,
		"score", result.Score, "total", result.Total, "timed_out", result.TimedOut)

	return &Progress{
		Mode:     sess.Mode,
		Position: sess.Index,
		Total:    result.Total,
		Score:    result.Score,
		Result:   &result,
	}, nil
}

func (qs *QuizService) progress(ctx context.Context, sess *quiz.Session, now time.Time) (*Progress, error) {
	qid, err := sess.Current()
	if err != nil {
		return nil, err
	}
	q, err := qs.store.GetQuestion(ctx, qid)
	if err != nil {
		return nil, fmt.Errorf("load question %s: %w", qid, err)
	}
	return &Progress{
		Mode:      sess.Mode,
		Question:  q,
		Position:  sess.Position(),
		Total:     len(sess.QuestionIDs),
		Score:     sess.Score,
		Remaining: sess.Remaining(now),
	}, nil
}

func (qs *QuizService) selectBatch(ctx context.Context, userID string, req StartRequest) (quiz.Mode, []string, error) {
	switch {
	case req.Review:
		pool, err := qs.store.ListReviewQuestions(ctx, userID)
		if err != nil {
			return "", nil, err
		}
		batch, err := qs.selector.SelectFiltered("marked questions", pool)
		return quiz.ModeReview, batch, err

	case req.Topic != "":
		pool, err := qs.store.ListQuestionsByTopic(ctx, req.Topic)
		if err != nil {
			return "", nil, err
		}
		batch, err := qs.selector.SelectFiltered("topic "+req.Topic, pool)
		return quiz.ModeTopic, batch, err

	case req.ExamYear != "":
		pool, err := qs.store.ListQuestionsByExamYear(ctx, req.ExamYear)
		if err != nil {
			return "", nil, err
		}
		batch, err := qs.selector.SelectFiltered("exam year "+req.ExamYear, pool)
		return quiz.ModeExamYear, batch, err

	default:
		all, err := qs.store.ListQuestions(ctx)
		if err != nil {
			return "", nil, err
		}
		observations, err := qs.store.ListObservations(ctx, userID)
		if err != nil {
			return "", nil, err
		}
		batch, err := qs.selector.SelectAdaptive(all, quiz.Aggregate(observations))
		return quiz.ModeAdaptive, batch, err
	}
}
