package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Manirmaths/Naijaprep/internal/domain/question"
	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
	"github.com/Manirmaths/Naijaprep/internal/store"
)

// RecentLimit is the number of answers shown on the results page.
const RecentLimit = 5

// ErrNoResults is returned when the user has not answered anything yet.
var ErrNoResults = errors.New("no quiz results found")

type Dashboard struct {
	Username  string
	Points    int
	Topics    []quiz.TopicSummary
	Marked    []*question.Question
	ExamYears []string
}

// ResultRow is one recently answered question.
type ResultRow struct {
	QuestionID string
	Prompt     string
	Selected   string
	Correct    string
	IsCorrect  bool
	IsMarked   bool
	AnsweredAt time.Time
}

type StatsService struct {
	store store.Store
}

func NewStatsService(s store.Store) *StatsService {
	return &StatsService{store: s}
}

// TopicStats returns the user's accuracy per topic, ordered by topic name.
func (ss *StatsService) TopicStats(ctx context.Context, userID string) ([]quiz.TopicSummary, error) {
	observations, err := ss.store.ListObservations(ctx, userID)
	if err != nil {
		return nil, err
	}
	return quiz.SortedTopics(quiz.Aggregate(observations)), nil
}

// Dashboard loads the independent dashboard sections concurrently.
func (ss *StatsService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		u, err := ss.store.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		d.Username, d.Points = u.Username, u.Points
		return nil
	})
	g.Go(func() error {
		topics, err := ss.TopicStats(ctx, userID)
		d.Topics = topics
		return err
	})
	g.Go(func() error {
		marked, err := ss.store.ListReviewQuestions(ctx, userID)
		d.Marked = marked
		return err
	})
	g.Go(func() error {
		years, err := ss.store.ListExamYears(ctx)
		d.ExamYears = years
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// RecentResults returns the latest answers, most recent first.
func (ss *StatsService) RecentResults(ctx context.Context, userID string) ([]ResultRow, error) {
	entries, err := ss.store.RecentEntries(ctx, userID, RecentLimit)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoResults
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.QuestionID
	}

	var (
		questions map[string]*question.Question
		marked    map[string]bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = ss.store.GetQuestions(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		marked, err = ss.store.ReviewQuestionIDs(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]ResultRow, 0, len(entries))
	for _, e := range entries {
		q, ok := questions[e.QuestionID]
		if !ok {
			continue
		}
		rows = append(rows, ResultRow{
			QuestionID: q.ID,
			Prompt:     q.Prompt,
			Selected:   q.Label(e.Selected),
			Correct:    q.Label(q.Correct),
			IsCorrect:  e.Correct,
			IsMarked:   marked[q.ID],
			AnsweredAt: e.AnsweredAt,
		})
	}
	return rows, nil
}

func (ss *StatsService) Question(ctx context.Context, questionID string) (*question.Question, error) {
	return ss.store.GetQuestion(ctx, questionID)
}

// Explain returns the stored explanation or a placeholder.
func (ss *StatsService) Explain(ctx context.Context, questionID string) (string, error) {
	q, err := ss.store.GetQuestion(ctx, questionID)
	if err != nil {
		return "", err
	}
	return q.ExplanationText(), nil
}
