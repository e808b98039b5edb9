package store

import (
	"context"
	"errors"

	"github.com/Manirmaths/Naijaprep/internal/domain/ledger"
	"github.com/Manirmaths/Naijaprep/internal/domain/question"
	"github.com/Manirmaths/Naijaprep/internal/domain/user"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Store is the persistence contract used by the services. SQLiteStore is
// the only production implementation.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	UpdatePassword(ctx context.Context, userID, hash string) error

	// Questions
	SaveQuestion(ctx context.Context, q *question.Question) error
	GetQuestion(ctx context.Context, id string) (*question.Question, error)
	GetQuestions(ctx context.Context, ids []string) (map[string]*question.Question, error)
	ListQuestions(ctx context.Context) ([]*question.Question, error)
	ListQuestionsByTopic(ctx context.Context, topic string) ([]*question.Question, error)
	ListQuestionsByExamYear(ctx context.Context, fragment string) ([]*question.Question, error)
	ListExamYears(ctx context.Context) ([]string, error)

	// Response ledger
	RecordAnswer(ctx context.Context, entry ledger.Entry, points int) error
	ListObservations(ctx context.Context, userID string) ([]ledger.Observation, error)
	RecentEntries(ctx context.Context, userID string, limit int) ([]ledger.Entry, error)

	// Review marks
	MarkForReview(ctx context.Context, userID, questionID string) (bool, error)
	UnmarkForReview(ctx context.Context, userID, questionID string) error
	ListReviewQuestions(ctx context.Context, userID string) ([]*question.Question, error)
	ReviewQuestionIDs(ctx context.Context, userID string) (map[string]bool, error)
}
