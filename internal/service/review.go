package service

import (
	"context"
	"log/slog"

	"github.com/Manirmaths/Naijaprep/internal/domain/question"
	"github.com/Manirmaths/Naijaprep/internal/store"
)

// ReviewService manages the questions a user has flagged for revisiting.
type ReviewService struct {
	store  store.Store
	logger *slog.Logger
}

func NewReviewService(s store.Store, logger *slog.Logger) *ReviewService {
	return &ReviewService{store: s, logger: logger}
}

// Mark flags a question. Marking twice is a no-op and reports created=false.
func (rs *ReviewService) Mark(ctx context.Context, userID, questionID string) (bool, error) {
	created, err := rs.store.MarkForReview(ctx, userID, questionID)
	if err != nil {
		return false, err
	}
	if created {
		rs.logger.Info("question marked for review", "user_id", userID, "question_id", questionID)
	}
	return created, nil
}

func (rs *ReviewService) Unmark(ctx context.Context, userID, questionID string) error {
	return rs.store.UnmarkForReview(ctx, userID, questionID)
}

func (rs *ReviewService) List(ctx context.Context, userID string) ([]*question.Question, error) {
	return rs.store.ListReviewQuestions(ctx, userID)
}
