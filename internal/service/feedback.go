package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Manirmaths/Naijaprep/internal/feedback"
	"github.com/Manirmaths/Naijaprep/internal/infrastructure/config"
	"github.com/Manirmaths/Naijaprep/internal/metrics"
)

const (
	MsgFeedbackUnconfigured = "AI feedback unavailable due to configuration error."
	MsgFeedbackFailed       = "Sorry, I couldn't generate feedback right now."
)

// FeedbackResult carries the advice text. Degraded is set when Text is a
// fallback message rather than advice.
type FeedbackResult struct {
	Text     string
	Degraded bool
}

type FeedbackService struct {
	stats   *StatsService
	advisor feedback.Advisor
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewFeedbackService(stats *StatsService, advisor feedback.Advisor, m *metrics.Metrics, logger *slog.Logger) *FeedbackService {
	return &FeedbackService{stats: stats, advisor: advisor, metrics: m, logger: logger}
}

// Feedback asks the advisor for study advice. Advisor failures degrade to
// a fixed message; only store errors are returned.
func (fs *FeedbackService) Feedback(ctx context.Context, userID string) (*FeedbackResult, error) {
	topics, err := fs.stats.TopicStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	text, err := fs.advisor.Advise(ctx, topics)
	if err == nil {
		fs.metrics.FeedbackServed("ok")
		return &FeedbackResult{Text: text}, nil
	}

	var missing *config.MissingError
	if errors.As(err, &missing) {
		fs.logger.Error("feedback unavailable", "error", err)
		fs.metrics.FeedbackServed("unconfigured")
		return &FeedbackResult{Text: MsgFeedbackUnconfigured, Degraded: true}, nil
	}

	fs.logger.Error("feedback provider error", "user_id", userID, "error", err)
	fs.metrics.FeedbackServed("failed")
	return &FeedbackResult{Text: MsgFeedbackFailed, Degraded: true}, nil
}
