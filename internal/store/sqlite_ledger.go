package store

import (
	"context"
	"time"

	"github.com/Manirmaths/Naijaprep/internal/domain/ledger"
	"github.com/Manirmaths/Naijaprep/internal/domain/question"
	"github.com/Manirmaths/Naijaprep/internal/id"
)

// ============================================================================
// Response ledger
// ============================================================================

// RecordAnswer appends a ledger entry and credits points to the user in a
// single transaction.
func (s *SQLiteStore) RecordAnswer(ctx context.Context, entry ledger.Entry, points int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO responses (id, user_id, question_id, selected_option, is_correct, answered_at) VALUES (?, ?, ?, ?, ?, ?)",
		entry.ID, entry.UserID, entry.QuestionID, entry.Selected.String(), entry.Correct, entry.AnsweredAt.UnixNano(),
	)
	if err != nil {
		return err
	}

	if points != 0 {
		result, err := tx.ExecContext(ctx, "UPDATE users SET points = points + ? WHERE id = ?", points, entry.UserID)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrNotFound
		}
	}

	return tx.Commit()
}

// ListObservations returns the topic and correctness of every answer the
// user has given.
func (s *SQLiteStore) ListObservations(ctx context.Context, userID string) ([]ledger.Observation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT q.topic, r.is_correct
		FROM responses r
		JOIN questions q ON q.id = r.question_id
		WHERE r.user_id = ?
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var observations []ledger.Observation
	for rows.Next() {
		var o ledger.Observation
		if err := rows.Scan(&o.Topic, &o.Correct); err != nil {
			return nil, err
		}
		observations = append(observations, o)
	}
	return observations, rows.Err()
}

// RecentEntries returns the user's latest answers, most recent first.
func (s *SQLiteStore) RecentEntries(ctx context.Context, userID string, limit int) ([]ledger.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, question_id, selected_option, is_correct, answered_at
		FROM responses
		WHERE user_id = ?
		ORDER BY answered_at DESC, rowid DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		var e ledger.Entry
		var selected string
		var answeredAt int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.QuestionID, &selected, &e.Correct, &answeredAt); err != nil {
			return nil, err
		}
		if e.Selected, err = question.ParseOption(selected); err != nil {
			return nil, err
		}
		e.AnsweredAt = time.Unix(0, answeredAt).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ============================================================================
// Review marks
// ============================================================================

// MarkForReview records a review mark and reports whether it was new.
// The question must exist.
func (s *SQLiteStore) MarkForReview(ctx context.Context, userID, questionID string) (bool, error) {
	if _, err := s.GetQuestion(ctx, questionID); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO review_marks (id, user_id, question_id, marked_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, question_id) DO NOTHING
	`, id.GenerateID(), userID, questionID, time.Now().UnixNano())
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

func (s *SQLiteStore) UnmarkForReview(ctx context.Context, userID, questionID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM review_marks WHERE user_id = ? AND question_id = ?", userID, questionID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListReviewQuestions returns the questions the user marked, oldest mark first.
func (s *SQLiteStore) ListReviewQuestions(ctx context.Context, userID string) ([]*question.Question, error) {
	return s.queryQuestions(ctx, `
		SELECT q.id, q.topic, q.difficulty, q.prompt, q.option_a, q.option_b, q.option_c, q.option_d,
		       q.correct_option, q.explanation, q.exam_year
		FROM review_marks m
		JOIN questions q ON q.id = m.question_id
		WHERE m.user_id = ?
		ORDER BY m.marked_at, m.rowid
	`, userID)
}

func (s *SQLiteStore) ReviewQuestionIDs(ctx context.Context, userID string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT question_id FROM review_marks WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	marked := make(map[string]bool)
	for rows.Next() {
		var qid string
		if err := rows.Scan(&qid); err != nil {
			return nil, err
		}
		marked[qid] = true
	}
	return marked, rows.Err()
}
