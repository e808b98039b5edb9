// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Manirmaths/Naijaprep/internal/domain/question"
	"github.com/Manirmaths/Naijaprep/internal/domain/user"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    points INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    topic TEXT NOT NULL,
    difficulty INTEGER NOT NULL,
    prompt TEXT NOT NULL,
    option_a TEXT NOT NULL,
    option_b TEXT NOT NULL,
    option_c TEXT NOT NULL,
    option_d TEXT NOT NULL,
    correct_option TEXT NOT NULL CHECK (correct_option IN ('A', 'B', 'C', 'D')),
    explanation TEXT,
    exam_year TEXT
);

CREATE INDEX IF NOT EXISTS idx_questions_topic ON questions(topic);

CREATE TABLE IF NOT EXISTS responses (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    selected_option TEXT NOT NULL CHECK (selected_option IN ('A', 'B', 'C', 'D')),
    is_correct BOOLEAN NOT NULL,
    answered_at INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id),
    FOREIGN KEY (question_id) REFERENCES questions(id)
);

CREATE INDEX IF NOT EXISTS idx_responses_user ON responses(user_id, answered_at);

CREATE TABLE IF NOT EXISTS review_marks (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    marked_at INTEGER NOT NULL,
    UNIQUE (user_id, question_id),
    FOREIGN KEY (user_id) REFERENCES users(id),
    FOREIGN KEY (question_id) REFERENCES questions(id)
);
`

const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

type SQLiteStore struct {
	db *sql.DB
}

// Compile-time check: *SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	dsn := dbPath
	if !strings.Contains(dsn, "?") {
		dsn += "?" + pragmas
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY conflict.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// ============================================================================
// Users
// ============================================================================

const userColumns = "id, username, email, password_hash, points, created_at"

func (s *SQLiteStore) CreateUser(ctx context.Context, u *user.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		u.ID, u.Username, u.Email, u.PasswordHash, u.Points, u.CreatedAt.UnixNano(),
	)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

func scanUser(row interface{ Scan(...any) error }) (*user.User, error) {
	var u user.User
	var createdAt int64
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Points, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt = time.Unix(0, createdAt).UTC()
	return &u, nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*user.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id))
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email))
}

func (s *SQLiteStore) UpdatePassword(ctx context.Context, userID, hash string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", hash, userID)
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

// ============================================================================
// Questions
// ============================================================================

const questionColumns = "id, topic, difficulty, prompt, option_a, option_b, option_c, option_d, correct_option, explanation, exam_year"

// SaveQuestion inserts or replaces a question. Only the seeding process
// writes questions.
func (s *SQLiteStore) SaveQuestion(ctx context.Context, q *question.Question) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO questions ("+questionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		q.ID, q.Topic, q.Difficulty, q.Prompt,
		q.Options[question.A], q.Options[question.B], q.Options[question.C], q.Options[question.D],
		q.Correct.String(), q.Explanation, q.ExamYear,
	)
	return err
}

func scanQuestion(row interface{ Scan(...any) error }) (*question.Question, error) {
	var q question.Question
	var correct string
	var explanation, examYear sql.NullString

	err := row.Scan(
		&q.ID, &q.Topic, &q.Difficulty, &q.Prompt,
		&q.Options[question.A], &q.Options[question.B], &q.Options[question.C], &q.Options[question.D],
		&correct, &explanation, &examYear,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	q.Correct, err = question.ParseOption(correct)
	if err != nil {
		return nil, fmt.Errorf("question %s: %w", q.ID, err)
	}
	if explanation.Valid {
		q.Explanation = &explanation.String
	}
	if examYear.Valid {
		q.ExamYear = &examYear.String
	}
	return &q, nil
}

func (s *SQLiteStore) queryQuestions(ctx context.Context, query string, args ...any) ([]*question.Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*question.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *SQLiteStore) GetQuestion(ctx context.Context, id string) (*question.Question, error) {
	return scanQuestion(s.db.QueryRowContext(ctx, "SELECT "+questionColumns+" FROM questions WHERE id = ?", id))
}

// GetQuestions loads several questions by ID. Unknown IDs are absent from
// the result.
func (s *SQLiteStore) GetQuestions(ctx context.Context, ids []string) (map[string]*question.Question, error) {
	out := make(map[string]*question.Question, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	questions, err := s.queryQuestions(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE id IN ("+placeholders(len(ids))+")", args...)
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		out[q.ID] = q
	}
	return out, nil
}

func (s *SQLiteStore) ListQuestions(ctx context.Context) ([]*question.Question, error) {
	return s.queryQuestions(ctx, "SELECT "+questionColumns+" FROM questions ORDER BY id")
}

func (s *SQLiteStore) ListQuestionsByTopic(ctx context.Context, topic string) ([]*question.Question, error) {
	return s.queryQuestions(ctx, "SELECT "+questionColumns+" FROM questions WHERE topic = ? ORDER BY id", topic)
}

// ListQuestionsByExamYear matches exam-year tags containing fragment,
// ignoring ASCII case.
func (s *SQLiteStore) ListQuestionsByExamYear(ctx context.Context, fragment string) ([]*question.Question, error) {
	pattern := "%" + escapeLike(fragment) + "%"
	return s.queryQuestions(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE exam_year LIKE ? ESCAPE '\\' ORDER BY id", pattern)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (s *SQLiteStore) ListExamYears(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT exam_year FROM questions WHERE exam_year IS NOT NULL AND exam_year != '' ORDER BY exam_year")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []string
	for rows.Next() {
		var y string
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}
