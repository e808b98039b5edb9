package ledger

import (
	"time"

	"github.com/Manirmaths/Naijaprep/internal/domain/question"
	"github.com/Manirmaths/Naijaprep/internal/id"
)

// Entry is one answered question. Entries are append-only: a user who
// answers the same question in several quizzes gets several entries.
type Entry struct {
	ID         string
	UserID     string
	QuestionID string
	Selected   question.Option
	Correct    bool
	AnsweredAt time.Time
}

// NewEntry grades selected against q and returns the entry to append.
func NewEntry(userID string, q *question.Question, selected question.Option, now time.Time) Entry {
	return Entry{
		ID:         id.GenerateID(),
		UserID:     userID,
		QuestionID: q.ID,
		Selected:   selected,
		Correct:    q.IsCorrect(selected),
		AnsweredAt: now.UTC(),
	}
}

// Observation is the projection of an entry used for topic statistics.
type Observation struct {
	Topic   string
	Correct bool
}
