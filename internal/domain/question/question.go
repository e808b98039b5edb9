package question

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manirmaths/Naijaprep/internal/id"
)

// Option is one of the four answer letters of a multiple-choice question.
type Option int

const (
	A Option = iota
	B
	C
	D
)

// NumOptions is the fixed number of answer options per question.
const NumOptions = 4

var letters = [NumOptions]string{"A", "B", "C", "D"}

func (o Option) String() string {
	if o < A || o > D {
		return fmt.Sprintf("Option(%d)", int(o))
	}
	return letters[o]
}

func (o Option) MarshalText() ([]byte, error) {
	if o < A || o > D {
		return nil, &InvalidOptionError{Value: o.String()}
	}
	return []byte(letters[o]), nil
}

// InvalidOptionError is returned when a submitted answer is not one of A–D.
type InvalidOptionError struct {
	Value string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option %q: must be one of A, B, C, D", e.Value)
}

// ParseOption converts a submitted letter into an Option. Surrounding
// whitespace and lower case are accepted.
func ParseOption(s string) (Option, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return A, nil
	case "B":
		return B, nil
	case "C":
		return C, nil
	case "D":
		return D, nil
	}
	return 0, &InvalidOptionError{Value: s}
}

const noExplanation = "No explanation available."

// Question is an immutable multiple-choice item. Questions are created by
// the seeding process and only read by the quiz engine.
type Question struct {
	ID          string
	Topic       string
	Difficulty  int
	Prompt      string
	Options     [NumOptions]string
	Correct     Option
	Explanation *string // Optional - shown after answering
	ExamYear    *string // Optional - free-text tag such as "JAMB 2019"
}

// New validates and builds a question with a fresh ID.
func New(topic string, difficulty int, prompt string, options [NumOptions]string, correct Option) (*Question, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, errors.New("question topic cannot be empty")
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.New("question prompt cannot be empty")
	}
	for i, text := range options {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("option %s cannot be empty", Option(i))
		}
	}
	if correct < A || correct > D {
		return nil, &InvalidOptionError{Value: correct.String()}
	}

	return &Question{
		ID:         id.GenerateID(),
		Topic:      topic,
		Difficulty: difficulty,
		Prompt:     prompt,
		Options:    options,
		Correct:    correct,
	}, nil
}

func (q *Question) SetExplanation(text string) {
	if text == "" {
		q.Explanation = nil
		return
	}
	q.Explanation = &text
}

func (q *Question) SetExamYear(tag string) {
	if tag == "" {
		q.ExamYear = nil
		return
	}
	q.ExamYear = &tag
}

// IsCorrect reports whether o is the right answer.
func (q *Question) IsCorrect(o Option) bool {
	return o == q.Correct
}

// OptionText returns the text shown for o.
func (q *Question) OptionText(o Option) string {
	if o < A || o > D {
		return ""
	}
	return q.Options[o]
}

// Label renders an option as "B. 2".
func (q *Question) Label(o Option) string {
	return fmt.Sprintf("%s. %s", o, q.OptionText(o))
}

// ExplanationText returns the explanation or a fixed placeholder.
func (q *Question) ExplanationText() string {
	if q.Explanation == nil || *q.Explanation == "" {
		return noExplanation
	}
	return *q.Explanation
}
