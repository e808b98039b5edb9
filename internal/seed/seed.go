// Package seed loads the bundled question set into the store. Questions
// carry stable ids so seeding is repeatable.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Manirmaths/Naijaprep/internal/domain/question"
	"github.com/Manirmaths/Naijaprep/internal/id"
	"github.com/Manirmaths/Naijaprep/internal/store"
)

//go:embed questions.json
var bundled []byte

type record struct {
	ID          string   `json:"id"`
	Topic       string   `json:"topic"`
	Difficulty  int      `json:"difficulty"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Correct     string   `json:"correct"`
	Explanation string   `json:"explanation,omitempty"`
	ExamYear    string   `json:"exam_year,omitempty"`
}

// Bundled returns the questions shipped with the binary.
func Bundled() ([]*question.Question, error) {
	return Load(bytes.NewReader(bundled))
}

// Load parses a JSON array of questions. Records without an id get a
// generated one.
func Load(r io.Reader) ([]*question.Question, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	out := make([]*question.Question, 0, len(records))
	for i, rec := range records {
		q, err := rec.toQuestion()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		out = append(out, q)
	}
	return out, nil
}

func (rec record) toQuestion() (*question.Question, error) {
	if len(rec.Options) != question.NumOptions {
		return nil, fmt.Errorf("expected %d options, got %d", question.NumOptions, len(rec.Options))
	}
	correct, err := question.ParseOption(rec.Correct)
	if err != nil {
		return nil, err
	}

	var options [question.NumOptions]string
	copy(options[:], rec.Options)

	q, err := question.New(rec.Topic, rec.Difficulty, rec.Prompt, options, correct)
	if err != nil {
		return nil, err
	}
	if rec.ID != "" {
		if !id.Valid(rec.ID) {
			return nil, fmt.Errorf("invalid id %q", rec.ID)
		}
		q.ID = rec.ID
	}
	q.SetExplanation(rec.Explanation)
	q.SetExamYear(rec.ExamYear)
	return q, nil
}

// Apply writes every question, replacing any stored copy with the same id.
func Apply(ctx context.Context, s store.Store, questions []*question.Question) error {
	for _, q := range questions {
		if err := s.SaveQuestion(ctx, q); err != nil {
			return fmt.Errorf("save question %s: %w", q.ID, err)
		}
	}
	return nil
}
