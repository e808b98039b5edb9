package quiz_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/Manirmaths/Naijaprep/internal/domain/question"
	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
)

func makeQuestions(topic string, n int) []*question.Question {
	out := make([]*question.Question, n)
	for i := range out {
		out[i] = &question.Question{
			ID:      fmt.Sprintf("%s-%d", topic, i),
			Topic:   topic,
			Prompt:  fmt.Sprintf("%s question %d", topic, i),
			Options: [question.NumOptions]string{"1", "2", "3", "4"},
			Correct: question.A,
		}
	}
	return out
}

func seededPool() []*question.Question {
	var all []*question.Question
	all = append(all, makeQuestions("Algebra", 2)...)
	all = append(all, makeQuestions("Geometry", 2)...)
	all = append(all, makeQuestions("Statistics", 2)...)
	return all
}

func assertDistinct(t *testing.T, ids []string) {
	t.Helper()
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate question %s in batch %v", id, ids)
		}
		seen[id] = true
	}
}

func topicOf(all []*question.Question, id string) string {
	for _, q := range all {
		if q.ID == id {
			return q.Topic
		}
	}
	return ""
}

func TestSelectAdaptive_ColdStart(t *testing.T) {
	all := seededPool()

	for seed := int64(1); seed <= 20; seed++ {
		sel := quiz.NewSelector(5, rand.NewSource(seed))

		batch, err := sel.SelectAdaptive(all, nil)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		if len(batch) != 5 {
			t.Fatalf("seed %d: expected 5 questions, got %d", seed, len(batch))
		}
		assertDistinct(t, batch)
	}
}

func TestSelectAdaptive_ColdStartVaries(t *testing.T) {
	all := append(seededPool(), makeQuestions("Calculus", 14)...)

	first, _ := quiz.NewSelector(5, rand.NewSource(1)).SelectAdaptive(all, nil)

	foundDifferent := false
	for seed := int64(2); seed <= 10; seed++ {
		batch, _ := quiz.NewSelector(5, rand.NewSource(seed)).SelectAdaptive(all, nil)
		if fmt.Sprint(batch) != fmt.Sprint(first) {
			foundDifferent = true
			break
		}
	}

	if !foundDifferent {
		t.Error("expected different seeds to produce different batches")
	}
}

func TestSelectAdaptive_WeakestTopicFirst(t *testing.T) {
	all := seededPool()
	stats := map[string]quiz.TopicStats{
		"Algebra":  {Correct: 1, Total: 4},
		"Geometry": {Correct: 3, Total: 4},
	}

	for seed := int64(1); seed <= 20; seed++ {
		sel := quiz.NewSelector(5, rand.NewSource(seed))

		batch, err := sel.SelectAdaptive(all, stats)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(batch) != 5 {
			t.Fatalf("expected 5 questions, got %d", len(batch))
		}
		assertDistinct(t, batch)

		// Both Algebra questions lead the batch, the rest come from elsewhere.
		for i, id := range batch {
			topic := topicOf(all, id)
			if i < 2 && topic != "Algebra" {
				t.Errorf("seed %d: position %d expected Algebra, got %s", seed, i, topic)
			}
			if i >= 2 && topic == "Algebra" {
				t.Errorf("seed %d: position %d expected a supplement, got Algebra", seed, i)
			}
		}
	}
}

func TestSelectAdaptive_WeakestTopicLargePool(t *testing.T) {
	all := append(makeQuestions("Algebra", 8), makeQuestions("Geometry", 8)...)
	stats := map[string]quiz.TopicStats{
		"Algebra":  {Correct: 4, Total: 4},
		"Geometry": {Correct: 0, Total: 3},
	}

	batch, err := quiz.NewSelector(5, rand.NewSource(7)).SelectAdaptive(all, stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range batch {
		if topic := topicOf(all, id); topic != "Geometry" {
			t.Errorf("expected only Geometry questions, got %s", topic)
		}
	}
}

func TestSelectAdaptive_InsufficientPool(t *testing.T) {
	all := makeQuestions("Algebra", 4)

	_, err := quiz.NewSelector(5, rand.NewSource(1)).SelectAdaptive(all, nil)

	var perr *quiz.InsufficientPoolError
	if !errors.As(err, &perr) {
		t.Fatalf("expected InsufficientPoolError, got %v", err)
	}
	if perr.Need != 5 || perr.Have != 4 {
		t.Errorf("expected need 5 have 4, got need %d have %d", perr.Need, perr.Have)
	}
}

func TestSelectFiltered(t *testing.T) {
	pool := makeQuestions("Geometry", 7)

	batch, err := quiz.NewSelector(5, rand.NewSource(3)).SelectFiltered("topic Geometry", pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) != 5 {
		t.Errorf("expected 5 questions, got %d", len(batch))
	}
	assertDistinct(t, batch)
}

func TestSelectFiltered_InsufficientPool(t *testing.T) {
	pool := makeQuestions("Geometry", 3)

	_, err := quiz.NewSelector(5, nil).SelectFiltered("topic Geometry", pool)

	var perr *quiz.InsufficientPoolError
	if !errors.As(err, &perr) {
		t.Fatalf("expected InsufficientPoolError, got %v", err)
	}
	if perr.Scope != "topic Geometry" {
		t.Errorf("unexpected scope %q", perr.Scope)
	}
}

func TestSelector_BatchSizes(t *testing.T) {
	all := seededPool()

	for n := 1; n <= len(all); n++ {
		sel := quiz.NewSelector(n, rand.NewSource(int64(n)))
		if sel.Size() != n {
			t.Fatalf("expected size %d, got %d", n, sel.Size())
		}

		batch, err := sel.SelectAdaptive(all, map[string]quiz.TopicStats{"Statistics": {Correct: 0, Total: 1}})
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(batch) != n {
			t.Errorf("n=%d: expected %d questions, got %d", n, n, len(batch))
		}
		assertDistinct(t, batch)
	}
}

func TestNewSelector_DefaultSize(t *testing.T) {
	if got := quiz.NewSelector(0, nil).Size(); got != quiz.DefaultBatchSize {
		t.Errorf("expected default size %d, got %d", quiz.DefaultBatchSize, got)
	}
}
