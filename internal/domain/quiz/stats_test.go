package quiz_test

import (
	"testing"

	"github.com/Manirmaths/Naijaprep/internal/domain/ledger"
	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
)

func TestAggregate(t *testing.T) {
	stats := quiz.Aggregate([]ledger.Observation{
		{Topic: "Algebra", Correct: true},
		{Topic: "Algebra", Correct: false},
		{Topic: "Geometry", Correct: true},
	})

	want := map[string]quiz.TopicStats{
		"Algebra":  {Correct: 1, Total: 2, Percentage: 50.0},
		"Geometry": {Correct: 1, Total: 1, Percentage: 100.0},
	}

	if len(stats) != len(want) {
		t.Fatalf("expected %d topics, got %d", len(want), len(stats))
	}
	for topic, w := range want {
		if got := stats[topic]; got != w {
			t.Errorf("%s: expected %+v, got %+v", topic, w, got)
		}
	}
}

func TestAggregate_Empty(t *testing.T) {
	stats := quiz.Aggregate(nil)

	if len(stats) != 0 {
		t.Errorf("expected no topics, got %d", len(stats))
	}
}

func TestSortedTopics(t *testing.T) {
	stats := quiz.Aggregate([]ledger.Observation{
		{Topic: "Statistics", Correct: true},
		{Topic: "Algebra", Correct: false},
		{Topic: "Geometry", Correct: true},
	})

	sorted := quiz.SortedTopics(stats)

	order := []string{"Algebra", "Geometry", "Statistics"}
	if len(sorted) != len(order) {
		t.Fatalf("expected %d entries, got %d", len(order), len(sorted))
	}
	for i, topic := range order {
		if sorted[i].Topic != topic {
			t.Errorf("position %d: expected %s, got %s", i, topic, sorted[i].Topic)
		}
	}
}

func TestWeakestTopic(t *testing.T) {
	stats := map[string]quiz.TopicStats{
		"Algebra":  {Correct: 1, Total: 4},
		"Geometry": {Correct: 3, Total: 4},
	}

	weakest, ok := quiz.WeakestTopic(stats)
	if !ok {
		t.Fatal("expected a weakest topic")
	}
	if weakest != "Algebra" {
		t.Errorf("expected Algebra, got %s", weakest)
	}
}

func TestWeakestTopic_TieBreaksLexicographically(t *testing.T) {
	stats := map[string]quiz.TopicStats{
		"Statistics": {Correct: 1, Total: 2},
		"Geometry":   {Correct: 2, Total: 4},
		"Calculus":   {Correct: 3, Total: 6},
		"Algebra":    {Correct: 4, Total: 4},
	}

	// Run several times: map iteration order must not matter.
	for i := 0; i < 20; i++ {
		weakest, _ := quiz.WeakestTopic(stats)
		if weakest != "Calculus" {
			t.Fatalf("expected Calculus, got %s", weakest)
		}
	}
}

func TestWeakestTopic_NoHistory(t *testing.T) {
	if _, ok := quiz.WeakestTopic(nil); ok {
		t.Error("expected no weakest topic without history")
	}
}
