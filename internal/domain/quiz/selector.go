package quiz

import (
	"math/rand"
	"sync"
	"time"

	"github.com/Manirmaths/Naijaprep/internal/domain/question"
)

// DefaultBatchSize is the number of questions in one quiz.
const DefaultBatchSize = 5

// Selector picks the questions for a new quiz batch. It is safe for
// concurrent use.
type Selector struct {
	size int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a selector drawing batches of size questions. A nil
// src seeds from the clock.
func NewSelector(size int, src rand.Source) *Selector {
	if size <= 0 {
		size = DefaultBatchSize
	}
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Selector{
		size: size,
		rng:  rand.New(src),
	}
}

// Size returns the batch size.
func (s *Selector) Size() int {
	return s.size
}

// SelectFiltered samples a batch from an explicit pool (a topic, an exam
// year, or the user's review marks).
func (s *Selector) SelectFiltered(scope string, pool []*question.Question) ([]string, error) {
	if len(pool) < s.size {
		return nil, &InsufficientPoolError{Scope: scope, Need: s.size, Have: len(pool)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return ids(s.sample(pool, s.size)), nil
}

// SelectAdaptive builds a batch from the whole question set. With history
// it draws from the weakest topic first and fills from the rest; without
// history it samples uniformly.
func (s *Selector) SelectAdaptive(all []*question.Question, stats map[string]TopicStats) ([]string, error) {
	if len(all) < s.size {
		return nil, &InsufficientPoolError{Scope: "all questions", Need: s.size, Have: len(all)}
	}

	weakest, ok := WeakestTopic(stats)
	if !ok {
		s.mu.Lock()
		defer s.mu.Unlock()
		return ids(s.sample(all, s.size)), nil
	}

	var pool, rest []*question.Question
	for _, q := range all {
		if q.Topic == weakest {
			pool = append(pool, q)
		} else {
			rest = append(rest, q)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(pool) >= s.size {
		return ids(s.sample(pool, s.size)), nil
	}

	batch := s.sample(pool, len(pool))
	batch = append(batch, s.sample(rest, s.size-len(pool))...)
	return ids(batch), nil
}

// sample returns k distinct questions in random order using a partial
// Fisher-Yates shuffle over a copy. Callers hold s.mu.
func (s *Selector) sample(pool []*question.Question, k int) []*question.Question {
	shuffled := make([]*question.Question, len(pool))
	copy(shuffled, pool)

	for i := 0; i < k; i++ {
		j := i + s.rng.Intn(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:k]
}

func ids(questions []*question.Question) []string {
	out := make([]string, len(questions))
	for i, q := range questions {
		out[i] = q.ID
	}
	return out
}
