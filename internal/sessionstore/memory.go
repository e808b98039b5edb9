package sessionstore

import (
	"context"
	"sync"

	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
)

// MemoryStore keeps sessions in process memory. Sessions are lost on
// restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]quiz.Session
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]quiz.Session),
	}
}

func (m *MemoryStore) Get(_ context.Context, userID string) (*quiz.Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[userID]
	if !ok {
		return nil, false, nil
	}
	return clone(s), true, nil
}

func (m *MemoryStore) Put(_ context.Context, userID string, s *quiz.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = *clone(*s)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

func clone(s quiz.Session) *quiz.Session {
	s.QuestionIDs = append([]string(nil), s.QuestionIDs...)
	if s.Deadline != nil {
		d := *s.Deadline
		s.Deadline = &d
	}
	return &s
}
