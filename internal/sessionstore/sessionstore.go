// Package sessionstore holds the in-progress quiz state of each user
// between requests.
package sessionstore

import (
	"context"

	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
)

// Store is a keyed store of quiz sessions. Get reports ok=false for idle
// users. Implementations return copies: mutating a returned session does
// not change stored state until Put.
type Store interface {
	Get(ctx context.Context, userID string) (session *quiz.Session, ok bool, err error)
	Put(ctx context.Context, userID string, session *quiz.Session) error
	Clear(ctx context.Context, userID string) error
}
