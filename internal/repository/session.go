package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type SessionRepository interface {
	Create(ctx context.Context) (string, *tictactoe.Session, error)
	GetByID(ctx context.Context, id string) (*tictactoe.Session, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) int
}

// memSession keeps sessions for the lifetime of the process.
type memSession struct {
	mu       sync.RWMutex
	sessions map[string]*tictactoe.Session
	limit    int
}

// NewSessionRepository returns an in-memory registry. A limit of 0 means no
// limit.
func NewSessionRepository(limit int) SessionRepository {
	return &memSession{
		sessions: make(map[string]*tictactoe.Session),
		limit:    limit,
	}
}

func (that *memSession) Create(_ context.Context) (string, *tictactoe.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.limit > 0 && len(that.sessions) >= that.limit {
		return "", nil, fmt.Errorf("%w: limit %d", apperror.ErrTooManySessions, that.limit)
	}

	id := uuid.NewString()
	session := tictactoe.NewSession()
	that.sessions[id] = session

	return id, session, nil
}

func (that *memSession) GetByID(_ context.Context, id string) (*tictactoe.Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[id]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return session, nil
}

func (that *memSession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

func (that *memSession) Count(_ context.Context) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}
