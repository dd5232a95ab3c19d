package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/codenames-backend/internal/apperror"
)

// Registry holds the running sessions, keyed by lobby id.
type Registry struct {
	logger *slog.Logger

	ctx    context.Context //nolint:containedctx // parent of every session loop
	cancel context.CancelFunc

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(logger *slog.Logger) *Registry {
	ctx, cancel := context.WithCancel(context.Background())

	return &Registry{
		logger:   logger.With("component", "registry"),
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*Session),
	}
}

// Start registers session and launches its loop. An existing session under the same id is closed first.
func (that *Registry) Start(session *Session) {
	that.mu.Lock()
	previous := that.sessions[session.ID]
	that.sessions[session.ID] = session
	that.mu.Unlock()

	if previous != nil {
		previous.Close()
	}

	session.Start(that.ctx)
	that.logger.Info("session registered", "method", "Start", "sessionID", session.ID)
}

func (that *Registry) Get(id string) (*Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}
	return session, nil
}

// Remove closes and forgets the session, if any.
func (that *Registry) Remove(id string) {
	that.mu.Lock()
	session, ok := that.sessions[id]
	delete(that.sessions, id)
	that.mu.Unlock()

	if ok {
		session.Close()
		that.logger.Info("session removed", "method", "Remove", "sessionID", id)
	}
}

func (that *Registry) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}

// Shutdown stops every session loop.
func (that *Registry) Shutdown() {
	that.cancel()

	that.mu.Lock()
	sessions := that.sessions
	that.sessions = make(map[string]*Session)
	that.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}
