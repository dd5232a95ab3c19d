package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rocketscienceinc/codenames-backend/internal/apperror"
	"github.com/rocketscienceinc/codenames-backend/internal/entity"
)

type memoryLobby struct {
	mu      sync.RWMutex
	lobbies map[string]entity.LobbyInfo
}

// NewMemoryLobbyRepository keeps the directory in process, for single-instance setups and tests.
func NewMemoryLobbyRepository() LobbyRepository {
	return &memoryLobby{
		lobbies: make(map[string]entity.LobbyInfo),
	}
}

func (that *memoryLobby) CreateOrUpdate(_ context.Context, lobby *entity.LobbyInfo) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored := *lobby
	stored.Players = append([]entity.PlayerView(nil), lobby.Players...)
	that.lobbies[lobby.ID] = stored

	return nil
}

func (that *memoryLobby) GetByID(_ context.Context, id string) (*entity.LobbyInfo, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	lobby, ok := that.lobbies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrLobbyNotFound, id)
	}

	return &lobby, nil
}

func (that *memoryLobby) List(context.Context) ([]*entity.LobbyInfo, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	lobbies := make([]*entity.LobbyInfo, 0, len(that.lobbies))
	for _, lobby := range that.lobbies {
		lobbies = append(lobbies, &lobby)
	}

	sort.Slice(lobbies, func(i, j int) bool {
		return lobbies[i].ID < lobbies[j].ID
	})

	return lobbies, nil
}

func (that *memoryLobby) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.lobbies, id)

	return nil
}
