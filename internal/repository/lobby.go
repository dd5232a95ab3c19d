package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/codenames-backend/internal/apperror"
	"github.com/rocketscienceinc/codenames-backend/internal/entity"
)

const (
	lobbyKeyPrefix = "lobby:"
	lobbyIndexKey  = "lobbies"
)

type LobbyRepository interface {
	CreateOrUpdate(ctx context.Context, lobby *entity.LobbyInfo) error
	GetByID(ctx context.Context, id string) (*entity.LobbyInfo, error)
	List(ctx context.Context) ([]*entity.LobbyInfo, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbLobby struct {
	client *redis.Client
}

// NewLobbyRepository stores each lobby as JSON under lobby:<id> and keeps the ids in a set.
func NewLobbyRepository(client *redis.Client) LobbyRepository {
	return &dbLobby{
		client: client,
	}
}

func (that *dbLobby) CreateOrUpdate(ctx context.Context, lobby *entity.LobbyInfo) error {
	lobbyJSON, err := json.Marshal(lobby)
	if err != nil {
		return fmt.Errorf("could not marshal lobby: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, lobbyKeyPrefix+lobby.ID, lobbyJSON, 0)
		pipe.SAdd(ctx, lobbyIndexKey, lobby.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set lobby: %w", err)
	}

	return nil
}

func (that *dbLobby) GetByID(ctx context.Context, id string) (*entity.LobbyInfo, error) {
	response, err := that.client.Get(ctx, lobbyKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrLobbyNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get lobby by id: %w", err)
	}

	var lobby entity.LobbyInfo
	if err = json.Unmarshal([]byte(response), &lobby); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lobby: %w", err)
	}

	return &lobby, nil
}

// List returns every stored lobby ordered by id. Ids whose entry vanished are skipped.
func (that *dbLobby) List(ctx context.Context) ([]*entity.LobbyInfo, error) {
	ids, err := that.client.SMembers(ctx, lobbyIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list lobby ids: %w", err)
	}

	if len(ids) == 0 {
		return []*entity.LobbyInfo{}, nil
	}

	sort.Strings(ids)

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, lobbyKeyPrefix+id)
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get lobbies: %w", err)
	}

	lobbies := make([]*entity.LobbyInfo, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var lobby entity.LobbyInfo
		if err = json.Unmarshal([]byte(raw), &lobby); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lobby %s: %w", ids[i], err)
		}
		lobbies = append(lobbies, &lobby)
	}

	return lobbies, nil
}

func (that *dbLobby) DeleteByID(ctx context.Context, id string) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, lobbyKeyPrefix+id)
		pipe.SRem(ctx, lobbyIndexKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete lobby by id: %w", err)
	}

	return nil
}
