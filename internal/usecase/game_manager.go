package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/codenames-backend/internal/apperror"
	"github.com/rocketscienceinc/codenames-backend/internal/entity"
	"github.com/rocketscienceinc/codenames-backend/internal/words"
)

type lobbyRepo interface {
	CreateOrUpdate(ctx context.Context, lobby *entity.LobbyInfo) error
	GetByID(ctx context.Context, id string) (*entity.LobbyInfo, error)
	List(ctx context.Context) ([]*entity.LobbyInfo, error)
	DeleteByID(ctx context.Context, id string) error
}

// Preferences is a partial update of a player's lobby settings. Nil fields are left alone.
type Preferences struct {
	Name  *string
	Ready *bool
	Role  *int
}

// GameManager runs lobbies and turns them into sessions once everyone is ready.
// Live lobbies are kept in memory; lobbyRepo holds the directory other players browse.
type GameManager struct {
	logger    *slog.Logger
	lobbyRepo lobbyRepo
	registry  *Registry
	hub       broadcaster
	bots      botPlayer

	mu      sync.Mutex
	lobbies map[string]*entity.Lobby
	rnd     *rand.Rand
}

func NewGameManager(
	logger *slog.Logger, lobbyRepo lobbyRepo, registry *Registry, hub broadcaster, bots botPlayer, rnd *rand.Rand,
) *GameManager {
	return &GameManager{
		logger: logger.With("component", "gameManager"),

		lobbyRepo: lobbyRepo,
		registry:  registry,
		hub:       hub,
		bots:      bots,

		lobbies: make(map[string]*entity.Lobby),
		rnd:     rnd,
	}
}

// CreateLobby opens a lobby and puts player in it, leaving any previous lobby.
func (that *GameManager) CreateLobby(ctx context.Context, player *entity.Player, name string) (*entity.LobbyInfo, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if player.LobbyID != "" {
		if err := that.leave(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to leave previous lobby: %w", err)
		}
	}

	lobby := entity.NewLobby(uuid.NewString(), name)
	that.lobbies[lobby.ID] = lobby

	that.logger.Info("lobby created", "method", "CreateLobby", "lobbyID", lobby.ID, "name", lobby.Name)

	return that.join(ctx, lobby, player), nil
}

func (that *GameManager) JoinLobby(ctx context.Context, player *entity.Player, lobbyID string) (*entity.LobbyInfo, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	lobby, ok := that.lobbies[lobbyID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrLobbyNotFound, lobbyID)
	}

	if player.LobbyID == lobbyID {
		return lobby.Info(), nil
	}

	if lobby.InGame {
		return nil, fmt.Errorf("%w: %s", apperror.ErrLobbyInGame, lobbyID)
	}

	if lobby.IsFull() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrLobbyFull, lobbyID)
	}

	if player.LobbyID != "" {
		if err := that.leave(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to leave previous lobby: %w", err)
		}
	}

	return that.join(ctx, lobby, player), nil
}

// ListAvailable returns the lobbies that can still be joined.
func (that *GameManager) ListAvailable(ctx context.Context) ([]*entity.LobbyInfo, error) {
	lobbies, err := that.lobbyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lobbies: %w", err)
	}

	available := make([]*entity.LobbyInfo, 0, len(lobbies))
	for _, lobby := range lobbies {
		if lobby.IsJoinable() {
			available = append(available, lobby)
		}
	}

	return available, nil
}

// UpdatePreferences applies prefs and starts the game when the lobby becomes ready.
// Asking for a role someone else holds is ignored.
func (that *GameManager) UpdatePreferences(ctx context.Context, player *entity.Player, prefs Preferences) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "UpdatePreferences", "playerID", player.ID)

	lobby, err := that.lobbyOf(player)
	if err != nil {
		return err
	}

	if lobby.InGame {
		return fmt.Errorf("%w: %s", apperror.ErrLobbyInGame, lobby.ID)
	}

	if prefs.Name != nil {
		player.Name = strings.TrimSpace(*prefs.Name)
	}

	if prefs.Ready != nil {
		player.IsReady = *prefs.Ready
	}

	if prefs.Role != nil {
		role, err := entity.RoleFromIndex(*prefs.Role)
		if err != nil {
			return fmt.Errorf("failed to update preferences: %w", err)
		}

		if holder := lobby.RoleHolder(role); holder != nil && holder.ID != player.ID {
			log.Info("role already taken", "role", role.String(), "holderID", holder.ID)
		} else {
			player.AssignRole(role)
		}
	}

	if lobby.ReadyToStart() {
		return that.startGame(ctx, lobby)
	}

	that.save(ctx, lobby)
	that.notify(ctx, lobby.Players, entity.NewPlayerUpdate(lobby.Players))

	return nil
}

func (that *GameManager) LeaveLobby(ctx context.Context, player *entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.leave(ctx, player)
}

// Shutdown stops every running session.
func (that *GameManager) Shutdown() {
	that.registry.Shutdown()
}

func (that *GameManager) join(ctx context.Context, lobby *entity.Lobby, player *entity.Player) *entity.LobbyInfo {
	lobby.Add(player)
	player.LobbyID = lobby.ID
	player.InLobby = true

	that.logger.Info("player joined lobby", "method", "join", "lobbyID", lobby.ID, "playerID", player.ID)

	that.save(ctx, lobby)
	that.notify(ctx, lobby.Players, entity.NewPlayerUpdate(lobby.Players))

	return lobby.Info()
}

func (that *GameManager) leave(ctx context.Context, player *entity.Player) error {
	log := that.logger.With("method", "leave", "playerID", player.ID)

	lobby, err := that.lobbyOf(player)
	if err != nil {
		return err
	}

	lobby.Remove(player.ID)
	player.LobbyID = ""
	player.InLobby = false
	player.InGame = false
	player.IsReady = false
	player.Role = nil

	log.Info("player left lobby", "lobbyID", lobby.ID)

	if lobby.InGame {
		if session, err := that.registry.Get(lobby.ID); err == nil {
			if err = session.Detach(ctx, player.ID); err != nil {
				log.Warn("failed to detach seat", "error", err)
			}
		}
	}

	if len(lobby.Players) == 0 {
		delete(that.lobbies, lobby.ID)
		that.registry.Remove(lobby.ID)

		if err = that.lobbyRepo.DeleteByID(ctx, lobby.ID); err != nil {
			log.Error("failed to delete lobby", "lobbyID", lobby.ID, "error", err)
		}

		log.Info("lobby closed", "lobbyID", lobby.ID)

		return nil
	}

	that.save(ctx, lobby)
	that.notify(ctx, lobby.Players, entity.NewPlayerUpdate(lobby.Players))

	return nil
}

// startGame fills free roles with AI seats, deals a board and starts the session.
// The session gets its own copy of every human so later lobby changes never reach it.
func (that *GameManager) startGame(ctx context.Context, lobby *entity.Lobby) error {
	log := that.logger.With("method", "startGame", "lobbyID", lobby.ID)

	sample, err := words.Sample(that.rnd, entity.BoardSize)
	if err != nil {
		return fmt.Errorf("failed to draw words: %w", err)
	}

	board, err := entity.NewBoard(sample, that.rnd)
	if err != nil {
		return fmt.Errorf("failed to deal board: %w", err)
	}

	seats := make([]*entity.Player, 0, entity.MaxSeats)
	for _, player := range lobby.Players {
		player.InGame = true
		seat := *player
		seats = append(seats, &seat)
	}
	for _, role := range lobby.FreeRoles() {
		seats = append(seats, entity.NewBotPlayer(uuid.NewString(), role))
	}

	game, err := entity.NewGame(lobby.ID, board, seats)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	lobby.InGame = true
	that.save(ctx, lobby)
	that.notify(ctx, lobby.Players, entity.NewPlayerUpdate(seats))

	that.registry.Start(NewSession(that.logger, game, that.hub, that.bots))

	log.Info("game started", "humans", len(lobby.Players), "bots", entity.MaxSeats-len(lobby.Players))

	return nil
}

func (that *GameManager) lobbyOf(player *entity.Player) (*entity.Lobby, error) {
	lobby, ok := that.lobbies[player.LobbyID]
	if !ok || player.LobbyID == "" {
		return nil, fmt.Errorf("%w: %s", apperror.ErrNotInLobby, player.ID)
	}
	return lobby, nil
}

// save mirrors the lobby into the directory. Failures only affect browsing, so they are logged.
func (that *GameManager) save(ctx context.Context, lobby *entity.Lobby) {
	if err := that.lobbyRepo.CreateOrUpdate(ctx, lobby.Info()); err != nil {
		that.logger.Error("failed to save lobby", "method", "save", "lobbyID", lobby.ID, "error", err)
	}
}

func (that *GameManager) notify(ctx context.Context, players []*entity.Player, message any) {
	for _, player := range players {
		if err := player.Send(ctx, message); err != nil {
			that.logger.Warn("failed to notify player", "method", "notify", "playerID", player.ID, "error", err)
		}
	}
}
