package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/codenames-backend/internal/entity"
	"golang.org/x/sync/errgroup"
)

const defaultBroadcastTimeout = 5 * time.Second

type Hub struct {
	logger  *slog.Logger
	timeout time.Duration
}

func NewHub(logger *slog.Logger, timeout time.Duration) *Hub {
	if timeout <= 0 {
		timeout = defaultBroadcastTimeout
	}

	return &Hub{
		logger:  logger.With("component", "hub"),
		timeout: timeout,
	}
}

// ProjectFor hides the team of every face-down tile unless viewer is a spymaster.
func ProjectFor(game *entity.Game, viewer *entity.Player, isTurnChange bool) entity.StateView {
	isSpymaster := viewer.Role != nil && viewer.Role.IsSpymaster()

	tiles := make([]entity.Tile, 0, len(game.Board.Tiles))
	for _, tile := range game.Board.Tiles {
		if !tile.Revealed && !isSpymaster {
			tile.Team = entity.TeamUnknown
		}
		tiles = append(tiles, tile)
	}

	players := make([]entity.PlayerView, 0, len(game.Seats))
	for _, seat := range game.Seats {
		players = append(players, seat.View())
	}

	view := entity.StateView{
		ServerMessageType: entity.MessageStateUpdate,
		Tiles:             tiles,
		Players:           players,
		OnTurnRole:        game.Turn.Index(),
		GuessesRemaining:  game.GuessesRemaining,
		NewTurn:           isTurnChange,
	}

	if game.Clue != nil {
		clue := *game.Clue
		view.Clue = &clue
	}

	if game.IsOver() {
		winner := entity.Team(game.Outcome)
		view.Winner = &winner
	}

	return view
}

// Broadcast projects the game for every seat, then sends all views concurrently and waits.
// Projection happens before any send so every seat gets the same revision.
func (that *Hub) Broadcast(ctx context.Context, game *entity.Game, isTurnChange bool) {
	log := that.logger.With("method", "Broadcast", "gameID", game.ID)

	views := make([]entity.StateView, len(game.Seats))
	for i, seat := range game.Seats {
		views[i] = ProjectFor(game, seat, isTurnChange)
	}

	ctx, cancel := context.WithTimeout(ctx, that.timeout)
	defer cancel()

	var group errgroup.Group
	for i, seat := range game.Seats {
		if !seat.IsHuman {
			continue
		}

		group.Go(func() error {
			if err := seat.Send(ctx, views[i]); err != nil {
				log.Warn("failed to send state update", "playerID", seat.ID, "error", err)
				return fmt.Errorf("send to %s: %w", seat.ID, err)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		log.Debug("broadcast finished with errors", "error", err)
	}
}

// Unicast sends a single projection without the turn-change flag.
func (that *Hub) Unicast(ctx context.Context, game *entity.Game, viewer *entity.Player) error {
	ctx, cancel := context.WithTimeout(ctx, that.timeout)
	defer cancel()

	if err := viewer.Send(ctx, ProjectFor(game, viewer, false)); err != nil {
		return fmt.Errorf("failed to send state to %s: %w", viewer.ID, err)
	}

	return nil
}
