package usecase

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/codenames-backend/internal/apperror"
	"github.com/rocketscienceinc/codenames-backend/internal/entity"
)

func (that *GameManager) SubmitClue(ctx context.Context, player *entity.Player, word string, number int) error {
	session, err := that.sessionOf(player)
	if err != nil {
		return err
	}
	return session.SubmitClue(ctx, player.ID, word, number)
}

func (that *GameManager) SubmitGuess(ctx context.Context, player *entity.Player, word string) error {
	session, err := that.sessionOf(player)
	if err != nil {
		return err
	}
	return session.SubmitGuess(ctx, player.ID, word)
}

func (that *GameManager) PassTurn(ctx context.Context, player *entity.Player) error {
	session, err := that.sessionOf(player)
	if err != nil {
		return err
	}
	return session.PassTurn(ctx, player.ID)
}

// RequestState resends the current game to player, e.g. after the game page loads.
func (that *GameManager) RequestState(ctx context.Context, player *entity.Player) error {
	session, err := that.sessionOf(player)
	if err != nil {
		return err
	}
	return session.RequestStateSnapshot(ctx, player.ID)
}

func (that *GameManager) sessionOf(player *entity.Player) (*Session, error) {
	that.mu.Lock()
	lobby, err := that.lobbyOf(player)
	inGame := err == nil && lobby.InGame
	that.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if !inGame {
		return nil, fmt.Errorf("%w: lobby %s has not started", apperror.ErrSessionNotFound, lobby.ID)
	}

	return that.registry.Get(lobby.ID)
}
