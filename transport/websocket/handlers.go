package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/codenames-backend/internal/entity"
	"github.com/rocketscienceinc/codenames-backend/internal/usecase"
)

var errBadRequest = errors.New("bad request")

func (that *Server) handleIDRequest(ctx context.Context, c *client, _ *ClientMessage) error {
	return c.Send(ctx, idAssign{ServerMessageType: entity.MessageIDAssign, UUID: c.id})
}

func (that *Server) handleCreateLobby(ctx context.Context, c *client, msg *ClientMessage) error {
	info, err := that.uGame.CreateLobby(ctx, c.player, msg.Name)
	if err != nil {
		return fmt.Errorf("failed to create lobby: %w", err)
	}

	return c.Send(ctx, lobbyJoined{ServerMessageType: entity.MessageLobbyJoined, LobbyID: info.ID})
}

func (that *Server) handleJoinLobby(ctx context.Context, c *client, msg *ClientMessage) error {
	if msg.LobbyID == "" {
		return fmt.Errorf("%w: missing lobbyId in join request", errBadRequest)
	}

	info, err := that.uGame.JoinLobby(ctx, c.player, msg.LobbyID)
	if err != nil {
		return fmt.Errorf("failed to join lobby: %w", err)
	}

	return c.Send(ctx, lobbyJoined{ServerMessageType: entity.MessageLobbyJoined, LobbyID: info.ID})
}

func (that *Server) handleLobbiesRequest(ctx context.Context, c *client, _ *ClientMessage) error {
	lobbies, err := that.uGame.ListAvailable(ctx)
	if err != nil {
		return fmt.Errorf("failed to list lobbies: %w", err)
	}

	return c.Send(ctx, lobbiesUpdate{ServerMessageType: entity.MessageLobbies, Lobbies: lobbies})
}

func (that *Server) handleLeaveLobby(ctx context.Context, c *client, _ *ClientMessage) error {
	if err := that.uGame.LeaveLobby(ctx, c.player); err != nil {
		return fmt.Errorf("failed to leave lobby: %w", err)
	}
	return nil
}

func (that *Server) handlePreferences(ctx context.Context, c *client, msg *ClientMessage) error {
	if msg.Player == nil {
		return fmt.Errorf("%w: missing player in preferences request", errBadRequest)
	}

	prefs := usecase.Preferences{
		Name:  msg.Player.Name,
		Ready: msg.Player.Ready,
		Role:  msg.Player.Role,
	}

	if err := that.uGame.UpdatePreferences(ctx, c.player, prefs); err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}
	return nil
}

func (that *Server) handleInitialise(ctx context.Context, c *client, _ *ClientMessage) error {
	if err := that.uGame.RequestState(ctx, c.player); err != nil {
		return fmt.Errorf("failed to send game state: %w", err)
	}
	return nil
}

func (that *Server) handleProvideClue(ctx context.Context, c *client, msg *ClientMessage) error {
	if msg.Word == "" || msg.Number == nil {
		return fmt.Errorf("%w: missing word or number in clue", errBadRequest)
	}

	if err := that.uGame.SubmitClue(ctx, c.player, msg.Word, *msg.Number); err != nil {
		return fmt.Errorf("failed to submit clue: %w", err)
	}
	return nil
}

func (that *Server) handleGuessTile(ctx context.Context, c *client, msg *ClientMessage) error {
	if msg.Word == "" {
		return fmt.Errorf("%w: missing word in guess", errBadRequest)
	}

	if err := that.uGame.SubmitGuess(ctx, c.player, msg.Word); err != nil {
		return fmt.Errorf("failed to submit guess: %w", err)
	}
	return nil
}

func (that *Server) handlePassTurn(ctx context.Context, c *client, _ *ClientMessage) error {
	if err := that.uGame.PassTurn(ctx, c.player); err != nil {
		return fmt.Errorf("failed to pass turn: %w", err)
	}
	return nil
}
