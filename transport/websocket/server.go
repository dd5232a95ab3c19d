package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/codenames-backend/internal/apperror"
	"github.com/rocketscienceinc/codenames-backend/internal/entity"
	"github.com/rocketscienceinc/codenames-backend/internal/usecase"
)

type uGame interface {
	CreateLobby(ctx context.Context, player *entity.Player, name string) (*entity.LobbyInfo, error)
	JoinLobby(ctx context.Context, player *entity.Player, lobbyID string) (*entity.LobbyInfo, error)
	ListAvailable(ctx context.Context) ([]*entity.LobbyInfo, error)
	UpdatePreferences(ctx context.Context, player *entity.Player, prefs usecase.Preferences) error
	LeaveLobby(ctx context.Context, player *entity.Player) error

	SubmitClue(ctx context.Context, player *entity.Player, word string, number int) error
	SubmitGuess(ctx context.Context, player *entity.Player, word string) error
	PassTurn(ctx context.Context, player *entity.Player) error
	RequestState(ctx context.Context, player *entity.Player) error
}

type handlerFunc func(ctx context.Context, c *client, msg *ClientMessage) error

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[typeIDRequest] = server.handleIDRequest
	server.handlers[typeCreateLobby] = server.handleCreateLobby
	server.handlers[typeJoinLobby] = server.handleJoinLobby
	server.handlers[typeLobbies] = server.handleLobbiesRequest
	server.handlers[typeLeaveLobby] = server.handleLeaveLobby
	server.handlers[typePreferences] = server.handlePreferences
	server.handlers[typeInitialise] = server.handleInitialise
	server.handlers[typeProvideClue] = server.handleProvideClue
	server.handlers[typeGuessTile] = server.handleGuessTile
	server.handlers[typePassTurn] = server.handlePassTurn

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)
	return mux
}

// Start serves /ws on port until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(that.logger, uuid.NewString(), conn)
	log.Info("websocket connection established", "clientID", c.id)

	go c.writePump()

	ctx := req.Context()
	c.readPump(ctx, func(ctx context.Context, data []byte) {
		that.handleMessage(ctx, c, data)
	})

	c.close()
	that.disconnect(ctx, c)
}

func (that *Server) handleMessage(ctx context.Context, c *client, data []byte) {
	log := that.logger.With("method", "handleMessage", "clientID", c.id)

	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Warn("failed to unmarshal message", "error", err)
		that.reply(ctx, c, newError("Malformed message"))
		return
	}

	handler, ok := that.handlers[msg.Type]
	if !ok {
		log.Warn("no handler for message type", "type", msg.Type)
		that.reply(ctx, c, newError("Unknown message type: "+msg.Type))
		return
	}

	if err := handler(ctx, c, &msg); err != nil {
		log.Info("request failed", "type", msg.Type, "error", err)
		that.reply(ctx, c, newError(errorText(err)))
	}
}

// disconnect removes a closed connection from its lobby, and from its game if one is running.
func (that *Server) disconnect(ctx context.Context, c *client) {
	log := that.logger.With("method", "disconnect", "clientID", c.id)

	// the request context may already be done
	ctx = context.WithoutCancel(ctx)

	err := that.uGame.LeaveLobby(ctx, c.player)
	if err != nil && !errors.Is(err, apperror.ErrNotInLobby) {
		log.Error("failed to leave lobby", "error", err)
	}

	log.Info("websocket connection closed")
}

func (that *Server) reply(ctx context.Context, c *client, message any) {
	if err := c.Send(ctx, message); err != nil {
		that.logger.Warn("failed to reply", "method", "reply", "clientID", c.id, "error", err)
	}
}

// errorText turns an error into something safe to show a player.
func errorText(err error) string {
	switch {
	case errors.Is(err, apperror.ErrTileNotFound):
		return "No playable tile with that word"
	case errors.Is(err, apperror.ErrInvalidClue):
		return "Invalid clue"
	case errors.Is(err, apperror.ErrLobbyNotFound):
		return "Lobby not found"
	case errors.Is(err, apperror.ErrLobbyFull):
		return "Lobby is full"
	case errors.Is(err, apperror.ErrLobbyInGame):
		return "Game already started"
	case errors.Is(err, apperror.ErrNotInLobby):
		return "User not in a lobby"
	case errors.Is(err, apperror.ErrSessionNotFound), errors.Is(err, apperror.ErrSessionClosed):
		return "Game not found"
	case errors.Is(err, errBadRequest):
		return err.Error()
	default:
		return "Internal server error"
	}
}
