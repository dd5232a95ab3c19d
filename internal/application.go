package application

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rocketscienceinc/codenames-backend/internal/config"
	"github.com/rocketscienceinc/codenames-backend/internal/oracle"
	"github.com/rocketscienceinc/codenames-backend/internal/repository"
	"github.com/rocketscienceinc/codenames-backend/internal/repository/storage"
	"github.com/rocketscienceinc/codenames-backend/internal/service"
	"github.com/rocketscienceinc/codenames-backend/internal/usecase"
	"github.com/rocketscienceinc/codenames-backend/transport/rest"
	"github.com/rocketscienceinc/codenames-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	lobbyRepo, closeRepo, err := newLobbyRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	rnd := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())) //nolint:gosec // game randomness

	bots := service.NewBotService(logger, newOracle(logger, conf, rnd), clockwork.NewRealClock(), service.BotConfig{
		GuessDelay:    conf.Oracle.GuessDelay,
		OracleTimeout: conf.Oracle.Timeout,
	})
	hub := service.NewHub(logger, conf.BroadcastTimeout)
	registry := usecase.NewRegistry(logger)

	gameManager := usecase.NewGameManager(logger, lobbyRepo, registry, hub, bots, rnd)
	defer func() {
		gameManager.Shutdown()
		bots.Wait()
	}()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gameManager).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, gameManager).Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newLobbyRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.LobbyRepository, func(), error) {
	if conf.Storage != config.StorageRedis {
		log.Info("Using in-memory lobby directory")
		return repository.NewMemoryLobbyRepository(), func() {}, nil
	}

	client, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("Using redis lobby directory", "addr", conf.Redis.GetRedisAddr())

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewLobbyRepository(client), closeFn, nil
}

func newOracle(logger *slog.Logger, conf *config.Config, rnd *rand.Rand) service.ClueOracle {
	if conf.Oracle.Provider == config.OracleRandom {
		// the oracle gets its own source; rnd is owned by the game manager
		return oracle.NewRandom(rand.New(rand.NewPCG(rnd.Uint64(), rnd.Uint64()))) //nolint:gosec // game randomness
	}

	return oracle.NewOpenAI(logger, oracle.OpenAIConfig{
		APIKey:  conf.Oracle.OpenAIKey,
		Model:   conf.Oracle.Model,
		BaseURL: conf.Oracle.BaseURL,
	})
}
