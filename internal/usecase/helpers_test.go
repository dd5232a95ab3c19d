package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/codenames-backend/internal/entity"
	"github.com/rocketscienceinc/codenames-backend/internal/service"
)

// testBoard lays out RED0-8, BLUE0-7, ASSASSIN, NEUTRAL0-6 without shuffling.
func testBoard(t *testing.T) *entity.Board {
	t.Helper()

	tiles := make([]entity.Tile, 0, entity.BoardSize)
	for i := range 9 {
		tiles = append(tiles, entity.Tile{Word: fmt.Sprintf("RED%d", i), Team: entity.TeamRed})
	}
	for i := range 8 {
		tiles = append(tiles, entity.Tile{Word: fmt.Sprintf("BLUE%d", i), Team: entity.TeamBlue})
	}
	tiles = append(tiles, entity.Tile{Word: "ASSASSIN", Team: entity.TeamAssassin})
	for i := range 7 {
		tiles = append(tiles, entity.Tile{Word: fmt.Sprintf("NEUTRAL%d", i), Team: entity.TeamNeutral})
	}

	board, err := entity.NewBoardFromTiles(tiles)
	require.NoError(t, err)

	return board
}

type recordingConn struct {
	id string

	mu       sync.Mutex
	messages []any
}

func newRecordingConn(id string) *recordingConn {
	return &recordingConn{id: id}
}

func (that *recordingConn) ID() string { return that.id }

func (that *recordingConn) Send(_ context.Context, message any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.messages = append(that.messages, message)
	return nil
}

func (that *recordingConn) states() []entity.StateView {
	that.mu.Lock()
	defer that.mu.Unlock()

	states := make([]entity.StateView, 0, len(that.messages))
	for _, message := range that.messages {
		if state, ok := message.(entity.StateView); ok {
			states = append(states, state)
		}
	}
	return states
}

func (that *recordingConn) playerUpdates() []entity.PlayerUpdate {
	that.mu.Lock()
	defer that.mu.Unlock()

	updates := make([]entity.PlayerUpdate, 0, len(that.messages))
	for _, message := range that.messages {
		if update, ok := message.(entity.PlayerUpdate); ok {
			updates = append(updates, update)
		}
	}
	return updates
}

type mockOracle struct {
	mock.Mock
}

func (that *mockOracle) GetClue(ctx context.Context, teamWords, opponentWords []string) (string, int, error) {
	args := that.Called(ctx, teamWords, opponentWords)
	return args.String(0), args.Int(1), args.Error(2)
}

func (that *mockOracle) GetGuesses(ctx context.Context, clueWord string, candidates []string, count int) ([]string, error) {
	args := that.Called(ctx, clueWord, candidates, count)

	guesses, _ := args.Get(0).([]string)
	return guesses, args.Error(1)
}

// seatPlan maps each role to a human connection, or nil for an AI seat.
type seatPlan map[entity.Role]*recordingConn

type sessionFixture struct {
	session *Session
	bots    service.BotService
	conns   seatPlan
}

func newSessionFixture(t *testing.T, oracle service.ClueOracle, plan seatPlan) *sessionFixture {
	t.Helper()

	seats := make([]*entity.Player, 0, entity.MaxSeats)
	for _, role := range entity.Roles {
		conn := plan[role]
		if conn == nil {
			seats = append(seats, entity.NewBotPlayer("bot-"+role.String(), role))
			continue
		}

		seat := entity.NewHumanPlayer(conn)
		seat.Name = conn.id
		seat.AssignRole(role)
		seat.IsReady = true
		seat.InGame = true
		seats = append(seats, seat)
	}

	game, err := entity.NewGame("session", testBoard(t), seats)
	require.NoError(t, err)

	logger := slog.Default()
	bots := service.NewBotService(logger, oracle, clockwork.NewFakeClock(), service.BotConfig{OracleTimeout: 5 * time.Second})
	session := NewSession(logger, game, service.NewHub(logger, time.Second), bots)

	session.Start(context.Background())
	t.Cleanup(func() {
		session.Close()
		bots.Wait()
	})

	return &sessionFixture{session: session, bots: bots, conns: plan}
}

func (that *sessionFixture) state(t *testing.T) entity.TurnState {
	t.Helper()

	state, err := that.session.TurnState(context.Background())
	require.NoError(t, err)
	return state
}

func (that *sessionFixture) revealed(t *testing.T, seatID, word string) bool {
	t.Helper()

	view, err := that.session.View(context.Background(), seatID)
	require.NoError(t, err)

	for _, tile := range view.Tiles {
		if entity.SameWord(tile.Word, word) {
			return tile.Revealed
		}
	}
	t.Fatalf("word %s is not on the board", word)
	return false
}
