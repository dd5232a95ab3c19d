package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/codenames-backend/internal/apperror"
	"github.com/rocketscienceinc/codenames-backend/internal/entity"
)

// newTestGame lays out RED0-8, BLUE0-7, ASSASSIN, NEUTRAL0-6 without shuffling.
func newTestGame(t *testing.T, seats ...*entity.Player) *entity.Game {
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

	if len(seats) == 0 {
		for _, role := range entity.Roles {
			seats = append(seats, entity.NewBotPlayer(role.String(), role))
		}
	}

	game, err := entity.NewGame("game", board, seats)
	require.NoError(t, err)

	return game
}

func humanSeat(id string, role entity.Role, conn entity.Connection) *entity.Player {
	player := entity.NewHumanPlayer(conn)
	player.Name = id
	player.AssignRole(role)
	player.IsReady = true
	player.InGame = true
	return player
}

type recordingConn struct {
	id  string
	err error

	mu       sync.Mutex
	messages []any
}

func (that *recordingConn) ID() string { return that.id }

func (that *recordingConn) Send(_ context.Context, message any) error {
	if that.err != nil {
		return that.err
	}

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

// fakeSession applies AI moves straight to a game under a mutex, swallowing
// protocol misuse the way a real session does.
type fakeSession struct {
	mu   sync.Mutex
	game *entity.Game
}

func (that *fakeSession) role(seatID string) (entity.Role, error) {
	seat, err := that.game.Seat(seatID)
	if err != nil {
		return 0, err
	}
	return *seat.Role, nil
}

func (that *fakeSession) SubmitClue(_ context.Context, seatID, word string, number int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	role, err := that.role(seatID)
	if err != nil {
		return err
	}
	return swallowMisuse(that.game.SubmitClue(role, word, number))
}

func (that *fakeSession) SubmitGuess(_ context.Context, seatID, word string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	role, err := that.role(seatID)
	if err != nil {
		return err
	}
	index, err := that.game.Board.FindPlayable(word)
	if err != nil {
		return err
	}
	_, err = that.game.SubmitGuess(role, index)
	return swallowMisuse(err)
}

func (that *fakeSession) PassTurn(_ context.Context, seatID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	role, err := that.role(seatID)
	if err != nil {
		return err
	}
	return swallowMisuse(that.game.PassTurn(role))
}

func (that *fakeSession) TurnState(context.Context) (entity.TurnState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.TurnState(), nil
}

func (that *fakeSession) with(fn func(game *entity.Game)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	fn(that.game)
}

func swallowMisuse(err error) error {
	if apperror.IsProtocolMisuse(err) {
		return nil
	}
	return err
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
