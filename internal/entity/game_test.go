package entity

import (
	"testing"

	"github.com/rocketscienceinc/codenames-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeats() []*Player {
	seats := make([]*Player, 0, MaxSeats)
	for _, role := range Roles {
		seats = append(seats, NewBotPlayer(role.String(), role))
	}
	return seats
}

func testGame(t *testing.T) *Game {
	t.Helper()

	game, err := NewGame("game-1", testBoard(t), testSeats())
	require.NoError(t, err)

	return game
}

func mustFind(t *testing.T, game *Game, word string) int {
	t.Helper()

	index, err := game.Board.FindPlayable(word)
	require.NoError(t, err)

	return index
}

func TestNewGame(t *testing.T) {
	t.Run("Red spymaster opens", func(t *testing.T) {
		game := testGame(t)

		assert.Equal(t, RoleRedSpymaster, game.Turn)
		assert.Equal(t, PhaseAwaitingClue, game.Phase())
		assert.Equal(t, OutcomeNone, game.Outcome)
		assert.Nil(t, game.Clue)
		assert.Equal(t, RoleRedSpymaster.String(), game.OnTurnSeat().ID)
	})

	t.Run("Rejects a seat without a role", func(t *testing.T) {
		seats := testSeats()
		seats[2].Role = nil

		_, err := NewGame("game-1", testBoard(t), seats)

		require.ErrorIs(t, err, apperror.ErrRoleUnassigned)
	})

	t.Run("Rejects two seats with the same role", func(t *testing.T) {
		seats := testSeats()
		seats[3].AssignRole(RoleRedOperative)

		_, err := NewGame("game-1", testBoard(t), seats)

		require.ErrorIs(t, err, apperror.ErrRoleTaken)
	})
}

func TestGame_SubmitClue(t *testing.T) {
	t.Run("Hands the turn to the operative", func(t *testing.T) {
		// Given: a new game
		game := testGame(t)

		// When: red's spymaster gives a clue
		err := game.SubmitClue(RoleRedSpymaster, "ocean", 2)
		require.NoError(t, err)

		// Then: the clue is stored upper-cased and red's operative is on turn
		assert.Equal(t, &Clue{Word: "OCEAN", Number: 2}, game.Clue)
		assert.Equal(t, 2, game.GuessesRemaining)
		assert.Equal(t, RoleRedOperative, game.Turn)
		assert.Equal(t, PhaseAwaitingGuess, game.Phase())
	})

	t.Run("Out of turn clue leaves state unchanged", func(t *testing.T) {
		// Given: a new game
		game := testGame(t)
		before := *game

		// When: blue's spymaster tries to give a clue
		err := game.SubmitClue(RoleBlueSpymaster, "ocean", 2)

		// Then: ErrNotYourTurn and nothing moved
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, before, *game)
	})

	t.Run("Operative cannot give a clue", func(t *testing.T) {
		game := testGame(t)
		require.NoError(t, game.SubmitClue(RoleRedSpymaster, "ocean", 2))

		err := game.SubmitClue(RoleRedOperative, "wave", 1)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, "OCEAN", game.Clue.Word)
	})

	t.Run("Rejects negative numbers and blank words", func(t *testing.T) {
		game := testGame(t)

		require.ErrorIs(t, game.SubmitClue(RoleRedSpymaster, "ocean", -1), apperror.ErrInvalidClue)
		require.ErrorIs(t, game.SubmitClue(RoleRedSpymaster, "  ", 1), apperror.ErrInvalidClue)
		assert.Nil(t, game.Clue)
	})

	t.Run("Turn is checked before the clue itself", func(t *testing.T) {
		// Given: a game waiting for red's clue, and a finished game
		game := testGame(t)
		finished := testGame(t)
		finished.Outcome = OutcomeRedWins

		// When: an invalid clue arrives out of turn or after the end
		outOfTurn := game.SubmitClue(RoleBlueSpymaster, "ocean", -1)
		afterEnd := finished.SubmitClue(RoleRedSpymaster, " ", 1)

		// Then: both are protocol misuse, not invalid clues
		require.ErrorIs(t, outOfTurn, apperror.ErrNotYourTurn)
		require.ErrorIs(t, afterEnd, apperror.ErrGameFinished)
		assert.NotErrorIs(t, outOfTurn, apperror.ErrInvalidClue)
		assert.Nil(t, game.Clue)
	})

	t.Run("Accepts numbers above the remaining tiles", func(t *testing.T) {
		game := testGame(t)

		require.NoError(t, game.SubmitClue(RoleRedSpymaster, "everything", 20))
		assert.Equal(t, 20, game.GuessesRemaining)
	})

	t.Run("Ignored once the game is over", func(t *testing.T) {
		game := testGame(t)
		game.Outcome = OutcomeBlueWins
		before := *game

		err := game.SubmitClue(RoleRedSpymaster, "ocean", 2)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, before, *game)
	})
}

func TestGame_SubmitGuess(t *testing.T) {
	t.Run("Three correct guesses count down and flip the turn", func(t *testing.T) {
		// Given: red's clue for three words
		game := testGame(t)
		require.NoError(t, game.SubmitClue(RoleRedSpymaster, "wave", 3))

		// When: red's operative guesses three red words
		for i, word := range []string{"RED0", "RED1", "RED2"} {
			changed, err := game.SubmitGuess(RoleRedOperative, mustFind(t, game, word))
			require.NoError(t, err)

			// Then: guesses count 3 -> 2 -> 1 -> 0
			assert.Equal(t, 2-i, game.GuessesRemaining)
			assert.Equal(t, i == 2, changed)
		}

		assert.Equal(t, OutcomeNone, game.Outcome)
		assert.Equal(t, RoleBlueSpymaster, game.Turn)
		assert.Nil(t, game.Clue)
	})

	t.Run("Third guess after two-word clue is rejected", func(t *testing.T) {
		game := testGame(t)
		require.NoError(t, game.SubmitClue(RoleRedSpymaster, "ocean", 2))

		_, err := game.SubmitGuess(RoleRedOperative, mustFind(t, game, "RED0"))
		require.NoError(t, err)
		_, err = game.SubmitGuess(RoleRedOperative, mustFind(t, game, "RED1"))
		require.NoError(t, err)

		assert.Equal(t, 0, game.GuessesRemaining)
		assert.Equal(t, RoleBlueSpymaster, game.Turn)

		_, err = game.SubmitGuess(RoleRedOperative, mustFind(t, game, "RED2"))
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.False(t, game.Board.Tiles[2].Revealed)
	})

	t.Run("Wrong team guess ends the turn", func(t *testing.T) {
		game := testGame(t)
		require.NoError(t, game.SubmitClue(RoleRedSpymaster, "ocean", 3))

		changed, err := game.SubmitGuess(RoleRedOperative, mustFind(t, game, "NEUTRAL0"))

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, 0, game.GuessesRemaining)
		assert.Equal(t, RoleBlueSpymaster, game.Turn)
		assert.Nil(t, game.Clue)
	})

	t.Run("Assassin loses the game for the guessing team", func(t *testing.T) {
		// Given: red's operative is guessing
		game := testGame(t)
		require.NoError(t, game.SubmitClue(RoleRedSpymaster, "ocean", 2))

		// When: the assassin is revealed
		changed, err := game.SubmitGuess(RoleRedOperative, mustFind(t, game, "ASSASSIN"))
		require.NoError(t, err)

		// Then: blue wins and nothing else is accepted
		assert.True(t, changed)
		assert.Equal(t, OutcomeBlueWins, game.Outcome)
		assert.Equal(t, PhaseOver, game.Phase())

		before := *game
		clue := *game.Clue
		require.ErrorIs(t, game.SubmitClue(RoleRedSpymaster, "again", 1), apperror.ErrGameFinished)
		_, err = game.SubmitGuess(RoleRedOperative, mustFind(t, game, "RED0"))
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		require.ErrorIs(t, game.PassTurn(RoleRedOperative), apperror.ErrGameFinished)
		assert.Equal(t, before, *game)
		assert.Equal(t, clue, *game.Clue)
	})

	t.Run("Revealing the last team tile wins", func(t *testing.T) {
		game := testGame(t)
		for i := 1; i < redTiles; i++ {
			game.Board.Reveal(i)
		}
		require.NoError(t, game.SubmitClue(RoleRedSpymaster, "last", 1))

		_, err := game.SubmitGuess(RoleRedOperative, mustFind(t, game, "RED0"))

		require.NoError(t, err)
		assert.Equal(t, OutcomeRedWins, game.Outcome)
	})

	t.Run("Out of turn guess never mutates the board", func(t *testing.T) {
		game := testGame(t)
		require.NoError(t, game.SubmitClue(RoleRedSpymaster, "ocean", 2))

		for _, role := range []Role{RoleRedSpymaster, RoleBlueSpymaster, RoleBlueOperative} {
			tiles := append([]Tile(nil), game.Board.Tiles...)

			_, err := game.SubmitGuess(role, mustFind(t, game, "BLUE0"))

			require.ErrorIs(t, err, apperror.ErrNotYourTurn)
			assert.Equal(t, tiles, game.Board.Tiles)
			assert.Equal(t, 2, game.GuessesRemaining)
		}
	})

	t.Run("Zero clue allows no guesses", func(t *testing.T) {
		game := testGame(t)
		require.NoError(t, game.SubmitClue(RoleRedSpymaster, "nothing", 0))

		_, err := game.SubmitGuess(RoleRedOperative, mustFind(t, game, "RED0"))

		require.ErrorIs(t, err, apperror.ErrNoGuessesRemaining)
		assert.False(t, game.Board.Tiles[0].Revealed)
	})
}

func TestGame_PassTurn(t *testing.T) {
	t.Run("Operative passes to the other spymaster", func(t *testing.T) {
		game := testGame(t)
		require.NoError(t, game.SubmitClue(RoleRedSpymaster, "ocean", 2))

		require.NoError(t, game.PassTurn(RoleRedOperative))

		assert.Equal(t, RoleBlueSpymaster, game.Turn)
		assert.Equal(t, 0, game.GuessesRemaining)
		assert.Nil(t, game.Clue)
	})

	t.Run("Spymaster cannot pass", func(t *testing.T) {
		game := testGame(t)

		require.ErrorIs(t, game.PassTurn(RoleRedSpymaster), apperror.ErrNotYourTurn)
		assert.Equal(t, RoleRedSpymaster, game.Turn)
	})
}

func TestGame_TurnState(t *testing.T) {
	game := testGame(t)
	require.NoError(t, game.SubmitClue(RoleRedSpymaster, "ocean", 2))

	state := game.TurnState()

	assert.Equal(t, RoleRedOperative, state.Turn)
	assert.Equal(t, RoleRedOperative.String(), state.OnTurnSeatID)
	assert.Equal(t, 2, state.GuessesRemaining)
	assert.Equal(t, &Clue{Word: "OCEAN", Number: 2}, state.Clue)

	state.Clue.Number = 9
	assert.Equal(t, 2, game.Clue.Number)
}
