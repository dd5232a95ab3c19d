package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/codenames-backend/internal/apperror"
)

const MaxSeats = len(Roles)

type Phase string

const (
	PhaseAwaitingClue  Phase = "awaiting_clue"
	PhaseAwaitingGuess Phase = "awaiting_guess"
	PhaseOver          Phase = "over"
)

// Game is the authoritative state of one session. It is not safe for concurrent use;
// the owning session serializes every call.
type Game struct {
	ID               string
	Board            *Board
	Seats            []*Player
	Turn             Role
	GuessesRemaining int
	Clue             *Clue
	Outcome          Outcome
}

// NewGame seats exactly one player per role. Red's spymaster opens.
func NewGame(id string, board *Board, seats []*Player) (*Game, error) {
	if len(seats) != MaxSeats {
		return nil, fmt.Errorf("need %d seats, got %d", MaxSeats, len(seats))
	}

	taken := make(map[Role]string, MaxSeats)
	for _, seat := range seats {
		if seat.Role == nil {
			return nil, fmt.Errorf("%w: %s", apperror.ErrRoleUnassigned, seat.ID)
		}
		if other, ok := taken[*seat.Role]; ok {
			return nil, fmt.Errorf("%w: %s held by %s and %s", apperror.ErrRoleTaken, *seat.Role, other, seat.ID)
		}
		taken[*seat.Role] = seat.ID
	}

	return &Game{
		ID:    id,
		Board: board,
		Seats: seats,
		Turn:  RoleRedSpymaster,
	}, nil
}

func (that *Game) Phase() Phase {
	switch {
	case that.IsOver():
		return PhaseOver
	case that.Turn.IsSpymaster():
		return PhaseAwaitingClue
	default:
		return PhaseAwaitingGuess
	}
}

func (that *Game) IsOver() bool {
	return that.Outcome != OutcomeNone
}

// Seat finds a seated player by id.
func (that *Game) Seat(id string) (*Player, error) {
	for _, seat := range that.Seats {
		if seat.ID == id {
			return seat, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperror.ErrSeatNotFound, id)
}

// OnTurnSeat returns the player whose role currently owns the turn.
func (that *Game) OnTurnSeat() *Player {
	for _, seat := range that.Seats {
		if seat.HasRole(that.Turn) {
			return seat
		}
	}
	// NewGame guarantees every role is seated.
	panic(fmt.Sprintf("game %s: no seat for %s", that.ID, that.Turn))
}

func (that *Game) confirmTurn(role Role) error {
	if that.IsOver() {
		return apperror.ErrGameFinished
	}
	if role != that.Turn {
		return fmt.Errorf("%w: %s acted during %s's turn", apperror.ErrNotYourTurn, role, that.Turn)
	}
	return nil
}

// SubmitClue stores the clue and hands the turn to the same team's operative.
func (that *Game) SubmitClue(role Role, word string, number int) error {
	if err := that.confirmTurn(role); err != nil {
		return err
	}
	if !role.IsSpymaster() {
		return fmt.Errorf("%w: operatives cannot give clues", apperror.ErrNotYourTurn)
	}

	word = strings.TrimSpace(word)
	if word == "" || number < 0 {
		return fmt.Errorf("%w: %q %d", apperror.ErrInvalidClue, word, number)
	}

	that.Clue = &Clue{Word: strings.ToUpper(word), Number: number}
	that.GuessesRemaining = number
	that.Turn = NewRole(role.Team(), false)

	return nil
}

// SubmitGuess reveals the tile at index. It reports whether the turn changed hands,
// which includes the game ending.
func (that *Game) SubmitGuess(role Role, index int) (bool, error) {
	if err := that.confirmTurn(role); err != nil {
		return false, err
	}
	if role.IsSpymaster() {
		return false, fmt.Errorf("%w: spymasters cannot guess", apperror.ErrNotYourTurn)
	}
	if that.GuessesRemaining <= 0 {
		return false, apperror.ErrNoGuessesRemaining
	}
	if index < 0 || index >= len(that.Board.Tiles) || that.Board.Tiles[index].Revealed {
		return false, fmt.Errorf("%w: index %d", apperror.ErrTileNotFound, index)
	}

	team := role.Team()
	that.Board.Reveal(index)

	if outcome := that.Board.ComputeOutcome(team); outcome != OutcomeNone {
		that.Outcome = outcome
		return true, nil
	}

	if that.Board.Tiles[index].Team == team {
		that.GuessesRemaining--
	} else {
		that.GuessesRemaining = 0
	}

	if that.GuessesRemaining == 0 {
		that.endTurn(team)
		return true, nil
	}

	return false, nil
}

// PassTurn gives up the remaining guesses.
func (that *Game) PassTurn(role Role) error {
	if err := that.confirmTurn(role); err != nil {
		return err
	}
	if role.IsSpymaster() {
		return fmt.Errorf("%w: spymasters cannot pass", apperror.ErrNotYourTurn)
	}

	that.GuessesRemaining = 0
	that.endTurn(role.Team())

	return nil
}

func (that *Game) endTurn(team Team) {
	that.Clue = nil
	that.Turn = NewRole(team.Other(), true)
}

// TurnState is a read-only summary used by AI seats between guesses.
type TurnState struct {
	Turn             Role
	OnTurnSeatID     string
	GuessesRemaining int
	Clue             *Clue
	Outcome          Outcome
}

func (that *Game) TurnState() TurnState {
	state := TurnState{
		Turn:             that.Turn,
		GuessesRemaining: that.GuessesRemaining,
		Outcome:          that.Outcome,
		OnTurnSeatID:     that.OnTurnSeat().ID,
	}
	if that.Clue != nil {
		clue := *that.Clue
		state.Clue = &clue
	}
	return state
}
