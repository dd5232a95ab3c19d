package apperror

import "errors"

var (
	ErrGameFinished       = errors.New("game is already finished")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrNoGuessesRemaining = errors.New("no guesses remaining")
	ErrTileNotFound       = errors.New("no playable tile")
	ErrInvalidClue        = errors.New("invalid clue")
	ErrRoleUnassigned     = errors.New("player has no role")
	ErrRoleTaken          = errors.New("role is already taken")
	ErrSeatNotFound       = errors.New("seat not found")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session is closed")

	ErrLobbyNotFound  = errors.New("lobby not found")
	ErrLobbyFull      = errors.New("lobby is full")
	ErrLobbyInGame    = errors.New("lobby game already started")
	ErrNotInLobby     = errors.New("player is not in a lobby")
	ErrAlreadyInLobby = errors.New("player is already in a lobby")
)

// IsProtocolMisuse reports whether err is a benign out-of-turn or post-game action.
func IsProtocolMisuse(err error) bool {
	return errors.Is(err, ErrNotYourTurn) ||
		errors.Is(err, ErrGameFinished) ||
		errors.Is(err, ErrNoGuessesRemaining)
}
