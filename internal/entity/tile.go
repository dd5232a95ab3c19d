package entity

type Tile struct {
	Word     string `json:"word"`
	Team     Team   `json:"team"`
	Revealed bool   `json:"revealed"`
}

type Clue struct {
	Word   string `json:"word"`
	Number int    `json:"number"`
}

// Outcome is the winner of a session, if any.
type Outcome string

const (
	OutcomeNone     Outcome = ""
	OutcomeRedWins  Outcome = Outcome(TeamRed)
	OutcomeBlueWins Outcome = Outcome(TeamBlue)
)

func OutcomeFor(winner Team) Outcome {
	if winner == TeamRed {
		return OutcomeRedWins
	}
	return OutcomeBlueWins
}
