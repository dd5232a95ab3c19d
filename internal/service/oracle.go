package service

import "context"

// ClueOracle makes decisions for AI seats.
type ClueOracle interface {
	// GetClue links as many teamWords as it dares while avoiding opponentWords.
	GetClue(ctx context.Context, teamWords, opponentWords []string) (string, int, error)

	// GetGuesses returns at most count members of candidates, best first.
	GetGuesses(ctx context.Context, clueWord string, candidates []string, count int) ([]string, error)
}
