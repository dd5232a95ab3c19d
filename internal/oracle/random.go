package oracle

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/rocketscienceinc/codenames-backend/internal/entity"
)

var ErrNoClueWord = errors.New("no clue word left to give")

var randomClues = []string{
	"ANIMAL", "BATTLE", "COLOUR", "DANCE", "EARTH", "FIRE", "GHOST", "HISTORY", "ISLAND", "JUNGLE",
	"KITCHEN", "LIGHT", "MUSIC", "NATURE", "OCEAN", "PLANET", "QUEEN", "RIVER", "SPORT", "TRAVEL",
}

// Random plays without any model. Clues are meaningless and guesses are a random pick.
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandom(rnd *rand.Rand) *Random {
	return &Random{rnd: rnd}
}

func (that *Random) GetClue(_ context.Context, teamWords, opponentWords []string) (string, int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	offset := that.rnd.IntN(len(randomClues))
	for i := range randomClues {
		clue := randomClues[(offset+i)%len(randomClues)]
		if onBoard(clue, teamWords) || onBoard(clue, opponentWords) {
			continue
		}

		number := 1 + that.rnd.IntN(2)
		if number > len(teamWords) {
			number = max(len(teamWords), 1)
		}
		return clue, number, nil
	}

	return "", 0, ErrNoClueWord
}

func (that *Random) GetGuesses(_ context.Context, _ string, candidates []string, count int) ([]string, error) {
	if count <= 0 {
		return []string{}, nil
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	picked := append([]string(nil), candidates...)
	that.rnd.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})

	if count < len(picked) {
		picked = picked[:count]
	}
	return picked, nil
}

func onBoard(word string, words []string) bool {
	return slices.ContainsFunc(words, func(candidate string) bool {
		return entity.SameWord(word, candidate)
	})
}
