package entity

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rocketscienceinc/codenames-backend/internal/apperror"
)

const (
	BoardSize = 25

	redTiles      = 9
	blueTiles     = 8
	assassinTiles = 1
)

var ErrBoardSize = errors.New("board needs exactly 25 distinct words")

type Board struct {
	Tiles []Tile `json:"tiles"`
}

// NewBoard assigns the 9/8/1/7 split to words in order, then shuffles the tiles.
func NewBoard(words []string, rnd *rand.Rand) (*Board, error) {
	if len(words) != BoardSize {
		return nil, fmt.Errorf("%w: got %d", ErrBoardSize, len(words))
	}

	tiles := make([]Tile, 0, BoardSize)
	for i, word := range words {
		tiles = append(tiles, Tile{Word: strings.TrimSpace(word), Team: teamForPosition(i)})
	}

	rnd.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	return NewBoardFromTiles(tiles)
}

// NewBoardFromTiles builds a board from a fixed layout.
func NewBoardFromTiles(tiles []Tile) (*Board, error) {
	seen := make(map[string]struct{}, len(tiles))
	for _, tile := range tiles {
		key := normalizeWord(tile.Word)
		if key == "" {
			return nil, fmt.Errorf("%w: empty word", ErrBoardSize)
		}
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: duplicate word %q", ErrBoardSize, tile.Word)
		}
		seen[key] = struct{}{}
	}

	return &Board{Tiles: append([]Tile(nil), tiles...)}, nil
}

func teamForPosition(i int) Team {
	switch {
	case i < redTiles:
		return TeamRed
	case i < redTiles+blueTiles:
		return TeamBlue
	case i < redTiles+blueTiles+assassinTiles:
		return TeamAssassin
	default:
		return TeamNeutral
	}
}

// Reveal flips the tile face up. It reports false when the tile was already revealed.
func (that *Board) Reveal(index int) bool {
	if that.Tiles[index].Revealed {
		return false
	}
	that.Tiles[index].Revealed = true
	return true
}

// FindByWord matches ignoring case and spaces.
func (that *Board) FindByWord(word string) (int, error) {
	key := normalizeWord(word)
	for i, tile := range that.Tiles {
		if normalizeWord(tile.Word) == key {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", apperror.ErrTileNotFound, word)
}

// FindPlayable is FindByWord restricted to tiles that can still be guessed.
func (that *Board) FindPlayable(word string) (int, error) {
	index, err := that.FindByWord(word)
	if err != nil {
		return -1, err
	}
	if that.Tiles[index].Revealed {
		return -1, fmt.Errorf("%w: %q is already revealed", apperror.ErrTileNotFound, word)
	}
	return index, nil
}

// ComputeOutcome is a pure function of the tiles and the team on turn.
// A revealed assassin loses the game for the team that was guessing.
func (that *Board) ComputeOutcome(onTurn Team) Outcome {
	if that.remaining(TeamRed) == 0 {
		return OutcomeRedWins
	}
	if that.remaining(TeamBlue) == 0 {
		return OutcomeBlueWins
	}
	for _, tile := range that.Tiles {
		if tile.Team == TeamAssassin && tile.Revealed {
			return OutcomeFor(onTurn.Other())
		}
	}
	return OutcomeNone
}

func (that *Board) remaining(team Team) int {
	count := 0
	for _, tile := range that.Tiles {
		if tile.Team == team && !tile.Revealed {
			count++
		}
	}
	return count
}

// UnrevealedWords lists face-down words accepted by keep, in board order.
func (that *Board) UnrevealedWords(keep func(Tile) bool) []string {
	words := make([]string, 0, len(that.Tiles))
	for _, tile := range that.Tiles {
		if tile.Revealed {
			continue
		}
		if keep == nil || keep(tile) {
			words = append(words, tile.Word)
		}
	}
	return words
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.ReplaceAll(word, " ", ""))
}

// SameWord reports whether two words match the way FindByWord does.
func SameWord(a, b string) bool {
	return normalizeWord(a) == normalizeWord(b)
}
