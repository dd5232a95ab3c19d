package oracle

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/rocketscienceinc/codenames-backend/internal/entity"
)

var ErrUnparsableReply = errors.New("unparsable oracle reply")

// ParseClue reads a "WORD,N" reply. Only letters of the word and digits of the number are kept.
func ParseClue(content string) (string, int, error) {
	parts := strings.Split(content, ",")
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("%w: %q", ErrUnparsableReply, content)
	}

	word := strings.ToUpper(strings.Map(keepIf(unicode.IsLetter), parts[0]))
	digits := strings.Map(keepIf(unicode.IsDigit), parts[1])
	if word == "" || digits == "" {
		return "", 0, fmt.Errorf("%w: %q", ErrUnparsableReply, content)
	}

	number, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q: %w", ErrUnparsableReply, content, err)
	}

	return word, number, nil
}

// ParseGuesses keeps the comma separated words that name a candidate, in reply order,
// spelled as the candidate, up to count.
func ParseGuesses(content string, candidates []string, count int) []string {
	guesses := make([]string, 0, max(count, 0))
	for _, raw := range strings.Split(content, ",") {
		if len(guesses) >= count {
			break
		}

		candidate, ok := match(strings.TrimSpace(raw), candidates)
		if !ok || slices.Contains(guesses, candidate) {
			continue
		}
		guesses = append(guesses, candidate)
	}
	return guesses
}

func match(word string, candidates []string) (string, bool) {
	if word == "" {
		return "", false
	}
	for _, candidate := range candidates {
		if entity.SameWord(word, candidate) {
			return candidate, true
		}
	}
	return "", false
}

func keepIf(keep func(rune) bool) func(rune) rune {
	return func(r rune) rune {
		if keep(r) {
			return r
		}
		return -1
	}
}
